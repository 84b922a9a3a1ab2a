// Package tcm implements the Content Manager item identifier ("TCM URI").
//
// A TCM URI references a repository item by publication and item number,
// with an optional item-type discriminator or version suffix:
//
//	tcm:<publicationId>-<itemId>
//	tcm:<publicationId>-<itemId>-<itemType>
//	tcm:<publicationId>-<itemId>-v<version>
//
// URI values are immutable; rewriting operations return a new value.
package tcm

import (
	"fmt"
	"strconv"
	"strings"
)

// Prefix is the literal tag every TCM URI starts with.
const Prefix = "tcm:"

// NullURI denotes "no object". It is the only URI with a zero item id.
const NullURI = "tcm:0-0-0"

// FormatError reports a malformed TCM URI string.
type FormatError struct {
	// Input is the string that failed to parse.
	Input string

	// Reason describes what was wrong with it.
	Reason string
}

// Error implements the error interface.
func (e *FormatError) Error() string {
	return fmt.Sprintf("tcm: invalid uri %q: %s", e.Input, e.Reason)
}

// URI is an immutable reference to a repository item.
//
// The zero value is not a valid URI; construct values with Parse or New.
type URI struct {
	publication int
	item        int
	itemType    int
	version     int
	hasType     bool
	hasVersion  bool
}

// New returns a URI for the given publication and item id, without an
// item-type or version suffix.
func New(publicationID, itemID int) URI {
	return URI{publication: publicationID, item: itemID}
}

// Parse parses a TCM URI string.
//
// It fails with a *FormatError when the tcm: tag is missing, a numeric
// segment is not a valid integer, or fewer than two segments are present.
func Parse(s string) (URI, error) {
	if !strings.HasPrefix(s, Prefix) {
		return URI{}, &FormatError{Input: s, Reason: "missing " + Prefix + " tag"}
	}

	segments := strings.Split(s[len(Prefix):], "-")
	if len(segments) < 2 {
		return URI{}, &FormatError{Input: s, Reason: "expected at least publication and item segments"}
	}
	if len(segments) > 3 {
		return URI{}, &FormatError{Input: s, Reason: "too many segments"}
	}

	pub, err := strconv.Atoi(segments[0])
	if err != nil || pub < 0 {
		return URI{}, &FormatError{Input: s, Reason: fmt.Sprintf("publication segment %q is not a non-negative integer", segments[0])}
	}

	item, err := strconv.Atoi(segments[1])
	if err != nil || item < 0 {
		return URI{}, &FormatError{Input: s, Reason: fmt.Sprintf("item segment %q is not a non-negative integer", segments[1])}
	}

	u := URI{publication: pub, item: item}

	if len(segments) == 3 {
		third := segments[2]
		if rest, ok := strings.CutPrefix(third, "v"); ok {
			ver, err := strconv.Atoi(rest)
			if err != nil || ver <= 0 {
				return URI{}, &FormatError{Input: s, Reason: fmt.Sprintf("version segment %q is not a positive integer", third)}
			}
			u.version = ver
			u.hasVersion = true
		} else {
			typ, err := strconv.Atoi(third)
			if err != nil || typ < 0 {
				return URI{}, &FormatError{Input: s, Reason: fmt.Sprintf("item-type segment %q is not a non-negative integer", third)}
			}
			u.itemType = typ
			u.hasType = true
		}
	}

	// The item id is required except for the degenerate null identifier.
	if item == 0 && s != NullURI {
		return URI{}, &FormatError{Input: s, Reason: "item id must be greater than zero"}
	}

	return u, nil
}

// PublicationID returns the publication component.
func (u URI) PublicationID() int { return u.publication }

// ItemID returns the local item number.
func (u URI) ItemID() int { return u.item }

// ItemType returns the item-type discriminator and whether one is present.
func (u URI) ItemType() (int, bool) { return u.itemType, u.hasType }

// Version returns the version suffix and whether one is present.
// An absent version means "latest".
func (u URI) Version() (int, bool) { return u.version, u.hasVersion }

// IsNull reports whether u is the degenerate "no object" identifier.
func (u URI) IsNull() bool {
	return u.publication == 0 && u.item == 0
}

// String renders the canonical textual form.
func (u URI) String() string {
	switch {
	case u.hasVersion:
		return fmt.Sprintf("%s%d-%d-v%d", Prefix, u.publication, u.item, u.version)
	case u.hasType:
		return fmt.Sprintf("%s%d-%d-%d", Prefix, u.publication, u.item, u.itemType)
	default:
		return fmt.Sprintf("%s%d-%d", Prefix, u.publication, u.item)
	}
}

// InPublication returns a copy of u with the publication component replaced.
func (u URI) InPublication(publicationID int) URI {
	u.publication = publicationID
	return u
}

// AtVersion returns a copy of u rendered in the versioned-item shape.
// Any item-type suffix is dropped in favor of the version suffix.
func (u URI) AtVersion(version int) URI {
	u.version = version
	u.hasVersion = true
	u.itemType = 0
	u.hasType = false
	return u
}

// PublicationTarget resolves a publication reference that is either already
// in identifier form ("tcm:0-123-1") or a bare non-negative integer id.
// A bare id is normalized by substituting it into the canonical
// tcm:0-<id>-1 pattern before use. The returned value is the numeric
// publication id to substitute into another item's URI.
func PublicationTarget(ref string) (int, error) {
	if !strings.HasPrefix(ref, Prefix) {
		id, err := strconv.Atoi(strings.TrimSpace(ref))
		if err != nil || id < 0 {
			return 0, &FormatError{Input: ref, Reason: "publication target must be a tcm uri or a non-negative integer"}
		}
		ref = fmt.Sprintf("%s0-%d-1", Prefix, id)
	}
	u, err := Parse(ref)
	if err != nil {
		return 0, err
	}
	return u.ItemID(), nil
}

// RewritePublication rewrites uri so that it addresses the same item in the
// publication identified by target (a publication URI or bare integer id).
//
// When version is greater than zero the result is always rendered in the
// versioned-item shape, replacing any item-type suffix. When version is zero
// or negative the original suffix shape is preserved as-is.
func RewritePublication(uri, target string, version int) (string, error) {
	u, err := Parse(uri)
	if err != nil {
		return "", err
	}
	pub, err := PublicationTarget(target)
	if err != nil {
		return "", err
	}
	out := u.InPublication(pub)
	if version > 0 {
		out = out.AtVersion(version)
	}
	return out.String(), nil
}
