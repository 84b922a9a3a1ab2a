package publication

import (
	"context"
	"fmt"
	"strings"

	"github.com/smnsjas/go-coreservice/tcm"
)

// Fields is a sparse set of publication field updates. Empty strings leave
// the corresponding Record attribute untouched; a nil Parents slice leaves
// the parent links untouched, a non-nil one replaces them entirely.
type Fields struct {
	Title string
	Key   string

	PublicationPath string
	PublicationURL  string
	MultimediaPath  string
	MultimediaURL   string

	// Parents entries are either TCM URIs (used as-is) or publication
	// titles (resolved against the publication list, first exact
	// case-sensitive match wins).
	Parents []string

	// BusinessProcessType is a TCM URI, resolved through the item reader.
	BusinessProcessType string
}

// ListEntry is the merger's view of one publication in the remote list.
type ListEntry struct {
	ID    string
	Title string
}

// Lister lists publications for parent-title resolution.
type Lister interface {
	ListPublications(ctx context.Context) ([]ListEntry, error)
}

// ItemReader reads a single item by TCM URI. A missing item is reported as
// found=false with a nil error; transport failures are returned as errors.
type ItemReader interface {
	ReadItem(ctx context.Context, id string) (found bool, err error)
}

// LookupError reports one reference that could not be resolved during a
// merge. These are non-fatal: the merge continues with whatever resolved.
type LookupError struct {
	// Kind names the reference kind, "parent" or "business process type".
	Kind string

	// Ref is the title or TCM URI that failed to resolve.
	Ref string
}

// Error implements the error interface.
func (e LookupError) Error() string {
	return fmt.Sprintf("publication: no %s found matching %q", e.Kind, e.Ref)
}

// Merger applies Fields onto a staging Record, resolving parent titles and
// the business-process-type reference through the gateway.
type Merger struct {
	Publications Lister
	Items        ItemReader
}

// Apply merges f into rec in place. Unresolved references are returned as
// LookupErrors and do not abort the merge; any remote failure does. There
// is no transactional guarantee across partially-resolved parent entries.
func (m *Merger) Apply(ctx context.Context, rec *Record, f Fields) ([]LookupError, error) {
	if f.Title != "" {
		rec.Title = f.Title
	}
	// An explicit key always wins; otherwise the title fills an empty key.
	if f.Key != "" {
		rec.Key = f.Key
	} else if f.Title != "" && rec.Key == "" {
		rec.Key = f.Title
	}
	if f.PublicationPath != "" {
		rec.PublicationPath = f.PublicationPath
	}
	if f.PublicationURL != "" {
		rec.PublicationURL = f.PublicationURL
	}
	if f.MultimediaPath != "" {
		rec.MultimediaPath = f.MultimediaPath
	}
	if f.MultimediaURL != "" {
		rec.MultimediaURL = f.MultimediaURL
	}

	var lookups []LookupError

	if f.Parents != nil {
		resolved := make([]string, 0, len(f.Parents))

		// The publication list is fetched at most once, lazily, and only
		// lives for this merge invocation.
		var list []ListEntry
		listFetched := false

		for _, parent := range f.Parents {
			if strings.HasPrefix(parent, tcm.Prefix) {
				resolved = append(resolved, parent)
				continue
			}
			if !listFetched {
				var err error
				list, err = m.Publications.ListPublications(ctx)
				if err != nil {
					return lookups, fmt.Errorf("list publications: %w", err)
				}
				listFetched = true
			}
			id, ok := findByTitle(list, parent)
			if !ok {
				lookups = append(lookups, LookupError{Kind: "parent", Ref: parent})
				continue
			}
			resolved = append(resolved, id)
		}

		// The supplied list replaces prior parent links, it never merges.
		rec.Parents = resolved
	}

	if f.BusinessProcessType != "" {
		found, err := m.Items.ReadItem(ctx, f.BusinessProcessType)
		if err != nil {
			return lookups, fmt.Errorf("read business process type: %w", err)
		}
		if !found {
			lookups = append(lookups, LookupError{Kind: "business process type", Ref: f.BusinessProcessType})
		} else {
			rec.BusinessProcessType = f.BusinessProcessType
		}
	}

	return lookups, nil
}

// findByTitle returns the id of the first entry whose title matches
// exactly, case-sensitively.
func findByTitle(list []ListEntry, title string) (string, bool) {
	for _, e := range list {
		if e.Title == title {
			return e.ID, true
		}
	}
	return "", false
}
