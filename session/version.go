package session

import (
	"fmt"
	"strings"
)

// Version identifies the Core Service API version the server speaks.
// Feature availability is gated on it.
type Version int

const (
	// Version2011SP1 is Tridion 2011 SP1.
	Version2011SP1 Version = iota + 1
	// Version2013 is Tridion 2013 GA.
	Version2013
	// Version2013SP1 is Tridion 2013 SP1.
	Version2013SP1
	// VersionWeb81 is SDL Web 8.1.
	VersionWeb81
	// VersionWeb85 is SDL Web 8.5.
	VersionWeb85
)

// versionNames maps the configuration spellings to versions.
var versionNames = map[string]Version{
	"2011-sp1": Version2011SP1,
	"2013":     Version2013,
	"2013-sp1": Version2013SP1,
	"web-8.1":  VersionWeb81,
	"web-8.5":  VersionWeb85,
}

// ParseVersion parses a version name such as "2013-sp1" or "web-8.5".
// Matching is case-insensitive.
func ParseVersion(s string) (Version, error) {
	v, ok := versionNames[strings.ToLower(strings.TrimSpace(s))]
	if !ok {
		return 0, fmt.Errorf("session: unknown api version %q", s)
	}
	return v, nil
}

// String returns the configuration spelling of v.
func (v Version) String() string {
	for name, version := range versionNames {
		if version == v {
			return name
		}
	}
	return fmt.Sprintf("Version(%d)", int(v))
}

// SupportsBusinessProcessTypes reports whether the server exposes business
// process types. Available from SDL Web 8.1.
func (v Version) SupportsBusinessProcessTypes() bool {
	return v >= VersionWeb81
}
