// Package publication holds the staging model for publication create and
// update calls: a Record being built, a sparse Fields update set, and the
// Merger that applies one onto the other while resolving references
// through the remote gateway.
package publication

import (
	"github.com/smnsjas/go-coreservice/tcm"
)

// Record is the in-memory staging form of a publication. It belongs to the
// operation that built it and is discarded once the remote call returns.
type Record struct {
	// ID is the publication's TCM URI, tcm.NullURI for a new item.
	ID string

	Title string

	// Key is the unique publication key. Never empty once Title is set:
	// the merger defaults it to Title when no explicit key was supplied.
	Key string

	PublicationPath string
	PublicationURL  string
	MultimediaPath  string
	MultimediaURL   string

	// Parents are TCM URIs of parent publications, in order. A supplied
	// parent list always replaces this slice wholesale.
	Parents []string

	// BusinessProcessType is a TCM URI, empty when unset. Settable only
	// when the server version supports business process types; that gate
	// lives in the session layer.
	BusinessProcessType string
}

// NewRecord returns the default template for a publication to be created.
func NewRecord() *Record {
	return &Record{ID: tcm.NullURI}
}
