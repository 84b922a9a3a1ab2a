package publication

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeLister serves a canned publication list and counts fetches.
type fakeLister struct {
	entries []ListEntry
	err     error
	calls   int
}

func (f *fakeLister) ListPublications(_ context.Context) ([]ListEntry, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.entries, nil
}

// fakeReader reports item existence from a canned set.
type fakeReader struct {
	known map[string]bool
	err   error
	calls int
}

func (f *fakeReader) ReadItem(_ context.Context, id string) (bool, error) {
	f.calls++
	if f.err != nil {
		return false, f.err
	}
	return f.known[id], nil
}

func newTestMerger(lister *fakeLister, reader *fakeReader) *Merger {
	if lister == nil {
		lister = &fakeLister{}
	}
	if reader == nil {
		reader = &fakeReader{}
	}
	return &Merger{Publications: lister, Items: reader}
}

func TestApply_ScalarFields(t *testing.T) {
	rec := NewRecord()
	m := newTestMerger(nil, nil)

	lookups, err := m.Apply(context.Background(), rec, Fields{
		Title:           "500 Example Site",
		PublicationPath: `\Example`,
		PublicationURL:  "/example",
		MultimediaPath:  `\Example\Multimedia`,
		MultimediaURL:   "/example/media",
	})
	require.NoError(t, err)
	assert.Empty(t, lookups)

	assert.Equal(t, "500 Example Site", rec.Title)
	assert.Equal(t, `\Example`, rec.PublicationPath)
	assert.Equal(t, "/example", rec.PublicationURL)
	assert.Equal(t, `\Example\Multimedia`, rec.MultimediaPath)
	assert.Equal(t, "/example/media", rec.MultimediaURL)
}

func TestApply_KeyDefaultsToTitle(t *testing.T) {
	rec := NewRecord()
	m := newTestMerger(nil, nil)

	_, err := m.Apply(context.Background(), rec, Fields{Title: "My Site"})
	require.NoError(t, err)
	assert.Equal(t, "My Site", rec.Key, "empty key should take the title")
}

func TestApply_ExplicitKeyWins(t *testing.T) {
	rec := NewRecord()
	m := newTestMerger(nil, nil)

	_, err := m.Apply(context.Background(), rec, Fields{Title: "My Site", Key: "my-site"})
	require.NoError(t, err)
	assert.Equal(t, "my-site", rec.Key)
}

func TestApply_ExistingKeyPreserved(t *testing.T) {
	rec := NewRecord()
	rec.Key = "already-set"
	m := newTestMerger(nil, nil)

	_, err := m.Apply(context.Background(), rec, Fields{Title: "Renamed"})
	require.NoError(t, err)
	assert.Equal(t, "already-set", rec.Key, "a populated key must not be overwritten by the title")
}

func TestApply_EmptyFieldsLeaveRecordUntouched(t *testing.T) {
	rec := &Record{
		ID:              "tcm:0-5-1",
		Title:           "Original",
		Key:             "original",
		PublicationPath: `\Orig`,
		Parents:         []string{"tcm:0-2-1"},
	}
	m := newTestMerger(nil, nil)

	lookups, err := m.Apply(context.Background(), rec, Fields{})
	require.NoError(t, err)
	assert.Empty(t, lookups)

	assert.Equal(t, "Original", rec.Title)
	assert.Equal(t, "original", rec.Key)
	assert.Equal(t, []string{"tcm:0-2-1"}, rec.Parents, "nil parents field must leave links alone")
}

func TestApply_ParentURIsPassThroughWithoutListFetch(t *testing.T) {
	lister := &fakeLister{}
	rec := NewRecord()
	m := newTestMerger(lister, nil)

	lookups, err := m.Apply(context.Background(), rec, Fields{
		Parents: []string{"tcm:0-2-1", "tcm:0-3-1"},
	})
	require.NoError(t, err)
	assert.Empty(t, lookups)

	assert.Equal(t, []string{"tcm:0-2-1", "tcm:0-3-1"}, rec.Parents)
	assert.Zero(t, lister.calls, "URI-only parents must not fetch the publication list")
}

func TestApply_ParentTitlesResolvedWithSingleListFetch(t *testing.T) {
	lister := &fakeLister{entries: []ListEntry{
		{ID: "tcm:0-1-1", Title: "000 Empty Parent"},
		{ID: "tcm:0-2-1", Title: "100 Global Content"},
		{ID: "tcm:0-3-1", Title: "200 Local Content"},
	}}
	rec := NewRecord()
	m := newTestMerger(lister, nil)

	lookups, err := m.Apply(context.Background(), rec, Fields{
		Parents: []string{"100 Global Content", "200 Local Content"},
	})
	require.NoError(t, err)
	assert.Empty(t, lookups)

	assert.Equal(t, []string{"tcm:0-2-1", "tcm:0-3-1"}, rec.Parents)
	assert.Equal(t, 1, lister.calls, "the list is fetched once per merge")
}

func TestApply_UnresolvedParentIsNonFatal(t *testing.T) {
	lister := &fakeLister{entries: []ListEntry{
		{ID: "tcm:0-2-1", Title: "100 Global Content"},
	}}
	rec := NewRecord()
	m := newTestMerger(lister, nil)

	lookups, err := m.Apply(context.Background(), rec, Fields{
		Parents: []string{"100 Global Content", "No Such Publication"},
	})
	require.NoError(t, err, "an unresolved parent must not abort the merge")

	require.Len(t, lookups, 1)
	assert.Equal(t, "parent", lookups[0].Kind)
	assert.Equal(t, "No Such Publication", lookups[0].Ref)
	assert.Contains(t, lookups[0].Error(), "No Such Publication")

	assert.Equal(t, []string{"tcm:0-2-1"}, rec.Parents, "resolved parents are still applied")
}

func TestApply_ParentsReplaceWholesale(t *testing.T) {
	rec := &Record{Parents: []string{"tcm:0-9-1"}}
	m := newTestMerger(nil, nil)

	_, err := m.Apply(context.Background(), rec, Fields{Parents: []string{"tcm:0-2-1"}})
	require.NoError(t, err)
	assert.Equal(t, []string{"tcm:0-2-1"}, rec.Parents, "supplied parents replace, never merge")

	_, err = m.Apply(context.Background(), rec, Fields{Parents: []string{}})
	require.NoError(t, err)
	assert.Empty(t, rec.Parents, "an empty non-nil list clears the links")
}

func TestApply_ParentTitleCaseSensitive(t *testing.T) {
	lister := &fakeLister{entries: []ListEntry{
		{ID: "tcm:0-2-1", Title: "Global Content"},
	}}
	rec := NewRecord()
	m := newTestMerger(lister, nil)

	lookups, err := m.Apply(context.Background(), rec, Fields{
		Parents: []string{"global content"},
	})
	require.NoError(t, err)
	require.Len(t, lookups, 1, "title matching is case-sensitive")
	assert.Empty(t, rec.Parents)
}

func TestApply_ListFailureIsFatal(t *testing.T) {
	lister := &fakeLister{err: errors.New("connection refused")}
	rec := NewRecord()
	m := newTestMerger(lister, nil)

	_, err := m.Apply(context.Background(), rec, Fields{Parents: []string{"Some Title"}})
	require.Error(t, err, "a failed list fetch aborts the merge")
}

func TestApply_BusinessProcessType(t *testing.T) {
	reader := &fakeReader{known: map[string]bool{"tcm:0-7-1": true}}
	rec := NewRecord()
	m := newTestMerger(nil, reader)

	lookups, err := m.Apply(context.Background(), rec, Fields{BusinessProcessType: "tcm:0-7-1"})
	require.NoError(t, err)
	assert.Empty(t, lookups)
	assert.Equal(t, "tcm:0-7-1", rec.BusinessProcessType)
	assert.Equal(t, 1, reader.calls)
}

func TestApply_BusinessProcessTypeMissIsNonFatal(t *testing.T) {
	reader := &fakeReader{known: map[string]bool{}}
	rec := NewRecord()
	m := newTestMerger(nil, reader)

	lookups, err := m.Apply(context.Background(), rec, Fields{BusinessProcessType: "tcm:0-99-1"})
	require.NoError(t, err)

	require.Len(t, lookups, 1)
	assert.Equal(t, "business process type", lookups[0].Kind)
	assert.Empty(t, rec.BusinessProcessType, "an unresolved reference is not applied")
}

func TestApply_BusinessProcessTypeReadFailureIsFatal(t *testing.T) {
	reader := &fakeReader{err: errors.New("connection refused")}
	rec := NewRecord()
	m := newTestMerger(nil, reader)

	_, err := m.Apply(context.Background(), rec, Fields{BusinessProcessType: "tcm:0-7-1"})
	require.Error(t, err)
}

func TestNewRecord_Defaults(t *testing.T) {
	rec := NewRecord()
	assert.Equal(t, "tcm:0-0-0", rec.ID, "a fresh record carries the null URI until the server assigns one")
	assert.Nil(t, rec.Parents)
}
