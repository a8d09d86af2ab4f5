package annotate

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSidecarPath(t *testing.T) {
	assert.Equal(t, filepath.Join("/books", ".booklet_alice.txt"), SidecarPath("/books/alice.txt"))
	assert.Equal(t, ".booklet_alice.txt", SidecarPath("alice.txt"))
}

func TestSidecarMissingFile(t *testing.T) {
	sc := NewSidecar(filepath.Join(t.TempDir(), "book.txt"))

	rec, err := sc.Load()
	require.NoError(t, err)
	assert.Empty(t, rec.Bookmarks)
	assert.Empty(t, rec.Markers)
	assert.Nil(t, rec.FocusMode)
}

func TestSidecarRoundTrip(t *testing.T) {
	doc := filepath.Join(t.TempDir(), "book.txt")
	sc := NewSidecar(doc)

	store := NewStore(Record{}, sc)
	_, err := store.ToggleBookmark(42)
	require.NoError(t, err)
	_, err = store.ToggleBookmark(7)
	require.NoError(t, err)
	_, err = store.ToggleMarker(Span{Line: 3, Start: 0, End: 4})
	require.NoError(t, err)
	_, err = store.ToggleFocus()
	require.NoError(t, err)

	rec, err := NewSidecar(doc).Load()
	require.NoError(t, err)

	reloaded := NewStore(rec, nil)
	assert.Equal(t, []int{7, 42}, reloaded.Bookmarks())
	assert.Equal(t, []Span{{Line: 3, Start: 0, End: 4}}, reloaded.Markers())
	assert.True(t, reloaded.Focus())
}

func TestSidecarReadsHandWrittenFile(t *testing.T) {
	doc := filepath.Join(t.TempDir(), "book.txt")
	content := "bookmarks = [12, 3]\nmarkers = [[3, 0, 4], [9, 10, 15]]\n"
	require.NoError(t, os.WriteFile(SidecarPath(doc), []byte(content), 0o644))

	rec, err := NewSidecar(doc).Load()
	require.NoError(t, err)

	store := NewStore(rec, nil)
	assert.Equal(t, []int{3, 12}, store.Bookmarks())
	assert.Equal(t, []Span{{3, 0, 4}, {9, 10, 15}}, store.Markers())
	assert.False(t, store.Focus())
}

func TestSidecarMalformed(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"not toml", "bookmarks = [1, 2"},
		{"wrong type", "bookmarks = \"three\""},
		{"short marker", "markers = [[1, 2]]"},
		{"negative bookmark", "bookmarks = [-1]"},
		{"inverted marker", "markers = [[1, 5, 2]]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := filepath.Join(t.TempDir(), "book.txt")
			require.NoError(t, os.WriteFile(SidecarPath(doc), []byte(tt.content), 0o644))

			_, err := NewSidecar(doc).Load()
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrFormat), "got %v", err)
		})
	}
}

func TestSidecarWriteFailure(t *testing.T) {
	sc := NewSidecar(filepath.Join(t.TempDir(), "missing-dir", "book.txt"))
	err := sc.Save(Record{Bookmarks: []int{1}})
	require.Error(t, err)
}
