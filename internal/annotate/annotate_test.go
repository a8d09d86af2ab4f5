package annotate

import (
	"errors"
	"math/rand"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingSaver struct {
	saved []Record
	err   error
}

func (r *recordingSaver) Save(rec Record) error {
	r.saved = append(r.saved, rec)
	return r.err
}

func TestNewStoreNormalizesBookmarks(t *testing.T) {
	s := NewStore(Record{Bookmarks: []int{30, 4, 12, 4}}, nil)
	assert.Equal(t, []int{4, 12, 30}, s.Bookmarks())
}

func TestToggleBookmark(t *testing.T) {
	saver := &recordingSaver{}
	s := NewStore(Record{}, saver)

	added, err := s.ToggleBookmark(20)
	require.NoError(t, err)
	assert.True(t, added)

	added, err = s.ToggleBookmark(5)
	require.NoError(t, err)
	assert.True(t, added)
	assert.Equal(t, []int{5, 20}, s.Bookmarks())
	assert.True(t, s.HasBookmark(5))

	added, err = s.ToggleBookmark(20)
	require.NoError(t, err)
	assert.False(t, added)
	assert.Equal(t, []int{5}, s.Bookmarks())
	assert.False(t, s.HasBookmark(20))

	require.Len(t, saver.saved, 3)
	assert.Equal(t, []int{5}, saver.saved[2].Bookmarks)
}

func TestBookmarksStaySortedAndUnique(t *testing.T) {
	s := NewStore(Record{}, nil)
	rng := rand.New(rand.NewSource(7))

	for i := 0; i < 500; i++ {
		_, err := s.ToggleBookmark(rng.Intn(40))
		require.NoError(t, err)

		b := s.Bookmarks()
		assert.True(t, slices.IsSorted(b), "bookmarks not sorted: %v", b)
		assert.Equal(t, len(b), len(slices.Compact(slices.Clone(b))), "duplicate bookmarks: %v", b)
	}
}

func TestNextPrevBookmark(t *testing.T) {
	s := NewStore(Record{Bookmarks: []int{10, 20, 30}}, nil)

	tests := []struct {
		name     string
		fn       func(int) (int, bool)
		from     int
		want     int
		wantFind bool
	}{
		{"next from start", s.NextBookmark, 0, 10, true},
		{"next skips current", s.NextBookmark, 10, 20, true},
		{"next between", s.NextBookmark, 15, 20, true},
		{"next past last", s.NextBookmark, 30, 0, false},
		{"prev from end", s.PrevBookmark, 100, 30, true},
		{"prev skips current", s.PrevBookmark, 20, 10, true},
		{"prev before first", s.PrevBookmark, 10, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := tt.fn(tt.from)
			assert.Equal(t, tt.wantFind, ok)
			if ok {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestNextPrevRoundTrip(t *testing.T) {
	s := NewStore(Record{Bookmarks: []int{3, 9, 27}}, nil)

	for l := 0; l < 30; l++ {
		next, ok := s.NextBookmark(l)
		if !ok {
			continue
		}
		back, ok := s.PrevBookmark(next)
		if ok {
			assert.LessOrEqual(t, back, l, "line %d -> %d -> %d", l, next, back)
		}
	}
}

func TestToggleMarkerIsSelfInverse(t *testing.T) {
	initial := Record{Markers: [][3]int{{1, 2, 6}}}
	s := NewStore(initial, nil)
	before := s.Markers()

	added, err := s.ToggleMarker(Span{Line: 3, Start: 0, End: 4})
	require.NoError(t, err)
	assert.True(t, added)
	assert.Len(t, s.Markers(), 2)

	added, err = s.ToggleMarker(Span{Line: 3, Start: 0, End: 4})
	require.NoError(t, err)
	assert.False(t, added)
	assert.Equal(t, before, s.Markers())
}

func TestMarkersAreNotMerged(t *testing.T) {
	s := NewStore(Record{}, nil)
	_, _ = s.ToggleMarker(Span{Line: 1, Start: 0, End: 5})
	_, _ = s.ToggleMarker(Span{Line: 1, Start: 2, End: 8})
	_, _ = s.ToggleMarker(Span{Line: 2, Start: 0, End: 3})

	assert.Equal(t, []Span{{1, 0, 5}, {1, 2, 8}}, s.MarkersOn(1))
	assert.Empty(t, s.MarkersOn(7))
}

func TestSaveFailureKeepsMutation(t *testing.T) {
	saver := &recordingSaver{err: errors.New("disk full")}
	s := NewStore(Record{}, saver)

	_, err := s.ToggleBookmark(4)
	require.Error(t, err)
	assert.True(t, s.HasBookmark(4))

	_, err = s.ToggleMarker(Span{Line: 0, Start: 1, End: 2})
	require.Error(t, err)
	assert.Len(t, s.Markers(), 1)
}

func TestToggleFocus(t *testing.T) {
	on := true
	s := NewStore(Record{FocusMode: &on}, nil)
	assert.True(t, s.Focus())

	focus, err := s.ToggleFocus()
	require.NoError(t, err)
	assert.False(t, focus)
	assert.Nil(t, s.Record().FocusMode)
}

func TestRecordIsNeverNil(t *testing.T) {
	rec := NewStore(Record{}, nil).Record()
	assert.NotNil(t, rec.Bookmarks)
	assert.NotNil(t, rec.Markers)
}
