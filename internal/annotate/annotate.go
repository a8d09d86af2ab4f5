// Package annotate holds the persisted annotations of a document: bookmarks,
// markers and the focus mode flag.
package annotate

import (
	"fmt"
	"slices"
)

// Span is the half-open rune range [Start, End) of one encoded document
// line.
type Span struct {
	Line  int
	Start int
	End   int
}

func (s Span) String() string {
	return fmt.Sprintf("%d:%d-%d", s.Line, s.Start, s.End)
}

// Saver persists a snapshot of the annotations.
type Saver interface {
	Save(Record) error
}

// Store is the in-memory annotation set. Bookmarks are unique and sorted
// ascending; markers keep insertion order.
//
// Every mutation is saved immediately. A failed save is returned to the
// caller but the mutation is kept.
type Store struct {
	bookmarks []int
	markers   []Span
	focus     bool
	saver     Saver
}

// NewStore builds a store from a loaded record. saver may be nil.
func NewStore(rec Record, saver Saver) *Store {
	s := &Store{
		bookmarks: normalizeBookmarks(rec.Bookmarks),
		markers:   make([]Span, 0, len(rec.Markers)),
		focus:     rec.FocusMode != nil && *rec.FocusMode,
		saver:     saver,
	}
	for _, m := range rec.Markers {
		s.markers = append(s.markers, Span{Line: m[0], Start: m[1], End: m[2]})
	}
	return s
}

func normalizeBookmarks(in []int) []int {
	out := slices.Clone(in)
	slices.Sort(out)
	return slices.Compact(out)
}

// Record returns the persisted form of the store.
func (s *Store) Record() Record {
	rec := Record{
		Bookmarks: slices.Clone(s.bookmarks),
		Markers:   make([][3]int, 0, len(s.markers)),
	}
	if rec.Bookmarks == nil {
		rec.Bookmarks = []int{}
	}
	for _, m := range s.markers {
		rec.Markers = append(rec.Markers, [3]int{m.Line, m.Start, m.End})
	}
	if s.focus {
		on := true
		rec.FocusMode = &on
	}
	return rec
}

func (s *Store) save() error {
	if s.saver == nil {
		return nil
	}
	return s.saver.Save(s.Record())
}

// Bookmarks returns a copy of the sorted bookmark lines.
func (s *Store) Bookmarks() []int {
	return slices.Clone(s.bookmarks)
}

// HasBookmark reports whether line is bookmarked.
func (s *Store) HasBookmark(line int) bool {
	_, ok := slices.BinarySearch(s.bookmarks, line)
	return ok
}

// ToggleBookmark removes the bookmark on line if present, otherwise adds it.
func (s *Store) ToggleBookmark(line int) (added bool, err error) {
	if i, ok := slices.BinarySearch(s.bookmarks, line); ok {
		s.bookmarks = slices.Delete(s.bookmarks, i, i+1)
	} else {
		s.bookmarks = append(s.bookmarks, line)
		slices.Sort(s.bookmarks)
		added = true
	}
	return added, s.save()
}

// NextBookmark returns the first bookmark after line.
func (s *Store) NextBookmark(line int) (int, bool) {
	for _, b := range s.bookmarks {
		if b > line {
			return b, true
		}
	}
	return 0, false
}

// PrevBookmark returns the last bookmark before line.
func (s *Store) PrevBookmark(line int) (int, bool) {
	for i := len(s.bookmarks) - 1; i >= 0; i-- {
		if s.bookmarks[i] < line {
			return s.bookmarks[i], true
		}
	}
	return 0, false
}

// Markers returns a copy of the markers in insertion order.
func (s *Store) Markers() []Span {
	return slices.Clone(s.markers)
}

// MarkersOn returns the markers of one line in insertion order.
func (s *Store) MarkersOn(line int) []Span {
	var out []Span
	for _, m := range s.markers {
		if m.Line == line {
			out = append(out, m)
		}
	}
	return out
}

// ToggleMarker removes a marker equal to span if present, otherwise
// appends span. Overlapping markers are independent.
func (s *Store) ToggleMarker(span Span) (added bool, err error) {
	if i := slices.Index(s.markers, span); i >= 0 {
		s.markers = slices.Delete(s.markers, i, i+1)
	} else {
		s.markers = append(s.markers, span)
		added = true
	}
	return added, s.save()
}

// Focus reports whether focus mode is on.
func (s *Store) Focus() bool {
	return s.focus
}

// ToggleFocus flips focus mode and returns the new state.
func (s *Store) ToggleFocus() (bool, error) {
	s.focus = !s.focus
	return s.focus, s.save()
}
