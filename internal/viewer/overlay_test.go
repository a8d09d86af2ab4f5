package viewer

import (
	"strings"
	"testing"

	"github.com/metcalfc/booklet/internal/annotate"
	"github.com/metcalfc/booklet/internal/dictionary"
	"github.com/metcalfc/booklet/internal/markup"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefinitionRows(t *testing.T) {
	def := dictionary.Definition{
		Word:     "word",
		Meanings: []string{"short", "one two three four five six seven"},
	}

	rows := definitionRows(def, 20)
	for i := range rows {
		rows[i] = strings.TrimRight(rows[i], " ")
	}

	want := []string{
		"",
		string(markup.Underline) + "word" + string(markup.NoUnderline),
		"1. short",
		"2. one two three",
		"   four five six",
		"   seven",
		"",
	}
	assert.Equal(t, want, rows)
}

func TestDefinitionRowsStripSentinels(t *testing.T) {
	def := dictionary.Definition{
		Word:     "odd" + string(markup.MarkerBackground),
		Meanings: []string{"has " + string(markup.Reset) + "codes"},
	}

	rows := definitionRows(def, definitionWidth)
	require.Len(t, rows, 4)
	assert.Equal(t, "odd", markup.Strip(rows[1]))
	assert.Equal(t, "1. has codes", rows[2])
}

func TestRowMappingWithOverlay(t *testing.T) {
	s := newTestSession(t, numberedLines(40), annotate.Record{}, nil)
	s.overlay = &overlay{
		anchor: annotate.Span{Line: 2, Start: 0, End: 4},
		rows:   []string{"", "a", "b", ""},
	}
	n := len(s.overlay.rows)

	tests := []struct {
		name    string
		current int
		row     int
		want    pageRow
	}{
		{"current line", 0, AnchorRow, pageRow{documentRow, 0}},
		{"anchor line", 0, AnchorRow + 2, pageRow{documentRow, 2}},
		{"first overlay row", 0, AnchorRow + 3, pageRow{definitionRow, 0}},
		{"last overlay row", 0, AnchorRow + 2 + n, pageRow{definitionRow, n - 1}},
		{"line after overlay", 0, AnchorRow + 3 + n, pageRow{documentRow, 3}},
		{"above first line", 0, AnchorRow - 1, pageRow{kind: blankRow}},
		{"current below anchor", 5, AnchorRow, pageRow{documentRow, 5}},
		{"previous lines", 5, AnchorRow - 2, pageRow{documentRow, 3}},
		{"overlay above current", 5, AnchorRow - 3, pageRow{definitionRow, n - 1}},
		{"anchor above current", 5, AnchorRow - 3 - n, pageRow{documentRow, 2}},
		{"past the end", 39, AnchorRow + 1, pageRow{kind: blankRow}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s.view.JumpTo(tt.current)
			assert.Equal(t, tt.want, s.rowAt(tt.row))
		})
	}
}

func TestClickOnOverlaySelectsNothing(t *testing.T) {
	s := newTestSession(t, numberedLines(10), annotate.Record{}, nil)
	s.overlay = newOverlay(annotate.Span{Line: 0, Start: 0, End: 4}, dictionary.Definition{
		Word:     "line",
		Meanings: []string{"A long thin mark."},
	})

	s.Handle(Click{Col: GutterWidth + 1, Row: AnchorRow + 2})
	_, ok := s.Selection()
	assert.False(t, ok)

	// The first document line after the overlay is still selectable.
	s.Handle(Click{Col: GutterWidth + 1, Row: AnchorRow + 1 + len(s.overlay.rows)})
	sel, ok := s.Selection()
	require.True(t, ok)
	assert.Equal(t, annotate.Span{Line: 1, Start: 0, End: 4}, sel)
}
