package viewer

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/x/ansi"
	"github.com/metcalfc/booklet/internal/annotate"
	"github.com/metcalfc/booklet/internal/dictionary"
	"github.com/metcalfc/booklet/internal/markup"
	"github.com/metcalfc/booklet/internal/reader"
)

// definitionWidth is the width definition text is wrapped to.
const definitionWidth = reader.NominalWidth - GutterWidth

// overlay is a definition shown as extra rows below its anchor line.
type overlay struct {
	anchor annotate.Span
	rows   []string
}

func newOverlay(anchor annotate.Span, def dictionary.Definition) *overlay {
	return &overlay{anchor: anchor, rows: definitionRows(def, definitionWidth)}
}

// definitionRows lays out a definition as encoded lines: a spacer, the
// underlined word, the numbered meanings with a hanging indent and a
// closing spacer.
func definitionRows(def dictionary.Definition, width int) []string {
	rows := []string{
		"",
		string(markup.Underline) + markup.Strip(def.Word) + string(markup.NoUnderline),
	}
	for i, meaning := range def.Meanings {
		prefix := strconv.Itoa(i+1) + ". "
		indent := strings.Repeat(" ", len(prefix))
		wrapped := ansi.Wordwrap(markup.Strip(meaning), max(1, width-len(prefix)), "")
		for j, l := range strings.Split(wrapped, "\n") {
			if j == 0 {
				rows = append(rows, prefix+l)
			} else {
				rows = append(rows, indent+l)
			}
		}
	}
	return append(rows, "")
}

type rowKind int

const (
	blankRow rowKind = iota
	documentRow
	definitionRow
)

// pageRow is what one screen row shows.
type pageRow struct {
	kind rowKind
	// index is a document line for documentRow and an overlay row for
	// definitionRow.
	index int
}

// virtualLine returns the position of a document line once the overlay
// rows are inserted after the anchor line.
func (s *Session) virtualLine(line int) int {
	if s.overlay == nil || line <= s.overlay.anchor.Line {
		return line
	}
	return line + len(s.overlay.rows)
}

// rowAt maps screen row i to its content. The current line sits on
// AnchorRow; rows above the first line and below the last are blank.
func (s *Session) rowAt(i int) pageRow {
	v := s.virtualLine(s.view.Line()) + i - AnchorRow
	if v < 0 {
		return pageRow{kind: blankRow}
	}

	line := v
	if s.overlay != nil {
		anchor := s.overlay.anchor.Line
		n := len(s.overlay.rows)
		switch {
		case v <= anchor:
		case v <= anchor+n:
			return pageRow{kind: definitionRow, index: v - anchor - 1}
		default:
			line = v - n
		}
	}

	if line >= s.doc.Count() {
		return pageRow{kind: blankRow}
	}
	return pageRow{kind: documentRow, index: line}
}
