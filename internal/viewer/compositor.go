package viewer

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/metcalfc/booklet/internal/markup"
)

// bookmarkGlyph marks bookmarked lines in the gutter.
const bookmarkGlyph = "▌"

var (
	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888"))

	messageStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFAA00")).
			Bold(true)

	progressStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666")).
			Italic(true)
)

// Render writes a full frame to w: the page rows followed by the status
// row. The session is clean afterwards unless writing failed.
func (s *Session) Render(w io.Writer) error {
	rows := s.pageRows()
	for i := 0; i < rows; i++ {
		if _, err := io.WriteString(w, s.renderRow(i)+"\n"); err != nil {
			return fmt.Errorf("write row %d: %w", i, err)
		}
	}
	if s.view.Height() > 0 {
		if _, err := io.WriteString(w, s.statusRow()); err != nil {
			return fmt.Errorf("write status: %w", err)
		}
	}
	s.view.Clean()
	return nil
}

// renderRow composes screen row i.
func (s *Session) renderRow(i int) string {
	r := s.rowAt(i)
	switch r.kind {
	case documentRow:
		return s.gutter(i, r.index) + s.text(i, s.layered(r.index))
	case definitionRow:
		return s.gutter(i, -1) + s.text(i, s.overlay.rows[r.index])
	}
	return ""
}

// layered returns the encoded line with the selection and then every
// marker on it inserted as background spans.
func (s *Session) layered(line int) string {
	text, _ := s.doc.Line(line)
	if sel := s.selection; sel != nil && sel.Line == line {
		text = markup.Insert(text, sel.Start, sel.End, markup.SelectionBackground, markup.ResetBackground)
	}
	for _, m := range s.store.MarkersOn(line) {
		text = markup.Insert(text, m.Start, m.End, markup.MarkerBackground, markup.ResetBackground)
	}
	return text
}

// gutter renders the left padding, the line number and the bookmark
// glyph. line is -1 for rows that are not document lines.
func (s *Session) gutter(i, line int) string {
	p := s.theme.Palette

	var b strings.Builder
	b.WriteString(strings.Repeat(" ", s.view.LeftPad()))

	num := ""
	if line >= 0 && (i == AnchorRow || line%5 == 0) {
		num = strconv.Itoa(line)
	}
	if i == AnchorRow {
		b.WriteString(p.Foreground(s.theme.Anchor))
	} else {
		b.WriteString(p.Foreground(s.theme.Gutter))
	}
	fmt.Fprintf(&b, "%5s ", num)

	if line >= 0 && s.store.HasBookmark(line) {
		b.WriteString(p.Foreground(s.theme.Bookmark))
		b.WriteString(bookmarkGlyph)
	} else {
		b.WriteByte(' ')
	}
	b.WriteString(ansi.ResetStyle)
	b.WriteByte(' ')
	return b.String()
}

// text renders an encoded line in the text color of row i.
func (s *Session) text(i int, line string) string {
	p := s.theme.Palette
	color := s.theme.TextColor(i-AnchorRow, s.store.Focus())
	return p.Foreground(color) + p.Render(line) + ansi.ResetStyle
}

// statusRow shows the message, or the key help, on the left and the
// chapter and progress on the right.
func (s *Session) statusRow() string {
	width := s.view.Width()

	right := progressStyle.Render(s.progress())
	left := statusStyle.Render(s.help)
	if s.message != "" {
		left = messageStyle.Render(s.message)
	}

	room := width - lipgloss.Width(right) - 1
	if room < 1 {
		return ansi.Truncate(right, width, "")
	}
	left = ansi.Truncate(left, room, "…")
	gap := width - lipgloss.Width(left) - lipgloss.Width(right)
	return left + strings.Repeat(" ", max(1, gap)) + right
}

func (s *Session) progress() string {
	count := s.doc.Count()
	if count == 0 {
		return "empty"
	}
	line := s.view.Line()
	pct := (line + 1) * 100 / count
	pos := fmt.Sprintf("%d/%d %3d%%", line+1, count, pct)
	if c, ok := s.doc.ChapterAt(line); ok {
		return c.Title + "  " + pos
	}
	return pos
}
