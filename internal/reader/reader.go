// Package reader loads a book into the immutable, line addressed document
// the viewer renders.
package reader

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/metcalfc/booklet/internal/markup"
	"github.com/rs/zerolog/log"
)

// NominalWidth is the column width books are laid out for. It only feeds
// the centering math.
const NominalWidth = 80

// ErrFormat is returned when a file does not hold valid UTF-8 text.
var ErrFormat = errors.New("not valid UTF-8 text")

// Document holds the encoded lines of a loaded book.
type Document struct {
	Path     string
	Format   string
	Lines    []string
	Chapters []Chapter
}

// Load reads filename with the format registered for its extension and
// builds the document from the extracted text.
func Load(filename string) (*Document, error) {
	f := FormatFor(filename)
	text, err := f.Extract(filename)
	if err != nil {
		return nil, err
	}
	if !utf8.ValidString(text) {
		return nil, fmt.Errorf("%s: %w", filename, ErrFormat)
	}

	doc := Parse(text, f)
	doc.Path = filename
	doc.Format = f.Name()

	log.Debug().
		Str("path", filename).
		Str("format", doc.Format).
		Int("lines", doc.Count()).
		Int("chapters", len(doc.Chapters)).
		Msg("document loaded")
	return doc, nil
}

// Parse strips the license block, encodes emphasis and splits text into
// lines. CRLF endings are normalized before encoding so no carriage return
// survives inside a line. Chapters are found with the heading rule of f, or
// of plain text when f is nil.
func Parse(text string, f Format) *Document {
	if f == nil {
		f = &PlainFormat{}
	}
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = StripLicense(text)
	text = markup.Emphasize(text)
	lines := splitLines(text)
	return &Document{
		Lines:    lines,
		Chapters: FindChapters(lines, f),
	}
}

func splitLines(text string) []string {
	text = strings.TrimSuffix(text, "\n")
	if text == "" {
		return nil
	}
	return strings.Split(text, "\n")
}

// Count returns the number of lines.
func (d *Document) Count() int {
	return len(d.Lines)
}

// LastLine returns the index of the last line, or 0 for an empty document.
func (d *Document) LastLine() int {
	return max(0, len(d.Lines)-1)
}

// Line returns the encoded line at index i.
func (d *Document) Line(i int) (string, bool) {
	if i < 0 || i >= len(d.Lines) {
		return "", false
	}
	return d.Lines[i], true
}

// ChapterAt returns the chapter containing line.
func (d *Document) ChapterAt(line int) (Chapter, bool) {
	for i := len(d.Chapters) - 1; i >= 0; i-- {
		if line >= d.Chapters[i].Line {
			return d.Chapters[i], true
		}
	}
	return Chapter{}, false
}

// NextChapter returns the first chapter starting after line.
func (d *Document) NextChapter(line int) (int, bool) {
	for _, c := range d.Chapters {
		if c.Line > line {
			return c.Line, true
		}
	}
	return 0, false
}

// PrevChapter returns the last chapter starting before line.
func (d *Document) PrevChapter(line int) (int, bool) {
	for i := len(d.Chapters) - 1; i >= 0; i-- {
		if d.Chapters[i].Line < line {
			return d.Chapters[i].Line, true
		}
	}
	return 0, false
}
