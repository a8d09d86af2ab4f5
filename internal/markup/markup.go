// Package markup implements the private sentinel markup used between loading
// a document and writing it to the terminal.
//
// Every style directive is a single rune from the Unicode private use area.
// Sentinels occupy exactly one rune position, so column arithmetic over an
// encoded line stays stable until Palette.Render expands them into escape
// sequences.
package markup

import (
	"strings"
	"unicode"
)

// Style is a single style directive embedded in encoded text.
type Style rune

const (
	Reset Style = '\uE000'

	Italic   Style = '\uE003'
	NoItalic Style = '\uE023'

	Underline   Style = '\uE004'
	NoUnderline Style = '\uE024'

	ResetForeground   Style = '\uE100'
	DefaultForeground Style = '\uE101'

	ResetBackground     Style = '\uE200'
	MarkerBackground    Style = '\uE201'
	SelectionBackground Style = '\uE202'
)

var styles = map[rune]Style{
	rune(Reset):               Reset,
	rune(Italic):              Italic,
	rune(NoItalic):            NoItalic,
	rune(Underline):           Underline,
	rune(NoUnderline):         NoUnderline,
	rune(ResetForeground):     ResetForeground,
	rune(DefaultForeground):   DefaultForeground,
	rune(ResetBackground):     ResetBackground,
	rune(MarkerBackground):    MarkerBackground,
	rune(SelectionBackground): SelectionBackground,
}

// Lookup reports whether r is a sentinel and returns its Style.
func Lookup(r rune) (Style, bool) {
	s, ok := styles[r]
	return s, ok
}

// IsSentinel reports whether r is one of the style sentinels.
func IsSentinel(r rune) bool {
	_, ok := styles[r]
	return ok
}

func (s Style) String() string {
	return string(rune(s))
}

// Emphasize encodes the underscore emphasis convention of plain text books.
//
// An underscore toggles italics and is consumed. When a line ends inside an
// emphasized run, italics are closed at the newline and resumed before the
// first non-whitespace rune of the following text.
func Emphasize(raw string) string {
	var b strings.Builder
	b.Grow(len(raw))

	open := false
	resume := false
	for _, r := range raw {
		if r == '_' {
			open = !open
			resume = false
			if open {
				b.WriteRune(rune(Italic))
			} else {
				b.WriteRune(rune(NoItalic))
			}
			continue
		}
		if r == '\n' && open {
			b.WriteRune(rune(NoItalic))
			resume = true
		}
		if resume && !unicode.IsSpace(r) {
			resume = false
			b.WriteRune(rune(Italic))
		}
		b.WriteRune(r)
	}
	return b.String()
}

// Strip removes every sentinel from line.
func Strip(line string) string {
	return strings.Map(func(r rune) rune {
		if IsSentinel(r) {
			return -1
		}
		return r
	}, line)
}
