package markup

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/muesli/termenv"
)

var (
	italicSeq      = ansi.NewStyle().Italic().String()
	noItalicSeq    = ansi.NewStyle().NoItalic().String()
	underlineSeq   = ansi.NewStyle().Underline().String()
	noUnderlineSeq = ansi.NewStyle().NoUnderline().String()
	defaultFgSeq   = ansi.NewStyle().DefaultForegroundColor().String()
	defaultBgSeq   = ansi.NewStyle().DefaultBackgroundColor().String()
)

// Palette expands sentinels into terminal control sequences.
type Palette struct {
	// Profile limits the color sequences to what the terminal supports.
	Profile termenv.Profile

	Text      colorful.Color
	Marker    colorful.Color
	Selection colorful.Color
}

// DefaultPalette returns the true color palette used when no theme is
// configured.
func DefaultPalette() Palette {
	return Palette{
		Profile:   termenv.TrueColor,
		Text:      RGB(240, 240, 240),
		Marker:    RGB(90, 90, 0),
		Selection: RGB(100, 100, 100),
	}
}

// RGB builds a color from 8-bit channels.
func RGB(r, g, b uint8) colorful.Color {
	return colorful.Color{R: float64(r) / 255, G: float64(g) / 255, B: float64(b) / 255}
}

// Foreground returns the sequence selecting c as the foreground color, or
// an empty string when the profile has no colors.
func (p Palette) Foreground(c colorful.Color) string {
	return p.color(c, false)
}

// Background returns the sequence selecting c as the background color.
func (p Palette) Background(c colorful.Color) string {
	return p.color(c, true)
}

// color emits exact channels on true color terminals and degrades through
// the profile otherwise.
func (p Palette) color(c colorful.Color, bg bool) string {
	c = c.Clamped()
	if p.Profile == termenv.TrueColor {
		r, g, b := c.RGB255()
		rgb := ansi.RGBColor{R: r, G: g, B: b}
		if bg {
			return ansi.NewStyle().BackgroundColor(rgb).String()
		}
		return ansi.NewStyle().ForegroundColor(rgb).String()
	}

	seq := p.Profile.Convert(termenv.RGBColor(c.Hex())).Sequence(bg)
	if seq == "" {
		return ""
	}
	return termenv.CSI + seq + "m"
}

// Sequence returns the control sequence for s.
func (p Palette) Sequence(s Style) string {
	switch s {
	case Reset:
		return ansi.ResetStyle
	case Italic:
		return italicSeq
	case NoItalic:
		return noItalicSeq
	case Underline:
		return underlineSeq
	case NoUnderline:
		return noUnderlineSeq
	case ResetForeground:
		return defaultFgSeq
	case DefaultForeground:
		return p.Foreground(p.Text)
	case ResetBackground:
		return defaultBgSeq
	case MarkerBackground:
		return p.Background(p.Marker)
	case SelectionBackground:
		return p.Background(p.Selection)
	}
	return ""
}

// Render translates an encoded line into terminal output. Runes that are
// not sentinels are copied verbatim.
func (p Palette) Render(line string) string {
	var b strings.Builder
	b.Grow(len(line) + 16)
	for _, r := range line {
		if s, ok := Lookup(r); ok {
			b.WriteString(p.Sequence(s))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
