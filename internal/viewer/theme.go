package viewer

import (
	"github.com/lucasb-eyer/go-colorful"
	"github.com/metcalfc/booklet/internal/markup"
)

// focusSpan is the distance from the anchor row at which focus mode
// reaches the dim color.
const focusSpan = 12

// Theme holds the colors of the page.
type Theme struct {
	Palette markup.Palette

	Gutter   colorful.Color
	Anchor   colorful.Color
	Bookmark colorful.Color
	Dim      colorful.Color
}

// DefaultTheme returns the built-in colors.
func DefaultTheme() Theme {
	return Theme{
		Palette:  markup.DefaultPalette(),
		Gutter:   markup.RGB(130, 130, 130),
		Anchor:   markup.RGB(200, 200, 0),
		Bookmark: markup.RGB(90, 90, 0),
		Dim:      markup.RGB(60, 60, 60),
	}
}

// TextColor returns the text color of a row distance rows away from the
// anchor row. Without focus mode every row uses the palette text color.
func (t Theme) TextColor(distance int, focus bool) colorful.Color {
	if !focus || distance == 0 {
		return t.Palette.Text
	}
	if distance < 0 {
		distance = -distance
	}
	f := min(1, float64(distance)/focusSpan)
	return t.Palette.Text.BlendLab(t.Dim, f).Clamped()
}
