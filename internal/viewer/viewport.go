package viewer

import "github.com/metcalfc/booklet/internal/reader"

const (
	// AnchorRow is the screen row the current line is pinned to.
	AnchorRow = 15
	// GutterWidth is the number of columns between the left padding and
	// the text: a five digit line number, a space, the bookmark glyph and
	// a space.
	GutterWidth = 8
)

// Viewport is the navigation state: the current line of a document with
// a known line count, and the terminal size it is shown in.
//
// Every transition reports whether it changed anything, and only changes
// mark the viewport dirty.
type Viewport struct {
	line   int
	count  int
	width  int
	height int
	dirty  bool
}

// NewViewport returns a dirty viewport at line 0.
func NewViewport(count, width, height int) *Viewport {
	return &Viewport{
		count:  max(0, count),
		width:  max(0, width),
		height: max(0, height),
		dirty:  true,
	}
}

// Line returns the current line.
func (v *Viewport) Line() int { return v.line }

// Width returns the terminal width.
func (v *Viewport) Width() int { return v.width }

// Height returns the terminal height.
func (v *Viewport) Height() int { return v.height }

// LeftPad returns the number of blank columns that center a line of
// nominal width.
func (v *Viewport) LeftPad() int {
	return max(0, v.width/2-reader.NominalWidth/2)
}

func (v *Viewport) last() int {
	return max(0, v.count-1)
}

// MoveUp moves one line towards the start.
func (v *Viewport) MoveUp() bool {
	return v.JumpTo(v.line - 1)
}

// MoveDown moves one line towards the end.
func (v *Viewport) MoveDown() bool {
	return v.JumpTo(v.line + 1)
}

// Top moves to the first line.
func (v *Viewport) Top() bool {
	return v.JumpTo(0)
}

// Bottom moves to the last line.
func (v *Viewport) Bottom() bool {
	return v.JumpTo(v.last())
}

// JumpTo moves to line, clamped to the document.
func (v *Viewport) JumpTo(line int) bool {
	line = min(max(line, 0), v.last())
	if line == v.line {
		return false
	}
	v.line = line
	v.dirty = true
	return true
}

// Resize records a new terminal size. It always marks the viewport dirty.
func (v *Viewport) Resize(width, height int) {
	v.width = max(0, width)
	v.height = max(0, height)
	v.dirty = true
}

// Invalidate marks the viewport dirty without moving it.
func (v *Viewport) Invalidate() {
	v.dirty = true
}

// Dirty reports whether the screen needs a repaint.
func (v *Viewport) Dirty() bool { return v.dirty }

// Clean clears the dirty flag after a repaint.
func (v *Viewport) Clean() { v.dirty = false }
