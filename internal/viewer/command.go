package viewer

import (
	"github.com/metcalfc/booklet/internal/annotate"
	"github.com/metcalfc/booklet/internal/dictionary"
)

// Command is one user intent, produced by the key translation layer and
// applied by Session.Handle. The set is closed.
type Command interface {
	command()
}

type (
	// LineUp moves one line up.
	LineUp struct{}
	// LineDown moves one line down.
	LineDown struct{}
	// Top moves to the first line.
	Top struct{}
	// Bottom moves to the last line.
	Bottom struct{}
	// NextBookmark moves to the first bookmark after the current line.
	NextBookmark struct{}
	// PrevBookmark moves to the last bookmark before the current line.
	PrevBookmark struct{}
	// NextChapter moves to the start of the next chapter.
	NextChapter struct{}
	// PrevChapter moves to the start of the previous chapter.
	PrevChapter struct{}
	// ToggleBookmark toggles the bookmark on the current line.
	ToggleBookmark struct{}
	// ToggleMarker toggles a marker on the selection.
	ToggleMarker struct{}
	// Define requests the definition of the selection.
	Define struct{}
	// ToggleFocus toggles focus mode dimming.
	ToggleFocus struct{}
	// Cancel clears the selection, the definition and the message, and
	// drops any outstanding lookup.
	Cancel struct{}
	// Quit ends the session.
	Quit struct{}
)

// Click is a left button release at a screen cell.
type Click struct {
	Col int
	Row int
}

// Resize reports a new terminal size.
type Resize struct {
	Width  int
	Height int
}

// DefinitionResult completes the lookup with the same ID.
type DefinitionResult struct {
	ID         uint64
	Span       annotate.Span
	Definition dictionary.Definition
	Err        error
}

func (LineUp) command()           {}
func (LineDown) command()         {}
func (Top) command()              {}
func (Bottom) command()           {}
func (NextBookmark) command()     {}
func (PrevBookmark) command()     {}
func (NextChapter) command()      {}
func (PrevChapter) command()      {}
func (ToggleBookmark) command()   {}
func (ToggleMarker) command()     {}
func (Define) command()           {}
func (ToggleFocus) command()      {}
func (Cancel) command()           {}
func (Quit) command()             {}
func (Click) command()            {}
func (Resize) command()           {}
func (DefinitionResult) command() {}

// LookupRequest asks the caller to look up Word and to hand the answer
// back as a DefinitionResult carrying the same ID and Span.
type LookupRequest struct {
	ID   uint64
	Span annotate.Span
	Word string
}

// Outcome is what the caller has to do after a command was applied.
type Outcome struct {
	Quit   bool
	Lookup *LookupRequest
	// Err is a persistence failure. The session already shows it; the
	// caller may log it.
	Err error
}
