// Package viewer holds the state of a reading session and turns it into
// terminal frames.
package viewer

import (
	"errors"
	"fmt"

	"github.com/metcalfc/booklet/internal/annotate"
	"github.com/metcalfc/booklet/internal/dictionary"
	"github.com/metcalfc/booklet/internal/markup"
	"github.com/metcalfc/booklet/internal/reader"
	"github.com/rs/zerolog/log"
)

// Status messages.
const (
	msgAddedBookmark   = "(i) Added bookmark"
	msgRemovedBookmark = "(i) Removed bookmark"
	msgAddedMarker     = "(i) Added marker"
	msgRemovedMarker   = "(i) Removed marker"
	msgToggledFocus    = "(i) Toggled focus mode"
	msgNoSelection     = "(i) No selection found"
	msgNoText          = "(i) No text at specified selection"
	msgNoDefinition    = "(i) No definition found"
)

// Session is the complete state of one open document. It is owned by a
// single event loop; Handle applies one command at a time.
type Session struct {
	doc   *reader.Document
	store *annotate.Store
	view  *Viewport
	theme Theme

	selection *annotate.Span
	overlay   *overlay
	message   string
	help      string

	// lookupSeq numbers lookup requests; pending is the one whose result
	// is still wanted, 0 when none is.
	lookupSeq uint64
	pending   uint64
}

// NewSession opens a session on doc at line 0.
func NewSession(doc *reader.Document, store *annotate.Store, theme Theme, width, height int) *Session {
	return &Session{
		doc:   doc,
		store: store,
		view:  NewViewport(doc.Count(), width, height),
		theme: theme,
	}
}

// Restore moves to a saved reading position, or to the first bookmark
// after the start of the document when there is none.
func (s *Session) Restore(saved int) {
	if saved > 0 {
		s.view.JumpTo(saved)
		return
	}
	if b, ok := s.store.NextBookmark(0); ok {
		s.view.JumpTo(b)
	}
}

// SetHelp sets the key help shown in the status row when there is no
// message.
func (s *Session) SetHelp(help string) {
	if help != s.help {
		s.help = help
		s.view.Invalidate()
	}
}

// Line returns the current line.
func (s *Session) Line() int { return s.view.Line() }

// Selection returns the selected span.
func (s *Session) Selection() (annotate.Span, bool) {
	if s.selection == nil {
		return annotate.Span{}, false
	}
	return *s.selection, true
}

// Definition returns the definition on screen.
func (s *Session) Definition() (annotate.Span, []string, bool) {
	if s.overlay == nil {
		return annotate.Span{}, nil, false
	}
	return s.overlay.anchor, s.overlay.rows, true
}

// Message returns the status message.
func (s *Session) Message() string { return s.message }

// Focus reports whether focus mode is on.
func (s *Session) Focus() bool { return s.store.Focus() }

// Dirty reports whether the next frame differs from the last one rendered.
func (s *Session) Dirty() bool { return s.view.Dirty() }

// Handle applies cmd.
func (s *Session) Handle(cmd Command) Outcome {
	switch c := cmd.(type) {
	case LineUp:
		s.moved(s.view.MoveUp())
	case LineDown:
		s.moved(s.view.MoveDown())
	case Top:
		s.moved(s.view.Top())
	case Bottom:
		s.moved(s.view.Bottom())
	case NextBookmark:
		if b, ok := s.store.NextBookmark(s.view.Line()); ok {
			s.moved(s.view.JumpTo(b))
		}
	case PrevBookmark:
		if b, ok := s.store.PrevBookmark(s.view.Line()); ok {
			s.moved(s.view.JumpTo(b))
		}
	case NextChapter:
		if l, ok := s.doc.NextChapter(s.view.Line()); ok {
			s.moved(s.view.JumpTo(l))
		}
	case PrevChapter:
		if l, ok := s.doc.PrevChapter(s.view.Line()); ok {
			s.moved(s.view.JumpTo(l))
		}
	case ToggleBookmark:
		return s.toggleBookmark()
	case ToggleMarker:
		return s.toggleMarker()
	case ToggleFocus:
		_, err := s.store.ToggleFocus()
		return s.persisted(msgToggledFocus, err)
	case Define:
		return s.define()
	case Cancel:
		s.cancel()
	case Quit:
		return Outcome{Quit: true}
	case Click:
		s.click(c.Col, c.Row)
	case Resize:
		s.view.Resize(c.Width, c.Height)
	case DefinitionResult:
		s.definitionResult(c)
	}
	return Outcome{}
}

// moved clears the status message after the viewport changed.
func (s *Session) moved(changed bool) {
	if changed {
		s.message = ""
	}
}

func (s *Session) show(msg string) {
	if msg != s.message {
		s.message = msg
		s.view.Invalidate()
	}
}

// persisted shows msg, or the save error when the mutation could not be
// written.
func (s *Session) persisted(msg string, err error) Outcome {
	s.view.Invalidate()
	if err != nil {
		log.Warn().Err(err).Msg("save annotations")
		s.show(fmt.Sprintf("(!) Could not save annotations: %v", err))
		return Outcome{Err: err}
	}
	s.show(msg)
	return Outcome{}
}

func (s *Session) toggleBookmark() Outcome {
	added, err := s.store.ToggleBookmark(s.view.Line())
	msg := msgRemovedBookmark
	if added {
		msg = msgAddedBookmark
	}
	return s.persisted(msg, err)
}

func (s *Session) toggleMarker() Outcome {
	if s.selection == nil {
		s.show(msgNoSelection)
		return Outcome{}
	}
	added, err := s.store.ToggleMarker(*s.selection)
	msg := msgRemovedMarker
	if added {
		msg = msgAddedMarker
	}
	return s.persisted(msg, err)
}

func (s *Session) define() Outcome {
	if s.selection == nil {
		s.show(msgNoSelection)
		return Outcome{}
	}
	span := *s.selection
	line, _ := s.doc.Line(span.Line)
	word := markup.Slice(line, span.Start, span.End)
	if word == "" {
		s.show(msgNoText)
		return Outcome{}
	}

	// A new lookup replaces whatever definition is on screen.
	s.overlay = nil
	s.lookupSeq++
	s.pending = s.lookupSeq
	s.show(fmt.Sprintf("(i) Looking up %q", word))
	log.Debug().Uint64("id", s.pending).Str("word", word).Msg("lookup requested")
	return Outcome{Lookup: &LookupRequest{ID: s.pending, Span: span, Word: word}}
}

func (s *Session) definitionResult(r DefinitionResult) {
	if r.ID == 0 || r.ID != s.pending {
		log.Debug().Uint64("id", r.ID).Uint64("pending", s.pending).Msg("stale lookup result dropped")
		return
	}
	s.pending = 0

	switch {
	case errors.Is(r.Err, dictionary.ErrNotFound):
		s.show(msgNoDefinition)
	case r.Err != nil:
		log.Warn().Err(r.Err).Msg("lookup failed")
		s.show(fmt.Sprintf("(!) %v", r.Err))
	default:
		s.overlay = newOverlay(r.Span, r.Definition)
		s.message = ""
		s.view.Invalidate()
	}
}

func (s *Session) cancel() {
	s.pending = 0
	if s.selection == nil && s.overlay == nil && s.message == "" {
		return
	}
	s.selection = nil
	s.overlay = nil
	s.message = ""
	s.view.Invalidate()
}

func (s *Session) click(col, row int) {
	if row < 0 || row >= s.pageRows() {
		return
	}
	left := s.view.LeftPad() + GutterWidth
	if col < left {
		return
	}

	r := s.rowAt(row)
	if r.kind != documentRow {
		return
	}
	line, _ := s.doc.Line(r.index)
	start, end, ok := WordSpanAt(markup.Strip(line), col-left)
	if !ok {
		return
	}
	start, end = markup.EncodedRange(line, start, end)

	span := annotate.Span{Line: r.index, Start: start, End: end}
	if s.selection != nil && *s.selection == span {
		return
	}
	s.selection = &span
	s.view.Invalidate()
}

// pageRows is the number of document rows above the status row.
func (s *Session) pageRows() int {
	return max(0, s.view.Height()-1)
}
