package main

import (
	"context"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/metcalfc/booklet/internal/dictionary"
	"github.com/metcalfc/booklet/internal/viewer"
	"github.com/rs/zerolog/log"
)

// lookupFunc fetches the definition of a word.
type lookupFunc func(ctx context.Context, word string) (dictionary.Definition, error)

// positionStore remembers where reading stopped.
type positionStore interface {
	SetLine(key string, line int) error
}

type model struct {
	// ctx bounds background work; it ends when the program does.
	ctx context.Context

	session *viewer.Session
	keys    keyMap
	input   *translator
	help    help.Model

	lookup  lookupFunc
	timeout time.Duration

	positions positionStore
	docKey    string

	frame string
}

func newModel(ctx context.Context, session *viewer.Session, lookup lookupFunc, timeout time.Duration) *model {
	keys := defaultKeyMap()
	m := &model{
		ctx:     ctx,
		session: session,
		keys:    keys,
		input:   &translator{keys: keys},
		help:    help.New(),
		lookup:  lookup,
		timeout: timeout,
	}
	m.updateHelp()
	return m
}

func (m *model) Init() tea.Cmd {
	return nil
}

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd viewer.Command

	switch msg := msg.(type) {
	case tea.KeyMsg:
		cmd = m.input.translate(msg)
		m.updateHelp()
	case tea.MouseMsg:
		cmd = mouseCommand(msg)
	case tea.WindowSizeMsg:
		m.help.Width = msg.Width
		m.updateHelp()
		cmd = viewer.Resize{Width: msg.Width, Height: msg.Height}
	case viewer.DefinitionResult:
		cmd = msg
	}

	if cmd == nil {
		return m, nil
	}
	return m, m.apply(cmd)
}

func (m *model) apply(cmd viewer.Command) tea.Cmd {
	out := m.session.Handle(cmd)
	switch {
	case out.Quit:
		m.savePosition()
		return tea.Quit
	case out.Lookup != nil:
		return m.lookupCmd(*out.Lookup)
	}
	return nil
}

// lookupCmd runs the lookup off the event loop and reports back with a
// DefinitionResult. Quitting cancels a request still in flight.
func (m *model) lookupCmd(req viewer.LookupRequest) tea.Cmd {
	parent, lookup, timeout := m.ctx, m.lookup, m.timeout
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(parent, timeout)
		defer cancel()

		def, err := lookup(ctx, req.Word)
		return viewer.DefinitionResult{ID: req.ID, Span: req.Span, Definition: def, Err: err}
	}
}

func (m *model) updateHelp() {
	if m.input.pending {
		m.session.SetHelp(m.help.ShortHelpView(m.keys.gotoHelp()))
		return
	}
	m.session.SetHelp(m.help.View(m.keys))
}

func (m *model) savePosition() {
	if m.positions == nil || m.docKey == "" {
		return
	}
	if err := m.positions.SetLine(m.docKey, m.session.Line()); err != nil {
		log.Warn().Err(err).Msg("save reading position")
	}
}

// View returns the cached frame, recomposing it only when the session
// changed.
func (m *model) View() string {
	if !m.session.Dirty() {
		return m.frame
	}

	var b strings.Builder
	if err := m.session.Render(&b); err != nil {
		log.Error().Err(err).Msg("render frame")
		return m.frame
	}
	m.frame = b.String()
	return m.frame
}
