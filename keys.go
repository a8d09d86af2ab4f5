package main

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/metcalfc/booklet/internal/viewer"
)

type keyMap struct {
	Quit           key.Binding
	Down           key.Binding
	Up             key.Binding
	Goto           key.Binding
	ToggleBookmark key.Binding
	Mark           key.Binding
	Define         key.Binding
	Focus          key.Binding
	Cancel         key.Binding
	NextChapter    key.Binding
	PrevChapter    key.Binding

	// Second key after Goto.
	Top          key.Binding
	Bottom       key.Binding
	NextBookmark key.Binding
	PrevBookmark key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Quit:           key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
		Down:           key.NewBinding(key.WithKeys("j", "down"), key.WithHelp("j/↓", "down")),
		Up:             key.NewBinding(key.WithKeys("k", "up"), key.WithHelp("k/↑", "up")),
		Goto:           key.NewBinding(key.WithKeys("g"), key.WithHelp("g", "go to")),
		ToggleBookmark: key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "bookmark")),
		Mark:           key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "mark")),
		Define:         key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "define")),
		Focus:          key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "focus")),
		Cancel:         key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "clear")),
		NextChapter:    key.NewBinding(key.WithKeys("]"), key.WithHelp("]", "next chapter")),
		PrevChapter:    key.NewBinding(key.WithKeys("["), key.WithHelp("[", "prev chapter")),

		Top:          key.NewBinding(key.WithKeys("g"), key.WithHelp("g", "top")),
		Bottom:       key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "end")),
		NextBookmark: key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "next bookmark")),
		PrevBookmark: key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "prev bookmark")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Down, k.Up, k.Goto, k.ToggleBookmark, k.Mark, k.Define, k.Focus, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Down, k.Up, k.NextChapter, k.PrevChapter},
		{k.Goto, k.Top, k.Bottom, k.NextBookmark, k.PrevBookmark},
		{k.ToggleBookmark, k.Mark, k.Define, k.Focus, k.Cancel, k.Quit},
	}
}

// gotoHelp lists the keys that complete a pending Goto.
func (k keyMap) gotoHelp() []key.Binding {
	return []key.Binding{k.Top, k.Bottom, k.NextBookmark, k.PrevBookmark, k.Cancel}
}

// translator turns key presses into viewer commands. After Goto it waits
// for the second key: esc aborts and any other key is ignored.
type translator struct {
	keys    keyMap
	pending bool
}

func (t *translator) translate(msg tea.KeyMsg) viewer.Command {
	if t.pending {
		return t.completeGoto(msg)
	}

	switch {
	case key.Matches(msg, t.keys.Quit):
		return viewer.Quit{}
	case key.Matches(msg, t.keys.Down):
		return viewer.LineDown{}
	case key.Matches(msg, t.keys.Up):
		return viewer.LineUp{}
	case key.Matches(msg, t.keys.Goto):
		t.pending = true
	case key.Matches(msg, t.keys.ToggleBookmark):
		return viewer.ToggleBookmark{}
	case key.Matches(msg, t.keys.Mark):
		return viewer.ToggleMarker{}
	case key.Matches(msg, t.keys.Define):
		return viewer.Define{}
	case key.Matches(msg, t.keys.Focus):
		return viewer.ToggleFocus{}
	case key.Matches(msg, t.keys.Cancel):
		return viewer.Cancel{}
	case key.Matches(msg, t.keys.NextChapter):
		return viewer.NextChapter{}
	case key.Matches(msg, t.keys.PrevChapter):
		return viewer.PrevChapter{}
	}
	return nil
}

func (t *translator) completeGoto(msg tea.KeyMsg) viewer.Command {
	var cmd viewer.Command
	switch {
	case msg.Type == tea.KeyCtrlC:
		cmd = viewer.Quit{}
	case key.Matches(msg, t.keys.Top):
		cmd = viewer.Top{}
	case key.Matches(msg, t.keys.Bottom):
		cmd = viewer.Bottom{}
	case key.Matches(msg, t.keys.NextBookmark):
		cmd = viewer.NextBookmark{}
	case key.Matches(msg, t.keys.PrevBookmark):
		cmd = viewer.PrevBookmark{}
	case key.Matches(msg, t.keys.Cancel):
	default:
		return nil
	}
	t.pending = false
	return cmd
}

// mouseCommand maps a left button release to a click and the wheel to
// line moves.
func mouseCommand(msg tea.MouseMsg) viewer.Command {
	switch {
	case msg.Action == tea.MouseActionRelease &&
		(msg.Button == tea.MouseButtonLeft || msg.Button == tea.MouseButtonNone):
		return viewer.Click{Col: msg.X, Row: msg.Y}
	case msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonWheelUp:
		return viewer.LineUp{}
	case msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonWheelDown:
		return viewer.LineDown{}
	}
	return nil
}
