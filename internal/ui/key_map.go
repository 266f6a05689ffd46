package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines the [key.Binding] mapping for the sync screen.
type keyMap struct {
	play    key.Binding
	pause   key.Binding
	stop    key.Binding
	advance key.Binding
	rewind  key.Binding
	undo    key.Binding
	save    key.Binding
	yes     key.Binding
	no      key.Binding
	resume  key.Binding
	quit    key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		play:    key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "play from start")),
		pause:   key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "pause/resume")),
		stop:    key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "stop")),
		advance: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "next line")),
		rewind:  key.NewBinding(key.WithKeys("backspace"), key.WithHelp("bksp", "back line")),
		undo:    key.NewBinding(key.WithKeys("u"), key.WithHelp("u", "undo timestamp")),
		save:    key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "save")),
		yes:     key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "yes")),
		no:      key.NewBinding(key.WithKeys("n", "esc"), key.WithHelp("n", "no")),
		resume:  key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "back to sync")),
		quit:    key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.pause, k.advance, k.rewind, k.save, k.quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.play, k.pause, k.stop},
		{k.advance, k.rewind, k.undo},
		{k.save, k.quit},
	}
}
