// ABOUTME: TUI initialization and control channels
// ABOUTME: Wraps the bubbletea program for the note keyboard
package ui

import (
	tea "github.com/charmbracelet/bubbletea"
)

// NoteMsg asks for a note on an instrument
type NoteMsg struct {
	Instrument string
	Pitch      int
}

// ControlKind identifies a non-note request
type ControlKind int

const (
	ControlVolume ControlKind = iota
	ControlClick
	ControlReset
)

// ControlMsg carries volume, hotspot and reset requests
type ControlMsg struct {
	Kind   ControlKind
	Volume int
	Muted  bool
}

// QuitMsg signals that the user left the TUI
type QuitMsg struct{}

// Keyboard holds the channels the TUI writes to
type Keyboard struct {
	Notes    chan NoteMsg
	Controls chan ControlMsg
	Quit     chan QuitMsg
}

// NewKeyboard creates a keyboard with buffered channels
func NewKeyboard() *Keyboard {
	return &Keyboard{
		Notes:    make(chan NoteMsg, 16),
		Controls: make(chan ControlMsg, 10),
		Quit:     make(chan QuitMsg, 1),
	}
}

// NewModel creates a new TUI model
func NewModel(kb *Keyboard, instruments []string) Model {
	return Model{
		keyboard:    kb,
		instruments: instruments,
		basePitch:   DefaultBasePitch,
		volume:      100,
		lastSlot:    -1,
	}
}

// Run creates the TUI program; the caller runs it
func Run(kb *Keyboard, instruments []string) *tea.Program {
	return tea.NewProgram(NewModel(kb, instruments), tea.WithAltScreen())
}
