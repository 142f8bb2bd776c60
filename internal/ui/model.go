// ABOUTME: Bubbletea model for the note keyboard
// ABOUTME: Maps keys to pitches and renders instrument status
package ui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

const (
	// DefaultBasePitch is middle C
	DefaultBasePitch = 60
	minBasePitch     = 12
	maxBasePitch     = 108
)

// noteKeys maps keys to semitones above the base pitch, laid out like a
// piano on the home row
var noteKeys = map[string]int{
	"a": 0, "w": 1, "s": 2, "e": 3, "d": 4, "f": 5, "t": 6,
	"g": 7, "y": 8, "h": 9, "u": 10, "j": 11, "k": 12,
}

// Model represents the TUI state
type Model struct {
	keyboard *Keyboard

	instruments []string
	current     int
	basePitch   int

	// Last note
	lastPitch    int
	lastSlot     int
	remaining    int
	playing      bool
	status       string
	hotspot      string
	notesSent    int
	notesDropped int

	volume int
	muted  bool

	width  int
	height int
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	case StatusMsg:
		m.applyStatus(msg)
	}

	return m, nil
}

// View renders the TUI
func (m Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString(m.renderNote())
	b.WriteString(m.renderControls())
	b.WriteString(m.renderHelp())
	return b.String()
}

// Instrument returns the selected instrument name
func (m Model) Instrument() string {
	if len(m.instruments) == 0 {
		return ""
	}
	return m.instruments[m.current]
}

func (m Model) renderHeader() string {
	inst := m.Instrument()
	if inst == "" {
		inst = "(none)"
	}
	return fmt.Sprintf(`┌─ notewave ───────────────────────────────────────────┐
│ Instrument: %-40s │
│ Octave:     C%-39d │
├──────────────────────────────────────────────────────┤
`, truncate(inst, 40), m.basePitch/12-1)
}

func (m Model) renderNote() string {
	if m.notesSent == 0 {
		return "│ No notes played                                      │\n"
	}

	slot := "none"
	if m.lastSlot >= 0 {
		slot = fmt.Sprint(m.lastSlot)
	}
	state := "idle"
	if m.playing {
		state = "playing"
	}
	s := fmt.Sprintf("│ Pitch: %-4d Slot: %-5s %-25s │\n", m.lastPitch, slot, state)
	s += fmt.Sprintf("│ Remaining: %-8d bytes%-26s │\n", m.remaining, "")
	if m.status != "" {
		s += fmt.Sprintf("│ %-52s │\n", truncate(m.status, 52))
	}
	return s
}

func (m Model) renderControls() string {
	muteIcon := ""
	if m.muted {
		muteIcon = " (muted)"
	}
	hotspot := m.hotspot
	if hotspot == "" {
		hotspot = "-"
	}
	return fmt.Sprintf("│ Volume: [%s] %3d%%%-8s%-15s │\n"+
		"│ Hotspot: %-43s │\n"+
		"│ Notes: %d sent, %d dropped%-26s │\n",
		renderBar(m.volume, 100, 10), m.volume, muteIcon, "",
		truncate(hotspot, 43),
		m.notesSent, m.notesDropped, "")
}

func (m Model) renderHelp() string {
	return `├──────────────────────────────────────────────────────┤
│ a-k:Notes  z/x:Octave  tab:Instrument  space:Click   │
│ ↑/↓:Volume  m:Mute  r:Reset  q:Quit                  │
└──────────────────────────────────────────────────────┘
`
}

// handleKey handles keyboard input
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	if semitone, ok := noteKeys[key]; ok {
		m.sendNote(m.basePitch + semitone)
		return m, nil
	}

	switch key {
	case "q", "ctrl+c":
		if m.keyboard != nil {
			select {
			case m.keyboard.Quit <- QuitMsg{}:
			default:
			}
		}
		return m, tea.Quit
	case "z":
		if m.basePitch-12 >= minBasePitch {
			m.basePitch -= 12
		}
	case "x":
		if m.basePitch+12 <= maxBasePitch {
			m.basePitch += 12
		}
	case "tab":
		if len(m.instruments) > 0 {
			m.current = (m.current + 1) % len(m.instruments)
		}
	case " ":
		m.sendControl(ControlMsg{Kind: ControlClick})
	case "r":
		m.sendControl(ControlMsg{Kind: ControlReset})
	case "up":
		m.volume += 5
		if m.volume > 100 {
			m.volume = 100
		}
		m.sendControl(ControlMsg{Kind: ControlVolume, Volume: m.volume, Muted: m.muted})
	case "down":
		m.volume -= 5
		if m.volume < 0 {
			m.volume = 0
		}
		m.sendControl(ControlMsg{Kind: ControlVolume, Volume: m.volume, Muted: m.muted})
	case "m":
		m.muted = !m.muted
		m.sendControl(ControlMsg{Kind: ControlVolume, Volume: m.volume, Muted: m.muted})
	}

	return m, nil
}

// sendNote never blocks the UI loop; a full queue drops the note
func (m *Model) sendNote(pitch int) {
	m.lastPitch = pitch
	if m.keyboard == nil {
		return
	}
	select {
	case m.keyboard.Notes <- NoteMsg{Instrument: m.Instrument(), Pitch: pitch}:
		m.notesSent++
	default:
		m.notesDropped++
	}
}

func (m *Model) sendControl(c ControlMsg) {
	if m.keyboard == nil {
		return
	}
	select {
	case m.keyboard.Controls <- c:
	default:
	}
}

// applyStatus updates model from status message
func (m *Model) applyStatus(msg StatusMsg) {
	if msg.Instrument != "" && msg.Instrument != m.Instrument() {
		// status for an instrument that is not shown
		return
	}
	if msg.Instrument != "" {
		if msg.Pitch != nil {
			m.lastPitch = *msg.Pitch
		}
		m.lastSlot = msg.Slot
		m.remaining = msg.Remaining
		m.playing = msg.Playing
	}
	if msg.Message != "" {
		m.status = msg.Message
	}
	if msg.Hotspot != "" {
		m.hotspot = msg.Hotspot
	}
}

// StatusMsg updates TUI state. Playback fields apply only when Instrument
// is set; Message and Hotspot apply to any instrument.
type StatusMsg struct {
	Instrument string
	Pitch      *int
	Slot       int
	Remaining  int
	Playing    bool
	Hotspot    string
	Message    string
}

// Utility functions
func renderBar(value, max, width int) string {
	filled := (value * width) / max
	return strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
}

func truncate(s string, length int) string {
	if len(s) <= length {
		return s
	}
	return s[:length-3] + "..."
}
