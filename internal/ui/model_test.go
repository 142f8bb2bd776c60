// ABOUTME: Tests for TUI model and state management
// ABOUTME: Tests key mapping, channel delivery and status updates
package ui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func runeKey(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func press(t *testing.T, m Model, keys ...tea.KeyMsg) Model {
	t.Helper()
	for _, k := range keys {
		next, _ := m.Update(k)
		m = next.(Model)
	}
	return m
}

func TestNewModel(t *testing.T) {
	model := NewModel(nil, []string{"piano"})

	if model.basePitch != DefaultBasePitch {
		t.Errorf("expected base pitch %d, got %d", DefaultBasePitch, model.basePitch)
	}
	if model.volume != 100 {
		t.Errorf("expected default volume 100, got %d", model.volume)
	}
	if model.Instrument() != "piano" {
		t.Errorf("expected piano, got %q", model.Instrument())
	}
	if NewModel(nil, nil).Instrument() != "" {
		t.Error("expected no instrument for empty list")
	}
}

func TestNoteKeys(t *testing.T) {
	tests := []struct {
		key  string
		want int
	}{
		{"a", 60},
		{"w", 61},
		{"d", 64},
		{"g", 67},
		{"j", 71},
		{"k", 72},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			kb := NewKeyboard()
			m := press(t, NewModel(kb, []string{"piano"}), runeKey(tt.key))

			select {
			case note := <-kb.Notes:
				if note.Pitch != tt.want || note.Instrument != "piano" {
					t.Errorf("got %+v, want piano/%d", note, tt.want)
				}
			default:
				t.Fatal("no note sent")
			}
			if m.lastPitch != tt.want {
				t.Errorf("lastPitch = %d", m.lastPitch)
			}
		})
	}
}

func TestOctaveShift(t *testing.T) {
	kb := NewKeyboard()
	m := press(t, NewModel(kb, []string{"bass"}), runeKey("z"), runeKey("z"), runeKey("a"))
	if note := <-kb.Notes; note.Pitch != 36 {
		t.Errorf("pitch = %d, want 36", note.Pitch)
	}

	m = press(t, m, runeKey("x"), runeKey("x"), runeKey("x"), runeKey("a"))
	if note := <-kb.Notes; note.Pitch != 72 {
		t.Errorf("pitch = %d, want 72", note.Pitch)
	}

	// clamped at the bottom
	for i := 0; i < 10; i++ {
		m = press(t, m, runeKey("z"))
	}
	if m.basePitch != minBasePitch {
		t.Errorf("basePitch = %d, want %d", m.basePitch, minBasePitch)
	}
}

func TestTabCyclesInstruments(t *testing.T) {
	kb := NewKeyboard()
	m := NewModel(kb, []string{"piano", "bass", "bells"})
	tab := tea.KeyMsg{Type: tea.KeyTab}

	m = press(t, m, tab)
	if m.Instrument() != "bass" {
		t.Errorf("got %q", m.Instrument())
	}
	m = press(t, m, tab, tab)
	if m.Instrument() != "piano" {
		t.Errorf("expected wrap to piano, got %q", m.Instrument())
	}
}

func TestControls(t *testing.T) {
	kb := NewKeyboard()
	m := NewModel(kb, []string{"piano"})

	m = press(t, m, tea.KeyMsg{Type: tea.KeySpace})
	if c := <-kb.Controls; c.Kind != ControlClick {
		t.Errorf("space sent %+v", c)
	}

	m = press(t, m, runeKey("r"))
	if c := <-kb.Controls; c.Kind != ControlReset {
		t.Errorf("r sent %+v", c)
	}

	m = press(t, m, tea.KeyMsg{Type: tea.KeyDown})
	if c := <-kb.Controls; c.Kind != ControlVolume || c.Volume != 95 {
		t.Errorf("down sent %+v", c)
	}

	m = press(t, m, tea.KeyMsg{Type: tea.KeyUp}, tea.KeyMsg{Type: tea.KeyUp})
	<-kb.Controls
	if c := <-kb.Controls; c.Volume != 100 {
		t.Errorf("volume should clamp at 100, got %d", c.Volume)
	}

	press(t, m, runeKey("m"))
	if c := <-kb.Controls; !c.Muted {
		t.Errorf("m sent %+v", c)
	}
}

func TestQuit(t *testing.T) {
	kb := NewKeyboard()
	_, cmd := NewModel(kb, nil).Update(runeKey("q"))
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	select {
	case <-kb.Quit:
	default:
		t.Error("expected quit signal")
	}
}

func TestFullQueueDropsNotes(t *testing.T) {
	kb := &Keyboard{Notes: make(chan NoteMsg, 1), Controls: make(chan ControlMsg, 1), Quit: make(chan QuitMsg, 1)}
	m := press(t, NewModel(kb, []string{"piano"}), runeKey("a"), runeKey("s"), runeKey("d"))
	if m.notesSent != 1 || m.notesDropped != 2 {
		t.Errorf("sent %d dropped %d", m.notesSent, m.notesDropped)
	}
}

func TestApplyStatus(t *testing.T) {
	m := NewModel(nil, []string{"piano", "bass"})
	pitch := 62

	m.applyStatus(StatusMsg{Instrument: "piano", Pitch: &pitch, Slot: 1, Remaining: 400, Playing: true, Hotspot: "cruise"})
	if m.lastPitch != 62 || m.lastSlot != 1 || m.remaining != 400 || !m.playing || m.hotspot != "cruise" {
		t.Errorf("status not applied: %+v", m)
	}

	// status for a hidden instrument is ignored
	m.applyStatus(StatusMsg{Instrument: "bass", Slot: 3})
	if m.lastSlot != 1 {
		t.Error("status for other instrument should be ignored")
	}

	m.applyStatus(StatusMsg{Message: "go where"})
	if m.lastSlot != 1 || m.status != "go where" {
		t.Errorf("message-only status changed playback: %+v", m)
	}
}

func TestView(t *testing.T) {
	m := NewModel(nil, []string{"piano"})
	if m.View() != "Loading..." {
		t.Error("expected loading view before window size")
	}

	next, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	m = next.(Model)
	view := m.View()
	for _, want := range []string{"piano", "C4", "No notes played", "tab:Instrument"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}

	m.notesSent = 1
	m.lastPitch = 64
	m.lastSlot = -1
	if !strings.Contains(m.View(), "Slot: none") {
		t.Error("expected empty slot to render as none")
	}
}

func TestRenderBar(t *testing.T) {
	if got := renderBar(50, 100, 10); got != "█████░░░░░" {
		t.Errorf("renderBar = %q", got)
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("abcdefgh", 5); got != "ab..." {
		t.Errorf("truncate = %q", got)
	}
	if got := truncate("abc", 5); got != "abc" {
		t.Errorf("truncate = %q", got)
	}
}
