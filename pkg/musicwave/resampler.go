// ABOUTME: Sample slot selection and fixed-point streaming resampler
// ABOUTME: Picks the closest recorded note and pulls pitch-shifted PCM frames
package musicwave

import (
	"encoding/binary"
	"fmt"

	"github.com/Sendspin/notewave/pkg/audio"
	"github.com/Sendspin/notewave/pkg/audio/pitch"
)

// Wave is a decoded 16-bit mono sample owned by the loading collaborator
type Wave interface {
	// Size returns the length of the PCM data in bytes
	Size() int
	// Lock pins the PCM data for reading
	Lock() []byte
	// Unlock releases data obtained from Lock
	Unlock(data []byte)
}

// Loader resolves sample names into decoded waves
type Loader interface {
	Load(name string) (Wave, error)
}

// Slot holds at most one recorded sample and the pitch it was recorded at
type Slot struct {
	Wave  Wave
	Pitch int

	written bool
}

// Populated reports whether the slot has playable data
func (s *Slot) Populated() bool { return s.Wave != nil }

// Selection chooses how the closest slot is determined
type Selection int

const (
	// SelectSigned picks the smallest recordedPitch-requestedPitch.
	// A slot recorded far below the request wins over a closer one above it.
	SelectSigned Selection = iota
	// SelectNearest picks the smallest |recordedPitch-requestedPitch|
	SelectNearest
)

func (s Selection) String() string {
	switch s {
	case SelectSigned:
		return "signed"
	case SelectNearest:
		return "nearest"
	}
	return fmt.Sprintf("Selection(%d)", int(s))
}

// ParseSelection converts a config value into a Selection
func ParseSelection(s string) (Selection, error) {
	switch s {
	case "", "signed":
		return SelectSigned, nil
	case "nearest":
		return SelectNearest, nil
	}
	return SelectSigned, fmt.Errorf("unknown selection %q (supported: signed, nearest)", s)
}

// State is a snapshot of the streaming state
type State struct {
	ActiveSlot int // -1 when nothing is selected
	Cursor     int // 24.8 fixed-point read position
	Step       int // 24.8 fixed-point advance per output frame
	Remaining  int // bytes still owed to the current note
	FrameCount int // playable frames in the active sample
}

// Option configures a Resampler
type Option func(*Resampler)

// WithSelection sets the slot selection rule
func WithSelection(s Selection) Option {
	return func(r *Resampler) { r.selection = s }
}

// WithTableHook is called every time the ratio table is (re)built
func WithTableHook(f func(minOffset, maxOffset int)) Option {
	return func(r *Resampler) { r.onTable = f }
}

// Resampler selects note samples and streams them pitch-shifted
type Resampler struct {
	loader    Loader
	selection Selection
	onTable   func(minOffset, maxOffset int)

	slots      []Slot
	configured bool

	table *pitch.Table

	activeSlot int
	cursor     int
	step       int
	remaining  int
	frameCount int
}

// New creates a resampler with an inactive stream
func New(loader Loader, opts ...Option) *Resampler {
	r := &Resampler{loader: loader}
	for _, opt := range opts {
		opt(r)
	}
	r.Reset()
	return r
}

// ConfigureSlots allocates count empty slots. It must be called exactly once.
func (r *Resampler) ConfigureSlots(count int) {
	if r.configured {
		panic(usage("configure", -1, ErrAlreadyConfigured))
	}
	if count < 0 {
		panic(usage("configure", -1, fmt.Errorf("negative slot count %d", count)))
	}
	r.slots = make([]Slot, count)
	r.configured = true
}

// LoadSlot fills slot index with the named sample recorded at pitch.
// An empty name leaves the slot without data. Slots are write-once.
func (r *Resampler) LoadSlot(index int, name string, recordedPitch int) error {
	if !r.configured {
		panic(usage("load", index, ErrNotConfigured))
	}
	if index < 0 || index >= len(r.slots) {
		panic(usage("load", index, ErrSlotIndex))
	}
	slot := &r.slots[index]
	if slot.written {
		panic(usage("load", index, ErrSlotLoaded))
	}

	if name == "" {
		slot.Pitch = recordedPitch
		slot.written = true
		return nil
	}

	wave, err := r.loader.Load(name)
	if err != nil {
		return fmt.Errorf("failed to load slot %d (%s): %w", index, name, err)
	}

	slot.Wave = wave
	slot.Pitch = recordedPitch
	slot.written = true
	return nil
}

// Slots returns a copy of the slot table
func (r *Resampler) Slots() []Slot {
	out := make([]Slot, len(r.slots))
	copy(out, r.slots)
	return out
}

// SelectClosest returns the populated slot chosen for requestedPitch.
// Ties go to the lowest index. ok is false when no slot has data.
func (r *Resampler) SelectClosest(requestedPitch int) (index int, ok bool) {
	index = -1
	best := 0
	for i := range r.slots {
		if !r.slots[i].Populated() {
			continue
		}
		dist := r.slots[i].Pitch - requestedPitch
		if r.selection == SelectNearest && dist < 0 {
			dist = -dist
		}
		if index == -1 || dist < best {
			best = dist
			index = i
		}
	}
	return index, index != -1
}

// BeginPlayback arms the stream to play requestedPitch for budgetBytes.
// With no populated slot the stream stays inactive and false is returned.
func (r *Resampler) BeginPlayback(requestedPitch, budgetBytes int) bool {
	index, ok := r.SelectClosest(requestedPitch)
	if !ok {
		return false
	}
	slot := &r.slots[index]

	offset := requestedPitch - slot.Pitch
	r.ensureTable(offset)

	r.activeSlot = index
	r.step = pitch.StepFor(r.table.RatioAt(offset))
	r.cursor = 0
	r.remaining = budgetBytes
	if r.remaining < 0 {
		r.remaining = 0
	}
	r.frameCount = slot.Wave.Size() / audio.FrameBytes
	return true
}

func (r *Resampler) ensureTable(offset int) {
	if r.table.Covers(offset) {
		return
	}
	minOffset, maxOffset := pitch.DefaultMin, pitch.DefaultMax
	if offset < minOffset {
		minOffset = offset
	}
	if offset > maxOffset {
		maxOffset = offset
	}
	r.table = pitch.Build(minOffset, maxOffset)
	if r.onTable != nil {
		r.onTable(minOffset, maxOffset)
	}
}

// Pull writes resampled frames into dst and returns the number of bytes
// consumed from the note budget. When the sample runs out mid-call the
// rest of dst is left untouched but the full amount is still consumed.
func (r *Resampler) Pull(dst []byte) int {
	if r.remaining == 0 {
		return 0
	}

	n := len(dst)
	if n > r.remaining {
		n = r.remaining
	}

	if r.activeSlot != -1 {
		r.render(dst[:n])
	}

	r.remaining -= n
	return n
}

func (r *Resampler) render(dst []byte) {
	wave := r.slots[r.activeSlot].Wave
	data := wave.Lock()
	defer wave.Unlock(data)

	for off := 0; off+audio.FrameBytes <= len(dst); off += audio.FrameBytes {
		src := r.cursor >> pitch.FixedPointShift
		// the wave may have shrunk since BeginPlayback
		if src >= r.frameCount || (src+1)*audio.FrameBytes > len(data) {
			break
		}
		v := binary.LittleEndian.Uint16(data[src*audio.FrameBytes:])
		binary.LittleEndian.PutUint16(dst[off:], v)
		r.cursor += r.step
	}
}

// Active reports whether the current note still owes bytes
func (r *Resampler) Active() bool { return r.remaining > 0 }

// Reset returns the stream to the inactive state
func (r *Resampler) Reset() {
	r.activeSlot = -1
	r.cursor = 0
	r.step = 0
	r.remaining = 0
	r.frameCount = 0
}

// State returns a snapshot of the streaming state
func (r *Resampler) State() State {
	return State{
		ActiveSlot: r.activeSlot,
		Cursor:     r.cursor,
		Step:       r.step,
		Remaining:  r.remaining,
		FrameCount: r.frameCount,
	}
}

// Table returns the current ratio table, nil before the first note
func (r *Resampler) Table() *pitch.Table { return r.table }
