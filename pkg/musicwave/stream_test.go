// ABOUTME: Tests for the goroutine-safe stream adapter
// ABOUTME: Tests silence padding, pull accounting and concurrent use
package musicwave

import (
	"sync"
	"testing"
)

func TestStreamReadPadsSilence(t *testing.T) {
	r, _ := newLoaded(t, 2, []int{60})
	s := NewStream(r)
	s.BeginPlayback(60, 100)

	buf := []byte{9, 9, 9, 9, 9, 9, 9, 9}
	n, err := s.Read(buf)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n != len(buf) {
		t.Errorf("expected %d bytes, got %d", len(buf), n)
	}

	got := frames(buf)
	expected := []uint16{1, 2, 0, 0}
	for i := range expected {
		if got[i] != expected[i] {
			t.Errorf("frame %d: expected %d, got %d", i, expected[i], got[i])
		}
	}
}

func TestStreamReadWhileIdle(t *testing.T) {
	s := NewStream(New(&fakeLoader{}))

	buf := []byte{1, 2, 3, 4}
	n, err := s.Read(buf)
	if err != nil || n != 4 {
		t.Fatalf("expected 4 bytes and no error, got %d, %v", n, err)
	}
	for i, b := range buf {
		if b != 0 {
			t.Errorf("byte %d: expected silence, got %d", i, b)
		}
	}
}

func TestStreamOnPull(t *testing.T) {
	r, _ := newLoaded(t, 100, []int{60})
	s := NewStream(r)

	total := 0
	calls := 0
	s.OnPull = func(n int) {
		total += n
		calls++
	}

	s.Read(make([]byte, 8)) // idle, not reported
	s.BeginPlayback(60, 20)
	s.Read(make([]byte, 8))
	s.Read(make([]byte, 16))
	s.Read(make([]byte, 16))

	if total != 20 {
		t.Errorf("expected 20 bytes reported, got %d", total)
	}
	if calls != 2 {
		t.Errorf("expected 2 reports, got %d", calls)
	}
	if s.Active() {
		t.Error("expected stream to be idle")
	}
}

func TestStreamConcurrentTriggerAndRead(t *testing.T) {
	r, _ := newLoaded(t, 1000, []int{48, 60, 72}, WithSelection(SelectNearest))
	s := NewStream(r)

	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		buf := make([]byte, 64)
		for i := 0; i < 500; i++ {
			s.Read(buf)
		}
	}()

	go func() {
		defer wg.Done()
		for i := 0; i < 500; i++ {
			s.BeginPlayback(48+i%30, 256)
			if i%50 == 0 {
				s.Reset()
			}
		}
	}()

	wg.Wait()

	st := s.State()
	if st.Remaining < 0 {
		t.Errorf("budget went negative: %d", st.Remaining)
	}
}
