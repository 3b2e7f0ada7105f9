package core

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"
)

// fakeTerminal records cursor moves and paints as a compact trace.
type fakeTerminal struct {
	cols, rows int
	ops        []string
	flushes    int
	flushErr   error
}

func (f *fakeTerminal) Size() (int, int) { return f.cols, f.rows }

func (f *fakeTerminal) MoveTo(row, col int) {
	f.ops = append(f.ops, fmt.Sprintf("move(%d,%d)", row, col))
}

func (f *fakeTerminal) Paint(c Color, n int) {
	f.ops = append(f.ops, fmt.Sprintf("paint(%s,%d)", c.Hex(), n))
}

func (f *fakeTerminal) Flush() error {
	f.flushes++
	return f.flushErr
}

func (f *fakeTerminal) trace() string {
	out := strings.Join(f.ops, " ")
	f.ops = nil
	return out
}

func TestScreenSquarePixels(t *testing.T) {
	s := NewScreen(&fakeTerminal{cols: 81, rows: 24})

	if s.Width() != 40 {
		t.Errorf("Width() = %d, expected 40", s.Width())
	}
	if s.Height() != 24 {
		t.Errorf("Height() = %d, expected 24", s.Height())
	}
}

func TestScreenUpdateBatchesRuns(t *testing.T) {
	term := &fakeTerminal{cols: 16, rows: 2}
	s := NewScreen(term)

	s.Draw(NewShape(red, Coord{1, 0}, Coord{2, 0}, Coord{3, 0}, Coord{6, 0}))
	s.Draw(NewShape(green, Coord{4, 0}))

	if err := s.Update(); err != nil {
		t.Fatalf("Update() failed: %v", err)
	}

	expected := "move(0,2) paint(#ff0000,3) paint(#00ff00,1) move(0,12) paint(#ff0000,1)"
	if got := term.trace(); got != expected {
		t.Errorf("Update() wrote %q, expected %q", got, expected)
	}
	if term.flushes != 1 {
		t.Errorf("flushes = %d, expected 1", term.flushes)
	}

	stats := s.Stats()
	if stats.Runs != 2 || stats.Paints != 3 || stats.Pixels != 5 {
		t.Errorf("Stats() = %+v, expected 2 runs, 3 paints, 5 pixels", stats)
	}
}

func TestScreenUpdateUnchangedWritesNothing(t *testing.T) {
	term := &fakeTerminal{cols: 10, rows: 3}
	s := NewScreen(term)

	frame := NewShape(blue, Coord{0, 0}, Coord{4, 2})
	s.Draw(frame)
	if err := s.Update(); err != nil {
		t.Fatalf("Update() failed: %v", err)
	}
	term.trace()

	s.Draw(frame)
	if err := s.Update(); err != nil {
		t.Fatalf("Update() failed: %v", err)
	}
	if got := term.trace(); got != "" {
		t.Errorf("identical frame should write nothing, wrote %q", got)
	}
}

func TestScreenUpdateOnlyChangedPixels(t *testing.T) {
	term := &fakeTerminal{cols: 10, rows: 3}
	s := NewScreen(term)

	bg := s.NewBuffer()
	bg.Fill(blue)

	s.Overlay(bg)
	s.Draw(NewShape(red, Coord{2, 1}))
	if err := s.Update(); err != nil {
		t.Fatalf("Update() failed: %v", err)
	}
	term.trace()

	// The red pixel moves one step right
	s.Overlay(bg)
	s.Draw(NewShape(red, Coord{3, 1}))
	if err := s.Update(); err != nil {
		t.Fatalf("Update() failed: %v", err)
	}

	expected := "move(1,4) paint(#0000ff,1) paint(#ff0000,1)"
	if got := term.trace(); got != expected {
		t.Errorf("Update() wrote %q, expected %q", got, expected)
	}
}

func TestScreenUpdateNeverErasesTransparent(t *testing.T) {
	term := &fakeTerminal{cols: 6, rows: 1}
	s := NewScreen(term)

	s.Draw(NewShape(red, Coord{0, 0}))
	if err := s.Update(); err != nil {
		t.Fatalf("Update() failed: %v", err)
	}
	term.trace()

	// Nothing drawn: the pixel is left as is on the terminal
	if err := s.Update(); err != nil {
		t.Fatalf("Update() failed: %v", err)
	}
	if got := term.trace(); got != "" {
		t.Errorf("empty frame should write nothing, wrote %q", got)
	}
}

func TestScreenResetAfterResize(t *testing.T) {
	term := &fakeTerminal{cols: 20, rows: 5}
	s := NewScreen(term)

	s.Draw(NewShape(red, Coord{0, 0}))
	if err := s.Update(); err != nil {
		t.Fatalf("Update() failed: %v", err)
	}
	term.trace()

	term.cols, term.rows = 30, 8
	s.MarkResized()
	if !s.Resized() {
		t.Fatal("Resized() should be true after MarkResized")
	}

	s.Reset()
	if s.Resized() {
		t.Error("Reset() should clear the resized flag")
	}
	if s.Width() != 15 || s.Height() != 8 {
		t.Errorf("after Reset dimensions = %dx%d, expected 15x8", s.Width(), s.Height())
	}

	// Previous frame is forgotten, so the pixel is redrawn
	s.Draw(NewShape(red, Coord{0, 0}))
	if err := s.Update(); err != nil {
		t.Fatalf("Update() failed: %v", err)
	}
	if got := term.trace(); got != "move(0,0) paint(#ff0000,1)" {
		t.Errorf("Update() after Reset wrote %q", got)
	}
}

// resizingTerminal reports a new size after the first Size call and runs
// onSize each time the size is read.
type resizingTerminal struct {
	fakeTerminal
	sizes  int
	onSize func()
}

func (r *resizingTerminal) Size() (int, int) {
	r.sizes++
	if r.onSize != nil {
		r.onSize()
	}
	if r.sizes == 1 {
		return 20, 10
	}
	return 16, 8
}

func TestScreenResetReadsSizeOnce(t *testing.T) {
	term := &resizingTerminal{}
	s := NewScreen(term)

	if term.sizes != 1 {
		t.Errorf("Size() called %d times by Reset, expected 1", term.sizes)
	}
	if s.Width() != 10 || s.Height() != 10 {
		t.Errorf("dimensions = %dx%d, expected 10x10", s.Width(), s.Height())
	}
	if b := s.NewBuffer(); b.Width() != 10 || b.Height() != 10 {
		t.Errorf("NewBuffer() = %dx%d, expected 10x10", b.Width(), b.Height())
	}

	s.Draw(NewShape(red, Coord{1, 1}))
	if err := s.Update(); err != nil {
		t.Fatalf("Update() failed: %v", err)
	}
}

func TestScreenResetKeepsResizeDuringReset(t *testing.T) {
	term := &resizingTerminal{}
	s := NewScreen(term)

	// A resize delivered while Reset reads the size must survive Reset
	term.onSize = s.MarkResized
	s.Reset()

	if !s.Resized() {
		t.Error("Resized() = false, expected the resize seen during Reset to be kept")
	}
	if s.Width() != 8 || s.Height() != 8 {
		t.Errorf("dimensions = %dx%d, expected 8x8", s.Width(), s.Height())
	}
}

func TestScreenMarkResizedConcurrent(t *testing.T) {
	term := &fakeTerminal{cols: 20, rows: 5}
	s := NewScreen(term)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.MarkResized()
		}()
	}

	// Rendering continues while the flag is being set
	for i := 0; i < 4; i++ {
		s.Draw(NewShape(green, Coord{1, 1}))
		if err := s.Update(); err != nil {
			t.Fatalf("Update() failed: %v", err)
		}
	}
	wg.Wait()

	if !s.Resized() {
		t.Error("Resized() should be true")
	}
}

func TestScreenUpdateFlushError(t *testing.T) {
	flushErr := errors.New("broken pipe")
	term := &fakeTerminal{cols: 4, rows: 1, flushErr: flushErr}
	s := NewScreen(term)

	if err := s.Update(); !errors.Is(err, flushErr) {
		t.Errorf("Update() error = %v, expected %v", err, flushErr)
	}
}
