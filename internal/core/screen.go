package core

import (
	"fmt"
	"sync/atomic"
)

// Terminal is the output side of a character terminal as seen by Screen.
// Rows and columns are zero-based character cells.
type Terminal interface {
	// Size returns the terminal size in character cells.
	Size() (cols, rows int)

	// MoveTo positions the cursor.
	MoveTo(row, col int)

	// Paint writes n square pixels of color c at the cursor (2*n columns).
	Paint(c Color, n int)

	// Flush sends any buffered output to the terminal.
	Flush() error
}

// UpdateStats describes the output produced by the last Screen.Update.
type UpdateStats struct {
	Runs   int // Cursor moves issued
	Paints int // Colored fills issued
	Pixels int // Square pixels written
}

// Screen models a terminal with square pixels.
// It keeps a double buffer so that Update only writes pixels that changed
// since the previous frame.
type Screen struct {
	term     Terminal
	current  *Buffer
	previous *Buffer
	resized  atomic.Bool
	stats    UpdateStats
}

// NewScreen creates a screen sized to the terminal.
func NewScreen(t Terminal) *Screen {
	s := &Screen{term: t}
	s.Reset()
	return s
}

// Reset resizes both buffers to the current terminal size in square pixels
// and clears the resized flag. The flag is cleared before the size is read so
// a resize arriving during Reset is seen by the next Resized call.
func (s *Screen) Reset() {
	s.resized.Store(false)
	w, h := s.pixelSize()
	s.current = NewBuffer(w, h)
	s.previous = NewBuffer(w, h)
}

// pixelSize returns the terminal size in square pixels: half the columns,
// all the rows.
func (s *Screen) pixelSize() (width, height int) {
	cols, rows := s.term.Size()
	return cols / 2, rows
}

// NewBuffer creates an empty buffer with the screen's dimensions.
func (s *Screen) NewBuffer() *Buffer {
	return NewBuffer(s.current.Width(), s.current.Height())
}

// Width returns the screen width in square pixels.
func (s *Screen) Width() int {
	return s.current.Width()
}

// Height returns the screen height in square pixels.
func (s *Screen) Height() int {
	return s.current.Height()
}

// Draw paints a shape onto the pending frame.
func (s *Screen) Draw(shape Shape) {
	s.current.Draw(shape)
}

// Overlay merges a full buffer into the pending frame.
func (s *Screen) Overlay(b *Buffer) {
	s.current.Overlay(b)
}

// MarkResized records that the terminal size changed.
// It is safe to call from any goroutine.
func (s *Screen) MarkResized() {
	s.resized.Store(true)
}

// Resized reports whether the terminal was resized since the last Reset.
func (s *Screen) Resized() bool {
	return s.resized.Load()
}

// Stats returns the output statistics of the last Update.
func (s *Screen) Stats() UpdateStats {
	return s.stats
}

// Update writes the pixels that changed since the last frame, flushes the
// terminal and swaps buffers.
func (s *Screen) Update() error {
	diff, err := s.current.Diff(s.previous)
	if err != nil {
		return fmt.Errorf("screen: %w", err)
	}

	s.stats = UpdateStats{}
	for y := 0; y < diff.Height(); y++ {
		s.writeRow(y, diff.Row(y))
	}

	if err := s.term.Flush(); err != nil {
		return fmt.Errorf("screen: flush: %w", err)
	}

	s.previous = s.current
	s.current = NewBuffer(s.previous.Width(), s.previous.Height())
	return nil
}

// writeRow emits one cursor move per contiguous run of set cells and one
// paint per same-color stretch inside the run.
func (s *Screen) writeRow(y int, row []Cell) {
	x := 0
	for x < len(row) {
		if !row[x].Set {
			x++
			continue
		}

		// Square pixels: each pixel is two columns wide
		s.term.MoveTo(y, x*2)
		s.stats.Runs++

		for x < len(row) && row[x].Set {
			color := row[x].Color
			n := 0
			for x < len(row) && row[x].Set && row[x].Color == color {
				n++
				x++
			}
			s.term.Paint(color, n)
			s.stats.Paints++
			s.stats.Pixels += n
		}
	}
}
