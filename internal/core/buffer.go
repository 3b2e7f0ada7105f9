package core

import (
	"errors"
	"fmt"
)

// ErrDimensionMismatch is returned when diffing buffers of different size.
var ErrDimensionMismatch = errors.New("buffer dimensions differ")

// Shape is a single-colored set of pixels.
// Duplicate coordinates collapse; order is irrelevant.
type Shape struct {
	Color  Color
	Coords map[Coord]struct{}
}

// NewShape creates a shape of the given color from a list of coordinates.
func NewShape(c Color, coords ...Coord) Shape {
	s := Shape{Color: c, Coords: make(map[Coord]struct{}, len(coords))}
	for _, p := range coords {
		s.Coords[p] = struct{}{}
	}
	return s
}

// ShapeOf creates a shape sharing an existing coordinate set.
func ShapeOf(c Color, coords map[Coord]struct{}) Shape {
	return Shape{Color: c, Coords: coords}
}

// Add inserts a coordinate into the shape.
func (s *Shape) Add(p Coord) {
	if s.Coords == nil {
		s.Coords = make(map[Coord]struct{})
	}
	s.Coords[p] = struct{}{}
}

// Cell is one buffer cell: a color, or empty when Set is false.
type Cell struct {
	Color Color
	Set   bool
}

// Buffer is a fixed-size grid of optional colors.
// Cells are addressed as (x, y) and stored row-major.
type Buffer struct {
	width  int
	height int
	cells  [][]Cell
}

// NewBuffer creates an empty buffer with the given dimensions.
// Negative dimensions are treated as zero.
func NewBuffer(width, height int) *Buffer {
	b := &Buffer{
		width:  max(width, 0),
		height: max(height, 0),
	}
	b.cells = make([][]Cell, b.height)
	for y := range b.cells {
		b.cells[y] = make([]Cell, b.width)
	}
	return b
}

// Width returns the buffer width in pixels.
func (b *Buffer) Width() int {
	return b.width
}

// Height returns the buffer height in pixels.
func (b *Buffer) Height() int {
	return b.height
}

// InBounds reports whether (x, y) addresses a cell of the buffer.
func (b *Buffer) InBounds(x, y int) bool {
	return x >= 0 && x < b.width && y >= 0 && y < b.height
}

// At returns the color at (x, y) and whether the cell is set.
// Out-of-bounds coordinates report an empty cell.
func (b *Buffer) At(x, y int) (Color, bool) {
	if !b.InBounds(x, y) {
		return Color{}, false
	}
	c := b.cells[y][x]
	return c.Color, c.Set
}

// Set colors a single cell. Out-of-bounds coordinates are silently ignored.
func (b *Buffer) Set(x, y int, c Color) {
	if !b.InBounds(x, y) {
		return
	}
	b.cells[y][x] = Cell{Color: c, Set: true}
}

// Draw paints every in-bounds coordinate of the shape with its color.
// Coordinates outside the buffer are ignored.
func (b *Buffer) Draw(s Shape) {
	for p := range s.Coords {
		b.Set(p.X, p.Y, s.Color)
	}
}

// Fill sets every cell to c.
func (b *Buffer) Fill(c Color) {
	for y := range b.cells {
		for x := range b.cells[y] {
			b.cells[y][x] = Cell{Color: c, Set: true}
		}
	}
}

// Overlay copies every set cell of other onto b at the same position.
// Only the overlapping area is copied; later writes win.
func (b *Buffer) Overlay(other *Buffer) {
	h := min(b.height, other.height)
	w := min(b.width, other.width)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if c := other.cells[y][x]; c.Set {
				b.cells[y][x] = c
			}
		}
	}
}

// Diff returns a buffer holding this buffer's cells wherever they differ
// from other, and empty cells everywhere else.
func (b *Buffer) Diff(other *Buffer) (*Buffer, error) {
	if b.width != other.width || b.height != other.height {
		return nil, fmt.Errorf("diff %dx%d against %dx%d: %w",
			b.width, b.height, other.width, other.height, ErrDimensionMismatch)
	}

	d := NewBuffer(b.width, b.height)
	for y := 0; y < b.height; y++ {
		for x := 0; x < b.width; x++ {
			if c := b.cells[y][x]; c != other.cells[y][x] {
				d.cells[y][x] = c
			}
		}
	}
	return d, nil
}

// Empty reports whether no cell is set.
func (b *Buffer) Empty() bool {
	for y := range b.cells {
		for x := range b.cells[y] {
			if b.cells[y][x].Set {
				return false
			}
		}
	}
	return true
}

// EmptyCells returns the coordinates of all unset cells in row-major order.
func (b *Buffer) EmptyCells() []Coord {
	var out []Coord
	for y := range b.cells {
		for x := range b.cells[y] {
			if !b.cells[y][x].Set {
				out = append(out, Coord{X: x, Y: y})
			}
		}
	}
	return out
}

// Row returns a copy of row y. Out-of-range rows are nil.
func (b *Buffer) Row(y int) []Cell {
	if y < 0 || y >= b.height {
		return nil
	}
	row := make([]Cell, b.width)
	copy(row, b.cells[y])
	return row
}
