// Package core provides the square-pixel rendering primitives for snek.
// It contains no external dependencies to keep game logic and rendering
// pure and testable; the platform layer supplies the actual terminal.
package core

// Coord is a position on the playfield in square pixels.
type Coord struct {
	X, Y int
}

// Add returns the coordinate shifted by the given offsets.
func (c Coord) Add(dx, dy int) Coord {
	return Coord{X: c.X + dx, Y: c.Y + dy}
}

// Step returns the neighbouring coordinate in direction d.
func (c Coord) Step(d Direction) Coord {
	dx, dy := d.Vector()
	return c.Add(dx, dy)
}

// Direction is one of the four axis-aligned movement directions.
type Direction int

const (
	DirUp Direction = iota
	DirDown
	DirLeft
	DirRight
)

// Vector returns the unit vector for the direction.
// Y grows downwards, matching terminal rows.
func (d Direction) Vector() (dx, dy int) {
	switch d {
	case DirUp:
		return 0, -1
	case DirDown:
		return 0, 1
	case DirLeft:
		return -1, 0
	case DirRight:
		return 1, 0
	default:
		return 0, 0
	}
}

func (d Direction) String() string {
	switch d {
	case DirUp:
		return "up"
	case DirDown:
		return "down"
	case DirLeft:
		return "left"
	case DirRight:
		return "right"
	default:
		return "unknown"
	}
}

// Rect represents an axis-aligned rectangle of cells.
type Rect struct {
	X, Y int // Top-left corner position
	W, H int // Width and height
}

// NewRect creates a new rectangle with the given position and dimensions.
func NewRect(x, y, w, h int) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Right returns the x-coordinate one past the right edge.
func (r Rect) Right() int {
	return r.X + r.W
}

// Bottom returns the y-coordinate one past the bottom edge.
func (r Rect) Bottom() int {
	return r.Y + r.H
}

// Contains returns true if c is inside this rectangle.
func (r Rect) Contains(c Coord) bool {
	return c.X >= r.X && c.X < r.Right() && c.Y >= r.Y && c.Y < r.Bottom()
}

// Border returns the set of cells on the outline of the rectangle.
// An empty rectangle has no border.
func (r Rect) Border() map[Coord]struct{} {
	cells := make(map[Coord]struct{})
	for y := r.Y; y < r.Bottom(); y++ {
		for x := r.X; x < r.Right(); x++ {
			if x == r.X || x == r.Right()-1 || y == r.Y || y == r.Bottom()-1 {
				cells[Coord{X: x, Y: y}] = struct{}{}
			}
		}
	}
	return cells
}
