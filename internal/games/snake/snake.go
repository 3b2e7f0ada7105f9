package snake

import "github.com/vovakirdan/snek/internal/core"

// Snake is an ordered body of cells, head first.
// Adjacent segments are always one step apart along one axis.
type Snake struct {
	body []core.Coord // Head at index 0
}

// NewSnake lays out a straight snake of the given length whose head is at
// head and which faces dir, so the body trails behind the head.
func NewSnake(head core.Coord, length int, dir core.Direction) *Snake {
	dx, dy := dir.Vector()
	body := make([]core.Coord, 0, max(length, 1))
	for i := 0; i < max(length, 1); i++ {
		body = append(body, head.Add(-dx*i, -dy*i))
	}
	return &Snake{body: body}
}

// Head returns the position of the head.
func (s *Snake) Head() core.Coord {
	return s.body[0]
}

// Len returns the number of segments.
func (s *Snake) Len() int {
	return len(s.body)
}

// Body returns a copy of the segments, head first.
func (s *Snake) Body() []core.Coord {
	out := make([]core.Coord, len(s.body))
	copy(out, s.body)
	return out
}

// Contains reports whether any segment occupies p.
func (s *Snake) Contains(p core.Coord) bool {
	for _, seg := range s.body {
		if seg == p {
			return true
		}
	}
	return false
}

// Move advances the head one cell in dir. Unless grow is set the tail is
// dropped, so the snake keeps its length.
func (s *Snake) Move(dir core.Direction, grow bool) {
	newHead := s.Head().Step(dir)
	s.body = append([]core.Coord{newHead}, s.body...)
	if !grow {
		s.body = s.body[:len(s.body)-1]
	}
}

// Shape returns the body as a single-colored shape.
func (s *Snake) Shape(c core.Color) core.Shape {
	return core.NewShape(c, s.body...)
}
