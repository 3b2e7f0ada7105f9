// Package snake implements a two-player snake game on a square-pixel
// playfield: the snake entity, the free-cell engine used for item placement
// and the game controller that ties them to input and rendering.
package snake

import (
	"fmt"
	"math/rand"

	"github.com/vovakirdan/snek/internal/core"
)

// State is the controller state.
type State int

const (
	StateInitializing State = iota
	StateRunning
	StateRestarting
	StateExiting
)

func (s State) String() string {
	switch s {
	case StateInitializing:
		return "initializing"
	case StateRunning:
		return "running"
	case StateRestarting:
		return "restarting"
	case StateExiting:
		return "exiting"
	default:
		return "unknown"
	}
}

// startLength is the number of segments each snake starts a round with.
const startLength = 3

// Canvas is the drawing surface a frame is rendered onto.
type Canvas interface {
	Overlay(b *core.Buffer)
	Draw(s core.Shape)
}

// Game is the two-player snake controller.
type Game struct {
	rng     *rand.Rand
	palette core.Palette
	state   State
	tick    uint64

	// Playfield
	width      int
	height     int
	obstacles  map[core.Coord]struct{}
	background *core.Buffer
	item       core.Coord

	// Players
	snake1 *Snake
	snake2 *Snake
	eaten1 int
	eaten2 int
}

// NewGame creates a game in the initializing state. Call Reset before use.
func NewGame(palette core.Palette, seed int64) *Game {
	return &Game{
		rng:     rand.New(rand.NewSource(seed)),
		palette: palette,
		state:   StateInitializing,
	}
}

// Rectangle returns the border cells of a width×height playfield.
func Rectangle(width, height int) map[core.Coord]struct{} {
	return core.NewRect(0, 0, width, height).Border()
}

// Reset builds a fresh board for the given playfield size and enters the
// running state. It fails with ErrNoFreeCell when the board is too small to
// place an item.
func (g *Game) Reset(width, height int) error {
	g.state = StateInitializing
	g.tick = 0
	g.width = width
	g.height = height
	g.eaten1 = 0
	g.eaten2 = 0

	g.obstacles = Rectangle(width, height)
	g.background = core.NewBuffer(width, height)
	g.background.Fill(g.palette.Background)

	// Opposite corners, each facing into the open field
	g.snake1 = NewSnake(core.Coord{X: 3, Y: 1}, startLength, core.DirRight)
	g.snake2 = NewSnake(core.Coord{X: width - 4, Y: height - 2}, startLength, core.DirLeft)

	if err := g.placeItem(); err != nil {
		return err
	}

	g.state = StateRunning
	return nil
}

// placeItem moves the item to a random free cell.
func (g *Game) placeItem() error {
	item, err := PickFree(g.rng, g.Occupied(), g.width, g.height)
	if err != nil {
		return err
	}
	g.item = item
	return nil
}

// Occupied returns every cell covered by a snake or an obstacle.
func (g *Game) Occupied() map[core.Coord]struct{} {
	cells := make(map[core.Coord]struct{}, len(g.obstacles)+g.snake1.Len()+g.snake2.Len())
	for c := range g.obstacles {
		cells[c] = struct{}{}
	}
	for _, s := range []*Snake{g.snake1, g.snake2} {
		for _, c := range s.body {
			cells[c] = struct{}{}
		}
	}
	return cells
}

// isOccupied checks a single cell without building the full set.
func (g *Game) isOccupied(c core.Coord) bool {
	if _, ok := g.obstacles[c]; ok {
		return true
	}
	return g.snake1.Contains(c) || g.snake2.Contains(c)
}

// HandleInput applies one decoded key press. It is called once per tick,
// with ActionNone when the poll timed out.
func (g *Game) HandleInput(in core.Input) error {
	if g.state != StateRunning {
		return nil
	}
	g.tick++

	switch in.Action {
	case core.ActionQuit:
		g.state = StateExiting
		return nil
	case core.ActionRestart:
		g.state = StateRestarting
		return nil
	}

	dir, ok := in.Action.Direction()
	if !ok || in.Player == core.PlayerNone {
		return nil
	}
	_, err := g.Move(in.Player, dir)
	return err
}

// Restart requests a new round, e.g. after the terminal was resized.
func (g *Game) Restart() {
	if g.state != StateExiting {
		g.state = StateRestarting
	}
}

// Move applies the movement rule for one player. A move into any occupied
// cell is rejected and leaves the board untouched. Moving onto the item grows
// the snake and places a new item.
func (g *Game) Move(p core.PlayerID, dir core.Direction) (bool, error) {
	s := g.Snake(p)
	if s == nil {
		return false, nil
	}

	next := s.Head().Step(dir)
	if g.isOccupied(next) {
		return false, nil
	}

	found := next == g.item
	s.Move(dir, found)
	if !found {
		return true, nil
	}

	if p == core.Player1 {
		g.eaten1++
	} else {
		g.eaten2++
	}
	if err := g.placeItem(); err != nil {
		return true, fmt.Errorf("snake: %s ate the last item: %w", p, err)
	}
	return true, nil
}

// Render draws a frame in fixed layer order: background, obstacles,
// player one, player two, item.
func (g *Game) Render(dst Canvas) {
	dst.Overlay(g.background)
	dst.Draw(core.ShapeOf(g.palette.Obstacle, g.obstacles))
	dst.Draw(g.snake1.Shape(g.palette.Player1))
	dst.Draw(g.snake2.Shape(g.palette.Player2))
	dst.Draw(core.NewShape(g.palette.Item, g.item))
}

// Snake returns the snake controlled by the given player.
func (g *Game) Snake(p core.PlayerID) *Snake {
	switch p {
	case core.Player1:
		return g.snake1
	case core.Player2:
		return g.snake2
	default:
		return nil
	}
}

// Item returns the position of the item.
func (g *Game) Item() core.Coord {
	return g.item
}

// Obstacles returns the static obstacle cells.
func (g *Game) Obstacles() map[core.Coord]struct{} {
	return g.obstacles
}

// State returns the controller state.
func (g *Game) State() State {
	return g.state
}

// Size returns the playfield dimensions.
func (g *Game) Size() (width, height int) {
	return g.width, g.height
}

// RoundResult summarizes a finished round.
type RoundResult struct {
	Ticks   uint64
	Width   int
	Height  int
	Length1 int
	Length2 int
	Eaten1  int
	Eaten2  int
}

// Winner returns the player with the longer snake, or PlayerNone on a tie.
func (r RoundResult) Winner() core.PlayerID {
	switch {
	case r.Length1 > r.Length2:
		return core.Player1
	case r.Length2 > r.Length1:
		return core.Player2
	default:
		return core.PlayerNone
	}
}

// Result returns the summary of the current round.
func (g *Game) Result() RoundResult {
	if g.snake1 == nil || g.snake2 == nil {
		return RoundResult{}
	}
	return RoundResult{
		Ticks:   g.tick,
		Width:   g.width,
		Height:  g.height,
		Length1: g.snake1.Len(),
		Length2: g.snake2.Len(),
		Eaten1:  g.eaten1,
		Eaten2:  g.eaten2,
	}
}

// EndReason records why a round ended.
type EndReason string

const (
	EndQuit    EndReason = "quit"
	EndRestart EndReason = "restart"
	EndResize  EndReason = "resize"
)

// RoundRecorder persists finished rounds.
type RoundRecorder interface {
	RecordRound(r RoundResult, reason EndReason) error
}
