package snake

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/vovakirdan/snek/internal/core"
)

// ErrNoFreeCell is returned when the playfield has no cell left that keeps
// a one-cell distance from every occupied cell.
var ErrNoFreeCell = errors.New("no free cell")

// Dilate returns the occupied cells together with their eight neighbours.
// Neighbours may lie outside the playfield.
func Dilate(occupied map[core.Coord]struct{}) map[core.Coord]struct{} {
	padded := make(map[core.Coord]struct{}, len(occupied)*9)
	for c := range occupied {
		for dy := -1; dy <= 1; dy++ {
			for dx := -1; dx <= 1; dx++ {
				padded[c.Add(dx, dy)] = struct{}{}
			}
		}
	}
	return padded
}

// FreeCells returns every cell of a width×height playfield that is neither
// occupied nor touching an occupied cell, in row-major order.
//
// The padded set is rasterized into a scratch buffer and the buffer is
// scanned for empty cells, so the cost depends on the playfield size only.
// Out-of-bounds neighbours are clipped by the buffer.
func FreeCells(occupied map[core.Coord]struct{}, width, height int) []core.Coord {
	scratch := core.NewBuffer(width, height)
	scratch.Draw(core.ShapeOf(core.RGB(255, 255, 255), Dilate(occupied)))
	return scratch.EmptyCells()
}

// PickFree chooses a free cell uniformly at random.
func PickFree(rng *rand.Rand, occupied map[core.Coord]struct{}, width, height int) (core.Coord, error) {
	free := FreeCells(occupied, width, height)
	if len(free) == 0 {
		return core.Coord{}, fmt.Errorf("snake: place item on %dx%d field: %w", width, height, ErrNoFreeCell)
	}
	return free[rng.Intn(len(free))], nil
}
