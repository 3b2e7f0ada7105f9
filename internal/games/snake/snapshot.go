package snake

// Snapshot captures the observable game state for determinism testing and logging.
type Snapshot struct {
	Tick   uint64
	State  State
	Width  int
	Height int
	Head1X int
	Head1Y int
	Len1   int
	Head2X int
	Head2Y int
	Len2   int
	ItemX  int
	ItemY  int
	Eaten1 int
	Eaten2 int
}

// Snapshot returns the current game snapshot.
func (g *Game) Snapshot() Snapshot {
	snap := Snapshot{
		Tick:   g.tick,
		State:  g.state,
		Width:  g.width,
		Height: g.height,
		ItemX:  g.item.X,
		ItemY:  g.item.Y,
		Eaten1: g.eaten1,
		Eaten2: g.eaten2,
	}
	if g.snake1 != nil {
		h := g.snake1.Head()
		snap.Head1X, snap.Head1Y, snap.Len1 = h.X, h.Y, g.snake1.Len()
	}
	if g.snake2 != nil {
		h := g.snake2.Head()
		snap.Head2X, snap.Head2Y, snap.Len2 = h.X, h.Y, g.snake2.Len()
	}
	return snap
}
