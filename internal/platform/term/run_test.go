package term

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/vovakirdan/snek/internal/core"
	"github.com/vovakirdan/snek/internal/games/snake"
)

var testPalette = core.Palette{
	Background: core.RGB(0, 0, 0),
	Obstacle:   core.RGB(255, 255, 255),
	Player1:    core.RGB(0, 255, 0),
	Player2:    core.RGB(255, 192, 203),
	Item:       core.RGB(255, 0, 0),
}

// fakeTerminal counts what the screen writes.
type fakeTerminal struct {
	cols, rows int
	moves      int
	pixels     int
	flushes    int
}

func (f *fakeTerminal) Size() (int, int) { return f.cols, f.rows }
func (f *fakeTerminal) MoveTo(row, col int) { f.moves++ }
func (f *fakeTerminal) Paint(c core.Color, n int) { f.pixels += n }
func (f *fakeTerminal) Flush() error {
	f.flushes++
	return nil
}

// scriptedKeys replays keys in order, then presses Escape forever.
type scriptedKeys struct {
	keys     []Key
	reads    int
	timeouts []time.Duration
	onRead   func(n int)
	err      error
}

func (s *scriptedKeys) ReadKey(timeout time.Duration) (Key, error) {
	n := s.reads
	s.reads++
	s.timeouts = append(s.timeouts, timeout)
	if s.onRead != nil {
		s.onRead(n)
	}
	if s.err != nil {
		return Key{}, s.err
	}
	if n < len(s.keys) {
		return s.keys[n], nil
	}
	return Key{Type: KeyEscape}, nil
}

// roundLog records finished rounds.
type roundLog struct {
	reasons []snake.EndReason
	results []snake.RoundResult
}

func (r *roundLog) RecordRound(res snake.RoundResult, reason snake.EndReason) error {
	r.reasons = append(r.reasons, reason)
	r.results = append(r.results, res)
	return nil
}

func TestRunQuitsOnEscape(t *testing.T) {
	term := &fakeTerminal{cols: 40, rows: 12}
	screen := core.NewScreen(term)
	keys := &scriptedKeys{}
	rounds := &roundLog{}

	err := Run(context.Background(), screen, keys, snake.NewGame(testPalette, 1), Options{
		Tick:     50 * time.Millisecond,
		Recorder: rounds,
	})
	if err != nil {
		t.Fatalf("Run() failed: %v", err)
	}

	if !reflect.DeepEqual(rounds.reasons, []snake.EndReason{snake.EndQuit}) {
		t.Errorf("recorded reasons = %v, expected [quit]", rounds.reasons)
	}
	if keys.reads != 1 {
		t.Errorf("ReadKey called %d times, expected 1", keys.reads)
	}
	if keys.timeouts[0] != 50*time.Millisecond {
		t.Errorf("ReadKey timeout = %v, expected 50ms", keys.timeouts[0])
	}

	// The first frame paints the whole 20x12 field once
	if term.pixels != 20*12 {
		t.Errorf("painted %d pixels, expected %d", term.pixels, 20*12)
	}
	if term.flushes != 1 {
		t.Errorf("Flush called %d times, expected 1", term.flushes)
	}
}

func TestRunDefaultTick(t *testing.T) {
	keys := &scriptedKeys{}
	screen := core.NewScreen(&fakeTerminal{cols: 40, rows: 12})

	if err := Run(context.Background(), screen, keys, snake.NewGame(testPalette, 1), Options{}); err != nil {
		t.Fatalf("Run() failed: %v", err)
	}
	if keys.timeouts[0] != time.Second {
		t.Errorf("ReadKey timeout = %v, expected 1s", keys.timeouts[0])
	}
}

func TestRunMovesPlayers(t *testing.T) {
	screen := core.NewScreen(&fakeTerminal{cols: 40, rows: 12})
	game := snake.NewGame(testPalette, 1)
	keys := &scriptedKeys{keys: []Key{RuneKey('d'), {Type: KeyLeft}, {}}}

	if err := Run(context.Background(), screen, keys, game, Options{}); err != nil {
		t.Fatalf("Run() failed: %v", err)
	}

	if head := game.Snake(core.Player1).Head(); head != (core.Coord{X: 4, Y: 1}) {
		t.Errorf("player one head = %v, expected (4, 1)", head)
	}
	if head := game.Snake(core.Player2).Head(); head != (core.Coord{X: 15, Y: 10}) {
		t.Errorf("player two head = %v, expected (15, 10)", head)
	}
	if ticks := game.Result().Ticks; ticks != 4 {
		t.Errorf("Ticks = %d, expected 4", ticks)
	}
}

func TestRunRestartsOnResize(t *testing.T) {
	term := &fakeTerminal{cols: 40, rows: 12}
	screen := core.NewScreen(term)
	game := snake.NewGame(testPalette, 1)
	rounds := &roundLog{}

	keys := &scriptedKeys{keys: []Key{{}}}
	keys.onRead = func(n int) {
		if n == 0 {
			term.cols = 60
			term.rows = 16
			screen.MarkResized()
		}
	}

	if err := Run(context.Background(), screen, keys, game, Options{Recorder: rounds}); err != nil {
		t.Fatalf("Run() failed: %v", err)
	}

	want := []snake.EndReason{snake.EndResize, snake.EndQuit}
	if !reflect.DeepEqual(rounds.reasons, want) {
		t.Errorf("recorded reasons = %v, expected %v", rounds.reasons, want)
	}
	if w, h := game.Size(); w != 30 || h != 16 {
		t.Errorf("game size after resize = %dx%d, expected 30x16", w, h)
	}
	if screen.Resized() {
		t.Error("resized flag still set after the new round started")
	}
	if rounds.results[0].Width != 20 || rounds.results[1].Width != 30 {
		t.Errorf("round widths = %d, %d, expected 20, 30", rounds.results[0].Width, rounds.results[1].Width)
	}
}

func TestRunRestartKey(t *testing.T) {
	screen := core.NewScreen(&fakeTerminal{cols: 40, rows: 12})
	rounds := &roundLog{}
	keys := &scriptedKeys{keys: []Key{RuneKey('d'), {Type: KeyDelete}, {Type: KeyBackspace}}}

	if err := Run(context.Background(), screen, keys, snake.NewGame(testPalette, 1), Options{Recorder: rounds}); err != nil {
		t.Fatalf("Run() failed: %v", err)
	}

	want := []snake.EndReason{snake.EndRestart, snake.EndRestart, snake.EndQuit}
	if !reflect.DeepEqual(rounds.reasons, want) {
		t.Errorf("recorded reasons = %v, expected %v", rounds.reasons, want)
	}
	if rounds.results[0].Ticks != 2 {
		t.Errorf("first round ticks = %d, expected 2", rounds.results[0].Ticks)
	}
}

func TestRunNoFreeCell(t *testing.T) {
	screen := core.NewScreen(&fakeTerminal{cols: 6, rows: 3})
	keys := &scriptedKeys{}

	err := Run(context.Background(), screen, keys, snake.NewGame(testPalette, 1), Options{})
	if !errors.Is(err, snake.ErrNoFreeCell) {
		t.Fatalf("Run() error = %v, expected ErrNoFreeCell", err)
	}
	if keys.reads != 0 {
		t.Errorf("ReadKey called %d times, expected 0", keys.reads)
	}
}

func TestRunReadError(t *testing.T) {
	readErr := errors.New("input closed")
	screen := core.NewScreen(&fakeTerminal{cols: 40, rows: 12})
	rounds := &roundLog{}

	err := Run(context.Background(), screen, &scriptedKeys{err: readErr}, snake.NewGame(testPalette, 1), Options{Recorder: rounds})
	if !errors.Is(err, readErr) {
		t.Fatalf("Run() error = %v, expected %v", err, readErr)
	}
	if len(rounds.reasons) != 0 {
		t.Errorf("recorded %d rounds after an error, expected 0", len(rounds.reasons))
	}
}

func TestRunContextCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	screen := core.NewScreen(&fakeTerminal{cols: 40, rows: 12})
	keys := &scriptedKeys{}

	if err := Run(ctx, screen, keys, snake.NewGame(testPalette, 1), Options{}); err != nil {
		t.Fatalf("Run() failed: %v", err)
	}
	if keys.reads != 0 {
		t.Errorf("ReadKey called %d times, expected 0", keys.reads)
	}
}
