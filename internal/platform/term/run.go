package term

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/snek/internal/core"
	"github.com/vovakirdan/snek/internal/games/snake"
)

// KeyReader delivers key presses.
type KeyReader interface {
	// ReadKey waits at most timeout and returns KeyNone when nothing was pressed.
	ReadKey(timeout time.Duration) (Key, error)
}

// Options configure the main loop.
type Options struct {
	Tick     time.Duration       // Key poll timeout; 0 uses the default
	Logger   *log.Logger         // nil discards
	Recorder snake.RoundRecorder // nil disables round history
}

func (o Options) logger() *log.Logger {
	if o.Logger == nil {
		return log.New(io.Discard)
	}
	return o.Logger
}

func (o Options) tick() time.Duration {
	if o.Tick <= 0 {
		return core.DefaultConfig().Tick
	}
	return o.Tick
}

// Run plays rounds on screen until a player quits or ctx is done.
// Every round starts from a freshly sized screen; a resize ends the round.
// An error from the board (no room for the item, mismatched buffers) or from
// the key reader stops the loop and is returned.
func Run(ctx context.Context, screen *core.Screen, keys KeyReader, game *snake.Game, opts Options) error {
	logger := opts.logger()
	keymap := DefaultKeyMap()
	tick := opts.tick()

	for round := 1; ; round++ {
		screen.Reset()
		w, h := screen.Width(), screen.Height()
		if err := game.Reset(w, h); err != nil {
			logger.Error("cannot start round", "round", round, "width", w, "height", h, "error", err)
			return fmt.Errorf("term: start round on %dx%d field: %w", w, h, err)
		}
		logger.Info("round started", "round", round, "width", w, "height", h)

		reason, err := playRound(ctx, screen, keys, keymap, game, tick, logger)
		if err != nil {
			logger.Error("round aborted", "round", round, "error", err)
			return err
		}

		result := game.Result()
		logger.Info("round ended",
			"round", round,
			"reason", reason,
			"ticks", result.Ticks,
			"length1", result.Length1,
			"length2", result.Length2,
			"winner", result.Winner(),
		)
		if opts.Recorder != nil {
			if err := opts.Recorder.RecordRound(result, reason); err != nil {
				logger.Warn("could not record round", "error", err)
			}
		}

		if reason == snake.EndQuit {
			return nil
		}
	}
}

// playRound renders and reads keys until the round ends.
// The resized flag is checked before anything is drawn.
func playRound(ctx context.Context, screen *core.Screen, keys KeyReader, keymap KeyMap, game *snake.Game, tick time.Duration, logger *log.Logger) (snake.EndReason, error) {
	for {
		if ctx.Err() != nil {
			return snake.EndQuit, nil
		}
		if screen.Resized() {
			logger.Debug("restarting after resize")
			game.Restart()
			return snake.EndResize, nil
		}

		switch game.State() {
		case snake.StateExiting:
			return snake.EndQuit, nil
		case snake.StateRestarting:
			return snake.EndRestart, nil
		}

		game.Render(screen)
		if err := screen.Update(); err != nil {
			return snake.EndQuit, err
		}
		stats := screen.Stats()
		logger.Debug("frame", "runs", stats.Runs, "paints", stats.Paints, "pixels", stats.Pixels)

		k, err := keys.ReadKey(tick)
		if err != nil {
			return snake.EndQuit, fmt.Errorf("term: read key: %w", err)
		}
		in := keymap.Map(k)
		if err := game.HandleInput(in); err != nil {
			return snake.EndQuit, err
		}
		if in.Action != core.ActionNone {
			snap := game.Snapshot()
			logger.Debug("input",
				"key", k,
				"player", in.Player,
				"action", in.Action,
				"tick", snap.Tick,
				"len1", snap.Len1,
				"len2", snap.Len2,
				"item", core.Coord{X: snap.ItemX, Y: snap.ItemY},
			)
		}
	}
}
