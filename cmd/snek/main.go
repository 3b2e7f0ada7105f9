// snek is a two-player snake game for the terminal.
//
// Usage:
//
//	snek              - Play (player one: w/a/s/d, player two: arrows)
//	snek keys         - Show the key bindings
//	snek colors       - List the color names usable in the config
//	snek history      - Show recorded rounds
//
// Global flags:
//
//	--config <path> - Custom config YAML
//	--seed <value>  - RNG seed for reproducible item placement
//	--log <path>    - Write a debug log to this file
//	--db <path>     - Record rounds to this database
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/snek/internal/config"
	"github.com/vovakirdan/snek/internal/games/snake"
	"github.com/vovakirdan/snek/internal/platform/term"
	"github.com/vovakirdan/snek/internal/storage"
)

var (
	// Global flags
	flagConfig  string
	flagSeed    int64
	flagLogPath string
	flagDBPath  string
	flagVerbose bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "snek",
	Short: "Two-player snake in your terminal",
	Long: `snek is a two-player snake game drawn with square pixels.

Player one steers with w/a/s/d, player two with the arrow keys.
Eat the red item to grow. Delete or Backspace starts a new round,
Esc quits. Resizing the terminal starts a new round.

Examples:
  snek
  snek --seed 42
  snek --config ./my-snek.yaml --log ./snek.log
  snek --db ~/.snek/rounds.db
  snek history --db ~/.snek/rounds.db`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom config YAML")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagLogPath, "log", "", "Write log to this file (default: no log)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "", "Record rounds to this database (default: off)")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Log per-frame debug output")

	rootCmd.AddCommand(keysCmd)
	rootCmd.AddCommand(colorsCmd)
	rootCmd.AddCommand(historyCmd)
}

func runPlay(_ *cobra.Command, _ []string) {
	logger, closeLog, err := newLogger(flagLogPath, flagVerbose)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening log: %v\n", err)
		os.Exit(1)
	}
	defer closeLog()

	cfg, err := config.Load(flagConfig)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	palette, err := cfg.Palette.Resolve()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	seed := flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rc := cfg.Runtime(seed)

	opts := term.Options{Tick: rc.Tick, Logger: logger}

	// Optional round history
	if flagDBPath != "" {
		store, err := storage.Open(flagDBPath)
		if err != nil {
			logger.Warn("could not open rounds database", "path", flagDBPath, "error", err)
		} else {
			defer store.Close()
			opts.Recorder = store
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("starting", "seed", rc.Seed, "tick", rc.Tick)
	game := snake.NewGame(palette, rc.Seed)

	if err := term.Play(ctx, term.NewConsole(os.Stdin, os.Stdout), game, opts); err != nil {
		logger.Error("game stopped", "error", err)
		switch {
		case errors.Is(err, snake.ErrNoFreeCell):
			fmt.Fprintln(os.Stderr, "Error: no free cell left for the item; the terminal may be too small")
		case errors.Is(err, term.ErrNotTerminal):
			fmt.Fprintln(os.Stderr, "Error: snek must be run in an interactive terminal")
		default:
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		closeLog()
		os.Exit(1)
	}
	logger.Info("bye")
}

// newLogger writes to path, or discards everything when path is empty.
// The terminal is owned by the game while it runs, so the log never goes there.
func newLogger(path string, verbose bool) (*log.Logger, func(), error) {
	var w io.Writer = io.Discard
	closeFn := func() {}

	if path != "" {
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, err
		}
		w = f
		closeFn = func() { f.Close() }
	}

	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          "snek",
	})
	if verbose {
		logger.SetLevel(log.DebugLevel)
	}
	return logger, closeFn, nil
}
