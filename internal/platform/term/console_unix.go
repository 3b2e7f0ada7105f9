//go:build unix

package term

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"golang.org/x/sys/unix"
	xterm "golang.org/x/term"

	"github.com/vovakirdan/snek/internal/core"
	"github.com/vovakirdan/snek/internal/games/snake"
)

// ErrNotTerminal is returned when raw mode is requested on a non-terminal.
var ErrNotTerminal = errors.New("stdin is not a terminal")

// pixel is one square pixel: two terminal columns.
const pixel = "  "

// Console is a core.Terminal backed by the process's terminal.
// Output is buffered until Flush so a frame reaches the terminal in one write.
type Console struct {
	in    *os.File
	out   *os.File
	inFd  int
	outFd int

	output   *termenv.Output
	renderer *lipgloss.Renderer
	styles   map[core.Color]lipgloss.Style

	buf     bytes.Buffer
	readBuf []byte
	pending []byte // Read but not yet decoded
}

// NewConsole creates a console reading keys from in and drawing to out.
func NewConsole(in, out *os.File) *Console {
	return &Console{
		in:       in,
		out:      out,
		inFd:     int(in.Fd()),
		outFd:    int(out.Fd()),
		output:   termenv.NewOutput(out),
		renderer: lipgloss.NewRenderer(out),
		styles:   make(map[core.Color]lipgloss.Style),
		readBuf:  make([]byte, 64),
	}
}

// Size returns the terminal size, falling back to 80x24.
func (c *Console) Size() (cols, rows int) {
	w, h, err := xterm.GetSize(c.outFd)
	if err != nil || w <= 0 || h <= 0 {
		return 80, 24
	}
	return w, h
}

// MoveTo queues a cursor move. Row and column are zero-based.
func (c *Console) MoveTo(row, col int) {
	fmt.Fprintf(&c.buf, termenv.CSI+termenv.CursorPositionSeq, row+1, col+1)
}

// Paint queues n square pixels of the given color.
func (c *Console) Paint(color core.Color, n int) {
	if n <= 0 {
		return
	}
	c.buf.WriteString(c.style(color).Render(strings.Repeat(pixel, n)))
}

// style returns the cached background style for a color.
func (c *Console) style(color core.Color) lipgloss.Style {
	s, ok := c.styles[color]
	if !ok {
		s = c.renderer.NewStyle().Background(lipgloss.Color(color.Hex()))
		c.styles[color] = s
	}
	return s
}

// Flush writes the queued output.
func (c *Console) Flush() error {
	if c.buf.Len() == 0 {
		return nil
	}
	_, err := c.out.Write(c.buf.Bytes())
	c.buf.Reset()
	return err
}

// EnterFullscreen switches to the alternate screen and clears it.
func (c *Console) EnterFullscreen() func() error {
	c.output.AltScreen()
	c.output.ClearScreen()
	return func() error {
		c.output.ExitAltScreen()
		return nil
	}
}

// EnterRaw puts the input side into raw mode.
func (c *Console) EnterRaw() (func() error, error) {
	if !xterm.IsTerminal(c.inFd) {
		return nil, ErrNotTerminal
	}
	state, err := xterm.MakeRaw(c.inFd)
	if err != nil {
		return nil, fmt.Errorf("term: raw mode: %w", err)
	}
	return func() error {
		return xterm.Restore(c.inFd, state)
	}, nil
}

// HideCursor hides the cursor until the returned function is called.
func (c *Console) HideCursor() func() error {
	c.output.HideCursor()
	return func() error {
		c.output.ShowCursor()
		return nil
	}
}

// ReadKey returns the next key press, waiting up to timeout when no input
// is buffered. Several keys arriving in one read are returned one per call.
// A timeout or an interrupting signal yields KeyNone.
func (c *Console) ReadKey(timeout time.Duration) (Key, error) {
	if k, ok := c.nextPending(); ok {
		return k, nil
	}

	fds := []unix.PollFd{{Fd: int32(c.inFd), Events: unix.POLLIN}}

	n, err := unix.Poll(fds, int(timeout/time.Millisecond))
	if err != nil {
		if errors.Is(err, unix.EINTR) {
			return Key{}, nil
		}
		return Key{}, fmt.Errorf("term: poll: %w", err)
	}
	if n == 0 {
		return Key{}, nil
	}

	rn, err := unix.Read(c.inFd, c.readBuf)
	if err != nil {
		if errors.Is(err, unix.EINTR) || errors.Is(err, unix.EAGAIN) {
			return Key{}, nil
		}
		return Key{}, fmt.Errorf("term: read: %w", err)
	}
	if rn == 0 {
		return Key{}, fmt.Errorf("term: read: %w", io.EOF)
	}

	c.pending = append(c.pending[:0], c.readBuf[:rn]...)
	k, _ := c.nextPending()
	return k, nil
}

// nextPending decodes buffered input, skipping bytes that decode to no key.
func (c *Console) nextPending() (Key, bool) {
	for len(c.pending) > 0 {
		k, n := ParseKey(c.pending)
		c.pending = c.pending[n:]
		if k.Type != KeyNone {
			return k, true
		}
	}
	return Key{}, false
}

// Play takes over the terminal and runs rounds until the players quit.
// The terminal is restored on every exit path.
func Play(ctx context.Context, c *Console, game *snake.Game, opts Options) (err error) {
	logger := opts.logger()

	defer release(&err, c.EnterFullscreen())

	restoreRaw, err := c.EnterRaw()
	if err != nil {
		return err
	}
	defer release(&err, restoreRaw)

	defer release(&err, c.HideCursor())

	screen := core.NewScreen(c)
	stop := WatchResize(screen, func() {
		logger.Debug("terminal resized")
	})
	defer stop()

	return Run(ctx, screen, c, game, opts)
}

// release runs a guard and keeps its error unless an earlier one exists.
func release(errp *error, guard func() error) {
	if rerr := guard(); rerr != nil && *errp == nil {
		*errp = rerr
	}
}
