package term

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"

	"github.com/vovakirdan/snek/internal/core"
)

// KeyMap holds the fixed key bindings of the game.
type KeyMap struct {
	P1Up    key.Binding
	P1Down  key.Binding
	P1Left  key.Binding
	P1Right key.Binding

	P2Up    key.Binding
	P2Down  key.Binding
	P2Left  key.Binding
	P2Right key.Binding

	Restart key.Binding
	Quit    key.Binding
}

// DefaultKeyMap returns the bindings: w/a/s/d for player one, arrows for
// player two, delete/backspace to restart and esc to quit.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		P1Up:    key.NewBinding(key.WithKeys("w"), key.WithHelp("w", "p1 up")),
		P1Down:  key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "p1 down")),
		P1Left:  key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "p1 left")),
		P1Right: key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "p1 right")),

		P2Up:    key.NewBinding(key.WithKeys("up"), key.WithHelp("↑", "p2 up")),
		P2Down:  key.NewBinding(key.WithKeys("down"), key.WithHelp("↓", "p2 down")),
		P2Left:  key.NewBinding(key.WithKeys("left"), key.WithHelp("←", "p2 left")),
		P2Right: key.NewBinding(key.WithKeys("right"), key.WithHelp("→", "p2 right")),

		Restart: key.NewBinding(
			key.WithKeys("delete", "backspace"),
			key.WithHelp("del/bksp", "new round"),
		),
		Quit: key.NewBinding(
			key.WithKeys("esc", "ctrl+c"),
			key.WithHelp("esc", "quit"),
		),
	}
}

// ShortHelp returns key bindings for the short help view.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Restart, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.P1Up, k.P1Down, k.P1Left, k.P1Right},
		{k.P2Up, k.P2Down, k.P2Left, k.P2Right},
		{k.Restart, k.Quit},
	}
}

// HelpView renders every binding as a help table.
func (k KeyMap) HelpView() string {
	h := help.New()
	h.ShowAll = true
	return h.View(k)
}

// Map translates a key press into a game input.
// Unbound keys yield an input with ActionNone.
func (k KeyMap) Map(pressed Key) core.Input {
	switch {
	case key.Matches(pressed, k.Quit):
		return core.Input{Action: core.ActionQuit}
	case key.Matches(pressed, k.Restart):
		return core.Input{Action: core.ActionRestart}

	case key.Matches(pressed, k.P1Up):
		return core.Input{Player: core.Player1, Action: core.ActionUp}
	case key.Matches(pressed, k.P1Down):
		return core.Input{Player: core.Player1, Action: core.ActionDown}
	case key.Matches(pressed, k.P1Left):
		return core.Input{Player: core.Player1, Action: core.ActionLeft}
	case key.Matches(pressed, k.P1Right):
		return core.Input{Player: core.Player1, Action: core.ActionRight}

	case key.Matches(pressed, k.P2Up):
		return core.Input{Player: core.Player2, Action: core.ActionUp}
	case key.Matches(pressed, k.P2Down):
		return core.Input{Player: core.Player2, Action: core.ActionDown}
	case key.Matches(pressed, k.P2Left):
		return core.Input{Player: core.Player2, Action: core.ActionLeft}
	case key.Matches(pressed, k.P2Right):
		return core.Input{Player: core.Player2, Action: core.ActionRight}
	}

	return core.Input{Action: core.ActionNone}
}
