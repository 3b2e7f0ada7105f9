package core

// Action represents a semantic game action, abstracted from physical key presses.
// This allows the game to work with high-level intents rather than raw input.
type Action int

const (
	ActionNone    Action = iota
	ActionUp             // W / Up arrow
	ActionDown           // S / Down arrow
	ActionLeft           // A / Left arrow
	ActionRight          // D / Right arrow
	ActionRestart        // Delete, Backspace
	ActionQuit           // Escape, Ctrl+C
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionUp:
		return "Up"
	case ActionDown:
		return "Down"
	case ActionLeft:
		return "Left"
	case ActionRight:
		return "Right"
	case ActionRestart:
		return "Restart"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}

// Direction returns the movement direction for a directional action.
func (a Action) Direction() (Direction, bool) {
	switch a {
	case ActionUp:
		return DirUp, true
	case ActionDown:
		return DirDown, true
	case ActionLeft:
		return DirLeft, true
	case ActionRight:
		return DirRight, true
	default:
		return 0, false
	}
}

// PlayerID identifies one of the two local players.
type PlayerID int

const (
	PlayerNone PlayerID = iota
	Player1             // WASD
	Player2             // Arrow keys
)

func (p PlayerID) String() string {
	switch p {
	case Player1:
		return "player one"
	case Player2:
		return "player two"
	default:
		return "none"
	}
}

// Input is a single decoded key press: which player it belongs to (if any)
// and what it asks for. Global actions use PlayerNone.
type Input struct {
	Player PlayerID
	Action Action
}
