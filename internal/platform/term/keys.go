// Package term connects the game to a real character terminal: raw mode,
// alternate screen, colored square pixels, timed key reads and SIGWINCH.
// It also hosts the main loop that drives rounds.
package term

import "unicode/utf8"

// KeyType identifies a decoded key press.
type KeyType int

const (
	KeyNone KeyType = iota
	KeyRune
	KeyEscape
	KeyBackspace
	KeyDelete
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyCtrlC
)

// Key is a single decoded key press.
type Key struct {
	Type KeyType
	Rune rune // Set for KeyRune
}

// String returns the key name in the form used by bubbles key bindings.
func (k Key) String() string {
	switch k.Type {
	case KeyRune:
		return string(k.Rune)
	case KeyEscape:
		return "esc"
	case KeyBackspace:
		return "backspace"
	case KeyDelete:
		return "delete"
	case KeyUp:
		return "up"
	case KeyDown:
		return "down"
	case KeyLeft:
		return "left"
	case KeyRight:
		return "right"
	case KeyCtrlC:
		return "ctrl+c"
	default:
		return ""
	}
}

// RuneKey is a shorthand for a printable key.
func RuneKey(r rune) Key {
	return Key{Type: KeyRune, Rune: r}
}

// ParseKey decodes the first key of a raw read and returns it with the
// number of bytes it used. Unrecognized escape sequences and control bytes
// decode to KeyNone but are still consumed. ParseKey uses no bytes only when
// b is empty.
func ParseKey(b []byte) (Key, int) {
	if len(b) == 0 {
		return Key{}, 0
	}

	switch b[0] {
	case 0x1b:
		return parseEscape(b)
	case 0x7f, 0x08:
		return Key{Type: KeyBackspace}, 1
	case 0x03:
		return Key{Type: KeyCtrlC}, 1
	}

	r, size := utf8.DecodeRune(b)
	if r == utf8.RuneError && size <= 1 {
		return Key{}, 1
	}
	if r < 0x20 {
		return Key{}, size
	}
	return RuneKey(r), size
}

// parseEscape handles a lone ESC and the CSI/SS3 sequences for arrows and
// Delete. An ESC not followed by '[' or 'O' is a plain Escape press; the
// next byte belongs to the following key.
func parseEscape(b []byte) (Key, int) {
	if len(b) == 1 || (b[1] != '[' && b[1] != 'O') {
		return Key{Type: KeyEscape}, 1
	}
	if len(b) < 3 {
		return Key{}, len(b)
	}

	if b[1] == 'O' {
		return arrowKey(b[2]), 3
	}

	// CSI: parameter bytes up to a final byte in 0x40..0x7e
	end := len(b)
	for i := 2; i < len(b); i++ {
		if b[i] >= 0x40 && b[i] <= 0x7e {
			end = i + 1
			break
		}
	}
	params, final := string(b[2:end-1]), b[end-1]

	switch {
	case params == "":
		return arrowKey(final), end
	case params == "3" && final == '~':
		return Key{Type: KeyDelete}, end
	}
	return Key{}, end
}

func arrowKey(final byte) Key {
	switch final {
	case 'A':
		return Key{Type: KeyUp}
	case 'B':
		return Key{Type: KeyDown}
	case 'C':
		return Key{Type: KeyRight}
	case 'D':
		return Key{Type: KeyLeft}
	}
	return Key{}
}
