package core

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrUnknownColorName is returned when a color name is not in the table.
var ErrUnknownColorName = errors.New("unknown color name")

// Color is a 24-bit RGB color for a square pixel.
type Color struct {
	R, G, B uint8
}

// RGB creates a color from its components.
func RGB(r, g, b uint8) Color {
	return Color{R: r, G: g, B: b}
}

// Hex returns the color in #rrggbb notation.
func (c Color) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

func (c Color) String() string {
	return c.Hex()
}

// LookupColor resolves a color name. Matching ignores case, spaces and
// underscores, so "Hot Pink" and "hot_pink" both resolve to hotpink.
func LookupColor(name string) (Color, error) {
	key := strings.ToLower(name)
	key = strings.NewReplacer(" ", "", "_", "", "-", "").Replace(key)
	c, ok := colorNames[key]
	if !ok {
		return Color{}, fmt.Errorf("color %q: %w", name, ErrUnknownColorName)
	}
	return c, nil
}

// ColorNames returns all known color names, sorted.
func ColorNames() []string {
	names := make([]string, 0, len(colorNames))
	for name := range colorNames {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
