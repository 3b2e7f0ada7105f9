// Package config provides YAML-based configuration loading for snek.
package config

import (
	"fmt"
	"time"

	"github.com/vovakirdan/snek/internal/core"
)

// Config is the on-disk configuration.
type Config struct {
	Palette PaletteConfig `yaml:"palette"`
	Tick    time.Duration `yaml:"tick"` // Key poll timeout; fixed for the session, never changed in game
}

// PaletteConfig names the color of each frame layer.
type PaletteConfig struct {
	Background string `yaml:"background"`
	Obstacle   string `yaml:"obstacle"`
	Player1    string `yaml:"player1"`
	Player2    string `yaml:"player2"`
	Item       string `yaml:"item"`
}

// Resolve looks up every color name. The first unknown name fails with
// core.ErrUnknownColorName.
func (p PaletteConfig) Resolve() (core.Palette, error) {
	var pal core.Palette
	fields := []struct {
		layer string
		name  string
		dst   *core.Color
	}{
		{"background", p.Background, &pal.Background},
		{"obstacle", p.Obstacle, &pal.Obstacle},
		{"player1", p.Player1, &pal.Player1},
		{"player2", p.Player2, &pal.Player2},
		{"item", p.Item, &pal.Item},
	}

	for _, f := range fields {
		c, err := core.LookupColor(f.name)
		if err != nil {
			return core.Palette{}, fmt.Errorf("config: palette.%s: %w", f.layer, err)
		}
		*f.dst = c
	}
	return pal, nil
}

// Runtime converts the config into the game loop settings.
// A zero or negative tick falls back to the default.
func (c Config) Runtime(seed int64) core.RuntimeConfig {
	rc := core.DefaultConfig()
	if c.Tick > 0 {
		rc.Tick = c.Tick
	}
	rc.Seed = seed
	return rc
}
