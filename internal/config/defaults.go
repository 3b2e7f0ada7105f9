package config

import (
	_ "embed"
	"time"
)

//go:embed defaults/snek.yaml
var defaultYAML []byte

// DefaultConfig returns the built-in configuration.
func DefaultConfig() Config {
	return Config{
		Palette: PaletteConfig{
			Background: "black",
			Obstacle:   "white",
			Player1:    "green",
			Player2:    "pink",
			Item:       "red",
		},
		Tick: time.Second,
	}
}

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultYAML
}
