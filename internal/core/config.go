package core

import "time"

// RuntimeConfig contains configuration passed to the game loop.
type RuntimeConfig struct {
	Tick time.Duration // Input poll timeout; doubles as the game clock
	Seed int64         // RNG seed for item placement (0 = time based)
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		Tick: time.Second,
		Seed: 0, // 0 means use current time in platform layer
	}
}

// Palette holds the resolved colors for each layer of a frame.
type Palette struct {
	Background Color
	Obstacle   Color
	Player1    Color
	Player2    Color
	Item       Color
}
