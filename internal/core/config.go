package core

import "time"

// RuntimeConfig contains configuration passed to the host at start-up.
type RuntimeConfig struct {
	ScreenW  int    // Screen width in characters
	ScreenH  int    // Screen height in characters
	Seed     int64  // Level generation seed (0 = time based)
	PlayerID string // Save slot owner; empty means the local default player
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW: 80,
		ScreenH: 24,
		Seed:    0, // 0 means use current time in platform layer
	}
}

// WithScreen returns a copy sized to the given terminal. Non-positive
// dimensions keep the current values.
func (c RuntimeConfig) WithScreen(w, h int) RuntimeConfig {
	if w > 0 {
		c.ScreenW = w
	}
	if h > 0 {
		c.ScreenH = h
	}
	return c
}

// Clock returns the current time. Injected wherever day boundaries or level
// timers matter so tests can pin the date.
type Clock func() time.Time

// SystemClock is the wall clock.
func SystemClock() time.Time {
	return time.Now()
}
