package game

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/samdwyer/pitd/internal/bsp"
	"github.com/samdwyer/pitd/internal/world"
)

// ErrInvalidConfig is returned when an environment value cannot be parsed or
// the resulting configuration cannot produce a map.
var ErrInvalidConfig = errors.New("invalid config")

// Default map dimensions and generation parameters.
const (
	DefaultWidth     = 80
	DefaultHeight    = 24
	DefaultMinRoom   = 4
	DefaultMaxDepth  = 5
	DefaultFOVRadius = 5
)

// Config holds game configuration options.
type Config struct {
	// Seed for dungeon generation. Empty means a random seed string is drawn.
	Seed string

	Width, Height int
	MinRoomSize   int
	MaxRoomSize   int // 0 bounds rooms only by their leaf
	MaxDepth      int
	MaxRooms      int // 0 keeps every carved room
	FOVRadius     int

	// MapPath loads a map file instead of generating a dungeon.
	MapPath string
	// Scatter uses the scatter generator instead of the partition tree.
	Scatter bool
}

// DefaultConfig returns the configuration used when nothing is overridden.
func DefaultConfig() Config {
	return Config{
		Width:       DefaultWidth,
		Height:      DefaultHeight,
		MinRoomSize: DefaultMinRoom,
		MaxDepth:    DefaultMaxDepth,
		FOVRadius:   DefaultFOVRadius,
	}
}

// LoadConfig reads PITD_* environment variables over the defaults.
func LoadConfig() (Config, error) {
	cfg := DefaultConfig()
	cfg.Seed = os.Getenv("PITD_SEED")
	cfg.MapPath = os.Getenv("PITD_MAP")

	ints := []struct {
		key string
		dst *int
	}{
		{"PITD_WIDTH", &cfg.Width},
		{"PITD_HEIGHT", &cfg.Height},
		{"PITD_MIN_ROOM", &cfg.MinRoomSize},
		{"PITD_MAX_ROOM", &cfg.MaxRoomSize},
		{"PITD_MAX_DEPTH", &cfg.MaxDepth},
		{"PITD_MAX_ROOMS", &cfg.MaxRooms},
		{"PITD_FOV_RADIUS", &cfg.FOVRadius},
	}
	for _, v := range ints {
		raw, ok := os.LookupEnv(v.key)
		if !ok || raw == "" {
			continue
		}
		n, err := strconv.Atoi(raw)
		if err != nil {
			return cfg, fmt.Errorf("%w: %s=%q is not an integer", ErrInvalidConfig, v.key, raw)
		}
		*v.dst = n
	}
	return cfg, nil
}

// Validate reports the first failing precondition. A map file brings its own
// grid, so only the sight radius is checked for it.
func (c Config) Validate() error {
	if c.FOVRadius <= 0 {
		return fmt.Errorf("%w: fov radius %d must be positive", ErrInvalidConfig, c.FOVRadius)
	}
	if c.MaxRooms < 0 {
		return fmt.Errorf("%w: %w: got %d", ErrInvalidConfig, bsp.ErrNegativeRooms, c.MaxRooms)
	}
	switch {
	case c.MapPath != "":
		return nil
	case c.Scatter:
		if err := c.ScatterOptions().Validate(); err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
		}
	default:
		if err := c.BSPOptions().Validate(); err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
		}
	}
	return nil
}

// BSPOptions returns the partition tree options for this configuration.
func (c Config) BSPOptions() bsp.Options {
	return bsp.Options{
		Width:       c.Width,
		Height:      c.Height,
		MinRoomSize: c.MinRoomSize,
		MaxRoomSize: c.MaxRoomSize,
		MaxDepth:    c.MaxDepth,
		Seed:        c.Seed,
	}
}

// ScatterOptions returns the scatter generator options. Without a max room
// size, rooms grow up to a quarter of the shorter side.
func (c Config) ScatterOptions() world.ScatterOptions {
	maxSize := c.MaxRoomSize
	if maxSize == 0 {
		maxSize = max(c.MinRoomSize, min(c.Width, c.Height)/4)
	}
	return world.ScatterOptions{
		Width:   c.Width,
		Height:  c.Height,
		MinSize: c.MinRoomSize,
		MaxSize: maxSize,
		Seed:    c.Seed,
	}
}
