package game

import (
	"errors"
	"testing"

	"github.com/samdwyer/pitd/internal/bsp"
)

func TestLoadConfigDefaults(t *testing.T) {
	for _, key := range []string{
		"PITD_SEED", "PITD_MAP", "PITD_WIDTH", "PITD_HEIGHT", "PITD_MIN_ROOM",
		"PITD_MAX_ROOM", "PITD_MAX_DEPTH", "PITD_MAX_ROOMS", "PITD_FOV_RADIUS",
	} {
		t.Setenv(key, "")
	}

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg != DefaultConfig() {
		t.Errorf("LoadConfig() = %+v, want defaults %+v", cfg, DefaultConfig())
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should be valid: %v", err)
	}
}

func TestLoadConfigFromEnv(t *testing.T) {
	t.Setenv("PITD_SEED", "hello world")
	t.Setenv("PITD_WIDTH", "40")
	t.Setenv("PITD_HEIGHT", "20")
	t.Setenv("PITD_MIN_ROOM", "3")
	t.Setenv("PITD_MAX_ROOM", "8")
	t.Setenv("PITD_MAX_DEPTH", "4")
	t.Setenv("PITD_MAX_ROOMS", "6")
	t.Setenv("PITD_FOV_RADIUS", "7")
	t.Setenv("PITD_MAP", "")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	want := Config{
		Seed: "hello world", Width: 40, Height: 20, MinRoomSize: 3, MaxRoomSize: 8,
		MaxDepth: 4, MaxRooms: 6, FOVRadius: 7,
	}
	if cfg != want {
		t.Errorf("LoadConfig() = %+v, want %+v", cfg, want)
	}

	opts := cfg.BSPOptions()
	if opts.Width != 40 || opts.Height != 20 || opts.MaxRoomSize != 8 || opts.Seed != "hello world" {
		t.Errorf("BSPOptions() = %+v", opts)
	}
}

func TestLoadConfigRejectsNonInteger(t *testing.T) {
	t.Setenv("PITD_WIDTH", "wide")
	if _, err := LoadConfig(); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("LoadConfig() error = %v, want ErrInvalidConfig", err)
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
		want   error
	}{
		{"zero radius", func(c *Config) { c.FOVRadius = 0 }, ErrInvalidConfig},
		{"negative rooms", func(c *Config) { c.MaxRooms = -1 }, bsp.ErrNegativeRooms},
		{"zero width", func(c *Config) { c.Width = 0 }, bsp.ErrInvalidSize},
		{"zero depth", func(c *Config) { c.MaxDepth = 0 }, bsp.ErrInvalidDepth},
		{"room too large", func(c *Config) { c.MinRoomSize = 30 }, bsp.ErrRoomTooLarge},
		{"scatter too small", func(c *Config) { c.Scatter = true; c.Width = 2 }, ErrInvalidConfig},
	}
	for _, tt := range tests {
		cfg := DefaultConfig()
		tt.modify(&cfg)
		if err := cfg.Validate(); !errors.Is(err, tt.want) {
			t.Errorf("%s: Validate() = %v, want %v", tt.name, err, tt.want)
		}
	}

	cfg := DefaultConfig()
	cfg.Width = 0
	cfg.MapPath = "some.map"
	if err := cfg.Validate(); err != nil {
		t.Errorf("map file config should skip generator checks: %v", err)
	}
}

func TestScatterOptionsDefaultMaxSize(t *testing.T) {
	cfg := DefaultConfig()
	opts := cfg.ScatterOptions()
	if opts.MaxSize != 6 {
		t.Errorf("MaxSize = %d, want 6 (a quarter of 24)", opts.MaxSize)
	}
	if err := opts.Validate(); err != nil {
		t.Errorf("default scatter options should be valid: %v", err)
	}

	cfg.MaxRoomSize = 9
	if got := cfg.ScatterOptions().MaxSize; got != 9 {
		t.Errorf("MaxSize = %d, want 9", got)
	}
}
