package config

import (
	"fmt"
	"os"

	"voxelwalk/internal/physics"

	"github.com/muhammadmuzzammil1998/jsonc"
)

type World struct {
	SizeX     int    `json:"size_x"`
	SizeY     int    `json:"size_y"`
	SizeZ     int    `json:"size_z"`
	Seed      int64  `json:"seed"`
	Generator string `json:"generator"` // "terrain" or "flat"
	// MapSource, when set, is a go-getter source for a saved world file and
	// replaces generation.
	MapSource string `json:"map_source"`
	MapDir    string `json:"map_dir"`
}

type Window struct {
	Width  int `json:"width"`
	Height int `json:"height"`
	FPS    int `json:"fps"`
}

// Config holds the application configuration.
type Config struct {
	Physics physics.Config `json:"physics"`
	World   World          `json:"world"`
	Window  Window         `json:"window"`

	Debug     bool   `json:"debug"`
	LogLevel  string `json:"log_level"`
	SentryDSN string `json:"sentry_dsn"`
}

// Default returns a Config with sensible defaults.
func Default() *Config {
	return &Config{
		Physics: physics.DefaultConfig(),
		World: World{
			SizeX:     48,
			SizeY:     24,
			SizeZ:     48,
			Seed:      1,
			Generator: "terrain",
			MapDir:    "maps",
		},
		Window: Window{
			Width:  1280,
			Height: 720,
			FPS:    144,
		},
		LogLevel: "info",
	}
}

// Load reads a JSON-with-comments file over the defaults. Fields missing from
// the file keep their default values.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	cfg := Default()
	if err := jsonc.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if err := c.Physics.Validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if c.World.SizeX <= 0 || c.World.SizeY <= 0 || c.World.SizeZ <= 0 {
		return fmt.Errorf("config: world size must be positive, got %dx%dx%d",
			c.World.SizeX, c.World.SizeY, c.World.SizeZ)
	}
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("config: window size must be positive, got %dx%d", c.Window.Width, c.Window.Height)
	}
	return nil
}

// Merge applies file-loaded config values into cfg, but only for fields
// that were NOT explicitly set via CLI flags. explicitFlags contains the
// flag names that were explicitly provided on the command line.
func Merge(cfg *Config, fromFile *Config, explicitFlags map[string]bool) {
	if !explicitFlags["gravity"] {
		cfg.Physics.Gravity = fromFile.Physics.Gravity
	}
	if !explicitFlags["rate"] {
		cfg.Physics.SimulationRate = fromFile.Physics.SimulationRate
	}
	if !explicitFlags["radius"] {
		cfg.Physics.Radius = fromFile.Physics.Radius
	}
	if !explicitFlags["height"] {
		cfg.Physics.Height = fromFile.Physics.Height
	}
	if !explicitFlags["max-speed"] {
		cfg.Physics.MaxSpeed = fromFile.Physics.MaxSpeed
	}
	if !explicitFlags["jump-speed"] {
		cfg.Physics.JumpSpeed = fromFile.Physics.JumpSpeed
	}
	if !explicitFlags["max-steps"] {
		cfg.Physics.MaxStepsPerAdvance = fromFile.Physics.MaxStepsPerAdvance
	}
	if !explicitFlags["size-x"] {
		cfg.World.SizeX = fromFile.World.SizeX
	}
	if !explicitFlags["size-y"] {
		cfg.World.SizeY = fromFile.World.SizeY
	}
	if !explicitFlags["size-z"] {
		cfg.World.SizeZ = fromFile.World.SizeZ
	}
	if !explicitFlags["seed"] {
		cfg.World.Seed = fromFile.World.Seed
	}
	if !explicitFlags["generator"] {
		cfg.World.Generator = fromFile.World.Generator
	}
	if !explicitFlags["map"] {
		cfg.World.MapSource = fromFile.World.MapSource
	}
	if !explicitFlags["map-dir"] {
		cfg.World.MapDir = fromFile.World.MapDir
	}
	if !explicitFlags["window-width"] {
		cfg.Window.Width = fromFile.Window.Width
	}
	if !explicitFlags["window-height"] {
		cfg.Window.Height = fromFile.Window.Height
	}
	if !explicitFlags["fps"] {
		cfg.Window.FPS = fromFile.Window.FPS
	}
	if !explicitFlags["debug"] {
		cfg.Debug = fromFile.Debug
	}
	if !explicitFlags["log-level"] {
		cfg.LogLevel = fromFile.LogLevel
	}
	if !explicitFlags["sentry-dsn"] {
		cfg.SentryDSN = fromFile.SentryDSN
	}
}
