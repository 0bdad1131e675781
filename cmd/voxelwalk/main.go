package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"voxelwalk/internal/config"
	"voxelwalk/internal/game"
	"voxelwalk/internal/voxel"
	"voxelwalk/internal/worldfile"
	"voxelwalk/internal/worldgen"

	"github.com/getsentry/sentry-go"
	"github.com/sirupsen/logrus"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "voxelwalk:", err)
		os.Exit(1)
	}
}

func run() error {
	// Change working directory to executable location for deployed builds.
	// Skip this for "go run" which puts the binary in a temp directory.
	if execPath, err := os.Executable(); err == nil {
		execDir := filepath.Dir(execPath)
		if !strings.Contains(execDir, "go-build") {
			os.Chdir(execDir)
		}
	}

	cfg := config.Default()
	configPath := flag.String("config", "", "path to a JSON config file (comments allowed)")
	flag.Float64Var(&cfg.Physics.Gravity, "gravity", cfg.Physics.Gravity, "gravity in units/s²")
	flag.Float64Var(&cfg.Physics.SimulationRate, "rate", cfg.Physics.SimulationRate, "fixed steps per second")
	flag.Float64Var(&cfg.Physics.Radius, "radius", cfg.Physics.Radius, "actor radius")
	flag.Float64Var(&cfg.Physics.Height, "height", cfg.Physics.Height, "actor height")
	flag.Float64Var(&cfg.Physics.MaxSpeed, "max-speed", cfg.Physics.MaxSpeed, "horizontal speed in units/s")
	flag.Float64Var(&cfg.Physics.JumpSpeed, "jump-speed", cfg.Physics.JumpSpeed, "initial jump velocity")
	flag.IntVar(&cfg.Physics.MaxStepsPerAdvance, "max-steps", cfg.Physics.MaxStepsPerAdvance, "max fixed steps per frame (0 = unbounded)")
	flag.IntVar(&cfg.World.SizeX, "size-x", cfg.World.SizeX, "world size along X")
	flag.IntVar(&cfg.World.SizeY, "size-y", cfg.World.SizeY, "world size along Y")
	flag.IntVar(&cfg.World.SizeZ, "size-z", cfg.World.SizeZ, "world size along Z")
	flag.Int64Var(&cfg.World.Seed, "seed", cfg.World.Seed, "world seed")
	flag.StringVar(&cfg.World.Generator, "generator", cfg.World.Generator, "world generator (terrain, flat)")
	flag.StringVar(&cfg.World.MapSource, "map", cfg.World.MapSource, "load a saved world from a path or URL instead of generating")
	flag.StringVar(&cfg.World.MapDir, "map-dir", cfg.World.MapDir, "directory for fetched and saved worlds")
	flag.IntVar(&cfg.Window.Width, "window-width", cfg.Window.Width, "window width")
	flag.IntVar(&cfg.Window.Height, "window-height", cfg.Window.Height, "window height")
	flag.IntVar(&cfg.Window.FPS, "fps", cfg.Window.FPS, "target frame rate")
	flag.BoolVar(&cfg.Debug, "debug", cfg.Debug, "start with the collision overlay")
	flag.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "debug, info, warn or error")
	flag.StringVar(&cfg.SentryDSN, "sentry-dsn", cfg.SentryDSN, "report crashes to sentry")
	flag.Parse()

	explicit := map[string]bool{}
	flag.Visit(func(f *flag.Flag) { explicit[f.Name] = true })

	if *configPath != "" {
		fromFile, err := config.Load(*configPath)
		if err != nil {
			return err
		}
		config.Merge(cfg, fromFile, explicit)
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	log, err := config.NewLogger(cfg.LogLevel)
	if err != nil {
		return err
	}

	if cfg.SentryDSN != "" {
		if err := sentry.Init(sentry.ClientOptions{Dsn: cfg.SentryDSN}); err != nil {
			log.WithError(err).Warn("Sentry disabled")
		} else {
			defer sentry.Flush(2 * time.Second)
			defer sentry.Recover()
		}
	}

	grid, err := loadWorld(cfg, log)
	if err != nil {
		return err
	}

	g, err := game.New(cfg, grid, log)
	if err != nil {
		return err
	}
	g.Run()
	return nil
}

func loadWorld(cfg *config.Config, log logrus.FieldLogger) (*voxel.Dense, error) {
	if cfg.World.MapSource != "" {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()
		return worldfile.Fetch(ctx, cfg.World.MapSource, cfg.World.MapDir, log)
	}

	w := cfg.World
	grid, err := worldgen.Build(w.Generator, w.Seed, w.SizeX, w.SizeY, w.SizeZ)
	if err != nil {
		return nil, err
	}
	log.WithFields(logrus.Fields{
		"generator": w.Generator,
		"seed":      w.Seed,
		"size":      fmt.Sprintf("%dx%dx%d", w.SizeX, w.SizeY, w.SizeZ),
	}).Info("World generated")
	return grid, nil
}
