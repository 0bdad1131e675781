// Headless determinism and throughput check for the physics core.
package main

import (
	"flag"
	"fmt"
	"math/rand"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"voxelwalk/internal/config"
	"voxelwalk/internal/physics"
	"voxelwalk/internal/voxel"
	"voxelwalk/internal/worldgen"

	"github.com/go-echarts/statsview"
	"github.com/go-echarts/statsview/viewer"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/sirupsen/logrus"
)

// segment is the sim time between intent changes. Every split below divides
// it exactly in binary, so all splits feed identical steps.
const segment = 0.5

var splits = []struct {
	name   string
	deltas []float64
}{
	{"whole", []float64{segment}},
	{"per-step", repeat(32, segment/32)},
	{"halving", []float64{0.25, 0.125, 0.0625, 0.0625}},
	{"half-step", repeat(64, segment/64)},
}

func repeat(n int, dt float64) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = dt
	}
	return out
}

type options struct {
	seed      int64
	segments  int
	walkers   int
	duration  time.Duration
	generator string
	size      int
	stats     string
	logLevel  string
}

func (o options) validate() error {
	switch {
	case o.size <= 0:
		return fmt.Errorf("-size must be positive, got %d", o.size)
	case o.walkers < 0:
		return fmt.Errorf("-walkers must not be negative, got %d", o.walkers)
	case o.segments < 0:
		return fmt.Errorf("-segments must not be negative, got %d", o.segments)
	case o.duration < 0:
		return fmt.Errorf("-duration must not be negative, got %v", o.duration)
	}
	return nil
}

func main() {
	var opt options
	flag.Int64Var(&opt.seed, "seed", 42, "world and walk seed")
	flag.IntVar(&opt.segments, "segments", 240, "intent segments per determinism run")
	flag.IntVar(&opt.walkers, "walkers", 8, "concurrent walkers in the throughput run")
	flag.DurationVar(&opt.duration, "duration", 3*time.Second, "throughput run length")
	flag.StringVar(&opt.generator, "generator", "terrain", "world generator")
	flag.IntVar(&opt.size, "size", 64, "world size along X and Z")
	flag.StringVar(&opt.stats, "stats", "", "serve live runtime charts on this address, e.g. localhost:18066")
	flag.StringVar(&opt.logLevel, "log-level", "info", "log level")
	flag.Parse()
	if err := opt.validate(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		flag.Usage()
		os.Exit(2)
	}

	log, err := config.NewLogger(opt.logLevel)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	if opt.stats != "" {
		// set configurations before calling `statsview.New()` method
		viewer.SetConfiguration(viewer.WithTheme(viewer.ThemeWesteros), viewer.WithAddr(opt.stats))
		mgr := statsview.New()
		go mgr.Start()
		defer mgr.Stop()
		log.WithField("addr", opt.stats).Info("Serving runtime charts")
	}

	grid, err := worldgen.Build(opt.generator, opt.seed, opt.size, 32, opt.size)
	if err != nil {
		log.WithError(err).Fatal("Build world")
	}

	cfg := physics.DefaultConfig()
	// 1/64 is exact in binary.
	cfg.SimulationRate = 64

	if !determinism(cfg, grid, opt, log) {
		os.Exit(1)
	}
	throughput(cfg, grid, opt, log)
}

func determinism(cfg physics.Config, grid *voxel.Dense, opt options, log *logrus.Logger) bool {
	var want uint64
	ok := true
	for i, s := range splits {
		start := time.Now()
		it, err := physics.NewIntegrator(cfg, log)
		if err != nil {
			log.WithError(err).Fatal("Integrator")
		}
		spawn, found := worldgen.SpawnPoint(grid, cfg.Height)
		if !found {
			log.Fatal("World has no solid ground")
		}
		a := physics.NewActor(cfg, spawn)
		rng := rand.New(rand.NewSource(opt.seed))

		for range opt.segments {
			a.Intent = randomIntent(rng)
			for _, dt := range s.deltas {
				it.Advance(dt, a, grid)
			}
		}
		elapsed := time.Since(start)

		fp := a.Fingerprint()
		entry := log.WithFields(logrus.Fields{
			"split":       s.name,
			"steps":       it.StepCount(),
			"fingerprint": fmt.Sprintf("%016x", fp),
			"elapsed":     elapsed.Round(time.Microsecond),
		})
		if i == 0 {
			want = fp
		}
		if fp != want {
			ok = false
			entry.Error("Diverged")
			continue
		}
		entry.Info("Run complete")
	}
	return ok
}

// throughput runs walkers in parallel over a shared grid while another
// goroutine edits it.
func throughput(cfg physics.Config, grid *voxel.Dense, opt options, log *logrus.Logger) {
	world := voxel.NewShared(grid)
	sx, sy, sz := grid.Size()

	var steps atomic.Uint64
	var edits atomic.Uint64
	done := make(chan struct{})
	var wg sync.WaitGroup

	for w := range opt.walkers {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			it, err := physics.NewIntegrator(cfg, log)
			if err != nil {
				log.WithError(err).Error("Integrator")
				return
			}
			rng := rand.New(rand.NewSource(opt.seed + int64(w)))
			var a *physics.Actor
			world.View(func(d *voxel.Dense) {
				spawn, _ := worldgen.SpawnAt(d, rng.Intn(sx), rng.Intn(sz), sy/2, cfg.Height)
				a = physics.NewActor(cfg, spawn)
			})

			frame := 0
			for {
				select {
				case <-done:
					steps.Add(it.StepCount())
					return
				default:
				}
				if frame%32 == 0 {
					a.Intent = randomIntent(rng)
				}
				world.View(func(d *voxel.Dense) {
					it.Advance(1.0/64, a, d)
					if a.Feet() < -10 {
						a.Position, _ = worldgen.SpawnPoint(d, a.Height)
						a.Velocity = mgl64.Vec3{}
					}
				})
				frame++
			}
		}(w)
	}

	wg.Add(1)
	go func() {
		defer wg.Done()
		rng := rand.New(rand.NewSource(opt.seed))
		ticker := time.NewTicker(time.Millisecond)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
			}
			x, y, z := rng.Intn(sx), rng.Intn(sy), rng.Intn(sz)
			world.Update(func(d *voxel.Dense) {
				if d.Block(x, y, z) == voxel.Air {
					d.Set(x, y, z, voxel.Planks)
				} else {
					d.Set(x, y, z, voxel.Air)
				}
			})
			edits.Add(1)
		}
	}()

	start := time.Now()
	time.Sleep(opt.duration)
	close(done)
	wg.Wait()
	elapsed := time.Since(start)

	log.WithFields(logrus.Fields{
		"walkers":      opt.walkers,
		"steps":        steps.Load(),
		"edits":        edits.Load(),
		"steps_per_ms": fmt.Sprintf("%.1f", float64(steps.Load())/float64(elapsed.Milliseconds())),
	}).Info("Throughput")
}

func randomIntent(rng *rand.Rand) physics.Intent {
	return physics.Intent{
		Move: mgl64.Vec2{rng.Float64()*2 - 1, rng.Float64()*2 - 1},
		Jump: rng.Float64() < 0.3,
	}
}
