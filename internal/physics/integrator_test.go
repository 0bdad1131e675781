package physics

import (
	"errors"
	"math"
	"testing"

	"voxelwalk/internal/voxel"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
)

func newTestIntegrator(t *testing.T, cfg Config) *Integrator {
	t.Helper()
	logger, _ := test.NewNullLogger()
	it, err := NewIntegrator(cfg, logger)
	if err != nil {
		t.Fatalf("NewIntegrator: %v", err)
	}
	return it
}

func TestNewIntegratorRejectsInvalidConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Height = 0
	if _, err := NewIntegrator(cfg, nil); !errors.Is(err, ErrInvalidHeight) {
		t.Errorf("Expected ErrInvalidHeight, got %v", err)
	}
}

func TestLandingOnSingleVoxel(t *testing.T) {
	cfg := DefaultConfig()
	it := newTestIntegrator(t, cfg)
	g := gridWith(voxel.Cell{X: 0, Y: 1, Z: 0})
	a := NewActor(cfg, mgl64.Vec3{0.5, 2.0, 0.5})

	it.Advance(1.0/60, a, g)

	if it.StepCount() != 1 {
		t.Fatalf("Expected 1 step, got %d", it.StepCount())
	}
	approxEqual(t, "feet", a.Feet(), 1.5, eps)
	approxEqual(t, "position y", a.Position.Y(), 1.0+0.5+cfg.Height, eps)
	if a.Velocity.Y() != 0 {
		t.Errorf("Expected vertical velocity cleared, got %v", a.Velocity.Y())
	}
	if !a.Grounded {
		t.Error("Expected grounded after landing")
	}

	for range 120 {
		it.Step(a, g)
		if !a.Grounded {
			t.Fatalf("Lost ground contact at step %d", it.StepCount())
		}
	}
	approxEqual(t, "feet after settling", a.Feet(), 1.5, 1e-6)
}

func TestEmptySpaceOnlyIntegrates(t *testing.T) {
	cfg := DefaultConfig()
	it := newTestIntegrator(t, cfg)
	g := floorGrid()
	a := NewActor(cfg, mgl64.Vec3{3, 7, 3})

	it.Advance(1.0/60, a, g)

	ts := 1.0 / 60
	approxEqual(t, "velocity y", a.Velocity.Y(), -cfg.Gravity*ts, eps)
	approxEqual(t, "position y", a.Position.Y(), 7-cfg.Gravity*ts*ts, eps)
	if a.Grounded {
		t.Error("Expected airborne actor")
	}
}

func TestAccumulatorStaysBelowTimestep(t *testing.T) {
	it := newTestIntegrator(t, DefaultConfig())
	g := floorGrid()
	a := testActor(3, 2.3, 3)

	for _, dt := range []float64{0.037, 0.001, 0.25, 1.0 / 60, 0.0163} {
		it.Advance(dt, a, g)
		if acc := it.Accumulator(); acc < 0 || acc >= it.Timestep() {
			t.Fatalf("Accumulator %v outside [0, %v)", acc, it.Timestep())
		}
		if alpha := it.Alpha(); alpha < 0 || alpha >= 1 {
			t.Fatalf("Alpha %v outside [0, 1)", alpha)
		}
	}
}

func TestAdvanceIgnoresBadDeltas(t *testing.T) {
	it := newTestIntegrator(t, DefaultConfig())
	g := floorGrid()
	a := testActor(3, 5, 3)
	start := a.Position

	for _, dt := range []float64{0, -1, math.NaN(), math.Inf(1), math.Inf(-1)} {
		it.Advance(dt, a, g)
	}
	if it.StepCount() != 0 || it.Accumulator() != 0 {
		t.Errorf("Expected no progress, got %d steps, acc %v", it.StepCount(), it.Accumulator())
	}
	if a.Position != start {
		t.Errorf("Expected position unchanged, got %v", a.Position)
	}
}

func walkScene(cfg Config) (*Actor, *voxel.Dense) {
	g := floorGrid()
	g.Set(5, 1, 4, voxel.Stone)
	g.Set(5, 2, 4, voxel.Stone)
	g.Set(4, 1, 5, voxel.Stone)
	g.Set(2, 1, 6, voxel.Stone)
	a := NewActor(cfg, mgl64.Vec3{2, 3.5, 2})
	a.Intent.Move = mgl64.Vec2{1, 0.7}
	return a, g
}

func TestDeterministicAcrossFrameSplits(t *testing.T) {
	cfg := DefaultConfig()
	// 1/64 is exact in binary so every split sums to the same accumulator.
	cfg.SimulationRate = 64

	repeat := func(n int, dt float64) []float64 {
		out := make([]float64, n)
		for i := range out {
			out[i] = dt
		}
		return out
	}
	splits := map[string][]float64{
		"single":    {1.0},
		"per-step":  repeat(64, 1.0/64),
		"halving":   {0.5, 0.25, 0.125, 0.125},
		"half-step": repeat(128, 1.0/128),
	}

	var want uint64
	var wantName string
	for name, deltas := range splits {
		it := newTestIntegrator(t, cfg)
		a, g := walkScene(cfg)
		for _, dt := range deltas {
			it.Advance(dt, a, g)
		}
		if it.StepCount() != 64 {
			t.Errorf("%s: expected 64 steps, got %d", name, it.StepCount())
		}
		fp := a.Fingerprint()
		if wantName == "" {
			want, wantName = fp, name
			continue
		}
		if fp != want {
			t.Errorf("%s diverged from %s: %x != %x (pos %v)", name, wantName, fp, want, a.Position)
		}
	}
}

func TestStepCapDropsBacklog(t *testing.T) {
	cfg := DefaultConfig()
	cfg.SimulationRate = 64
	cfg.MaxStepsPerAdvance = 3

	logger, hook := test.NewNullLogger()
	it, err := NewIntegrator(cfg, logger)
	if err != nil {
		t.Fatalf("NewIntegrator: %v", err)
	}
	a := testActor(3, 6, 3)

	it.Advance(10.0/64, a, floorGrid())

	if it.StepCount() != 3 {
		t.Errorf("Expected 3 steps, got %d", it.StepCount())
	}
	if it.DroppedSteps() != 7 {
		t.Errorf("Expected 7 dropped steps, got %d", it.DroppedSteps())
	}
	if it.Accumulator() != 0 {
		t.Errorf("Expected empty accumulator, got %v", it.Accumulator())
	}

	entry := hook.LastEntry()
	if entry == nil || entry.Level != logrus.WarnLevel {
		t.Fatalf("Expected a warning, got %v", entry)
	}
	if entry.Data["dropped"] != uint64(7) {
		t.Errorf("Expected dropped=7 in log fields, got %v", entry.Data["dropped"])
	}
}

func TestStepCapAccountsForAllTime(t *testing.T) {
	for _, rate := range []float64{7, 30.5, 60, 90, 144} {
		for _, dt := range []float64{0.7, 1.0, 2.3, 13.37} {
			cfg := DefaultConfig()
			cfg.SimulationRate = rate
			cfg.MaxStepsPerAdvance = 2

			logger, hook := test.NewNullLogger()
			it, err := NewIntegrator(cfg, logger)
			if err != nil {
				t.Fatalf("NewIntegrator: %v", err)
			}
			it.Advance(dt, testActor(3, 6, 3), floorGrid())

			ts := it.Timestep()
			if acc := it.Accumulator(); acc < 0 || acc >= ts {
				t.Errorf("rate %v dt %v: accumulator %v outside [0, %v)", rate, dt, acc, ts)
			}
			total := float64(it.StepCount()+it.DroppedSteps())*ts + it.Accumulator()
			if math.Abs(total-dt) > 1e-9 {
				t.Errorf("rate %v dt %v: steps %d + dropped %d + acc %v account for %v",
					rate, dt, it.StepCount(), it.DroppedSteps(), it.Accumulator(), total)
			}
			if entry := hook.LastEntry(); entry == nil || entry.Data["dropped"] != it.DroppedSteps() {
				t.Errorf("rate %v dt %v: expected logged dropped=%d, got %v", rate, dt, it.DroppedSteps(), entry)
			}
		}
	}
}

func TestSetConfigWrapsAccumulator(t *testing.T) {
	cfg := DefaultConfig()
	cfg.SimulationRate = 64
	it := newTestIntegrator(t, cfg)
	a := testActor(3, 6, 3)

	it.Advance(1.75/64, a, floorGrid())
	if it.Accumulator() != 0.75/64 {
		t.Fatalf("Expected accumulator 0.75/64, got %v", it.Accumulator())
	}

	next := cfg
	next.SimulationRate = 128
	if err := it.SetConfig(next); err != nil {
		t.Fatalf("SetConfig: %v", err)
	}
	if it.Accumulator() != 1.0/256 {
		t.Errorf("Expected accumulator 1/256, got %v", it.Accumulator())
	}
	if it.Timestep() != 1.0/128 {
		t.Errorf("Expected timestep 1/128, got %v", it.Timestep())
	}

	bad := next
	bad.SimulationRate = 0
	if err := it.SetConfig(bad); !errors.Is(err, ErrInvalidRate) {
		t.Errorf("Expected ErrInvalidRate, got %v", err)
	}
	if it.Config().SimulationRate != 128 {
		t.Errorf("Rejected config must not apply, rate is %v", it.Config().SimulationRate)
	}
}

func TestDebugPassSnapshot(t *testing.T) {
	cfg := DefaultConfig()
	it := newTestIntegrator(t, cfg)
	g := gridWith(voxel.Cell{X: 0, Y: 1, Z: 0})
	a := NewActor(cfg, mgl64.Vec3{0.5, 2.0, 0.5})

	if _, ok := it.LastPass(); ok {
		t.Fatal("Expected no snapshot before the first step")
	}

	var passes []DebugPass
	it.Debug = true
	it.OnPass = func(p DebugPass) { passes = append(passes, p) }
	it.Advance(1.0/60, a, g)

	if len(passes) != 1 {
		t.Fatalf("Expected 1 pass, got %d", len(passes))
	}
	p := passes[0]
	if len(p.Candidates) != 1 || p.Candidates[0] != (voxel.Cell{X: 0, Y: 1, Z: 0}) {
		t.Errorf("Unexpected candidates: %v", p.Candidates)
	}
	if len(p.Collisions) != 1 || len(p.Contacts) != 1 {
		t.Fatalf("Expected 1 collision and contact, got %d/%d", len(p.Collisions), len(p.Contacts))
	}
	if p.Contacts[0] != p.Collisions[0].Contact {
		t.Errorf("Contact mismatch: %v vs %v", p.Contacts[0], p.Collisions[0].Contact)
	}

	last, ok := it.LastPass()
	if !ok || last.Step != p.Step {
		t.Errorf("LastPass should match the delivered snapshot")
	}
}

func TestJumpRequiresGround(t *testing.T) {
	cfg := DefaultConfig()
	it := newTestIntegrator(t, cfg)
	g := floorGrid()
	a := NewActor(cfg, mgl64.Vec3{1, 0.5 + cfg.Height, 1})

	a.Intent.Jump = true
	a.Grounded = false
	it.Step(a, g)
	if a.Velocity.Y() > 0 {
		t.Fatalf("Airborne actor must not jump, vy=%v", a.Velocity.Y())
	}
	if !a.Grounded {
		t.Fatal("Expected the step to land the actor")
	}

	it.Step(a, g)
	if a.Velocity.Y() != cfg.JumpSpeed {
		t.Errorf("Expected vy=%v after jump, got %v", cfg.JumpSpeed, a.Velocity.Y())
	}
	if a.Grounded {
		t.Error("Expected actor to leave the ground")
	}
}

func TestIntentClampsToMaxSpeed(t *testing.T) {
	a := testActor(0, 0, 0)

	a.Intent.Move = mgl64.Vec2{3, 4}
	a.applyIntent()
	approxEqual(t, "vx", a.Velocity.X(), 0.6*a.MaxSpeed, eps)
	approxEqual(t, "vz", a.Velocity.Z(), 0.8*a.MaxSpeed, eps)

	a.Intent.Move = mgl64.Vec2{0.5, 0}
	a.applyIntent()
	approxEqual(t, "partial vx", a.Velocity.X(), 0.5*a.MaxSpeed, eps)
	approxEqual(t, "partial vz", a.Velocity.Z(), 0, eps)
}

func TestFingerprintTracksState(t *testing.T) {
	a := testActor(1, 2, 3)
	b := testActor(1, 2, 3)
	if a.Fingerprint() != b.Fingerprint() {
		t.Error("Identical actors should share a fingerprint")
	}

	b.Grounded = true
	if a.Fingerprint() == b.Fingerprint() {
		t.Error("Grounded flag should change the fingerprint")
	}

	b.Grounded = false
	b.Velocity[2] = math.Nextafter(0, 1)
	if a.Fingerprint() == b.Fingerprint() {
		t.Error("A one-ulp velocity change should change the fingerprint")
	}
}
