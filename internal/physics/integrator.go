package physics

import (
	"math"

	"voxelwalk/internal/voxel"

	"github.com/sirupsen/logrus"
)

// Integrator advances an actor in fixed steps. It owns the accumulator that
// converts variable frame time into whole steps; callers keep one per
// simulated actor.
type Integrator struct {
	cfg Config
	ts  float64
	acc float64

	steps   uint64
	dropped uint64

	log logrus.FieldLogger

	// Debug enables a snapshot of every detection pass.
	Debug bool
	// OnPass receives each snapshot while Debug is set.
	OnPass func(DebugPass)

	lastPass   DebugPass
	hasPass    bool
	candidates []voxel.Cell
}

func NewIntegrator(cfg Config, log logrus.FieldLogger) (*Integrator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Integrator{
		cfg: cfg,
		ts:  cfg.Timestep(),
		log: log.WithField("component", "physics"),
	}, nil
}

// Advance adds dt seconds of real time and runs every whole step that fits.
// Non-positive, NaN and infinite deltas are ignored.
func (i *Integrator) Advance(dt float64, a *Actor, g voxel.Grid) {
	if !(dt > 0) || isInf(dt) {
		return
	}
	i.acc += dt

	limit := i.cfg.MaxStepsPerAdvance
	n := 0
	for i.acc >= i.ts {
		if limit > 0 && n >= limit {
			rem := math.Mod(i.acc, i.ts)
			// Dropped plus kept time equals the backlog.
			backlog := uint64(math.Round((i.acc - rem) / i.ts))
			i.acc = rem
			i.dropped += backlog
			i.log.WithFields(logrus.Fields{
				"limit":   limit,
				"dropped": backlog,
			}).Warn("Step cap reached, dropping backlog")
			break
		}
		i.Step(a, g)
		i.acc -= i.ts
		n++
	}
}

// Step runs exactly one fixed step without touching the accumulator.
func (i *Integrator) Step(a *Actor, g voxel.Grid) {
	a.Velocity[1] -= i.cfg.Gravity * i.ts
	a.applyIntent()
	a.Position = a.Position.Add(a.Velocity.Mul(i.ts))
	i.detect(a, g)
	i.steps++
}

func (i *Integrator) detect(a *Actor, g voxel.Grid) {
	a.Grounded = false
	i.candidates = appendCandidates(i.candidates[:0], a, g)
	cols := NarrowPhase(i.candidates, a)
	if i.Debug {
		i.lastPass = snapshot(i.steps, i.candidates, cols)
		i.hasPass = true
		if i.OnPass != nil {
			i.OnPass(i.lastPass)
		}
	}
	Resolve(cols, a)
}

// Alpha is the fraction of a step left in the accumulator, in [0, 1).
// Renderers use it to interpolate between step states.
func (i *Integrator) Alpha() float64 {
	return i.acc / i.ts
}

func (i *Integrator) Accumulator() float64 { return i.acc }
func (i *Integrator) Timestep() float64    { return i.ts }
func (i *Integrator) Config() Config       { return i.cfg }
func (i *Integrator) StepCount() uint64    { return i.steps }

// DroppedSteps counts steps discarded by the step cap.
func (i *Integrator) DroppedSteps() uint64 { return i.dropped }

// LastPass returns the most recent debug snapshot.
func (i *Integrator) LastPass() (DebugPass, bool) {
	return i.lastPass, i.hasPass
}

// SetConfig swaps parameters between steps. The accumulator is wrapped into
// the new timestep. Actors are not reshaped; call Actor.Reshape for that.
func (i *Integrator) SetConfig(cfg Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	i.cfg = cfg
	i.ts = cfg.Timestep()
	i.acc = math.Mod(i.acc, i.ts)
	i.log.WithFields(logrus.Fields{
		"gravity": cfg.Gravity,
		"rate":    cfg.SimulationRate,
		"radius":  cfg.Radius,
		"height":  cfg.Height,
	}).Debug("Config updated")
	return nil
}
