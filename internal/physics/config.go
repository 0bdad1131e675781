package physics

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidRadius  = errors.New("physics: radius must be positive")
	ErrInvalidHeight  = errors.New("physics: height must be positive")
	ErrInvalidRate    = errors.New("physics: simulation rate must be positive")
	ErrInvalidGravity = errors.New("physics: gravity must be finite and non-negative")
	ErrInvalidSpeed   = errors.New("physics: speeds must be finite and non-negative")
	ErrInvalidStepCap = errors.New("physics: max steps per advance must be non-negative")
)

// Config holds the numeric parameters of a simulation. The zero value is not
// usable; start from DefaultConfig.
type Config struct {
	Gravity        float64 `json:"gravity"`
	SimulationRate float64 `json:"simulation_rate"`
	Radius         float64 `json:"radius"`
	Height         float64 `json:"height"`
	MaxSpeed       float64 `json:"max_speed"`
	JumpSpeed      float64 `json:"jump_speed"`

	// MaxStepsPerAdvance caps fixed steps run by one Advance call.
	// 0 means no cap.
	MaxStepsPerAdvance int `json:"max_steps_per_advance"`
}

func DefaultConfig() Config {
	return Config{
		Gravity:        20,
		SimulationRate: 60,
		Radius:         0.4,
		Height:         1.8,
		MaxSpeed:       8,
		JumpSpeed:      8,
	}
}

// Validate reports the first invalid field. NaN fails every check.
func (c Config) Validate() error {
	switch {
	case !(c.Radius > 0) || isInf(c.Radius):
		return fmt.Errorf("%w: %v", ErrInvalidRadius, c.Radius)
	case !(c.Height > 0) || isInf(c.Height):
		return fmt.Errorf("%w: %v", ErrInvalidHeight, c.Height)
	case !(c.SimulationRate > 0) || isInf(c.SimulationRate):
		return fmt.Errorf("%w: %v", ErrInvalidRate, c.SimulationRate)
	case !(c.Gravity >= 0) || isInf(c.Gravity):
		return fmt.Errorf("%w: %v", ErrInvalidGravity, c.Gravity)
	case !(c.MaxSpeed >= 0) || isInf(c.MaxSpeed):
		return fmt.Errorf("%w: max speed %v", ErrInvalidSpeed, c.MaxSpeed)
	case !(c.JumpSpeed >= 0) || isInf(c.JumpSpeed):
		return fmt.Errorf("%w: jump speed %v", ErrInvalidSpeed, c.JumpSpeed)
	case c.MaxStepsPerAdvance < 0:
		return fmt.Errorf("%w: %d", ErrInvalidStepCap, c.MaxStepsPerAdvance)
	}
	return nil
}

// Timestep is the fixed step size in seconds.
func (c Config) Timestep() float64 {
	return 1 / c.SimulationRate
}
