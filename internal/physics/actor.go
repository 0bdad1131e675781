package physics

import "github.com/go-gl/mathgl/mgl64"

// Intent is the player input applied at the start of every fixed step.
type Intent struct {
	// Move is the desired horizontal direction in world space (X, Z).
	// Lengths above 1 are normalized.
	Move mgl64.Vec2
	Jump bool
}

// Actor is a vertical cylinder. Position is the top (eye) point; the feet
// sit at Position.Y - Height.
type Actor struct {
	Position mgl64.Vec3
	Velocity mgl64.Vec3

	Radius    float64
	Height    float64
	MaxSpeed  float64
	JumpSpeed float64

	Intent Intent

	// Grounded is recomputed by every detection pass.
	Grounded bool
}

// NewActor places an actor with its eye at pos, shaped by cfg.
func NewActor(cfg Config, pos mgl64.Vec3) *Actor {
	a := &Actor{Position: pos}
	a.Reshape(cfg)
	return a
}

// Reshape copies shape and speed parameters from cfg, keeping position and
// velocity.
func (a *Actor) Reshape(cfg Config) {
	a.Radius = cfg.Radius
	a.Height = cfg.Height
	a.MaxSpeed = cfg.MaxSpeed
	a.JumpSpeed = cfg.JumpSpeed
}

func (a *Actor) Feet() float64 {
	return a.Position.Y() - a.Height
}

// Center is the midpoint of the cylinder axis.
func (a *Actor) Center() mgl64.Vec3 {
	return mgl64.Vec3{a.Position.X(), a.Position.Y() - a.Height/2, a.Position.Z()}
}

func (a *Actor) Bounds() AABB {
	return NewAABBFromCenter(a.Center(), mgl64.Vec3{2 * a.Radius, a.Height, 2 * a.Radius})
}

// applyIntent sets horizontal velocity from the move intent and starts a
// jump when grounded.
func (a *Actor) applyIntent() {
	move := a.Intent.Move
	if l := move.Len(); l > 1 {
		move = move.Mul(1 / l)
	}
	a.Velocity[0] = move.X() * a.MaxSpeed
	a.Velocity[2] = move.Y() * a.MaxSpeed

	if a.Intent.Jump && a.Grounded {
		a.Velocity[1] = a.JumpSpeed
		a.Grounded = false
	}
}
