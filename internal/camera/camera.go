package camera

import (
	"voxelwalk/internal/physics"

	"github.com/chewxy/math32"
	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/go-gl/mathgl/mgl64"
)

// Input is one frame of player controls.
type Input struct {
	Forward, Back, Left, Right bool
	Jump                       bool
	MouseDX, MouseDY           float32
}

// ReadInput samples the keyboard and mouse.
func ReadInput() Input {
	delta := rl.GetMouseDelta()
	return Input{
		Forward: rl.IsKeyDown(rl.KeyW),
		Back:    rl.IsKeyDown(rl.KeyS),
		Left:    rl.IsKeyDown(rl.KeyA),
		Right:   rl.IsKeyDown(rl.KeyD),
		Jump:    rl.IsKeyDown(rl.KeySpace),
		MouseDX: delta.X,
		MouseDY: delta.Y,
	}
}

// FPSCamera is a yaw/pitch look controller. It owns no position; the eye is
// the physics actor's Position.
type FPSCamera struct {
	Yaw       float32
	Pitch     float32
	LookSpeed float32
	Fovy      float32
}

func New() *FPSCamera {
	return &FPSCamera{
		Yaw:       -135.0,
		Pitch:     -30.0,
		LookSpeed: 0.1,
		Fovy:      70,
	}
}

// Look applies a mouse delta.
func (c *FPSCamera) Look(in Input) {
	c.Yaw += in.MouseDX * c.LookSpeed
	c.Pitch -= in.MouseDY * c.LookSpeed

	// Clamp pitch
	if c.Pitch > 89 {
		c.Pitch = 89
	}
	if c.Pitch < -89 {
		c.Pitch = -89
	}
}

// Intent maps movement keys to a world-space move direction relative to the
// camera yaw. Diagonals are normalized.
func (c *FPSCamera) Intent(in Input) physics.Intent {
	forward, right := c.directions()

	var x, z float32
	if in.Forward {
		x += forward[0]
		z += forward[1]
	}
	if in.Back {
		x -= forward[0]
		z -= forward[1]
	}
	if in.Right {
		x += right[0]
		z += right[1]
	}
	if in.Left {
		x -= right[0]
		z -= right[1]
	}

	if l := math32.Sqrt(x*x + z*z); l > 0 {
		x /= l
		z /= l
	}
	return physics.Intent{
		Move: mgl64.Vec2{float64(x), float64(z)},
		Jump: in.Jump,
	}
}

// directions returns the horizontal forward and right vectors as (x, z).
func (c *FPSCamera) directions() (forward, right [2]float32) {
	yaw := c.Yaw * math32.Pi / 180
	forward = [2]float32{math32.Cos(yaw), math32.Sin(yaw)}
	right = [2]float32{-math32.Sin(yaw), math32.Cos(yaw)}
	return
}

// LookDirection is the unit view vector.
func (c *FPSCamera) LookDirection() mgl64.Vec3 {
	yaw := c.Yaw * math32.Pi / 180
	pitch := c.Pitch * math32.Pi / 180
	return mgl64.Vec3{
		float64(math32.Cos(yaw) * math32.Cos(pitch)),
		float64(math32.Sin(pitch)),
		float64(math32.Sin(yaw) * math32.Cos(pitch)),
	}
}

// Raylib builds the render camera at eye.
func (c *FPSCamera) Raylib(eye mgl64.Vec3) rl.Camera3D {
	pos := rl.Vector3{X: float32(eye.X()), Y: float32(eye.Y()), Z: float32(eye.Z())}
	dir := c.LookDirection()
	return rl.Camera3D{
		Position:   pos,
		Target:     rl.Vector3{X: pos.X + float32(dir.X()), Y: pos.Y + float32(dir.Y()), Z: pos.Z + float32(dir.Z())},
		Up:         rl.Vector3{X: 0, Y: 1, Z: 0},
		Fovy:       c.Fovy,
		Projection: rl.CameraPerspective,
	}
}
