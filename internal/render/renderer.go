package render

import (
	"voxelwalk/internal/physics"
	"voxelwalk/internal/voxel"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/go-gl/mathgl/mgl64"
)

const (
	clipNear float32 = 0.05
	clipFar  float32 = 400
)

// unknownColor paints ids missing from the registry, e.g. cells loaded from a
// world file saved with more block types. They still collide.
var unknownColor = rl.Magenta

type drawCell struct {
	cell  voxel.Cell
	color rl.Color
	edge  rl.Color
}

// Renderer draws the voxel world, the actor volume and the collision debug
// overlay. Exposed cells are cached and rebuilt after every world edit.
type Renderer struct {
	registry *voxel.Registry
	cells    []drawCell
	drawn    int
}

func NewRenderer(registry *voxel.Registry) *Renderer {
	return &Renderer{registry: registry}
}

// Rebuild rescans the grid for exposed cells. Call it under Shared.View.
func (r *Renderer) Rebuild(g *voxel.Dense) {
	r.cells = r.cells[:0]
	g.Each(func(c voxel.Cell, id voxel.BlockID) {
		if !g.Exposed(c) {
			return
		}
		col := unknownColor
		if bt, ok := r.registry.Type(id); ok {
			col = rl.NewColor(bt.Color.R, bt.Color.G, bt.Color.B, bt.Color.A)
		}
		r.cells = append(r.cells, drawCell{cell: c, color: col, edge: darken(col)})
	})
}

// Visible is the number of cells drawn last frame.
func (r *Renderer) Visible() int { return r.drawn }

// Cached is the number of exposed cells.
func (r *Renderer) Cached() int { return len(r.cells) }

func (r *Renderer) DrawWorld(camera rl.Camera3D) {
	frustum := ExtractFrustum(camera, clipNear, clipFar)
	one := rl.Vector3{X: 1, Y: 1, Z: 1}

	r.drawn = 0
	for _, dc := range r.cells {
		if !frustum.ContainsCell(dc.cell.X, dc.cell.Y, dc.cell.Z) {
			continue
		}
		pos := cellVec(dc.cell)
		rl.DrawCubeV(pos, one, dc.color)
		rl.DrawCubeWiresV(pos, one, dc.edge)
		r.drawn++
	}
}

// DrawActor draws the collision cylinder as wires.
func DrawActor(a *physics.Actor, col rl.Color) {
	feet := rl.Vector3{X: float32(a.Position.X()), Y: float32(a.Feet()), Z: float32(a.Position.Z())}
	rl.DrawCylinderWires(feet, float32(a.Radius), float32(a.Radius), float32(a.Height), 12, col)
}

// DrawHighlight outlines the targeted cell.
func DrawHighlight(c voxel.Cell) {
	rl.DrawCubeWiresV(cellVec(c), rl.Vector3{X: 1.02, Y: 1.02, Z: 1.02}, rl.Black)
}

// DrawDebugPass shows broad-phase candidates, contact points and normals.
func DrawDebugPass(p physics.DebugPass) {
	for _, c := range p.Candidates {
		rl.DrawCubeWiresV(cellVec(c), rl.Vector3{X: 1.04, Y: 1.04, Z: 1.04}, rl.Yellow)
	}
	for _, col := range p.Collisions {
		contact := vec(col.Contact)
		rl.DrawSphere(contact, 0.05, rl.Red)
		rl.DrawLine3D(contact, vec(col.Contact.Add(col.Normal.Mul(0.5))), rl.Magenta)
	}
}

func cellVec(c voxel.Cell) rl.Vector3 {
	return rl.Vector3{X: float32(c.X), Y: float32(c.Y), Z: float32(c.Z)}
}

func vec(v mgl64.Vec3) rl.Vector3 {
	return rl.Vector3{X: float32(v.X()), Y: float32(v.Y()), Z: float32(v.Z())}
}

func darken(c rl.Color) rl.Color {
	return rl.NewColor(c.R/2, c.G/2, c.B/2, c.A)
}
