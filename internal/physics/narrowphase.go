package physics

import (
	"math"

	"voxelwalk/internal/voxel"

	"github.com/go-gl/mathgl/mgl64"
)

// Collision is one penetration between the actor and a voxel.
type Collision struct {
	Cell voxel.Cell
	// Contact is the point on the voxel closest to the actor center.
	Contact mgl64.Vec3
	// Normal is unit length and points away from the voxel.
	Normal  mgl64.Vec3
	Overlap float64
}

// NarrowPhase tests each candidate against the actor cylinder and returns the
// true overlaps in candidate order.
func NarrowPhase(candidates []voxel.Cell, a *Actor) []Collision {
	var out []Collision
	for _, c := range candidates {
		if col, ok := testCell(c, a); ok {
			out = append(out, col)
		}
	}
	return out
}

// testCell picks the shallower of the vertical and radial separating axes.
// When the actor axis passes through the cube horizontally the radial
// direction is undefined and the vertical axis is used.
func testCell(c voxel.Cell, a *Actor) (Collision, bool) {
	center := a.Center()
	cx, cy, cz := float64(c.X), float64(c.Y), float64(c.Z)

	closest := mgl64.Vec3{
		clamp(center.X(), cx-0.5, cx+0.5),
		clamp(center.Y(), cy-0.5, cy+0.5),
		clamp(center.Z(), cz-0.5, cz+0.5),
	}
	d := closest.Sub(center)
	dx, dy, dz := d.X(), d.Y(), d.Z()

	halfH := a.Height / 2
	horizSq := dx*dx + dz*dz
	if math.Abs(dy) >= halfH || horizSq >= a.Radius*a.Radius {
		return Collision{}, false
	}

	// Exact slab overlap; equals halfH-|dy| whenever the center is outside
	// the cube's Y range.
	overlapY := halfH + 0.5 - math.Abs(center.Y()-cy)
	normalY := mgl64.Vec3{0, sign(center.Y() - cy), 0}

	horiz := math.Sqrt(horizSq)
	if horiz == 0 || overlapY < a.Radius-horiz {
		return Collision{Cell: c, Contact: closest, Normal: normalY, Overlap: overlapY}, true
	}

	overlapXZ := a.Radius - horiz
	normal := mgl64.Vec3{-dx / horiz, 0, -dz / horiz}
	return Collision{Cell: c, Contact: closest, Normal: normal, Overlap: overlapXZ}, true
}
