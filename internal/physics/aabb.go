package physics

import (
	"math"

	"voxelwalk/internal/voxel"

	"github.com/go-gl/mathgl/mgl64"
)

type AABB struct {
	Min mgl64.Vec3
	Max mgl64.Vec3
}

// NewAABBFromCenter creates an AABB from a center point and full size dimensions.
func NewAABBFromCenter(center, size mgl64.Vec3) AABB {
	half := size.Mul(0.5)
	return AABB{
		Min: center.Sub(half),
		Max: center.Add(half),
	}
}

// CellBounds returns the unit cube occupied by a cell.
func CellBounds(c voxel.Cell) AABB {
	return NewAABBFromCenter(
		mgl64.Vec3{float64(c.X), float64(c.Y), float64(c.Z)},
		mgl64.Vec3{1, 1, 1},
	)
}

// CellRange floors the minimum and ceils the maximum, giving the inclusive
// range of cell coordinates the box may touch.
func (a AABB) CellRange() (lo, hi voxel.Cell) {
	lo = voxel.Cell{
		X: int(math.Floor(a.Min.X())),
		Y: int(math.Floor(a.Min.Y())),
		Z: int(math.Floor(a.Min.Z())),
	}
	hi = voxel.Cell{
		X: int(math.Ceil(a.Max.X())),
		Y: int(math.Ceil(a.Max.Y())),
		Z: int(math.Ceil(a.Max.Z())),
	}
	return lo, hi
}

// Overlaps reports strict interpenetration; touching faces do not count.
func (a AABB) Overlaps(b AABB) bool {
	return a.Min.X() < b.Max.X() && a.Max.X() > b.Min.X() &&
		a.Min.Y() < b.Max.Y() && a.Max.Y() > b.Min.Y() &&
		a.Min.Z() < b.Max.Z() && a.Max.Z() > b.Min.Z()
}
