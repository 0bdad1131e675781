package voxel

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

type RaycastHit struct {
	Cell Cell
	// Normal is the face that was entered, e.g. {Y: 1} for a top face.
	// Zero when the ray starts inside an occupied cell.
	Normal   Cell
	Block    BlockID
	Distance float64
}

// Raycast walks the grid cell by cell along the ray and returns the first
// occupied cell within maxDistance.
func Raycast(g Grid, origin, direction mgl64.Vec3, maxDistance float64) (RaycastHit, bool) {
	length := direction.Len()
	if length == 0 || maxDistance <= 0 {
		return RaycastHit{}, false
	}
	dir := direction.Mul(1 / length)

	// Shift into corner space so cell boundaries sit on integers.
	p := origin.Add(mgl64.Vec3{0.5, 0.5, 0.5})
	cell := [3]int{
		int(math.Floor(p[0])),
		int(math.Floor(p[1])),
		int(math.Floor(p[2])),
	}

	var step [3]int
	var tMax, tDelta [3]float64
	for i := range 3 {
		switch {
		case dir[i] > 0:
			step[i] = 1
			tMax[i] = (float64(cell[i]+1) - p[i]) / dir[i]
			tDelta[i] = 1 / dir[i]
		case dir[i] < 0:
			step[i] = -1
			tMax[i] = (p[i] - float64(cell[i])) / -dir[i]
			tDelta[i] = -1 / dir[i]
		default:
			tMax[i] = math.Inf(1)
			tDelta[i] = math.Inf(1)
		}
	}

	var normal [3]int
	t := 0.0
	for t <= maxDistance {
		if id, ok := g.Occupant(cell[0], cell[1], cell[2]); ok {
			return RaycastHit{
				Cell:     Cell{X: cell[0], Y: cell[1], Z: cell[2]},
				Normal:   Cell{X: normal[0], Y: normal[1], Z: normal[2]},
				Block:    id,
				Distance: t,
			}, true
		}

		axis := 0
		if tMax[1] < tMax[axis] {
			axis = 1
		}
		if tMax[2] < tMax[axis] {
			axis = 2
		}

		t = tMax[axis]
		cell[axis] += step[axis]
		tMax[axis] += tDelta[axis]
		normal = [3]int{}
		normal[axis] = -step[axis]
	}
	return RaycastHit{}, false
}
