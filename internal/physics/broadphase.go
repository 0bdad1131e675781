package physics

import "voxelwalk/internal/voxel"

// BroadPhase returns every occupied cell inside the actor's bounding box.
// The result is a superset of the cells the actor truly overlaps.
func BroadPhase(a *Actor, g voxel.Grid) []voxel.Cell {
	return appendCandidates(nil, a, g)
}

func appendCandidates(dst []voxel.Cell, a *Actor, g voxel.Grid) []voxel.Cell {
	lo, hi := a.Bounds().CellRange()
	for x := lo.X; x <= hi.X; x++ {
		for y := lo.Y; y <= hi.Y; y++ {
			for z := lo.Z; z <= hi.Z; z++ {
				if _, ok := g.Occupant(x, y, z); ok {
					dst = append(dst, voxel.Cell{X: x, Y: y, Z: z})
				}
			}
		}
	}
	return dst
}
