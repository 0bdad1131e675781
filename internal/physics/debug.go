package physics

import (
	"slices"

	"voxelwalk/internal/voxel"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/samber/lo"
)

// DebugPass is a read-only snapshot of one detection pass, taken before
// resolution. It exists for visualization only.
type DebugPass struct {
	Step       uint64
	Candidates []voxel.Cell
	Collisions []Collision
	Contacts   []mgl64.Vec3
}

func snapshot(step uint64, candidates []voxel.Cell, cols []Collision) DebugPass {
	return DebugPass{
		Step:       step,
		Candidates: slices.Clone(candidates),
		Collisions: slices.Clone(cols),
		Contacts: lo.Map(cols, func(c Collision, _ int) mgl64.Vec3 {
			return c.Contact
		}),
	}
}
