package physics

import (
	"math"
	"testing"

	"voxelwalk/internal/voxel"

	"github.com/go-gl/mathgl/mgl64"
)

const eps = 1e-9

func approxEqual(t *testing.T, name string, got, want, tol float64) {
	t.Helper()
	if math.Abs(got-want) > tol {
		t.Errorf("%s: expected %v, got %v", name, want, got)
	}
}

func gridWith(cells ...voxel.Cell) *voxel.Dense {
	g := voxel.NewDense(8, 8, 8)
	for _, c := range cells {
		g.Set(c.X, c.Y, c.Z, voxel.Stone)
	}
	return g
}

func floorGrid() *voxel.Dense {
	g := voxel.NewDense(8, 8, 8)
	for z := range 8 {
		for x := range 8 {
			g.Set(x, 0, z, voxel.Stone)
		}
	}
	return g
}

func testActor(x, y, z float64) *Actor {
	return NewActor(DefaultConfig(), mgl64.Vec3{x, y, z})
}
