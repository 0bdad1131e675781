package worldgen

import (
	"fmt"

	"voxelwalk/internal/voxel"
)

// Generator fills a grid deterministically from its seed.
type Generator interface {
	Generate(g *voxel.Dense)
	// HeightAt returns the y of the top solid block in a column.
	HeightAt(x, z int) int
}

// New returns the generator registered under name.
func New(name string, seed int64) (Generator, error) {
	switch name {
	case "flat":
		return NewFlat(seed), nil
	case "terrain", "":
		return NewTerrain(seed), nil
	default:
		return nil, fmt.Errorf("unknown generator %q", name)
	}
}
