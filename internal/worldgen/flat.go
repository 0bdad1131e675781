package worldgen

import "voxelwalk/internal/voxel"

// Flat generates a superflat world: stone at y=0, dirt y=1..2, grass y=3.
type Flat struct{}

func NewFlat(_ int64) *Flat {
	return &Flat{}
}

func (f *Flat) Generate(g *voxel.Dense) {
	sx, sy, sz := g.Size()
	g.Clear()
	for x := 0; x < sx; x++ {
		for z := 0; z < sz; z++ {
			fillColumn(g, x, z, min(f.HeightAt(x, z), sy-1))
		}
	}
}

func (f *Flat) HeightAt(_, _ int) int {
	return 3 // grass
}
