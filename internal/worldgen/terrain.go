package worldgen

import (
	"math"

	"voxelwalk/internal/voxel"

	"github.com/aquilax/go-perlin"
)

const (
	terrainAlpha  = 2.0
	terrainBeta   = 2.0
	terrainOctave = 3

	terrainScale     = 0.045
	terrainBase      = 6.0
	terrainAmplitude = 5.0

	surfaceDepth = 3 // grass plus dirt above stone
)

// Terrain generates rolling hills from a Perlin heightmap.
type Terrain struct {
	noise *perlin.Perlin
}

func NewTerrain(seed int64) *Terrain {
	return &Terrain{noise: perlin.NewPerlin(terrainAlpha, terrainBeta, terrainOctave, seed)}
}

func (t *Terrain) Generate(g *voxel.Dense) {
	sx, sy, sz := g.Size()
	g.Clear()
	for x := 0; x < sx; x++ {
		for z := 0; z < sz; z++ {
			fillColumn(g, x, z, min(t.HeightAt(x, z), sy-1))
		}
	}
}

// HeightAt never returns less than 1 so every column has a floor.
func (t *Terrain) HeightAt(x, z int) int {
	n := t.noise.Noise2D(float64(x)*terrainScale, float64(z)*terrainScale)
	h := int(math.Round(terrainBase + n*terrainAmplitude*2))
	return max(h, 1)
}

// fillColumn places stone up to the surface layers, then dirt and a grass cap.
func fillColumn(g *voxel.Dense, x, z, height int) {
	stoneTop := height - surfaceDepth
	for y := 0; y <= height; y++ {
		switch {
		case y == height:
			g.Set(x, y, z, voxel.Grass)
		case y > stoneTop:
			g.Set(x, y, z, voxel.Dirt)
		default:
			g.Set(x, y, z, voxel.Stone)
		}
	}
}
