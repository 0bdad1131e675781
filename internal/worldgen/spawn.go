package worldgen

import (
	"voxelwalk/internal/voxel"

	"github.com/go-gl/mathgl/mgl64"
)

// Build allocates a grid and fills it with the named generator.
func Build(name string, seed int64, sizeX, sizeY, sizeZ int) (*voxel.Dense, error) {
	gen, err := New(name, seed)
	if err != nil {
		return nil, err
	}
	d := voxel.NewDense(sizeX, sizeY, sizeZ)
	gen.Generate(d)
	return d, nil
}

// SpawnPoint returns an eye position for an actor of the given height
// standing on the solid column nearest the grid center. ok is false when the
// grid has no solid column at all.
func SpawnPoint(d *voxel.Dense, height float64) (mgl64.Vec3, bool) {
	sx, sy, sz := d.Size()
	return SpawnAt(d, sx/2, sz/2, sy/2, height)
}

// SpawnAt stands the actor on the solid column nearest (x, z). With no solid
// column anywhere it returns a point at fallbackY above (x, z) and false.
func SpawnAt(d *voxel.Dense, x, z, fallbackY int, height float64) (mgl64.Vec3, bool) {
	cx, cz, top, ok := nearestColumn(d, x, z)
	if !ok {
		return standOn(x, fallbackY, z, height), false
	}
	return standOn(cx, top, cz, height), true
}

// standOn places the eye height above the top face of cell y, at y+0.5.
func standOn(x, y, z int, height float64) mgl64.Vec3 {
	return mgl64.Vec3{float64(x), float64(y) + 0.5 + height, float64(z)}
}

// nearestColumn scans square rings around (x, z), closest ring first, for a
// column with a solid block.
func nearestColumn(d *voxel.Dense, x, z int) (cx, cz, top int, ok bool) {
	sx, _, sz := d.Size()
	reach := max(sx, sz) + max(absInt(x), absInt(z))
	for r := 0; r <= reach; r++ {
		for dx := -r; dx <= r; dx++ {
			for dz := -r; dz <= r; dz++ {
				if max(absInt(dx), absInt(dz)) != r {
					continue
				}
				if h := d.HeightAt(x+dx, z+dz); h >= 0 {
					return x + dx, z + dz, h, true
				}
			}
		}
	}
	return 0, 0, 0, false
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
