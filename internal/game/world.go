package game

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"voxelwalk/internal/physics"
	"voxelwalk/internal/voxel"
	"voxelwalk/internal/worldfile"

	"github.com/go-gl/mathgl/mgl64"
)

func removeBlock(d *voxel.Dense, hit voxel.RaycastHit) bool {
	return d.Set(hit.Cell.X, hit.Cell.Y, hit.Cell.Z, voxel.Air)
}

// placeBlock fills the cell in front of the hit face. Placement is refused
// when the face is unknown, the cell is taken or out of range, or the block
// would overlap the actor.
func placeBlock(d *voxel.Dense, hit voxel.RaycastHit, id voxel.BlockID, a *physics.Actor) bool {
	if hit.Normal == (voxel.Cell{}) {
		return false
	}
	c := hit.Cell.Add(hit.Normal)
	if !d.InBounds(c.X, c.Y, c.Z) {
		return false
	}
	if _, taken := d.Occupant(c.X, c.Y, c.Z); taken {
		return false
	}
	if a.Bounds().Overlaps(physics.CellBounds(c)) {
		return false
	}
	return d.Set(c.X, c.Y, c.Z, id)
}

// hotbarLabel lists the blocks reachable with number keys 1-9, bracketing
// the selected one.
func hotbarLabel(r *voxel.Registry, selected voxel.BlockID) string {
	var b strings.Builder
	for _, name := range r.Names() {
		id, _ := r.Lookup(name)
		if id == voxel.Air || id > 9 {
			continue
		}
		if b.Len() > 0 {
			b.WriteString("  ")
		}
		if id == selected {
			fmt.Fprintf(&b, "[%d %s]", id, name)
		} else {
			fmt.Fprintf(&b, "%d %s", id, name)
		}
	}
	return b.String()
}

func renderEye(a *physics.Actor, it *physics.Integrator) mgl64.Vec3 {
	return a.Position.Add(a.Velocity.Mul(it.Alpha() * it.Timestep()))
}

func (g *Game) save() {
	if err := os.MkdirAll(g.cfg.World.MapDir, 0o755); err != nil {
		g.log.WithError(err).Error("Save failed")
		return
	}
	path := filepath.Join(g.cfg.World.MapDir, "saved.vxw")
	var err error
	g.world.View(func(d *voxel.Dense) {
		err = worldfile.SaveFile(path, d)
	})
	if err != nil {
		g.log.WithError(err).Error("Save failed")
		return
	}
	g.log.WithField("path", path).Info("World saved")
}
