package game

import (
	"fmt"
	"time"

	"voxelwalk/internal/camera"
	"voxelwalk/internal/config"
	"voxelwalk/internal/physics"
	"voxelwalk/internal/render"
	"voxelwalk/internal/ui"
	"voxelwalk/internal/voxel"
	"voxelwalk/internal/worldgen"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/sirupsen/logrus"
)

// reach is how far away blocks can be edited.
const reach = 6.0

type Game struct {
	cfg *config.Config
	log logrus.FieldLogger

	registry *voxel.Registry
	world    *voxel.Shared
	gen      worldgen.Generator
	seed     int64

	actor      *physics.Actor
	integrator *physics.Integrator

	camera   *camera.FPSCamera
	renderer *render.Renderer
	panel    *ui.Panel

	target    voxel.RaycastHit
	hasTarget bool
	placeID   voxel.BlockID
	dirty     bool

	// Debug timing (ms)
	updateMs float64
	drawMs   float64
}

// New wires a game around an already generated or loaded grid.
func New(cfg *config.Config, grid *voxel.Dense, log logrus.FieldLogger) (*Game, error) {
	gen, err := worldgen.New(cfg.World.Generator, cfg.World.Seed)
	if err != nil {
		return nil, err
	}
	it, err := physics.NewIntegrator(cfg.Physics, log)
	if err != nil {
		return nil, err
	}
	it.Debug = cfg.Debug

	spawn, ok := worldgen.SpawnPoint(grid, cfg.Physics.Height)
	if !ok {
		log.Warn("World has no solid ground, spawning in the air")
	}

	registry := voxel.DefaultRegistry()
	placeID, ok := registry.Lookup("planks")
	if !ok {
		placeID = voxel.Stone
	}
	g := &Game{
		cfg:        cfg,
		log:        log,
		registry:   registry,
		world:      voxel.NewShared(grid),
		gen:        gen,
		seed:       cfg.World.Seed,
		actor:      physics.NewActor(cfg.Physics, spawn),
		integrator: it,
		camera:     camera.New(),
		renderer:   render.NewRenderer(registry),
		panel:      ui.NewPanel(cfg.Physics, cfg.Debug),
		placeID:    placeID,
		dirty:      true,
	}
	return g, nil
}

func (g *Game) Run() {
	rl.SetConfigFlags(rl.FlagWindowHighdpi | rl.FlagMsaa4xHint)
	rl.InitWindow(int32(g.cfg.Window.Width), int32(g.cfg.Window.Height), "voxelwalk")
	defer rl.CloseWindow()

	rl.SetTargetFPS(int32(g.cfg.Window.FPS))
	rl.DisableCursor()
	ui.InitStyle()

	for !rl.WindowShouldClose() {
		g.Update()
		g.Draw()
	}
}

func (g *Game) Update() {
	updateStart := time.Now()
	dt := float64(rl.GetFrameTime())

	if rl.IsKeyPressed(rl.KeyTab) {
		g.panel.Visible = !g.panel.Visible
		if g.panel.Visible {
			rl.EnableCursor()
		} else {
			rl.DisableCursor()
		}
	}
	if rl.IsKeyPressed(rl.KeyF1) {
		g.panel.ToggleDebug()
		g.integrator.Debug = g.panel.Debug()
	}

	in := camera.ReadInput()
	if g.panel.Visible {
		g.actor.Intent = physics.Intent{}
	} else {
		g.camera.Look(in)
		g.actor.Intent = g.camera.Intent(in)
	}

	groundless := false
	g.world.View(func(d *voxel.Dense) {
		g.integrator.Advance(dt, g.actor, d)
		g.target, g.hasTarget = voxel.Raycast(d, g.actor.Position, g.camera.LookDirection(), reach)
		if g.actor.Feet() < -20 {
			g.log.WithField("position", g.actor.Position).Info("Fell out of the world, respawning")
			groundless = !g.respawn(d)
		}
	})
	if groundless {
		g.log.Warn("No solid ground left to respawn on")
		g.regenerate()
	}

	if !g.panel.Visible && g.hasTarget {
		switch {
		case rl.IsMouseButtonPressed(rl.MouseLeftButton):
			g.world.Update(func(d *voxel.Dense) {
				g.dirty = removeBlock(d, g.target) || g.dirty
			})
		case rl.IsMouseButtonPressed(rl.MouseRightButton):
			g.world.Update(func(d *voxel.Dense) {
				g.dirty = placeBlock(d, g.target, g.placeID, g.actor) || g.dirty
			})
		}
	}
	g.selectBlock()

	if rl.IsKeyPressed(rl.KeyF5) {
		g.save()
	}

	if g.dirty {
		g.world.View(g.renderer.Rebuild)
		g.dirty = false
	}

	g.updateMs = float64(time.Since(updateStart).Microseconds()) / 1000.0
}

// selectBlock cycles the placed block with the number keys.
func (g *Game) selectBlock() {
	for i := int32(0); i < 9; i++ {
		if !rl.IsKeyPressed(rl.KeyOne + i) {
			continue
		}
		if id := voxel.BlockID(i + 1); int(id) < g.registry.Len() {
			g.placeID = id
		}
	}
}

// respawn reports whether the actor was placed on solid ground.
func (g *Game) respawn(d *voxel.Dense) bool {
	pos, ok := worldgen.SpawnPoint(d, g.actor.Height)
	g.actor.Position = pos
	g.actor.Velocity = mgl64.Vec3{}
	g.actor.Grounded = false
	return ok
}

func (g *Game) regenerate() {
	g.seed++
	gen, err := worldgen.New(g.cfg.World.Generator, g.seed)
	if err != nil {
		g.log.WithError(err).Error("Regenerate failed")
		return
	}
	g.gen = gen

	var sx, sy, sz int
	g.world.View(func(d *voxel.Dense) { sx, sy, sz = d.Size() })
	next := voxel.NewDense(sx, sy, sz)
	g.gen.Generate(next)
	g.world.Swap(next)

	g.world.View(func(d *voxel.Dense) { g.respawn(d) })
	g.dirty = true
	g.log.WithField("seed", g.seed).Info("World regenerated")
}

func (g *Game) applyPanel(res ui.Result) {
	g.integrator.Debug = res.Debug
	if res.Changed {
		if err := g.integrator.SetConfig(res.Config); err != nil {
			g.log.WithError(err).Warn("Rejected physics config")
		} else {
			g.actor.Reshape(res.Config)
		}
	}
	if res.Regenerate {
		g.regenerate()
	}
}

func (g *Game) Draw() {
	eye := renderEye(g.actor, g.integrator)
	cam := g.camera.Raylib(eye)

	rl.BeginDrawing()
	rl.ClearBackground(rl.NewColor(135, 190, 235, 255))

	drawStart := time.Now()
	rl.BeginMode3D(cam)
	g.renderer.DrawWorld(cam)
	if g.hasTarget {
		render.DrawHighlight(g.target.Cell)
	}
	if g.integrator.Debug {
		render.DrawActor(g.actor, rl.Lime)
		if pass, ok := g.integrator.LastPass(); ok {
			render.DrawDebugPass(pass)
		}
	}
	rl.EndMode3D()
	g.drawMs = float64(time.Since(drawStart).Microseconds()) / 1000.0

	g.DrawUI()
	rl.EndDrawing()
}

func (g *Game) DrawUI() {
	cx, cy := int32(rl.GetScreenWidth()/2), int32(rl.GetScreenHeight()/2)
	rl.DrawLine(cx-8, cy, cx+8, cy, rl.White)
	rl.DrawLine(cx, cy-8, cx, cy+8, rl.White)

	rl.DrawText("WASD to move, Space to jump, Mouse to look", 10, 10, 20, rl.DarkGray)
	rl.DrawText("LMB remove, RMB place, 1-9 block, Tab panel, F1 debug, F5 save", 10, 35, 20, rl.DarkGray)
	rl.DrawFPS(10, 60)

	rl.DrawText(hotbarLabel(g.registry, g.placeID), 10, 85, 18, rl.Black)

	if g.integrator.Debug {
		a := g.actor
		rl.DrawText(fmt.Sprintf("Pos: (%.2f, %.2f, %.2f)", a.Position.X(), a.Position.Y(), a.Position.Z()), 10, 110, 16, rl.Yellow)
		rl.DrawText(fmt.Sprintf("Vel: (%.2f, %.2f, %.2f)", a.Velocity.X(), a.Velocity.Y(), a.Velocity.Z()), 10, 130, 16, rl.Yellow)
		rl.DrawText(fmt.Sprintf("Grounded: %v  Steps: %d  Dropped: %d", a.Grounded, g.integrator.StepCount(), g.integrator.DroppedSteps()), 10, 150, 16, rl.Yellow)
		if pass, ok := g.integrator.LastPass(); ok {
			rl.DrawText(fmt.Sprintf("Candidates: %d  Contacts: %d", len(pass.Candidates), len(pass.Contacts)), 10, 170, 16, rl.Yellow)
		}
		rl.DrawText(fmt.Sprintf("Cells: %d/%d", g.renderer.Visible(), g.renderer.Cached()), 10, 190, 16, rl.Green)
		rl.DrawText(fmt.Sprintf("Update: %.2f ms  Draw: %.2f ms", g.updateMs, g.drawMs), 10, 210, 16, rl.Green)
	}

	g.applyPanel(g.panel.Draw())
}
