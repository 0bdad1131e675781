package ui

import (
	"fmt"

	"voxelwalk/internal/physics"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"
)

var (
	colorBgDark        = rl.NewColor(18, 18, 24, 235)
	colorBgElement     = rl.NewColor(32, 32, 42, 255)
	colorBgHover       = rl.NewColor(45, 45, 60, 255)
	colorAccent        = rl.NewColor(108, 99, 255, 255)
	colorTextPrimary   = rl.NewColor(240, 240, 245, 255)
	colorTextSecondary = rl.NewColor(160, 160, 175, 255)
	colorError         = rl.NewColor(240, 90, 90, 255)
)

const (
	panelWidth  = 300
	rowHeight   = 26
	labelWidth  = 90
	valueWidth  = 50
	panelMargin = 10
)

// Result is what the panel asks the game to do this frame.
type Result struct {
	Config     physics.Config
	Changed    bool
	Debug      bool
	Regenerate bool
}

// Panel edits physics parameters at runtime. Slider values are a draft;
// only drafts that validate are handed back as changes.
type Panel struct {
	Visible bool

	applied physics.Config
	draft   physics.Config
	debug   bool
	err     error
}

func NewPanel(cfg physics.Config, debug bool) *Panel {
	return &Panel{applied: cfg, draft: cfg, debug: debug}
}

// InitStyle applies the dark theme. Call after the window is open.
func InitStyle() {
	gui.SetStyle(gui.DEFAULT, gui.BACKGROUND_COLOR, gui.NewColorPropertyValue(colorBgDark))
	gui.SetStyle(gui.DEFAULT, gui.BASE_COLOR_NORMAL, gui.NewColorPropertyValue(colorBgElement))
	gui.SetStyle(gui.DEFAULT, gui.BASE_COLOR_FOCUSED, gui.NewColorPropertyValue(colorBgHover))
	gui.SetStyle(gui.DEFAULT, gui.BASE_COLOR_PRESSED, gui.NewColorPropertyValue(colorAccent))
	gui.SetStyle(gui.DEFAULT, gui.TEXT_COLOR_NORMAL, gui.NewColorPropertyValue(colorTextSecondary))
	gui.SetStyle(gui.DEFAULT, gui.TEXT_COLOR_FOCUSED, gui.NewColorPropertyValue(colorTextPrimary))
	gui.SetStyle(gui.DEFAULT, gui.TEXT_COLOR_PRESSED, gui.NewColorPropertyValue(colorTextPrimary))
	gui.SetStyle(gui.DEFAULT, gui.BORDER_COLOR_FOCUSED, gui.NewColorPropertyValue(colorAccent))
	gui.SetStyle(gui.DEFAULT, gui.TEXT_SIZE, 15)
}

// Applied returns the config last accepted by the panel.
func (p *Panel) Applied() physics.Config { return p.applied }

// Debug reports whether the collision overlay is on.
func (p *Panel) Debug() bool { return p.debug }

// ToggleDebug flips the overlay from outside the panel, e.g. a hotkey.
// Draw reports the flag every frame, visible or not.
func (p *Panel) ToggleDebug() { p.debug = !p.debug }

// Err is the validation error of the current draft, if any.
func (p *Panel) Err() error { return p.err }

// propose validates a draft against the applied config. It reports whether
// the draft differs and is valid; invalid drafts leave applied untouched.
func (p *Panel) propose(draft physics.Config) bool {
	p.draft = draft
	if draft == p.applied {
		p.err = nil
		return false
	}
	if err := draft.Validate(); err != nil {
		p.err = err
		return false
	}
	p.err = nil
	p.applied = draft
	return true
}

// Draw renders the panel at the screen's right edge and returns the
// requested changes.
func (p *Panel) Draw() Result {
	res := Result{Config: p.applied, Debug: p.debug}
	if !p.Visible {
		return res
	}

	x := float32(rl.GetScreenWidth() - panelWidth - panelMargin)
	y := float32(panelMargin)
	height := float32(rowHeight*9 + panelMargin*3)
	gui.Panel(rl.Rectangle{X: x, Y: y, Width: panelWidth, Height: height}, "Physics")

	row := y + 30
	d := p.draft
	d.Gravity = p.slider(x, &row, "Gravity", d.Gravity, 0, 60)
	d.MaxSpeed = p.slider(x, &row, "Max speed", d.MaxSpeed, 0, 30)
	d.JumpSpeed = p.slider(x, &row, "Jump speed", d.JumpSpeed, 0, 25)
	d.Radius = p.slider(x, &row, "Radius", d.Radius, 0.05, 0.95)
	d.Height = p.slider(x, &row, "Height", d.Height, 0.2, 3.5)
	d.SimulationRate = p.slider(x, &row, "Rate (Hz)", d.SimulationRate, 10, 240)

	res.Changed = p.propose(d)
	res.Config = p.applied

	p.debug = gui.CheckBox(rl.Rectangle{X: x + panelMargin, Y: row, Width: 16, Height: 16}, "Debug overlay", p.debug)
	res.Debug = p.debug
	row += rowHeight

	res.Regenerate = gui.Button(rl.Rectangle{X: x + panelMargin, Y: row, Width: panelWidth - 2*panelMargin, Height: 22}, "Regenerate world")
	row += rowHeight + 4

	if p.err != nil {
		rl.DrawText(p.err.Error(), int32(x)+panelMargin, int32(row), 12, colorError)
	}
	return res
}

func (p *Panel) slider(x float32, row *float32, label string, v, lo, hi float64) float64 {
	rl.DrawText(label, int32(x)+panelMargin, int32(*row)+4, 14, colorTextSecondary)
	bounds := rl.Rectangle{
		X:      x + panelMargin + labelWidth,
		Y:      *row,
		Width:  panelWidth - 2*panelMargin - labelWidth - valueWidth,
		Height: 18,
	}
	out := gui.Slider(bounds, "", fmt.Sprintf("%.2f", v), float32(v), float32(lo), float32(hi))
	*row += rowHeight
	if out == float32(v) {
		return v
	}
	return float64(out)
}
