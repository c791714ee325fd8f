package game

import (
	"fmt"

	"fpsrig/internal/components"
	"fpsrig/internal/scripts"
	"fpsrig/internal/world"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"
)

const hitMarkerTime = 0.15

// HUD draws the crosshair, magazine count, reload bar and target marker.
type HUD struct {
	Gun       *scripts.GunController
	ShowStats bool

	hitMarker float32
}

// NewHUD subscribes to gun events. gun may be nil.
func NewHUD(gun *scripts.GunController) *HUD {
	h := &HUD{Gun: gun}
	if gun != nil {
		gun.OnFired.AddListener(func(s scripts.Shot) {
			if s.Target != nil {
				h.hitMarker = hitMarkerTime
			}
		})
	}
	return h
}

// Load applies the HUD's raygui style. Needs a window.
func (h *HUD) Load() {
	gui.SetStyle(gui.DEFAULT, gui.TEXT_SIZE, 20)
	gui.SetStyle(gui.DEFAULT, gui.TEXT_COLOR_NORMAL, gui.NewColorPropertyValue(rl.RayWhite))
	gui.SetStyle(gui.DEFAULT, gui.BASE_COLOR_NORMAL, gui.NewColorPropertyValue(rl.NewColor(30, 30, 40, 200)))
	gui.SetStyle(gui.DEFAULT, gui.BASE_COLOR_PRESSED, gui.NewColorPropertyValue(rl.Orange))
	gui.SetStyle(gui.DEFAULT, gui.BORDER_COLOR_NORMAL, gui.NewColorPropertyValue(rl.NewColor(50, 50, 65, 255)))
}

func (h *HUD) Update(deltaTime float32) {
	if h.hitMarker > 0 {
		h.hitMarker -= deltaTime
	}
	if rl.IsWindowReady() && rl.IsKeyPressed(rl.KeyF1) {
		h.ShowStats = !h.ShowStats
	}
}

// HitMarkerVisible reports whether the last shot's hit marker is showing.
func (h *HUD) HitMarkerVisible() bool {
	return h.hitMarker > 0
}

// MagazineText is the ammo counter label.
func (h *HUD) MagazineText() string {
	if h.Gun == nil {
		return ""
	}
	return fmt.Sprintf("%d / %d", h.Gun.Magazine(), h.Gun.MaxMagazine)
}

func (h *HUD) Draw(main *components.Camera, r *world.Renderer) {
	w := float32(rl.GetScreenWidth())
	ht := float32(rl.GetScreenHeight())
	cx, cy := w/2, ht/2

	h.drawCrosshair(cx, cy)

	if h.Gun != nil {
		gui.Label(rl.Rectangle{X: w - 160, Y: ht - 50, Width: 140, Height: 30}, h.MagazineText())

		if h.Gun.IsReloading() {
			bar := rl.Rectangle{X: cx - 100, Y: cy + 60, Width: 200, Height: 16}
			gui.ProgressBar(bar, "", "", h.Gun.ReloadProgress(), 0, 1)
			gui.Label(rl.Rectangle{X: cx - 100, Y: cy + 80, Width: 200, Height: 24}, "Reloading")
		}

		if target := h.Gun.Target(); target != nil && main != nil {
			h.drawTargetMarker(target.WorldPosition(), main)
			gui.StatusBar(rl.Rectangle{X: 20, Y: ht - 50, Width: 240, Height: 30}, "Target: "+target.Name)
		}
	}

	if h.ShowStats {
		rl.DrawFPS(10, 10)
		if r != nil {
			rl.DrawText(fmt.Sprintf("drawn %d  culled %d", r.Drawn, r.Culled), 10, 34, 20, rl.RayWhite)
		}
	}
}

func (h *HUD) drawCrosshair(cx, cy float32) {
	color := rl.RayWhite
	if h.Gun != nil && h.Gun.IsAiming() {
		rl.DrawCircleV(rl.Vector2{X: cx, Y: cy}, 2, rl.Red)
		return
	}
	if h.HitMarkerVisible() {
		color = rl.Red
		d := float32(10)
		rl.DrawLineEx(rl.Vector2{X: cx - d, Y: cy - d}, rl.Vector2{X: cx - d/2, Y: cy - d/2}, 2, color)
		rl.DrawLineEx(rl.Vector2{X: cx + d, Y: cy - d}, rl.Vector2{X: cx + d/2, Y: cy - d/2}, 2, color)
		rl.DrawLineEx(rl.Vector2{X: cx - d, Y: cy + d}, rl.Vector2{X: cx - d/2, Y: cy + d/2}, 2, color)
		rl.DrawLineEx(rl.Vector2{X: cx + d, Y: cy + d}, rl.Vector2{X: cx + d/2, Y: cy + d/2}, 2, color)
	}
	rl.DrawLineEx(rl.Vector2{X: cx - 8, Y: cy}, rl.Vector2{X: cx + 8, Y: cy}, 2, color)
	rl.DrawLineEx(rl.Vector2{X: cx, Y: cy - 8}, rl.Vector2{X: cx, Y: cy + 8}, 2, color)
}

func (h *HUD) drawTargetMarker(pos rl.Vector3, main *components.Camera) {
	p := rl.GetWorldToScreen(pos, main.GetRaylibCamera())
	rl.DrawRectangleLinesEx(rl.Rectangle{X: p.X - 20, Y: p.Y - 20, Width: 40, Height: 40}, 2, rl.Orange)
}
