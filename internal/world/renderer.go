package world

import (
	"fpsrig/internal/components"
	"fpsrig/internal/engine"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Renderer draws the scene in two passes: the world through the main
// camera, then overlay meshes (the held weapon) through the weapon camera.
type Renderer struct {
	Background rl.Color

	// Stats from the last world pass.
	Drawn  int
	Culled int
}

func NewRenderer() *Renderer {
	return &Renderer{Background: rl.SkyBlue}
}

// Draw renders the scene. main may be nil, in which case only the
// background is cleared. weapon may be nil or disabled.
func (r *Renderer) Draw(gameObjects []*engine.GameObject, main, weapon *components.Camera) {
	rl.ClearBackground(r.Background)
	if main == nil {
		return
	}
	r.drawWorld(gameObjects, main)
	if weapon != nil && weapon.Enabled {
		r.drawOverlay(gameObjects, weapon)
	}
}

func (r *Renderer) drawWorld(gameObjects []*engine.GameObject, main *components.Camera) {
	cam := main.GetRaylibCamera()
	aspect := float32(1)
	if main.Height > 0 {
		aspect = main.Width / main.Height
	}
	frustum := ExtractFrustum(cam, aspect, main.Near, main.Far)

	r.Drawn, r.Culled = 0, 0

	rl.BeginMode3D(cam)
	rl.DrawGrid(60, 1)
	for _, g := range gameObjects {
		m := engine.GetComponent[*components.MeshRenderer](g)
		if m == nil || m.Overlay || !g.Active {
			continue
		}
		if !frustum.ContainsSphere(g.WorldPosition(), m.BoundingRadius()) {
			r.Culled++
			continue
		}
		m.Draw()
		r.Drawn++
	}
	rl.EndMode3D()
}

// drawOverlay draws overlay meshes in the frame of their parent, viewed from
// that frame's origin looking down +X. Depth testing is off so the weapon
// never clips into walls.
func (r *Renderer) drawOverlay(gameObjects []*engine.GameObject, weapon *components.Camera) {
	cam := rl.Camera3D{
		Position:   rl.Vector3{},
		Target:     rl.Vector3{X: 1},
		Up:         rl.Vector3{Y: 1},
		Fovy:       weapon.FOV,
		Projection: rl.CameraPerspective,
	}

	rl.BeginMode3D(cam)
	rl.DrawRenderBatchActive()
	rl.DisableDepthTest()
	for _, g := range gameObjects {
		m := engine.GetComponent[*components.MeshRenderer](g)
		if m == nil || !m.Overlay || !g.Active {
			continue
		}
		m.DrawLocal()
	}
	rl.DrawRenderBatchActive()
	rl.EnableDepthTest()
	rl.EndMode3D()
}
