package world

import (
	"fpsrig/internal/components"
	"fpsrig/internal/engine"
	"fpsrig/internal/input"
	"fpsrig/internal/physics"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// World owns the scene and answers spatial queries for it.
type World struct {
	Scene *engine.Scene

	collidables    []*engine.GameObject
	pendingDestroy []*engine.GameObject
}

// New creates an empty world. actions may be nil for headless use.
func New(actions *input.ActionMap) *World {
	w := &World{
		Scene: engine.NewScene("Main"),
	}
	w.Scene.World = w
	w.Scene.Input = actions
	return w
}

// AddObject adds g and its children to the scene.
func (w *World) AddObject(g *engine.GameObject) {
	w.Scene.AddGameObject(g)
	w.track(g)
}

func (w *World) track(g *engine.GameObject) {
	if isCollidable(g) {
		w.collidables = append(w.collidables, g)
	}
	for _, child := range g.Children {
		w.track(child)
	}
}

func isCollidable(g *engine.GameObject) bool {
	return engine.GetComponent[*components.BoxCollider](g) != nil ||
		engine.GetComponent[*components.SphereCollider](g) != nil
}

// SpawnObject implements engine.WorldAccess
func (w *World) SpawnObject(g *engine.GameObject) {
	w.AddObject(g)
}

// Destroy implements engine.WorldAccess. Removal happens after the current
// update so iteration is not disturbed.
func (w *World) Destroy(g *engine.GameObject) {
	w.pendingDestroy = append(w.pendingDestroy, g)
}

func (w *World) Start() {
	w.Scene.Start()
}

func (w *World) Update(deltaTime float32) {
	w.Scene.Update(deltaTime)
	w.flushDestroyed()
}

func (w *World) Stop() {
	w.Scene.Stop()
}

func (w *World) flushDestroyed() {
	if len(w.pendingDestroy) == 0 {
		return
	}
	for _, g := range w.pendingDestroy {
		if g.Parent != nil {
			g.Parent.RemoveChild(g)
		}
		w.Scene.RemoveGameObject(g)
		w.untrack(g)
	}
	w.pendingDestroy = w.pendingDestroy[:0]
}

func (w *World) untrack(g *engine.GameObject) {
	for _, child := range g.Children {
		w.untrack(child)
	}
	for i, obj := range w.collidables {
		if obj == g {
			w.collidables = append(w.collidables[:i], w.collidables[i+1:]...)
			return
		}
	}
}

// GetCollidableObjects returns all GameObjects that have a collider
func (w *World) GetCollidableObjects() []*engine.GameObject {
	return w.collidables
}

// Raycast returns the closest collider hit within maxDistance whose layer is
// in mask. Inactive objects are ignored.
func (w *World) Raycast(origin, direction rl.Vector3, maxDistance float32, mask engine.LayerMask) (engine.RaycastResult, bool) {
	direction = rl.Vector3Normalize(direction)
	closest := engine.RaycastResult{Distance: maxDistance}
	hit := false

	for _, obj := range w.collidables {
		if !obj.Active || !mask.Contains(obj.Layer) {
			continue
		}
		if box := engine.GetComponent[*components.BoxCollider](obj); box != nil {
			if h, ok := physics.RayAABB(origin, direction, box.GetAABB(), maxDistance); ok && h.Distance <= closest.Distance {
				closest = engine.RaycastResult{GameObject: obj, Point: h.Point, Normal: h.Normal, Distance: h.Distance}
				hit = true
			}
		}
		if sphere := engine.GetComponent[*components.SphereCollider](obj); sphere != nil {
			if h, ok := physics.RaySphere(origin, direction, sphere.GetCenter(), sphere.WorldRadius(), maxDistance); ok && h.Distance <= closest.Distance {
				closest = engine.RaycastResult{GameObject: obj, Point: h.Point, Normal: h.Normal, Distance: h.Distance}
				hit = true
			}
		}
	}

	return closest, hit
}
