package scripts

import (
	"testing"

	"fpsrig/internal/components"
	"fpsrig/internal/engine"
	"fpsrig/internal/input"
	"fpsrig/internal/world"

	rl "github.com/gen2brain/raylib-go/raylib"
)

const (
	tick        = float32(1.0 / 60.0)
	groundLayer = 1
	targetLayer = 3
)

// testRig is a player standing on a floor, looking down +X at eye height
// 1.6, with a gun and both cameras wired up.
type testRig struct {
	world   *world.World
	actions *input.ActionMap

	player    *engine.GameObject
	pivot     *engine.GameObject
	model     *engine.GameObject
	cc        *components.CharacterController
	pc        *PlayerController
	gun       *GunController
	mainCam   *components.Camera
	weaponCam *components.Camera
}

type rigOption func(r *testRig)

func newTestRig(t *testing.T, opts ...rigOption) *testRig {
	t.Helper()

	actions := input.NewActionMap()
	actions.Enable()
	w := world.New(actions)

	floor := engine.NewGameObject("Floor")
	floor.Layer = groundLayer
	floor.Transform.Position = rl.Vector3{Y: -0.5}
	floor.AddComponent(components.NewBoxCollider(rl.Vector3{X: 50, Y: 1, Z: 50}))

	player := engine.NewGameObject("Player")
	player.Transform.Position = rl.Vector3{Y: 0.9}
	cc := components.NewCharacterController()
	player.AddComponent(cc)
	pc := NewPlayerController()
	player.AddComponent(pc)
	gun := NewGunController()
	gun.TargetLayers = engine.LayerBit(targetLayer)
	player.AddComponent(gun)

	pivot := engine.NewGameObject("LookPivot")
	pivot.Transform.Position = rl.Vector3{Y: 0.7}
	mainCam := components.NewCamera()
	mainCam.IsMain = true
	pivot.AddComponent(mainCam)
	player.AddChild(pivot)

	weaponCamObj := engine.NewGameObject("WeaponCamera")
	weaponCam := components.NewCamera()
	weaponCamObj.AddComponent(weaponCam)
	pivot.AddChild(weaponCamObj)

	model := engine.NewGameObject("GunModel")
	model.Transform.Position = rl.Vector3{X: 0.5, Y: -0.2, Z: 0.3}
	pivot.AddChild(model)

	r := &testRig{
		world:     w,
		actions:   actions,
		player:    player,
		pivot:     pivot,
		model:     model,
		cc:        cc,
		pc:        pc,
		gun:       gun,
		mainCam:   mainCam,
		weaponCam: weaponCam,
	}
	for _, opt := range opts {
		opt(r)
	}

	w.AddObject(floor)
	w.AddObject(player)
	w.Start()

	// aim through the middle of the viewport
	r.push(input.ActionPoint, input.PhasePerformed, rl.Vector2{X: mainCam.Width / 2, Y: mainCam.Height / 2})
	return r
}

// addTarget places a hittable box on the target layer at distance along +X,
// level with the eye.
func (r *testRig) addTarget(name string, distance float32) (*engine.GameObject, *Target) {
	obj := engine.NewGameObject(name)
	obj.Layer = targetLayer
	obj.Transform.Position = rl.Vector3{X: distance, Y: 1.6}
	obj.AddComponent(components.NewBoxCollider(rl.Vector3{X: 1, Y: 1, Z: 1}))
	obj.AddComponent(components.NewMeshRenderer(components.MeshCube, rl.Red, rl.Vector3{X: 1, Y: 1, Z: 1}))
	target := &Target{FlashTime: 0.1}
	obj.AddComponent(target)
	r.world.AddObject(obj)
	return obj, target
}

func (r *testRig) push(action input.Action, phase input.Phase, value rl.Vector2) {
	r.actions.Push(input.Event{Action: action, Phase: phase, Value: value})
}

func (r *testRig) press(action input.Action) {
	r.push(action, input.PhaseStarted, rl.Vector2{})
	r.push(action, input.PhasePerformed, rl.Vector2{})
}

func (r *testRig) release(action input.Action) {
	r.push(action, input.PhaseCanceled, rl.Vector2{})
}

// step drains queued input and runs one tick.
func (r *testRig) step() {
	r.actions.Flush()
	r.world.Update(tick)
}

func (r *testRig) steps(n int) {
	for i := 0; i < n; i++ {
		r.step()
	}
}

// settle lets the player land and stick to the floor.
func (r *testRig) settle() {
	r.steps(5)
}
