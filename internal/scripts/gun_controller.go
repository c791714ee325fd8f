package scripts

import (
	"time"

	"fpsrig/internal/components"
	"fpsrig/internal/engine"
	"fpsrig/internal/input"
	"fpsrig/internal/metrics"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"
)

func init() {
	engine.RegisterScriptWithApplier("GunController", gunControllerFactory, gunControllerSerializer, gunControllerApplier)
}

// Shot describes one round leaving the gun.
type Shot struct {
	Target    *engine.GameObject // nil on a miss
	Remaining int
}

// GunController is a hitscan weapon with a magazine, an aim mode that
// narrows the main camera and hides the weapon camera, and a timed reload.
type GunController struct {
	engine.BaseComponent

	FireRange       float32
	MaxMagazine     int
	ReloadTime      float32
	NormalFOV       float32
	AimFOV          float32
	FireRate        float32 // shots per second, 0 for no limit
	TargetLayers    engine.LayerMask
	LoweredRotation rl.Vector3 // Euler degrees, local to the gun model

	GunModelName     string
	WeaponCameraName string

	MainCamera   *components.Camera
	WeaponCamera *components.Camera
	GunModel     *engine.GameObject
	Input        *input.Sampler

	OnFired    engine.EventWithArg[Shot]
	OnReloaded engine.EventWithArg[int]

	magazine     int
	aiming       bool
	target       Hittable
	targetObject *engine.GameObject
	reload       ReloadSequence
	modelRot     rl.Quaternion // stands in for the model when there is none
	limiter      *rate.Limiter
	clock        time.Time
}

func NewGunController() *GunController {
	g := &GunController{
		FireRange:        10,
		MaxMagazine:      10,
		ReloadTime:       1,
		NormalFOV:        60,
		AimFOV:           10,
		TargetLayers:     engine.AllLayers,
		LoweredRotation:  rl.Vector3{X: 40},
		GunModelName:     "GunModel",
		WeaponCameraName: "WeaponCamera",
		Input:            input.NewSampler(input.ActionPoint, input.ActionAim, input.ActionFire, input.ActionReload),
		modelRot:         rl.QuaternionIdentity(),
		clock:            time.Unix(0, 0),
	}
	g.magazine = g.MaxMagazine
	g.reload = NewReloadSequence(g.ReloadTime, g.LoweredRotation)
	g.limiter = rate.NewLimiter(fireLimit(0), 1)
	return g
}

func fireLimit(perSecond float32) rate.Limit {
	if perSecond <= 0 {
		return rate.Inf
	}
	return rate.Limit(perSecond)
}

func (gc *GunController) Start() {
	g := gc.GetGameObject()
	if g == nil {
		return
	}
	root := g
	for root.Parent != nil {
		root = root.Parent
	}

	if gc.MainCamera == nil {
		gc.MainCamera = findMainCamera(g.Scene, root)
	}
	if gc.WeaponCamera == nil && gc.WeaponCameraName != "" {
		if obj := findNamed(g.Scene, root, gc.WeaponCameraName); obj != nil {
			gc.WeaponCamera = engine.GetComponent[*components.Camera](obj)
		}
	}
	if gc.GunModel == nil && gc.GunModelName != "" {
		gc.GunModel = findNamed(g.Scene, root, gc.GunModelName)
	}

	gc.limiter = rate.NewLimiter(fireLimit(gc.FireRate), 1)
	if !gc.reload.Active() {
		gc.reload = NewReloadSequence(gc.ReloadTime, gc.LoweredRotation)
	}
	gc.SetAiming(false)
	metrics.SetMagazine(gc.magazine)
}

func (gc *GunController) OnEnable() {
	g := gc.GetGameObject()
	if g != nil && g.Scene != nil {
		gc.Input.Bind(g.Scene.Input)
	}
}

func (gc *GunController) OnDisable() {
	gc.Input.Unbind()
}

// Update runs one weapon tick: aim transition, target probe, reload, fire,
// then the reload sequence.
func (gc *GunController) Update(deltaTime float32) {
	gc.clock = gc.clock.Add(time.Duration(float64(deltaTime) * float64(time.Second)))

	switch gc.Input.ConsumeAim() {
	case input.AimStart:
		if !gc.reload.Active() {
			gc.SetAiming(true)
		}
	case input.AimCancel:
		gc.SetAiming(false)
	}

	gc.DetectTarget()

	if gc.Input.ConsumeReload() {
		gc.Reload()
	}
	if gc.Input.ConsumeFire() {
		gc.Fire()
	}

	gc.advanceReload(deltaTime)
}

// Fire spends one round and hits the current target, if any. It does
// nothing while reloading, when empty, or when the fire rate forbids it.
func (gc *GunController) Fire() bool {
	if gc.reload.Active() || gc.magazine <= 0 {
		return false
	}
	if !gc.limiter.AllowN(gc.clock, 1) {
		return false
	}

	gc.magazine--
	hit := gc.target != nil
	if hit {
		gc.target.OnHit()
	}

	metrics.ShotFired(hit)
	metrics.SetMagazine(gc.magazine)
	log.Debug().Bool("hit", hit).Int("magazine", gc.magazine).Msg("fired")
	gc.OnFired.Invoke(Shot{Target: gc.targetObject, Remaining: gc.magazine})
	return true
}

// Reload starts the reload sequence unless the magazine is full or a
// reload is already running. Aim is forced off first.
func (gc *GunController) Reload() bool {
	if gc.magazine >= gc.MaxMagazine || gc.reload.Active() {
		return false
	}
	if gc.aiming {
		gc.SetAiming(false)
	}
	gc.reload.Begin(gc.modelRotation())
	log.Debug().Int("magazine", gc.magazine).Msg("reload started")
	return true
}

func (gc *GunController) advanceReload(deltaTime float32) {
	if !gc.reload.Active() {
		return
	}
	next, refill, done := gc.reload.Step(gc.modelRotation(), deltaTime)
	gc.setModelRotation(next)

	if refill {
		gc.magazine = gc.MaxMagazine
		metrics.Reloaded()
		metrics.SetMagazine(gc.magazine)
		gc.OnReloaded.Invoke(gc.magazine)
	}
	if done {
		log.Debug().Msg("reload finished")
	}
}

func (gc *GunController) modelRotation() rl.Quaternion {
	if gc.GunModel != nil {
		return gc.GunModel.Transform.GetQuaternion()
	}
	return gc.modelRot
}

func (gc *GunController) setModelRotation(q rl.Quaternion) {
	if gc.GunModel != nil {
		gc.GunModel.Transform.SetQuaternion(q)
		return
	}
	gc.modelRot = q
}

// SetAiming switches aim mode: the weapon camera pass is skipped while
// aiming and the main camera swaps between aim and normal FOV.
func (gc *GunController) SetAiming(aiming bool) {
	if gc.aiming != aiming {
		log.Debug().Bool("aiming", aiming).Msg("aim changed")
	}
	gc.aiming = aiming
	if gc.WeaponCamera != nil {
		gc.WeaponCamera.Enabled = !aiming
	}
	if gc.MainCamera != nil {
		if aiming {
			gc.MainCamera.FOV = gc.AimFOV
		} else {
			gc.MainCamera.FOV = gc.NormalFOV
		}
	}
}

// DetectTarget casts from the main camera through the pointer and keeps the
// first hittable hit, clearing the target otherwise.
func (gc *GunController) DetectTarget() {
	gc.target = nil
	gc.targetObject = nil

	w := gc.World()
	if w == nil || gc.MainCamera == nil {
		return
	}

	ray := gc.MainCamera.ScreenPointToRay(gc.Input.Pointer())
	hit, ok := w.Raycast(ray.Position, ray.Direction, gc.FireRange, gc.TargetLayers)
	if !ok {
		return
	}
	if h := engine.FindComponent[Hittable](hit.GameObject); h != nil {
		gc.target = h
		gc.targetObject = hit.GameObject
	}
}

func (gc *GunController) IsAiming() bool    { return gc.aiming }
func (gc *GunController) IsReloading() bool { return gc.reload.Active() }
func (gc *GunController) Magazine() int     { return gc.magazine }

// Target returns the object currently under the crosshair, or nil.
func (gc *GunController) Target() *engine.GameObject {
	return gc.targetObject
}

// ReloadProgress runs from 0 to 1 over a reload.
func (gc *GunController) ReloadProgress() float32 {
	return gc.reload.Progress(gc.modelRotation())
}

// SetMagazine sets the round count, clamped to [0, MaxMagazine].
func (gc *GunController) SetMagazine(n int) {
	gc.magazine = max(0, min(n, gc.MaxMagazine))
	metrics.SetMagazine(gc.magazine)
}

func findMainCamera(scene *engine.Scene, root *engine.GameObject) *components.Camera {
	if scene != nil {
		for _, obj := range scene.GameObjects {
			if cam := engine.GetComponent[*components.Camera](obj); cam != nil && cam.IsMain {
				return cam
			}
		}
	}
	if cam, ok := engine.FindComponentInChildren[*components.Camera](root); ok {
		return cam
	}
	return nil
}

// findNamed looks in the rig first, then the whole scene.
func findNamed(scene *engine.Scene, root *engine.GameObject, name string) *engine.GameObject {
	if root.Name == name {
		return root
	}
	if obj := findDescendant(root, name); obj != nil {
		return obj
	}
	if scene != nil {
		return scene.FindByName(name)
	}
	return nil
}

func gunControllerFactory(props map[string]any) engine.Component {
	gc := NewGunController()
	gc.FireRange = engine.PropFloat(props, "fireRange", gc.FireRange)
	gc.MaxMagazine = engine.PropInt(props, "maxMagazine", gc.MaxMagazine)
	gc.ReloadTime = engine.PropFloat(props, "reloadTime", gc.ReloadTime)
	gc.NormalFOV = engine.PropFloat(props, "normalFOV", gc.NormalFOV)
	gc.AimFOV = engine.PropFloat(props, "aimFOV", gc.AimFOV)
	gc.FireRate = engine.PropFloat(props, "fireRate", gc.FireRate)
	gc.TargetLayers = engine.PropLayerMask(props, "targetLayers", gc.TargetLayers)
	lowered := engine.PropVector3(props, "loweredRotation", [3]float32{gc.LoweredRotation.X, gc.LoweredRotation.Y, gc.LoweredRotation.Z})
	gc.LoweredRotation = rl.Vector3{X: lowered[0], Y: lowered[1], Z: lowered[2]}
	gc.GunModelName = engine.PropString(props, "gunModel", gc.GunModelName)
	gc.WeaponCameraName = engine.PropString(props, "weaponCamera", gc.WeaponCameraName)
	gc.magazine = engine.PropInt(props, "magazine", gc.MaxMagazine)
	gc.magazine = max(0, min(gc.magazine, gc.MaxMagazine))
	return gc
}

func gunControllerSerializer(c engine.Component) map[string]any {
	gc, ok := c.(*GunController)
	if !ok {
		return nil
	}
	return map[string]any{
		"fireRange":       gc.FireRange,
		"maxMagazine":     gc.MaxMagazine,
		"reloadTime":      gc.ReloadTime,
		"normalFOV":       gc.NormalFOV,
		"aimFOV":          gc.AimFOV,
		"fireRate":        gc.FireRate,
		"targetLayers":    gc.TargetLayers.Layers(),
		"loweredRotation": []any{gc.LoweredRotation.X, gc.LoweredRotation.Y, gc.LoweredRotation.Z},
		"gunModel":        gc.GunModelName,
		"weaponCamera":    gc.WeaponCameraName,
	}
}

// gunControllerApplier retunes a live gun. Reload timing changes apply from
// the next reload.
func gunControllerApplier(c engine.Component, name string, value any) bool {
	gc, ok := c.(*GunController)
	if !ok {
		return false
	}
	f, isNum := engine.ValueFloat(value)
	if !isNum {
		return false
	}
	switch name {
	case "fireRange":
		gc.FireRange = f
	case "maxMagazine":
		gc.MaxMagazine = int(f)
		gc.SetMagazine(gc.magazine)
	case "reloadTime":
		gc.ReloadTime = f
		if !gc.reload.Active() {
			gc.reload.Duration = f
		}
	case "normalFOV":
		gc.NormalFOV = f
		gc.SetAiming(gc.aiming)
	case "aimFOV":
		gc.AimFOV = f
		gc.SetAiming(gc.aiming)
	case "fireRate":
		gc.FireRate = f
		gc.limiter = rate.NewLimiter(fireLimit(f), 1)
	default:
		return false
	}
	return true
}
