package scripts

import (
	"math"

	"fpsrig/internal/components"
	"fpsrig/internal/engine"
	"fpsrig/internal/input"
	"fpsrig/internal/metrics"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/rs/zerolog/log"
)

func init() {
	engine.RegisterScriptWithApplier("PlayerController", playerControllerFactory, playerControllerSerializer, playerControllerApplier)
}

// PlayerController drives a first-person body: walking, sprinting, jumping
// under gravity, and yaw/pitch look. Yaw turns the body; pitch turns only
// the look pivot.
type PlayerController struct {
	engine.BaseComponent

	MoveSpeed            float32
	JumpHeight           float32
	Gravity              float32 // negative, units/s²
	GroundStickVelocity  float32
	SprintMultiplier     float32
	AimSpeedFactor       float32
	LookSensitivity      float32 // degrees per unit of look input per second
	AimSensitivityFactor float32
	PitchMin             float32
	PitchMax             float32
	EyeHeight            float32
	GroundCheckDistance  float32
	GroundMask           engine.LayerMask
	LookPivotName        string

	Yaw              float32
	Pitch            float32
	VerticalVelocity float32

	Input     *input.Sampler
	Sensor    GroundSensor
	Aim       AimProvider
	LookPivot *engine.GameObject

	// OnJumped fires on the tick a jump leaves the ground.
	OnJumped engine.Event

	controller *components.CharacterController
	grounded   bool
}

func NewPlayerController() *PlayerController {
	return &PlayerController{
		MoveSpeed:            1,
		JumpHeight:           0.5,
		Gravity:              -9.81,
		GroundStickVelocity:  -2,
		SprintMultiplier:     2,
		AimSpeedFactor:       0.5,
		LookSensitivity:      8,
		AimSensitivityFactor: 0.5,
		PitchMin:             -80,
		PitchMax:             80,
		EyeHeight:            0.7,
		GroundCheckDistance:  0.2,
		GroundMask:           engine.AllLayers,
		LookPivotName:        "LookPivot",
		Input:                input.NewSampler(input.ActionMove, input.ActionLook, input.ActionJump, input.ActionSprint),
	}
}

func (p *PlayerController) Start() {
	g := p.GetGameObject()
	if g == nil {
		return
	}

	p.controller = engine.GetComponent[*components.CharacterController](g)
	p.Sensor.Controller = p.controller
	p.Sensor.CheckDistance = p.GroundCheckDistance
	p.Sensor.Mask = p.GroundMask
	p.Sensor.World = p.World()

	if p.Aim == nil {
		if aim, ok := engine.FindComponentInChildren[AimProvider](g); ok {
			p.Aim = aim
		}
	}
	if p.LookPivot == nil && p.LookPivotName != "" {
		p.LookPivot = findDescendant(g, p.LookPivotName)
	}

	p.Yaw = -g.Transform.Rotation.Y
	p.Pitch = clamp(p.Pitch, p.PitchMin, p.PitchMax)
	p.applyLook()

	if p.controller == nil {
		log.Warn().Str("object", g.Name).Msg("PlayerController has no CharacterController; movement disabled")
	}
}

func (p *PlayerController) OnEnable() {
	g := p.GetGameObject()
	if g != nil && g.Scene != nil {
		p.Input.Bind(g.Scene.Input)
	}
}

func (p *PlayerController) OnDisable() {
	p.Input.Unbind()
}

// Update runs one movement tick.
func (p *PlayerController) Update(deltaTime float32) {
	// the jump request is spent every tick, even when nothing can move
	jump := p.Input.ConsumeJump()

	g := p.GetGameObject()
	if g == nil || p.controller == nil {
		return
	}

	p.grounded = p.Sensor.IsGrounded()

	if p.grounded && p.VerticalVelocity <= 0 {
		p.VerticalVelocity = p.GroundStickVelocity
	}

	if jump && p.grounded {
		if p.Aim != nil && p.Aim.IsAiming() {
			p.Aim.SetAiming(false)
		}
		p.VerticalVelocity = float32(math.Sqrt(float64(p.JumpHeight * -2 * p.Gravity)))
		metrics.Jumped()
		log.Debug().Float32("vy", p.VerticalVelocity).Msg("jump")
		p.OnJumped.Invoke()
	}

	aiming := p.IsAiming()

	sens := p.LookSensitivity
	if aiming {
		sens *= p.AimSensitivityFactor
	}
	look := p.Input.Look()
	p.Yaw += look.X * sens * deltaTime
	p.Pitch = clamp(p.Pitch-look.Y*sens*deltaTime, p.PitchMin, p.PitchMax)
	p.applyLook()

	in := p.Input.Move()
	forward, right := p.Directions()
	move := rl.Vector3Add(rl.Vector3Scale(forward, in.Y), rl.Vector3Scale(right, in.X))

	speed := p.MoveSpeed
	if aiming {
		speed *= p.AimSpeedFactor
	}
	if p.Input.Sprint() {
		speed *= p.SprintMultiplier
	}
	p.controller.Move(rl.Vector3Scale(move, speed*deltaTime))

	p.VerticalVelocity += p.Gravity * deltaTime
	p.controller.Move(rl.Vector3{Y: p.VerticalVelocity * deltaTime})
}

// applyLook writes yaw to the body and pitch to the pivot.
func (p *PlayerController) applyLook() {
	g := p.GetGameObject()
	g.Transform.Rotation.Y = -p.Yaw
	if p.LookPivot != nil {
		p.LookPivot.Transform.Rotation.Z = p.Pitch
	}
}

// Directions returns the horizontal forward and right vectors for the
// current yaw.
func (p *PlayerController) Directions() (forward, right rl.Vector3) {
	yawRad := float64(p.Yaw) * math.Pi / 180
	sin, cos := math.Sincos(yawRad)
	forward = rl.Vector3{X: float32(cos), Z: float32(sin)}
	right = rl.Vector3{X: float32(-sin), Z: float32(cos)}
	return
}

// IsAiming reports the weapon's aim state, false without a weapon.
func (p *PlayerController) IsAiming() bool {
	return p.Aim != nil && p.Aim.IsAiming()
}

// Grounded is the sensor result from the last tick.
func (p *PlayerController) Grounded() bool {
	return p.grounded
}

// GetLookDirection implements engine.LookProvider
func (p *PlayerController) GetLookDirection() (x, y, z float32) {
	yawRad := float64(p.Yaw) * math.Pi / 180
	pitchRad := float64(p.Pitch) * math.Pi / 180
	return float32(math.Cos(yawRad) * math.Cos(pitchRad)),
		float32(math.Sin(pitchRad)),
		float32(math.Sin(yawRad) * math.Cos(pitchRad))
}

// GetEyeHeight implements engine.LookProvider
func (p *PlayerController) GetEyeHeight() float32 {
	return p.EyeHeight
}

func clamp(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// findDescendant searches g's subtree (excluding g) for a name.
func findDescendant(g *engine.GameObject, name string) *engine.GameObject {
	for _, child := range g.Children {
		if child.Name == name {
			return child
		}
		if found := findDescendant(child, name); found != nil {
			return found
		}
	}
	return nil
}

func playerControllerFactory(props map[string]any) engine.Component {
	p := NewPlayerController()
	playerControllerProps(p, props)
	return p
}

func playerControllerProps(p *PlayerController, props map[string]any) {
	p.MoveSpeed = engine.PropFloat(props, "moveSpeed", p.MoveSpeed)
	p.JumpHeight = engine.PropFloat(props, "jumpHeight", p.JumpHeight)
	p.Gravity = engine.PropFloat(props, "gravity", p.Gravity)
	p.GroundStickVelocity = engine.PropFloat(props, "groundStickVelocity", p.GroundStickVelocity)
	p.SprintMultiplier = engine.PropFloat(props, "sprintMultiplier", p.SprintMultiplier)
	p.AimSpeedFactor = engine.PropFloat(props, "aimSpeedFactor", p.AimSpeedFactor)
	p.LookSensitivity = engine.PropFloat(props, "lookSensitivity", p.LookSensitivity)
	p.AimSensitivityFactor = engine.PropFloat(props, "aimSensitivityFactor", p.AimSensitivityFactor)
	p.PitchMin = engine.PropFloat(props, "pitchMin", p.PitchMin)
	p.PitchMax = engine.PropFloat(props, "pitchMax", p.PitchMax)
	p.EyeHeight = engine.PropFloat(props, "eyeHeight", p.EyeHeight)
	p.GroundCheckDistance = engine.PropFloat(props, "groundCheckDistance", p.GroundCheckDistance)
	p.GroundMask = engine.PropLayerMask(props, "groundLayers", p.GroundMask)
	p.LookPivotName = engine.PropString(props, "lookPivot", p.LookPivotName)
	p.Pitch = engine.PropFloat(props, "pitch", p.Pitch)
}

func playerControllerSerializer(c engine.Component) map[string]any {
	p, ok := c.(*PlayerController)
	if !ok {
		return nil
	}
	return map[string]any{
		"moveSpeed":            p.MoveSpeed,
		"jumpHeight":           p.JumpHeight,
		"gravity":              p.Gravity,
		"groundStickVelocity":  p.GroundStickVelocity,
		"sprintMultiplier":     p.SprintMultiplier,
		"aimSpeedFactor":       p.AimSpeedFactor,
		"lookSensitivity":      p.LookSensitivity,
		"aimSensitivityFactor": p.AimSensitivityFactor,
		"pitchMin":             p.PitchMin,
		"pitchMax":             p.PitchMax,
		"eyeHeight":            p.EyeHeight,
		"groundCheckDistance":  p.GroundCheckDistance,
		"groundLayers":         p.GroundMask.Layers(),
		"lookPivot":            p.LookPivotName,
	}
}

// playerControllerApplier retunes a live controller. Pitch bounds re-clamp
// the current pitch.
func playerControllerApplier(c engine.Component, name string, value any) bool {
	p, ok := c.(*PlayerController)
	if !ok {
		return false
	}
	f, isNum := engine.ValueFloat(value)
	if !isNum {
		return false
	}
	switch name {
	case "moveSpeed":
		p.MoveSpeed = f
	case "jumpHeight":
		p.JumpHeight = f
	case "gravity":
		p.Gravity = f
	case "groundStickVelocity":
		p.GroundStickVelocity = f
	case "sprintMultiplier":
		p.SprintMultiplier = f
	case "aimSpeedFactor":
		p.AimSpeedFactor = f
	case "lookSensitivity":
		p.LookSensitivity = f
	case "aimSensitivityFactor":
		p.AimSensitivityFactor = f
	case "pitchMin":
		p.PitchMin = f
		p.Pitch = clamp(p.Pitch, p.PitchMin, p.PitchMax)
	case "pitchMax":
		p.PitchMax = f
		p.Pitch = clamp(p.Pitch, p.PitchMin, p.PitchMax)
	case "eyeHeight":
		p.EyeHeight = f
	case "groundCheckDistance":
		p.GroundCheckDistance = f
		p.Sensor.CheckDistance = f
	default:
		return false
	}
	return true
}
