package scripts

import (
	"fpsrig/internal/components"
	"fpsrig/internal/engine"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// probeLift raises the probe origin above the feet so it starts outside the
// surface it is standing on.
const probeLift = 0.1

// GroundSensor answers whether a character is standing on something.
type GroundSensor struct {
	Controller    *components.CharacterController
	World         engine.WorldAccess
	CheckDistance float32
	Mask          engine.LayerMask
}

// IsGrounded is true when the controller reports contact, or a short ray
// cast down from just above the feet hits ground geometry.
func (s *GroundSensor) IsGrounded() bool {
	if s.Controller == nil || s.Controller.GetGameObject() == nil {
		return false
	}
	if s.Controller.IsGrounded() {
		return true
	}
	if s.World == nil || s.CheckDistance <= 0 {
		return false
	}

	origin := s.Controller.Feet()
	origin.Y += probeLift
	_, hit := s.World.Raycast(origin, rl.Vector3{Y: -1}, s.CheckDistance, s.Mask)
	return hit
}
