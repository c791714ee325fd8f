package components

import (
	"fpsrig/internal/engine"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// SphereCollider is a raycast-only shape; the character controller ignores
// it. Targets use it for round hit volumes.
type SphereCollider struct {
	engine.BaseComponent
	Radius float32
	Offset rl.Vector3
}

func NewSphereCollider(radius float32) *SphereCollider {
	return &SphereCollider{Radius: radius}
}

// GetCenter returns the world-space center of this collider.
func (s *SphereCollider) GetCenter() rl.Vector3 {
	return rl.Vector3Add(s.GetGameObject().WorldPosition(), s.Offset)
}

// WorldRadius scales the radius by the largest world scale axis so the
// sphere always encloses a non-uniformly scaled mesh.
func (s *SphereCollider) WorldRadius() float32 {
	sc := s.GetGameObject().WorldScale()
	return s.Radius * max(absf(sc.X), absf(sc.Y), absf(sc.Z))
}
