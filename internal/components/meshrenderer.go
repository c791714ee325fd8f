package components

import (
	"fpsrig/internal/engine"

	rl "github.com/gen2brain/raylib-go/raylib"
)

type MeshType int

const (
	MeshCube MeshType = iota
	MeshSphere
	MeshPlane
)

// ParseMeshType maps scene-file names to mesh types. Unknown names are cubes.
func ParseMeshType(name string) MeshType {
	switch name {
	case "sphere":
		return MeshSphere
	case "plane":
		return MeshPlane
	}
	return MeshCube
}

type MeshRenderer struct {
	engine.BaseComponent
	MeshType MeshType
	Color    rl.Color
	Size     rl.Vector3

	// Overlay meshes are drawn in the weapon camera pass instead of the
	// world pass.
	Overlay bool

	flash float32
}

func NewMeshRenderer(meshType MeshType, color rl.Color, size rl.Vector3) *MeshRenderer {
	return &MeshRenderer{
		MeshType: meshType,
		Color:    color,
		Size:     size,
	}
}

// Flash tints the mesh white for the given number of seconds.
func (m *MeshRenderer) Flash(seconds float32) {
	m.flash = seconds
}

func (m *MeshRenderer) Flashing() bool {
	return m.flash > 0
}

func (m *MeshRenderer) Update(deltaTime float32) {
	if m.flash > 0 {
		m.flash -= deltaTime
	}
}

// Draw renders the mesh at the object's world transform.
func (m *MeshRenderer) Draw() {
	g := m.GetGameObject()
	if g == nil || !g.Active {
		return
	}
	m.draw(g.WorldPosition(), g.WorldRotation(), g.WorldScale())
}

// DrawLocal renders the mesh at the object's local transform. Overlay passes
// use it with a camera fixed at the parent's origin.
func (m *MeshRenderer) DrawLocal() {
	g := m.GetGameObject()
	if g == nil || !g.Active {
		return
	}
	m.draw(g.Transform.Position, g.Transform.Rotation, g.Transform.Scale)
}

// BoundingRadius is the radius of a sphere enclosing the scaled mesh.
func (m *MeshRenderer) BoundingRadius() float32 {
	s := rl.Vector3{X: 1, Y: 1, Z: 1}
	if g := m.GetGameObject(); g != nil {
		s = g.WorldScale()
	}
	size := rl.Vector3{X: absf(m.Size.X * s.X), Y: absf(m.Size.Y * s.Y), Z: absf(m.Size.Z * s.Z)}
	if m.MeshType == MeshSphere {
		return max(size.X, size.Y, size.Z)
	}
	return rl.Vector3Length(size) / 2
}

func (m *MeshRenderer) draw(pos, rot, scale rl.Vector3) {
	color := m.Color
	if m.flash > 0 {
		color = rl.White
	}

	rl.PushMatrix()
	rl.Translatef(pos.X, pos.Y, pos.Z)
	rl.Rotatef(rot.X, 1, 0, 0)
	rl.Rotatef(rot.Y, 0, 1, 0)
	rl.Rotatef(rot.Z, 0, 0, 1)
	rl.Scalef(scale.X, scale.Y, scale.Z)

	origin := rl.Vector3{}
	switch m.MeshType {
	case MeshCube:
		rl.DrawCubeV(origin, m.Size, color)
		rl.DrawCubeWiresV(origin, m.Size, rl.Fade(rl.Black, 0.3))
	case MeshSphere:
		rl.DrawSphere(origin, m.Size.X, color)
	case MeshPlane:
		rl.DrawPlane(origin, rl.Vector2{X: m.Size.X, Y: m.Size.Z}, color)
	}
	rl.PopMatrix()
}
