package components

import (
	"math"
	"testing"

	"fpsrig/internal/engine"

	rl "github.com/gen2brain/raylib-go/raylib"
)

func TestMeshRendererFlash(t *testing.T) {
	m := NewMeshRenderer(MeshCube, rl.Red, rl.Vector3{X: 1, Y: 1, Z: 1})
	if m.Flashing() {
		t.Error("New mesh should not flash")
	}

	m.Flash(0.1)
	m.Update(0.05)
	if !m.Flashing() {
		t.Error("Expected flashing halfway through")
	}
	m.Update(0.06)
	if m.Flashing() {
		t.Error("Flash should have ended")
	}
}

func TestMeshRendererBoundingRadius(t *testing.T) {
	tests := []struct {
		name  string
		mesh  MeshType
		size  rl.Vector3
		scale rl.Vector3
		want  float32
	}{
		{"unit cube", MeshCube, rl.Vector3{X: 2, Y: 2, Z: 2}, rl.Vector3{X: 1, Y: 1, Z: 1}, float32(math.Sqrt(3))},
		{"sphere uses largest axis", MeshSphere, rl.Vector3{X: 0.5, Y: 0.5, Z: 0.5}, rl.Vector3{X: 1, Y: 3, Z: 1}, 1.5},
		{"negative scale", MeshCube, rl.Vector3{X: 2, Y: 2, Z: 2}, rl.Vector3{X: -1, Y: 1, Z: 1}, float32(math.Sqrt(3))},
		{"plane", MeshPlane, rl.Vector3{X: 6, Z: 8}, rl.Vector3{X: 1, Y: 1, Z: 1}, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := engine.NewGameObject("Mesh")
			g.Transform.Scale = tt.scale
			m := NewMeshRenderer(tt.mesh, rl.Gray, tt.size)
			g.AddComponent(m)

			if got := m.BoundingRadius(); !approx(got, tt.want) {
				t.Errorf("Expected radius %f, got %f", tt.want, got)
			}
		})
	}
}

func TestParseMeshType(t *testing.T) {
	if ParseMeshType("sphere") != MeshSphere || ParseMeshType("plane") != MeshPlane {
		t.Error("Named meshes not parsed")
	}
	if ParseMeshType("teapot") != MeshCube {
		t.Error("Unknown names should default to cube")
	}
}
