package components

import (
	"math"
	"testing"

	"fpsrig/internal/engine"

	rl "github.com/gen2brain/raylib-go/raylib"
)

type fixedLook struct {
	engine.BaseComponent
}

func (fixedLook) GetLookDirection() (x, y, z float32) { return 1, 0, 0 }
func (fixedLook) GetEyeHeight() float32             { return 1.5 }

func vecNear(a, b rl.Vector3) bool {
	return approx(a.X, b.X) && approx(a.Y, b.Y) && approx(a.Z, b.Z)
}

func TestScreenPointToRay(t *testing.T) {
	cam := rl.Camera3D{
		Position: rl.Vector3{Y: 2},
		Target:   rl.Vector3{X: 1, Y: 2},
		Up:       rl.Vector3{Y: 1},
		Fovy:     90,
	}
	s := float32(1 / math.Sqrt2)

	tests := []struct {
		name  string
		point rl.Vector2
		want  rl.Vector3
	}{
		{"center", rl.Vector2{X: 100, Y: 50}, rl.Vector3{X: 1}},
		{"top edge", rl.Vector2{X: 100, Y: 0}, rl.Vector3{X: s, Y: s}},
		{"bottom edge", rl.Vector2{X: 100, Y: 100}, rl.Vector3{X: s, Y: -s}},
		{"right edge", rl.Vector2{X: 200, Y: 50}, rl.Vector3Normalize(rl.Vector3{X: 1, Z: 2})},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ray := ScreenPointToRay(cam, tt.point, 200, 100)
			if ray.Position != cam.Position {
				t.Errorf("Ray should start at the camera, got %v", ray.Position)
			}
			if !vecNear(ray.Direction, tt.want) {
				t.Errorf("Expected direction %v, got %v", tt.want, ray.Direction)
			}
		})
	}
}

func TestScreenPointToRayNoViewport(t *testing.T) {
	cam := rl.Camera3D{Target: rl.Vector3{Z: 5}, Up: rl.Vector3{Y: 1}, Fovy: 60}
	ray := ScreenPointToRay(cam, rl.Vector2{X: 10, Y: 10}, 0, 0)
	if !vecNear(ray.Direction, rl.Vector3{Z: 1}) {
		t.Errorf("Empty viewport should fall back to the view direction, got %v", ray.Direction)
	}
}

func TestCameraUsesLookProvider(t *testing.T) {
	g := engine.NewGameObject("Player")
	g.Transform.Position = rl.Vector3{X: 3}
	g.AddComponent(&fixedLook{})
	cam := NewCamera()
	g.AddComponent(cam)

	rc := cam.GetRaylibCamera()
	if !vecNear(rc.Position, rl.Vector3{X: 3, Y: 1.5}) {
		t.Errorf("Camera on the controller object should sit at eye height, got %v", rc.Position)
	}
	if !vecNear(rc.Target, rl.Vector3{X: 4, Y: 1.5}) {
		t.Errorf("Unexpected target %v", rc.Target)
	}

	// a child camera carries its own offset
	pivot := engine.NewGameObject("Pivot")
	pivot.Transform.Position = rl.Vector3{Y: 0.7}
	g.AddChild(pivot)
	child := NewCamera()
	pivot.AddComponent(child)

	rc = child.GetRaylibCamera()
	if !vecNear(rc.Position, rl.Vector3{X: 3, Y: 0.7}) {
		t.Errorf("Child camera should use its world position, got %v", rc.Position)
	}
	if !vecNear(rc.Target, rl.Vector3{X: 4, Y: 0.7}) {
		t.Errorf("Child camera should look along the parent's direction, got %v", rc.Target)
	}

	ray := child.ScreenPointToRay(rl.Vector2{X: child.Width / 2, Y: child.Height / 2})
	if !vecNear(ray.Direction, rl.Vector3{X: 1}) {
		t.Errorf("Center ray should follow the look direction, got %v", ray.Direction)
	}
}
