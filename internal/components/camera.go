package components

import (
	"math"

	"fpsrig/internal/engine"

	rl "github.com/gen2brain/raylib-go/raylib"
)

type Camera struct {
	engine.BaseComponent
	FOV        float32
	Near       float32
	Far        float32
	Projection rl.CameraProjection
	IsMain     bool // If true, this is the active game camera

	// Enabled gates the camera's render pass. A disabled weapon camera
	// simply isn't drawn.
	Enabled bool

	// Viewport size in pixels, used for screen-to-world rays.
	Width  float32
	Height float32
}

func NewCamera() *Camera {
	return &Camera{
		FOV:        60.0,
		Near:       0.1,
		Far:        1000.0,
		Projection: rl.CameraPerspective,
		Enabled:    true,
		Width:      1280,
		Height:     720,
	}
}

func (c *Camera) GetRaylibCamera() rl.Camera3D {
	g := c.GetGameObject()
	if g == nil {
		return rl.Camera3D{}
	}

	eyePos := g.WorldPosition()

	// Look for any LookProvider component on this object or parents
	var lookProvider engine.LookProvider
	for obj := g; obj != nil; obj = obj.Parent {
		if lp := engine.FindComponent[engine.LookProvider](obj); lp != nil {
			lookProvider = lp
			break
		}
	}

	// A camera on the same object as the controller sits at eye height;
	// a child camera already carries its own offset.
	if lookProvider != nil && g.Parent == nil {
		eyePos.Y += lookProvider.GetEyeHeight()
	}

	var target rl.Vector3
	if lookProvider != nil {
		x, y, z := lookProvider.GetLookDirection()
		target = rl.Vector3Add(eyePos, rl.Vector3{X: x, Y: y, Z: z})
	} else {
		// Default: look forward based on object's yaw
		rot := g.WorldRotation()
		yawRad := float64(rot.Y) * math.Pi / 180.0
		forward := rl.Vector3{
			X: float32(-math.Sin(yawRad)),
			Y: 0,
			Z: float32(-math.Cos(yawRad)),
		}
		target = rl.Vector3Add(eyePos, forward)
	}

	return rl.Camera3D{
		Position:   eyePos,
		Target:     target,
		Up:         rl.Vector3{X: 0, Y: 1, Z: 0},
		Fovy:       c.FOV,
		Projection: c.Projection,
	}
}

// ScreenPointToRay returns the world-space ray through a pixel of the
// viewport. Pure math, so it works without a window.
func (c *Camera) ScreenPointToRay(point rl.Vector2) rl.Ray {
	cam := c.GetRaylibCamera()
	return ScreenPointToRay(cam, point, c.Width, c.Height)
}

// ScreenPointToRay unprojects point through a perspective camera.
func ScreenPointToRay(cam rl.Camera3D, point rl.Vector2, width, height float32) rl.Ray {
	forward := rl.Vector3Normalize(rl.Vector3Subtract(cam.Target, cam.Position))
	right := rl.Vector3Normalize(rl.Vector3CrossProduct(forward, cam.Up))
	up := rl.Vector3CrossProduct(right, forward)

	if width <= 0 || height <= 0 {
		return rl.Ray{Position: cam.Position, Direction: forward}
	}

	// NDC in [-1, 1], y up
	nx := 2*point.X/width - 1
	ny := 1 - 2*point.Y/height

	tanHalf := float32(math.Tan(float64(cam.Fovy) * math.Pi / 360))
	aspect := width / height

	dir := forward
	dir = rl.Vector3Add(dir, rl.Vector3Scale(right, nx*aspect*tanHalf))
	dir = rl.Vector3Add(dir, rl.Vector3Scale(up, ny*tanHalf))

	return rl.Ray{Position: cam.Position, Direction: rl.Vector3Normalize(dir)}
}
