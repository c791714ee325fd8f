package engine

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// QuaternionAngle returns the angle in degrees between two orientations.
func QuaternionAngle(a, b rl.Quaternion) float32 {
	dot := a.X*b.X + a.Y*b.Y + a.Z*b.Z + a.W*b.W
	if dot < 0 {
		dot = -dot
	}
	if dot > 1 {
		dot = 1
	}
	return float32(2*math.Acos(float64(dot))) * rl.Rad2deg
}

// RotateTowards rotates from toward to by at most maxDegrees, never overshooting.
func RotateTowards(from, to rl.Quaternion, maxDegrees float32) rl.Quaternion {
	angle := QuaternionAngle(from, to)
	if angle == 0 || maxDegrees >= angle {
		return to
	}
	if maxDegrees <= 0 {
		return from
	}
	// shortest arc
	if from.X*to.X+from.Y*to.Y+from.Z*to.Z+from.W*to.W < 0 {
		to = rl.Quaternion{X: -to.X, Y: -to.Y, Z: -to.Z, W: -to.W}
	}
	return rl.QuaternionSlerp(from, to, maxDegrees/angle)
}
