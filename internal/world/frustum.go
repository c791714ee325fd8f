package world

import (
	rl "github.com/gen2brain/raylib-go/raylib"
)

// Frustum represents the 6 planes of a view frustum for culling
type Frustum struct {
	planes [6]Plane // left, right, bottom, top, near, far
}

// Plane represents a plane in 3D space (ax + by + cz + d = 0)
type Plane struct {
	normal   rl.Vector3
	distance float32
}

// ExtractFrustum builds the culling volume for a perspective camera.
// Planes come from the view-projection matrix (Gribb/Hartmann).
func ExtractFrustum(camera rl.Camera3D, aspect, near, far float32) Frustum {
	view := rl.MatrixLookAt(camera.Position, camera.Target, camera.Up)
	proj := rl.MatrixPerspective(camera.Fovy*rl.Deg2rad, aspect, near, far)
	vp := rl.MatrixMultiply(view, proj)

	row := func(i int) [4]float32 {
		m := [16]float32{
			vp.M0, vp.M1, vp.M2, vp.M3,
			vp.M4, vp.M5, vp.M6, vp.M7,
			vp.M8, vp.M9, vp.M10, vp.M11,
			vp.M12, vp.M13, vp.M14, vp.M15,
		}
		// column-major storage
		return [4]float32{m[i], m[4+i], m[8+i], m[12+i]}
	}
	r1, r2, r3, r4 := row(0), row(1), row(2), row(3)

	combine := func(a, b [4]float32, sign float32) Plane {
		return normalizePlane(Plane{
			normal:   rl.Vector3{X: a[0] + sign*b[0], Y: a[1] + sign*b[1], Z: a[2] + sign*b[2]},
			distance: a[3] + sign*b[3],
		})
	}

	var f Frustum
	f.planes[0] = combine(r4, r1, 1)
	f.planes[1] = combine(r4, r1, -1)
	f.planes[2] = combine(r4, r2, 1)
	f.planes[3] = combine(r4, r2, -1)
	f.planes[4] = combine(r4, r3, 1)
	f.planes[5] = combine(r4, r3, -1)
	return f
}

func normalizePlane(p Plane) Plane {
	length := rl.Vector3Length(p.normal)
	if length == 0 {
		return p
	}
	return Plane{
		normal:   rl.Vector3Scale(p.normal, 1.0/length),
		distance: p.distance / length,
	}
}

// ContainsSphere tests if a sphere is inside or intersects the frustum
func (f *Frustum) ContainsSphere(center rl.Vector3, radius float32) bool {
	for i := 0; i < 6; i++ {
		dist := rl.Vector3DotProduct(f.planes[i].normal, center) + f.planes[i].distance
		if dist < -radius {
			return false
		}
	}
	return true
}

// ContainsPoint tests if a point is inside the frustum
func (f *Frustum) ContainsPoint(point rl.Vector3) bool {
	return f.ContainsSphere(point, 0)
}
