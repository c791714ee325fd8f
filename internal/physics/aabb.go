package physics

import rl "github.com/gen2brain/raylib-go/raylib"

// AABB is an axis-aligned box. Colliders and the character body are both
// AABBs, so every contact in the rig is box against box.
type AABB struct {
	Min rl.Vector3
	Max rl.Vector3
}

// NewAABBFromCenter builds a box from its center and full extents.
func NewAABBFromCenter(center, size rl.Vector3) AABB {
	half := rl.Vector3Scale(size, 0.5)
	return AABB{
		Min: rl.Vector3Subtract(center, half),
		Max: rl.Vector3Add(center, half),
	}
}

func (a AABB) Center() rl.Vector3 {
	return rl.Vector3Scale(rl.Vector3Add(a.Min, a.Max), 0.5)
}

// Translate returns the box moved by d.
func (a AABB) Translate(d rl.Vector3) AABB {
	return AABB{Min: rl.Vector3Add(a.Min, d), Max: rl.Vector3Add(a.Max, d)}
}

// Intersects treats touching faces as overlapping.
func (a AABB) Intersects(b AABB) bool {
	return a.Min.X <= b.Max.X && a.Max.X >= b.Min.X &&
		a.Min.Y <= b.Max.Y && a.Max.Y >= b.Min.Y &&
		a.Min.Z <= b.Max.Z && a.Max.Z >= b.Min.Z
}

// Resolve returns the shortest translation that pushes a out of b, along a
// single axis. Zero when they do not overlap. Ties prefer X, then Y, then Z.
func (a AABB) Resolve(b AABB) rl.Vector3 {
	if !a.Intersects(b) {
		return rl.Vector3{}
	}

	axes := [3]struct{ up, down float32 }{
		{b.Max.X - a.Min.X, a.Max.X - b.Min.X},
		{b.Max.Y - a.Min.Y, a.Max.Y - b.Min.Y},
		{b.Max.Z - a.Min.Z, a.Max.Z - b.Min.Z},
	}

	best, axis := axes[0].up, 0
	sign := float32(1)
	for i, ax := range axes {
		if ax.up < best {
			best, axis, sign = ax.up, i, 1
		}
		if ax.down < best {
			best, axis, sign = ax.down, i, -1
		}
	}

	var push [3]float32
	push[axis] = sign * best
	return rl.Vector3{X: push[0], Y: push[1], Z: push[2]}
}
