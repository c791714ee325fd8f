package components

import (
	"fpsrig/internal/engine"
	"fpsrig/internal/physics"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// CharacterController moves a box-shaped character through the world's box
// colliders, climbing small steps. Similar to Unity's CharacterController:
// it resolves collisions but applies no forces of its own.
type CharacterController struct {
	engine.BaseComponent

	Height     float32 // Total height of the box
	Radius     float32 // Half-width of the box
	StepHeight float32 // Max height of steps to climb

	// CollisionMask selects which layers block movement.
	CollisionMask engine.LayerMask

	isGrounded bool
}

// NewCharacterController creates a new character controller with defaults
func NewCharacterController() *CharacterController {
	return &CharacterController{
		Height:        1.8,
		Radius:        0.4,
		StepHeight:    0.4,
		CollisionMask: engine.AllLayers,
	}
}

// Move moves the character by motion, resolving collisions. Horizontal and
// vertical parts are resolved separately. Any call with a vertical component
// recomputes the grounded flag. Returns the displacement actually applied.
func (c *CharacterController) Move(motion rl.Vector3) rl.Vector3 {
	g := c.GetGameObject()
	if g == nil {
		return rl.Vector3{}
	}

	if motion.Y != 0 {
		c.isGrounded = false
	}

	var colliders []*engine.GameObject
	if w := c.World(); w != nil {
		colliders = w.GetCollidableObjects()
	}

	originalPos := g.Transform.Position

	horizontal := rl.Vector3{X: motion.X, Z: motion.Z}
	if horizontal.X != 0 || horizontal.Z != 0 {
		c.moveWithCollision(g, horizontal, colliders)
	}

	vertical := rl.Vector3{Y: motion.Y}
	if vertical.Y != 0 {
		c.moveWithCollision(g, vertical, colliders)
	}

	return rl.Vector3Subtract(g.Transform.Position, originalPos)
}

// Bounds returns the character's box at its current position.
func (c *CharacterController) Bounds() physics.AABB {
	g := c.GetGameObject()
	return physics.NewAABBFromCenter(g.Transform.Position, rl.Vector3{X: c.Radius * 2, Y: c.Height, Z: c.Radius * 2})
}

// Feet returns the bottom-center point of the character.
func (c *CharacterController) Feet() rl.Vector3 {
	p := c.GetGameObject().Transform.Position
	p.Y -= c.Height / 2
	return p
}

func (c *CharacterController) moveWithCollision(g *engine.GameObject, motion rl.Vector3, colliders []*engine.GameObject) {
	g.Transform.Position = rl.Vector3Add(g.Transform.Position, motion)
	halfHeight := c.Height / 2

	for _, other := range colliders {
		if other == g || other.Parent == g || !other.Active {
			continue
		}
		if !c.CollisionMask.Contains(other.Layer) {
			continue
		}

		boxCol := engine.GetComponent[*BoxCollider](other)
		if boxCol == nil {
			continue
		}
		static := boxCol.GetAABB()

		char := c.Bounds()
		if !char.Intersects(static) {
			continue
		}
		pushOut := char.Resolve(static)

		isHorizontalCollision := (pushOut.X != 0 || pushOut.Z != 0) && pushOut.Y == 0
		if isHorizontalCollision && motion.Y == 0 {
			feetY := g.Transform.Position.Y - halfHeight
			stepHeight := static.Max.Y - feetY

			if stepHeight > 0 && stepHeight <= c.StepHeight {
				lift := rl.Vector3{Y: stepHeight + 0.01}
				if !char.Translate(lift).Intersects(static) {
					g.Transform.Position = rl.Vector3Add(g.Transform.Position, lift)
					c.isGrounded = true
					continue
				}
			}
		}

		g.Transform.Position = rl.Vector3Add(g.Transform.Position, pushOut)

		if pushOut.Y > 0 {
			c.isGrounded = true
		}
	}
}

// IsGrounded reports whether the last vertical move ended on something.
func (c *CharacterController) IsGrounded() bool {
	return c.isGrounded
}

// SetGrounded manually sets the grounded state
func (c *CharacterController) SetGrounded(grounded bool) {
	c.isGrounded = grounded
}
