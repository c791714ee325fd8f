package engine

import rl "github.com/gen2brain/raylib-go/raylib"

// LayerMask selects object layers for spatial queries, one bit per layer.
type LayerMask uint32

// AllLayers matches every layer.
const AllLayers LayerMask = 0xFFFFFFFF

// LayerBit returns the mask containing only layer.
func LayerBit(layer int) LayerMask {
	if layer < 0 || layer > 31 {
		return 0
	}
	return 1 << uint(layer)
}

// Contains reports whether layer is selected by the mask.
func (m LayerMask) Contains(layer int) bool {
	return m&LayerBit(layer) != 0
}

// RaycastResult holds information about a raycast hit.
// Defined here to avoid circular imports with the world package.
type RaycastResult struct {
	GameObject *GameObject
	Point      rl.Vector3
	Normal     rl.Vector3
	Distance   float32
}

// WorldAccess provides components with access to world-level operations
// without creating circular import dependencies.
type WorldAccess interface {
	GetCollidableObjects() []*GameObject
	SpawnObject(g *GameObject)
	Destroy(g *GameObject)
	Raycast(origin, direction rl.Vector3, maxDistance float32, mask LayerMask) (RaycastResult, bool)
}

// Layers lists the layer indices selected by the mask.
func (m LayerMask) Layers() []int {
	var layers []int
	for i := 0; i < 32; i++ {
		if m.Contains(i) {
			layers = append(layers, i)
		}
	}
	return layers
}
