package engine

// Component is a behaviour attached to a GameObject. Start runs once before
// the first Update; Update runs every tick while the object is active.
type Component interface {
	Start()
	Update(deltaTime float32)
	SetGameObject(g *GameObject)
	GetGameObject() *GameObject
}

// Enabler is implemented by components that acquire resources (input
// subscriptions and the like) when their GameObject becomes active.
type Enabler interface {
	OnEnable()
}

// Disabler is the counterpart of Enabler. Anything acquired in OnEnable
// must be released here.
type Disabler interface {
	OnDisable()
}

// LookProvider is implemented by whatever steers the view, so cameras on the
// rig can follow it without knowing the controller type.
type LookProvider interface {
	GetLookDirection() (x, y, z float32)
	GetEyeHeight() float32
}

// BaseComponent is embedded by components to get no-op lifecycle methods and
// the GameObject back-reference.
type BaseComponent struct {
	gameObject *GameObject
}

func (b *BaseComponent) Start() {}

func (b *BaseComponent) Update(deltaTime float32) {}

func (b *BaseComponent) SetGameObject(g *GameObject) {
	b.gameObject = g
}

func (b *BaseComponent) GetGameObject() *GameObject {
	return b.gameObject
}

// World returns the world the component's object lives in, or nil when the
// object is detached or its scene has no world.
func (b *BaseComponent) World() WorldAccess {
	if b.gameObject == nil || b.gameObject.Scene == nil {
		return nil
	}
	return b.gameObject.Scene.World
}
