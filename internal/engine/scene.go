package engine

import "fpsrig/internal/input"

type Scene struct {
	Name        string
	GameObjects []*GameObject
	World       WorldAccess
	Input       *input.ActionMap
	byUID       map[uint64]*GameObject
	started     bool
}

func NewScene(name string) *Scene {
	return &Scene{
		Name:        name,
		GameObjects: make([]*GameObject, 0),
		byUID:       make(map[uint64]*GameObject),
	}
}

// AddGameObject registers g and all of its descendants. Objects added after
// Start are started immediately.
func (s *Scene) AddGameObject(g *GameObject) {
	g.Scene = s
	s.GameObjects = append(s.GameObjects, g)
	s.byUID[g.UID] = g
	for _, child := range g.Children {
		s.AddGameObject(child)
	}
	if s.started {
		g.Start()
	}
}

// RemoveGameObject unregisters g and its descendants, disabling them first.
func (s *Scene) RemoveGameObject(g *GameObject) {
	for _, child := range g.Children {
		s.RemoveGameObject(child)
	}
	for i, obj := range s.GameObjects {
		if obj == g {
			s.GameObjects = append(s.GameObjects[:i], s.GameObjects[i+1:]...)
			break
		}
	}
	delete(s.byUID, g.UID)
	g.Stop()
}

func (s *Scene) FindByUID(uid uint64) *GameObject {
	return s.byUID[uid]
}

func (s *Scene) FindByName(name string) *GameObject {
	for _, g := range s.GameObjects {
		if g.Name == name {
			return g
		}
	}
	return nil
}

func (s *Scene) FindByTag(tag string) []*GameObject {
	var result []*GameObject
	for _, g := range s.GameObjects {
		if g.HasTag(tag) {
			result = append(result, g)
		}
	}
	return result
}

func (s *Scene) Start() {
	s.started = true
	for _, g := range s.GameObjects {
		g.Start()
	}
}

func (s *Scene) Update(deltaTime float32) {
	for _, g := range s.GameObjects {
		g.Update(deltaTime)
	}
}

// Stop disables every object. The scene can be started again afterwards.
func (s *Scene) Stop() {
	for _, g := range s.GameObjects {
		g.Stop()
	}
	s.started = false
}
