package scripts

import (
	"math"

	"fpsrig/internal/engine"

	rl "github.com/gen2brain/raylib-go/raylib"
)

func init() {
	engine.RegisterScript("Mover", moverFactory, moverSerializer)
}

// Mover swings an object back and forth along Offset around where it
// started, optionally spinning it around Y.
type Mover struct {
	engine.BaseComponent
	Offset rl.Vector3
	Speed  float32 // cycles per second
	Phase  float32 // radians
	Spin   float32 // degrees per second

	origin rl.Vector3
	time   float32
}

func (m *Mover) Start() {
	if g := m.GetGameObject(); g != nil {
		m.origin = g.Transform.Position
	}
}

func (m *Mover) Update(deltaTime float32) {
	g := m.GetGameObject()
	if g == nil {
		return
	}
	m.time += deltaTime

	s := float32(math.Sin(2*math.Pi*float64(m.time*m.Speed) + float64(m.Phase)))
	g.Transform.Position = rl.Vector3Add(m.origin, rl.Vector3Scale(m.Offset, s))

	if m.Spin != 0 {
		y := g.Transform.Rotation.Y + m.Spin*deltaTime
		g.Transform.Rotation.Y = float32(math.Mod(float64(y), 360))
	}
}

func moverFactory(props map[string]any) engine.Component {
	offset := engine.PropVector3(props, "offset", [3]float32{0, 0, 0})
	return &Mover{
		Offset: rl.Vector3{X: offset[0], Y: offset[1], Z: offset[2]},
		Speed:  engine.PropFloat(props, "speed", 0.25),
		Phase:  engine.PropFloat(props, "phase", 0),
		Spin:   engine.PropFloat(props, "spin", 0),
	}
}

func moverSerializer(c engine.Component) map[string]any {
	m, ok := c.(*Mover)
	if !ok {
		return nil
	}
	return map[string]any{
		"offset": []any{m.Offset.X, m.Offset.Y, m.Offset.Z},
		"speed":  m.Speed,
		"phase":  m.Phase,
		"spin":   m.Spin,
	}
}
