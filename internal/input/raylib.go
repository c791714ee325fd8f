package input

import (
	rl "github.com/gen2brain/raylib-go/raylib"
)

// RaylibSource polls raylib's keyboard and mouse once per frame and pushes
// the resulting edges into an ActionMap. It needs an open window.
type RaylibSource struct {
	m        *ActionMap
	bindings resolvedBindings

	// CenterPointer reports the screen center as the pointer position, which
	// is what a locked cursor should aim through.
	CenterPointer bool

	lastPointer rl.Vector2
	lastMove    rl.Vector2
	lastLook    rl.Vector2
}

func NewRaylibSource(m *ActionMap, b Bindings) (*RaylibSource, error) {
	r, err := b.resolve()
	if err != nil {
		return nil, err
	}
	return &RaylibSource{m: m, bindings: r}, nil
}

// Rebind swaps the control layout without dropping held values.
func (s *RaylibSource) Rebind(b Bindings) error {
	r, err := b.resolve()
	if err != nil {
		return err
	}
	s.bindings = r
	return nil
}

// Reset forgets the last sampled axes so held controls are reported again
// from the next Poll.
func (s *RaylibSource) Reset() {
	s.lastPointer = rl.Vector2{}
	s.lastMove = rl.Vector2{}
	s.lastLook = rl.Vector2{}
}

// Poll samples the devices and queues events for this frame.
func (s *RaylibSource) Poll() {
	s.pollPointer()
	s.pollMove()
	s.pollLook()

	b := s.bindings
	if pressed(b.jump) {
		s.m.Push(Event{Action: ActionJump, Phase: PhaseStarted})
	}
	s.pollHold(ActionSprint, b.sprint)
	s.pollHold(ActionAim, b.aim)
	s.pollButton(ActionFire, b.fire)
	s.pollButton(ActionReload, b.reload)
}

func (s *RaylibSource) pollPointer() {
	var p rl.Vector2
	if s.CenterPointer {
		p = rl.Vector2{X: float32(rl.GetScreenWidth()) / 2, Y: float32(rl.GetScreenHeight()) / 2}
	} else {
		p = rl.GetMousePosition()
	}
	if p != s.lastPointer {
		s.lastPointer = p
		s.m.Push(Event{Action: ActionPoint, Phase: PhasePerformed, Value: p})
	}
}

func (s *RaylibSource) pollMove() {
	b := s.bindings
	var v rl.Vector2
	if down(b.forward) {
		v.Y++
	}
	if down(b.back) {
		v.Y--
	}
	if down(b.right) {
		v.X++
	}
	if down(b.left) {
		v.X--
	}
	// digital diagonals would otherwise be faster
	if rl.Vector2Length(v) > 1 {
		v = rl.Vector2Normalize(v)
	}
	s.lastMove = s.pushAxis(ActionMove, v, s.lastMove)
}

func (s *RaylibSource) pollLook() {
	s.lastLook = s.pushAxis(ActionLook, rl.GetMouseDelta(), s.lastLook)
}

func (s *RaylibSource) pushAxis(a Action, v, last rl.Vector2) rl.Vector2 {
	zero := rl.Vector2{}
	switch {
	case v == last && a != ActionLook:
	case v == zero && last != zero:
		s.m.Push(Event{Action: a, Phase: PhaseCanceled})
	case v != zero:
		if last == zero {
			s.m.Push(Event{Action: a, Phase: PhaseStarted, Value: v})
		}
		s.m.Push(Event{Action: a, Phase: PhasePerformed, Value: v})
	}
	return v
}

func (s *RaylibSource) pollHold(a Action, c Control) {
	if pressed(c) {
		s.m.Push(Event{Action: a, Phase: PhaseStarted})
		s.m.Push(Event{Action: a, Phase: PhasePerformed})
	}
	if released(c) {
		s.m.Push(Event{Action: a, Phase: PhaseCanceled})
	}
}

func (s *RaylibSource) pollButton(a Action, c Control) {
	if pressed(c) {
		s.m.Push(Event{Action: a, Phase: PhaseStarted})
		s.m.Push(Event{Action: a, Phase: PhasePerformed})
	}
}

func down(c Control) bool {
	if c.IsMouse {
		return rl.IsMouseButtonDown(c.Button)
	}
	return rl.IsKeyDown(c.Key)
}

func pressed(c Control) bool {
	if c.IsMouse {
		return rl.IsMouseButtonPressed(c.Button)
	}
	return rl.IsKeyPressed(c.Key)
}

func released(c Control) bool {
	if c.IsMouse {
		return rl.IsMouseButtonReleased(c.Button)
	}
	return rl.IsKeyReleased(c.Key)
}
