package input

import (
	"testing"

	rl "github.com/gen2brain/raylib-go/raylib"
)

func boundSampler(actions ...Action) (*ActionMap, *Sampler) {
	m := NewActionMap()
	m.Enable()
	s := NewSampler(actions...)
	s.Bind(m)
	return m, s
}

func TestSamplerValues(t *testing.T) {
	m, s := boundSampler(ActionMove, ActionLook, ActionSprint, ActionPoint)

	m.Push(Event{Action: ActionMove, Phase: PhasePerformed, Value: rl.Vector2{X: 1, Y: -1}})
	m.Push(Event{Action: ActionLook, Phase: PhasePerformed, Value: rl.Vector2{X: 3}})
	m.Push(Event{Action: ActionSprint, Phase: PhasePerformed})
	m.Push(Event{Action: ActionPoint, Phase: PhasePerformed, Value: rl.Vector2{X: 640, Y: 360}})
	m.Flush()

	if s.Move() != (rl.Vector2{X: 1, Y: -1}) {
		t.Errorf("Unexpected move %v", s.Move())
	}
	if s.Look().X != 3 || !s.Sprint() || s.Pointer().X != 640 {
		t.Error("Values not sampled")
	}

	m.Push(Event{Action: ActionMove, Phase: PhaseCanceled})
	m.Push(Event{Action: ActionLook, Phase: PhaseCanceled})
	m.Push(Event{Action: ActionSprint, Phase: PhaseCanceled})
	m.Flush()

	if s.Move() != (rl.Vector2{}) || s.Look() != (rl.Vector2{}) || s.Sprint() {
		t.Error("Canceled actions should reset to zero")
	}
	if s.Pointer().X != 640 {
		t.Error("Pointer keeps its last value")
	}
}

func TestSamplerPulsesConsumeOnce(t *testing.T) {
	m, s := boundSampler(ActionJump, ActionFire, ActionReload)

	m.Push(Event{Action: ActionJump, Phase: PhaseStarted})
	m.Push(Event{Action: ActionFire, Phase: PhasePerformed})
	m.Push(Event{Action: ActionFire, Phase: PhasePerformed})
	m.Push(Event{Action: ActionReload, Phase: PhasePerformed})
	m.Flush()

	if !s.ConsumeJump() || s.ConsumeJump() {
		t.Error("Jump should be consumed exactly once")
	}
	if !s.ConsumeFire() || s.ConsumeFire() {
		t.Error("Two fire events in one tick are one pulse")
	}
	if !s.ConsumeReload() || s.ConsumeReload() {
		t.Error("Reload should be consumed exactly once")
	}
}

func TestSamplerIgnoresUnlistenedPhases(t *testing.T) {
	m, s := boundSampler(ActionJump, ActionFire)

	m.Push(Event{Action: ActionJump, Phase: PhasePerformed})
	m.Push(Event{Action: ActionFire, Phase: PhaseStarted})
	m.Flush()

	if s.ConsumeJump() || s.ConsumeFire() {
		t.Error("Only subscribed edges should pulse")
	}
}

func TestSamplerAimTransitions(t *testing.T) {
	m, s := boundSampler(ActionAim)

	if s.ConsumeAim() != AimNone {
		t.Error("Expected no transition initially")
	}

	m.Push(Event{Action: ActionAim, Phase: PhasePerformed})
	m.Flush()
	if !s.Aiming() {
		t.Error("Expected aiming")
	}
	if s.ConsumeAim() != AimStart || s.ConsumeAim() != AimNone {
		t.Error("Expected a single AimStart")
	}

	// press and release inside one tick: level is off, last edge wins
	m.Push(Event{Action: ActionAim, Phase: PhasePerformed})
	m.Push(Event{Action: ActionAim, Phase: PhaseCanceled})
	m.Flush()
	if s.Aiming() {
		t.Error("Expected not aiming")
	}
	if s.ConsumeAim() != AimCancel {
		t.Error("Expected AimCancel")
	}
}

func TestSamplerUnbind(t *testing.T) {
	m, s := boundSampler(ActionMove, ActionFire)
	other := NewSampler(ActionFire)
	other.Bind(m)

	m.Push(Event{Action: ActionMove, Phase: PhasePerformed, Value: rl.Vector2{X: 1}})
	m.Flush()

	s.Unbind()
	if s.Bound() {
		t.Error("Expected unbound")
	}
	if s.Move() != (rl.Vector2{}) {
		t.Error("Unbind should clear held values")
	}
	if m.SubscriptionCount() != 1 {
		t.Errorf("Only the other sampler's subscription should remain, got %d", m.SubscriptionCount())
	}

	m.Push(Event{Action: ActionFire, Phase: PhasePerformed})
	m.Flush()
	if s.ConsumeFire() {
		t.Error("Unbound sampler should not receive events")
	}
	if !other.ConsumeFire() {
		t.Error("Other sampler should still receive events")
	}
}

func TestSamplerRebind(t *testing.T) {
	a := NewActionMap()
	b := NewActionMap()
	a.Enable()
	b.Enable()

	s := NewSampler(ActionFire)
	s.Bind(a)
	s.Bind(b)

	if a.SubscriptionCount() != 0 || b.SubscriptionCount() != 1 {
		t.Errorf("Rebinding should move the subscription, a=%d b=%d", a.SubscriptionCount(), b.SubscriptionCount())
	}

	s.Bind(nil)
	if s.Bound() || b.SubscriptionCount() != 0 {
		t.Error("Binding nil should unbind")
	}
}

func TestSamplerReset(t *testing.T) {
	m, s := boundSampler(ActionSprint, ActionAim, ActionJump)

	m.Push(Event{Action: ActionSprint, Phase: PhasePerformed})
	m.Push(Event{Action: ActionAim, Phase: PhasePerformed})
	m.Push(Event{Action: ActionJump, Phase: PhaseStarted})
	m.Flush()

	s.Reset()
	if s.Sprint() || s.Aiming() || s.ConsumeJump() || s.ConsumeAim() != AimNone {
		t.Error("Reset should clear values and pulses")
	}
	if !s.Bound() {
		t.Error("Reset should keep the binding")
	}
}
