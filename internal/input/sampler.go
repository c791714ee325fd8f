package input

import rl "github.com/gen2brain/raylib-go/raylib"

// AimTransition is a pending change of the aim button, kept separate from
// the level so a press-and-release inside one tick is still seen.
type AimTransition int

const (
	AimNone AimTransition = iota
	AimStart
	AimCancel
)

// phasesFor lists the edges a Sampler listens to for each action.
var phasesFor = map[Action][]Phase{
	ActionPoint:  {PhasePerformed},
	ActionMove:   {PhasePerformed, PhaseCanceled},
	ActionLook:   {PhasePerformed, PhaseCanceled},
	ActionJump:   {PhaseStarted},
	ActionSprint: {PhasePerformed, PhaseCanceled},
	ActionAim:    {PhasePerformed, PhaseCanceled},
	ActionFire:   {PhasePerformed},
	ActionReload: {PhasePerformed},
}

// Sampler holds the latest sampled value of a set of actions.
type Sampler struct {
	actions []Action
	bound   *ActionMap
	subs    []Subscription

	pointer rl.Vector2
	move    rl.Vector2
	look    rl.Vector2
	sprint  bool
	aiming  bool

	jump   bool
	fire   bool
	reload bool
	aim    AimTransition
}

// NewSampler creates a sampler for the given actions.
func NewSampler(actions ...Action) *Sampler {
	return &Sampler{actions: actions}
}

// Bind subscribes to m. Binding again first releases the old subscriptions.
func (s *Sampler) Bind(m *ActionMap) {
	s.Unbind()
	if m == nil {
		return
	}
	s.bound = m
	for _, a := range s.actions {
		for _, p := range phasesFor[a] {
			s.subs = append(s.subs, m.Subscribe(a, p, s.Apply))
		}
	}
}

// Unbind removes exactly the subscriptions Bind made and clears held state.
func (s *Sampler) Unbind() {
	if s.bound != nil {
		for _, sub := range s.subs {
			s.bound.Unsubscribe(sub)
		}
	}
	s.bound = nil
	s.subs = s.subs[:0]
	s.Reset()
}

func (s *Sampler) Bound() bool {
	return s.bound != nil
}

// Reset clears every value and pending pulse.
func (s *Sampler) Reset() {
	s.pointer = rl.Vector2{}
	s.move = rl.Vector2{}
	s.look = rl.Vector2{}
	s.sprint = false
	s.aiming = false
	s.jump = false
	s.fire = false
	s.reload = false
	s.aim = AimNone
}

// Apply folds one event into the sampled state.
func (s *Sampler) Apply(e Event) {
	switch e.Action {
	case ActionPoint:
		if e.Phase == PhasePerformed {
			s.pointer = e.Value
		}
	case ActionMove:
		if e.Phase == PhaseCanceled {
			s.move = rl.Vector2{}
		} else {
			s.move = e.Value
		}
	case ActionLook:
		if e.Phase == PhaseCanceled {
			s.look = rl.Vector2{}
		} else {
			s.look = e.Value
		}
	case ActionJump:
		if e.Phase == PhaseStarted {
			s.jump = true
		}
	case ActionSprint:
		s.sprint = e.Phase != PhaseCanceled
	case ActionAim:
		if e.Phase == PhaseCanceled {
			s.aiming = false
			s.aim = AimCancel
		} else {
			s.aiming = true
			s.aim = AimStart
		}
	case ActionFire:
		if e.Phase == PhasePerformed {
			s.fire = true
		}
	case ActionReload:
		if e.Phase == PhasePerformed {
			s.reload = true
		}
	}
}

func (s *Sampler) Pointer() rl.Vector2 { return s.pointer }
func (s *Sampler) Move() rl.Vector2    { return s.move }
func (s *Sampler) Look() rl.Vector2    { return s.look }
func (s *Sampler) Sprint() bool        { return s.sprint }
func (s *Sampler) Aiming() bool        { return s.aiming }

// ConsumeJump returns the pending jump request and clears it.
func (s *Sampler) ConsumeJump() bool {
	v := s.jump
	s.jump = false
	return v
}

func (s *Sampler) ConsumeFire() bool {
	v := s.fire
	s.fire = false
	return v
}

func (s *Sampler) ConsumeReload() bool {
	v := s.reload
	s.reload = false
	return v
}

// ConsumeAim returns the last aim transition since the previous call.
func (s *Sampler) ConsumeAim() AimTransition {
	v := s.aim
	s.aim = AimNone
	return v
}
