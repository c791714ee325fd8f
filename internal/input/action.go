// Package input turns device state into ordered action events and per-frame
// sampled values.
//
// Devices push Events into an ActionMap. The game loop calls Flush once per
// tick, which dispatches queued events to subscribers in arrival order.
// Components usually subscribe through a Sampler, which keeps the latest
// value of each action and exposes edge-triggered pulses that can be consumed
// at most once.
package input

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"
)

type Action int

const (
	ActionPoint Action = iota
	ActionMove
	ActionLook
	ActionJump
	ActionSprint
	ActionAim
	ActionFire
	ActionReload
)

var actionNames = [...]string{
	ActionPoint:  "Point",
	ActionMove:   "Move",
	ActionLook:   "Look",
	ActionJump:   "Jump",
	ActionSprint: "Sprint",
	ActionAim:    "Aim",
	ActionFire:   "Fire",
	ActionReload: "Reload",
}

func (a Action) String() string {
	if a >= 0 && int(a) < len(actionNames) {
		return actionNames[a]
	}
	return fmt.Sprintf("Action(%d)", int(a))
}

// Phase is the edge an event reports.
type Phase int

const (
	PhaseStarted Phase = iota
	PhasePerformed
	PhaseCanceled
)

func (p Phase) String() string {
	switch p {
	case PhaseStarted:
		return "Started"
	case PhasePerformed:
		return "Performed"
	case PhaseCanceled:
		return "Canceled"
	}
	return fmt.Sprintf("Phase(%d)", int(p))
}

// Event is one edge on one action. Value carries the 2D payload for Point,
// Move and Look and is zero for buttons.
type Event struct {
	Action Action
	Phase  Phase
	Value  rl.Vector2
}

func (e Event) String() string {
	return fmt.Sprintf("%s.%s(%.2f,%.2f)", e.Action, e.Phase, e.Value.X, e.Value.Y)
}
