package scripts

import (
	"fpsrig/internal/engine"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// reloadTolerance is how close, in degrees, the weapon has to get to a
// phase target before the phase ends.
const reloadTolerance = 0.1

type reloadPhase int

const (
	reloadIdle reloadPhase = iota
	reloadLowering
	reloadRaising
)

func (p reloadPhase) String() string {
	switch p {
	case reloadLowering:
		return "lowering"
	case reloadRaising:
		return "raising"
	}
	return "idle"
}

// ReloadSequence lowers the weapon model, signals the refill, and raises it
// back. It is advanced once per tick with Step and keeps all of its progress
// in fields, so it can run across any number of ticks.
type ReloadSequence struct {
	Duration float32
	Lowered  rl.Quaternion

	phase    reloadPhase
	target   rl.Quaternion
	original rl.Quaternion
	speed    float32 // degrees per second for the current phase
	initial  float32 // angle to target when the phase began
}

// NewReloadSequence lowers to the given Euler orientation in degrees.
func NewReloadSequence(duration float32, lowered rl.Vector3) ReloadSequence {
	return ReloadSequence{
		Duration: duration,
		Lowered:  rl.QuaternionFromEuler(lowered.X*rl.Deg2rad, lowered.Y*rl.Deg2rad, lowered.Z*rl.Deg2rad),
	}
}

// Active reports whether a sequence is in progress.
func (r *ReloadSequence) Active() bool {
	return r.phase != reloadIdle
}

// Begin starts lowering from current. The raise phase returns to current.
// Does nothing if a sequence is already running.
func (r *ReloadSequence) Begin(current rl.Quaternion) bool {
	if r.Active() {
		return false
	}
	r.original = current
	r.enter(reloadLowering, current, r.Lowered)
	return true
}

// Cancel drops the sequence where it is.
func (r *ReloadSequence) Cancel() {
	r.phase = reloadIdle
}

func (r *ReloadSequence) enter(phase reloadPhase, from, to rl.Quaternion) {
	r.phase = phase
	r.target = to
	r.initial = engine.QuaternionAngle(from, to)
	if r.Duration > 0 {
		r.speed = r.initial / r.Duration * 2
	} else {
		r.speed = 0
	}
}

// Step advances one tick from the weapon's current orientation. It returns
// the orientation to apply, whether the magazine refills on this tick, and
// whether the sequence finished on this tick.
func (r *ReloadSequence) Step(current rl.Quaternion, dt float32) (next rl.Quaternion, refill, done bool) {
	for {
		switch r.phase {
		case reloadLowering:
			if engine.QuaternionAngle(current, r.target) > reloadTolerance {
				return r.rotate(current, dt), refill, false
			}
			refill = true
			r.enter(reloadRaising, current, r.original)
		case reloadRaising:
			if engine.QuaternionAngle(current, r.target) > reloadTolerance {
				return r.rotate(current, dt), refill, false
			}
			r.phase = reloadIdle
			return current, refill, true
		default:
			return current, false, false
		}
	}
}

func (r *ReloadSequence) rotate(current rl.Quaternion, dt float32) rl.Quaternion {
	if r.Duration <= 0 {
		return r.target
	}
	return engine.RotateTowards(current, r.target, dt*r.speed)
}

// Progress is 0 at the start of the sequence, 0.5 at the refill and 1 when
// the weapon is back up. current is the weapon's orientation.
func (r *ReloadSequence) Progress(current rl.Quaternion) float32 {
	var base float32
	switch r.phase {
	case reloadLowering:
	case reloadRaising:
		base = 0.5
	default:
		return 0
	}
	if r.initial <= 0 {
		return base + 0.5
	}
	left := engine.QuaternionAngle(current, r.target) / r.initial
	if left > 1 {
		left = 1
	}
	return base + 0.5*(1-left)
}
