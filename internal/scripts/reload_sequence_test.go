package scripts

import (
	"testing"

	"fpsrig/internal/engine"

	rl "github.com/gen2brain/raylib-go/raylib"
)

func TestReloadSequencePhases(t *testing.T) {
	seq := NewReloadSequence(1, rl.Vector3{X: 40})
	rest := rl.QuaternionIdentity()

	if !seq.Begin(rest) {
		t.Fatal("Begin should start an idle sequence")
	}
	if seq.Begin(rest) {
		t.Error("Begin while active should be rejected")
	}

	// 40 degrees in half a second
	q, refill, done := seq.Step(rest, 0.1)
	if refill || done {
		t.Fatal("First step should only rotate")
	}
	if moved := engine.QuaternionAngle(rest, q); !near(moved, 8, 0.05) {
		t.Errorf("Expected 8 degrees after 0.1s, got %f", moved)
	}
	if p := seq.Progress(q); !near(p, 0.1, 0.01) {
		t.Errorf("Expected progress 0.1, got %f", p)
	}

	refills := 0
	for i := 0; i < 100 && seq.Active(); i++ {
		q, refill, done = seq.Step(q, 0.1)
		if refill {
			refills++
			// the raise starts on the refill tick, one 8 degree step
			if engine.QuaternionAngle(q, seq.Lowered) > 8.5 {
				t.Error("Refill should happen with the weapon lowered")
			}
		}
		if done && seq.Active() {
			t.Error("Sequence should be idle once done")
		}
	}

	if seq.Active() {
		t.Fatal("Sequence did not finish")
	}
	if refills != 1 {
		t.Errorf("Expected one refill, got %d", refills)
	}
	if angle := engine.QuaternionAngle(rest, q); angle > reloadTolerance {
		t.Errorf("Expected return to rest, off by %f", angle)
	}
}

func TestReloadSequenceZeroDuration(t *testing.T) {
	seq := NewReloadSequence(0, rl.Vector3{X: 40})
	rest := rl.QuaternionIdentity()
	seq.Begin(rest)

	q, refill, done := seq.Step(rest, 0.016)
	if refill || done {
		t.Fatal("Zero duration still takes a tick per phase")
	}
	q, refill, _ = seq.Step(q, 0.016)
	if !refill {
		t.Error("Second tick should refill")
	}
	_, _, done = seq.Step(q, 0.016)
	if !done {
		t.Error("Third tick should finish")
	}
}

func TestReloadSequenceIdleStep(t *testing.T) {
	var seq ReloadSequence
	rest := rl.QuaternionIdentity()

	q, refill, done := seq.Step(rest, 1)
	if refill || done || q != rest {
		t.Error("Idle sequence should not do anything")
	}
	if seq.Progress(rest) != 0 {
		t.Error("Idle progress should be 0")
	}
}
