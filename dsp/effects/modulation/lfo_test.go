package modulation

import (
	"math"
	"testing"
)

func TestLFOValueShapes(t *testing.T) {
	var l LFO
	if got := l.Value(0); math.Abs(got-0.5) > 1e-12 {
		t.Fatalf("sine at phase 0 = %g, want 0.5", got)
	}
	if got := l.Value(0.25); math.Abs(got-1) > 1e-12 {
		t.Fatalf("sine at phase 0.25 = %g, want 1", got)
	}

	l.SetShape(1)
	if got := l.Value(0.1); got != 1 {
		t.Fatalf("square at 0.1 = %g, want 1", got)
	}
	if got := l.Value(0.6); got != 0 {
		t.Fatalf("square at 0.6 = %g, want 0", got)
	}
	if got := l.Value(1.1); got != 1 {
		t.Fatalf("offset should wrap: got %g", got)
	}

	l.SetShape(7)
	if got := l.Value(0.6); got != 0 {
		t.Fatalf("shape should clamp to 1: got %g", got)
	}
}

func TestLFOPhaseWraps(t *testing.T) {
	var l LFO
	for range 100000 {
		l.Advance(17, 1000)
		if p := l.Phase(); p < 0 || p >= 1 {
			t.Fatalf("phase out of range: %g", p)
		}
	}
	l.Reset()
	if l.Phase() != 0 {
		t.Fatalf("phase after reset = %g", l.Phase())
	}
}
