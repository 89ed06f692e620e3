package biquad

import (
	"math"
	"testing"
)

func TestPassthroughSection(t *testing.T) {
	s := NewSection(Passthrough)
	for i, x := range []float64{1, -0.5, 0.25, 0} {
		if got := s.ProcessSample(x); got != x {
			t.Fatalf("sample %d mismatch: got=%g want=%g", i, got, x)
		}
	}
}

func TestProcessBlockMatchesSample(t *testing.T) {
	c := Coefficients{B0: 0.2, B1: 0.4, B2: 0.2, A1: -0.3, A2: 0.1}
	a := NewSection(c)
	b := NewSection(c)

	in := []float64{1, 0, 0, 0.5, -0.25, 0.75, 0, 0}
	block := append([]float64(nil), in...)
	b.ProcessBlock(block)

	for i, x := range in {
		want := a.ProcessSample(x)
		if diff := math.Abs(block[i] - want); diff > 1e-15 {
			t.Fatalf("sample %d mismatch: got=%g want=%g diff=%g", i, block[i], want, diff)
		}
	}
}

func TestSectionReset(t *testing.T) {
	s := NewSection(Coefficients{B0: 1, B1: 1, A1: -0.5})
	s.ProcessSample(1)
	s.Reset()
	if s.State() != [2]float64{} {
		t.Fatalf("state after reset = %v", s.State())
	}
}

func TestChainCascade(t *testing.T) {
	half := Coefficients{B0: 0.5}
	c := NewChain([]Coefficients{half, half})
	if c.NumSections() != 2 {
		t.Fatalf("sections = %d, want 2", c.NumSections())
	}
	if got := c.ProcessSample(1); got != 0.25 {
		t.Fatalf("got %g, want 0.25", got)
	}

	buf := []float64{1, 2}
	c.ProcessBlock(buf)
	if buf[0] != 0.25 || buf[1] != 0.5 {
		t.Fatalf("block = %v", buf)
	}

	c.UpdateCoefficients([]Coefficients{Passthrough})
	if got := c.ProcessSample(3); got != 3 {
		t.Fatalf("after update got %g, want 3", got)
	}
}
