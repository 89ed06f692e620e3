package signal

import (
	"errors"
	"math"
	"testing"

	"github.com/Darbouka/VRMusic-Studio-sub002/dsp/core"
)

func TestSineLength(t *testing.T) {
	g := NewGenerator(core.WithSampleRate(48000))
	s, err := g.Sine(1000, 1, 64)
	if err != nil {
		t.Fatalf("Sine() error = %v", err)
	}
	if len(s) != 64 {
		t.Fatalf("len = %d, want 64", len(s))
	}
}

func TestInvalidLength(t *testing.T) {
	g := NewGenerator()
	if _, err := g.Sine(1000, 1, 0); !errors.Is(err, ErrInvalidLength) {
		t.Fatalf("Sine(0) error = %v, want ErrInvalidLength", err)
	}
	if _, err := g.WhiteNoise(1, -1); !errors.Is(err, ErrInvalidLength) {
		t.Fatalf("WhiteNoise(-1) error = %v, want ErrInvalidLength", err)
	}
	if _, err := g.LogSweep(20, 20000, 1, 0); !errors.Is(err, ErrInvalidLength) {
		t.Fatalf("LogSweep(0) error = %v, want ErrInvalidLength", err)
	}
}

func TestWhiteNoiseDeterministic(t *testing.T) {
	g1 := NewGeneratorWithOptions(nil, WithSeed(42))
	g2 := NewGeneratorWithOptions(nil, WithSeed(42))

	n1, err := g1.WhiteNoise(1, 16)
	if err != nil {
		t.Fatalf("WhiteNoise() error = %v", err)
	}
	n2, err := g2.WhiteNoise(1, 16)
	if err != nil {
		t.Fatalf("WhiteNoise() error = %v", err)
	}

	for i := range n1 {
		if n1[i] != n2[i] {
			t.Fatalf("noise mismatch at %d: %v != %v", i, n1[i], n2[i])
		}
		if math.Abs(n1[i]) > 1 {
			t.Fatalf("noise[%d]=%v outside amplitude", i, n1[i])
		}
	}
}

func TestSetSeed(t *testing.T) {
	g := NewGenerator()
	g.SetSeed(99)
	if g.Seed() != 99 {
		t.Fatalf("Seed()=%d, want 99", g.Seed())
	}

	a, err := g.WhiteNoise(1, 8)
	if err != nil {
		t.Fatalf("WhiteNoise() error = %v", err)
	}
	g.SetSeed(100)
	b, err := g.WhiteNoise(1, 8)
	if err != nil {
		t.Fatalf("WhiteNoise() error = %v", err)
	}

	same := true
	for i := range a {
		if a[i] != b[i] {
			same = false
			break
		}
	}
	if same {
		t.Fatal("expected different seeds to produce different noise")
	}
}

func TestImpulse(t *testing.T) {
	g := NewGenerator()
	out, err := g.Impulse(0.75, 8, 3)
	if err != nil {
		t.Fatalf("Impulse() error = %v", err)
	}
	for i, v := range out {
		want := 0.0
		if i == 3 {
			want = 0.75
		}
		if v != want {
			t.Fatalf("out[%d]=%v, want %v", i, v, want)
		}
	}

	if _, err := g.Impulse(1, 8, 8); err == nil {
		t.Fatal("expected error for position past the end")
	}
}

func TestLogSweep(t *testing.T) {
	g := NewGenerator(core.WithSampleRate(48000))
	out, err := g.LogSweep(20, 20000, 0.5, 128)
	if err != nil {
		t.Fatalf("LogSweep() error = %v", err)
	}
	if len(out) != 128 {
		t.Fatalf("len = %d, want 128", len(out))
	}
	if out[0] != 0 {
		t.Fatalf("out[0]=%v, want 0", out[0])
	}
	for i, v := range out {
		if math.Abs(v) > 0.5 {
			t.Fatalf("out[%d]=%v exceeds amplitude", i, v)
		}
	}
}

func TestNormalize(t *testing.T) {
	out, err := Normalize([]float64{-0.5, 1.0, -0.25}, 0.5)
	if err != nil {
		t.Fatalf("Normalize() error = %v", err)
	}
	if out[1] != 0.5 {
		t.Fatalf("peak = %v, want 0.5", out[1])
	}

	silent, err := Normalize([]float64{0, 0}, 1)
	if err != nil {
		t.Fatalf("Normalize() error = %v", err)
	}
	if silent[0] != 0 || silent[1] != 0 {
		t.Fatalf("silent input scaled to %v", silent)
	}
}

func TestStereo(t *testing.T) {
	got := Stereo([]float64{1, 2, 3}, []float64{-1, -2})
	want := []float32{1, -1, 2, -2}
	if len(got) != len(want) {
		t.Fatalf("len = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got[%d]=%v, want %v", i, got[i], want[i])
		}
	}

	mono := Stereo([]float64{0.5}, nil)
	if mono[0] != 0.5 || mono[1] != 0.5 {
		t.Fatalf("mono duplicate = %v", mono)
	}
}
