package testutil

import (
	"math"
	"testing"
)

func TestSine(t *testing.T) {
	s := Sine(1000, 48000, 1.0, 48)
	if len(s) != 48 {
		t.Fatalf("len = %d, want 48", len(s))
	}
	if math.Abs(s[0]) > 1e-15 {
		t.Fatalf("s[0] = %v, want 0", s[0])
	}
	for i, v := range s {
		if v < -1 || v > 1 {
			t.Fatalf("s[%d] = %v out of range", i, v)
		}
	}
}

func TestStereoSineChannelsMatch(t *testing.T) {
	buf := StereoSine(440, 44100, 0.5, 100)
	if len(buf) != 200 {
		t.Fatalf("len = %d, want 200", len(buf))
	}
	for i := range 100 {
		if buf[2*i] != buf[2*i+1] {
			t.Fatalf("frame %d: channels differ (%v, %v)", i, buf[2*i], buf[2*i+1])
		}
	}
}

func TestStereoNoiseReproducible(t *testing.T) {
	a := StereoNoise(42, 1.0, 64)
	b := StereoNoise(42, 1.0, 64)
	c := StereoNoise(43, 1.0, 64)
	same := true
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("non-deterministic at index %d", i)
		}
		if a[i] != c[i] {
			same = false
		}
		if a[i] < -1 || a[i] > 1 {
			t.Fatalf("index %d out of range: %v", i, a[i])
		}
	}
	if same {
		t.Fatal("different seeds produced identical noise")
	}
}

func TestStereoImpulse(t *testing.T) {
	buf := StereoImpulse(8, 3)
	for i, v := range buf {
		want := float32(0)
		if i == 6 || i == 7 {
			want = 1
		}
		if v != want {
			t.Fatalf("index %d = %v, want %v", i, v, want)
		}
	}

	RequireSilent(t, StereoImpulse(8, 8))
	RequireSilent(t, StereoImpulse(8, -1))
}

func TestStereoDC(t *testing.T) {
	for i, v := range StereoDC(0.25, 5) {
		if v != 0.25 {
			t.Fatalf("index %d = %v, want 0.25", i, v)
		}
	}
}

func TestInterleaveAndChannel(t *testing.T) {
	buf := Interleave([]float64{1, 2, 3}, []float64{-1, -2})
	if len(buf) != 4 {
		t.Fatalf("len = %d, want 4", len(buf))
	}
	RequireSliceNearlyEqual(t, Channel(buf, 0), []float32{1, 2}, 0)
	RequireSliceNearlyEqual(t, Channel(buf, 1), []float32{-1, -2}, 0)
}
