package time

import (
	"math"
	"testing"
)

const tolerance = 1e-10

// generateSine creates exactly numCycles full cycles of a sine wave.
func generateSine(amplitude, freq, sampleRate float64, numCycles int) []float64 {
	samplesPerCycle := int(sampleRate / freq)
	n := samplesPerCycle * numCycles
	out := make([]float64, n)
	for i := range out {
		out[i] = amplitude * math.Sin(2*math.Pi*freq*float64(i)/sampleRate)
	}
	return out
}

func TestRMSAndPeakOfSine(t *testing.T) {
	s := generateSine(1, 100, 48000, 10)
	if got := RMS(s); math.Abs(got-1/math.Sqrt2) > 1e-6 {
		t.Fatalf("RMS = %v, want %v", got, 1/math.Sqrt2)
	}
	if got := Peak(s); math.Abs(got-1) > 1e-6 {
		t.Fatalf("Peak = %v, want 1", got)
	}
	if got := CrestFactor(s); math.Abs(got-math.Sqrt2) > 1e-5 {
		t.Fatalf("CrestFactor = %v, want sqrt2", got)
	}
}

func TestEmptySignals(t *testing.T) {
	if RMS([]float32{}) != 0 || Peak([]float64{}) != 0 || DC([]float32{}) != 0 || CrestFactor([]float64{}) != 0 {
		t.Fatal("expected zero statistics for empty input")
	}
	st := Calculate([]float64{})
	if !math.IsInf(st.RMS_dB, -1) || st.Length != 0 {
		t.Fatalf("unexpected empty stats: %+v", st)
	}
}

func TestDCFloat32(t *testing.T) {
	if got := DC([]float32{0.5, 0.5, -0.5, 1.5}); math.Abs(got-0.5) > tolerance {
		t.Fatalf("DC = %v, want 0.5", got)
	}
}

func TestCorrelation(t *testing.T) {
	a := generateSine(1, 100, 48000, 2)
	b := make([]float64, len(a))
	for i := range a {
		b[i] = -0.5 * a[i]
	}
	if got := Correlation(a, a); math.Abs(got-1) > 1e-12 {
		t.Fatalf("self correlation = %v, want 1", got)
	}
	if got := Correlation(a, b); math.Abs(got+1) > 1e-12 {
		t.Fatalf("inverted correlation = %v, want -1", got)
	}
	if got := Correlation(a, make([]float64, len(a))); got != 0 {
		t.Fatalf("correlation with silence = %v, want 0", got)
	}
}

func TestStereoCorrelation(t *testing.T) {
	buf := []float32{1, 1, -1, -1, 0.5, 0.5, -0.5, -0.5}
	if got := StereoCorrelation(buf, 4); math.Abs(got-1) > 1e-12 {
		t.Fatalf("mono-compatible correlation = %v, want 1", got)
	}
	for i := 1; i < len(buf); i += 2 {
		buf[i] = -buf[i]
	}
	if got := StereoCorrelation(buf, 4); math.Abs(got+1) > 1e-12 {
		t.Fatalf("phase-inverted correlation = %v, want -1", got)
	}
	if StereoCorrelation(buf, 0) != 0 {
		t.Fatal("expected 0 for no frames")
	}
}

func TestStreamingMatchesCalculate(t *testing.T) {
	s := generateSine(0.8, 440, 44100, 20)
	want := Calculate(s)

	ss := NewStreamingStats[float64]()
	for start := 0; start < len(s); start += 97 {
		ss.Update(s[start:min(start+97, len(s))])
	}
	got := ss.Result()

	if got.Length != want.Length || got.ZeroCrossings != want.ZeroCrossings {
		t.Fatalf("streaming counts differ: got %+v want %+v", got, want)
	}
	if math.Abs(got.RMS-want.RMS) > tolerance || math.Abs(got.Peak-want.Peak) > tolerance {
		t.Fatalf("streaming stats differ: got %+v want %+v", got, want)
	}

	ss.Reset()
	if ss.Result().Length != 0 {
		t.Fatal("reset did not clear state")
	}
}
