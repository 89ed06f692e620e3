package frequency

import (
	"math"
	"testing"
)

const tolerance = 1e-9

func makeSingleBinSpectrum(n, bin int, amplitude float64) []float64 {
	mag := make([]float64, n)
	if bin >= 0 && bin < n {
		mag[bin] = amplitude
	}

	return mag
}

func makeFlatSpectrum(n int, amplitude float64) []float64 {
	mag := make([]float64, n)
	for i := range mag {
		mag[i] = amplitude
	}

	return mag
}

func TestCentroidSingleBin(t *testing.T) {
	// 513 bins -> fftSize 1024; bin 64 at 48 kHz is 3000 Hz.
	mag := makeSingleBinSpectrum(513, 64, 1)
	if got := Centroid(mag, 48000); math.Abs(got-3000) > tolerance {
		t.Fatalf("Centroid() = %v, want 3000", got)
	}
}

func TestCentroidEmpty(t *testing.T) {
	if Centroid(nil, 48000) != 0 {
		t.Fatal("expected 0 for empty spectrum")
	}
	if Centroid(make([]float64, 8), 48000) != 0 {
		t.Fatal("expected 0 for silent spectrum")
	}
}

func TestFlatness(t *testing.T) {
	if got := Flatness(makeFlatSpectrum(64, 0.3)); math.Abs(got-1) > tolerance {
		t.Fatalf("flat spectrum flatness = %v, want 1", got)
	}
	if got := Flatness(makeSingleBinSpectrum(64, 5, 1)); got != 0 {
		t.Fatalf("tone flatness = %v, want 0", got)
	}

	peaky := makeFlatSpectrum(64, 0.01)
	peaky[10] = 10
	if got := Flatness(peaky); got <= 0 || got >= 0.5 {
		t.Fatalf("peaky flatness = %v, want in (0, 0.5)", got)
	}
}
