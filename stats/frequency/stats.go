// Package frequency computes shape descriptors of one-sided magnitude spectra
// (bins 0..Nyquist, linear scale).
package frequency

import "math"

// binFreq returns the frequency in Hz of a given bin index.
// fftSize = 2 * (binCount - 1).
func binFreq(i int, sampleRate float64, binCount int) float64 {
	return float64(i) * sampleRate / float64(2*(binCount-1))
}

// Centroid returns the magnitude-weighted mean frequency in Hz.
// Returns 0 for spectra with fewer than two bins or no energy.
func Centroid(magnitude []float64, sampleRate float64) float64 {
	n := len(magnitude)
	if n < 2 {
		return 0
	}

	var sum, weighted float64
	for i, v := range magnitude {
		sum += v
		weighted += v * binFreq(i, sampleRate, n)
	}
	if sum == 0 {
		return 0
	}

	return weighted / sum
}

// Flatness returns the spectral flatness (Wiener entropy) in [0, 1]: the
// ratio of geometric to arithmetic mean over bins 1..N-1. White noise is near
// 1 and a pure tone near 0. The DC bin is skipped.
func Flatness(magnitude []float64) float64 {
	n := len(magnitude)
	if n < 2 {
		return 0
	}

	nBins := n - 1
	sumLin := 0.0
	sumLog := 0.0

	for i := 1; i < n; i++ {
		v := magnitude[i]
		if v <= 0 {
			// Any empty bin makes the geometric mean zero.
			return 0
		}
		sumLin += v
		sumLog += math.Log(v)
	}

	meanLin := sumLin / float64(nBins)
	geoMean := math.Exp(sumLog / float64(nBins))

	return geoMean / meanLin
}
