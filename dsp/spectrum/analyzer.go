package spectrum

import (
	"fmt"

	algofft "github.com/MeKo-Christian/algo-fft"

	"github.com/Darbouka/VRMusic-Studio-sub002/dsp/window"
)

// Analyzer computes one-sided magnitude spectra of fixed-size real frames.
// Every buffer is allocated up front, so Analyze is safe on the audio thread.
type Analyzer struct {
	size   int
	plan   *algofft.Plan[complex128]
	window []float64
	frame  []float64
	bins   []complex128
	re, im []float64
	mag    []float64
}

// NewAnalyzer returns an Analyzer for frames of size samples with a periodic
// Hann window. size must be a power of two >= 2.
func NewAnalyzer(size int) (*Analyzer, error) {
	if size < 2 || size&(size-1) != 0 {
		return nil, fmt.Errorf("spectrum: analyzer size must be a power of two >= 2: %d", size)
	}

	plan, err := algofft.NewPlan64(size)
	if err != nil {
		return nil, fmt.Errorf("spectrum: fft plan: %w", err)
	}

	win, err := window.Hann(size, window.WithPeriodic())
	if err != nil {
		return nil, err
	}

	half := size/2 + 1
	return &Analyzer{
		size:   size,
		plan:   plan,
		window: win,
		frame:  make([]float64, size),
		bins:   make([]complex128, size),
		re:     make([]float64, half),
		im:     make([]float64, half),
		mag:    make([]float64, half),
	}, nil
}

// Size returns the frame length.
func (a *Analyzer) Size() int { return a.size }

// Analyze windows frame, transforms it and returns the one-sided magnitude
// spectrum (Size()/2+1 bins). The returned slice is owned by the Analyzer and
// overwritten by the next call.
func (a *Analyzer) Analyze(frame []float64) ([]float64, error) {
	if len(frame) != a.size {
		return nil, fmt.Errorf("spectrum: frame length %d, want %d", len(frame), a.size)
	}

	if err := window.ApplyCoefficients(a.frame, frame, a.window); err != nil {
		return nil, err
	}
	for i, v := range a.frame {
		a.bins[i] = complex(v, 0)
	}

	if err := a.plan.Forward(a.bins, a.bins); err != nil {
		return nil, fmt.Errorf("spectrum: forward fft: %w", err)
	}

	splitComplex(a.re, a.im, a.bins[:len(a.re)])
	MagnitudeFromParts(a.mag, a.re, a.im)

	return a.mag, nil
}
