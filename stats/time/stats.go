// Package time computes time-domain statistics (RMS, peak, crest factor,
// DC, correlation) over host float32 buffers and internal float64 blocks.
package time

import (
	"math"

	"github.com/Darbouka/VRMusic-Studio-sub002/dsp/core"
)

// Stats holds time-domain signal statistics.
//
//nolint:revive
type Stats struct {
	Length         int
	DC             float64 // mean
	RMS            float64
	RMS_dB         float64
	Peak           float64
	Peak_dB        float64
	CrestFactor    float64 // peak / RMS (linear)
	CrestFactor_dB float64
	ZeroCrossings  int
}

// ampTodB converts an amplitude value to decibels: 20 * log10(|value|).
// Returns -Inf for zero values.
func ampTodB(value float64) float64 {
	return core.LinearToDB(math.Abs(value))
}

func emptyStats() Stats {
	return Stats{
		RMS_dB:         math.Inf(-1),
		Peak_dB:        math.Inf(-1),
		CrestFactor_dB: math.Inf(-1),
	}
}

// Calculate computes all statistics in a single pass.
func Calculate[T core.Sample](signal []T) Stats {
	s := StreamingStats[T]{}
	s.Update(signal)
	return s.Result()
}

// RMS returns the root-mean-square of the signal.
func RMS[T core.Sample](signal []T) float64 {
	if len(signal) == 0 {
		return 0
	}

	var sumSq float64
	for _, v := range signal {
		x := float64(v)
		sumSq += x * x
	}

	return math.Sqrt(sumSq / float64(len(signal)))
}

// DC returns the mean (DC offset) of the signal.
func DC[T core.Sample](signal []T) float64 {
	if len(signal) == 0 {
		return 0
	}
	// Kahan summation keeps long blocks accurate.
	var sum, c float64
	for _, v := range signal {
		y := float64(v) - c
		t := sum + y
		c = (t - sum) - y
		sum = t
	}

	return sum / float64(len(signal))
}

// Peak returns the peak absolute amplitude of the signal.
func Peak[T core.Sample](signal []T) float64 {
	var peak float64
	for _, v := range signal {
		peak = max(peak, math.Abs(float64(v)))
	}

	return peak
}

// CrestFactor returns the crest factor (peak / RMS) of the signal.
// Returns 0 if RMS is zero.
func CrestFactor[T core.Sample](signal []T) float64 {
	r := RMS(signal)
	if r == 0 {
		return 0
	}

	return Peak(signal) / r
}

// Correlation returns the Pearson correlation of a and b over their common
// length, in [-1, 1]. Returns 0 when either signal has no variance.
func Correlation[T core.Sample](a, b []T) float64 {
	n := min(len(a), len(b))
	if n == 0 {
		return 0
	}

	ma := DC(a[:n])
	mb := DC(b[:n])

	var sab, saa, sbb float64
	for i := range n {
		da := float64(a[i]) - ma
		db := float64(b[i]) - mb
		sab += da * db
		saa += da * da
		sbb += db * db
	}
	if saa == 0 || sbb == 0 {
		return 0
	}

	return core.Clamp(sab/math.Sqrt(saa*sbb), -1, 1)
}

// StereoCorrelation returns the left/right Pearson correlation of the first
// frames interleaved stereo frames of buf. It does not allocate.
func StereoCorrelation(buf []float32, frames int) float64 {
	n := core.Frames(buf, frames)
	if n == 0 {
		return 0
	}

	var ml, mr float64
	for i := range n {
		ml += float64(buf[2*i])
		mr += float64(buf[2*i+1])
	}
	ml /= float64(n)
	mr /= float64(n)

	var slr, sll, srr float64
	for i := range n {
		dl := float64(buf[2*i]) - ml
		dr := float64(buf[2*i+1]) - mr
		slr += dl * dr
		sll += dl * dl
		srr += dr * dr
	}
	if sll == 0 || srr == 0 {
		return 0
	}

	return core.Clamp(slr/math.Sqrt(sll*srr), -1, 1)
}

// StreamingStats accumulates statistics across successive blocks.
type StreamingStats[T core.Sample] struct {
	n             int
	sum           float64
	sumSq         float64
	peak          float64
	zeroCrossings int
	lastSample    float64
}

// NewStreamingStats creates a new StreamingStats accumulator.
func NewStreamingStats[T core.Sample]() *StreamingStats[T] {
	return &StreamingStats[T]{}
}

// Update adds a block of samples to the running statistics.
func (s *StreamingStats[T]) Update(samples []T) {
	for _, v := range samples {
		x := float64(v)
		s.n++
		s.sum += x
		s.sumSq += x * x
		s.peak = max(s.peak, math.Abs(x))

		if s.n > 1 && s.lastSample*x < 0 {
			s.zeroCrossings++
		}

		s.lastSample = x
	}
}

// Result computes the final statistics from accumulated data.
func (s *StreamingStats[T]) Result() Stats {
	if s.n == 0 {
		return emptyStats()
	}

	nf := float64(s.n)
	rms := math.Sqrt(s.sumSq / nf)

	crest, crestdB := 0.0, math.Inf(-1)
	if rms > 0 {
		crest = s.peak / rms
		crestdB = core.LinearToDB(crest)
	}

	return Stats{
		Length:         s.n,
		DC:             s.sum / nf,
		RMS:            rms,
		RMS_dB:         ampTodB(rms),
		Peak:           s.peak,
		Peak_dB:        ampTodB(s.peak),
		CrestFactor:    crest,
		CrestFactor_dB: crestdB,
		ZeroCrossings:  s.zeroCrossings,
	}
}

// Reset clears all accumulated data, allowing the StreamingStats to be reused.
func (s *StreamingStats[T]) Reset() {
	*s = StreamingStats[T]{}
}
