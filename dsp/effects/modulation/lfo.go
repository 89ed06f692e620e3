package modulation

import (
	"math"

	"github.com/Darbouka/VRMusic-Studio-sub002/dsp/core"
)

// LFO is a phase accumulator that blends a raised sine with a square wave.
// Phase stays in [0, 1).
type LFO struct {
	phase float64
	shape float64
}

// Phase returns the current phase in [0, 1).
func (l *LFO) Phase() float64 { return l.phase }

// SetShape sets the square blend in [0, 1]; 0 is a pure sine.
func (l *LFO) SetShape(shape float64) { l.shape = min(max(shape, 0), 1) }

// Reset rewinds the phase to 0.
func (l *LFO) Reset() { l.phase = 0 }

// Advance moves the phase by rateHz/sampleRate, wrapped modulo 1.
func (l *LFO) Advance(rateHz, sampleRate float64) {
	l.phase = core.WrapPhase(l.phase + rateHz/sampleRate)
}

// Value returns the waveform in [0, 1] at the current phase plus offset
// cycles.
func (l *LFO) Value(offset float64) float64 {
	p := core.WrapPhase(l.phase + offset)

	sine := 0.5 + 0.5*math.Sin(2*math.Pi*p)
	square := 0.0
	if p < 0.5 {
		square = 1
	}
	return l.shape*square + (1-l.shape)*sine
}
