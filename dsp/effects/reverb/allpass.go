package reverb

import "github.com/Darbouka/VRMusic-Studio-sub002/dsp/buffer"

// AllpassFilter is a Schroeder allpass diffuser.
type AllpassFilter struct {
	ring     *buffer.Ring[float32]
	feedback float32
}

// NewAllpassFilter returns an allpass of fixed length.
func NewAllpassFilter(length int) *AllpassFilter {
	return &AllpassFilter{
		ring:     buffer.NewRing[float32](length),
		feedback: allpassFeedback,
	}
}

// Process runs one sample through the allpass.
func (a *AllpassFilter) Process(input float32) float32 {
	bufOut := a.ring.Current()
	out := bufOut - input
	a.ring.Set(input + bufOut*a.feedback)
	a.ring.Advance()
	return out
}

// Len returns the delay length.
func (a *AllpassFilter) Len() int { return a.ring.Len() }

// Reset clears the delay line.
func (a *AllpassFilter) Reset() { a.ring.Reset() }
