package dynamics

import (
	"math"

	"github.com/Darbouka/VRMusic-Studio-sub002/dsp/core"
)

type onePoleLowPass struct {
	alpha float64
	state float64
}

func (f *onePoleLowPass) Configure(cutoffHz, sampleRate float64) {
	f.alpha = 1.0 - mathExp(-2.0*math.Pi*cutoffHz/sampleRate)
}

func (f *onePoleLowPass) Process(x float64) float64 {
	f.state = core.FlushDenormals(f.state + f.alpha*(x-f.state))
	return f.state
}

func (f *onePoleLowPass) Reset() {
	f.state = 0
}

// onePoleHighPass is the complement of a one-pole lowpass. It conditions
// the sidechain key before detection.
type onePoleHighPass struct {
	lp onePoleLowPass
}

func (f *onePoleHighPass) Configure(cutoffHz, sampleRate float64) {
	f.lp.Configure(cutoffHz, sampleRate)
}

func (f *onePoleHighPass) Process(x float64) float64 {
	return x - f.lp.Process(x)
}

func (f *onePoleHighPass) Reset() {
	f.lp.Reset()
}
