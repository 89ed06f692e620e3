package reverb

import (
	"math"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/Darbouka/VRMusic-Studio-sub002/dsp/core"
	"github.com/Darbouka/VRMusic-Studio-sub002/dsp/delay"
	"github.com/Darbouka/VRMusic-Studio-sub002/dsp/filter/biquad"
	"github.com/Darbouka/VRMusic-Studio-sub002/dsp/filter/design"
	"github.com/Darbouka/VRMusic-Studio-sub002/dsp/param"
	"github.com/Darbouka/VRMusic-Studio-sub002/dsp/plugin"
)

// Name is the effect type name.
const Name = "reverb"

// Parameter indices, in declaration order.
const (
	pRoomSize = iota
	pDamping
	pWidth
	pWetLevel
	pDryLevel
	pFreeze
	pMix
	pStereoWidth
	pPreDelay
	pLowCut
	pHighCut
	pDiffusion
	pDensity
)

const (
	maxPreDelaySeconds = 0.1

	lowCutMinHz  = 20.0
	lowCutMaxHz  = 1000.0
	highCutMinHz = 1000.0
	highCutMaxHz = 20000.0
)

func descriptors() []param.Descriptor {
	return []param.Descriptor{
		param.Unit("roomSize", 0.5),
		param.Unit("damping", 0.5),
		param.Unit("width", 1),
		param.Unit("wetLevel", 0.33),
		param.Unit("dryLevel", 0.4),
		param.Unit("freeze", 0),
		param.Unit("mix", 0.5),
		param.Unit("stereoWidth", 0.5),
		param.Unit("preDelay", 0),
		param.Unit("lowCut", 0),
		param.Unit("highCut", 1),
		param.Unit("diffusion", 0.5),
		param.Unit("density", 0.5),
	}
}

func presets() []plugin.Preset {
	return []plugin.Preset{
		{Name: plugin.PresetStandard, Values: map[string]float32{
			"roomSize": 0.5, "damping": 0.5, "width": 0.5,
			"wetLevel": 0.33, "dryLevel": 0.4, "freeze": 0, "mix": 0.5,
		}},
		{Name: plugin.PresetHeavy, Values: map[string]float32{
			"roomSize": 0.9, "damping": 0.3, "width": 1,
			"wetLevel": 0.5, "dryLevel": 0.3, "freeze": 0, "mix": 0.7,
		}},
		{Name: plugin.PresetSubtle, Values: map[string]float32{
			"roomSize": 0.25, "damping": 0.7, "width": 0.3,
			"wetLevel": 0.2, "dryLevel": 0.6, "freeze": 0, "mix": 0.25,
		}},
	}
}

// Reverb is a stereo Schroeder/Freeverb reverberator. The comb bank is fed
// the mono average of both channels.
//
// Room-size changes resize the comb buffers on the control thread under mu.
// ProcessAudio only tries the lock and leaves a contended block dry.
type Reverb struct {
	*plugin.Base

	mu        sync.Mutex
	combs     [numCombs]*CombFilter
	allpasses [numAllpasses]*AllpassFilter
	preDelay  *delay.Line
	roomSize  float64

	lowCut      *biquad.Section
	highCut     *biquad.Section
	lowCutHz    float64
	highCutHz   float64
	lowActive   bool
	highActive  bool
	ready       bool
	sampleRate  float64
	maxPreDelay int
}

var _ plugin.Effect = (*Reverb)(nil)

// New returns a reverb with default parameters. Call Initialize before
// processing.
func New(opts ...plugin.Option) *Reverb {
	r := &Reverb{
		Base:     plugin.NewBase(Name, param.MustNew(descriptors()...), presets(), opts...),
		roomSize: -1,
	}
	r.OnChange(func(name string) {
		if name == "" || name == "roomSize" {
			r.applyRoomSize()
		}
	})
	return r
}

// Initialize allocates the comb, allpass and pre-delay buffers.
func (r *Reverb) Initialize(cfg core.ProcessorConfig) error {
	if err := r.Prepare(cfg); err != nil {
		return err
	}

	r.mu.Lock()
	for i, base := range combTunings {
		r.combs[i] = NewCombFilter(base)
	}
	for i, length := range allpassTunings {
		r.allpasses[i] = NewAllpassFilter(length)
	}

	r.sampleRate = cfg.SampleRate
	r.maxPreDelay = int(math.Ceil(maxPreDelaySeconds * cfg.SampleRate))
	line, err := delay.New(r.maxPreDelay + 1)
	if err != nil {
		r.mu.Unlock()
		return &plugin.InitError{Effect: Name, Err: err}
	}
	r.preDelay = line
	r.lowCut = biquad.NewSection(biquad.Passthrough)
	r.highCut = biquad.NewSection(biquad.Passthrough)
	r.lowCutHz, r.highCutHz = 0, 0
	r.lowActive, r.highActive = false, false
	r.roomSize = -1
	r.ready = true
	r.mu.Unlock()

	r.applyRoomSize()
	r.Activate()
	return nil
}

// Shutdown releases all buffers.
func (r *Reverb) Shutdown() {
	r.Deactivate()

	r.mu.Lock()
	defer r.mu.Unlock()
	r.ready = false
	r.combs = [numCombs]*CombFilter{}
	r.allpasses = [numAllpasses]*AllpassFilter{}
	r.preDelay = nil
	r.lowCut, r.highCut = nil, nil
}

// Reset clears the reverb tail without reallocating.
func (r *Reverb) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.ready {
		return
	}
	for _, c := range r.combs {
		c.Reset()
	}
	for _, a := range r.allpasses {
		a.Reset()
	}
	r.preDelay.Reset()
	r.lowCut.Reset()
	r.highCut.Reset()
}

// CombLengths returns the active comb lengths. Control thread only.
func (r *Reverb) CombLengths() []int {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.ready {
		return nil
	}
	out := make([]int, numCombs)
	for i, c := range r.combs {
		out[i] = c.Len()
	}
	return out
}

// EffectiveDamping maps the damping parameter to the comb damping
// coefficient, damping*0.4+0.2 clamped to [0.2, 0.6].
func EffectiveDamping(damping float64) float64 {
	return core.Clamp(damping*0.4+0.2, 0.2, 0.6)
}

func (r *Reverb) applyRoomSize() {
	size := float64(r.Parameter("roomSize"))

	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.ready || size == r.roomSize {
		return
	}
	for _, c := range r.combs {
		c.SetRoomSize(size)
	}
	r.roomSize = size
	r.Logger().WithFields(logrus.Fields{"function": "SetParameter", "roomSize": size}).Debug("comb buffers resized")
}

// updateCutFilters recomputes the wet-path filters when their cutoffs move.
// It runs on the audio thread and does not allocate.
func (r *Reverb) updateCutFilters(v param.Values) (lowOn, highOn bool) {
	nyquistGuard := 0.45 * r.sampleRate

	if lc := v.Float(pLowCut); lc > 0 {
		hz := lowCutMinHz * math.Pow(lowCutMaxHz/lowCutMinHz, lc)
		if hz < nyquistGuard {
			if hz != r.lowCutHz {
				r.lowCut.Coefficients = design.Highpass(hz, 1/math.Sqrt2, r.sampleRate)
				r.lowCutHz = hz
			}
			lowOn = true
		}
	}

	if hc := v.Float(pHighCut); hc < 1 {
		hz := highCutMinHz * math.Pow(highCutMaxHz/highCutMinHz, hc)
		if hz < nyquistGuard {
			if hz != r.highCutHz {
				r.highCut.Coefficients = design.Lowpass(hz, 1/math.Sqrt2, r.sampleRate)
				r.highCutHz = hz
			}
			highOn = true
		}
	}

	// A filter switching back on starts from rest.
	if lowOn && !r.lowActive {
		r.lowCut.Reset()
	}
	if highOn && !r.highActive {
		r.highCut.Reset()
	}
	r.lowActive, r.highActive = lowOn, highOn

	return lowOn, highOn
}

// ProcessAudio reverberates min(frameCount, len(buf)/2) stereo frames in
// place.
func (r *Reverb) ProcessAudio(buf []float32, frameCount int) {
	n := core.Frames(buf, frameCount)
	if n == 0 || !r.Active() || r.Bypassed() {
		return
	}
	if !r.mu.TryLock() {
		return
	}
	defer r.mu.Unlock()
	if !r.ready {
		return
	}

	v := r.Params().Snapshot()
	damp := float32(EffectiveDamping(v.Float(pDamping)))
	for _, c := range r.combs {
		c.SetDamping(damp)
	}

	width := v.At(pWidth)
	wetLevel := v.At(pWetLevel)
	dryLevel := v.At(pDryLevel)
	freezeGain := 1 - v.At(pFreeze)
	mix := v.At(pMix)
	dryGain := dryLevel * (1 - mix)
	wetGain := wetLevel * mix
	preDelay := min(int(math.Round(v.Float(pPreDelay)*maxPreDelaySeconds*r.sampleRate)), r.maxPreDelay)
	lowOn, highOn := r.updateCutFilters(v)

	for i := range n {
		l := core.Sanitize(buf[2*i])
		rr := core.Sanitize(buf[2*i+1])

		in := float32(r.preDelay.Tap(float64((l+rr)*0.5), preDelay))

		var acc float32
		for _, c := range r.combs {
			acc += c.Process(in)
		}

		wet := acc
		for _, a := range r.allpasses {
			wet = a.Process(wet)
		}

		if lowOn {
			wet = float32(r.lowCut.ProcessSample(float64(wet)))
		}
		if highOn {
			wet = float32(r.highCut.ProcessSample(float64(wet)))
		}

		wet *= freezeGain
		side := wet * width
		wetL := wet + side
		wetR := wet - side

		buf[2*i] = l*dryGain + wetL*wetGain
		buf[2*i+1] = rr*dryGain + wetR*wetGain
	}
}
