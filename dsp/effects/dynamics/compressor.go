package dynamics

import (
	"math"
	"sync"

	"github.com/Darbouka/VRMusic-Studio-sub002/dsp/core"
	"github.com/Darbouka/VRMusic-Studio-sub002/dsp/delay"
	"github.com/Darbouka/VRMusic-Studio-sub002/dsp/filter/crossover"
	"github.com/Darbouka/VRMusic-Studio-sub002/dsp/param"
	"github.com/Darbouka/VRMusic-Studio-sub002/dsp/plugin"
	"github.com/Darbouka/VRMusic-Studio-sub002/dsp/spectrum"
)

// Name is the effect type name.
const Name = "compressor"

const (
	// epsilon keeps the makeup gain 1/(env+epsilon) finite.
	epsilon = 1e-6

	// envelopeStep scales the attack and release parameters into per-sample
	// smoothing coefficients.
	envelopeStep = 0.1

	spectralFrameSize   = 1024
	sidechainCutoffHz   = 100.0
	maxLookaheadSeconds = 0.005
	crossoverOrder      = 4
)

// crossoverFreqs split the multiband detector into four bands.
var crossoverFreqs = [...]float64{200, 1000, 5000}

const (
	pThreshold = iota
	pRatio
	pAttack
	pRelease
	pMultiband
	pAdaptive
	pSpectral
	pTransient
	pSidechain
	pParallel
	pMidSide
	pLookahead
	pMix
)

func descriptors() []param.Descriptor {
	return []param.Descriptor{
		param.Unit("threshold", 0.5),
		param.Unit("ratio", 0.5),
		param.Unit("attack", 0.5),
		param.Unit("release", 0.5),
		param.Unit("multiband", 0),
		param.Unit("adaptive", 0),
		param.Unit("spectral", 0),
		param.Unit("transient", 0),
		param.Unit("sidechain", 0),
		param.Unit("parallel", 0),
		param.Unit("midSide", 0),
		param.Unit("lookahead", 0),
		param.Unit("mix", 1),
	}
}

func presets() []plugin.Preset {
	return []plugin.Preset{
		{Name: plugin.PresetStandard, Values: map[string]float32{}},
		{Name: plugin.PresetHeavy, Values: map[string]float32{
			"threshold": 0.2, "ratio": 0.2, "attack": 0.9, "release": 0.2,
			"multiband": 0.5, "lookahead": 0.5, "parallel": 0.3,
		}},
		{Name: plugin.PresetSubtle, Values: map[string]float32{
			"threshold": 0.7, "ratio": 0.8, "attack": 0.3, "release": 0.6,
			"parallel": 0.5, "mix": 0.5,
		}},
	}
}

// Compressor is a stereo envelope compressor with optional detector and
// output stages. Every stage is controlled by a [0,1] amount and is skipped
// entirely at 0.
//
// Left and right keep independent envelopes. Per sample the magnitude above
// threshold is scaled by ratio, the envelope follows the shaped signal, and
// the output is normalized by 1/(envelope+epsilon).
type Compressor struct {
	*plugin.Base

	sampleRate float64
	blockSize  int

	env   [core.StereoChannels]float64
	dry   []float32
	look  [core.StereoChannels]*delay.Line
	maxLA int

	keyMu  sync.Mutex
	key    []float32
	keyLen int
	keyHP  [core.StereoChannels]onePoleHighPass

	bands   [core.StereoChannels]*crossover.MultiBand
	bandOut []float64
	bandSq  []float64

	analyzer *spectrum.Analyzer
	mid      []float64
}

var _ plugin.Effect = (*Compressor)(nil)

// New returns a compressor with default parameters. Call Initialize before
// processing.
func New(opts ...plugin.Option) *Compressor {
	return &Compressor{
		Base: plugin.NewBase(Name, param.MustNew(descriptors()...), presets(), opts...),
	}
}

// Initialize preallocates every scratch buffer for cfg.BlockSize frames.
func (c *Compressor) Initialize(cfg core.ProcessorConfig) error {
	if err := c.Prepare(cfg); err != nil {
		return err
	}

	c.sampleRate = cfg.SampleRate
	c.blockSize = cfg.BlockSize
	c.dry = make([]float32, core.StereoChannels*cfg.BlockSize)

	c.maxLA = int(math.Round(maxLookaheadSeconds * cfg.SampleRate))
	for ch := range c.look {
		line, err := delay.New(c.maxLA + 1)
		if err != nil {
			return &plugin.InitError{Effect: Name, Err: err}
		}
		c.look[ch] = line
	}

	c.keyMu.Lock()
	c.key = make([]float32, core.StereoChannels*cfg.BlockSize)
	c.keyLen = 0
	c.keyMu.Unlock()
	for ch := range c.keyHP {
		c.keyHP[ch].Configure(sidechainCutoffHz, cfg.SampleRate)
	}

	// Crossover points at or above 0.45*fs are dropped so low sample rates
	// still initialize.
	freqs := make([]float64, 0, len(crossoverFreqs))
	for _, f := range crossoverFreqs {
		if f < 0.45*cfg.SampleRate {
			freqs = append(freqs, f)
		}
	}
	c.bands = [core.StereoChannels]*crossover.MultiBand{}
	c.bandOut, c.bandSq = nil, nil
	if len(freqs) > 0 {
		for ch := range c.bands {
			split, err := crossover.NewMultiBand(freqs, crossoverOrder, cfg.SampleRate)
			if err != nil {
				return &plugin.InitError{Effect: Name, Err: err}
			}
			c.bands[ch] = split
		}
		c.bandOut = make([]float64, len(freqs)+1)
		c.bandSq = make([]float64, len(freqs)+1)
	}

	analyzer, err := spectrum.NewAnalyzer(spectralFrameSize)
	if err != nil {
		return &plugin.InitError{Effect: Name, Err: err}
	}
	c.analyzer = analyzer
	c.mid = make([]float64, spectralFrameSize)

	c.Reset()
	c.Activate()
	return nil
}

// Shutdown releases all scratch buffers.
func (c *Compressor) Shutdown() {
	c.Deactivate()

	c.dry = nil
	c.look = [core.StereoChannels]*delay.Line{}
	c.bands = [core.StereoChannels]*crossover.MultiBand{}
	c.bandOut, c.bandSq = nil, nil
	c.analyzer = nil
	c.mid = nil

	c.keyMu.Lock()
	c.key = nil
	c.keyLen = 0
	c.keyMu.Unlock()
}

// Reset clears envelopes and all filter state.
func (c *Compressor) Reset() {
	c.env = [core.StereoChannels]float64{}
	for ch := range core.StereoChannels {
		if c.look[ch] != nil {
			c.look[ch].Reset()
		}
		if c.bands[ch] != nil {
			c.bands[ch].Reset()
		}
		c.keyHP[ch].Reset()
	}
}

// SetSidechain copies an interleaved stereo key signal into preallocated
// storage. Samples beyond one block are dropped. The key is consumed from
// frame 0 of every subsequent ProcessAudio call until replaced.
func (c *Compressor) SetSidechain(key []float32) {
	c.keyMu.Lock()
	defer c.keyMu.Unlock()
	if c.key == nil {
		return
	}
	c.keyLen = copy(c.key, key)
	for i := range c.keyLen {
		c.key[i] = core.Sanitize(c.key[i])
	}
}

// Envelopes returns the current left and right detector envelopes.
func (c *Compressor) Envelopes() [core.StereoChannels]float64 {
	return c.env
}

// ProcessAudio compresses min(frameCount, len(buf)/2) stereo frames in
// place. Calls longer than the initialized block size run in chunks.
func (c *Compressor) ProcessAudio(buf []float32, frameCount int) {
	n := core.Frames(buf, frameCount)
	if n == 0 || !c.Active() || c.Bypassed() {
		return
	}

	v := c.Params().Snapshot()

	keyed := false
	if v.At(pSidechain) > 0 && c.keyMu.TryLock() {
		keyed = true
		defer c.keyMu.Unlock()
	}

	for off := 0; off < n; off += c.blockSize {
		frames := min(c.blockSize, n-off)
		c.processBlock(buf[2*off:2*(off+frames)], frames, off, v, keyed)
	}
}

// transfer scales the magnitude of x above threshold by ratio and keeps the
// sign.
func transfer(x, threshold, ratio float64) float64 {
	a := abs(x)
	if a > threshold {
		a = threshold + (a-threshold)*ratio
	}
	if x < 0 {
		return -a
	}
	return a
}

func (c *Compressor) processBlock(block []float32, frames, keyOffset int, v param.Values, keyed bool) {
	for i, x := range block {
		block[i] = core.Sanitize(x)
	}
	dry := c.dry[:len(block)]
	copy(dry, block)

	scale := c.blockScale(dry, frames, v)

	threshold := v.Float(pThreshold)
	ratio := v.Float(pRatio)
	attack := v.Float(pAttack) * envelopeStep
	release := v.Float(pRelease) * envelopeStep

	side := v.Float(pSidechain)
	parallel := v.Float(pParallel)
	midSide := v.Float(pMidSide)
	mix := v.Float(pMix)

	lookOn := v.At(pLookahead) > 0
	lookFrames := min(int(math.Round(v.Float(pLookahead)*maxLookaheadSeconds*c.sampleRate)), c.maxLA)

	var y [core.StereoChannels]float64
	for i := range frames {
		for ch := range core.StereoChannels {
			x := float64(block[2*i+ch])

			// Recorded every sample; lookahead may switch on at any block.
			delayed := c.look[ch].Tap(x, lookFrames)

			shaped := transfer(x, threshold, ratio)
			prog := shaped
			if lookOn {
				prog = transfer(delayed, threshold, ratio)
			}

			det := abs(shaped)
			if side > 0 {
				var k float64
				if keyed {
					if idx := 2*(keyOffset+i) + ch; idx < c.keyLen {
						k = float64(c.key[idx])
					}
				}
				det = (1-side)*det + side*abs(c.keyHP[ch].Process(k))
			}

			env := c.env[ch]
			if det > env {
				env += (det - env) * attack
			} else {
				env += (det - env) * release
			}
			env = core.FlushDenormals(env)
			c.env[ch] = env

			y[ch] = prog * (1 / (env + epsilon))
		}

		if midSide > 0 {
			m := (y[0] + y[1]) * 0.5
			s := (y[0] - y[1]) * 0.5 * (1 - midSide)
			y[0], y[1] = m+s, m-s
		}

		for ch := range core.StereoChannels {
			d := float64(dry[2*i+ch])
			out := y[ch] * scale
			if parallel > 0 {
				out = (1-parallel)*out + parallel*d
			}
			block[2*i+ch] = float32(d*(1-mix) + out*mix)
		}
	}
}
