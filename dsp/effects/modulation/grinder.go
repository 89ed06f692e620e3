package modulation

import (
	"math"

	"github.com/Darbouka/VRMusic-Studio-sub002/dsp/core"
	"github.com/Darbouka/VRMusic-Studio-sub002/dsp/param"
	"github.com/Darbouka/VRMusic-Studio-sub002/dsp/plugin"
)

// GrinderName is the BeatGrinder effect type name.
const GrinderName = "beatgrinder"

const (
	// NumGrids is the fixed number of grid voices.
	NumGrids = 16

	gridSeconds = 2.0
)

const (
	gGridSize = iota
	gGrids
	gLevel
	gSwing
	gShuffle
	gStutter
	gReverse
	gMix
)

func grinderDescriptors() []param.Descriptor {
	return []param.Descriptor{
		param.Range("gridSize", 0.0625, 1, 0.25),
		param.Range("grids", 1, NumGrids, 8),
		param.Unit("level", 1),
		param.Unit("swing", 0),
		param.Unit("shuffle", 0),
		param.Unit("stutter", 0),
		param.Unit("reverse", 0),
		param.Unit("mix", 1),
	}
}

func grinderPresets() []plugin.Preset {
	return []plugin.Preset{
		{Name: plugin.PresetStandard, Values: map[string]float32{}},
		{Name: plugin.PresetHeavy, Values: map[string]float32{
			"gridSize": 0.125, "grids": 16, "swing": 0.3, "shuffle": 0.3,
			"stutter": 0.8, "reverse": 0.5,
		}},
		{Name: plugin.PresetSubtle, Values: map[string]float32{
			"gridSize": 0.5, "grids": 4, "swing": 0.2, "mix": 0.5,
		}},
	}
}

// BeatGrinder re-reads the incoming audio through sixteen grids. Every grid
// records continuously; the first `grids` of them are averaged into the
// output. Read heads are pulled back by a warp curve built from swing,
// shuffle and stutter, and reverse flips grid direction over time and
// reverses the output in segments.
type BeatGrinder struct {
	*plugin.Base

	grids [NumGrids]*Grid
}

var _ plugin.Effect = (*BeatGrinder)(nil)

// NewBeatGrinder returns a BeatGrinder with default parameters.
func NewBeatGrinder(opts ...plugin.Option) *BeatGrinder {
	return &BeatGrinder{
		Base: plugin.NewBase(GrinderName, param.MustNew(grinderDescriptors()...), grinderPresets(), opts...),
	}
}

// Initialize allocates two seconds of stereo history per grid.
func (b *BeatGrinder) Initialize(cfg core.ProcessorConfig) error {
	if err := b.Prepare(cfg); err != nil {
		return err
	}
	capacity := int(math.Ceil(gridSeconds * cfg.SampleRate))
	for i := range b.grids {
		b.grids[i] = NewGrid(capacity)
	}
	b.Activate()
	return nil
}

// Shutdown releases the grid buffers.
func (b *BeatGrinder) Shutdown() {
	b.Deactivate()
	b.grids = [NumGrids]*Grid{}
}

// Grid returns grid i, or nil when out of range or not initialized.
func (b *BeatGrinder) Grid(i int) *Grid {
	if i < 0 || i >= NumGrids {
		return nil
	}
	return b.grids[i]
}

// Warp returns the read-head offset in frames for frame i of a block of
// frames frames.
func Warp(i, frames int, swing, shuffle, stutter float64) int {
	if frames <= 0 {
		return 0
	}
	t := float64(i) / float64(frames)
	curve := swing*0.5*math.Sin(2*math.Pi*t) +
		shuffle*0.25*math.Sin(4*math.Pi*t) +
		stutter*0.5*math.Sin(8*math.Pi*t)
	return int(math.Round(float64(frames) * curve))
}

// ProcessAudio grinds min(frameCount, len(buf)/2) stereo frames in place.
func (b *BeatGrinder) ProcessAudio(buf []float32, frameCount int) {
	n := core.Frames(buf, frameCount)
	if n == 0 || !b.Active() || b.Bypassed() {
		return
	}

	v := b.Params().Snapshot()
	gridSize := v.Float(gGridSize)
	active := min(max(int(math.Round(v.Float(gGrids))), 1), NumGrids)
	level := v.Float(gLevel)
	swing := v.Float(gSwing)
	shuffle := v.Float(gShuffle)
	stutter := v.Float(gStutter)
	reverse := v.Float(gReverse)
	mix := v.At(gMix)

	for i, g := range b.grids {
		g.SetTimeFraction(gridSize / float64(i+1))
		g.Tick(reverse > 0)
	}

	warping := swing > 0 || shuffle > 0 || stutter > 0
	count := float64(active)
	for i := range n {
		l := core.Sanitize(buf[2*i])
		r := core.Sanitize(buf[2*i+1])

		warp := 0
		if warping {
			warp = Warp(i, n, swing, shuffle, stutter)
		}

		var sumL, sumR float64
		for j, g := range b.grids {
			gl, gr := g.Step(l, r, warp)
			if j < active {
				sumL += float64(gl)
				sumR += float64(gr)
			}
		}
		buf[2*i] = float32(sumL / count * level)
		buf[2*i+1] = float32(sumR / count * level)
	}

	if reverse > 0 {
		reverseSegments(buf[:2*n], n, max(1, int(math.Ceil(float64(n)*reverse))))
	}

	if mix != 1 {
		for i := range buf[:2*n] {
			buf[i] *= mix
		}
	}
}

// reverseSegments reverses consecutive runs of seg frames in place.
func reverseSegments(buf []float32, frames, seg int) {
	for start := 0; start < frames; start += seg {
		lo, hi := start, min(start+seg, frames)-1
		for lo < hi {
			buf[2*lo], buf[2*hi] = buf[2*hi], buf[2*lo]
			buf[2*lo+1], buf[2*hi+1] = buf[2*hi+1], buf[2*lo+1]
			lo++
			hi--
		}
	}
}
