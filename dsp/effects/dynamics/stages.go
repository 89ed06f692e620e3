package dynamics

import (
	"github.com/Darbouka/VRMusic-Studio-sub002/dsp/core"
	"github.com/Darbouka/VRMusic-Studio-sub002/dsp/param"
	"github.com/Darbouka/VRMusic-Studio-sub002/stats/frequency"
	timestats "github.com/Darbouka/VRMusic-Studio-sub002/stats/time"
)

const (
	minStageGain = 0.25
	maxStageGain = 1.0
)

// blend returns (1-p) + p*g.
func blend(p, g float64) float64 {
	return (1 - p) + p*g
}

// blockScale combines the block-scalar stages into one gain. Every stage
// reads the unprocessed block, so the result does not depend on the order in
// which stages are evaluated. Stages at 0 contribute exactly 1.
func (c *Compressor) blockScale(dry []float32, frames int, v param.Values) float64 {
	scale := 1.0

	if p := v.Float(pAdaptive); p > 0 {
		scale *= blend(p, adaptiveGain(dry))
	}
	if p := v.Float(pSpectral); p > 0 && frames >= spectralFrameSize {
		scale *= blend(p, c.spectralGain(dry))
	}
	if p := v.Float(pTransient); p > 0 {
		scale *= blend(p, transientGain(dry, frames))
	}
	if p := v.Float(pMultiband); p > 0 && c.bands[0] != nil {
		scale *= blend(p, c.multibandGain(dry, frames))
	}

	return scale
}

// adaptiveGain is 1/crest factor clamped to [0.25, 1]. Silence yields 1.
func adaptiveGain(dry []float32) float64 {
	crest := timestats.CrestFactor(dry)
	if crest <= 0 {
		return maxStageGain
	}
	return core.Clamp(1/crest, minStageGain, maxStageGain)
}

// spectralGain is 1 - 0.5*flatness of the mid signal over the first
// spectralFrameSize frames.
func (c *Compressor) spectralGain(dry []float32) float64 {
	for i := range c.mid {
		c.mid[i] = 0.5 * (float64(dry[2*i]) + float64(dry[2*i+1]))
	}
	mag, err := c.analyzer.Analyze(c.mid)
	if err != nil {
		return maxStageGain
	}
	return 1 - 0.5*frequency.Flatness(mag)
}

// transientGain compares the mean absolute first difference per channel with
// the block RMS.
func transientGain(dry []float32, frames int) float64 {
	if frames < 2 {
		return maxStageGain
	}

	var sumSq, sumDiff float64
	for i := range frames {
		l := float64(dry[2*i])
		r := float64(dry[2*i+1])
		sumSq += l*l + r*r
		if i > 0 {
			sumDiff += abs(l-float64(dry[2*i-2])) + abs(r-float64(dry[2*i-1]))
		}
	}

	rms := mathSqrt(sumSq / float64(2*frames))
	meanDiff := sumDiff / float64(2*(frames-1))

	return core.Clamp(1/(1+meanDiff/(rms+epsilon)), minStageGain, maxStageGain)
}

// multibandGain splits each channel into bands and returns the mean of
// 1/(1+bandRMS) over bands. Crossover state carries across blocks.
func (c *Compressor) multibandGain(dry []float32, frames int) float64 {
	clear(c.bandSq)
	for ch := range core.StereoChannels {
		split := c.bands[ch]
		for i := range frames {
			split.ProcessSampleInto(float64(dry[2*i+ch]), c.bandOut)
			for b, x := range c.bandOut {
				c.bandSq[b] += x * x
			}
		}
	}

	var g float64
	for _, sq := range c.bandSq {
		g += 1 / (1 + mathSqrt(sq/float64(2*frames)))
	}
	return g / float64(len(c.bandSq))
}

func abs(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}
