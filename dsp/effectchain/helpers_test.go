package effectchain

import (
	"io"

	"github.com/sirupsen/logrus"

	"github.com/Darbouka/VRMusic-Studio-sub002/dsp/core"
	"github.com/Darbouka/VRMusic-Studio-sub002/dsp/param"
	"github.com/Darbouka/VRMusic-Studio-sub002/dsp/plugin"
)

func quietLogger() *logrus.Entry {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return logrus.NewEntry(l)
}

// affineEffect computes x*gain + offset on every sample.
type affineEffect struct {
	*plugin.Base

	shutdowns int
}

func newAffine() plugin.Effect {
	reg := param.MustNew(
		param.Range("gain", 0, 10, 1),
		param.Range("offset", -1, 1, 0),
	)
	presets := []plugin.Preset{
		{Name: plugin.PresetStandard, Values: map[string]float32{}},
		{Name: plugin.PresetHeavy, Values: map[string]float32{"gain": 4, "offset": 0.5}},
	}
	return &affineEffect{Base: plugin.NewBase("affine", reg, presets, plugin.WithLogger(quietLogger()))}
}

func (a *affineEffect) Initialize(cfg core.ProcessorConfig) error {
	if err := a.Prepare(cfg); err != nil {
		return err
	}
	a.Activate()
	return nil
}

func (a *affineEffect) Shutdown() {
	a.shutdowns++
	a.Deactivate()
}

func (a *affineEffect) ProcessAudio(buf []float32, frameCount int) {
	n := core.Frames(buf, frameCount)
	if n == 0 || !a.Active() || a.Bypassed() {
		return
	}
	v := a.Params().Snapshot()
	for i := range 2 * n {
		buf[i] = buf[i]*v.At(0) + v.At(1)
	}
}

func testRegistry() *Registry {
	r := NewRegistry()
	r.MustRegister("affine", newAffine)
	return r
}

func newTestChain() *Chain {
	return New(Context{SampleRate: 48000, BlockSize: 64}, testRegistry(), WithLogger(quietLogger()))
}
