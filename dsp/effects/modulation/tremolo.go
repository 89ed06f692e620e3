package modulation

import (
	"github.com/Darbouka/VRMusic-Studio-sub002/dsp/core"
	"github.com/Darbouka/VRMusic-Studio-sub002/dsp/param"
	"github.com/Darbouka/VRMusic-Studio-sub002/dsp/plugin"
)

// TremoloName is the tremolo effect type name.
const TremoloName = "tremolo"

// syncTempoBPM is the fixed tempo used when the rate is tempo-synced.
const syncTempoBPM = 120.0

// syncBeats lists the synced LFO periods in beats, selected by syncRate.
var syncBeats = [...]float64{4, 2, 1, 0.5, 0.25, 0.125}

const (
	tRate = iota
	tDepth
	tShape
	tMix
	tStereoPhase
	tSync
	tSyncRate
)

func tremoloDescriptors() []param.Descriptor {
	return []param.Descriptor{
		param.Range("rate", 0.1, 20, 5),
		param.Unit("depth", 0.5),
		param.Unit("shape", 0),
		param.Unit("mix", 1),
		param.Unit("stereoPhase", 0),
		param.Unit("sync", 0),
		param.Unit("syncRate", 0.5),
	}
}

func tremoloPresets() []plugin.Preset {
	return []plugin.Preset{
		{Name: plugin.PresetStandard, Values: map[string]float32{}},
		{Name: plugin.PresetHeavy, Values: map[string]float32{"rate": 8, "depth": 1, "shape": 1}},
		{Name: plugin.PresetSubtle, Values: map[string]float32{"rate": 3, "depth": 0.25, "mix": 0.5}},
	}
}

// Tremolo is a stereo amplitude modulator. The right channel reads the LFO
// stereoPhase cycles ahead of the left.
type Tremolo struct {
	*plugin.Base

	sampleRate float64
	lfo        LFO
}

var _ plugin.Effect = (*Tremolo)(nil)

// NewTremolo returns a tremolo with default parameters.
func NewTremolo(opts ...plugin.Option) *Tremolo {
	return &Tremolo{
		Base: plugin.NewBase(TremoloName, param.MustNew(tremoloDescriptors()...), tremoloPresets(), opts...),
	}
}

// Initialize resets the LFO for cfg.SampleRate.
func (t *Tremolo) Initialize(cfg core.ProcessorConfig) error {
	if err := t.Prepare(cfg); err != nil {
		return err
	}
	t.sampleRate = cfg.SampleRate
	t.lfo.Reset()
	t.Activate()
	return nil
}

// Shutdown deactivates the tremolo.
func (t *Tremolo) Shutdown() { t.Deactivate() }

// Phase returns the left-channel LFO phase.
func (t *Tremolo) Phase() float64 { return t.lfo.Phase() }

// SyncedRate returns the LFO rate in Hz for a syncRate value: one period of
// the selected beat count at 120 BPM.
func SyncedRate(syncRate float64) float64 {
	idx := min(max(int(syncRate*float64(len(syncBeats))), 0), len(syncBeats)-1)
	return 1 / (syncBeats[idx] * 60 / syncTempoBPM)
}

// ProcessAudio modulates min(frameCount, len(buf)/2) stereo frames in
// place.
func (t *Tremolo) ProcessAudio(buf []float32, frameCount int) {
	n := core.Frames(buf, frameCount)
	if n == 0 || !t.Active() || t.Bypassed() {
		return
	}

	v := t.Params().Snapshot()
	rate := v.Float(tRate)
	if v.At(tSync) >= 0.5 {
		rate = SyncedRate(v.Float(tSyncRate))
	}
	depth := v.Float(tDepth)
	mix := v.Float(tMix)
	offset := v.Float(tStereoPhase)
	t.lfo.SetShape(v.Float(tShape))

	for i := range n {
		t.lfo.Advance(rate, t.sampleRate)

		modL := 1 - depth*(1-t.lfo.Value(0))
		modR := 1 - depth*(1-t.lfo.Value(offset))

		l := float64(core.Sanitize(buf[2*i]))
		r := float64(core.Sanitize(buf[2*i+1]))
		buf[2*i] = float32(l*(1-mix) + l*modL*mix)
		buf[2*i+1] = float32(r*(1-mix) + r*modR*mix)
	}
}
