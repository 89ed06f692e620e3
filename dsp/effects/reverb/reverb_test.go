package reverb

import (
	"errors"
	"io"
	"math"
	"testing"

	"github.com/sirupsen/logrus"

	"github.com/Darbouka/VRMusic-Studio-sub002/dsp/core"
	"github.com/Darbouka/VRMusic-Studio-sub002/dsp/plugin"
)

func quietLogger() *logrus.Entry {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return logrus.NewEntry(l)
}

func newReverb(t *testing.T) *Reverb {
	t.Helper()
	r := New(plugin.WithLogger(quietLogger()))
	if err := r.Initialize(core.ProcessorConfig{SampleRate: 44100, BlockSize: 512}); err != nil {
		t.Fatalf("Initialize: %v", err)
	}
	t.Cleanup(r.Shutdown)
	return r
}

func impulse(frames int) []float32 {
	buf := make([]float32, 2*frames)
	buf[0], buf[1] = 1, 1
	return buf
}

func TestInitializeRejectsBadConfig(t *testing.T) {
	r := New(plugin.WithLogger(quietLogger()))
	err := r.Initialize(core.ProcessorConfig{SampleRate: 0, BlockSize: 512})
	var initErr *plugin.InitError
	if !errors.As(err, &initErr) {
		t.Fatalf("expected InitError, got %v", err)
	}
	if r.Active() {
		t.Fatal("reverb must not be active after a failed Initialize")
	}
}

func TestDefaultCombLengths(t *testing.T) {
	r := newReverb(t)
	got := r.CombLengths()
	for i, base := range combTunings {
		if got[i] != base {
			t.Fatalf("comb %d: len=%d want=%d", i, got[i], base)
		}
	}
}

func TestRoomSizeResizesCombs(t *testing.T) {
	r := newReverb(t)
	for _, rs := range []float32{0, 0.25, 0.75, 1} {
		r.SetParameter("roomSize", rs)
		got := r.CombLengths()
		for i, base := range combTunings {
			if want := CombLength(base, float64(rs)); got[i] != want {
				t.Fatalf("roomSize=%g comb %d: len=%d want=%d", rs, i, got[i], want)
			}
		}
	}
}

func TestPresetResizesCombs(t *testing.T) {
	r := newReverb(t)
	if err := r.LoadPreset(plugin.PresetHeavy); err != nil {
		t.Fatalf("LoadPreset: %v", err)
	}
	got := r.CombLengths()
	for i, base := range combTunings {
		if want := CombLength(base, 0.9); got[i] != want {
			t.Fatalf("comb %d: len=%d want=%d", i, got[i], want)
		}
	}
}

func TestEffectiveDamping(t *testing.T) {
	tests := []struct{ in, want float64 }{
		{0, 0.2},
		{0.5, 0.4},
		{1, 0.6},
		{-1, 0.2},
		{2, 0.6},
	}
	for _, tt := range tests {
		if got := EffectiveDamping(tt.in); math.Abs(got-tt.want) > 1e-12 {
			t.Fatalf("EffectiveDamping(%g)=%g want=%g", tt.in, got, tt.want)
		}
	}
}

func TestStandardPresetValues(t *testing.T) {
	r := newReverb(t)
	r.SetParameter("roomSize", 0.9)
	r.SetParameter("mix", 0.1)
	if err := r.LoadPreset(plugin.PresetStandard); err != nil {
		t.Fatalf("LoadPreset: %v", err)
	}

	want := map[string]float32{
		"roomSize": 0.5, "damping": 0.5, "width": 0.5,
		"wetLevel": 0.33, "dryLevel": 0.4, "freeze": 0, "mix": 0.5,
	}
	for name, v := range want {
		if got := r.Parameter(name); got != v {
			t.Fatalf("%s: got=%g want=%g", name, got, v)
		}
	}
}

func TestImpulseResponse(t *testing.T) {
	r := newReverb(t)
	if err := r.LoadPreset(plugin.PresetStandard); err != nil {
		t.Fatalf("LoadPreset: %v", err)
	}

	const frames = 2048
	buf := impulse(frames)
	r.ProcessAudio(buf, frames)

	// Frame 0 carries only the dry path.
	dry := float32(0.4 * 0.5)
	if math.Abs(float64(buf[0]-dry)) > 1e-6 || math.Abs(float64(buf[1]-dry)) > 1e-6 {
		t.Fatalf("frame 0 got=(%g,%g) want=%g", buf[0], buf[1], dry)
	}

	for i := 1; i < combTunings[0]; i++ {
		if buf[2*i] != 0 || buf[2*i+1] != 0 {
			t.Fatalf("frame %d should be silent before the first comb echo: (%g,%g)", i, buf[2*i], buf[2*i+1])
		}
	}

	// The first comb echo passes the allpass chain with unit sign.
	wetGain := 0.33 * 0.5
	wantL := 1.5 * wetGain
	wantR := 0.5 * wetGain
	i := combTunings[0]
	if math.Abs(float64(buf[2*i])-wantL) > 1e-5 || math.Abs(float64(buf[2*i+1])-wantR) > 1e-5 {
		t.Fatalf("frame %d got=(%g,%g) want=(%g,%g)", i, buf[2*i], buf[2*i+1], wantL, wantR)
	}

	var tail float64
	for j := combTunings[numCombs-1] + 1; j < frames; j++ {
		tail += float64(buf[2*j]) * float64(buf[2*j])
	}
	if tail == 0 {
		t.Fatal("expected a reverb tail after the longest comb")
	}
}

func TestFreezeSilencesWet(t *testing.T) {
	r := newReverb(t)
	r.SetParameter("freeze", 1)

	const frames = 2048
	buf := impulse(frames)
	r.ProcessAudio(buf, frames)

	for i := 1; i < frames; i++ {
		if buf[2*i] != 0 || buf[2*i+1] != 0 {
			t.Fatalf("frame %d not silent: (%g,%g)", i, buf[2*i], buf[2*i+1])
		}
	}
}

func TestPreDelayShiftsTail(t *testing.T) {
	r := newReverb(t)
	r.SetParameter("preDelay", 0.1) // 10 ms

	const frames = 2048
	buf := impulse(frames)
	r.ProcessAudio(buf, frames)

	shift := int(math.Round(0.01 * 44100))
	for i := 1; i < combTunings[0]+shift; i++ {
		if buf[2*i] != 0 {
			t.Fatalf("frame %d should be silent: %g", i, buf[2*i])
		}
	}
	if buf[2*(combTunings[0]+shift)] == 0 {
		t.Fatalf("expected first echo at frame %d", combTunings[0]+shift)
	}
}

func TestCutFiltersStayFinite(t *testing.T) {
	r := newReverb(t)
	r.SetParameter("lowCut", 0.5)
	r.SetParameter("highCut", 0.3)

	buf := make([]float32, 2*4096)
	for i := range 4096 {
		v := float32(math.Sin(2 * math.Pi * 440 * float64(i) / 44100))
		buf[2*i], buf[2*i+1] = v, v
	}
	r.ProcessAudio(buf, 4096)

	for i, v := range buf {
		if math.IsNaN(float64(v)) || math.IsInf(float64(v), 0) {
			t.Fatalf("sample %d not finite: %g", i, v)
		}
	}
}

func TestCutFiltersRestartFromRest(t *testing.T) {
	r := newReverb(t)
	r.SetParameter("lowCut", 0.5)
	r.SetParameter("highCut", 0.3)

	sine := func() []float32 {
		buf := make([]float32, 2*4096)
		for i := range 4096 {
			v := float32(math.Sin(2 * math.Pi * 440 * float64(i) / 44100))
			buf[2*i], buf[2*i+1] = v, v
		}
		return buf
	}
	r.ProcessAudio(sine(), 4096)
	if r.lowCut.State() == [2]float64{} || r.highCut.State() == [2]float64{} {
		t.Fatal("cut filters should carry state after a tail")
	}

	r.SetParameter("lowCut", 0)
	r.SetParameter("highCut", 1)
	r.ProcessAudio(sine(), 4096)

	r.SetParameter("lowCut", 0.5)
	r.SetParameter("highCut", 0.3)
	lowOn, highOn := r.updateCutFilters(r.Params().Snapshot())
	if !lowOn || !highOn {
		t.Fatalf("filters on = %v, %v", lowOn, highOn)
	}
	if got := r.lowCut.State(); got != [2]float64{} {
		t.Fatalf("lowCut state = %v, want zero", got)
	}
	if got := r.highCut.State(); got != [2]float64{} {
		t.Fatalf("highCut state = %v, want zero", got)
	}
}

func TestZeroFramesIsNoOp(t *testing.T) {
	r := newReverb(t)
	buf := []float32{0.5, -0.5, 0.25, -0.25}
	want := append([]float32(nil), buf...)

	r.ProcessAudio(buf, 0)
	r.ProcessAudio(buf, -4)
	r.ProcessAudio(nil, 16)

	for i := range buf {
		if buf[i] != want[i] {
			t.Fatalf("sample %d changed: got=%g want=%g", i, buf[i], want[i])
		}
	}
}

func TestFrameCountBeyondBuffer(t *testing.T) {
	r := newReverb(t)
	buf := make([]float32, 7)
	buf[0], buf[1] = 1, 1
	buf[6] = 0.75
	r.ProcessAudio(buf, 100)
	if buf[6] != 0.75 {
		t.Fatalf("trailing half frame must be untouched: %g", buf[6])
	}
}

func TestNaNInputStaysFinite(t *testing.T) {
	r := newReverb(t)
	buf := make([]float32, 2*256)
	buf[0] = float32(math.NaN())
	buf[1] = float32(math.Inf(1))
	r.ProcessAudio(buf, 256)

	for i, v := range buf {
		if math.IsNaN(float64(v)) || math.IsInf(float64(v), 0) {
			t.Fatalf("sample %d not finite: %g", i, v)
		}
	}
}

func TestBypassAndInactiveLeaveBufferUntouched(t *testing.T) {
	r := newReverb(t)
	r.SetBypass(true)

	buf := impulse(64)
	r.ProcessAudio(buf, 64)
	if buf[0] != 1 || buf[1] != 1 {
		t.Fatalf("bypassed reverb altered input: (%g,%g)", buf[0], buf[1])
	}

	idle := New(plugin.WithLogger(quietLogger()))
	buf = impulse(64)
	idle.ProcessAudio(buf, 64)
	if buf[0] != 1 {
		t.Fatalf("uninitialized reverb altered input: %g", buf[0])
	}
}

func TestContendedBlockStaysDry(t *testing.T) {
	r := newReverb(t)
	r.mu.Lock()
	buf := impulse(64)
	r.ProcessAudio(buf, 64)
	r.mu.Unlock()

	if buf[0] != 1 || buf[1] != 1 {
		t.Fatalf("contended block was processed: (%g,%g)", buf[0], buf[1])
	}
}

func TestShutdownThenInitialize(t *testing.T) {
	r := newReverb(t)
	r.Shutdown()
	if r.CombLengths() != nil {
		t.Fatal("expected no combs after Shutdown")
	}
	if err := r.Initialize(core.ProcessorConfig{SampleRate: 48000, BlockSize: 128}); err != nil {
		t.Fatalf("Initialize: %v", err)
	}
	if !r.Active() {
		t.Fatal("expected active after re-Initialize")
	}
}
