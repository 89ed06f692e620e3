package plugin

import (
	"github.com/Darbouka/VRMusic-Studio-sub002/dsp/core"
	"github.com/Darbouka/VRMusic-Studio-sub002/dsp/param"
)

// Built-in preset names every effect provides.
const (
	PresetStandard = "Standard"
	PresetHeavy    = "Heavy"
	PresetSubtle   = "Subtle"
)

// Effect is the uniform lifecycle, parameter, processing and preset interface
// of an audio effect.
type Effect interface {
	// Name returns the effect type name.
	Name() string

	// Initialize allocates internal buffers for cfg. It returns an
	// *InitError when cfg is unusable.
	Initialize(cfg core.ProcessorConfig) error
	// Shutdown releases buffers. ProcessAudio is a no-op afterwards.
	Shutdown()

	Parameters() []param.Descriptor
	// SetParameter clamps value into range. Unknown names are ignored.
	SetParameter(name string, value float32)
	// Parameter returns 0 for unknown names.
	Parameter(name string) float32
	SetParameterAutomated(name string, enabled bool)
	IsParameterAutomated(name string) bool

	// ProcessAudio mutates min(frameCount, len(buf)/2) interleaved stereo
	// frames of buf in place.
	ProcessAudio(buf []float32, frameCount int)

	LoadPreset(name string) error
	SavePreset(name string) error
	Presets() []string

	SetBypass(bypass bool)
	Bypassed() bool
}
