package plugin

import (
	"fmt"
	"slices"
	"sync"
	"sync/atomic"

	"github.com/sirupsen/logrus"

	"github.com/Darbouka/VRMusic-Studio-sub002/dsp/core"
	"github.com/Darbouka/VRMusic-Studio-sub002/dsp/param"
)

// Preset is a named parameter snapshot.
type Preset struct {
	Name   string
	Values map[string]float32
}

// Option configures a Base.
type Option func(*Base)

// WithLogger sets the logger lifecycle events are written to. The effect
// name is added as the "effect" field.
func WithLogger(entry *logrus.Entry) Option {
	return func(b *Base) {
		if entry != nil {
			b.log = entry.WithField("effect", b.name)
		}
	}
}

// Base carries the state every effect shares. Effects embed *Base and add
// Initialize, Shutdown and ProcessAudio.
type Base struct {
	name   string
	params *param.Registry
	log    *logrus.Entry

	presetMu sync.Mutex
	presets  map[string]map[string]float32
	order    []string

	bypass atomic.Bool
	active atomic.Bool
	cfg    core.ProcessorConfig

	onChange func(name string)
}

// NewBase returns a Base for the named effect. Each built-in preset is
// expanded to a full snapshot: parameters it does not mention keep their
// defaults.
func NewBase(name string, params *param.Registry, builtins []Preset, opts ...Option) *Base {
	b := &Base{
		name:    name,
		params:  params,
		log:     logrus.WithField("effect", name),
		presets: make(map[string]map[string]float32, len(builtins)),
	}
	for _, opt := range opts {
		opt(b)
	}

	defaults := params.Map()
	for _, p := range builtins {
		full := make(map[string]float32, len(defaults))
		for k, v := range defaults {
			full[k] = v
		}
		for k, v := range p.Values {
			if d, ok := params.Descriptor(k); ok {
				full[k] = d.Clamp(v)
			}
		}
		b.storePreset(p.Name, full)
	}

	return b
}

// Name returns the effect type name.
func (b *Base) Name() string { return b.name }

// Params exposes the registry to the embedding effect.
func (b *Base) Params() *param.Registry { return b.params }

// Logger returns the lifecycle logger.
func (b *Base) Logger() *logrus.Entry { return b.log }

// OnChange registers fn to run on the control thread after any parameter
// write. name is empty after a preset load.
func (b *Base) OnChange(fn func(name string)) { b.onChange = fn }

// Parameters returns a snapshot of every descriptor.
func (b *Base) Parameters() []param.Descriptor { return b.params.Descriptors() }

// SetParameter clamps and stores value. Unknown names are ignored.
func (b *Base) SetParameter(name string, value float32) {
	if b.params.Set(name, value) && b.onChange != nil {
		b.onChange(name)
	}
}

// Parameter returns the current value of name, or 0 if unknown.
func (b *Base) Parameter(name string) float32 { return b.params.Get(name) }

// SetParameterAutomated toggles the automation flag of name.
func (b *Base) SetParameterAutomated(name string, enabled bool) {
	b.params.SetAutomated(name, enabled)
}

// IsParameterAutomated reports the automation flag of name.
func (b *Base) IsParameterAutomated(name string) bool { return b.params.Automated(name) }

// SetBypass sets the bypass flag.
func (b *Base) SetBypass(bypass bool) { b.bypass.Store(bypass) }

// Bypassed reports the bypass flag.
func (b *Base) Bypassed() bool { return b.bypass.Load() }

// LoadPreset applies a stored snapshot in one atomic swap.
func (b *Base) LoadPreset(name string) error {
	b.presetMu.Lock()
	values, ok := b.presets[name]
	b.presetMu.Unlock()
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownPreset, name)
	}

	b.params.Apply(values)
	if b.onChange != nil {
		b.onChange("")
	}
	b.log.WithFields(logrus.Fields{"function": "LoadPreset", "preset": name}).Debug("preset loaded")

	return nil
}

// SavePreset stores the current parameter values under name, replacing any
// existing preset of that name.
func (b *Base) SavePreset(name string) error {
	if name == "" {
		return ErrInvalidPresetName
	}

	b.storePreset(name, b.params.Map())
	b.log.WithFields(logrus.Fields{"function": "SavePreset", "preset": name}).Debug("preset saved")

	return nil
}

// Presets lists built-in presets first, then saved ones in insertion order.
func (b *Base) Presets() []string {
	b.presetMu.Lock()
	defer b.presetMu.Unlock()
	return slices.Clone(b.order)
}

// Prepare validates cfg at the start of Initialize and records it.
func (b *Base) Prepare(cfg core.ProcessorConfig) error {
	if err := cfg.Validate(); err != nil {
		b.log.WithFields(logrus.Fields{"function": "Initialize"}).WithError(err).Error("invalid processor config")
		return &InitError{Effect: b.name, Err: err}
	}
	b.cfg = cfg
	return nil
}

// Activate marks the effect ready for ProcessAudio.
func (b *Base) Activate() {
	b.active.Store(true)
	b.log.WithFields(logrus.Fields{
		"function":   "Initialize",
		"sampleRate": b.cfg.SampleRate,
		"blockSize":  b.cfg.BlockSize,
	}).Info("effect initialized")
}

// Deactivate marks the effect shut down.
func (b *Base) Deactivate() {
	if b.active.Swap(false) {
		b.log.WithFields(logrus.Fields{"function": "Shutdown"}).Info("effect shut down")
	}
}

// Active reports whether the effect is initialized and not shut down.
func (b *Base) Active() bool { return b.active.Load() }

// Config returns the configuration passed to the last Prepare.
func (b *Base) Config() core.ProcessorConfig { return b.cfg }

func (b *Base) storePreset(name string, values map[string]float32) {
	b.presetMu.Lock()
	defer b.presetMu.Unlock()
	if _, exists := b.presets[name]; !exists {
		b.order = append(b.order, name)
	}
	b.presets[name] = values
}
