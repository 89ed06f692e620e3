package effectchain

import (
	"github.com/sirupsen/logrus"

	"github.com/Darbouka/VRMusic-Studio-sub002/dsp/effects/dynamics"
	"github.com/Darbouka/VRMusic-Studio-sub002/dsp/effects/modulation"
	"github.com/Darbouka/VRMusic-Studio-sub002/dsp/effects/reverb"
	"github.com/Darbouka/VRMusic-Studio-sub002/dsp/plugin"
)

type registryConfig struct {
	log *logrus.Entry
}

// RegistryOption configures the default registry.
type RegistryOption func(*registryConfig)

// WithEffectLogger sets the logger every built-in effect writes lifecycle
// events to.
func WithEffectLogger(entry *logrus.Entry) RegistryOption {
	return func(c *registryConfig) { c.log = entry }
}

// DefaultRegistry returns a Registry pre-populated with the built-in effects.
func DefaultRegistry(opts ...RegistryOption) *Registry {
	cfg := &registryConfig{}
	for _, opt := range opts {
		opt(cfg)
	}

	var fxOpts []plugin.Option
	if cfg.log != nil {
		fxOpts = append(fxOpts, plugin.WithLogger(cfg.log))
	}

	r := NewRegistry()

	r.MustRegister(reverb.Name, func() plugin.Effect {
		return reverb.New(fxOpts...)
	})
	r.MustRegister(dynamics.Name, func() plugin.Effect {
		return dynamics.New(fxOpts...)
	})
	r.MustRegister(modulation.TremoloName, func() plugin.Effect {
		return modulation.NewTremolo(fxOpts...)
	})
	r.MustRegister(modulation.GrinderName, func() plugin.Effect {
		return modulation.NewBeatGrinder(fxOpts...)
	})

	return r
}
