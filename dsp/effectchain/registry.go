package effectchain

import (
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/Darbouka/VRMusic-Studio-sub002/dsp/plugin"
)

// ErrUnknownEffectType is returned when a node references an unregistered
// effect type.
var ErrUnknownEffectType = errors.New("unknown effect type")

var errDuplicateEffect = errors.New("duplicate effect type")

// Factory builds one uninitialized effect instance.
type Factory func() plugin.Effect

// Registry maps effect type names to their factories. It is safe for
// concurrent use.
type Registry struct {
	mu        sync.RWMutex
	factories map[string]Factory
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{factories: make(map[string]Factory)}
}

// Register adds a factory for the given effect type.
func (r *Registry) Register(effectType string, factory Factory) error {
	effectType = normalizeType(effectType)
	if effectType == "" {
		return errors.New("empty effect type")
	}

	if factory == nil {
		return errors.New("nil factory")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.factories[effectType]; exists {
		return fmt.Errorf("%w: %s", errDuplicateEffect, effectType)
	}

	r.factories[effectType] = factory

	return nil
}

// MustRegister is like Register but panics on error.
func (r *Registry) MustRegister(effectType string, factory Factory) {
	err := r.Register(effectType, factory)
	if err != nil {
		panic("effectchain registry: " + err.Error())
	}
}

// Lookup returns the factory for the given effect type, or nil.
func (r *Registry) Lookup(effectType string) Factory {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.factories[normalizeType(effectType)]
}

// Types returns the registered effect types in sorted order.
func (r *Registry) Types() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	types := make([]string, 0, len(r.factories))
	for t := range r.factories {
		types = append(types, t)
	}
	slices.Sort(types)

	return types
}

// New builds and initializes an effect of the given type.
func (r *Registry) New(effectType string, ctx Context) (plugin.Effect, error) {
	factory := r.Lookup(effectType)
	if factory == nil {
		return nil, fmt.Errorf("%w: %s", ErrUnknownEffectType, effectType)
	}

	fx := factory()
	if err := fx.Initialize(ctx.Config()); err != nil {
		return nil, fmt.Errorf("effectchain: initialize %s: %w", effectType, err)
	}

	return fx, nil
}
