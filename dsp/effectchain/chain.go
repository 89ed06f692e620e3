package effectchain

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/Darbouka/VRMusic-Studio-sub002/dsp/core"
	"github.com/Darbouka/VRMusic-Studio-sub002/dsp/plugin"
)

type node struct {
	id         string
	effectType string
	fx         plugin.Effect
}

// Option configures a Chain.
type Option func(*Chain)

// WithLogger sets the logger chain lifecycle events are written to.
func WithLogger(entry *logrus.Entry) Option {
	return func(c *Chain) {
		if entry != nil {
			c.log = entry
		}
	}
}

// Chain runs a serial list of effects over one interleaved stereo buffer.
// Configure and Close run on the control thread. Process takes the chain
// lock with TryLock and leaves a contended block untouched.
type Chain struct {
	ctx      Context
	registry *Registry
	log      *logrus.Entry

	mu    sync.Mutex
	nodes []*node
}

// New creates an empty Chain. A nil registry uses DefaultRegistry.
func New(ctx Context, registry *Registry, opts ...Option) *Chain {
	if registry == nil {
		registry = DefaultRegistry()
	}

	c := &Chain{
		ctx:      ctx,
		registry: registry,
		log:      logrus.WithField("component", "effectchain"),
	}
	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Context returns the chain context.
func (c *Chain) Context() Context {
	return c.ctx
}

// Configure replaces the chain with the given nodes, in order. Nodes whose
// ID and type are unchanged keep their effect instance and state. For each
// node the bypass flag is set, then the preset named by the "preset" string
// parameter is loaded, then numeric parameters are applied in sorted key
// order. Unknown parameter names are ignored.
//
// If an effect cannot be created the chain is left unchanged.
func (c *Chain) Configure(params []Params) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	existing := make(map[string]*node, len(c.nodes))
	for _, n := range c.nodes {
		existing[n.id] = n
	}

	next := make([]*node, 0, len(params))
	created := make([]*node, 0, len(params))
	seen := make(map[string]struct{}, len(params))

	fail := func(err error) error {
		for _, n := range created {
			n.fx.Shutdown()
		}
		return err
	}

	for i, p := range params {
		id := p.ID
		if id == "" {
			id = fmt.Sprintf("%s-%d", normalizeType(p.Type), i)
		}
		if _, dup := seen[id]; dup {
			return fail(fmt.Errorf("effectchain: duplicate node id %q", id))
		}
		seen[id] = struct{}{}

		effectType := normalizeType(p.Type)
		if n, ok := existing[id]; ok && n.effectType == effectType {
			next = append(next, n)
			continue
		}

		fx, err := c.registry.New(effectType, c.ctx)
		if err != nil {
			return fail(fmt.Errorf("effectchain: node %q: %w", id, err))
		}
		n := &node{id: id, effectType: effectType, fx: fx}
		next = append(next, n)
		created = append(created, n)
	}

	for _, n := range c.nodes {
		if !slices.Contains(next, n) {
			n.fx.Shutdown()
		}
	}
	c.nodes = next

	var errs []error
	for i, p := range params {
		if err := applyParams(next[i].fx, p); err != nil {
			errs = append(errs, fmt.Errorf("effectchain: node %q: %w", next[i].id, err))
		}
	}

	c.log.WithFields(logrus.Fields{
		"function": "Configure",
		"nodes":    len(next),
		"created":  len(created),
	}).Info("chain configured")

	return errors.Join(errs...)
}

func applyParams(fx plugin.Effect, p Params) error {
	fx.SetBypass(p.Bypassed)

	if preset := p.GetStr(PresetKey, ""); preset != "" {
		if err := fx.LoadPreset(preset); err != nil {
			return err
		}
	}

	for _, key := range slices.Sorted(maps.Keys(p.Num)) {
		fx.SetParameter(key, float32(p.GetNum(key, 0)))
	}

	return nil
}

// LoadGraph parses a JSON chain description and configures the chain with
// it.
func (c *Chain) LoadGraph(raw string) error {
	params, err := ParseGraph(raw)
	if err != nil {
		return err
	}

	return c.Configure(params)
}

// Process runs every effect over min(frameCount, len(buf)/2) frames in
// chain order.
func (c *Chain) Process(buf []float32, frameCount int) {
	n := core.Frames(buf, frameCount)
	if n == 0 {
		return
	}

	if !c.mu.TryLock() {
		return
	}
	defer c.mu.Unlock()

	for _, nd := range c.nodes {
		nd.fx.ProcessAudio(buf, n)
	}
}

// Effect returns the effect with the given node ID.
func (c *Chain) Effect(id string) (plugin.Effect, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, n := range c.nodes {
		if n.id == id {
			return n.fx, true
		}
	}

	return nil, false
}

// IDs returns the node IDs in processing order.
func (c *Chain) IDs() []string {
	c.mu.Lock()
	defer c.mu.Unlock()

	ids := make([]string, len(c.nodes))
	for i, n := range c.nodes {
		ids[i] = n.id
	}

	return ids
}

// Len returns the number of nodes.
func (c *Chain) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return len(c.nodes)
}

// Close shuts down every effect and empties the chain.
func (c *Chain) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, n := range c.nodes {
		n.fx.Shutdown()
	}
	c.nodes = nil
}
