package bus

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"slices"
	"sync"

	"github.com/cwbudde/algo-vecmath"
	"github.com/sirupsen/logrus"

	"github.com/Darbouka/VRMusic-Studio-sub002/dsp/buffer"
	"github.com/Darbouka/VRMusic-Studio-sub002/dsp/core"
	"github.com/Darbouka/VRMusic-Studio-sub002/dsp/effectchain"
)

var (
	// ErrUnknownChannel is returned for operations on a missing channel.
	ErrUnknownChannel = errors.New("bus: unknown channel")
	// ErrChannelExists is returned when creating a duplicate channel.
	ErrChannelExists = errors.New("bus: channel already exists")
)

type channel struct {
	name   string
	mix    float32
	bypass bool
	params map[string]float32
	chain  *effectchain.Chain
	source Source
}

// sortedParams returns the parameter values in sorted key order.
func (c *channel) sortedParams() []float32 {
	keys := slices.Sorted(maps.Keys(c.params))
	out := make([]float32, len(keys))
	for i, k := range keys {
		out[i] = c.params[k]
	}
	return out
}

// Option configures a Bus.
type Option func(*Bus)

// WithLogger sets the logger channel events and source failures are written
// to.
func WithLogger(entry *logrus.Entry) Option {
	return func(b *Bus) {
		if entry != nil {
			b.log = entry
		}
	}
}

// Bus is a named weighted-sum mixer. Channels are processed in creation
// order. All methods are safe for concurrent use; Process holds the bus lock
// for the whole block, including source inference.
type Bus struct {
	log *logrus.Entry

	mu       sync.Mutex
	channels []*channel
	scratch  *buffer.Pool[float32]
	acc      []float64
	wide     []float64
	gains    []float64
}

// New returns an empty bus.
func New(opts ...Option) *Bus {
	b := &Bus{
		log:     logrus.WithField("component", "bus"),
		scratch: buffer.NewPool[float32](),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

func (b *Bus) find(name string) (int, *channel) {
	for i, c := range b.channels {
		if c.name == name {
			return i, c
		}
	}
	return -1, nil
}

func (b *Bus) lookup(name string) (*channel, error) {
	if _, c := b.find(name); c != nil {
		return c, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownChannel, name)
}

// CreateChannel adds a channel with mix 1 that passes the bus input through.
func (b *Bus) CreateChannel(name string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if _, c := b.find(name); c != nil {
		return fmt.Errorf("%w: %q", ErrChannelExists, name)
	}
	b.channels = append(b.channels, &channel{
		name:   name,
		mix:    1,
		params: make(map[string]float32),
	})
	b.log.WithFields(logrus.Fields{"function": "CreateChannel", "channel": name}).Debug("channel created")

	return nil
}

// DeleteChannel removes a channel. Its chain, if any, is left to the caller.
func (b *Bus) DeleteChannel(name string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	i, c := b.find(name)
	if c == nil {
		return fmt.Errorf("%w: %q", ErrUnknownChannel, name)
	}
	b.channels = slices.Delete(b.channels, i, i+1)
	b.log.WithFields(logrus.Fields{"function": "DeleteChannel", "channel": name}).Debug("channel deleted")

	return nil
}

// Channels returns the channel names in creation order.
func (b *Bus) Channels() []string {
	b.mu.Lock()
	defer b.mu.Unlock()

	names := make([]string, len(b.channels))
	for i, c := range b.channels {
		names[i] = c.name
	}
	return names
}

// SetChannelParameter stores a value passed to the channel's source.
func (b *Bus) SetChannelParameter(name, key string, value float32) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	c, err := b.lookup(name)
	if err != nil {
		return err
	}
	c.params[key] = value
	return nil
}

// ChannelParameters returns a copy of the channel's source parameters.
func (b *Bus) ChannelParameters(name string) (map[string]float32, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	c, err := b.lookup(name)
	if err != nil {
		return nil, err
	}
	return maps.Clone(c.params), nil
}

// SetChannelMix sets the channel weight, clamped to [0, 1]. NaN stores 0.
func (b *Bus) SetChannelMix(name string, mix float32) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	c, err := b.lookup(name)
	if err != nil {
		return err
	}
	c.mix = core.Clamp(core.Sanitize(mix), 0, 1)
	return nil
}

// ChannelMix returns the channel weight.
func (b *Bus) ChannelMix(name string) (float32, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	c, err := b.lookup(name)
	if err != nil {
		return 0, err
	}
	return c.mix, nil
}

// SetChannelBypass excludes a channel from the sum.
func (b *Bus) SetChannelBypass(name string, bypass bool) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	c, err := b.lookup(name)
	if err != nil {
		return err
	}
	c.bypass = bypass
	return nil
}

// AttachChain sets the effect chain a channel's signal runs through. A nil
// chain detaches.
func (b *Bus) AttachChain(name string, chain *effectchain.Chain) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	c, err := b.lookup(name)
	if err != nil {
		return err
	}
	c.chain = chain
	return nil
}

// AttachSource sets the generator a channel reads instead of the bus input.
// A nil source detaches.
func (b *Bus) AttachSource(name string, src Source) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	c, err := b.lookup(name)
	if err != nil {
		return err
	}
	c.source = src
	return nil
}

// Process mixes one interleaved stereo block and returns a new buffer of
// len(input) samples: the sum over non-bypassed channels of mix times the
// channel signal. A source error silences that channel for this block; it is
// logged and not returned.
func (b *Bus) Process(ctx context.Context, input []float32) []float32 {
	b.mu.Lock()
	defer b.mu.Unlock()

	n := len(input)
	out := make([]float32, n)
	if n == 0 {
		return out
	}

	b.acc = core.EnsureLen(b.acc, n)
	b.wide = core.EnsureLen(b.wide, n)
	b.gains = core.EnsureLen(b.gains, n)
	clear(b.acc)

	for _, c := range b.channels {
		if c.bypass || c.mix == 0 {
			continue
		}

		sig := b.scratch.Get(n)
		if b.render(ctx, c, input, sig.Samples()) {
			b.accumulate(sig.Samples(), float64(c.mix))
		}
		b.scratch.Put(sig)
	}

	for i, v := range b.acc {
		out[i] = float32(v)
	}
	return out
}

// render fills dst with the channel signal. It reports false when the
// channel is silent for this block.
func (b *Bus) render(ctx context.Context, c *channel, input, dst []float32) bool {
	if c.source == nil {
		copy(dst, input)
	} else {
		generated, err := c.source.Infer(ctx, c.sortedParams())
		if err != nil {
			b.log.WithFields(logrus.Fields{
				"function": "Process",
				"channel":  c.name,
			}).WithError(err).Warn("source failed, channel silenced")
			return false
		}
		// Zero-padded by the pool when generated is short.
		copy(dst, generated)
		for i, v := range dst {
			dst[i] = core.Sanitize(v)
		}
	}

	if c.chain != nil {
		c.chain.Process(dst, len(dst)/core.StereoChannels)
	}
	return true
}

func (b *Bus) accumulate(sig []float32, mix float64) {
	for i, v := range sig {
		b.wide[i] = float64(v)
		b.gains[i] = mix
	}
	vecmath.MulBlockInPlace(b.wide, b.gains)
	for i, v := range b.wide {
		b.acc[i] += v
	}
}
