package crossover

import (
	"fmt"

	"github.com/Darbouka/VRMusic-Studio-sub002/dsp/filter/biquad"
	"github.com/Darbouka/VRMusic-Studio-sub002/dsp/filter/design"
)

// Crossover is a two-way Linkwitz-Riley crossover network that splits
// an input signal into complementary lowpass and highpass outputs whose
// sum is allpass.
type Crossover struct {
	lp    *biquad.Chain
	hp    *biquad.Chain
	freq  float64
	order int
}

// New creates a two-way Linkwitz-Riley crossover at the given frequency
// and order. The order must be a positive even integer.
func New(freq float64, order int, sampleRate float64) (*Crossover, error) {
	if order <= 0 || order%2 != 0 {
		return nil, fmt.Errorf("crossover: order must be a positive even integer, got %d", order)
	}
	if sampleRate <= 0 {
		return nil, fmt.Errorf("crossover: sample rate must be positive, got %v", sampleRate)
	}
	if freq <= 0 || freq >= sampleRate/2 {
		return nil, fmt.Errorf("crossover: frequency must be in (0, %v), got %v", sampleRate/2, freq)
	}

	return &Crossover{
		lp:    biquad.NewChain(design.LinkwitzRileyLP(freq, order, sampleRate)),
		hp:    biquad.NewChain(design.LinkwitzRileyHP(freq, order, sampleRate)),
		freq:  freq,
		order: order,
	}, nil
}

// ProcessSample filters one input sample and returns the lowpass and
// highpass outputs.
func (c *Crossover) ProcessSample(x float64) (lo, hi float64) {
	return c.lp.ProcessSample(x), c.hp.ProcessSample(x)
}

// Freq returns the crossover frequency in Hz.
func (c *Crossover) Freq() float64 { return c.freq }

// Order returns the Linkwitz-Riley order (always even).
func (c *Crossover) Order() int { return c.order }

// Reset clears the internal filter states of both chains.
func (c *Crossover) Reset() {
	c.lp.Reset()
	c.hp.Reset()
}

// MultiBand is a multi-way crossover built from cascaded two-way crossovers.
// N crossover frequencies produce N+1 bands ordered from low to high. Each
// stage's highpass output feeds the next stage.
type MultiBand struct {
	stages []*Crossover
}

// NewMultiBand creates a multi-way crossover. Frequencies must be strictly
// ascending and within (0, sampleRate/2).
func NewMultiBand(freqs []float64, order int, sampleRate float64) (*MultiBand, error) {
	if len(freqs) == 0 {
		return nil, fmt.Errorf("crossover: at least one frequency is required")
	}
	for i := 1; i < len(freqs); i++ {
		if freqs[i] <= freqs[i-1] {
			return nil, fmt.Errorf("crossover: frequencies must be strictly ascending, got %.1f after %.1f", freqs[i], freqs[i-1])
		}
	}

	stages := make([]*Crossover, len(freqs))
	for i, f := range freqs {
		xo, err := New(f, order, sampleRate)
		if err != nil {
			return nil, fmt.Errorf("crossover: stage %d: %w", i, err)
		}
		stages[i] = xo
	}

	return &MultiBand{stages: stages}, nil
}

// NumBands returns the number of output bands.
func (m *MultiBand) NumBands() int { return len(m.stages) + 1 }

// ProcessSampleInto filters one sample and writes the band outputs into
// bands, which must have at least NumBands() elements.
func (m *MultiBand) ProcessSampleInto(x float64, bands []float64) {
	remainder := x
	for i, stage := range m.stages {
		lo, hi := stage.ProcessSample(remainder)
		bands[i] = lo
		remainder = hi
	}
	bands[len(m.stages)] = remainder
}

// Reset clears all internal filter states.
func (m *MultiBand) Reset() {
	for _, s := range m.stages {
		s.Reset()
	}
}
