package main

import (
	"context"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/Darbouka/VRMusic-Studio-sub002/dsp/bus"
	"github.com/Darbouka/VRMusic-Studio-sub002/dsp/core"
	"github.com/Darbouka/VRMusic-Studio-sub002/dsp/effectchain"
	"github.com/Darbouka/VRMusic-Studio-sub002/dsp/signal"
)

const channelName = "main"

func run(cli *CLI, log *logrus.Entry, out io.Writer) error {
	registry := effectchain.DefaultRegistry(effectchain.WithEffectLogger(log))
	if cli.List {
		for _, t := range registry.Types() {
			fmt.Fprintln(out, t)
		}
		return nil
	}

	params, err := cli.chainParams()
	if err != nil {
		return err
	}

	chain := effectchain.New(effectchain.Context{
		SampleRate: float64(cli.SampleRate),
		BlockSize:  cli.BlockSize,
	}, registry, effectchain.WithLogger(log))
	defer chain.Close()

	if err := chain.Configure(params); err != nil {
		return fmt.Errorf("configure chain: %w", err)
	}

	b := bus.New(bus.WithLogger(log))
	if err := b.CreateChannel(channelName); err != nil {
		return err
	}
	if err := b.SetChannelMix(channelName, float32(cli.Mix)); err != nil {
		return err
	}
	if err := b.AttachChain(channelName, chain); err != nil {
		return err
	}

	input, err := cli.testSignal()
	if err != nil {
		return err
	}

	rendered := render(context.Background(), b, input, cli.BlockSize)
	log.WithFields(logrus.Fields{
		"function": "run",
		"frames":   len(rendered) / core.StereoChannels,
		"effects":  chain.IDs(),
	}).Info("rendered")

	if err := writeReport(out, chain.IDs(), input, rendered, float64(cli.SampleRate)); err != nil {
		return err
	}

	if cli.Play {
		return play(rendered, cli.SampleRate)
	}
	return nil
}

// chainParams returns the chain description from --graph, or one node per
// --effect with the selected preset.
func (c *CLI) chainParams() ([]effectchain.Params, error) {
	if c.Graph != "" {
		raw, err := os.ReadFile(c.Graph)
		if err != nil {
			return nil, fmt.Errorf("read graph: %w", err)
		}
		return effectchain.ParseGraph(string(raw))
	}

	params := make([]effectchain.Params, 0, len(c.Effects))
	for i, t := range c.Effects {
		params = append(params, effectchain.Params{
			ID:   fmt.Sprintf("%s-%d", t, i+1),
			Type: t,
			Str:  map[string]string{effectchain.PresetKey: c.Preset},
		})
	}
	return params, nil
}

// testSignal generates the interleaved stereo input block.
func (c *CLI) testSignal() ([]float32, error) {
	g := signal.NewGeneratorWithOptions(
		[]core.ProcessorOption{core.WithSampleRate(float64(c.SampleRate))},
		signal.WithSeed(c.Seed),
	)
	frames := int(math.Round(c.Duration * float64(c.SampleRate)))
	amplitude := core.DBToLinear(c.Level)

	var (
		left, right []float64
		err         error
	)
	switch c.Signal {
	case "noise":
		left, err = g.WhiteNoise(amplitude, frames)
		if err == nil {
			g.SetSeed(c.Seed + 1)
			right, err = g.WhiteNoise(amplitude, frames)
		}
	case "impulse":
		left, err = g.Impulse(amplitude, frames, 0)
	case "sweep":
		left, err = g.LogSweep(20, math.Min(20000, 0.45*float64(c.SampleRate)), amplitude, frames)
	default:
		left, err = g.Sine(c.Freq, amplitude, frames)
	}
	if err != nil {
		return nil, fmt.Errorf("generate %s: %w", c.Signal, err)
	}
	return signal.Stereo(left, right), nil
}

// render runs input through the bus in blocks of blockSize frames.
func render(ctx context.Context, b *bus.Bus, input []float32, blockSize int) []float32 {
	out := make([]float32, 0, len(input))
	step := blockSize * core.StereoChannels
	for start := 0; start < len(input); start += step {
		end := min(start+step, len(input))
		out = append(out, b.Process(ctx, input[start:end])...)
	}
	return out
}
