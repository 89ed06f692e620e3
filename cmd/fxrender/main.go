// Command fxrender renders a test signal through an effect chain on a
// one-channel bus and prints level and spectrum statistics of the result.
//
// Usage:
//
//	fxrender [flags]
//
// Examples:
//
//	fxrender --effect reverb --preset Heavy
//	fxrender -e compressor -e tremolo --signal noise --duration 4
//	fxrender --graph chain.json --signal sweep --play
//	fxrender --list
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/alecthomas/kong"
	"github.com/getsentry/sentry-go"
	"github.com/sirupsen/logrus"
)

// CLI defines the command-line interface.
type CLI struct {
	Effects    []string `short:"e" name:"effect" default:"reverb" help:"Effect type to append to the chain (repeatable)."`
	Preset     string   `short:"p" default:"Standard" enum:"Standard,Heavy,Subtle" help:"Preset loaded on every --effect node."`
	Graph      string   `type:"existingfile" help:"JSON chain graph; replaces --effect and --preset."`
	Signal     string   `default:"sine" enum:"sine,noise,impulse,sweep" help:"Test signal (${enum})."`
	Freq       float64  `default:"440" help:"Sine frequency in Hz."`
	Level      float64  `default:"-6" help:"Signal peak level in dBFS."`
	Duration   float64  `short:"d" default:"2" help:"Rendered length in seconds."`
	SampleRate int      `name:"sample-rate" default:"44100" help:"Sample rate in Hz."`
	BlockSize  int      `name:"block-size" default:"512" help:"Frames per processing block."`
	Mix        float64  `default:"1" help:"Bus channel mix in [0,1]."`
	Seed       int64    `default:"1" help:"Noise seed."`
	Play       bool     `help:"Play the rendered audio."`
	List       bool     `help:"List effect types and exit."`
	LogLevel   string   `name:"log-level" default:"warn" enum:"panic,fatal,error,warn,info,debug,trace" help:"Log level (${enum})."`
	SentryDSN  string   `name:"sentry-dsn" env:"SENTRY_DSN" help:"Report initialization failures to Sentry."`
}

// Validate rejects settings the renderer cannot work with.
func (c *CLI) Validate() error {
	switch {
	case c.Level > 0:
		return fmt.Errorf("--level must be <= 0 dBFS: %g", c.Level)
	case c.Duration <= 0:
		return fmt.Errorf("--duration must be > 0: %g", c.Duration)
	case c.SampleRate <= 0:
		return fmt.Errorf("--sample-rate must be > 0: %d", c.SampleRate)
	case c.BlockSize <= 0:
		return fmt.Errorf("--block-size must be > 0: %d", c.BlockSize)
	}
	return nil
}

func newParser(cli *CLI) (*kong.Kong, error) {
	return kong.New(cli,
		kong.Name("fxrender"),
		kong.Description("Render a test signal through an effect chain and report its statistics."),
		kong.UsageOnError(),
	)
}

func newLogger(level string) (*logrus.Entry, error) {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return nil, err
	}
	logger := logrus.New()
	logger.SetOutput(os.Stderr)
	logger.SetLevel(lvl)
	return logger.WithField("component", "fxrender"), nil
}

func main() {
	cli := &CLI{}
	parser, err := newParser(cli)
	if err != nil {
		panic(err)
	}
	_, err = parser.Parse(os.Args[1:])
	parser.FatalIfErrorf(err)

	log, err := newLogger(cli.LogLevel)
	parser.FatalIfErrorf(err)

	if cli.SentryDSN != "" {
		if err := sentry.Init(sentry.ClientOptions{Dsn: cli.SentryDSN}); err != nil {
			log.WithError(err).Warn("sentry disabled")
		} else {
			defer sentry.Flush(2 * time.Second)
		}
	}

	if err := run(cli, log, os.Stdout); err != nil {
		if cli.SentryDSN != "" {
			sentry.CaptureException(err)
			sentry.Flush(2 * time.Second)
		}
		printError(os.Stderr, err)
		os.Exit(1)
	}
}
