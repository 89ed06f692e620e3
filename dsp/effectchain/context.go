package effectchain

import "github.com/Darbouka/VRMusic-Studio-sub002/dsp/core"

// Context provides the processing environment effects are initialized with.
type Context struct {
	SampleRate float64
	BlockSize  int
}

// Config converts the context into a processor configuration. Unset or
// non-positive fields take the core defaults.
func (c Context) Config() core.ProcessorConfig {
	return core.ApplyProcessorOptions(
		core.WithSampleRate(c.SampleRate),
		core.WithBlockSize(c.BlockSize),
	)
}
