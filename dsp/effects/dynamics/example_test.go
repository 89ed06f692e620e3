package dynamics_test

import (
	"fmt"

	"github.com/Darbouka/VRMusic-Studio-sub002/dsp/core"
	"github.com/Darbouka/VRMusic-Studio-sub002/dsp/effects/dynamics"
)

func ExampleCompressor() {
	c := dynamics.New()
	if err := c.Initialize(core.ProcessorConfig{SampleRate: 48000, BlockSize: 256}); err != nil {
		fmt.Println(err)
		return
	}
	defer c.Shutdown()

	buf := make([]float32, 2*256)
	c.ProcessAudio(buf, 256)

	_ = c.LoadPreset("Subtle")
	fmt.Println(c.Parameter("parallel"), c.Parameter("mix"))
	fmt.Println(buf[0], buf[511])

	// Output:
	// 0.5 0.5
	// 0 0
}
