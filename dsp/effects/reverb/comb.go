package reverb

import (
	"math"

	"github.com/Darbouka/VRMusic-Studio-sub002/dsp/buffer"
)

// Tuning values calibrated for 44.1 kHz.
var (
	combTunings    = [numCombs]int{1116, 1188, 1277, 1356, 1422, 1491, 1557, 1617}
	allpassTunings = [numAllpasses]int{556, 441, 341, 225}
)

const (
	numCombs     = 8
	numAllpasses = 4

	combFeedback    = 0.84
	allpassFeedback = 0.5

	maxRoomScale = 1.5
)

// CombFilter is a feedback delay line with a one-pole damping stage.
// Invariants: damping+dampInverse == 1 and Pos() < Len().
type CombFilter struct {
	ring        *buffer.Ring[float32]
	base        int
	feedback    float32
	damping     float32
	dampInverse float32
}

// NewCombFilter returns a comb with the given base length. Its backing
// storage is sized for the largest room.
func NewCombFilter(base int) *CombFilter {
	c := &CombFilter{
		ring:     buffer.NewRing[float32](int(math.Round(float64(base) * maxRoomScale))),
		base:     base,
		feedback: combFeedback,
	}
	c.SetDamping(0.5)
	c.SetRoomSize(0.5)
	return c
}

// CombLength returns round(base*(0.5+roomSize)) for roomSize clamped to [0,1].
func CombLength(base int, roomSize float64) int {
	roomSize = min(max(roomSize, 0), 1)
	return int(math.Round(float64(base) * (0.5 + roomSize)))
}

// SetRoomSize resizes the delay to CombLength(base, roomSize). Growing zeroes
// the exposed cells; any resize rewinds the position to 0.
func (c *CombFilter) SetRoomSize(roomSize float64) {
	c.ring.Resize(CombLength(c.base, roomSize))
}

// SetDamping sets damping and its complement.
func (c *CombFilter) SetDamping(d float32) {
	c.damping = d
	c.dampInverse = 1 - d
}

// Process runs one sample through the comb and returns the delayed output.
func (c *CombFilter) Process(input float32) float32 {
	out := c.ring.Current()
	v := input + out*c.feedback
	// Literal damping update.
	v = v*c.damping + v*c.dampInverse
	if v > -1e-30 && v < 1e-30 {
		v = 0
	}
	c.ring.Set(v)
	c.ring.Advance()
	return out
}

// Len returns the active delay length.
func (c *CombFilter) Len() int { return c.ring.Len() }

// Pos returns the read/write position.
func (c *CombFilter) Pos() int { return c.ring.Pos() }

// Reset clears the delay line.
func (c *CombFilter) Reset() { c.ring.Reset() }
