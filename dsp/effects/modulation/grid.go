package modulation

import (
	"math"

	"github.com/Darbouka/VRMusic-Studio-sub002/dsp/core"
)

// Grid is one BeatGrinder voice: a stereo ring buffer with independent write
// and read heads. Invariant: WritePos() and ReadPos() are below Capacity().
type Grid struct {
	buf      []float32
	capacity int
	writePos int
	readPos  int

	timeFraction float64
	time         float64
	reverse      bool
}

// NewGrid returns a grid holding capacityFrames stereo frames (at least 1).
func NewGrid(capacityFrames int) *Grid {
	capacityFrames = max(capacityFrames, 1)
	return &Grid{
		buf:      make([]float32, core.StereoChannels*capacityFrames),
		capacity: capacityFrames,
	}
}

// Capacity returns the ring length in frames.
func (g *Grid) Capacity() int { return g.capacity }

// WritePos returns the write head.
func (g *Grid) WritePos() int { return g.writePos }

// ReadPos returns the read head.
func (g *Grid) ReadPos() int { return g.readPos }

// Reversed reports whether the read head runs backwards.
func (g *Grid) Reversed() bool { return g.reverse }

// Time returns the block-time accumulator.
func (g *Grid) Time() float64 { return g.time }

// SetTimeFraction sets the per-block time increment.
func (g *Grid) SetTimeFraction(f float64) { g.timeFraction = f }

// Tick advances the time accumulator by one block. With toggle set, each
// whole unit of accumulated time flips the read direction. Without it the
// grid runs forward and the accumulator stays in [0, 1).
func (g *Grid) Tick(toggle bool) {
	g.time += g.timeFraction
	if !toggle {
		g.time -= math.Floor(g.time)
		g.reverse = false
		return
	}
	if g.time >= 1 {
		g.time--
		g.reverse = !g.reverse
	}
}

// Step writes one frame and returns the frame warp frames behind the read
// head.
func (g *Grid) Step(l, r float32, warp int) (float32, float32) {
	w := 2 * g.writePos
	g.buf[w], g.buf[w+1] = l, r
	if !g.reverse {
		g.readPos = g.writePos
	}
	if warp < 0 {
		warp = -warp
	}

	idx := 2 * core.Wrap(g.readPos-warp, g.capacity)
	outL, outR := g.buf[idx], g.buf[idx+1]

	g.writePos++
	if g.writePos == g.capacity {
		g.writePos = 0
	}
	if g.reverse {
		g.readPos = core.Wrap(g.readPos-1, g.capacity)
	}

	return outL, outR
}

// Reset clears the buffer, both heads and the time accumulator.
func (g *Grid) Reset() {
	clear(g.buf)
	g.writePos, g.readPos = 0, 0
	g.time = 0
	g.reverse = false
}
