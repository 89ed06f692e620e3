package testutil

import (
	"math"
	"math/rand"
)

// Sine generates a deterministic mono sine wave.
func Sine(freqHz, sampleRate, amplitude float64, length int) []float64 {
	out := make([]float64, length)
	step := 2 * math.Pi * freqHz / sampleRate
	for i := range out {
		out[i] = amplitude * math.Sin(step*float64(i))
	}
	return out
}

// StereoSine generates frames of the same sine on both channels,
// interleaved.
func StereoSine(freqHz, sampleRate, amplitude float64, frames int) []float32 {
	mono := Sine(freqHz, sampleRate, amplitude, frames)
	return Interleave(mono, mono)
}

// StereoNoise generates independent white noise per channel with a fixed
// seed.
func StereoNoise(seed int64, amplitude float64, frames int) []float32 {
	out := make([]float32, 2*frames)
	rng := rand.New(rand.NewSource(seed))
	for i := range out {
		out[i] = float32((rng.Float64()*2 - 1) * amplitude)
	}
	return out
}

// StereoImpulse returns frames of silence with a unit frame at pos.
func StereoImpulse(frames, pos int) []float32 {
	out := make([]float32, 2*frames)
	if pos >= 0 && pos < frames {
		out[2*pos], out[2*pos+1] = 1, 1
	}
	return out
}

// StereoDC returns frames with every sample set to value.
func StereoDC(value float32, frames int) []float32 {
	out := make([]float32, 2*frames)
	for i := range out {
		out[i] = value
	}
	return out
}

// Interleave packs two mono channels into an interleaved float32 buffer of
// min(len(l), len(r)) frames.
func Interleave(l, r []float64) []float32 {
	n := min(len(l), len(r))
	out := make([]float32, 2*n)
	for i := range n {
		out[2*i] = float32(l[i])
		out[2*i+1] = float32(r[i])
	}
	return out
}

// Channel extracts one channel (0 = left, 1 = right) from an interleaved
// stereo buffer.
func Channel(buf []float32, ch int) []float32 {
	out := make([]float32, len(buf)/2)
	for i := range out {
		out[i] = buf[2*i+ch]
	}
	return out
}
