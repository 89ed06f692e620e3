package main

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"math"
	"time"

	ebitaudio "github.com/hajimehoshi/ebiten/v2/audio"
)

// encodeF32 converts interleaved stereo samples to the little-endian float32
// stream the audio player reads.
func encodeF32(buf []float32) []byte {
	out := make([]byte, 4*len(buf))
	for i, v := range buf {
		binary.LittleEndian.PutUint32(out[4*i:], math.Float32bits(v))
	}
	return out
}

// play blocks until the rendered buffer has been played once.
func play(buf []float32, sampleRate int) error {
	ctx := ebitaudio.NewContext(sampleRate)
	player, err := ctx.NewPlayerF32(bytes.NewReader(encodeF32(buf)))
	if err != nil {
		return fmt.Errorf("audio player: %w", err)
	}
	defer player.Close()

	player.Play()
	for player.IsPlaying() {
		time.Sleep(50 * time.Millisecond)
	}
	return nil
}
