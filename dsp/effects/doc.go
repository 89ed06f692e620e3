// Package effects groups the real-time effect plugins.
//
// Subpackages:
//   - github.com/Darbouka/VRMusic-Studio-sub002/dsp/effects/reverb: Freeverb-style comb/allpass reverb.
//   - github.com/Darbouka/VRMusic-Studio-sub002/dsp/effects/dynamics: compressor with multiband, adaptive,
//     spectral, transient, sidechain, parallel, mid/side and lookahead stages.
//   - github.com/Darbouka/VRMusic-Studio-sub002/dsp/effects/modulation: tremolo and BeatGrinder.
//
// Every effect implements plugin.Effect, processes interleaved stereo
// float32 blocks in place and ships the Standard, Heavy and Subtle presets.
package effects
