// Package modulation provides time-varying effects: an LFO-driven stereo
// tremolo and the BeatGrinder, a bank of sixteen ring-buffer grids whose
// read positions are warped by swing, shuffle and stutter curves.
package modulation
