// Package spectrum provides a preallocated [Analyzer] that turns real frames
// into one-sided magnitude spectra via algo-fft and algo-vecmath.
package spectrum
