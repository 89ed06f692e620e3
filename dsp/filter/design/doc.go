// Package design computes biquad coefficients: RBJ cookbook lowpass and
// highpass sections, Butterworth cascades and the Linkwitz-Riley cascades
// used by dsp/filter/crossover.
package design
