// Package crossover provides Linkwitz-Riley crossover networks for splitting
// an audio signal into frequency bands.
//
// The [Crossover] type implements a two-way (LP + HP) Linkwitz-Riley crossover
// of arbitrary even order. The [MultiBand] type chains two-way crossovers to
// split a signal into three or more bands without allocating per sample.
//
// Example:
//
//	mb, _ := crossover.NewMultiBand([]float64{200, 1000, 5000}, 4, 48000)
//	bands := make([]float64, mb.NumBands())
//	mb.ProcessSampleInto(x, bands)
package crossover
