// Package effectchain hosts plugin effects in a serial chain.
//
// A Registry maps effect type names to factories; DefaultRegistry provides
// reverb, compressor, tremolo and beatgrinder. A Chain is configured from a
// list of Params (or a JSON description via LoadGraph) and runs each effect
// in order over one interleaved stereo buffer.
package effectchain
