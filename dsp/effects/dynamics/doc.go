// Package dynamics provides the stereo compressor effect.
//
// The core is an envelope follower driving a 1/(envelope+epsilon) gain. It
// can be extended with detector stages (sidechain key, lookahead) and
// block-scalar stages (adaptive, spectral, transient, multiband) that each
// scale the block by (1-p)+p*g. Parallel, mid/side and mix stages shape the
// output. Every stage is skipped when its amount is 0.
//
// Build with -tags fastmath to replace the exp/sqrt calls with
// approximations from algo-approx.
package dynamics
