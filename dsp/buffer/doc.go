// Package buffer provides the allocation-free storage primitives the effects
// are built on: a generic Buffer with reuse-friendly resizing, a sync.Pool
// backed Pool of them, and a fixed-capacity Ring whose active length can
// shrink and grow without reallocating.
package buffer
