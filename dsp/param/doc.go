// Package param implements the per-effect parameter and automation registry.
//
// Descriptors are fixed when the registry is built. Values live in an
// immutable snapshot behind an atomic pointer: control-thread writers clamp,
// copy and swap under a writer-only mutex, and the audio thread takes one
// lock-free [Registry.Snapshot] per block. Several values changed through
// [Registry.Apply] become visible together.
package param
