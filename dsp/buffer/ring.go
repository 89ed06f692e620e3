package buffer

import "github.com/Darbouka/VRMusic-Studio-sub002/dsp/core"

// Ring is a circular buffer with a fixed backing capacity and a variable
// active length. The read/write position is always < Len().
type Ring[T core.Sample] struct {
	full []T
	data []T
	pos  int
}

// NewRing returns a Ring whose active length equals capacity.
// Capacity below 1 is raised to 1.
func NewRing[T core.Sample](capacity int) *Ring[T] {
	capacity = max(capacity, 1)
	full := make([]T, capacity)
	return &Ring[T]{full: full, data: full}
}

// Len returns the active length.
func (r *Ring[T]) Len() int { return len(r.data) }

// Cap returns the backing capacity.
func (r *Ring[T]) Cap() int { return len(r.full) }

// Pos returns the current position.
func (r *Ring[T]) Pos() int { return r.pos }

// Resize changes the active length to n, clamped to [1, Cap()]. Cells exposed
// by growing are zeroed and the position is reset to 0.
func (r *Ring[T]) Resize(n int) {
	n = core.Clamp(n, 1, len(r.full))
	old := len(r.data)
	r.data = r.full[:n]
	if n > old {
		clear(r.data[old:])
	}
	r.pos = 0
}

// Current returns the value at the current position.
func (r *Ring[T]) Current() T { return r.data[r.pos] }

// Set stores v at the current position.
func (r *Ring[T]) Set(v T) { r.data[r.pos] = v }

// Advance moves the position forward by one, wrapping at Len().
func (r *Ring[T]) Advance() {
	r.pos++
	if r.pos >= len(r.data) {
		r.pos = 0
	}
}

// Reset zeroes the active cells and rewinds the position.
func (r *Ring[T]) Reset() {
	clear(r.data)
	r.pos = 0
}
