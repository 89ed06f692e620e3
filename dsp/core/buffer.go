package core

// StereoChannels is the channel count of every host buffer.
const StereoChannels = 2

// EnsureLen returns a slice with the requested length, reusing buf capacity if possible.
func EnsureLen[T Sample](buf []T, n int) []T {
	if n <= 0 {
		return buf[:0]
	}
	if cap(buf) >= n {
		return buf[:n]
	}
	return make([]T, n)
}

// Zero sets all values in buf to 0.
func Zero[T Sample](buf []T) {
	clear(buf)
}

// Frames returns how many interleaved stereo frames of buf a process call
// may touch: min(frameCount, len(buf)/2), or 0 when frameCount <= 0.
func Frames(buf []float32, frameCount int) int {
	if frameCount <= 0 {
		return 0
	}

	return min(frameCount, len(buf)/StereoChannels)
}

// Deinterleave splits the first n stereo frames of src into l and r,
// flushing non-finite samples to zero on the way.
func Deinterleave(l, r []float64, src []float32, n int) {
	if n <= 0 {
		return
	}
	_ = l[n-1]
	_ = r[n-1]
	for i := range n {
		l[i] = float64(Sanitize(src[2*i]))
		r[i] = float64(Sanitize(src[2*i+1]))
	}
}

// Interleave writes n frames of l and r back into dst.
func Interleave(dst []float32, l, r []float64, n int) {
	if n <= 0 {
		return
	}
	_ = dst[2*n-1]
	for i := range n {
		dst[2*i] = float32(l[i])
		dst[2*i+1] = float32(r[i])
	}
}
