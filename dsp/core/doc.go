// Package core holds the numeric helpers and processor configuration shared
// by every effect: clamping, non-finite sanitizing, ring index wrapping and
// interleaved stereo frame accounting.
package core
