// Package plugin defines the contract every effect implements and the Base
// type effects embed for parameters, presets, bypass and lifecycle state.
//
// Threading model: ProcessAudio runs on the real-time audio thread and must
// not allocate, block, log or panic. Every other method is a control-thread
// operation and may allocate and log freely.
package plugin
