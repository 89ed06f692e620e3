package plugin

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownPreset is returned by LoadPreset for names that were never
	// built in or saved.
	ErrUnknownPreset = errors.New("plugin: unknown preset")
	// ErrInvalidPresetName is returned by SavePreset for an empty name.
	ErrInvalidPresetName = errors.New("plugin: invalid preset name")
)

// InitError reports a failed Initialize call.
type InitError struct {
	Effect string
	Err    error
}

func (e *InitError) Error() string {
	return fmt.Sprintf("plugin %s: initialize: %v", e.Effect, e.Err)
}

func (e *InitError) Unwrap() error {
	return e.Err
}
