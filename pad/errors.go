package pad

import "errors"

var (
	// ErrOutOfRange reports a grid coordinate outside [0,7]x[0,7].
	// Out-of-range input is rejected, never clamped or wrapped.
	ErrOutOfRange = errors.New("pad: position out of range")

	// ErrInvalidMessage reports a raw message whose status byte matches
	// no recognized note-on/note-off/control pattern.
	ErrInvalidMessage = errors.New("pad: invalid message")
)
