package midiio

import "errors"

var (
	// ErrPortNotFound reports that no port matched the requested name.
	ErrPortNotFound = errors.New("midiio: port not found")

	// ErrNotAnInput reports that the named device has no input port.
	ErrNotAnInput = errors.New("midiio: not an input device")

	// ErrNotAnOutput reports that the named device has no output port.
	ErrNotAnOutput = errors.New("midiio: not an output device")

	// ErrNoDefaultDevice reports that the backend has no default device
	// to fall back on.
	ErrNoDefaultDevice = errors.New("midiio: no default device")
)
