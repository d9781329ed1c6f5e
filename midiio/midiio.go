// Package midiio defines the ports a Launchpad session talks through,
// keeping the device logic independent of the MIDI library underneath.
// Concrete backends live in the gomididrv and portmididrv subpackages.
package midiio

import "github.com/padworks/launchmini/pad"

// BufferSize is the event buffer length backends allocate per stream.
const BufferSize = 1024

// Direction denotes whether a port carries incoming or outgoing messages.
type Direction int

const (
	DirInput Direction = iota
	DirOutput
)

func (d Direction) String() string {
	if d == DirInput {
		return "input"
	}
	return "output"
}

// DeviceInfo describes one MIDI port known to the backend.
type DeviceInfo struct {
	ID        int
	Name      string
	Direction Direction
}

func (d DeviceInfo) IsInput() bool  { return d.Direction == DirInput }
func (d DeviceInfo) IsOutput() bool { return d.Direction == DirOutput }

// Input is a readable MIDI port. Only 3-byte short messages cross this
// boundary; backends drop SysEx and realtime traffic.
type Input interface {
	// Poll reports whether messages are pending without consuming them.
	Poll() (bool, error)

	// Read returns up to max pending messages, never blocking.
	Read(max int) ([]pad.Message, error)

	Close() error
}

// Output is a writable MIDI port.
type Output interface {
	Write(msg pad.Message) error
	WriteAll(msgs []pad.Message) error
	Close() error
}

// Interface is a MIDI backend: port enumeration and port opening by
// device name.
type Interface interface {
	Devices() ([]DeviceInfo, error)

	OpenInput(name string) (Input, error)
	OpenOutput(name string) (Output, error)

	// OpenPair opens the input and the output port sharing one device
	// name, which is how the Launchpad presents itself.
	OpenPair(name string) (Input, Output, error)

	Close() error
}
