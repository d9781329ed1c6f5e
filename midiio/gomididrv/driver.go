// Package gomididrv backs midiio with gitlab.com/gomidi/midi/v2 using
// the rtmidi driver. gomidi delivers input through a callback listener,
// which is adapted onto midiio's Poll/Read semantics with a buffered
// channel.
package gomididrv

import (
	"fmt"

	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/drivers"
	_ "gitlab.com/gomidi/midi/v2/drivers/rtmididrv" // Register rtmidi driver

	"github.com/padworks/launchmini/midiio"
	"github.com/padworks/launchmini/pad"
)

// Driver implements midiio.Interface on top of gomidi.
type Driver struct{}

func New() *Driver {
	return &Driver{}
}

func (d *Driver) Devices() ([]midiio.DeviceInfo, error) {
	var devs []midiio.DeviceInfo
	for _, in := range midi.GetInPorts() {
		devs = append(devs, midiio.DeviceInfo{
			ID:        in.Number(),
			Name:      in.String(),
			Direction: midiio.DirInput,
		})
	}
	for _, out := range midi.GetOutPorts() {
		devs = append(devs, midiio.DeviceInfo{
			ID:        out.Number(),
			Name:      out.String(),
			Direction: midiio.DirOutput,
		})
	}
	return devs, nil
}

func (d *Driver) OpenInput(name string) (midiio.Input, error) {
	port := findIn(name)
	if port == nil {
		return nil, fmt.Errorf("%w: input %q", midiio.ErrNotAnInput, name)
	}
	return listenTo(port)
}

func (d *Driver) OpenOutput(name string) (midiio.Output, error) {
	port := findOut(name)
	if port == nil {
		return nil, fmt.Errorf("%w: output %q", midiio.ErrNotAnOutput, name)
	}
	send, err := midi.SendTo(port)
	if err != nil {
		return nil, fmt.Errorf("failed to create sender: %w", err)
	}
	return &output{send: send}, nil
}

func (d *Driver) OpenPair(name string) (midiio.Input, midiio.Output, error) {
	in, err := d.OpenInput(name)
	if err != nil {
		return nil, nil, err
	}
	out, err := d.OpenOutput(name)
	if err != nil {
		in.Close()
		return nil, nil, err
	}
	return in, out, nil
}

func (d *Driver) Close() error {
	midi.CloseDriver()
	return nil
}

func findIn(name string) drivers.In {
	for _, in := range midi.GetInPorts() {
		if in.String() == name {
			return in
		}
	}
	return nil
}

func findOut(name string) drivers.Out {
	for _, out := range midi.GetOutPorts() {
		if out.String() == name {
			return out
		}
	}
	return nil
}

// input buffers listener callbacks so callers can poll. Messages
// arriving while the buffer is full are dropped.
type input struct {
	msgs chan pad.Message
	stop func()
}

func listenTo(port drivers.In) (*input, error) {
	in := &input{msgs: make(chan pad.Message, midiio.BufferSize)}

	stop, err := midi.ListenTo(port, func(msg midi.Message, timestampms int32) {
		var channel, key, velocity uint8

		var raw pad.Message
		switch {
		case msg.GetNoteOn(&channel, &key, &velocity):
			raw = pad.Message{Status: pad.StatusNoteOn | channel, Data1: key, Data2: velocity}
		case msg.GetNoteOff(&channel, &key, &velocity):
			raw = pad.Message{Status: pad.StatusNoteOff | channel, Data1: key, Data2: velocity}
		case msg.GetControlChange(&channel, &key, &velocity):
			raw = pad.Message{Status: pad.StatusControl | channel, Data1: key, Data2: velocity}
		default:
			return
		}

		select {
		case in.msgs <- raw:
		default:
		}
	})
	if err != nil {
		return nil, fmt.Errorf("failed to start listening: %w", err)
	}

	in.stop = stop
	return in, nil
}

func (in *input) Poll() (bool, error) {
	return len(in.msgs) > 0, nil
}

func (in *input) Read(max int) ([]pad.Message, error) {
	var msgs []pad.Message
	for len(msgs) < max {
		select {
		case msg := <-in.msgs:
			msgs = append(msgs, msg)
		default:
			return msgs, nil
		}
	}
	return msgs, nil
}

func (in *input) Close() error {
	if in.stop != nil {
		in.stop()
		in.stop = nil
	}
	return nil
}

type output struct {
	send func(midi.Message) error
}

func (out *output) Write(msg pad.Message) error {
	channel := msg.Status & 0x0F

	switch msg.Status & 0xF0 {
	case pad.StatusNoteOn:
		return out.send(midi.NoteOn(channel, msg.Data1, msg.Data2))
	case pad.StatusNoteOff:
		return out.send(midi.NoteOffVelocity(channel, msg.Data1, msg.Data2))
	case pad.StatusControl:
		return out.send(midi.ControlChange(channel, msg.Data1, msg.Data2))
	}
	return fmt.Errorf("%w: status 0x%02X", pad.ErrInvalidMessage, msg.Status)
}

func (out *output) WriteAll(msgs []pad.Message) error {
	for _, msg := range msgs {
		if err := out.Write(msg); err != nil {
			return err
		}
	}
	return nil
}

func (out *output) Close() error {
	return nil
}
