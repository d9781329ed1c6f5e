// Package portmididrv backs midiio with the PortMidi bindings from
// github.com/rakyll/portmidi. PortMidi's poll/read stream model maps
// onto midiio directly.
package portmididrv

import (
	"fmt"

	"github.com/rakyll/portmidi"

	"github.com/padworks/launchmini/midiio"
	"github.com/padworks/launchmini/pad"
)

// Driver implements midiio.Interface on top of PortMidi.
type Driver struct{}

// New initializes the PortMidi library. Callers must Close the driver
// to release it.
func New() (*Driver, error) {
	if err := portmidi.Initialize(); err != nil {
		return nil, fmt.Errorf("failed to initialize portmidi: %w", err)
	}
	return &Driver{}, nil
}

func (d *Driver) Devices() ([]midiio.DeviceInfo, error) {
	var devs []midiio.DeviceInfo
	for i := 0; i < portmidi.CountDevices(); i++ {
		info := portmidi.Info(portmidi.DeviceID(i))
		if info == nil {
			continue
		}
		if info.IsInputAvailable {
			devs = append(devs, midiio.DeviceInfo{
				ID:        i,
				Name:      info.Name,
				Direction: midiio.DirInput,
			})
		}
		if info.IsOutputAvailable {
			devs = append(devs, midiio.DeviceInfo{
				ID:        i,
				Name:      info.Name,
				Direction: midiio.DirOutput,
			})
		}
	}
	return devs, nil
}

func (d *Driver) OpenInput(name string) (midiio.Input, error) {
	id, ok := d.findDevice(name, midiio.DirInput)
	if !ok {
		return nil, fmt.Errorf("%w: input %q", midiio.ErrNotAnInput, name)
	}
	stream, err := portmidi.NewInputStream(id, midiio.BufferSize)
	if err != nil {
		return nil, fmt.Errorf("failed to open input stream: %w", err)
	}
	return &input{stream: stream}, nil
}

func (d *Driver) OpenOutput(name string) (midiio.Output, error) {
	id, ok := d.findDevice(name, midiio.DirOutput)
	if !ok {
		return nil, fmt.Errorf("%w: output %q", midiio.ErrNotAnOutput, name)
	}
	stream, err := portmidi.NewOutputStream(id, midiio.BufferSize, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to open output stream: %w", err)
	}
	return &output{stream: stream}, nil
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
	return portmidi.Terminate()
}

func (d *Driver) findDevice(name string, dir midiio.Direction) (portmidi.DeviceID, bool) {
	for i := 0; i < portmidi.CountDevices(); i++ {
		id := portmidi.DeviceID(i)
		info := portmidi.Info(id)
		if info == nil || info.Name != name {
			continue
		}
		if dir == midiio.DirInput && info.IsInputAvailable {
			return id, true
		}
		if dir == midiio.DirOutput && info.IsOutputAvailable {
			return id, true
		}
	}
	return 0, false
}

type input struct {
	stream *portmidi.Stream
}

func (in *input) Poll() (bool, error) {
	return in.stream.Poll()
}

func (in *input) Read(max int) ([]pad.Message, error) {
	events, err := in.stream.Read(max)
	if err != nil {
		return nil, fmt.Errorf("failed to read input stream: %w", err)
	}

	msgs := make([]pad.Message, 0, len(events))
	for _, ev := range events {
		if len(ev.SysEx) > 0 {
			continue
		}
		msgs = append(msgs, pad.Message{
			Status: byte(ev.Status),
			Data1:  byte(ev.Data1),
			Data2:  byte(ev.Data2),
		})
	}
	return msgs, nil
}

func (in *input) Close() error {
	return in.stream.Close()
}

type output struct {
	stream *portmidi.Stream
}

func (out *output) Write(msg pad.Message) error {
	return out.stream.WriteShort(int64(msg.Status), int64(msg.Data1), int64(msg.Data2))
}

func (out *output) WriteAll(msgs []pad.Message) error {
	events := make([]portmidi.Event, len(msgs))
	for i, msg := range msgs {
		events[i] = portmidi.Event{
			Status: int64(msg.Status),
			Data1:  int64(msg.Data1),
			Data2:  int64(msg.Data2),
		}
	}
	return out.stream.Write(events)
}

func (out *output) Close() error {
	return out.stream.Close()
}
