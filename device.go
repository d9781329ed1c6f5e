// Package launchmini drives a Novation Launchpad Mini: LED writes over
// note and control-change messages, surface-wide fills, the device's
// double-buffered display mode, and polling reads of button events.
//
// The byte-level grid/color codec lives in the pad subpackage; MIDI
// backends in midiio and its driver subpackages.
package launchmini

import (
	"fmt"
	"strings"

	"github.com/padworks/launchmini/midiio"
	"github.com/padworks/launchmini/pad"
)

// GridMode selects the note layout of the square grid.
type GridMode byte

const (
	GridModeXY       GridMode = 0x01
	GridModeDrumRack GridMode = 0x02
)

// BufferSetting selects which of the device's two LED buffers is
// updated and which is displayed. ZeroOnly and OneOnly are the
// single-buffered modes; OneActive and ZeroActive enable double
// buffering.
type BufferSetting byte

const (
	BufferZeroOnly   BufferSetting = 0x00
	BufferOneActive  BufferSetting = 0x01
	BufferZeroActive BufferSetting = 0x04
	BufferOneOnly    BufferSetting = 0x05
)

// Frame is a full LED state for the 8 grid rows including the
// scene-launch column, addressed [row][col].
type Frame [8][9]pad.Color

// Device is a session with a connected Launchpad Mini. It is not safe
// for concurrent use; callers needing shared access must serialize.
type Device struct {
	in  midiio.Input
	out midiio.Output

	bufferSetting byte
}

// New wraps an already opened input/output port pair.
func New(in midiio.Input, out midiio.Output) *Device {
	return &Device{in: in, out: out}
}

// Open opens the named device on the given backend.
func Open(mi midiio.Interface, name string) (*Device, error) {
	in, out, err := mi.OpenPair(name)
	if err != nil {
		return nil, err
	}
	return New(in, out), nil
}

// Discover returns the name of the first port on the backend that looks
// like a Launchpad.
func Discover(mi midiio.Interface) (string, error) {
	devs, err := mi.Devices()
	if err != nil {
		return "", err
	}
	for _, d := range devs {
		if strings.Contains(d.Name, "Launchpad") {
			return d.Name, nil
		}
	}
	return "", fmt.Errorf("%w: no Launchpad port", midiio.ErrPortNotFound)
}

// Close closes both ports.
func (d *Device) Close() error {
	errIn := d.in.Close()
	errOut := d.out.Close()
	if errIn != nil {
		return errIn
	}
	return errOut
}

// Poll reports whether button events are pending.
func (d *Device) Poll() (bool, error) {
	return d.in.Poll()
}

// ReadMessages returns up to n pending raw messages without blocking.
func (d *Device) ReadMessages(n int) ([]pad.Message, error) {
	return d.in.Read(n)
}

// ReadEvent returns the next pending button event, or nil when none is
// pending. Raw messages that decode to nothing on the surface are
// skipped.
func (d *Device) ReadEvent() (*pad.ButtonEvent, error) {
	for {
		msgs, err := d.in.Read(1)
		if err != nil {
			return nil, err
		}
		if len(msgs) == 0 {
			return nil, nil
		}
		ev, err := pad.DecodeSurfaceMessage(msgs[0])
		if err != nil {
			continue
		}
		return &ev, nil
	}
}

// ReadEvents returns up to n pending button events, skipping raw
// messages that do not decode to a surface position.
func (d *Device) ReadEvents(n int) ([]pad.ButtonEvent, error) {
	msgs, err := d.in.Read(n)
	if err != nil {
		return nil, err
	}
	events := make([]pad.ButtonEvent, 0, len(msgs))
	for _, msg := range msgs {
		ev, err := pad.DecodeSurfaceMessage(msg)
		if err != nil {
			continue
		}
		events = append(events, ev)
	}
	return events, nil
}

// SendNote sends a raw note message. When double buffering is off, the
// copy and clear flags (0x0C) are set so the write lands in the
// displayed buffer.
func (d *Device) SendNote(on bool, key, velocity byte) error {
	if !d.IsDoubleBuffered() {
		velocity |= 0x0C
	}

	status := pad.StatusNoteOff
	if on {
		status = pad.StatusNoteOn
	}

	return d.out.Write(pad.Message{Status: status, Data1: key, Data2: velocity})
}

// SendControl sends a raw control-change message.
func (d *Device) SendControl(data1, data2 byte) error {
	return d.out.Write(pad.Message{Status: pad.StatusControl, Data1: data1, Data2: data2})
}

// SetPosition lights one pad. Rows 0-7 and columns 0-8 are valid; the
// scene-launch column is note-addressed like the grid. The automap row
// is not note-addressable, use SetAutomapRow.
func (d *Device) SetPosition(row, col uint8, color pad.Color) error {
	if row > pad.GridSize-1 || col > pad.SceneCol {
		return fmt.Errorf("%w: (%d,%d)", pad.ErrOutOfRange, row, col)
	}
	id := pad.MatPos{Row: row, Col: col}.ID()
	return d.out.Write(pad.Message{
		Status: pad.StatusNoteOn,
		Data1:  id.Key,
		Data2:  pad.EncodeColor(color),
	})
}

// SetAll sets every grid and scene-launch pad to one color.
func (d *Device) SetAll(color pad.Color) error {
	msgs := make([]pad.Message, 0, 8*9)
	for row := uint8(0); row < pad.GridSize; row++ {
		for col := uint8(0); col <= pad.SceneCol; col++ {
			id := pad.MatPos{Row: row, Col: col}.ID()
			msgs = append(msgs, pad.Message{
				Status: pad.StatusNoteOn,
				Data1:  id.Key,
				Data2:  pad.EncodeColor(color),
			})
		}
	}
	return d.out.WriteAll(msgs)
}

// SetMatrix writes a full frame in one batch.
func (d *Device) SetMatrix(frame *Frame) error {
	msgs := make([]pad.Message, 0, len(frame)*len(frame[0]))
	for row := range frame {
		for col, color := range frame[row] {
			id := pad.MatPos{Row: uint8(row), Col: uint8(col)}.ID()
			msgs = append(msgs, pad.Message{
				Status: pad.StatusNoteOn,
				Data1:  id.Key,
				Data2:  pad.EncodeColor(color),
			})
		}
	}
	return d.out.WriteAll(msgs)
}

// SetAutomapRow sets all eight round automap buttons to one color.
func (d *Device) SetAutomapRow(color pad.Color) error {
	msgs := make([]pad.Message, 0, 8)
	for col := uint8(0); col < pad.GridSize; col++ {
		id := pad.MatPos{Row: pad.AutomapRow, Col: col}.ID()
		msgs = append(msgs, pad.Message{
			Status: pad.StatusControl,
			Data1:  id.Key,
			Data2:  pad.EncodeColor(color),
		})
	}
	return d.out.WriteAll(msgs)
}

// Blackout turns off the grid and scene-launch pads, leaving the
// automap row alone.
func (d *Device) Blackout() error {
	return d.SetAll(pad.Black)
}

// FullBlackout turns off every LED on the surface.
func (d *Device) FullBlackout() error {
	if err := d.SetAll(pad.Black); err != nil {
		return err
	}
	for col := uint8(0); col < pad.GridSize; col++ {
		id := pad.MatPos{Row: pad.AutomapRow, Col: col}.ID()
		if err := d.SendControl(id.Key, pad.EncodeColor(pad.Black)); err != nil {
			return err
		}
	}
	return nil
}

// Reset restores the device's power-on state: all LEDs off, XY layout,
// single buffering.
func (d *Device) Reset() error {
	d.bufferSetting = 0
	return d.SendControl(0x00, 0x00)
}

// SelectGridMode switches the grid note layout.
func (d *Device) SelectGridMode(mode GridMode) error {
	return d.SendControl(0x00, byte(mode))
}

// IsDoubleBuffered reports whether one of the double-buffered modes is
// active.
func (d *Device) IsDoubleBuffered() bool {
	setting := d.bufferSetting & 0x0F
	return setting == byte(BufferOneActive) || setting == byte(BufferZeroActive)
}

// SetBufferMode selects the LED buffer configuration. With copy set,
// the device copies the displayed buffer into the update buffer.
func (d *Device) SetBufferMode(setting BufferSetting, copy bool) error {
	if copy {
		d.bufferSetting = 0x30
	} else {
		d.bufferSetting = 0x20
	}
	d.bufferSetting |= byte(setting)
	return d.SendControl(0x00, d.bufferSetting)
}

// SwapBuffers flips which buffer is displayed, copying the new display
// state into the update buffer when copy is set.
func (d *Device) SwapBuffers(copy bool) error {
	if d.bufferSetting&0x0F == byte(BufferOneActive) {
		return d.SetBufferMode(BufferZeroActive, copy)
	}
	return d.SetBufferMode(BufferOneActive, copy)
}

// HardSwap flips buffers without copying.
func (d *Device) HardSwap() error {
	return d.SwapBuffers(false)
}

// DisableDoubleBuffering returns to single-buffered display.
func (d *Device) DisableDoubleBuffering() error {
	return d.SetBufferMode(BufferZeroOnly, false)
}

// SetDutyCycle sets the LED refresh duty cycle. The numerator is
// clamped to [1,16], the denominator to [3,18].
func (d *Device) SetDutyCycle(numerator, denominator uint8) error {
	if numerator > 16 {
		numerator = 16
	} else if numerator < 1 {
		numerator = 1
	}
	if denominator > 18 {
		denominator = 18
	} else if denominator < 3 {
		denominator = 3
	}

	var data1, data2 byte
	if numerator < 9 {
		data1 = 0x1E
		data2 = 0x10*(numerator-1) + (denominator - 3)
	} else {
		data1 = 0x1F
		data2 = 0x10*(numerator-9) + (denominator - 3)
	}

	return d.SendControl(data1, data2)
}
