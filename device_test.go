package launchmini

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/padworks/launchmini/midiio"
	"github.com/padworks/launchmini/pad"
)

type fakeOutput struct {
	msgs   []pad.Message
	closed bool
}

func (f *fakeOutput) Write(msg pad.Message) error {
	f.msgs = append(f.msgs, msg)
	return nil
}

func (f *fakeOutput) WriteAll(msgs []pad.Message) error {
	f.msgs = append(f.msgs, msgs...)
	return nil
}

func (f *fakeOutput) Close() error {
	f.closed = true
	return nil
}

type fakeInput struct {
	msgs   []pad.Message
	closed bool
}

func (f *fakeInput) Poll() (bool, error) {
	return len(f.msgs) > 0, nil
}

func (f *fakeInput) Read(max int) ([]pad.Message, error) {
	n := min(max, len(f.msgs))
	out := f.msgs[:n]
	f.msgs = f.msgs[n:]
	return out, nil
}

func (f *fakeInput) Close() error {
	f.closed = true
	return nil
}

type fakeInterface struct {
	names []string
	in    *fakeInput
	out   *fakeOutput
}

func (f *fakeInterface) Devices() ([]midiio.DeviceInfo, error) {
	var devs []midiio.DeviceInfo
	for i, name := range f.names {
		devs = append(devs,
			midiio.DeviceInfo{ID: i, Name: name, Direction: midiio.DirInput},
			midiio.DeviceInfo{ID: i, Name: name, Direction: midiio.DirOutput},
		)
	}
	return devs, nil
}

func (f *fakeInterface) OpenInput(name string) (midiio.Input, error)   { return f.in, nil }
func (f *fakeInterface) OpenOutput(name string) (midiio.Output, error) { return f.out, nil }

func (f *fakeInterface) OpenPair(name string) (midiio.Input, midiio.Output, error) {
	return f.in, f.out, nil
}

func (f *fakeInterface) Close() error { return nil }

func newTestDevice() (*Device, *fakeInput, *fakeOutput) {
	in := &fakeInput{}
	out := &fakeOutput{}
	return New(in, out), in, out
}

func TestSetPosition(t *testing.T) {
	d, _, out := newTestDevice()

	require.NoError(t, d.SetPosition(3, 5, pad.MedYellow))
	require.Len(t, out.msgs, 1)
	assert.Equal(t, pad.Message{Status: 0x90, Data1: 0x35, Data2: 0x22}, out.msgs[0])
}

func TestSetPositionSceneColumn(t *testing.T) {
	d, _, out := newTestDevice()

	require.NoError(t, d.SetPosition(1, 8, pad.Red))
	require.Len(t, out.msgs, 1)
	assert.Equal(t, pad.Message{Status: 0x90, Data1: 0x18, Data2: 0x03}, out.msgs[0])
}

func TestSetPositionOutOfRange(t *testing.T) {
	d, _, out := newTestDevice()

	assert.ErrorIs(t, d.SetPosition(8, 0, pad.Red), pad.ErrOutOfRange)
	assert.ErrorIs(t, d.SetPosition(0, 9, pad.Red), pad.ErrOutOfRange)
	assert.Empty(t, out.msgs)
}

func TestSetAll(t *testing.T) {
	d, _, out := newTestDevice()

	require.NoError(t, d.SetAll(pad.Green))
	require.Len(t, out.msgs, 8*9)
	for _, msg := range out.msgs {
		assert.Equal(t, byte(0x90), msg.Status)
		assert.Equal(t, byte(0x30), msg.Data2)
	}
	// First cell and last scene pad.
	assert.Equal(t, byte(0x00), out.msgs[0].Data1)
	assert.Equal(t, byte(0x78), out.msgs[len(out.msgs)-1].Data1)
}

func TestSetMatrix(t *testing.T) {
	d, _, out := newTestDevice()

	var frame Frame
	frame[2][8] = pad.Orange
	frame[0][0] = pad.DimGreen

	require.NoError(t, d.SetMatrix(&frame))
	require.Len(t, out.msgs, 8*9)
	assert.Equal(t, pad.Message{Status: 0x90, Data1: 0x00, Data2: 0x10}, out.msgs[0])
	assert.Equal(t, pad.Message{Status: 0x90, Data1: 0x28, Data2: 0x23}, out.msgs[2*9+8])
}

func TestSetAutomapRow(t *testing.T) {
	d, _, out := newTestDevice()

	require.NoError(t, d.SetAutomapRow(pad.Yellow))
	require.Len(t, out.msgs, 8)
	for i, msg := range out.msgs {
		assert.Equal(t, byte(0xB0), msg.Status)
		assert.Equal(t, byte(0x68+i), msg.Data1)
		assert.Equal(t, byte(0x32), msg.Data2)
	}
}

func TestSendNoteBufferFlags(t *testing.T) {
	d, _, out := newTestDevice()

	// Single-buffered: copy+clear flags are ORed in.
	require.NoError(t, d.SendNote(true, 0x00, 0x30))
	require.Len(t, out.msgs, 1)
	assert.Equal(t, pad.Message{Status: 0x90, Data1: 0x00, Data2: 0x3C}, out.msgs[0])

	require.NoError(t, d.SendNote(false, 0x01, 0x00))
	assert.Equal(t, pad.Message{Status: 0x80, Data1: 0x01, Data2: 0x0C}, out.msgs[1])

	// Double-buffered: velocity goes out untouched.
	require.NoError(t, d.SetBufferMode(BufferOneActive, false))
	require.NoError(t, d.SendNote(true, 0x02, 0x30))
	assert.Equal(t, pad.Message{Status: 0x90, Data1: 0x02, Data2: 0x30}, out.msgs[3])
}

func TestBufferModes(t *testing.T) {
	d, _, out := newTestDevice()

	assert.False(t, d.IsDoubleBuffered())

	require.NoError(t, d.SetBufferMode(BufferOneActive, false))
	assert.Equal(t, pad.Message{Status: 0xB0, Data1: 0x00, Data2: 0x21}, out.msgs[0])
	assert.True(t, d.IsDoubleBuffered())

	require.NoError(t, d.SetBufferMode(BufferOneActive, true))
	assert.Equal(t, pad.Message{Status: 0xB0, Data1: 0x00, Data2: 0x31}, out.msgs[1])

	// Swap flips to the other double-buffered mode.
	require.NoError(t, d.SwapBuffers(false))
	assert.Equal(t, pad.Message{Status: 0xB0, Data1: 0x00, Data2: 0x24}, out.msgs[2])
	assert.True(t, d.IsDoubleBuffered())

	require.NoError(t, d.HardSwap())
	assert.Equal(t, pad.Message{Status: 0xB0, Data1: 0x00, Data2: 0x21}, out.msgs[3])

	require.NoError(t, d.DisableDoubleBuffering())
	assert.Equal(t, pad.Message{Status: 0xB0, Data1: 0x00, Data2: 0x20}, out.msgs[4])
	assert.False(t, d.IsDoubleBuffered())
}

func TestReset(t *testing.T) {
	d, _, out := newTestDevice()

	require.NoError(t, d.SetBufferMode(BufferZeroActive, false))
	require.NoError(t, d.Reset())
	assert.Equal(t, pad.Message{Status: 0xB0, Data1: 0x00, Data2: 0x00}, out.msgs[len(out.msgs)-1])
	assert.False(t, d.IsDoubleBuffered())
}

func TestSelectGridMode(t *testing.T) {
	d, _, out := newTestDevice()

	require.NoError(t, d.SelectGridMode(GridModeDrumRack))
	assert.Equal(t, pad.Message{Status: 0xB0, Data1: 0x00, Data2: 0x02}, out.msgs[0])

	require.NoError(t, d.SelectGridMode(GridModeXY))
	assert.Equal(t, pad.Message{Status: 0xB0, Data1: 0x00, Data2: 0x01}, out.msgs[1])
}

func TestSetDutyCycle(t *testing.T) {
	cases := []struct {
		name     string
		num, den uint8
		want     pad.Message
	}{
		{"low numerator", 1, 3, pad.Message{Status: 0xB0, Data1: 0x1E, Data2: 0x00}},
		{"high numerator", 16, 18, pad.Message{Status: 0xB0, Data1: 0x1F, Data2: 0x7F}},
		{"boundary numerator", 9, 3, pad.Message{Status: 0xB0, Data1: 0x1F, Data2: 0x00}},
		{"clamped low", 0, 0, pad.Message{Status: 0xB0, Data1: 0x1E, Data2: 0x00}},
		{"clamped high", 20, 30, pad.Message{Status: 0xB0, Data1: 0x1F, Data2: 0x7F}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			d, _, out := newTestDevice()
			require.NoError(t, d.SetDutyCycle(tc.num, tc.den))
			require.Len(t, out.msgs, 1)
			assert.Equal(t, tc.want, out.msgs[0])
		})
	}
}

func TestFullBlackout(t *testing.T) {
	d, _, out := newTestDevice()

	require.NoError(t, d.FullBlackout())
	require.Len(t, out.msgs, 8*9+8)
	for _, msg := range out.msgs {
		assert.Equal(t, byte(0x00), msg.Data2)
	}
	assert.Equal(t, byte(0xB0), out.msgs[8*9].Status)
}

func TestReadEvents(t *testing.T) {
	d, in, _ := newTestDevice()

	in.msgs = []pad.Message{
		{Status: 0x90, Data1: 0x35, Data2: 0x7F},
		{Status: 0xF8, Data1: 0x00, Data2: 0x00}, // realtime noise, skipped
		{Status: 0xB0, Data1: 0x68, Data2: 0x7F},
		{Status: 0x80, Data1: 0x35, Data2: 0x00},
	}

	pending, err := d.Poll()
	require.NoError(t, err)
	assert.True(t, pending)

	events, err := d.ReadEvents(midiio.BufferSize)
	require.NoError(t, err)
	require.Len(t, events, 3)
	assert.Equal(t, pad.ButtonEvent{Pos: pad.MatPos{Row: 3, Col: 5}, Pressed: true}, events[0])
	assert.Equal(t, pad.ButtonEvent{Pos: pad.MatPos{Row: 8, Col: 0}, Pressed: true}, events[1])
	assert.Equal(t, pad.ButtonEvent{Pos: pad.MatPos{Row: 3, Col: 5}, Pressed: false}, events[2])
}

func TestReadEvent(t *testing.T) {
	d, in, _ := newTestDevice()

	ev, err := d.ReadEvent()
	require.NoError(t, err)
	assert.Nil(t, ev)

	in.msgs = []pad.Message{
		{Status: 0xF8, Data1: 0x00, Data2: 0x00},
		{Status: 0x90, Data1: 0x00, Data2: 0x7F},
	}

	ev, err = d.ReadEvent()
	require.NoError(t, err)
	require.NotNil(t, ev)
	assert.Equal(t, pad.MatPos{Row: 0, Col: 0}, ev.Pos)
	assert.True(t, ev.Pressed)
}

func TestDiscover(t *testing.T) {
	mi := &fakeInterface{names: []string{"Midi Through", "Launchpad Mini", "Other"}}
	name, err := Discover(mi)
	require.NoError(t, err)
	assert.Equal(t, "Launchpad Mini", name)

	mi = &fakeInterface{names: []string{"Midi Through"}}
	_, err = Discover(mi)
	assert.ErrorIs(t, err, midiio.ErrPortNotFound)
}

func TestOpenAndClose(t *testing.T) {
	in := &fakeInput{}
	out := &fakeOutput{}
	mi := &fakeInterface{names: []string{"Launchpad Mini"}, in: in, out: out}

	d, err := Open(mi, "Launchpad Mini")
	require.NoError(t, err)
	require.NoError(t, d.Close())
	assert.True(t, in.closed)
	assert.True(t, out.closed)
}
