// Package pad implements the byte-level codec for the Launchpad Mini's
// button/LED matrix: grid positions to note keys, palette colors to
// velocity bytes, and raw MIDI short messages to button events.
//
// All functions are pure and safe for concurrent use.
package pad

// MIDI status bytes the device uses. The channel nibble is always 0 on
// outbound messages; inbound messages are matched on the upper nibble.
const (
	StatusNoteOff byte = 0x80
	StatusNoteOn  byte = 0x90
	StatusControl byte = 0xB0
)

// Grid geometry. The square grid is 8x8; the scene-launch column (col 8)
// and the automap row of round buttons (row 8) sit outside it.
const (
	GridSize   = 8
	SceneCol   = 8
	AutomapRow = 8

	rowStride  = 0x10
	automapKey = 0x68
)

// MatPos identifies one cell on the device surface. Rows and columns
// count from the top-left. Values 0-7 address the square grid; Row 8 is
// the automap row and Col 8 the scene-launch column.
type MatPos struct {
	Row uint8
	Col uint8
}

// OnGrid reports whether the position lies on the 8x8 square grid.
func (p MatPos) OnGrid() bool {
	return p.Row < GridSize && p.Col < GridSize
}

// PadID is the wire-level address of a pad: the status byte of the
// message that reaches it and its key (data1) byte. Grid and scene pads
// are note-addressed, automap buttons are control-change-addressed.
type PadID struct {
	Status byte
	Key    byte
}

// ID returns the wire address for a position, covering the full 9x9
// surface. Positions beyond the surface still produce an address; use
// EncodePosition for validated grid encoding.
func (p MatPos) ID() PadID {
	if p.Row > GridSize-1 {
		return PadID{Status: StatusControl, Key: automapKey + p.Col}
	}
	return PadID{Status: StatusNoteOn, Key: rowStride*p.Row + p.Col}
}

// IDFromMessage extracts the pad address of a raw message, normalizing
// the status to the message kind (channel nibble stripped).
func IDFromMessage(m Message) PadID {
	return PadID{Status: m.Status & 0xF0, Key: m.Data1}
}

// Pos is the inverse of MatPos.ID.
func (id PadID) Pos() MatPos {
	if id.Status == StatusControl {
		return MatPos{Row: AutomapRow, Col: id.Key % automapKey}
	}
	return MatPos{Row: id.Key / rowStride, Col: id.Key % rowStride}
}

// Message is a raw 3-byte MIDI short message as exchanged with the
// device. Constructed per I/O operation, never retained.
type Message struct {
	Status byte
	Data1  byte
	Data2  byte
}

// ButtonEvent is a decoded button press or release.
type ButtonEvent struct {
	Pos     MatPos
	Pressed bool
}
