package pad

import "fmt"

// EncodePosition converts a square-grid position to the device's note
// key byte: row-major with a 0x10 row stride. Returns ErrOutOfRange if
// either coordinate exceeds 7.
func EncodePosition(row, col uint8) (byte, error) {
	if row > GridSize-1 || col > GridSize-1 {
		return 0, fmt.Errorf("%w: (%d,%d)", ErrOutOfRange, row, col)
	}
	return rowStride*row + col, nil
}

// DecodePosition is the inverse of EncodePosition. Keys that decode
// outside the 8x8 grid (scene-column keys 0x08, 0x18, ... included) are
// rejected with ErrOutOfRange; a conformant device should not produce
// them on grid notes, but inbound bytes are checked regardless.
func DecodePosition(key byte) (MatPos, error) {
	pos := MatPos{Row: key / rowStride, Col: key % rowStride}
	if !pos.OnGrid() {
		return MatPos{}, fmt.Errorf("%w: key 0x%02X", ErrOutOfRange, key)
	}
	return pos, nil
}

// EncodeColor returns the velocity byte for a palette color. The
// palette is closed, so the mapping is total.
func EncodeColor(c Color) byte {
	return byte(c)
}

// DecodeMessage decodes a raw message into a square-grid button event.
// Note-on with nonzero velocity is a press; note-on with velocity 0 and
// note-off are releases (the device emits both forms). Any other status
// fails with ErrInvalidMessage, a key outside the grid with
// ErrOutOfRange.
func DecodeMessage(m Message) (ButtonEvent, error) {
	switch m.Status & 0xF0 {
	case StatusNoteOn, StatusNoteOff:
	default:
		return ButtonEvent{}, fmt.Errorf("%w: status 0x%02X", ErrInvalidMessage, m.Status)
	}

	pos, err := DecodePosition(m.Data1)
	if err != nil {
		return ButtonEvent{}, err
	}

	pressed := m.Status&0xF0 == StatusNoteOn && m.Data2 > 0
	return ButtonEvent{Pos: pos, Pressed: pressed}, nil
}

// DecodeSurfaceMessage decodes a raw message against the full 9x9
// surface: square grid, scene-launch column (col 8) and automap row
// (control-change keys 0x68-0x6F, reported as row 8). Statuses other
// than note-on/note-off/control fail with ErrInvalidMessage, keys off
// the surface with ErrOutOfRange.
func DecodeSurfaceMessage(m Message) (ButtonEvent, error) {
	id := IDFromMessage(m)
	pressed := m.Data2 > 0

	switch id.Status {
	case StatusControl:
		if m.Data1 < automapKey || m.Data1 > automapKey+GridSize-1 {
			return ButtonEvent{}, fmt.Errorf("%w: control key 0x%02X", ErrOutOfRange, m.Data1)
		}
		return ButtonEvent{Pos: id.Pos(), Pressed: pressed}, nil
	case StatusNoteOn, StatusNoteOff:
		pos := id.Pos()
		if pos.Row > GridSize-1 || pos.Col > SceneCol {
			return ButtonEvent{}, fmt.Errorf("%w: key 0x%02X", ErrOutOfRange, m.Data1)
		}
		if id.Status == StatusNoteOff {
			pressed = false
		}
		return ButtonEvent{Pos: pos, Pressed: pressed}, nil
	}
	return ButtonEvent{}, fmt.Errorf("%w: status 0x%02X", ErrInvalidMessage, m.Status)
}
