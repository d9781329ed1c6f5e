package pad

// Color is one of the velocity byte values the device's red/green LED
// pair can display. The set is closed; only these values are valid
// velocities, which is why colors are a named type rather than a free
// byte. The low two bits carry red intensity, bits 4-5 green.
type Color byte

const (
	Black       Color = 0x00
	DimRed      Color = 0x01
	MedRed      Color = 0x02
	Red         Color = 0x03
	DimGreen    Color = 0x10
	MedGreen    Color = 0x20
	Green       Color = 0x30
	DimYellow   Color = 0x11
	MedYellow   Color = 0x22
	Yellow      Color = 0x32
	DimGrellow  Color = 0x21
	Grellow     Color = 0x31
	DimORedange Color = 0x12
	ORedange    Color = 0x13
	Orange      Color = 0x23
	YellOrange  Color = 0x33
)

// Gradient orders the full palette along a green-to-red spectrum,
// useful for mapping scalar values onto pad colors.
var Gradient = [16]Color{
	Black,
	DimGreen,
	MedGreen,
	Green,
	Grellow,
	DimGrellow,
	Yellow,
	MedYellow,
	DimYellow,
	YellOrange,
	Orange,
	DimORedange,
	ORedange,
	Red,
	MedRed,
	DimRed,
}

// Palette lists every color exactly once.
var Palette = [16]Color{
	Black, DimRed, MedRed, Red,
	DimGreen, MedGreen, Green,
	DimYellow, MedYellow, Yellow,
	DimGrellow, Grellow,
	DimORedange, ORedange, Orange, YellOrange,
}

func (c Color) String() string {
	switch c {
	case Black:
		return "black"
	case DimRed:
		return "dim-red"
	case MedRed:
		return "med-red"
	case Red:
		return "red"
	case DimGreen:
		return "dim-green"
	case MedGreen:
		return "med-green"
	case Green:
		return "green"
	case DimYellow:
		return "dim-yellow"
	case MedYellow:
		return "med-yellow"
	case Yellow:
		return "yellow"
	case DimGrellow:
		return "dim-grellow"
	case Grellow:
		return "grellow"
	case DimORedange:
		return "dim-oredange"
	case ORedange:
		return "oredange"
	case Orange:
		return "orange"
	case YellOrange:
		return "yell-orange"
	}
	return "unknown"
}
