package geom

// Rotation is a right-angle rotation. Only the four quarter-turn values
// are meaningful; orientation-dependent queries are undefined for anything
// else.
type Rotation int

// Quarter-turn rotations, counted clockwise.
const (
	Rotate0 Rotation = iota
	Rotate90
	Rotate180
	Rotate270
)

// Plus composes two rotations.
func (r Rotation) Plus(o Rotation) Rotation {
	return (r + o) & 3
}

// Transposed reports whether the rotation swaps the horizontal and
// vertical axes (90° or 270°).
func (r Rotation) Transposed() bool {
	return r&1 == 1
}

// Degrees returns the rotation in degrees.
func (r Rotation) Degrees() int {
	return int(r&3) * 90
}

// String returns a human-readable form like "90°".
func (r Rotation) String() string {
	switch r & 3 {
	case Rotate90:
		return "90°"
	case Rotate180:
		return "180°"
	case Rotate270:
		return "270°"
	default:
		return "0°"
	}
}

// RotationFromDegrees maps 0/90/180/270 to a Rotation.
// Other values are reduced modulo 360 and rounded down to the nearest
// quarter turn.
func RotationFromDegrees(deg int) Rotation {
	deg %= 360
	if deg < 0 {
		deg += 360
	}
	return Rotation(deg / 90)
}
