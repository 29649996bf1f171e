package common

import "fmt"

// Unit defines the unit of distance for an asset. A unit is self-describing,
// giving both a name and its length in meters, and does not need to match
// any real-world measurement.
type Unit struct {
	// Meter is how many real-world meters one distance unit spans.
	Meter float64

	// Name is the unit's name, real or imaginary: "meter", "inch", "parsec".
	Name string
}

// DefaultUnit returns the schema default of one meter.
func DefaultUnit() Unit {
	return Unit{Meter: 1.0, Name: "meter"}
}

// UpAxis describes the coordinate system of an asset. Coordinates are
// right-handed, so the up axis alone determines the other two.
type UpAxis uint8

const (
	// UpY is the schema default.
	UpY UpAxis = iota
	UpX
	UpZ
)

// String returns the document token for the axis.
func (a UpAxis) String() string {
	switch a {
	case UpX:
		return "X_UP"
	case UpZ:
		return "Z_UP"
	default:
		return "Y_UP"
	}
}

// ParseUpAxis decodes an up_axis token.
func ParseUpAxis(s string) (UpAxis, error) {
	switch s {
	case "X_UP":
		return UpX, nil
	case "Y_UP":
		return UpY, nil
	case "Z_UP":
		return UpZ, nil
	default:
		return UpY, fmt.Errorf("invalid up_axis value %q", s)
	}
}
