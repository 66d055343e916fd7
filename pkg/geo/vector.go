package geo

import (
	"fmt"
	"math"
)

// A Vector is the directed separation between two Points, defined by an
// azimuth (bearing) and the horizontal and vertical components of the
// separation. Note that the vector from point A to point B is not the
// complement of that from B to A: the horizontal and vertical components
// match, but great-circle bearings generally differ per endpoint by
// something other than 180°.
//
// As with Point, depth (the vertical component) is positive down.
type Vector struct {
	// Azimuth of this vector in radians, [0, 2π), clockwise from north.
	Azimuth float64

	// Horizontal separation in km.
	Horizontal float64

	// Vertical separation in km, positive down.
	Vertical float64
}

// NewVector returns a Vector with the supplied azimuth (radians) and
// horizontal and vertical components (km).
func NewVector(azimuth, horizontal, vertical float64) Vector {
	return Vector{Azimuth: azimuth, Horizontal: horizontal, Vertical: vertical}
}

// VectorWithPlunge returns a Vector whose horizontal and vertical
// components are derived from the supplied plunge (radians, positive
// down) and length (km).
func VectorWithPlunge(azimuth, plunge, length float64) Vector {
	return NewVector(azimuth, length*math.Cos(plunge), length*math.Sin(plunge))
}

// VectorBetween returns the Vector describing the move from p1 to p2.
func VectorBetween(p1, p2 Point) Vector {
	return NewVector(
		AzimuthRad(p1, p2),
		HorzDistance(p1, p2),
		VertDistance(p1, p2))
}

// Plunge returns the angle (radians) between this vector and a
// horizontal plane. Positive angles are down, negative angles are up.
// Intended for use at relatively short separations (≤200 km); it
// degrades at large distances where curvature is not considered.
func (v Vector) Plunge() float64 {
	return math.Atan(v.Vertical / v.Horizontal)
}

// Reverse returns a copy of this vector with its azimuth rotated by 180°
// and its vertical component negated. Note that VectorBetween(p1, p2) is
// not equivalent to VectorBetween(p2, p1).Reverse(); the azimuths will
// potentially differ.
func (v Vector) Reverse() Vector {
	return NewVector(math.Mod(v.Azimuth+math.Pi, twoPi), v.Horizontal, -v.Vertical)
}

func (v Vector) String() string {
	return fmt.Sprintf("Vector{az: %.5f, h: %.5f, v: %.5f}",
		v.Azimuth*toDegrees, v.Horizontal, v.Vertical)
}
