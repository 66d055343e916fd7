package geo

import "fmt"

// Bounds is an axis-aligned rectangle in degree space specified by a
// lower-left coordinate (Min) and an upper-right coordinate (Max).
//
// Bounds are 2-dimensional: the depth component of the corners is always
// 0. The invariant Min.Lon() <= Max.Lon() and Min.Lat() <= Max.Lat() is
// established by constructing collaborators such as BoundsOf; the type
// itself does not enforce it.
type Bounds struct {
	Min Point
	Max Point
}

// Corners returns this Bounds as a closed five-vertex Trace, starting
// with Min and winding counter-clockwise.
func (b Bounds) Corners() Trace {
	t, _ := NewTrace(
		b.Min,
		unchecked(b.Min.lat, b.Max.lon, 0),
		b.Max,
		unchecked(b.Max.lat, b.Min.lon, 0),
		b.Min)
	return t
}

// Array returns the values of this Bounds in the form
// [min.lon, min.lat, max.lon, max.lat].
func (b Bounds) Array() [4]float64 {
	return [4]float64{b.Min.lon, b.Min.lat, b.Max.lon, b.Max.lat}
}

func (b Bounds) String() string {
	a := b.Array()
	return fmt.Sprintf("[%.5f, %.5f, %.5f, %.5f]", a[0], a[1], a[2], a[3])
}
