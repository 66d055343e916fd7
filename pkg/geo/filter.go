package geo

import "math"

// A Filter is a composable point predicate used for spatial selection.
type Filter func(Point) bool

// DistanceFilter returns a radial filter that is true for points within
// distance km of origin, by HorzDistanceFast.
func DistanceFilter(origin Point, distance float64) Filter {
	return func(p Point) bool {
		return HorzDistanceFast(origin, p) <= distance
	}
}

// RectangleFilter returns a rectangular filter in geographic (lat, lon)
// space, centered on origin with half-width and half-height of distance
// km converted to degrees at the latitude of the origin. The rectangle
// is clamped to the supported coordinate domain. This filter is for use
// as a fast, first-pass reject before more computationally intensive
// distance filtering.
func RectangleFilter(origin Point, distance float64) Filter {
	r := rectangle(origin, distance)
	return func(p Point) bool {
		return p.lon >= r.minLon && p.lon <= r.maxLon &&
			p.lat >= r.minLat && p.lat <= r.maxLat
	}
}

// DistanceAndRectangleFilter returns a radial filter that preprocesses
// points through a RectangleFilter, rejecting cheaply before the
// distance check.
func DistanceAndRectangleFilter(origin Point, distance float64) Filter {
	rectFilter := RectangleFilter(origin, distance)
	distFilter := DistanceFilter(origin, distance)
	return func(p Point) bool {
		return rectFilter(p) && distFilter(p)
	}
}

type rect struct {
	minLon, maxLon, minLat, maxLat float64
}

// rectangle returns a degree-space rectangle centered on p with a width
// and height of 2*distance, constrained to the coordinate domain.
func rectangle(p Point, distance float64) rect {
	dLon := distance * DegreesLonPerKm(p)
	dLat := distance * DegreesLatPerKm()
	return rect{
		minLon: math.Max(p.lon-dLon, MinLon),
		maxLon: math.Min(p.lon+dLon, MaxLon),
		minLat: math.Max(p.lat-dLat, MinLat),
		maxLat: math.Min(p.lat+dLat, MaxLat),
	}
}
