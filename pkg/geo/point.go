package geo

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// A Point is a geographic point with reference to the earth's surface,
// expressed as latitude and longitude in decimal degrees and depth in km.
// Following the convention in seismology, depth is positive-down, always.
// Longitudes may take values in [-180°, 360°] so that data spanning the
// ±180° meridian can be kept on a continuous interval.
//
// Points are immutable. Both degree and radian forms are stored; the
// radian form is derived once at construction and never recomputed, so
// the two are always consistent. Points are comparable with ==, which
// performs exact field comparison; use Similar for tolerance-based
// comparison.
//
// Note that constructors take arguments in the order [lat, lon, depth],
// which is inverted relative to the textual [lon, lat, depth] tuples used
// by KML, GeoJSON, and other plotting-order coordinate formats.
type Point struct {
	lat   float64
	lon   float64
	depth float64

	latRad float64
	lonRad float64
}

// NewPoint returns a Point with the supplied latitude, longitude, and
// depth. A *RangeError is returned if any value is out of its valid
// domain or non-finite.
func NewPoint(lat, lon, depth float64) (Point, error) {
	if !(lat >= MinLat && lat <= MaxLat) {
		return Point{}, &RangeError{Param: "latitude", Value: lat}
	}
	if !(lon >= MinLon && lon <= MaxLon) {
		return Point{}, &RangeError{Param: "longitude", Value: lon}
	}
	if math.IsNaN(depth) || math.IsInf(depth, 0) {
		return Point{}, &RangeError{Param: "depth", Value: depth}
	}
	return unchecked(lat, lon, depth), nil
}

// MustPoint is like NewPoint but panics on invalid input. It simplifies
// initialization of point literals known to be valid.
func MustPoint(lat, lon, depth float64) Point {
	p, err := NewPoint(lat, lon, depth)
	if err != nil {
		panic(err)
	}
	return p
}

// unchecked builds a Point from degree values without domain validation.
// Used internally where values are synthesized by projection and may
// legitimately wander just outside the public domain.
func unchecked(lat, lon, depth float64) Point {
	return Point{
		lat:    lat,
		lon:    lon,
		depth:  depth,
		latRad: lat * toRadians,
		lonRad: lon * toRadians,
	}
}

// Lat returns the latitude of this point in decimal degrees.
func (p Point) Lat() float64 { return p.lat }

// Lon returns the longitude of this point in decimal degrees.
func (p Point) Lon() float64 { return p.lon }

// Depth returns the depth of this point in km, positive down.
func (p Point) Depth() float64 { return p.depth }

// ParsePoint parses a comma-separated "lon,lat,depth" tuple. Values are
// whitespace-trimmed and empty fields are skipped; any fields beyond the
// third are ignored. A *FormatError is returned if fewer than three
// fields are present or any field is not a number; a *RangeError is
// returned if parsed values are out of domain.
func ParsePoint(s string) (Point, error) {
	var values [3]float64
	n := 0
	for _, field := range strings.Split(s, ",") {
		field = strings.TrimSpace(field)
		if field == "" {
			continue
		}
		if n == 3 {
			break
		}
		v, err := strconv.ParseFloat(field, 64)
		if err != nil {
			return Point{}, &FormatError{Input: s, Cause: "bad number " + strconv.Quote(field)}
		}
		values[n] = v
		n++
	}
	if n < 3 {
		return Point{}, &FormatError{Input: s, Cause: "fewer than 3 values"}
	}
	return NewPoint(values[1], values[0], values[2])
}

// String returns a KML and GeoJSON compatible tuple,
// "longitude,latitude,depth" (no spaces), preserving 5 decimal places.
// ParsePoint is its exact inverse.
func (p Point) String() string {
	return fmt.Sprintf("%.5f,%.5f,%.5f", p.lon, p.lat, p.depth)
}

// Compare orders points first by latitude, then by longitude. Sorting a
// slice of points with this comparison yields a left-to-right,
// bottom-to-top ordering. It returns -1, 0, or 1.
func (p Point) Compare(q Point) int {
	d := p.lat - q.lat
	if p.lat == q.lat {
		d = p.lon - q.lon
	}
	switch {
	case d < 0:
		return -1
	case d > 0:
		return 1
	default:
		return 0
	}
}
