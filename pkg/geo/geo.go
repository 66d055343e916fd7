// Package geo provides coordinate geometry on a spherical earth for
// seismic-hazard computation: points with depth, vectors, bounds,
// distance and bearing algorithms, spatial filters, and fault-trace
// partition/resample operations.
//
// All types are immutable value types and all functions are pure, so
// everything in this package is safe for concurrent use without
// coordination. Public signatures use decimal degrees for angles and
// kilometers for distances; radians are internal-only except where a
// function is explicitly documented to take or return them.
package geo

import "math"

const (
	// EarthRadius is the mean earth radius in km used by all spherical
	// distance and projection functions.
	EarthRadius = 6371.0072

	// Tolerance is used for fuzzy point comparisons and pole detection.
	// In decimal degrees, radians, and km it is comparable to
	// micron-scale precision.
	Tolerance = 1e-12

	// MinLat and MaxLat bound the supported latitude domain in decimal
	// degrees.
	MinLat = -90.0
	MaxLat = 90.0

	// MinLon and MaxLon bound the supported longitude domain in decimal
	// degrees. The extended positive range lets callers keep data that
	// spans the ±180° meridian on a continuous interval.
	MinLon = -180.0
	MaxLon = 360.0

	toRadians = math.Pi / 180.0
	toDegrees = 180.0 / math.Pi
	twoPi     = 2 * math.Pi
)

// DegreesLatPerKm returns the latitude degrees subtended by one km of
// north-south travel.
func DegreesLatPerKm() float64 {
	return toDegrees / EarthRadius
}

// DegreesLonPerKm returns the longitude degrees subtended by one km of
// east-west travel at the latitude of p.
func DegreesLonPerKm(p Point) float64 {
	return toDegrees / (EarthRadius * math.Cos(p.latRad))
}
