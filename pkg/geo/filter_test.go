package geo

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDistanceFilter(t *testing.T) {
	origin := MustPoint(40.0, -74.0, 0)
	within50 := DistanceFilter(origin, 50)

	assert.True(t, within50(origin))
	assert.True(t, within50(MustPoint(40.1, -74.1, 0)))  // ~14 km
	assert.False(t, within50(MustPoint(41.0, -73.0, 0))) // ~140 km
}

func TestRectangleFilter(t *testing.T) {
	origin := MustPoint(40.0, -74.0, 0)
	rect := RectangleFilter(origin, 50)

	assert.True(t, rect(origin))
	assert.True(t, rect(MustPoint(40.2, -74.2, 0)))
	assert.False(t, rect(MustPoint(42.0, -74.0, 0)))
	assert.False(t, rect(MustPoint(40.0, -76.0, 0)))

	// rectangle admits corner points the radial filter rejects
	corner := MustPoint(40.4, -74.55, 0)
	assert.True(t, rect(corner))
	assert.False(t, DistanceFilter(origin, 50)(corner))
}

func TestRectangleFilterClampsToDomain(t *testing.T) {
	nearPole := MustPoint(89.9, 0, 0)
	rect := RectangleFilter(nearPole, 100)

	// the box cannot exceed the physical coordinate domain
	assert.True(t, rect(MustPoint(90, 0, 0)))
	assert.False(t, rect(MustPoint(88.0, 0, 0)))
}

func TestDistanceAndRectangleFilter(t *testing.T) {
	origin := MustPoint(40.0, -74.0, 0)
	combined := DistanceAndRectangleFilter(origin, 50)
	radial := DistanceFilter(origin, 50)

	pts := []Point{
		origin,
		MustPoint(40.1, -74.1, 0),
		MustPoint(40.4, -74.55, 0),
		MustPoint(41.0, -73.0, 0),
		MustPoint(40.44, -74.0, 0),
		MustPoint(40.46, -74.0, 0),
	}
	// the rectangle pre-filter never changes the radial result
	for _, p := range pts {
		assert.Equal(t, radial(p), combined(p), "point %v", p)
	}
}

func TestDegreesPerKm(t *testing.T) {
	assert.InDelta(t, 1/kmPerDegree, DegreesLatPerKm(), 1e-12)

	// east-west degrees stretch with latitude
	equator := DegreesLonPerKm(MustPoint(0, 0, 0))
	mid := DegreesLonPerKm(MustPoint(60, 0, 0))
	assert.InDelta(t, 1/kmPerDegree, equator, 1e-12)
	assert.InDelta(t, 2*equator, mid, 1e-9)
}
