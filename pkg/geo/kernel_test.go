package geo

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// one degree of longitude at the equator
const kmPerDegree = EarthRadius * math.Pi / 180

func TestAngleCoincident(t *testing.T) {
	a := MustPoint(37.7, -122.4, 0)
	assert.Equal(t, 0.0, Angle(a, a))
	assert.Equal(t, 0.0, HorzDistance(a, a))
	assert.Equal(t, 0.0, HorzDistanceFast(a, a))
}

func TestHorzDistanceEquatorDegree(t *testing.T) {
	a := MustPoint(0, 0, 0)
	b := MustPoint(0, 1, 0)
	assert.InDelta(t, 111.19, HorzDistance(a, b), 0.5)
	assert.InDelta(t, 90.0, Azimuth(a, b), 1e-9)
}

func TestHorzDistanceSpansAntimeridian(t *testing.T) {
	a := MustPoint(0, 179.5, 0)
	b := MustPoint(0, -179.5, 0)
	// haversine is seam-safe: one degree apart, not 359
	assert.InDelta(t, kmPerDegree, HorzDistance(a, b), 0.01)
}

func TestHorzDistanceFastAgreesShortRange(t *testing.T) {
	a := MustPoint(34.0, -118.0, 0)
	b := MustPoint(34.4, -117.6, 0)
	assert.InDelta(t, HorzDistance(a, b), HorzDistanceFast(a, b), 0.05)
}

func TestVertDistanceSigned(t *testing.T) {
	shallow := MustPoint(10, 10, 2)
	deep := MustPoint(10, 10, 12)
	assert.Equal(t, 10.0, VertDistance(shallow, deep))
	assert.Equal(t, -10.0, VertDistance(deep, shallow))
}

func TestLinearDistance(t *testing.T) {
	// purely vertical separation
	a := MustPoint(0, 0, 0)
	b := MustPoint(0, 0, 10)
	assert.InDelta(t, 10.0, LinearDistance(a, b), 1e-9)

	// short range: chord and pythagorean solutions agree
	d := MustPoint(34.0, -118.0, 0)
	c := MustPoint(34.1, -118.1, 5)
	assert.InDelta(t, LinearDistance(d, c), LinearDistanceFast(d, c), 0.05)
}

func TestAzimuthNotReciprocal(t *testing.T) {
	a := MustPoint(30, 0, 0)
	b := MustPoint(50, 60, 0)
	fwd := Azimuth(a, b)
	back := Azimuth(b, a)
	assert.Greater(t, math.Abs(math.Mod(fwd+180, 360)-back), 1.0)
}

func TestAzimuthRange(t *testing.T) {
	a := MustPoint(10, 10, 0)
	for _, b := range []Point{
		MustPoint(11, 10, 0), MustPoint(10, 11, 0),
		MustPoint(9, 10, 0), MustPoint(10, 9, 0),
		MustPoint(9.5, 9.5, 0),
	} {
		az := AzimuthRad(a, b)
		assert.GreaterOrEqual(t, az, 0.0)
		assert.Less(t, az, 2*math.Pi)
	}
}

func TestAzimuthAtPoles(t *testing.T) {
	north := MustPoint(90, 45, 0)
	south := MustPoint(-90, 45, 0)
	anywhere := MustPoint(0, 0, 0)
	assert.True(t, IsPole(north))
	assert.True(t, IsPole(south))
	assert.False(t, IsPole(MustPoint(89.9, 0, 0)))
	assert.Equal(t, math.Pi, AzimuthRad(north, anywhere))
	assert.Equal(t, 0.0, AzimuthRad(south, anywhere))
}

func TestProjectRoundTrip(t *testing.T) {
	// projecting A by (azimuth(A,B), horzDistance(A,B)) reproduces B
	pairs := [][2]Point{
		{MustPoint(34.0, -118.0, 0), MustPoint(36.5, -120.5, 0)},
		{MustPoint(-12.3, 45.6, 0), MustPoint(-11.1, 44.2, 0)},
		{MustPoint(61.0, 200.0, 0), MustPoint(60.0, 202.0, 0)},
	}
	for _, pair := range pairs {
		a, b := pair[0], pair[1]
		require.Less(t, HorzDistanceFast(a, b), 1000.0)
		c := Project(a, AzimuthRad(a, b), HorzDistance(a, b))
		assert.InDelta(t, b.Lat(), c.Lat(), 1e-9)
		assert.InDelta(t, b.Lon(), c.Lon(), 1e-9)
	}
}

func TestProjectVector(t *testing.T) {
	// due east along the equator: one degree of longitude, 3 km deeper
	a := MustPoint(0, 10, 2)
	v := NewVector(math.Pi/2, kmPerDegree, 3)
	b := ProjectVector(a, v)
	assert.InDelta(t, 0.0, b.Lat(), 1e-9)
	assert.InDelta(t, 11.0, b.Lon(), 1e-9)
	assert.InDelta(t, 5.0, b.Depth(), 1e-12)
}

func TestDistanceToLineSign(t *testing.T) {
	// line runs west to east along the equator
	p1 := MustPoint(0, 0, 0)
	p2 := MustPoint(0, 1, 0)

	north := MustPoint(0.5, 0.5, 0)
	south := MustPoint(-0.5, 0.5, 0)

	// walking p1->p2, north is left (negative), south is right (positive)
	assert.Negative(t, DistanceToLine(p1, p2, north))
	assert.Positive(t, DistanceToLine(p1, p2, south))
	assert.InDelta(t, 0.5*kmPerDegree, math.Abs(DistanceToLine(p1, p2, north)), 0.5)

	assert.Negative(t, DistanceToLineFast(p1, p2, north))
	assert.Positive(t, DistanceToLineFast(p1, p2, south))
}

func TestDistanceToLineFastAgrees(t *testing.T) {
	p1 := MustPoint(34.0, -118.0, 0)
	p2 := MustPoint(34.5, -117.5, 0)
	p3 := MustPoint(34.1, -117.8, 0)
	assert.InDelta(t, DistanceToLine(p1, p2, p3), DistanceToLineFast(p1, p2, p3), 0.05)
}

func TestDistanceToSegmentClamps(t *testing.T) {
	p1 := MustPoint(0, 0, 0)
	p2 := MustPoint(0, 1, 0)

	// beyond p2: degrades to direct distance to p2
	beyond := MustPoint(0, 2, 0)
	assert.InDelta(t, HorzDistance(p2, beyond), DistanceToSegment(p1, p2, beyond), 1e-9)

	// before p1: degrades to direct distance to p1
	before := MustPoint(0, -0.5, 0)
	assert.InDelta(t, HorzDistance(p1, before), DistanceToSegment(p1, p2, before), 1e-9)

	// interior projection: perpendicular distance, always positive
	above := MustPoint(0.5, 0.5, 0)
	d := DistanceToSegment(p1, p2, above)
	assert.Positive(t, d)
	assert.InDelta(t, 0.5*kmPerDegree, d, 0.5)
}

func TestDistanceToSegmentFastClamps(t *testing.T) {
	p1 := MustPoint(0, 0, 0)
	p2 := MustPoint(0, 1, 0)

	beyond := MustPoint(0, 2, 0)
	assert.InDelta(t, HorzDistanceFast(p2, beyond), DistanceToSegmentFast(p1, p2, beyond), 1e-6)

	before := MustPoint(0, -0.5, 0)
	assert.InDelta(t, HorzDistanceFast(p1, before), DistanceToSegmentFast(p1, p2, before), 1e-6)

	above := MustPoint(0.5, 0.5, 0)
	assert.InDelta(t, DistanceToSegment(p1, p2, above), DistanceToSegmentFast(p1, p2, above), 0.05)
}

func TestPlunge(t *testing.T) {
	a := MustPoint(0, 0, 0)
	b := MustPoint(0, 1, 5)
	want := math.Atan(5/HorzDistance(a, b)) * 180 / math.Pi
	assert.InDelta(t, want, Plunge(a, b), 1e-9)
	assert.Negative(t, Plunge(b, a)) // up is negative
}

func TestBisect(t *testing.T) {
	p2 := MustPoint(0, 0, 0)
	p1 := MustPoint(1, 0, 0) // due north of p2
	p3 := MustPoint(0, 1, 0) // due east of p2
	v := Bisect(p1, p2, p3)
	assert.InDelta(t, math.Pi/4, v.Azimuth, 1e-9)
	assert.Equal(t, 1.0, v.Horizontal)
	assert.Equal(t, 0.0, v.Vertical)
}

func TestSimilar(t *testing.T) {
	a := MustPoint(10, 20, 30)
	assert.True(t, Similar(a, a))
	assert.True(t, Similar(a, MustPoint(10+1e-13, 20, 30)))
	assert.False(t, Similar(a, MustPoint(10+1e-9, 20, 30)))
	assert.False(t, Similar(a, MustPoint(10, 20, 30.001)))
}

func TestBoundsOf(t *testing.T) {
	a := MustPoint(5, 10, 3)
	b, err := BoundsOf([]Point{a})
	require.NoError(t, err)
	assert.Equal(t, MustPoint(5, 10, 0), b.Min)
	assert.Equal(t, b.Min, b.Max)

	pts := []Point{
		MustPoint(5, 10, 0),
		MustPoint(-5, 30, 0),
		MustPoint(15, 20, 0),
	}
	b, err = BoundsOf(pts)
	require.NoError(t, err)
	assert.Equal(t, MustPoint(-5, 10, 0), b.Min)
	assert.Equal(t, MustPoint(15, 30, 0), b.Max)
}

func TestBoundsOfEmpty(t *testing.T) {
	_, err := BoundsOf(nil)
	assert.ErrorIs(t, err, ErrEmptyTrace)
}

func TestCentroid(t *testing.T) {
	pts := []Point{
		MustPoint(0, 0, 0),
		MustPoint(2, 2, 4),
		MustPoint(4, 4, 8),
	}
	c := Centroid(pts)
	assert.Equal(t, 2.0, c.Lat())
	assert.Equal(t, 2.0, c.Lon())
	assert.Equal(t, 4.0, c.Depth())
}

func TestClosestPointAndMinDistances(t *testing.T) {
	trace, err := NewTrace(
		MustPoint(0, 0, 0),
		MustPoint(0, 1, 0),
		MustPoint(0, 2, 0),
	)
	require.NoError(t, err)

	p := MustPoint(0.1, 1.1, 0)
	closest := ClosestPoint(p, trace)
	assert.Equal(t, MustPoint(0, 1, 0), closest)

	assert.InDelta(t, HorzDistanceFast(p, closest), MinDistanceToPoints(p, trace), 1e-12)

	// perpendicular to the second segment, closer than any vertex
	perp := MustPoint(0.1, 1.5, 0)
	assert.InDelta(t, 0.1*kmPerDegree, MinDistanceToTrace(perp, trace), 0.1)
	assert.Less(t, MinDistanceToTrace(perp, trace), MinDistanceToPoints(perp, trace))

	idx, err := MinDistanceIndex(perp, trace)
	require.NoError(t, err)
	assert.Equal(t, 1, idx)
}

func TestMinDistanceIndexTooFewPoints(t *testing.T) {
	single, err := NewTrace(MustPoint(0, 0, 0))
	require.NoError(t, err)
	_, err = MinDistanceIndex(MustPoint(1, 1, 0), single)
	var rangeErr *RangeError
	assert.ErrorAs(t, err, &rangeErr)
}

func BenchmarkHorzDistance(b *testing.B) {
	p1 := MustPoint(34.0, -118.0, 0)
	p2 := MustPoint(34.4, -117.6, 0)
	for i := 0; i < b.N; i++ {
		_ = HorzDistance(p1, p2)
	}
}

func BenchmarkHorzDistanceFast(b *testing.B) {
	p1 := MustPoint(34.0, -118.0, 0)
	p2 := MustPoint(34.4, -117.6, 0)
	for i := 0; i < b.N; i++ {
		_ = HorzDistanceFast(p1, p2)
	}
}
