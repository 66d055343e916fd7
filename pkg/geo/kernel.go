package geo

import "math"

// Distance, bearing, and projection algorithms on a spherical earth.
// Formula sources: Aviation Formulary (Ed Williams) and Movable Type
// Scripts great-circle references.
//
// All functions here are pure and total over their documented domain;
// validation belongs to callers. The 'fast' variants are flat-earth
// approximations that are two orders of magnitude cheaper but only
// appropriate at short range (<~200 km) and fail silently for values
// spanning the ±180° meridian; convert such data to the 0-360°
// interval, or use the exact spherical variants.

// Angle returns the angular separation of two points in radians using
// the haversine formula. It properly handles values spanning ±180° and,
// because it evaluates atan2 of two non-negative roots rather than an
// arccos, remains numerically stable for nearly coincident and nearly
// antipodal points.
func Angle(p1, p2 Point) float64 {
	sinDlatBy2 := math.Sin((p2.latRad - p1.latRad) / 2.0)
	sinDlonBy2 := math.Sin((p2.lonRad - p1.lonRad) / 2.0)
	// half length of chord connecting points
	c := sinDlatBy2*sinDlatBy2 +
		math.Cos(p1.latRad)*math.Cos(p2.latRad)*sinDlonBy2*sinDlonBy2
	return 2.0 * math.Atan2(math.Sqrt(c), math.Sqrt(1-c))
}

// HorzDistance returns the great-circle surface distance between two
// points in km, ignoring depth. Accurate at all separations; for a much
// faster short-range approximation see HorzDistanceFast.
func HorzDistance(p1, p2 Point) float64 {
	return EarthRadius * Angle(p1, p2)
}

// HorzDistanceFast returns the approximate surface distance between two
// points in km. The latitudinal and longitudinal differences form the
// sides of a right triangle, with the longitudinal difference scaled by
// the cosine of the mean latitude. Does NOT support values spanning
// ±180°.
func HorzDistanceFast(p1, p2 Point) float64 {
	dLat := p1.latRad - p2.latRad
	dLon := (p1.lonRad - p2.lonRad) * math.Cos((p1.latRad+p2.latRad)*0.5)
	return EarthRadius * math.Sqrt(dLat*dLat+dLon*dLon)
}

// VertDistance returns the vertical separation of two points in km. The
// result is signed, preserving the depth difference p2 - p1 (positive
// when p2 is deeper).
func VertDistance(p1, p2 Point) float64 {
	return p2.depth - p1.depth
}

// LinearDistance returns the straight-line distance in km between two
// points in three dimensions, using the law-of-cosines chord between the
// depth-adjusted radii of the points.
func LinearDistance(p1, p2 Point) float64 {
	alpha := Angle(p1, p2)
	r1 := EarthRadius - p1.depth
	r2 := EarthRadius - p2.depth
	b := r1 * math.Sin(alpha)
	c := r2 - r1*math.Cos(alpha)
	return math.Sqrt(b*b + c*c)
}

// LinearDistanceFast returns the approximate straight-line distance in
// km between two points, treating the fast horizontal distance and the
// depth difference as orthogonal. Very imprecise for points more than
// ~200 km apart, and fails for values spanning ±180°.
func LinearDistanceFast(p1, p2 Point) float64 {
	h := HorzDistanceFast(p1, p2)
	v := VertDistance(p1, p2)
	return math.Sqrt(h*h + v*v)
}

// AzimuthRad returns the initial bearing in radians, [0, 2π) clockwise
// from north, when moving from p1 to p2. For back azimuth, reverse the
// arguments; azimuth(A→B) is generally not azimuth(B→A) + π. When p1
// coincides with a pole, where bearing is undefined, the result is 0
// (south pole) or π (north pole).
func AzimuthRad(p1, p2 Point) float64 {
	if IsPole(p1) {
		if p1.latRad > 0 {
			return math.Pi // N pole, look south
		}
		return 0 // S pole, look north
	}
	dLon := p2.lonRad - p1.lonRad
	cosLat2 := math.Cos(p2.latRad)
	az := math.Atan2(
		math.Sin(dLon)*cosLat2,
		math.Cos(p1.latRad)*math.Sin(p2.latRad)-math.Sin(p1.latRad)*cosLat2*math.Cos(dLon))
	return math.Mod(az+twoPi, twoPi)
}

// Azimuth returns the initial bearing in decimal degrees, [0°, 360°),
// when moving from p1 to p2. See AzimuthRad.
func Azimuth(p1, p2 Point) float64 {
	return AzimuthRad(p1, p2) * toDegrees
}

// Project returns the point reached by traveling from p along the
// supplied azimuth (radians) for the supplied horizontal distance (km).
// It is the approximate inverse of AzimuthRad and HorzDistance:
// projecting p1 by (AzimuthRad(p1, p2), HorzDistance(p1, p2))
// round-trips to p2 within floating tolerance.
func Project(p Point, azimuth, distance float64) Point {
	return project(p.lonRad, p.latRad, p.depth, azimuth, distance, 0)
}

// ProjectVector returns the point reached by traveling from p along the
// supplied vector, applying both its horizontal and vertical components.
func ProjectVector(p Point, v Vector) Point {
	return project(p.lonRad, p.latRad, p.depth, v.Azimuth, v.Horizontal, v.Vertical)
}

// project assumes radians and kilometers. Results bypass domain
// validation: synthesized points may legitimately carry longitudes just
// outside the public domain when projecting across its edges.
func project(lon, lat, depth, az, dh, dv float64) Point {
	sinLat1 := math.Sin(lat)
	cosLat1 := math.Cos(lat)
	ad := dh / EarthRadius // angular distance
	sinD := math.Sin(ad)
	cosD := math.Cos(ad)
	lat2 := math.Asin(sinLat1*cosD + cosLat1*sinD*math.Cos(az))
	lon2 := lon + math.Atan2(math.Sin(az)*sinD*cosLat1, cosD-sinLat1*math.Sin(lat2))
	return unchecked(lat2*toDegrees, lon2*toDegrees, depth+dv)
}

// DistanceToLine returns the shortest distance in km between point p3
// and the great circle through p1 and p2, which extends infinitely in
// both directions. Depths are ignored. Uses the spherical 'off-track
// distance' function; accurate for values spanning ±180° but up to 20x
// slower than DistanceToLineFast. The sign of the result indicates
// which side of the line p3 is on: right is positive, left negative,
// walking from p1 toward p2.
func DistanceToLine(p1, p2, p3 Point) float64 {
	// angular distance
	ad13 := Angle(p1, p3)
	// delta azimuth p1 to p3 and azimuth p1 to p2
	daz := AzimuthRad(p1, p3) - AzimuthRad(p1, p2)
	// cross-track distance (in radians)
	xtd := math.Asin(math.Sin(ad13) * math.Sin(daz))
	if math.Abs(xtd) < Tolerance {
		return 0.0
	}
	return xtd * EarthRadius
}

// DistanceToLineFast returns the approximate shortest distance in km
// between point p3 and the line through p1 and p2. This is a planar
// solution in which longitudes are pre-scaled by the cosine of a
// latitude blended from all three points; appropriate only over short
// distances and NOT for values spanning ±180°. The sign convention
// matches DistanceToLine: right positive, left negative.
func DistanceToLineFast(p1, p2, p3 Point) float64 {
	// use average latitude to scale longitude
	lonScale := math.Cos(0.5*p3.latRad + 0.25*p1.latRad + 0.25*p2.latRad)
	// first point on line transformed to origin; others scaled by lon
	x2 := (p2.lonRad - p1.lonRad) * lonScale
	y2 := p2.latRad - p1.latRad
	x3 := (p3.lonRad - p1.lonRad) * lonScale
	y3 := p3.latRad - p1.latRad
	return (x3*y2 - x2*y3) / math.Sqrt(x2*x2+y2*y2) * EarthRadius
}

// DistanceToSegment returns the shortest distance in km between point p3
// and the great-circle segment from p1 to p2, ignoring depths. If the
// along-track projection of p3 falls beyond either endpoint the result
// degrades to the direct distance to the nearer endpoint. Always
// returns a positive result. Accurate for values spanning ±180°; see
// DistanceToSegmentFast for a short-range approximation.
func DistanceToSegment(p1, p2, p3 Point) float64 {
	// repeat calcs in DistanceToLine to cut down on replication of
	// expensive trig ops

	// angular distance
	ad13 := Angle(p1, p3)
	// delta azimuth p1 to p3 and azimuth p1 to p2
	daz := AzimuthRad(p1, p3) - AzimuthRad(p1, p2)
	// cross-track distance (in radians)
	xtd := math.Asin(math.Sin(ad13) * math.Sin(daz))
	// along-track distance (in km)
	atd := math.Acos(math.Cos(ad13)/math.Cos(xtd)) * EarthRadius
	// check if beyond p2
	if atd > HorzDistance(p1, p2) {
		return HorzDistance(p2, p3)
	}
	// check if before p1
	if math.Cos(daz) < 0 {
		return HorzDistance(p1, p3)
	}
	if math.Abs(xtd) < Tolerance {
		return 0.0
	}
	return math.Abs(xtd) * EarthRadius
}

// DistanceToSegmentFast returns the approximate shortest distance in km
// between point p3 and the segment from p1 to p2 using the same planar
// transform as DistanceToLineFast. Appropriate only over short
// distances and NOT for values spanning ±180°. Always positive.
func DistanceToSegmentFast(p1, p2, p3 Point) float64 {
	// use average latitude to scale longitude
	lonScale := math.Cos(0.5*p3.latRad + 0.25*p1.latRad + 0.25*p2.latRad)
	// first point on line transformed to origin; others scaled by lon
	x2 := (p2.lonRad - p1.lonRad) * lonScale
	y2 := p2.latRad - p1.latRad
	x3 := (p3.lonRad - p1.lonRad) * lonScale
	y3 := p3.latRad - p1.latRad
	return ptSegDist(x2, y2, x3, y3) * EarthRadius
}

// ptSegDist returns the distance from (px, py) to the segment from the
// origin to (x, y), clamping to the nearer endpoint when the projection
// falls outside the segment.
func ptSegDist(x, y, px, py float64) float64 {
	dot := px*x + py*y
	projLenSq := 0.0
	if dot > 0 {
		// p beyond origin end; shift origin to far end of segment
		px -= x
		py -= y
		dot = px*x + py*y
		if dot < 0 {
			projLenSq = dot * dot / (x*x + y*y)
		}
	}
	lenSq := px*px + py*py - projLenSq
	if lenSq < 0 {
		lenSq = 0
	}
	return math.Sqrt(lenSq)
}

// Plunge returns the angle (decimal degrees) of the line between p1 and
// p2 relative to horizontal. Positive angles are down, negative up.
// Intended for use at relatively short separations (≤200 km).
func Plunge(p1, p2 Point) float64 {
	return VectorBetween(p1, p2).Plunge() * toDegrees
}

// Bisect returns a unit vector whose azimuth is the mean of the bearings
// from p2 to p1 and from p2 to p3, bisecting the angle at the shared
// vertex p2. Used for corner miter directions.
func Bisect(p1, p2, p3 Point) Vector {
	v1 := VectorBetween(p2, p1)
	v2 := VectorBetween(p2, p3)
	az := (v2.Azimuth + v1.Azimuth) / 2.0
	return NewVector(az, 1, 0)
}

// IsPole reports whether p coincides with one of the earth's poles.
// Points within less than a mm of a pole return true.
func IsPole(p Point) bool {
	return math.Cos(p.latRad) < Tolerance
}

// Similar reports whether two points are very, very close to one
// another: lat, lon, and depth each within Tolerance (<1mm).
func Similar(p1, p2 Point) bool {
	return fuzzyEquals(p1.lon, p2.lon) &&
		fuzzyEquals(p1.lat, p2.lat) &&
		fuzzyEquals(p1.depth, p2.depth)
}

func fuzzyEquals(a, b float64) bool {
	return math.Abs(a-b) <= Tolerance
}

// BoundsOf returns the bounds of the supplied points, tracking the
// minimum and maximum of each axis independently in a single pass. For
// a single point, Min and Max of the result are equal. Not seam-aware:
// callers must pre-normalize longitudes if data spans ±180°. Returns
// ErrEmptyTrace if pts is empty.
func BoundsOf(pts []Point) (Bounds, error) {
	if len(pts) == 0 {
		return Bounds{}, ErrEmptyTrace
	}
	minLon := math.Inf(1)
	maxLon := math.Inf(-1)
	minLat := math.Inf(1)
	maxLat := math.Inf(-1)
	for _, p := range pts {
		minLon = math.Min(minLon, p.lon)
		maxLon = math.Max(maxLon, p.lon)
		minLat = math.Min(minLat, p.lat)
		maxLat = math.Max(maxLat, p.lat)
	}
	return Bounds{
		Min: unchecked(minLat, minLon, 0),
		Max: unchecked(maxLat, maxLon, 0),
	}, nil
}

// Centroid returns the arithmetic mean of the latitudes, longitudes, and
// depths of the supplied points. This is not a geodesic center and is
// only valid for small clusters of points.
func Centroid(pts []Point) Point {
	var cLat, cLon, cDepth float64
	for _, p := range pts {
		cLat += p.lat
		cLon += p.lon
		cDepth += p.depth
	}
	n := float64(len(pts))
	return unchecked(cLat/n, cLon/n, cDepth/n)
}

// ClosestPoint returns the point in t closest to p, by HorzDistanceFast.
func ClosestPoint(p Point, t Trace) Point {
	rMin := math.Inf(1)
	closest := t.First()
	for i := 0; i < t.Size(); i++ {
		if r := HorzDistanceFast(p, t.At(i)); r < rMin {
			rMin = r
			closest = t.At(i)
		}
	}
	return closest
}

// MinDistanceToPoints returns the horizontal distance in km from p to
// the closest point in t, by HorzDistanceFast.
func MinDistanceToPoints(p Point, t Trace) float64 {
	rMin := math.Inf(1)
	for i := 0; i < t.Size(); i++ {
		if r := HorzDistanceFast(p, t.At(i)); r < rMin {
			rMin = r
		}
	}
	return rMin
}

// MinDistanceToTrace returns the shortest horizontal distance in km from
// p to the line defined by connecting the points of t. Built on
// DistanceToSegmentFast, so inappropriate at large separations
// (>~200 km).
func MinDistanceToTrace(p Point, t Trace) float64 {
	if t.Size() == 1 {
		return HorzDistanceFast(p, t.First())
	}
	min := math.Inf(1)
	for i := 0; i < t.Size()-1; i++ {
		min = math.Min(min, DistanceToSegmentFast(t.At(i), t.At(i+1), p))
	}
	return min
}

// MinDistanceIndex returns the index of the segment of t closest to p.
// There are t.Size()-1 segments; the endpoints of segment n are the
// trace points [n, n+1]. Returns a *RangeError if t has fewer than 2
// points.
func MinDistanceIndex(p Point, t Trace) (int, error) {
	if t.Size() < 2 {
		return 0, &RangeError{Param: "trace size", Value: float64(t.Size())}
	}
	min := math.Inf(1)
	minIndex := -1
	for i := 0; i < t.Size()-1; i++ {
		if d := DistanceToSegmentFast(t.At(i), t.At(i+1), p); d < min {
			min = d
			minIndex = i
		}
	}
	return minIndex, nil
}
