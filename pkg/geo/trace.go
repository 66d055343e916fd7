package geo

import (
	"math"
	"strings"
)

// A Trace is an immutable ordered list of one or more Points, typically
// the surface trace of a fault or rupture. Duplicate points are
// permitted; empty traces are not. Once created a Trace never mutates:
// every derived operation (Reverse, Translate, Resample, Partition)
// returns a new Trace.
//
// Use NewTrace or ParseTrace when the points are known in advance, or a
// TraceBuilder when compiling a trace incrementally.
type Trace struct {
	pts []Point

	// rev marks a reversed view over pts, letting Reverse avoid a copy.
	rev bool
}

// NewTrace returns a Trace of the supplied points. Returns
// ErrEmptyTrace if no points are supplied.
func NewTrace(pts ...Point) (Trace, error) {
	if len(pts) == 0 {
		return Trace{}, ErrEmptyTrace
	}
	cp := make([]Point, len(pts))
	copy(cp, pts)
	return Trace{pts: cp}, nil
}

// ParseTrace parses a whitespace-delimited sequence of "lon,lat,depth"
// tuples; see ParsePoint. Returns ErrEmptyTrace if s contains no
// tuples.
func ParseTrace(s string) (Trace, error) {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return Trace{}, ErrEmptyTrace
	}
	pts := make([]Point, len(fields))
	for i, f := range fields {
		p, err := ParsePoint(f)
		if err != nil {
			return Trace{}, err
		}
		pts[i] = p
	}
	return Trace{pts: pts}, nil
}

// String returns the points of this trace as space-delimited
// "lon,lat,depth" tuples in order. ParseTrace is its exact inverse.
func (t Trace) String() string {
	var sb strings.Builder
	for i := 0; i < t.Size(); i++ {
		if i > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(t.At(i).String())
	}
	return sb.String()
}

// Size returns the number of points in this trace.
func (t Trace) Size() int { return len(t.pts) }

// At returns the point at index i.
func (t Trace) At(i int) Point {
	if t.rev {
		i = len(t.pts) - 1 - i
	}
	return t.pts[i]
}

// First returns the first point in this trace.
func (t Trace) First() Point { return t.At(0) }

// Last returns the last point in this trace.
func (t Trace) Last() Point { return t.At(t.Size() - 1) }

// Points returns a copy of the points of this trace in order.
func (t Trace) Points() []Point {
	pts := make([]Point, t.Size())
	for i := range pts {
		pts[i] = t.At(i)
	}
	return pts
}

// Equal reports whether t and o contain equal points in the same order.
func (t Trace) Equal(o Trace) bool {
	if t.Size() != o.Size() {
		return false
	}
	for i := 0; i < t.Size(); i++ {
		if t.At(i) != o.At(i) {
			return false
		}
	}
	return true
}

// Length returns the horizontal length of this trace in km: the sum of
// HorzDistanceFast over consecutive points, ignoring depth variation, or
// 0 for a single-point trace. The length is recomputed on each call.
func (t Trace) Length() float64 {
	sum := 0.0
	for i := 0; i < t.Size()-1; i++ {
		sum += HorzDistanceFast(t.At(i), t.At(i+1))
	}
	return sum
}

// Distances returns the horizontal lengths of the consecutive segments
// of this trace. The result has Size()-1 elements and is empty for a
// single-point trace.
func (t Trace) Distances() []float64 {
	d := make([]float64, t.Size()-1)
	for i := range d {
		d[i] = HorzDistanceFast(t.At(i), t.At(i+1))
	}
	return d
}

// Depth returns the average depth of the points in this trace.
func (t Trace) Depth() float64 {
	depth := 0.0
	for i := 0; i < t.Size(); i++ {
		depth += t.At(i).Depth()
	}
	return depth / float64(t.Size())
}

// Bounds returns the bounds of the points in this trace; see BoundsOf.
func (t Trace) Bounds() Bounds {
	b, _ := BoundsOf(t.pts)
	return b
}

// Reverse returns a trace with the points of this one in reverse order.
// The returned trace is a view over the same underlying points; no copy
// is made.
func (t Trace) Reverse() Trace {
	return Trace{pts: t.pts, rev: !t.rev}
}

// Translate returns a trace with every point of this one independently
// moved by the supplied vector. This is not a rigid geodesic
// translation: a fixed azimuth is not globally parallel on a sphere, so
// the shape of a large trace will distort.
func (t Trace) Translate(v Vector) Trace {
	pts := make([]Point, t.Size())
	for i := range pts {
		pts[i] = ProjectVector(t.At(i), v)
	}
	return Trace{pts: pts}
}

// Partition splits this trace into contiguous sub-traces of as-equal-as-
// possible length nearest the target length. The actual length of the
// sub-traces will likely differ from the target, as it is adjusted up or
// down to the closest value that yields sub-traces of equal length.
// Each sub-trace shares its boundary point with the next.
//
// If Length() <= length, the result contains only this trace. Returns a
// *RangeError if length is non-positive or non-finite.
func (t Trace) Partition(length float64) ([]Trace, error) {
	if !isPositiveReal(length) {
		return nil, &RangeError{Param: "partition length", Value: length}
	}

	total := t.Length()
	if total <= length {
		return []Trace{t}, nil
	}

	var partitions []Trace
	partitionLength := total / math.RoundToEven(total/length)

	distances := t.Distances()
	partition := NewTraceBuilder()
	residual := 0.0
	for i, segment := range distances {
		start := t.At(i)
		partition.Add(start)
		distance := segment + residual
		for partitionLength < distance {
			// On the last segment of a trace that just undershoots its
			// final boundary, fold the remainder into the preceding
			// partition rather than splitting off a section of length ≈0.
			if i == len(distances)-1 && distance < 1.5*partitionLength {
				break
			}
			v := VectorBetween(start, t.At(i+1))
			end := Project(start, v.Azimuth, partitionLength-residual)
			partition.Add(end)
			built, err := partition.Build()
			if err != nil {
				return nil, err
			}
			partitions = append(partitions, built)
			partition = NewTraceBuilder()
			partition.Add(end)
			start = end
			distance -= partitionLength
			residual = 0.0
		}
		residual = distance
	}
	partition.Add(t.Last())
	built, err := partition.Build()
	if err != nil {
		return nil, err
	}
	return append(partitions, built), nil
}

// Resample returns a trace resampled to a uniform spacing no greater
// than the supplied maximum. The actual spacing will likely differ, as
// it is adjusted down to maintain uniform divisions of the total length.
// Original intermediate vertices are not preserved, so corners may be
// clipped if spacing is large. The first and last points of this trace
// are always preserved exactly; the final synthesized point is replaced
// with the exact original last point to eliminate accumulated floating
// drift.
//
// If Length() <= spacing, this trace is returned. Returns a *RangeError
// if spacing is non-positive or non-finite.
func (t Trace) Resample(spacing float64) (Trace, error) {
	if !isPositiveReal(spacing) {
		return Trace{}, &RangeError{Param: "spacing", Value: spacing}
	}

	length := t.Length()
	if length <= spacing {
		return t, nil
	}

	spacing = length / math.Ceil(length/spacing)
	resampled := make([]Point, 0, int(length/spacing)+2)
	start := t.First()
	resampled = append(resampled, start)
	walker := spacing
	for i := 1; i < t.Size(); i++ {
		next := t.At(i)
		v := VectorBetween(start, next)
		distance := HorzDistanceFast(start, next)
		for walker <= distance {
			resampled = append(resampled, Project(start, v.Azimuth, walker))
			walker += spacing
		}
		start = next
		walker -= distance
	}
	// replace last point to be exact
	resampled[len(resampled)-1] = t.Last()
	return Trace{pts: resampled}, nil
}

func isPositiveReal(v float64) bool {
	return v > 0.0 && !math.IsInf(v, 0)
}

// A TraceBuilder incrementally accumulates points and freezes them into
// an immutable Trace. Builders are single-owner: they are not safe for
// concurrent use. A builder may be used once; adding points after Build
// has been called panics.
type TraceBuilder struct {
	pts    []Point
	frozen bool
}

// NewTraceBuilder returns an empty builder.
func NewTraceBuilder() *TraceBuilder {
	return &TraceBuilder{}
}

// Add appends the supplied points to the builder.
func (b *TraceBuilder) Add(pts ...Point) {
	if b.frozen {
		panic("geo: add to frozen TraceBuilder")
	}
	b.pts = append(b.pts, pts...)
}

// AddValues validates and appends a point with the supplied latitude,
// longitude, and depth; see NewPoint.
func (b *TraceBuilder) AddValues(lat, lon, depth float64) error {
	p, err := NewPoint(lat, lon, depth)
	if err != nil {
		return err
	}
	b.Add(p)
	return nil
}

// Build freezes the builder and returns the accumulated points as a
// Trace. Returns ErrEmptyTrace if no points were added. Any subsequent
// Add panics.
func (b *TraceBuilder) Build() (Trace, error) {
	if b.frozen {
		panic("geo: TraceBuilder already built")
	}
	b.frozen = true
	if len(b.pts) == 0 {
		return Trace{}, ErrEmptyTrace
	}
	return Trace{pts: b.pts}, nil
}
