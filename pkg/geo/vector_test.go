package geo

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVectorBetween(t *testing.T) {
	a := MustPoint(0, 0, 0)
	b := MustPoint(0, 1, 5)
	v := VectorBetween(a, b)
	assert.InDelta(t, math.Pi/2, v.Azimuth, 1e-9)
	assert.InDelta(t, kmPerDegree, v.Horizontal, 1e-6)
	assert.Equal(t, 5.0, v.Vertical)
}

func TestVectorReverse(t *testing.T) {
	v := NewVector(math.Pi/4, 10, 2)
	r := v.Reverse()
	assert.InDelta(t, math.Pi/4+math.Pi, r.Azimuth, 1e-12)
	assert.Equal(t, 10.0, r.Horizontal)
	assert.Equal(t, -2.0, r.Vertical)

	// reverse of reverse restores the original
	rr := r.Reverse()
	assert.InDelta(t, v.Azimuth, rr.Azimuth, 1e-12)
	assert.Equal(t, v.Vertical, rr.Vertical)
}

func TestVectorReverseAzimuthWraps(t *testing.T) {
	v := NewVector(3*math.Pi/2, 1, 0)
	r := v.Reverse()
	assert.InDelta(t, math.Pi/2, r.Azimuth, 1e-12)
	assert.GreaterOrEqual(t, r.Azimuth, 0.0)
	assert.Less(t, r.Azimuth, 2*math.Pi)
}

func TestVectorReverseNotBackAzimuth(t *testing.T) {
	// at large separation the back bearing differs from the reversed
	// forward bearing by more than 180°
	a := MustPoint(30, 0, 0)
	b := MustPoint(50, 60, 0)
	reversed := VectorBetween(a, b).Reverse()
	back := VectorBetween(b, a)
	assert.InDelta(t, reversed.Horizontal, back.Horizontal, 1e-9)
	assert.Greater(t, math.Abs(reversed.Azimuth-back.Azimuth), 0.01)
}

func TestVectorPlunge(t *testing.T) {
	v := NewVector(0, 10, 10)
	assert.InDelta(t, math.Pi/4, v.Plunge(), 1e-12)

	up := NewVector(0, 10, -10)
	assert.InDelta(t, -math.Pi/4, up.Plunge(), 1e-12)
}

func TestVectorWithPlunge(t *testing.T) {
	v := VectorWithPlunge(1.0, math.Pi/6, 10)
	assert.InDelta(t, 10*math.Cos(math.Pi/6), v.Horizontal, 1e-12)
	assert.InDelta(t, 10*math.Sin(math.Pi/6), v.Vertical, 1e-12)
	assert.InDelta(t, math.Pi/6, v.Plunge(), 1e-12)
}
