package geo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBoundsCorners(t *testing.T) {
	b, err := BoundsOf([]Point{
		MustPoint(0, 10, 0),
		MustPoint(5, 20, 0),
	})
	require.NoError(t, err)

	corners := b.Corners()
	require.Equal(t, 5, corners.Size())

	// closed path winding counter-clockwise from min
	assert.Equal(t, b.Min, corners.First())
	assert.Equal(t, MustPoint(0, 20, 0), corners.At(1))
	assert.Equal(t, b.Max, corners.At(2))
	assert.Equal(t, MustPoint(5, 10, 0), corners.At(3))
	assert.Equal(t, b.Min, corners.Last())
}

func TestBoundsArray(t *testing.T) {
	b, err := BoundsOf([]Point{
		MustPoint(-5, 10, 0),
		MustPoint(15, 30, 0),
	})
	require.NoError(t, err)
	assert.Equal(t, [4]float64{10, -5, 30, 15}, b.Array())
	assert.Equal(t, "[10.00000, -5.00000, 30.00000, 15.00000]", b.String())
}
