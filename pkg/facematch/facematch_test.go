package facematch

import (
	"math"
	"testing"

	"FaceVerify/internal/entity"
	"github.com/stretchr/testify/assert"
)

func vec(values ...float64) entity.FaceEncoding {
	enc := make(entity.FaceEncoding, 128)
	copy(enc, values)
	return enc
}

func TestCompareOrderAndLength(t *testing.T) {
	c := New(0)
	assert.Equal(t, DefaultTolerance, c.Tolerance())

	known := []entity.FaceEncoding{vec(1), vec(0.1), vec(0), vec(5)}
	matches := c.Compare(known, vec(0))

	assert.Equal(t, []bool{false, true, true, false}, matches)
}

func TestCompareBoundaryIsInclusive(t *testing.T) {
	c := New(0.5)
	matches := c.Compare([]entity.FaceEncoding{vec(0.5)}, vec(0))
	assert.Equal(t, []bool{true}, matches)
}

func TestCompareDimensionMismatch(t *testing.T) {
	c := New(0.6)
	known := []entity.FaceEncoding{{0, 0}, nil, vec(0)}

	assert.NotPanics(t, func() {
		matches := c.Compare(known, vec(0))
		assert.Equal(t, []bool{false, false, true}, matches)
	})

	d := c.Distances(known, vec(0))
	assert.True(t, math.IsInf(d[0], 1))
	assert.True(t, math.IsInf(d[1], 1))
	assert.Equal(t, 0.0, d[2])
}

func TestCompareEmptyKnown(t *testing.T) {
	assert.Empty(t, New(0.6).Compare(nil, vec(1)))
}
