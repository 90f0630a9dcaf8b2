package thermite

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var lShape = Ring{{-4, -4}, {4, -4}, {4, 0}, {0, 0}, {0, 4}, {-4, 4}}

func TestRingWinding(t *testing.T) {
	assert.True(t, lShape.Clockwise())
	assert.False(t, lShape.Reverse().Clockwise())
	assert.InDelta(t, 48.0, lShape.Area(), 1e-9)
	assert.InDelta(t, 48.0, lShape.Reverse().Area(), 1e-9)
}

func TestRingCentroid(t *testing.T) {
	square := Ring{{-2, -2}, {2, -2}, {2, 2}, {-2, 2}}
	c := square.Centroid()
	assert.True(t, c.Near(Vector{0, 0}, 1e-9))

	shifted := square.Translate(Vector{10, 5})
	c = shifted.Centroid()
	assert.True(t, c.Near(Vector{10, 5}, 1e-9))
}

func TestRingContains(t *testing.T) {
	assert.True(t, lShape.Contains(Vector{-2, 2}))
	assert.True(t, lShape.Contains(Vector{2, -2}))
	assert.False(t, lShape.Contains(Vector{2, 2}), "notch quadrant")
	assert.False(t, lShape.Contains(Vector{5, 0}))
}

func TestRingOnBoundary(t *testing.T) {
	square := Ring{{-2, -2}, {2, -2}, {2, 2}, {-2, 2}}
	assert.True(t, square.OnBoundary(Vector{2, 0}, DefaultEpsilon))
	assert.True(t, square.OnBoundary(Vector{2.05, 0}, DefaultEpsilon))
	assert.False(t, square.OnBoundary(Vector{0, 0}, DefaultEpsilon))
}

func TestRingDedupe(t *testing.T) {
	r := Ring{{0, 0}, {0.05, 0}, {4, 0}, {4, 4}, {0.02, 0.02}}
	d := r.dedupe(DefaultEpsilon)
	require.Len(t, d, 3)
	assert.Equal(t, Vector{0, 0}, d[0])
}

func TestRingEquivalentTo(t *testing.T) {
	square := Ring{{-2, -2}, {2, -2}, {2, 2}, {-2, 2}}
	rotated := Ring{{2, 2}, {-2, 2}, {-2, -2}, {2, -2}}
	assert.True(t, square.EquivalentTo(rotated, DefaultEpsilon))
	assert.False(t, square.EquivalentTo(square.Reverse(), DefaultEpsilon))
	assert.False(t, square.EquivalentTo(lShape, DefaultEpsilon))
}

func TestRingBoundingBox(t *testing.T) {
	bb := lShape.BoundingBox()
	assert.Equal(t, BB{-4, -4, 4, 4}, bb)
}
