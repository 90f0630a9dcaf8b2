package thermite

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateAcceptsLShape(t *testing.T) {
	assert.Equal(t, Valid, Validate(lShape))
	// Idempotent.
	assert.Equal(t, Valid, Validate(lShape))
}

func TestValidateWrongWinding(t *testing.T) {
	reversed := Ring{{-4, -4}, {-4, 4}, {0, 4}, {0, 0}, {4, 0}, {4, -4}}
	assert.Equal(t, WrongWinding, Validate(reversed))
	assert.Equal(t, WrongWinding, Validate(reversed))
}

func TestValidateBowtie(t *testing.T) {
	bowtie := Ring{{-4, -4}, {4, 4}, {4, -4}, {-4, 4}}
	code := Validate(bowtie)
	assert.NotZero(t, code&SelfIntersecting)
}

func TestValidateTooFewVertices(t *testing.T) {
	assert.NotEqual(t, Valid, Validate(Ring{{0, 0}, {1, 1}}))
}

func TestNewSimplePolygonRejects(t *testing.T) {
	_, err := NewSimplePolygon(Ring{{0, 0}, {1, 0}, {2, 0}, {3, 0}})
	assert.ErrorIs(t, err, ErrDegeneratePolygon)

	_, err = NewSimplePolygon(Ring{{0, 0}, {4, 4}})
	assert.ErrorIs(t, err, ErrDegeneratePolygon)

	bowtie := Ring{{-4, -4}, {4, 4}, {4, -4}, {-4, 4}}
	_, err = NewSimplePolygon(bowtie)
	assert.ErrorIs(t, err, ErrMalformedPolygon)
}

func TestDecomposeTriangle(t *testing.T) {
	tri := MustSimplePolygon(Ring{{0, 0}, {4, 0}, {0, 4}})
	pieces, err := Decompose(tri)
	require.NoError(t, err)
	require.Len(t, pieces, 1)
	assert.True(t, pieces[0].Ring().EquivalentTo(tri.Ring(), DefaultEpsilon))
}

func TestDecomposeLShape(t *testing.T) {
	poly := MustSimplePolygon(lShape)
	pieces, err := Decompose(poly)
	require.NoError(t, err)
	require.Len(t, pieces, 2)

	for _, piece := range pieces {
		assert.LessOrEqual(t, piece.Count(), 4)
		assert.True(t, piece.Ring().Clockwise())
		assertConvex(t, piece)
	}
	assertCoverage(t, lShape, pieces)
}

func TestDecomposeSpiral(t *testing.T) {
	// Two nested notches force repeated splits.
	ring := Ring{{0, 0}, {8, 0}, {8, 8}, {2, 8}, {2, 4}, {4, 4}, {4, 6}, {6, 6}, {6, 2}, {0, 2}}
	poly := MustSimplePolygon(ring)

	pieces, err := Decompose(poly)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, len(pieces), 3)
	for _, piece := range pieces {
		assert.True(t, piece.Ring().Clockwise())
		assertConvex(t, piece)
	}
	assertCoverage(t, ring, pieces)
}

func TestDecomposeDeterministic(t *testing.T) {
	poly := MustSimplePolygon(lShape)
	first, err := Decompose(poly)
	require.NoError(t, err)
	second, err := Decompose(poly)
	require.NoError(t, err)

	require.Equal(t, len(first), len(second))
	for i := range first {
		assert.Equal(t, first[i].Ring(), second[i].Ring())
	}
}

func assertConvex(t *testing.T, piece ConvexPiece) {
	t.Helper()
	ring := piece.Ring()
	n := len(ring)
	for i := 0; i < n; i++ {
		d := det(ring[i], ring[(i+1)%n], ring[(i+2)%n])
		assert.GreaterOrEqual(t, d, 0.0, "reflex triple at %d", i)
	}
}

// assertCoverage samples the ring's bounding box on a grid offset to dodge
// piece boundaries: interior points must fall in exactly one piece,
// exterior points in none.
func assertCoverage(t *testing.T, ring Ring, pieces []ConvexPiece) {
	t.Helper()
	bb := ring.BoundingBox()
	for x := bb.L + 0.23; x < bb.R; x += 0.5 {
		for y := bb.B + 0.23; y < bb.T; y += 0.5 {
			p := Vector{x, y}
			if ring.OnBoundary(p, DefaultEpsilon) {
				continue
			}
			count := 0
			for _, piece := range pieces {
				if piece.Contains(p) || piece.Ring().OnBoundary(p, DefaultEpsilon) {
					count++
				}
			}
			if ring.Contains(p) {
				assert.GreaterOrEqual(t, count, 1, "interior point %v uncovered", p)
			} else {
				assert.Zero(t, count, "exterior point %v covered", p)
			}
		}
	}
}
