package thermite

import (
	"fmt"
	"math"
)

// SimplePolygon is a ring that passed validation: simple, correctly wound,
// at least three effective vertices. Immutable once constructed.
type SimplePolygon struct {
	verts Ring
}

// NewSimplePolygon validates ring and wraps it. Consecutive vertices closer
// than the default epsilon are collapsed first. Degenerate rings surface as
// ErrDegeneratePolygon, everything else the validator rejects as
// ErrMalformedPolygon with the code attached.
func NewSimplePolygon(ring Ring) (SimplePolygon, error) {
	return newSimplePolygonEps(ring, DefaultEpsilon)
}

func newSimplePolygonEps(ring Ring, eps float64) (SimplePolygon, error) {
	r := ring.dedupe(eps)
	if len(r) < 3 || r.degenerate(eps) {
		return SimplePolygon{}, fmt.Errorf("%d vertices: %w", len(r), ErrDegeneratePolygon)
	}
	if code := NewSeparator(eps).Validate(r); code != Valid {
		return SimplePolygon{}, fmt.Errorf("%v: %w", code, ErrMalformedPolygon)
	}
	return SimplePolygon{verts: r}, nil
}

// MustSimplePolygon is NewSimplePolygon for fixtures known to be valid.
func MustSimplePolygon(ring Ring) SimplePolygon {
	p, err := NewSimplePolygon(ring)
	if err != nil {
		panic(err)
	}
	return p
}

// trustedPolygon wraps a ring produced by an operation whose construction
// already guarantees the invariants.
func trustedPolygon(ring Ring) SimplePolygon {
	return SimplePolygon{verts: ring}
}

func (p SimplePolygon) Count() int {
	return len(p.verts)
}

func (p SimplePolygon) Vert(i int) Vector {
	return p.verts[i]
}

// Ring returns a copy of the vertex ring.
func (p SimplePolygon) Ring() Ring {
	return p.verts.Clone()
}

func (p SimplePolygon) Area() float64 {
	return p.verts.Area()
}

func (p SimplePolygon) Centroid() Vector {
	return p.verts.Centroid()
}

func (p SimplePolygon) BoundingBox() BB {
	return p.verts.BoundingBox()
}

func (p SimplePolygon) Contains(v Vector) bool {
	return p.verts.Contains(v)
}

// Translate returns the polygon shifted by d. Rigid motion keeps every
// invariant, so no revalidation happens.
func (p SimplePolygon) Translate(d Vector) SimplePolygon {
	return SimplePolygon{verts: p.verts.Translate(d)}
}

// ConvexPiece is a SimplePolygon whose every consecutive vertex triple has
// a non-negative det.
type ConvexPiece struct {
	SimplePolygon
}

// degenerate reports whether every consecutive triple is collinear within
// eps.
func (r Ring) degenerate(eps float64) bool {
	n := len(r)
	for i := 0; i < n; i++ {
		if math.Abs(det(r[i], r[(i+1)%n], r[(i+2)%n])) >= eps {
			return false
		}
	}
	return true
}
