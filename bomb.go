package thermite

import (
	"fmt"
	"math"
	"math/rand"
)

// BlastProfile describes how a bomb's blast polygon is generated: a rough
// circle of Segments vertices whose radii wobble within
// Radius*Roughness of Radius.
type BlastProfile struct {
	Radius    float64 `yaml:"radius"`
	Segments  int     `yaml:"segments"`
	Roughness float64 `yaml:"roughness"`
}

// The two bomb kinds of the playground. SimpleBlast makes jagged triangular
// craters, LegoBlast rounder ones.
var (
	SimpleBlast = BlastProfile{Radius: 1.75, Segments: 3, Roughness: 1}
	LegoBlast   = BlastProfile{Radius: 1.75, Segments: 20, Roughness: 0.5}
)

const maxBlastAttempts = 64

// Generate produces a validated blast polygon around the local origin.
// Rough profiles can self-intersect, so generation retries until the shape
// validates.
func (p BlastProfile) Generate(rng *rand.Rand) (SimplePolygon, error) {
	if p.Segments < 3 || p.Radius <= 0 {
		return SimplePolygon{}, fmt.Errorf("blast profile %+v: %w", p, ErrDegeneratePolygon)
	}
	for attempt := 0; attempt < maxBlastAttempts; attempt++ {
		poly, err := NewSimplePolygon(p.ring(rng))
		if err == nil {
			return poly, nil
		}
	}
	return SimplePolygon{}, fmt.Errorf("no valid blast shape in %d attempts: %w", maxBlastAttempts, ErrMalformedPolygon)
}

func (p BlastProfile) ring(rng *rand.Rand) Ring {
	delta := 2.0 * math.Pi / float64(p.Segments)
	threshold := p.Radius * p.Roughness
	ring := make(Ring, 0, p.Segments)
	theta := 0.0
	for i := 0; i < p.Segments; i++ {
		r := p.Radius + (rng.Float64()*2.0-1.0)*threshold
		ring = append(ring, ForAngle(theta).Mult(r))
		theta += delta
	}
	return ring
}

// Bomb is one hit's payload: a blast shape in its own local frame and the
// world point it detonates at.
type Bomb struct {
	Shape  SimplePolygon
	Anchor Vector
}
