package thermite

import (
	"github.com/google/uuid"
)

// Body is a rigid body whose collision shape is a set of convex pieces in
// its local frame, with the simple polygon they decompose kept alongside
// as the body's outline.
type Body struct {
	id uuid.UUID

	position Vector
	angle    float64
	rot      Vector

	velocity        Vector
	angularVelocity float64
	force           Vector
	torque          float64

	mass   float64
	moment float64
	cog    Vector

	transform Transform

	outline SimplePolygon
	pieces  []ConvexPiece
	bb      BB

	world *World
}

func newBody(position Vector, angle float64, outline SimplePolygon, pieces []ConvexPiece, density float64) *Body {
	body := &Body{
		id:      uuid.New(),
		pieces:  pieces,
		outline: outline,
	}

	for _, piece := range pieces {
		ring := piece.Ring()
		area := ring.Area()
		m := area * density
		body.mass += m
		body.cog = body.cog.Add(ring.Centroid().Mult(m))
		body.moment += momentForRing(m, ring, Vector{})
	}
	if body.mass > 0 {
		body.cog = body.cog.Mult(1.0 / body.mass)
	}

	body.setTransform(position, angle)
	return body
}

func (body *Body) ID() uuid.UUID {
	return body.id
}

func (body *Body) Position() Vector {
	return body.position
}

func (body *Body) Angle() float64 {
	return body.angle
}

func (body *Body) Mass() float64 {
	return body.mass
}

func (body *Body) Moment() float64 {
	return body.moment
}

// LocalPolygon returns the body's outline in its local frame.
func (body *Body) LocalPolygon() SimplePolygon {
	return body.outline
}

func (body *Body) Pieces() []ConvexPiece {
	return body.pieces
}

func (body *Body) Velocity() Vector {
	return body.velocity
}

func (body *Body) SetVelocityVector(v Vector) {
	body.velocity = v
}

func (body *Body) AngularVelocity() float64 {
	return body.angularVelocity
}

func (body *Body) SetAngularVelocity(w float64) {
	body.angularVelocity = w
}

// VelocityAtWorldPoint returns the velocity of the body at a world point,
// combining linear and rotational motion.
func (body *Body) VelocityAtWorldPoint(point Vector) Vector {
	r := point.Sub(body.transform.Point(body.cog))
	return body.velocity.Add(r.Perp().Mult(body.angularVelocity))
}

func (body *Body) setTransform(position Vector, angle float64) {
	body.position = position
	body.angle = angle
	body.rot = ForAngle(angle)
	body.transform = NewTransformRigid(position, angle)
	body.cacheBB()
}

func (body *Body) cacheBB() {
	ring := body.outline.Ring()
	bb := NewBBForExtents(body.transform.Point(ring[0]), 0, 0)
	for _, v := range ring[1:] {
		bb = bb.Expand(body.transform.Point(v))
	}
	body.bb = bb
}

// BB returns the body's world-frame bounding box.
func (body *Body) BB() BB {
	return body.bb
}

func (body *Body) WorldToLocal(point Vector) Vector {
	return NewTransformRigidInverse(body.transform).Point(point)
}

func (body *Body) LocalToWorld(point Vector) Vector {
	return body.transform.Point(point)
}

// UpdateVelocity integrates gravity and accumulated forces over dt.
func (body *Body) UpdateVelocity(gravity Vector, damping, dt float64) {
	if body.mass == 0 {
		return
	}
	body.velocity = body.velocity.Mult(damping).Add(gravity.Add(body.force.Mult(1.0 / body.mass)).Mult(dt))
	body.angularVelocity = body.angularVelocity*damping + body.torque/body.moment*dt
	body.force = Vector{}
	body.torque = 0
}

// UpdatePosition integrates velocity over dt.
func (body *Body) UpdatePosition(dt float64) {
	body.setTransform(body.position.Add(body.velocity.Mult(dt)), body.angle+body.angularVelocity*dt)
}

// RayHit is the result of a ray cast: the world-frame entry point, the
// outward normal of the struck face and the fraction along p1->p2.
type RayHit struct {
	Point    Vector
	Normal   Vector
	Fraction float64
}

// RayCast intersects the world-frame ray p1->p2, clipped at maxFraction,
// with the body's convex pieces and returns the nearest entry hit. Rays
// originating inside a piece report no hit for that piece.
func (body *Body) RayCast(p1, p2 Vector, maxFraction float64) (RayHit, bool) {
	l1 := body.WorldToLocal(p1)
	l2 := body.WorldToLocal(p2)

	best := RayHit{Fraction: maxFraction}
	found := false
	for _, piece := range body.pieces {
		hit, ok := rayCastPiece(piece, l1, l2, maxFraction)
		if ok && (!found || hit.Fraction < best.Fraction) {
			best = hit
			found = true
		}
	}
	if !found {
		return RayHit{}, false
	}
	best.Point = body.transform.Point(best.Point)
	best.Normal = body.transform.Vect(best.Normal)
	return best, true
}

// rayCastPiece clips the local-frame ray against the half planes of one
// convex piece. No plane ever clips the ray's origin when it starts inside,
// so interior origins produce no hit.
func rayCastPiece(piece ConvexPiece, p1, p2 Vector, maxFraction float64) (RayHit, bool) {
	n := piece.Count()
	d := p2.Sub(p1)

	lower := 0.0
	upper := maxFraction
	index := -1

	for i := 0; i < n; i++ {
		a := piece.Vert(i)
		b := piece.Vert((i + 1) % n)
		normal := b.Sub(a).ReversePerp().Normalize()

		numerator := normal.Dot(a.Sub(p1))
		denominator := normal.Dot(d)

		if denominator == 0 {
			if numerator < 0 {
				return RayHit{}, false
			}
		} else {
			t := numerator / denominator
			if denominator < 0 && t > lower {
				lower = t
				index = i
			} else if denominator > 0 && t < upper {
				upper = t
			}
		}

		if upper < lower {
			return RayHit{}, false
		}
	}

	if index < 0 {
		return RayHit{}, false
	}
	a := piece.Vert(index)
	b := piece.Vert((index + 1) % n)
	return RayHit{
		Point:    p1.Lerp(p2, lower),
		Normal:   b.Sub(a).ReversePerp().Normalize(),
		Fraction: lower,
	}, true
}

// momentForRing returns the moment of inertia of a solid polygon of the
// given mass, each vertex shifted by offset.
func momentForRing(mass float64, ring Ring, offset Vector) float64 {
	var sum1, sum2 float64
	n := len(ring)
	for i := 0; i < n; i++ {
		v1 := ring[i].Add(offset)
		v2 := ring[(i+1)%n].Add(offset)

		a := v2.Cross(v1)
		b := v1.Dot(v1) + v1.Dot(v2) + v2.Dot(v2)

		sum1 += a * b
		sum2 += a
	}
	return (mass * sum1) / (6.0 * sum2)
}
