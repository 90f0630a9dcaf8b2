package thermite

import "math"

// DefaultEpsilon is the geometric tolerance, in the same units as the
// polygons themselves. The slack is wide on purpose: intersection points
// that land near an existing vertex must collapse onto that vertex.
const DefaultEpsilon = 0.1

// det returns twice the signed area of the triangle (a, b, c). Positive
// means the triple turns toward the polygon interior for the winding this
// package accepts, negative means a reflex turn, zero means collinear.
func det(a, b, c Vector) float64 {
	return a.X*b.Y + b.X*c.Y + c.X*a.Y - a.Y*b.X - b.Y*c.X - c.Y*a.X
}

func pointsMatch(a, b Vector, eps float64) bool {
	return math.Abs(b.X-a.X) < eps && math.Abs(b.Y-a.Y) < eps
}

func onLine(p, a, b Vector, eps float64) bool {
	if math.Abs(b.X-a.X) > eps {
		slope := (b.Y - a.Y) / (b.X - a.X)
		want := slope*(p.X-a.X) + a.Y
		return math.Abs(want-p.Y) < eps
	}
	return math.Abs(p.X-a.X) < eps
}

// onSegment reports whether p is collinear with the line through a and b
// and lies within the closed bounding box of the segment, widened by eps.
func onSegment(p, a, b Vector, eps float64) bool {
	bx := (a.X+eps >= p.X && p.X >= b.X-eps) || (a.X-eps <= p.X && p.X <= b.X+eps)
	by := (a.Y+eps >= p.Y && p.Y >= b.Y-eps) || (a.Y-eps <= p.Y && p.Y <= b.Y+eps)
	return bx && by && onLine(p, a, b, eps)
}

// hitRay intersects the infinite ray from a through b with the segment cd.
// The intersection only counts if it lies on cd and at or beyond b along
// the ray.
func hitRay(a, b, c, d Vector, eps float64) (Vector, bool) {
	t1 := c.X - a.X
	t2 := c.Y - a.Y
	t3 := b.X - a.X
	t4 := b.Y - a.Y
	t5 := d.X - c.X
	t6 := d.Y - c.Y
	t7 := t4*t5 - t3*t6
	if t7 == 0 {
		return Vector{}, false
	}

	s := (t5*t2 - t6*t1) / t7
	p := Vector{a.X + s*t3, a.Y + s*t4}
	if onSegment(b, a, p, eps) && onSegment(p, c, d, eps) {
		return p, true
	}
	return Vector{}, false
}

// hitSegment intersects segments ab and cd.
func hitSegment(a, b, c, d Vector, eps float64) (Vector, bool) {
	t1 := c.X - a.X
	t2 := c.Y - a.Y
	t3 := b.X - a.X
	t4 := b.Y - a.Y
	t5 := d.X - c.X
	t6 := d.Y - c.Y
	t7 := t4*t5 - t3*t6
	if t7 == 0 {
		return Vector{}, false
	}

	s := (t5*t2 - t6*t1) / t7
	p := Vector{a.X + s*t3, a.Y + s*t4}
	if onSegment(p, a, b, eps) && onSegment(p, c, d, eps) {
		return p, true
	}
	return Vector{}, false
}

// segmentParams returns the parametric positions of the intersection of
// segments ab and cd: t along ab and u along cd, both in [0, 1] when the
// segments actually cross. Parallel segments never intersect here.
func segmentParams(a, b, c, d Vector) (t, u float64, ok bool) {
	r := b.Sub(a)
	s := d.Sub(c)
	den := r.Cross(s)
	if math.Abs(den) < 1e-12 {
		return 0, 0, false
	}
	ac := c.Sub(a)
	t = ac.Cross(s) / den
	u = ac.Cross(r) / den
	return t, u, t >= 0 && t <= 1 && u >= 0 && u <= 1
}
