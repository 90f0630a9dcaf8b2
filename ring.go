package thermite

// Ring is an ordered sequence of vertices describing a closed polygon.
// Adjacency is cyclic: the edge after index i is (i, (i+1) mod n).
//
// The winding this package works in puts the interior on the side where
// det of each convex triple comes out positive; equivalently the ring's
// signed area is positive. That is the clockwise order of the screen-space
// art pipeline the shapes come from.
type Ring []Vector

func (r Ring) Clone() Ring {
	out := make(Ring, len(r))
	copy(out, r)
	return out
}

// SignedArea returns the area enclosed by the ring, positive for the
// winding this package accepts.
func (r Ring) SignedArea() float64 {
	var area float64
	for i, v1 := range r {
		v2 := r[(i+1)%len(r)]
		area += v1.Cross(v2)
	}
	return area / 2.0
}

func (r Ring) Area() float64 {
	a := r.SignedArea()
	if a < 0 {
		return -a
	}
	return a
}

// Clockwise reports whether the ring winds in the accepted order (see the
// type comment).
func (r Ring) Clockwise() bool {
	return r.SignedArea() > 0
}

// Reverse returns the ring with its winding flipped.
func (r Ring) Reverse() Ring {
	out := make(Ring, len(r))
	for i, v := range r {
		out[len(r)-1-i] = v
	}
	return out
}

// Centroid returns the center of mass of the ring's enclosed region.
func (r Ring) Centroid() Vector {
	var sum float64
	var vsum Vector
	for i, v1 := range r {
		v2 := r[(i+1)%len(r)]
		cross := v1.Cross(v2)
		sum += cross
		vsum = vsum.Add(v1.Add(v2).Mult(cross))
	}
	return vsum.Mult(1.0 / (3.0 * sum))
}

func (r Ring) BoundingBox() BB {
	bb := BB{r[0].X, r[0].Y, r[0].X, r[0].Y}
	for _, v := range r[1:] {
		bb = bb.Expand(v)
	}
	return bb
}

// Contains reports whether p lies strictly inside the ring, by the
// even-odd rule. Points on the boundary are not reliably classified;
// use OnBoundary for those.
func (r Ring) Contains(p Vector) bool {
	n := len(r)
	inside := false
	j := n - 1
	for i := 0; i < n; i++ {
		a := r[i]
		b := r[j]
		if (a.Y > p.Y) != (b.Y > p.Y) {
			x := a.X + (p.Y-a.Y)/(b.Y-a.Y)*(b.X-a.X)
			if p.X < x {
				inside = !inside
			}
		}
		j = i
	}
	return inside
}

// OnBoundary reports whether p lies within eps of any edge of the ring.
func (r Ring) OnBoundary(p Vector, eps float64) bool {
	n := len(r)
	for i := 0; i < n; i++ {
		if onSegment(p, r[i], r[(i+1)%n], eps) {
			return true
		}
	}
	return false
}

func (r Ring) Translate(d Vector) Ring {
	out := make(Ring, len(r))
	for i, v := range r {
		out[i] = v.Add(d)
	}
	return out
}

// dedupe collapses runs of vertices closer than eps, including across the
// head/tail seam.
func (r Ring) dedupe(eps float64) Ring {
	out := make(Ring, 0, len(r))
	for _, v := range r {
		if len(out) > 0 && pointsMatch(out[len(out)-1], v, eps) {
			continue
		}
		out = append(out, v)
	}
	for len(out) > 1 && pointsMatch(out[0], out[len(out)-1], eps) {
		out = out[:len(out)-1]
	}
	return out
}

// EquivalentTo reports whether the two rings describe the same polygon up
// to a rotation of the vertex order, comparing vertices within eps.
func (r Ring) EquivalentTo(other Ring, eps float64) bool {
	n := len(r)
	if n != len(other) {
		return false
	}
	for shift := 0; shift < n; shift++ {
		match := true
		for i := 0; i < n; i++ {
			if !pointsMatch(r[i], other[(i+shift)%n], eps) {
				match = false
				break
			}
		}
		if match {
			return true
		}
	}
	return false
}
