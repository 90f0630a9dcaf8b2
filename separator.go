package thermite

import "fmt"

// Code classifies a ring. It is a bit set: bit 0 flags intersecting edges,
// bit 1 flags reversed winding.
type Code int

const (
	Valid            Code = 0
	SelfIntersecting Code = 1
	WrongWinding     Code = 2
)

func (c Code) String() string {
	switch c {
	case Valid:
		return "valid"
	case SelfIntersecting:
		return "overlapping lines"
	case WrongWinding:
		return "wrong winding"
	case SelfIntersecting | WrongWinding:
		return "overlapping lines, wrong winding"
	}
	return fmt.Sprintf("code %d", int(c))
}

// Separator validates rings and splits simple polygons into convex pieces.
type Separator struct {
	eps        float64
	splitBound int
}

// NewSeparator returns a separator with the given tolerance. Non-positive
// eps means DefaultEpsilon.
func NewSeparator(eps float64) *Separator {
	if eps <= 0 {
		eps = DefaultEpsilon
	}
	return &Separator{eps: eps, splitBound: defaultSplitBound}
}

// defaultSplitBound caps decomposition at splitBound * n * n splits.
const defaultSplitBound = 4

// Validate classifies ring. For each directed edge it checks that some
// vertex lies strictly to its left (a ring wound backward has an edge with
// none) and that no non-adjacent edge crosses it.
func (s *Separator) Validate(ring Ring) Code {
	n := len(ring)
	if n < 3 {
		return WrongWinding
	}

	var code Code
	reversed := false
	for i := 0; i < n; i++ {
		i2 := (i + 1) % n
		i3 := (i - 1 + n) % n

		left := false
		for j := 0; j < n; j++ {
			if j == i || j == i2 {
				continue
			}
			if !left && det(ring[i], ring[i2], ring[j]) > 0 {
				left = true
			}
			if j != i3 {
				j2 := (j + 1) % n
				if _, ok := hitSegment(ring[i], ring[i2], ring[j], ring[j2], s.eps); ok {
					code |= SelfIntersecting
				}
			}
		}
		if !left {
			reversed = true
		}
	}
	if reversed {
		code |= WrongWinding
	}
	return code
}

// Validate classifies ring using the default tolerance.
func Validate(ring Ring) Code {
	return NewSeparator(0).Validate(ring)
}

// Decompose splits p into convex pieces whose union is p. Pieces come out
// in the FIFO order the splits produce, so equal inputs give equal outputs.
func (s *Separator) Decompose(p SimplePolygon) ([]ConvexPiece, error) {
	n := p.Count()
	maxSplits := s.splitBound * n * n
	splits := 0

	queue := []Ring{p.Ring()}
	var pieces []ConvexPiece

	for len(queue) > 0 {
		ring := queue[0]
		convex := true

		for i := 0; i < len(ring); i++ {
			if det(ring[i], ring[(i+1)%len(ring)], ring[(i+2)%len(ring)]) >= 0 {
				continue
			}
			convex = false

			splits++
			if splits > maxSplits {
				return nil, fmt.Errorf("split budget %d exceeded: %w", maxSplits, ErrDecompositionFailed)
			}

			left, right, err := s.splitAtNotch(ring, i)
			if err != nil {
				return nil, err
			}
			queue = append(queue[1:], left, right)
			break
		}

		if convex {
			pieces = append(pieces, ConvexPiece{trustedPolygon(ring)})
			queue = queue[1:]
		}
	}
	return pieces, nil
}

// Decompose splits p into convex pieces using the default tolerance.
func Decompose(p SimplePolygon) ([]ConvexPiece, error) {
	return NewSeparator(0).Decompose(p)
}

// splitAtNotch resolves the reflex vertex at index i+1 by casting a ray
// from ring[i] through it, cutting the ring at the nearest edge hit, and
// returning the two halves. The backward half is reversed to restore the
// winding.
func (s *Separator) splitAtNotch(ring Ring, i int) (Ring, Ring, error) {
	n := len(ring)
	i1 := i
	i2 := (i + 1) % n
	p1 := ring[i1]
	p2 := ring[i2]

	minLen := -1.0
	var hitV Vector
	var j1, j2 int

	for j := 0; j < n; j++ {
		if j == i1 || j == i2 {
			continue
		}
		v, ok := hitRay(p1, p2, ring[j], ring[(j+1)%n], s.eps)
		if !ok {
			continue
		}
		d := p2.DistanceSq(v)
		// Hits within eps of the current best are the same point; the
		// lowest j keeps it.
		if minLen < 0 || (d < minLen && !pointsMatch(v, hitV, s.eps)) {
			j1 = j
			j2 = (j + 1) % n
			hitV = v
			minLen = d
		}
	}
	if minLen < 0 {
		return nil, nil, fmt.Errorf("no ray hit for notch at %v: %w", p2, ErrMalformedPolygon)
	}

	v1 := ring[j1]
	v2 := ring[j2]

	// Backward half: from the notch side of the cut down to the struck
	// edge, then closed on the hit point.
	var left Ring
	if !pointsMatch(hitV, v2, s.eps) {
		left = append(left, hitV)
	}
	h := -1
	for k := i1; ; {
		if k != j2 {
			left = append(left, ring[k])
		} else {
			if h < 0 {
				return nil, nil, fmt.Errorf("degenerate split walk: %w", ErrMalformedPolygon)
			}
			if !onSegment(v2, ring[h], p1, s.eps) {
				left = append(left, ring[k])
			}
			break
		}
		h = k
		k = (k - 1 + n) % n
	}
	left = left.Reverse()

	// Forward half, symmetric.
	var right Ring
	if !pointsMatch(hitV, v1, s.eps) {
		right = append(right, hitV)
	}
	h = -1
	for k := i2; ; {
		if k != j1 {
			right = append(right, ring[k])
		} else {
			if h < 0 {
				return nil, nil, fmt.Errorf("degenerate split walk: %w", ErrMalformedPolygon)
			}
			if !onSegment(v1, ring[h], p2, s.eps) {
				right = append(right, ring[k])
			}
			break
		}
		h = k
		k = (k + 1) % n
	}

	return left, right, nil
}
