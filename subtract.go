package thermite

import (
	"fmt"
	"sort"
)

// Subtractor computes the difference of a breakable body polygon and a bomb
// polygon, both in the body's local frame.
type Subtractor struct {
	eps float64
}

// NewSubtractor returns a subtractor with the given tolerance. Non-positive
// eps means DefaultEpsilon.
func NewSubtractor(eps float64) *Subtractor {
	if eps <= 0 {
		eps = DefaultEpsilon
	}
	return &Subtractor{eps: eps}
}

// crossover is a point where a bomb edge crosses a body edge. bodyT and
// bombT order crossovers along their respective edges.
type crossover struct {
	p        Vector
	bodyEdge int
	bodyT    float64
	bombEdge int
	bombT    float64

	exit bool // the body boundary leaves the bomb region here
	used bool

	bodyPos, bombPos int // positions in the traversal lists
}

// node is one stop on a traversal list: an original vertex or a crossover.
type node struct {
	p     Vector
	cross *crossover
}

// Subtract computes body minus bomb as zero or more simple polygons. The
// crossovers between the two boundaries are sorted along each edge and the
// fragments reconstructed from them: walk the body ring forward outside the
// bomb, switch at each crossover to the bomb ring walked in reverse inside
// the body, until each loop closes. A bomb floating strictly inside the
// body is carved by routing one body edge through the reversed bomb ring
// (holes stay out of scope).
//
// Fragments come out in the discovery order of their seed crossovers (body
// edge ascending, then bomb edge), so equal inputs give equal outputs.
func (s *Subtractor) Subtract(body, bomb SimplePolygon) ([]SimplePolygon, error) {
	bodyRing := body.Ring()
	bombRing := bomb.Ring()

	crossovers := s.findCrossovers(bodyRing, bombRing)
	if len(crossovers) == 0 {
		return s.subtractDisjoint(body, bomb)
	}
	if len(crossovers)%2 != 0 {
		return nil, fmt.Errorf("%d crossovers: %w", len(crossovers), ErrSubtractionFailed)
	}

	bodyList, bombList := buildTraversal(bodyRing, bombRing, crossovers)
	s.classify(bombRing, bodyList, crossovers)

	var out []SimplePolygon
	for _, c := range crossovers {
		if c.used || !c.exit {
			continue
		}
		ring, err := s.trace(c, bodyList, bombList)
		if err != nil {
			return nil, err
		}
		ring = ring.dedupe(s.eps)
		if len(ring) < 3 {
			continue // tangency sliver
		}
		if code := Validate(ring); code != Valid {
			return nil, fmt.Errorf("fragment %v: %w", code, ErrSubtractionFailed)
		}
		out = append(out, trustedPolygon(ring))
	}
	// Every crossover must have been walked through; one left over means a
	// fragment went missing, typically under point tangency.
	for _, c := range crossovers {
		if !c.used {
			return nil, fmt.Errorf("unconsumed crossover at %v: %w", c.p, ErrSubtractionFailed)
		}
	}
	return out, nil
}

// Subtract computes body minus bomb using the default tolerance.
func Subtract(body, bomb SimplePolygon) ([]SimplePolygon, error) {
	return NewSubtractor(0).Subtract(body, bomb)
}

// findCrossovers intersects every body edge with every bomb edge, snapping
// hits to eps-near vertices and dropping eps-duplicates. Iteration order is
// body edge then bomb edge, ascending, so the result is deterministic.
func (s *Subtractor) findCrossovers(bodyRing, bombRing Ring) []*crossover {
	n := len(bodyRing)
	m := len(bombRing)
	var crossovers []*crossover

	for i := 0; i < n; i++ {
		a := bodyRing[i]
		b := bodyRing[(i+1)%n]
		for j := 0; j < m; j++ {
			c := bombRing[j]
			d := bombRing[(j+1)%m]
			t, u, ok := segmentParams(a, b, c, d)
			if !ok {
				continue
			}
			p := a.Lerp(b, t)
			p = snap(p, bodyRing, s.eps)
			p = snap(p, bombRing, s.eps)

			dup := false
			for _, prev := range crossovers {
				if pointsMatch(prev.p, p, s.eps) {
					dup = true
					break
				}
			}
			if dup {
				continue
			}
			crossovers = append(crossovers, &crossover{
				p: p, bodyEdge: i, bodyT: t, bombEdge: j, bombT: u,
			})
		}
	}
	return crossovers
}

func snap(p Vector, ring Ring, eps float64) Vector {
	for _, v := range ring {
		if pointsMatch(p, v, eps) {
			return v
		}
	}
	return p
}

// buildTraversal interleaves each ring's vertices with its crossovers, the
// crossovers on each edge sorted by their parameter along it.
func buildTraversal(bodyRing, bombRing Ring, crossovers []*crossover) (bodyList, bombList []node) {
	perBodyEdge := make(map[int][]*crossover)
	perBombEdge := make(map[int][]*crossover)
	for _, c := range crossovers {
		perBodyEdge[c.bodyEdge] = append(perBodyEdge[c.bodyEdge], c)
		perBombEdge[c.bombEdge] = append(perBombEdge[c.bombEdge], c)
	}

	for i, v := range bodyRing {
		bodyList = append(bodyList, node{p: v})
		edge := perBodyEdge[i]
		sort.SliceStable(edge, func(a, b int) bool { return edge[a].bodyT < edge[b].bodyT })
		for _, c := range edge {
			c.bodyPos = len(bodyList)
			bodyList = append(bodyList, node{p: c.p, cross: c})
		}
	}
	for j, v := range bombRing {
		bombList = append(bombList, node{p: v})
		edge := perBombEdge[j]
		sort.SliceStable(edge, func(a, b int) bool { return edge[a].bombT < edge[b].bombT })
		for _, c := range edge {
			c.bombPos = len(bombList)
			bombList = append(bombList, node{p: c.p, cross: c})
		}
	}
	return bodyList, bombList
}

// classify marks each crossover as an exit when the stretch of body
// boundary just before it runs inside the bomb. The midpoint of that
// stretch decides, which stays robust when crossovers sit on vertices.
func (s *Subtractor) classify(bombRing Ring, bodyList []node, crossovers []*crossover) {
	for _, c := range crossovers {
		prev := bodyList[(c.bodyPos-1+len(bodyList))%len(bodyList)]
		mid := prev.p.Lerp(c.p, 0.5)
		c.exit = bombRing.Contains(mid)
	}
}

// trace walks one fragment loop starting from the exit crossover c.
func (s *Subtractor) trace(start *crossover, bodyList, bombList []node) (Ring, error) {
	ring := Ring{start.p}
	start.used = true

	onBody := true
	pos := start.bodyPos
	budget := 2 * (len(bodyList) + len(bombList))

	for {
		budget--
		if budget < 0 {
			return nil, fmt.Errorf("walk did not close: %w", ErrSubtractionFailed)
		}

		if onBody {
			pos = (pos + 1) % len(bodyList)
			nd := bodyList[pos]
			if nd.cross == nil {
				ring = append(ring, nd.p)
				continue
			}
			if nd.cross == start {
				return ring, nil
			}
			// Entry into the bomb region: detour along the bomb
			// boundary, against its winding.
			ring = append(ring, nd.p)
			nd.cross.used = true
			onBody = false
			pos = nd.cross.bombPos
		} else {
			pos = (pos - 1 + len(bombList)) % len(bombList)
			nd := bombList[pos]
			if nd.cross == nil {
				ring = append(ring, nd.p)
				continue
			}
			if nd.cross == start {
				return ring, nil
			}
			ring = append(ring, nd.p)
			nd.cross.used = true
			onBody = true
			pos = nd.cross.bodyPos
		}
	}
}

// subtractDisjoint handles the zero-crossover cases: a miss returns the
// body unchanged, a bomb swallowing the body returns nothing, and a bomb
// strictly inside the body carves it into a single ring that detours one
// body edge through the reversed bomb ring.
func (s *Subtractor) subtractDisjoint(body, bomb SimplePolygon) ([]SimplePolygon, error) {
	bodyRing := body.Ring()
	bombRing := bomb.Ring()

	if bombRing.Contains(bodyRing[0]) {
		return nil, nil
	}
	if !bodyRing.Contains(bombRing[0]) {
		return []SimplePolygon{body}, nil
	}
	ring, err := s.carveInterior(bodyRing, bombRing)
	if err != nil {
		return nil, err
	}
	return []SimplePolygon{trustedPolygon(ring)}, nil
}

// carveInterior builds the single ring for a bomb strictly inside the
// body: body vertices in order, then the bomb ring reversed, seamed where
// the two boundaries can see each other.
func (s *Subtractor) carveInterior(bodyRing, bombRing Ring) (Ring, error) {
	n := len(bodyRing)
	m := len(bombRing)

	bestDist := -1.0
	bestI, bestJ := -1, -1
	for i := 0; i < n; i++ {
		for j := 0; j < m; j++ {
			d := bodyRing[i].DistanceSq(bombRing[j])
			if bestDist >= 0 && d >= bestDist {
				continue
			}
			// The reversed bomb walk starting at j ends at j+1, which
			// the closing seam leaves from.
			if !s.seamClear(bodyRing[i], bombRing[j], bodyRing, bombRing) {
				continue
			}
			if !s.seamClear(bombRing[(j+1)%m], bodyRing[(i+1)%n], bodyRing, bombRing) {
				continue
			}
			bestDist = d
			bestI, bestJ = i, j
		}
	}
	if bestI < 0 {
		return nil, fmt.Errorf("no visible seam for interior bomb: %w", ErrSubtractionFailed)
	}

	ring := make(Ring, 0, n+m)
	for k := 0; k < n; k++ {
		ring = append(ring, bodyRing[(bestI+1+k)%n])
	}
	for k := 0; k < m; k++ {
		ring = append(ring, bombRing[(bestJ-k+m)%m])
	}

	ring = ring.dedupe(s.eps)
	if code := Validate(ring); code != Valid {
		return nil, fmt.Errorf("carved ring %v: %w", code, ErrSubtractionFailed)
	}
	return ring, nil
}

// seamClear reports whether the segment ab crosses no edge of either ring,
// hits at its own endpoints aside.
func (s *Subtractor) seamClear(a, b Vector, bodyRing, bombRing Ring) bool {
	for _, ring := range []Ring{bodyRing, bombRing} {
		n := len(ring)
		for i := 0; i < n; i++ {
			c := ring[i]
			d := ring[(i+1)%n]
			p, ok := hitSegment(a, b, c, d, s.eps)
			if !ok {
				continue
			}
			if pointsMatch(p, a, s.eps) || pointsMatch(p, b, s.eps) {
				continue
			}
			return false
		}
	}
	return true
}
