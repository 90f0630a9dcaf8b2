package thermite

import "errors"

var (
	// ErrMalformedPolygon means a ring failed validation, or the separator
	// found a notch with no resolving ray hit.
	ErrMalformedPolygon = errors.New("thermite: malformed polygon")

	// ErrDegeneratePolygon means a ring has fewer than three effective
	// vertices or all of its vertices are collinear.
	ErrDegeneratePolygon = errors.New("thermite: degenerate polygon")

	// ErrSubtractionFailed means a destructive subtraction produced an odd
	// crossover count or an invalid fragment. The original body is left
	// untouched.
	ErrSubtractionFailed = errors.New("thermite: subtraction failed")

	// ErrDecompositionFailed means a decomposition exceeded its split
	// budget.
	ErrDecompositionFailed = errors.New("thermite: decomposition failed")

	// ErrBodyDestroyed means a hit was applied to a breakable whose body a
	// previous bomb already swallowed.
	ErrBodyDestroyed = errors.New("thermite: body destroyed")
)
