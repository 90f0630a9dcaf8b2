package thermite

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func squareBombAt(anchor Vector) Bomb {
	return Bomb{
		Shape:  MustSimplePolygon(Ring{{-1, -1}, {1, -1}, {1, 1}, {-1, 1}}),
		Anchor: anchor,
	}
}

func newBreakable(t *testing.T, ring Ring) (*World, *Breakable) {
	t.Helper()
	w := NewWorld(Vector{})
	body := makeBody(t, w, Vector{}, 0, ring)
	return w, NewBreakable(w, body, DefaultConfig(), nil)
}

func TestApplyBombBreaks(t *testing.T) {
	w, br := newBreakable(t, square8)
	orig := br.Body()
	orig.SetVelocityVector(Vector{2, 0})

	bodies, err := br.ApplyBomb(squareBombAt(Vector{4, 0}))
	require.NoError(t, err)
	require.Len(t, bodies, 1)

	assert.Same(t, bodies[0], br.Body())
	assert.NotSame(t, orig, br.Body())
	require.Len(t, w.Bodies(), 1)
	assert.Same(t, bodies[0], w.Bodies()[0])

	got := bodies[0].LocalPolygon().Ring()
	assert.Len(t, got, 8)
	assert.InDelta(t, 62.0, got.Area(), 1e-9)

	// Fragments inherit the original motion.
	assert.InDelta(t, 2.0, bodies[0].Velocity().X, 1e-9)
	assert.InDelta(t, 0.0, bodies[0].Velocity().Y, 1e-9)
}

func TestApplyBombMigratesUserData(t *testing.T) {
	w, br := newBreakable(t, square8)
	orig := br.Body()
	w.SetUserData(orig.ID(), "sprite-7")

	bodies, err := br.ApplyBomb(squareBombAt(Vector{4, 0}))
	require.NoError(t, err)
	require.Len(t, bodies, 1)

	data, ok := w.UserData(bodies[0].ID())
	require.True(t, ok)
	assert.Equal(t, "sprite-7", data)
	_, ok = w.UserData(orig.ID())
	assert.False(t, ok)
}

func TestApplyBombSplitsInTwo(t *testing.T) {
	w, br := newBreakable(t, Ring{{-6, -1}, {6, -1}, {6, 1}, {-6, 1}})
	br.Body().SetAngularVelocity(0.5)

	bomb := Bomb{Shape: MustSimplePolygon(Ring{{-1, -2}, {1, -2}, {1, 2}, {-1, 2}})}
	bodies, err := br.ApplyBomb(bomb)
	require.NoError(t, err)
	require.Len(t, bodies, 2)
	assert.Len(t, w.Bodies(), 2)

	for _, body := range bodies {
		assert.InDelta(t, 10.0, body.LocalPolygon().Area(), 1e-9)
		assert.InDelta(t, 0.5, body.AngularVelocity(), 1e-9)
	}
	// Spin makes the two halves fly apart.
	assert.NotEqual(t, bodies[0].Velocity(), bodies[1].Velocity())
}

func TestApplyBombMiss(t *testing.T) {
	w, br := newBreakable(t, square8)
	orig := br.Body()
	w.SetUserData(orig.ID(), "sprite-3")

	bodies, err := br.ApplyBomb(squareBombAt(Vector{20, 0}))
	require.NoError(t, err)
	require.Len(t, bodies, 1)
	assert.Same(t, orig, bodies[0])
	assert.Same(t, orig, br.Body())
	assert.Len(t, w.Bodies(), 1)

	data, ok := w.UserData(orig.ID())
	require.True(t, ok)
	assert.Equal(t, "sprite-3", data)
}

func TestApplyBombSwallows(t *testing.T) {
	w := NewWorld(Vector{})
	body := makeBody(t, w, Vector{}, 0, unitSquare)
	br := NewBreakable(w, body, DefaultConfig(), nil)

	bomb := Bomb{Shape: MustSimplePolygon(square8)}
	bodies, err := br.ApplyBomb(bomb)
	require.NoError(t, err)
	assert.Empty(t, bodies)
	assert.Nil(t, br.Body())
	assert.Empty(t, w.Bodies())
}

func TestApplyBombAfterSwallow(t *testing.T) {
	w := NewWorld(Vector{})
	body := makeBody(t, w, Vector{}, 0, unitSquare)
	br := NewBreakable(w, body, DefaultConfig(), nil)

	_, err := br.ApplyBomb(Bomb{Shape: MustSimplePolygon(square8)})
	require.NoError(t, err)
	require.Nil(t, br.Body())

	bodies, err := br.ApplyBomb(squareBombAt(Vector{0, 0}))
	assert.ErrorIs(t, err, ErrBodyDestroyed)
	assert.Nil(t, bodies)
}

func TestApplyBombFailsClosed(t *testing.T) {
	w, br := newBreakable(t, square8)
	orig := br.Body()

	// A blast touching the body at a single point cannot be subtracted.
	bomb := Bomb{
		Shape:  MustSimplePolygon(Ring{{0, 0}, {2, -2}, {2, 2}}),
		Anchor: Vector{4, 0},
	}
	bodies, err := br.ApplyBomb(bomb)
	assert.ErrorIs(t, err, ErrSubtractionFailed)
	require.Len(t, bodies, 1)
	assert.Same(t, orig, bodies[0])
	assert.Same(t, orig, br.Body())
	assert.Len(t, w.Bodies(), 1)
}

func TestApplyBombAtTransformedBody(t *testing.T) {
	w := NewWorld(Vector{})
	body := makeBody(t, w, Vector{100, 50}, 0, square8)
	br := NewBreakable(w, body, DefaultConfig(), nil)

	bodies, err := br.ApplyBomb(squareBombAt(Vector{104, 50}))
	require.NoError(t, err)
	require.Len(t, bodies, 1)
	assert.Len(t, w.Bodies(), 1)
	assert.InDelta(t, 62.0, bodies[0].LocalPolygon().Area(), 1e-9)
	assert.InDelta(t, 100.0, bodies[0].Position().X, 1e-9)
	assert.InDelta(t, 50.0, bodies[0].Position().Y, 1e-9)
}

func TestIsTouching(t *testing.T) {
	_, br := newBreakable(t, square8)
	assert.True(t, br.IsTouching(Vector{0, 0}))
	assert.True(t, br.IsTouching(Vector{4.05, 0}))
	assert.False(t, br.IsTouching(Vector{10, 10}))
}
