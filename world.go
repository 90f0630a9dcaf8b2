package thermite

import (
	"fmt"

	"github.com/google/uuid"
)

// World owns bodies and steps them. It is the minimal dynamics collaborator
// the playground needs: creation, destruction, integration and point
// queries. Contact resolution is out of scope.
type World struct {
	gravity Vector
	damping float64
	density float64

	bodies   []*Body
	userData map[uuid.UUID]interface{}
}

func NewWorld(gravity Vector) *World {
	return &World{
		gravity:  gravity,
		damping:  1.0,
		density:  1.0,
		userData: make(map[uuid.UUID]interface{}),
	}
}

func (w *World) Gravity() Vector {
	return w.gravity
}

func (w *World) SetDamping(damping float64) {
	w.damping = damping
}

func (w *World) SetDensity(density float64) {
	w.density = density
}

func (w *World) Bodies() []*Body {
	return w.bodies
}

// CreateBody adds a body at the given pose with the given outline and
// convex fixtures.
func (w *World) CreateBody(position Vector, angle float64, outline SimplePolygon, pieces []ConvexPiece) (*Body, error) {
	if len(pieces) == 0 {
		return nil, fmt.Errorf("body with no fixtures: %w", ErrDegeneratePolygon)
	}
	body := newBody(position, angle, outline, pieces, w.density)
	body.world = w
	w.bodies = append(w.bodies, body)
	return body, nil
}

// DestroyBody removes the body and its user-data entry.
func (w *World) DestroyBody(body *Body) {
	for i, b := range w.bodies {
		if b == body {
			w.bodies = append(w.bodies[:i], w.bodies[i+1:]...)
			break
		}
	}
	delete(w.userData, body.id)
	body.world = nil
}

// Step integrates every body over dt.
func (w *World) Step(dt float64) {
	for _, body := range w.bodies {
		body.UpdateVelocity(w.gravity, w.damping, dt)
	}
	for _, body := range w.bodies {
		body.UpdatePosition(dt)
	}
}

// QueryAABB returns the first body, in creation order, whose bounding box
// intersects the eps-sized box around p. Used by the input layer to pick
// the tapped body.
func (w *World) QueryAABB(p Vector, eps float64) (*Body, bool) {
	box := NewBBForExtents(p, eps, eps)
	for _, body := range w.bodies {
		if body.bb.Intersects(box) {
			return body, true
		}
	}
	return nil, false
}

// SetUserData attaches application data (a sprite, say) to a body by ID.
// The mapping lives in the world, not the body.
func (w *World) SetUserData(id uuid.UUID, data interface{}) {
	w.userData[id] = data
}

func (w *World) UserData(id uuid.UUID) (interface{}, bool) {
	data, ok := w.userData[id]
	return data, ok
}
