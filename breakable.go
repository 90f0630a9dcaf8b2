package thermite

import (
	"fmt"

	"go.uber.org/zap"
)

type hitState int

const (
	stateIdle hitState = iota
	stateHit
	stateSubtract
	stateDecompose
	stateInstall
)

func (s hitState) String() string {
	switch s {
	case stateIdle:
		return "idle"
	case stateHit:
		return "hit"
	case stateSubtract:
		return "subtract"
	case stateDecompose:
		return "decompose"
	case stateInstall:
		return "install"
	}
	return "unknown"
}

// Breakable orchestrates destructive hits against one body: subtract the
// bomb from the body's polygon, decompose each fragment into convex
// pieces, install the fragments as new bodies and retire the old one.
// Every failure is fail-closed: the original body survives untouched.
type Breakable struct {
	world *World
	body  *Body

	cfg Config
	sep *Separator
	sub *Subtractor
	log *zap.Logger

	state hitState
}

// NewBreakable wraps body, which must live in world. A nil logger
// disables logging.
func NewBreakable(world *World, body *Body, cfg Config, logger *zap.Logger) *Breakable {
	if logger == nil {
		logger = zap.NewNop()
	}
	sep := NewSeparator(cfg.Epsilon)
	if cfg.SplitBound > 0 {
		sep.splitBound = cfg.SplitBound
	}
	return &Breakable{
		world: world,
		body:  body,
		cfg:   cfg,
		sep:   sep,
		sub:   NewSubtractor(cfg.Epsilon),
		log:   logger,
	}
}

// Body returns the breakable's current body: the original one until a hit
// splits it, the first-installed fragment afterwards.
func (br *Breakable) Body() *Body {
	return br.body
}

// IsTouching reports whether the world point falls on the body's bounding
// box, widened by the configured tolerance.
func (br *Breakable) IsTouching(worldPoint Vector) bool {
	box := NewBBForExtents(worldPoint, br.cfg.Epsilon, br.cfg.Epsilon)
	return br.body.BB().Intersects(box)
}

// ApplyBomb detonates bomb at its anchor against the body. On success it
// returns the installed fragment bodies (empty when the bomb swallowed the
// body whole). On failure the world is unchanged and the original body
// comes back as the single element.
func (br *Breakable) ApplyBomb(bomb Bomb) ([]*Body, error) {
	if br.body == nil {
		return nil, ErrBodyDestroyed
	}
	orig := br.body
	defer func() { br.state = stateIdle }()

	br.state = stateHit
	local := orig.LocalPolygon()
	anchor := orig.WorldToLocal(bomb.Anchor)
	blast := bomb.Shape.Translate(anchor)

	br.log.Debug("bomb hit",
		zap.Stringer("body", orig.ID()),
		zap.Stringer("anchor", bomb.Anchor),
		zap.Int("blast_verts", blast.Count()))

	br.state = stateSubtract
	fragments, err := br.sub.Subtract(local, blast)
	if err != nil {
		br.log.Warn("subtraction failed", zap.Stringer("body", orig.ID()), zap.Error(err))
		return []*Body{orig}, err
	}

	if len(fragments) == 0 {
		br.log.Info("body swallowed by bomb", zap.Stringer("body", orig.ID()))
		br.world.DestroyBody(orig)
		br.body = nil
		return nil, nil
	}

	// A miss leaves the body alone rather than reinstalling an identical
	// copy.
	if len(fragments) == 1 && fragments[0].Ring().EquivalentTo(local.Ring(), br.cfg.Epsilon) {
		br.log.Debug("bomb missed", zap.Stringer("body", orig.ID()))
		return []*Body{orig}, nil
	}

	br.state = stateDecompose
	pieces := make([][]ConvexPiece, len(fragments))
	for i, frag := range fragments {
		pieces[i], err = br.sep.Decompose(frag)
		if err != nil {
			br.log.Warn("decomposition failed",
				zap.Stringer("body", orig.ID()),
				zap.Int("fragment", i),
				zap.Error(err))
			return []*Body{orig}, err
		}
	}

	br.state = stateInstall
	installed, err := br.install(orig, fragments, pieces)
	if err != nil {
		return []*Body{orig}, err
	}

	// The side-table entry follows the surviving body.
	data, hasData := br.world.UserData(orig.ID())
	br.world.DestroyBody(orig)
	br.body = installed[0]
	if hasData {
		br.world.SetUserData(br.body.ID(), data)
	}
	br.log.Info("body broken",
		zap.Stringer("body", orig.ID()),
		zap.Int("fragments", len(installed)))
	return installed, nil
}

// install creates one body per fragment at the original pose, inheriting
// the original's motion at each fragment's centroid. Any creation failure
// rolls the new bodies back.
func (br *Breakable) install(orig *Body, fragments []SimplePolygon, pieces [][]ConvexPiece) ([]*Body, error) {
	installed := make([]*Body, 0, len(fragments))
	for i, frag := range fragments {
		body, err := br.world.CreateBody(orig.Position(), orig.Angle(), frag, pieces[i])
		if err != nil {
			for _, b := range installed {
				br.world.DestroyBody(b)
			}
			br.log.Warn("install failed, rolled back",
				zap.Stringer("body", orig.ID()),
				zap.Int("fragment", i),
				zap.Error(err))
			return nil, fmt.Errorf("install fragment %d: %w", i, err)
		}
		centroid := orig.LocalToWorld(frag.Centroid())
		body.SetVelocityVector(orig.VelocityAtWorldPoint(centroid))
		body.SetAngularVelocity(orig.AngularVelocity())
		installed = append(installed, body)
	}
	return installed, nil
}
