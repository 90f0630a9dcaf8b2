// Command thermite-sandbox drops bombs on an L-shaped breakable and logs
// the fragments each hit produces, then steps the world so the debris
// falls under gravity.
package main

import (
	"flag"
	"math/rand"
	"os"

	"go.uber.org/zap"

	"github.com/delorenj/thermite"
)

func main() {
	var (
		configPath = flag.String("config", "", "path to YAML config")
		seed       = flag.Int64("seed", 1, "blast shape seed")
		bombs      = flag.Int("bombs", 3, "number of bombs to drop")
		frames     = flag.Int("frames", 60, "frames to step after the last hit")
	)
	flag.Parse()

	logger, err := zap.NewDevelopment()
	if err != nil {
		os.Exit(1)
	}
	defer logger.Sync()

	cfg := thermite.DefaultConfig()
	if *configPath != "" {
		cfg, err = thermite.LoadConfig(*configPath)
		if err != nil {
			logger.Fatal("load config", zap.Error(err))
		}
	}

	world := thermite.NewWorld(cfg.Gravity)
	world.SetDamping(cfg.Damping)
	world.SetDensity(cfg.Density)

	outline := thermite.MustSimplePolygon(thermite.Ring{
		{X: -4, Y: -4}, {X: 4, Y: -4}, {X: 4, Y: 0}, {X: 0, Y: 0}, {X: 0, Y: 4}, {X: -4, Y: 4},
	})
	pieces, err := thermite.Decompose(outline)
	if err != nil {
		logger.Fatal("decompose breakable", zap.Error(err))
	}

	body, err := world.CreateBody(thermite.Vector{}, 0, outline, pieces)
	if err != nil {
		logger.Fatal("create breakable", zap.Error(err))
	}
	breakable := thermite.NewBreakable(world, body, cfg, logger)
	logger.Info("breakable ready",
		zap.Stringer("body", body.ID()),
		zap.Int("pieces", len(pieces)),
		zap.Float64("mass", body.Mass()))

	rng := rand.New(rand.NewSource(*seed))
	for i := 0; i < *bombs; i++ {
		if breakable.Body() == nil {
			logger.Info("nothing left to bomb")
			break
		}

		shape, err := cfg.Blast.Generate(rng)
		if err != nil {
			logger.Fatal("generate blast", zap.Error(err))
		}

		// Tap somewhere on the body, in pixel coordinates like the
		// input layer would.
		bb := breakable.Body().BB()
		tapPx := thermite.Vector{
			X: (bb.L + rng.Float64()*(bb.R-bb.L)) * cfg.PTMRatio,
			Y: (bb.B + rng.Float64()*(bb.T-bb.B)) * cfg.PTMRatio,
		}
		worldPoint := tapPx.Mult(1.0 / cfg.PTMRatio)

		if !breakable.IsTouching(worldPoint) {
			logger.Info("tap missed", zap.Stringer("point", worldPoint))
			continue
		}

		bodies, err := breakable.ApplyBomb(thermite.Bomb{Shape: shape, Anchor: worldPoint})
		if err != nil {
			logger.Warn("bomb fizzled", zap.Error(err))
			continue
		}
		logger.Info("bomb applied",
			zap.Int("bomb", i),
			zap.Stringer("point", worldPoint),
			zap.Int("bodies", len(bodies)))
		for _, b := range bodies {
			logger.Info("fragment",
				zap.Stringer("id", b.ID()),
				zap.Int("verts", b.LocalPolygon().Count()),
				zap.Float64("area", b.LocalPolygon().Area()))
		}
	}

	for i := 0; i < *frames; i++ {
		world.Step(1.0 / 60.0)
	}
	for _, b := range world.Bodies() {
		logger.Info("settled",
			zap.Stringer("id", b.ID()),
			zap.Stringer("position", b.Position()))
	}
}
