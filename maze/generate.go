package maze

import (
	"context"
	"math/rand"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// Config describes a single generation run
type Config struct {
	Rows, Cols int

	Algorithm Algorithm // Optional ("" = AlgorithmCarve)
	Braid     int       // Optional walls to open for loops (0 = perfect)
	Seed      int64     // Optional (0 = Random)
	Observer  Observer  // Optional per-step hook
	Logger    logrus.FieldLogger
}

// Generate allocates a grid and builds a maze in it. The grid is returned
// alongside ErrCancelled so callers can still show partial work. Braiding
// runs only after a complete build.
func Generate(ctx context.Context, cfg Config) (*Grid, Stats, error) {
	alg := cfg.Algorithm
	if alg == "" {
		alg = AlgorithmCarve
	}
	build, onLattice := latticeBuilders[alg]
	if !onLattice && alg != AlgorithmCarve {
		return nil, Stats{}, errors.Wrapf(ErrUnknownAlgorithm, "%q", alg)
	}

	g, err := NewGrid(cfg.Rows, cfg.Cols)
	if err != nil {
		return nil, Stats{}, err
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	log := cfg.Logger
	if log == nil {
		log = discardLogger()
	}
	log = log.WithFields(logrus.Fields{"seed": seed, "algorithm": alg})

	var st Stats
	if onLattice {
		l := newLattice(ctx, g, cfg.Observer)
		err = build(l, rng)
		st = l.st
		log.WithFields(logrus.Fields{
			"steps":    st.Steps,
			"opened":   st.Opened,
			"rejected": st.Rejected,
		}).Debug("lattice built")
	} else {
		opts := []Option{WithRand(rng), WithLogger(log)}
		if cfg.Observer != nil {
			opts = append(opts, WithObserver(cfg.Observer))
		}
		st, err = NewCarver(opts...).Carve(ctx, g)
	}
	if err != nil {
		return g, st, err
	}

	if cfg.Braid > 0 {
		st.Braided = Braid(g, cfg.Braid, rng)
		st.Opened += st.Braided
		log.WithField("braided", st.Braided).Debug("braid finished")
	}
	return g, st, nil
}
