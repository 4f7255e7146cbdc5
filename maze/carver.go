package maze

import (
	"context"
	"fmt"
	"io"
	"math/rand"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/zyedidia/generic/mapset"
)

// ErrCancelled is returned when the carve context ends before the frontier is empty.
// The grid is left partially carved but valid.
var ErrCancelled = errors.New("maze: carving cancelled")

// Step describes the carver state at the top of one loop iteration
type Step struct {
	Index    int   // 1-based iteration number
	Next     Coord // cell about to be popped and carved
	Frontier int   // frontier size before the pop
}

// Observer receives the grid once per carving step. Observers must not mutate the grid.
type Observer interface {
	Observe(g *Grid, s Step)
}

// ObserverFunc adapts a function to Observer
type ObserverFunc func(g *Grid, s Step)

func (f ObserverFunc) Observe(g *Grid, s Step) { f(g, s) }

type observers []Observer

func (o observers) Observe(g *Grid, s Step) {
	for _, ob := range o {
		ob.Observe(g, s)
	}
}

// Observers fans one step out to every non-nil observer in order
func Observers(obs ...Observer) Observer {
	out := make(observers, 0, len(obs))
	for _, ob := range obs {
		if ob != nil {
			out = append(out, ob)
		}
	}
	return out
}

// Stats summarises a carve run
type Stats struct {
	Steps    int // cells popped from the frontier, or lattice rooms joined
	Opened   int // cells that went from Wall to Open, seeds included
	Admitted int // neighbours pushed onto the frontier, or lattice joins
	Rejected int // neighbours refused by the admission rule, or redundant lattice edges
	Braided  int // walls opened by Braid
}

// Carver runs the dual-frontier carving algorithm
type Carver struct {
	permute  Permuter
	observer Observer
	log      logrus.FieldLogger
}

// Option configures a Carver
type Option func(*Carver)

// WithRand sets the randomness source used to shuffle directions
func WithRand(rng *rand.Rand) Option {
	return func(c *Carver) { c.permute = ShufflePermuter(rng) }
}

// WithPermuter replaces direction shuffling entirely
func WithPermuter(p Permuter) Option {
	return func(c *Carver) { c.permute = p }
}

// WithObserver attaches a per-step observer
func WithObserver(o Observer) Option {
	return func(c *Carver) { c.observer = o }
}

// WithLogger sets the logger for run summaries
func WithLogger(l logrus.FieldLogger) Option {
	return func(c *Carver) { c.log = l }
}

// NewCarver returns a carver. Without WithRand or WithPermuter it shuffles
// with its own clock-seeded source.
func NewCarver(opts ...Option) *Carver {
	c := &Carver{}
	for _, opt := range opts {
		opt(c)
	}
	if c.permute == nil {
		c.permute = ShufflePermuter(rand.New(rand.NewSource(time.Now().UnixNano())))
	}
	if c.log == nil {
		c.log = discardLogger()
	}
	return c
}

// Seeds returns the two opposite interior corners carving starts from
func Seeds(g *Grid) (Coord, Coord) {
	m, n := g.Dimensions()
	return Coord{Row: 1, Col: 1}, Coord{Row: m - 2, Col: n - 2}
}

// Carve opens cells of g in place until the shared frontier is exhausted.
// On cancellation it returns ErrCancelled together with the stats so far.
func (c *Carver) Carve(ctx context.Context, g *Grid) (Stats, error) {
	var st Stats
	m, n := g.Dimensions()
	log := c.log.WithFields(logrus.Fields{"rows": m, "cols": n})

	a, b := Seeds(g)
	for _, s := range [2]Coord{a, b} {
		if c.open(g, s) {
			st.Opened++
		}
	}

	frontier := NewFrontier(a, b)
	visited := mapset.New[Coord]()
	visited.Put(a)
	visited.Put(b)

	log.Debug("carve started")
	dirs := Directions

	for frontier.Len() > 0 {
		if err := ctx.Err(); err != nil {
			log.WithField("steps", st.Steps).Debug("carve cancelled")
			return st, cancelled(err)
		}

		next, _ := frontier.Peek()
		st.Steps++
		if c.observer != nil {
			c.observer.Observe(g, Step{Index: st.Steps, Next: next, Frontier: frontier.Len()})
		}

		cur, _ := frontier.Pop()
		if c.open(g, cur) {
			st.Opened++
		}

		c.permute(dirs[:])
		for _, d := range dirs {
			nb := cur.Add(d.Delta())
			if visited.Has(nb) {
				continue
			}
			if !Admissible(g, nb) {
				st.Rejected++
				continue
			}
			visited.Put(nb)
			frontier.Push(nb)
			st.Admitted++
		}
	}

	log.WithFields(logrus.Fields{
		"steps":    st.Steps,
		"opened":   st.Opened,
		"admitted": st.Admitted,
		"rejected": st.Rejected,
	}).Debug("carve finished")
	return st, nil
}

// open carves c and reports whether it was a wall. Only frontier cells reach
// here, so a bounds failure is a defect and panics.
func (c *Carver) open(g *Grid, at Coord) bool {
	prev, err := g.Get(at.Row, at.Col)
	if err != nil {
		panic(err)
	}
	if err := g.SetOpen(at.Row, at.Col); err != nil {
		panic(err)
	}
	return prev == Wall
}

// cancelled keeps both ErrCancelled and the context cause in the chain
func cancelled(ctxErr error) error {
	return fmt.Errorf("%w: %w", ErrCancelled, ctxErr)
}

func discardLogger() logrus.FieldLogger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}
