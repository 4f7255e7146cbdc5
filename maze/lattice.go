package maze

import (
	"context"
	"math/rand"
)

// room addresses a lattice room; its cell is (2r+1, 2c+1)
type room struct {
	r, c int
}

func (rm room) cell() Coord {
	return Coord{Row: 2*rm.r + 1, Col: 2*rm.c + 1}
}

// lattice views a grid as rooms joined through single wall cells. An even
// dimension leaves its last interior line as wall.
type lattice struct {
	ctx        context.Context
	g          *Grid
	obs        Observer
	st         Stats
	rows, cols int
}

func newLattice(ctx context.Context, g *Grid, obs Observer) *lattice {
	m, n := g.Dimensions()
	return &lattice{
		ctx:  ctx,
		g:    g,
		obs:  obs,
		rows: (m - 1) / 2,
		cols: (n - 1) / 2,
	}
}

func (l *lattice) size() int { return l.rows * l.cols }

func (l *lattice) id(rm room) int { return rm.r*l.cols + rm.c }

func (l *lattice) room(id int) room { return room{r: id / l.cols, c: id % l.cols} }

// neighbours returns the orthogonal rooms of rm in Directions order
func (l *lattice) neighbours(rm room) []room {
	out := make([]room, 0, 4)
	for _, d := range Directions {
		delta := d.Delta()
		nb := room{r: rm.r + delta.Row, c: rm.c + delta.Col}
		if nb.r >= 0 && nb.r < l.rows && nb.c >= 0 && nb.c < l.cols {
			out = append(out, nb)
		}
	}
	return out
}

// step reports the room about to join the maze. pending is the algorithm's
// outstanding work (frontier, unprocessed edges, unvisited rooms).
func (l *lattice) step(next room, pending int) error {
	if err := l.ctx.Err(); err != nil {
		return cancelled(err)
	}
	l.st.Steps++
	if l.obs != nil {
		l.obs.Observe(l.g, Step{Index: l.st.Steps, Next: next.cell(), Frontier: pending})
	}
	return nil
}

// join opens both rooms and the wall cell between them
func (l *lattice) join(a, b room) {
	ca, cb := a.cell(), b.cell()
	l.open(ca)
	l.open(Coord{Row: (ca.Row + cb.Row) / 2, Col: (ca.Col + cb.Col) / 2})
	l.open(cb)
	l.st.Admitted++
}

func (l *lattice) open(c Coord) {
	if l.g.at(c) == Wall {
		l.g.cells[l.g.index(c)] = Open
		l.st.Opened++
	}
}

// latticeFunc builds a perfect maze over l
type latticeFunc func(l *lattice, rng *rand.Rand) error

var latticeBuilders = map[Algorithm]latticeFunc{
	AlgorithmBacktracker: backtracker,
	AlgorithmGrowingTree: growingTree,
	AlgorithmPrim:        prim,
	AlgorithmKruskal:     kruskal,
	AlgorithmWilson:      wilson,
	AlgorithmEller:       eller,
}
