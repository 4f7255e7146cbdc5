package maze

import "math/rand"

// Braid adds loops by opening up to trials walls, each between a dead end
// and an open cell two steps away. A dead end is an open interior cell with
// exactly one open orthogonal neighbour. Walls whose removal would leave a
// 2x2 open block or a free-standing wall cell are kept. Braid returns the
// number of walls opened.
func Braid(g *Grid, trials int, rng *rand.Rand) int {
	if trials <= 0 {
		return 0
	}

	var ends []Coord
	g.Each(func(c Coord, cell Cell) {
		if cell == Open && g.Interior(c) && openSides(g, c) == 1 {
			ends = append(ends, c)
		}
	})
	rng.Shuffle(len(ends), func(i, j int) { ends[i], ends[j] = ends[j], ends[i] })

	opened := 0
	for _, c := range ends {
		if opened == trials {
			break
		}
		// An earlier loop may already run through c
		if openSides(g, c) != 1 {
			continue
		}

		candidates := make([]Coord, 0, 3)
		for _, d := range Directions {
			w := c.Add(d.Delta())
			beyond := w.Add(d.Delta())
			if !g.Interior(w) || !g.InBounds(beyond) {
				continue
			}
			if g.at(w) == Wall && g.at(beyond) == Open && safeToOpen(g, w) {
				candidates = append(candidates, w)
			}
		}
		if len(candidates) == 0 {
			continue
		}

		w := candidates[rng.Intn(len(candidates))]
		g.cells[g.index(w)] = Open
		opened++
	}
	return opened
}

func openSides(g *Grid, c Coord) int {
	n := 0
	for _, d := range Directions {
		if nb := c.Add(d.Delta()); g.InBounds(nb) && g.at(nb) == Open {
			n++
		}
	}
	return n
}

// safeToOpen reports whether opening w keeps the grid free of 2x2 open
// blocks and of wall cells with no orthogonal wall neighbour
func safeToOpen(g *Grid, w Coord) bool {
	open := func(r, c int) bool {
		at := Coord{Row: r, Col: c}
		return g.InBounds(at) && g.at(at) == Open
	}

	r, c := w.Row, w.Col
	if open(r-1, c-1) && open(r-1, c) && open(r, c-1) ||
		open(r-1, c) && open(r-1, c+1) && open(r, c+1) ||
		open(r, c-1) && open(r+1, c-1) && open(r+1, c) ||
		open(r, c+1) && open(r+1, c) && open(r+1, c+1) {
		return false
	}

	for _, d := range Directions {
		nb := w.Add(d.Delta())
		if !g.InBounds(nb) || g.at(nb) == Open {
			continue
		}
		walls := 0
		for _, d2 := range Directions {
			nn := nb.Add(d2.Delta())
			if nn != w && g.InBounds(nn) && g.at(nn) == Wall {
				walls++
			}
		}
		if walls == 0 {
			return false
		}
	}
	return true
}
