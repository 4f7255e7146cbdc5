package maze

import "math/rand"

const (
	// growingTreeSplit is the chance a new room goes on the depth-first end
	growingTreeSplit = 0.5
	// ellerMerge is the chance of an optional horizontal or downward join
	ellerMerge = 0.5
)

// backtracker walks depth first from the top-left room
func backtracker(l *lattice, rng *rand.Rand) error {
	return growTree(l, rng, room{}, 1)
}

// growingTree mixes depth-first and breadth-first growth from a random room
func growingTree(l *lattice, rng *rand.Rand) error {
	return growTree(l, rng, l.room(rng.Intn(l.size())), growingTreeSplit)
}

// growTree always extends the newest room. Each new room is appended to the
// newest end with probability split, otherwise queued at the oldest end.
func growTree(l *lattice, rng *rand.Rand, start room, split float64) error {
	visited := make([]bool, l.size())
	visited[l.id(start)] = true
	l.open(start.cell())

	todo := []room{start}
	for len(todo) > 0 {
		cur := todo[len(todo)-1]

		candidates := make([]room, 0, 4)
		for _, nb := range l.neighbours(cur) {
			if !visited[l.id(nb)] {
				candidates = append(candidates, nb)
			}
		}
		if len(candidates) == 0 {
			todo = todo[:len(todo)-1]
			continue
		}

		next := candidates[rng.Intn(len(candidates))]
		if err := l.step(next, len(todo)); err != nil {
			return err
		}
		visited[l.id(next)] = true
		l.join(cur, next)

		if split >= 1 || rng.Float64() < split {
			todo = append(todo, next)
		} else {
			todo = append([]room{next}, todo...)
		}
	}
	return nil
}

// prim grows the maze from a random room by joining a random frontier room
// to a random neighbour already in the maze
func prim(l *lattice, rng *rand.Rand) error {
	inMaze := make([]bool, l.size())
	queued := make([]bool, l.size())
	var frontier []room

	add := func(rm room) {
		inMaze[l.id(rm)] = true
		for _, nb := range l.neighbours(rm) {
			if id := l.id(nb); !inMaze[id] && !queued[id] {
				queued[id] = true
				frontier = append(frontier, nb)
			}
		}
	}

	start := l.room(rng.Intn(l.size()))
	l.open(start.cell())
	add(start)

	for len(frontier) > 0 {
		i := rng.Intn(len(frontier))
		cur := frontier[i]
		frontier[i] = frontier[len(frontier)-1]
		frontier = frontier[:len(frontier)-1]

		var joined []room
		for _, nb := range l.neighbours(cur) {
			if inMaze[l.id(nb)] {
				joined = append(joined, nb)
			}
		}

		if err := l.step(cur, len(frontier)); err != nil {
			return err
		}
		l.join(joined[rng.Intn(len(joined))], cur)
		add(cur)
	}
	return nil
}

type edge struct {
	a, b room
}

// kruskal takes every room-to-room edge in random order and joins those whose
// rooms are not yet connected
func kruskal(l *lattice, rng *rand.Rand) error {
	edges := make([]edge, 0, 2*l.size())
	for id := 0; id < l.size(); id++ {
		rm := l.room(id)
		if rm.c+1 < l.cols {
			edges = append(edges, edge{a: rm, b: room{r: rm.r, c: rm.c + 1}})
		}
		if rm.r+1 < l.rows {
			edges = append(edges, edge{a: rm, b: room{r: rm.r + 1, c: rm.c}})
		}
	}
	rng.Shuffle(len(edges), func(i, j int) { edges[i], edges[j] = edges[j], edges[i] })

	sets := newDisjointSet(l.size())
	for i, e := range edges {
		if !sets.union(l.id(e.a), l.id(e.b)) {
			l.st.Rejected++
			continue
		}
		if err := l.step(e.b, len(edges)-i-1); err != nil {
			return err
		}
		l.join(e.a, e.b)
	}
	return nil
}

// wilson adds loop-erased random walks until every room is in the maze. The
// walk records only the last exit taken from each room, which erases loops.
func wilson(l *lattice, rng *rand.Rand) error {
	inMaze := make([]bool, l.size())
	exit := make([]int, l.size())

	first := rng.Intn(l.size())
	inMaze[first] = true
	l.open(l.room(first).cell())

	remaining := l.size() - 1
	for scan := 0; remaining > 0; scan++ {
		if inMaze[scan] {
			continue
		}

		for cur := scan; !inMaze[cur]; {
			nbs := l.neighbours(l.room(cur))
			next := l.id(nbs[rng.Intn(len(nbs))])
			exit[cur] = next
			cur = next
		}

		for cur := scan; !inMaze[cur]; cur = exit[cur] {
			if err := l.step(l.room(cur), remaining); err != nil {
				return err
			}
			inMaze[cur] = true
			remaining--
			l.join(l.room(cur), l.room(exit[cur]))
		}
	}
	return nil
}

// eller builds the maze one row at a time. Every set in a row drops at least
// one join into the next row; the last row joins every remaining set.
func eller(l *lattice, rng *rand.Rand) error {
	sets := newDisjointSet(l.size())

	for r := 0; r < l.rows; r++ {
		last := r == l.rows-1

		for c := 0; c+1 < l.cols; c++ {
			a, b := room{r: r, c: c}, room{r: r, c: c + 1}
			if sets.find(l.id(a)) == sets.find(l.id(b)) {
				continue
			}
			if !last && rng.Float64() >= ellerMerge {
				continue
			}
			sets.union(l.id(a), l.id(b))
			if err := l.step(b, l.cols-c-1); err != nil {
				return err
			}
			l.join(a, b)
		}
		if last {
			break
		}

		// Group the row by set, keeping first-seen order
		groups := make(map[int][]room)
		var order []int
		for c := 0; c < l.cols; c++ {
			rm := room{r: r, c: c}
			root := sets.find(l.id(rm))
			if _, ok := groups[root]; !ok {
				order = append(order, root)
			}
			groups[root] = append(groups[root], rm)
		}

		for _, root := range order {
			members := groups[root]
			rng.Shuffle(len(members), func(i, j int) { members[i], members[j] = members[j], members[i] })
			for i, rm := range members {
				if i > 0 && rng.Float64() >= ellerMerge {
					continue
				}
				below := room{r: r + 1, c: rm.c}
				sets.union(l.id(rm), l.id(below))
				if err := l.step(below, len(members)-i-1); err != nil {
					return err
				}
				l.join(rm, below)
			}
		}
	}
	return nil
}
