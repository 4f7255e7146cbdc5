package maze

// MaxCarvedNeighbours is the most carved Moore neighbours a candidate may have.
// Keeping it at 2 grows thin corridors instead of open rooms.
const MaxCarvedNeighbours = 2

// Admissible reports whether c may be queued for carving: it must be interior
// and have at most MaxCarvedNeighbours open cells among its 8 neighbours.
func Admissible(g *Grid, c Coord) bool {
	if !g.Interior(c) {
		return false
	}
	return carvedNeighbours(g, c) <= MaxCarvedNeighbours
}

// carvedNeighbours counts open cells in the Moore neighbourhood of c.
// Cells outside the grid are skipped.
func carvedNeighbours(g *Grid, c Coord) int {
	n := 0
	for dr := -1; dr <= 1; dr++ {
		for dc := -1; dc <= 1; dc++ {
			if dr == 0 && dc == 0 {
				continue
			}
			nb := Coord{Row: c.Row + dr, Col: c.Col + dc}
			if !g.InBounds(nb) {
				continue
			}
			if g.at(nb) == Open {
				n++
			}
		}
	}
	return n
}
