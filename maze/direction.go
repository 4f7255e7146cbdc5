package maze

import "math/rand"

// Direction is one of the four orthogonal moves
type Direction uint8

const (
	Up Direction = iota
	Left
	Down
	Right
)

// Directions lists the von Neumann neighbourhood in canonical order
var Directions = [4]Direction{Up, Left, Down, Right}

var deltas = [4]Coord{
	Up:    {Row: -1, Col: 0},
	Left:  {Row: 0, Col: -1},
	Down:  {Row: 1, Col: 0},
	Right: {Row: 0, Col: 1},
}

// Delta returns the row/column offset of the move
func (d Direction) Delta() Coord {
	return deltas[d&3]
}

func (d Direction) String() string {
	switch d {
	case Up:
		return "up"
	case Left:
		return "left"
	case Down:
		return "down"
	case Right:
		return "right"
	}
	return "unknown"
}

// Permuter reorders dirs in place. The carver calls it once per popped cell.
type Permuter func(dirs []Direction)

// ShufflePermuter returns a Permuter drawing a fresh uniform shuffle from rng
func ShufflePermuter(rng *rand.Rand) Permuter {
	return func(dirs []Direction) {
		rng.Shuffle(len(dirs), func(i, j int) {
			dirs[i], dirs[j] = dirs[j], dirs[i]
		})
	}
}

// FixedPermuter returns a Permuter that writes the same order on every call.
// Directions missing from order keep their relative position after it.
func FixedPermuter(order ...Direction) Permuter {
	fixed := append([]Direction(nil), order...)
	return func(dirs []Direction) {
		seen := [4]bool{}
		out := make([]Direction, 0, len(dirs))
		for _, d := range fixed {
			if !seen[d&3] {
				seen[d&3] = true
				out = append(out, d)
			}
		}
		for _, d := range dirs {
			if !seen[d&3] {
				seen[d&3] = true
				out = append(out, d)
			}
		}
		copy(dirs, out)
	}
}
