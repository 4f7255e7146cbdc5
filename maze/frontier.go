package maze

import "github.com/zyedidia/generic/stack"

// Frontier holds the cells queued for carving in last-in-first-out order,
// so the most recently admitted cell is extended first.
type Frontier struct {
	s *stack.Stack[Coord]
}

// NewFrontier returns a frontier holding seeds, the last one on top
func NewFrontier(seeds ...Coord) *Frontier {
	f := &Frontier{s: stack.New[Coord]()}
	for _, c := range seeds {
		f.s.Push(c)
	}
	return f
}

func (f *Frontier) Push(c Coord) {
	f.s.Push(c)
}

// Pop removes and returns the top cell. ok is false on an empty frontier.
func (f *Frontier) Pop() (c Coord, ok bool) {
	if f.s.Size() == 0 {
		return Coord{}, false
	}
	return f.s.Pop(), true
}

// Peek returns the top cell without removing it
func (f *Frontier) Peek() (c Coord, ok bool) {
	if f.s.Size() == 0 {
		return Coord{}, false
	}
	return f.s.Peek(), true
}

func (f *Frontier) Len() int {
	return f.s.Size()
}
