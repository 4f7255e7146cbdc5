package maze

import (
	"strings"

	"github.com/pkg/errors"
)

// MinSize is the smallest accepted row or column count: a one-cell border
// around a 3x3 interior keeps the two seed corners distinct.
const MinSize = 5

var (
	// ErrInvalidDimensions is returned when a grid smaller than MinSize is requested
	ErrInvalidDimensions = errors.New("maze: invalid dimensions")
	// ErrOutOfBounds is returned when a coordinate lies outside the grid
	ErrOutOfBounds = errors.New("maze: coordinate out of bounds")
)

// Cell is the state of a single grid cell
type Cell uint8

const (
	Wall Cell = iota
	Open
)

func (c Cell) String() string {
	switch c {
	case Wall:
		return "#"
	case Open:
		return " "
	}
	return "?"
}

// Coord addresses a cell by row and column
type Coord struct {
	Row, Col int
}

// Add returns the coordinate shifted by d
func (c Coord) Add(d Coord) Coord {
	return Coord{Row: c.Row + d.Row, Col: c.Col + d.Col}
}

// Grid is a rectangular M x N surface of cells, stored row-major.
// A Grid has a single owner; it does no locking.
type Grid struct {
	rows, cols int
	cells      []Cell
}

// NewGrid returns an m x n grid with every cell set to Wall
func NewGrid(m, n int) (*Grid, error) {
	if m < MinSize || n < MinSize {
		return nil, errors.Wrapf(ErrInvalidDimensions, "%dx%d, minimum is %dx%d", m, n, MinSize, MinSize)
	}
	return &Grid{
		rows:  m,
		cols:  n,
		cells: make([]Cell, m*n),
	}, nil
}

// Dimensions returns the row and column counts
func (g *Grid) Dimensions() (m, n int) {
	return g.rows, g.cols
}

// InBounds reports whether c addresses a cell of the grid
func (g *Grid) InBounds(c Coord) bool {
	return c.Row >= 0 && c.Row < g.rows && c.Col >= 0 && c.Col < g.cols
}

// Interior reports whether c lies strictly inside the border
func (g *Grid) Interior(c Coord) bool {
	return c.Row > 0 && c.Row < g.rows-1 && c.Col > 0 && c.Col < g.cols-1
}

// Get returns the state of the cell at (row, col)
func (g *Grid) Get(row, col int) (Cell, error) {
	c := Coord{Row: row, Col: col}
	if !g.InBounds(c) {
		return Wall, g.outOfBounds(c)
	}
	return g.cells[g.index(c)], nil
}

// SetOpen carves the cell at (row, col). Opening an open cell is a no-op.
func (g *Grid) SetOpen(row, col int) error {
	c := Coord{Row: row, Col: col}
	if !g.InBounds(c) {
		return g.outOfBounds(c)
	}
	g.cells[g.index(c)] = Open
	return nil
}

// Each calls fn for every cell in row-major order
func (g *Grid) Each(fn func(c Coord, cell Cell)) {
	for r := 0; r < g.rows; r++ {
		for col := 0; col < g.cols; col++ {
			fn(Coord{Row: r, Col: col}, g.cells[r*g.cols+col])
		}
	}
}

// OpenCount returns the number of carved cells
func (g *Grid) OpenCount() int {
	n := 0
	for _, c := range g.cells {
		if c == Open {
			n++
		}
	}
	return n
}

// Clone returns an independent copy of the grid
func (g *Grid) Clone() *Grid {
	cells := make([]Cell, len(g.cells))
	copy(cells, g.cells)
	return &Grid{rows: g.rows, cols: g.cols, cells: cells}
}

func (g *Grid) String() string {
	var sb strings.Builder
	sb.Grow((g.cols + 1) * g.rows)
	for r := 0; r < g.rows; r++ {
		for col := 0; col < g.cols; col++ {
			sb.WriteString(g.cells[r*g.cols+col].String())
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

// at reads a cell the caller has already bounds-checked
func (g *Grid) at(c Coord) Cell {
	return g.cells[g.index(c)]
}

func (g *Grid) index(c Coord) int {
	return c.Row*g.cols + c.Col
}

func (g *Grid) outOfBounds(c Coord) error {
	return errors.Wrapf(ErrOutOfBounds, "(%d,%d) outside %dx%d", c.Row, c.Col, g.rows, g.cols)
}
