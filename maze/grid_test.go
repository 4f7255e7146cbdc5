package maze

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGrid_AllWalls(t *testing.T) {
	g, err := NewGrid(6, 9)
	require.NoError(t, err)

	m, n := g.Dimensions()
	assert.Equal(t, 6, m)
	assert.Equal(t, 9, n)
	assert.Zero(t, g.OpenCount())

	g.Each(func(c Coord, cell Cell) {
		assert.Equal(t, Wall, cell, "cell %v", c)
	})
}

func TestNewGrid_InvalidDimensions(t *testing.T) {
	for _, dims := range [][2]int{{4, 5}, {5, 4}, {0, 0}, {-1, 10}, {3, 3}} {
		g, err := NewGrid(dims[0], dims[1])
		assert.Nil(t, g)
		assert.True(t, errors.Is(err, ErrInvalidDimensions), "dims %v: %v", dims, err)
	}
}

func TestGrid_GetOutOfBounds(t *testing.T) {
	g, err := NewGrid(5, 7)
	require.NoError(t, err)

	for _, c := range []Coord{{-1, 0}, {0, -1}, {5, 0}, {0, 7}, {5, 7}} {
		_, err := g.Get(c.Row, c.Col)
		assert.True(t, errors.Is(err, ErrOutOfBounds), "coord %v", c)
		assert.True(t, errors.Is(g.SetOpen(c.Row, c.Col), ErrOutOfBounds), "coord %v", c)
	}

	cell, err := g.Get(4, 6)
	require.NoError(t, err)
	assert.Equal(t, Wall, cell)
}

func TestGrid_SetOpenIdempotent(t *testing.T) {
	g, err := NewGrid(5, 5)
	require.NoError(t, err)

	require.NoError(t, g.SetOpen(2, 3))
	once := g.Clone()
	require.NoError(t, g.SetOpen(2, 3))

	assert.Equal(t, once.String(), g.String())
	assert.Equal(t, 1, g.OpenCount())

	cell, err := g.Get(2, 3)
	require.NoError(t, err)
	assert.Equal(t, Open, cell)
}

func TestGrid_Interior(t *testing.T) {
	g, err := NewGrid(5, 6)
	require.NoError(t, err)

	assert.True(t, g.Interior(Coord{1, 1}))
	assert.True(t, g.Interior(Coord{3, 4}))
	assert.False(t, g.Interior(Coord{0, 2}))
	assert.False(t, g.Interior(Coord{4, 2}))
	assert.False(t, g.Interior(Coord{2, 0}))
	assert.False(t, g.Interior(Coord{2, 5}))
}

func TestGrid_CloneIsIndependent(t *testing.T) {
	g, err := NewGrid(5, 5)
	require.NoError(t, err)

	c := g.Clone()
	require.NoError(t, c.SetOpen(1, 1))

	assert.Zero(t, g.OpenCount())
	assert.Equal(t, 1, c.OpenCount())
}

func TestGrid_String(t *testing.T) {
	g, err := NewGrid(5, 5)
	require.NoError(t, err)
	require.NoError(t, g.SetOpen(2, 2))

	want := "#####\n" +
		"#####\n" +
		"## ##\n" +
		"#####\n" +
		"#####\n"
	assert.Equal(t, want, g.String())
}
