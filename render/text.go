package render

import (
	"bufio"
	"io"
	"strings"

	"github.com/zyedidia/generic/mapset"

	"github.com/lixenwraith/maze-carver/maze"
)

// Text writes grids row-major, one line per row
type Text struct {
	Glyphs Glyphs
}

// Write renders g to w. Cells in path are drawn with the Path glyph; a zero
// set highlights nothing.
func (t Text) Write(w io.Writer, g *maze.Grid, path mapset.Set[maze.Coord]) error {
	bw := bufio.NewWriter(w)
	_, cols := g.Dimensions()

	g.Each(func(c maze.Coord, cell maze.Cell) {
		bw.WriteRune(t.Glyphs.For(Classify(cell, path.Has(c))))
		if c.Col == cols-1 {
			bw.WriteByte('\n')
		}
	})
	return bw.Flush()
}

// String renders g into a string
func (t Text) String(g *maze.Grid, path mapset.Set[maze.Coord]) string {
	var sb strings.Builder
	_ = t.Write(&sb, g, path)
	return sb.String()
}
