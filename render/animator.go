package render

import (
	"context"
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
	"github.com/zyedidia/generic/mapset"

	"github.com/lixenwraith/maze-carver/maze"
)

// Surface is the part of tcell.Screen the animator draws on
type Surface interface {
	SetContent(x, y int, primary rune, combining []rune, style tcell.Style)
	Clear()
	Show()
}

// EventSource is the part of tcell.Screen the key watcher reads from
type EventSource interface {
	PollEvent() tcell.Event
}

// AnimatorOptions configures an Animator
type AnimatorOptions struct {
	Glyphs     Glyphs
	FrameDelay time.Duration // pause after each frame, 0 = none
	Trail      int           // recent carve targets drawn as Path
}

// Animator draws the grid on every carving step. It implements maze.Observer.
type Animator struct {
	surface Surface
	glyphs  Glyphs
	delay   time.Duration

	trail    []maze.Coord
	trailLen int

	styles [3]tcell.Style
	cursor tcell.Style
	status tcell.Style

	sleep func(time.Duration)
}

// NewAnimator returns an animator drawing on s
func NewAnimator(s Surface, opts AnimatorOptions) *Animator {
	if opts.Glyphs.Name == "" {
		opts.Glyphs = Block
	}
	if opts.Trail < 0 {
		opts.Trail = 0
	}

	base := tcell.StyleDefault.Background(tcell.ColorBlack)
	return &Animator{
		surface:  s,
		glyphs:   opts.Glyphs,
		delay:    opts.FrameDelay,
		trail:    make([]maze.Coord, 0, opts.Trail),
		trailLen: opts.Trail,
		styles: [3]tcell.Style{
			Blocked: base.Foreground(tcell.ColorMaroon),
			Empty:   base.Foreground(tcell.ColorWhite),
			Path:    base.Foreground(tcell.ColorGreen).Bold(true),
		},
		cursor: base.Foreground(tcell.ColorYellow).Bold(true),
		status: base.Foreground(tcell.ColorSilver),
		sleep:  time.Sleep,
	}
}

// Observe paints one frame: the grid, the recent trail and the next carve target
func (a *Animator) Observe(g *maze.Grid, s maze.Step) {
	path := mapset.New[maze.Coord]()
	for _, c := range a.trail {
		path.Put(c)
	}

	a.paint(g, path)
	a.drawCell(s.Next, a.glyphs.Path, a.cursor)

	m, _ := g.Dimensions()
	a.drawText(0, m, fmt.Sprintf("step %-6d frontier %-5d open %-6d  [q] quit", s.Index, s.Frontier, g.OpenCount()))
	a.surface.Show()

	a.pushTrail(s.Next)
	if a.delay > 0 {
		a.sleep(a.delay)
	}
}

// Draw paints the finished grid with a summary line and no trail
func (a *Animator) Draw(g *maze.Grid, st maze.Stats) {
	a.trail = a.trail[:0]
	a.paint(g, mapset.New[maze.Coord]())

	m, _ := g.Dimensions()
	a.drawText(0, m, fmt.Sprintf("done: %d steps, %d cells open", st.Steps, st.Opened))
	a.surface.Show()
}

// WatchKeys cancels the carve when a quit key arrives. It returns when the
// source is closed (PollEvent yields nil) or ctx ends.
func WatchKeys(ctx context.Context, src EventSource, cancel context.CancelFunc) {
	for {
		ev := src.PollEvent()
		if ev == nil {
			return
		}
		if ctx.Err() != nil {
			return
		}
		key, ok := ev.(*tcell.EventKey)
		if !ok {
			continue
		}
		if isQuitKey(key) {
			cancel()
			return
		}
	}
}

func isQuitKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return true
	case tcell.KeyRune:
		return ev.Rune() == 'q' || ev.Rune() == 'Q'
	}
	return false
}

func (a *Animator) paint(g *maze.Grid, path mapset.Set[maze.Coord]) {
	a.surface.Clear()
	g.Each(func(c maze.Coord, cell maze.Cell) {
		class := Classify(cell, path.Has(c))
		a.drawCell(c, a.glyphs.For(class), a.styles[class])
	})
}

func (a *Animator) drawCell(c maze.Coord, r rune, style tcell.Style) {
	w := a.glyphs.width()
	x := c.Col * w
	a.surface.SetContent(x, c.Row, r, nil, style)
	// Narrow glyphs in a wide set are repeated so columns stay aligned
	for i := runewidth.RuneWidth(r); i > 0 && i < w; i++ {
		a.surface.SetContent(x+i, c.Row, r, nil, style)
	}
}

func (a *Animator) drawText(x, y int, s string) {
	for i, r := range []rune(s) {
		a.surface.SetContent(x+i, y, r, nil, a.status)
	}
}

func (a *Animator) pushTrail(c maze.Coord) {
	if a.trailLen == 0 {
		return
	}
	if len(a.trail) == a.trailLen {
		copy(a.trail, a.trail[1:])
		a.trail = a.trail[:len(a.trail)-1]
	}
	a.trail = append(a.trail, c)
}
