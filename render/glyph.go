// Package render draws carved grids: a plain-text writer for final output and
// a tcell animator that follows the carver step by step.
package render

import (
	"strings"

	"github.com/pkg/errors"

	"github.com/lixenwraith/maze-carver/maze"
)

// Class is the display category of a cell
type Class uint8

const (
	Blocked Class = iota // wall
	Empty                // carved, not highlighted
	Path                 // carved and on the highlighted path
)

// Classify maps a cell to its display class. A wall is always Blocked,
// even when it appears in the highlighted set.
func Classify(cell maze.Cell, onPath bool) Class {
	if cell == maze.Wall {
		return Blocked
	}
	if onPath {
		return Path
	}
	return Empty
}

// Glyphs maps each class to a rune. Width is the terminal column count of
// one glyph; narrow glyphs are padded to it.
type Glyphs struct {
	Name    string
	Blocked rune
	Empty   rune
	Path    rune
	Width   int
}

// Glyph sets
var (
	Emoji = Glyphs{Name: "emoji", Blocked: '🟥', Empty: '⬜', Path: '🟩', Width: 2}
	Block = Glyphs{Name: "block", Blocked: '█', Empty: ' ', Path: '•', Width: 1}
	ASCII = Glyphs{Name: "ascii", Blocked: '#', Empty: ' ', Path: '.', Width: 1}
)

// ErrUnknownGlyphs is returned by LookupGlyphs for an unregistered name
var ErrUnknownGlyphs = errors.New("render: unknown glyph set")

// LookupGlyphs returns the glyph set registered under name (case-insensitive)
func LookupGlyphs(name string) (Glyphs, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case Emoji.Name:
		return Emoji, nil
	case Block.Name, "":
		return Block, nil
	case ASCII.Name:
		return ASCII, nil
	}
	return Glyphs{}, errors.Wrapf(ErrUnknownGlyphs, "%q", name)
}

// For returns the glyph of class c
func (g Glyphs) For(c Class) rune {
	switch c {
	case Empty:
		return g.Empty
	case Path:
		return g.Path
	}
	return g.Blocked
}

func (g Glyphs) width() int {
	if g.Width < 1 {
		return 1
	}
	return g.Width
}
