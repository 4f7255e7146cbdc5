// Package audio sonifies carving: a tick per step and a chime at the end.
package audio

import "github.com/lixenwraith/maze-carver/maze"

// Player is the sound sink a Ticker drives. SoundManager implements it.
type Player interface {
	PlayStep(freq float64)
	PlayDone()
}

const (
	tickBaseFreq  = 220.0
	tickFreqStep  = 20.0
	tickMaxRaises = 24
)

// Ticker plays one tick every Every carving steps, pitched by frontier size.
// It implements maze.Observer.
type Ticker struct {
	player Player
	every  int
}

// NewTicker returns a ticker playing through p. every < 1 means every step.
func NewTicker(p Player, every int) *Ticker {
	if every < 1 {
		every = 1
	}
	return &Ticker{player: p, every: every}
}

func (t *Ticker) Observe(_ *maze.Grid, s maze.Step) {
	if s.Index%t.every != 0 {
		return
	}
	t.player.PlayStep(TickFrequency(s.Frontier))
}

// Done plays the completion chime
func (t *Ticker) Done() {
	t.player.PlayDone()
}

// TickFrequency maps a frontier size to a pitch; deeper frontiers sound higher
func TickFrequency(frontier int) float64 {
	if frontier < 0 {
		frontier = 0
	}
	if frontier > tickMaxRaises {
		frontier = tickMaxRaises
	}
	return tickBaseFreq + tickFreqStep*float64(frontier)
}
