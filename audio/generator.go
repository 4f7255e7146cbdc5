package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
	"github.com/pkg/errors"
)

const (
	tickDuration = 25 * time.Millisecond
	tickAttack   = 2 * time.Millisecond
	tickRelease  = 15 * time.Millisecond

	chimeNoteDuration = 120 * time.Millisecond
	chimeAttack       = 5 * time.Millisecond
	chimeRelease      = 80 * time.Millisecond
)

// B5 then E6
var chimeNotes = [...]float64{987.77, 1318.51}

// fade ramps a finite stream in over attack samples and out over the last
// release samples. total is the stream length in samples.
type fade struct {
	s       beep.Streamer
	pos     int
	total   int
	attack  int
	release int
}

func (f *fade) Stream(samples [][2]float64) (int, bool) {
	n, ok := f.s.Stream(samples)
	for i := 0; i < n; i++ {
		g := f.gain(f.pos)
		samples[i][0] *= g
		samples[i][1] *= g
		f.pos++
	}
	return n, ok
}

func (f *fade) Err() error { return f.s.Err() }

func (f *fade) gain(pos int) float64 {
	g := 1.0
	if f.attack > 0 && pos < f.attack {
		g = float64(pos) / float64(f.attack)
	}
	if left := f.total - pos; f.release > 0 && left < f.release {
		g = math.Min(g, math.Max(0, float64(left)/float64(f.release)))
	}
	return g
}

// tone returns a faded sine burst of length d
func tone(freq float64, d, attack, release time.Duration, rate beep.SampleRate) (beep.Streamer, error) {
	sine, err := generators.SineTone(rate, freq)
	if err != nil {
		return nil, errors.Wrapf(err, "audio: %.1fHz tone", freq)
	}
	n := rate.N(d)
	return &fade{
		s:       beep.Take(n, sine),
		total:   n,
		attack:  rate.N(attack),
		release: rate.N(release),
	}, nil
}

// newVolume scales s linearly. math.Log2(0) is -Inf, so zero volume is silent.
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol)}
}

// CreateTickSound returns a short blip at freq for one carving step
func CreateTickSound(freq, volume float64, rate beep.SampleRate) (beep.Streamer, error) {
	t, err := tone(freq, tickDuration, tickAttack, tickRelease, rate)
	if err != nil {
		return nil, err
	}
	return newVolume(t, volume), nil
}

// CreateChimeSound returns a rising two-note chime for a finished maze
func CreateChimeSound(volume float64, rate beep.SampleRate) (beep.Streamer, error) {
	notes := make([]beep.Streamer, 0, len(chimeNotes))
	for _, f := range chimeNotes {
		t, err := tone(f, chimeNoteDuration, chimeAttack, chimeRelease, rate)
		if err != nil {
			return nil, err
		}
		notes = append(notes, t)
	}
	return newVolume(beep.Seq(notes...), volume*0.5), nil
}
