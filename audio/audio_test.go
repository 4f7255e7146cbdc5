package audio

import (
	"testing"
	"time"

	"github.com/gopxl/beep"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/maze-carver/maze"
)

const testRate = beep.SampleRate(44100)

func drain(t *testing.T, s beep.Streamer) [][2]float64 {
	t.Helper()
	var out [][2]float64
	buf := make([][2]float64, 256)
	for i := 0; i < 10000; i++ {
		n, ok := s.Stream(buf)
		out = append(out, buf[:n]...)
		if !ok {
			return out
		}
	}
	t.Fatal("streamer never drained")
	return nil
}

// constant streams value for n samples
func constant(value float64, n int) beep.Streamer {
	return beep.Take(n, beep.StreamerFunc(func(samples [][2]float64) (int, bool) {
		for i := range samples {
			samples[i][0], samples[i][1] = value, value
		}
		return len(samples), true
	}))
}

func TestTone_LengthAndRange(t *testing.T) {
	d := 10 * time.Millisecond
	s, err := tone(440, d, time.Millisecond, time.Millisecond, testRate)
	require.NoError(t, err)
	samples := drain(t, s)

	assert.Len(t, samples, testRate.N(d))
	for i, smp := range samples {
		assert.GreaterOrEqual(t, smp[0], -1.0, "sample %d", i)
		assert.LessOrEqual(t, smp[0], 1.0, "sample %d", i)
		assert.Equal(t, smp[0], smp[1], "sample %d not mono", i)
	}
}

func TestTone_RejectsFrequencyAboveNyquist(t *testing.T) {
	_, err := tone(float64(testRate), tickDuration, tickAttack, tickRelease, testRate)
	assert.Error(t, err)

	_, err = CreateTickSound(float64(testRate), 0.5, testRate)
	assert.Error(t, err)
}

func TestFade_RampsInAndOut(t *testing.T) {
	const n, ramp = 400, 100
	samples := drain(t, &fade{s: constant(1, n), total: n, attack: ramp, release: ramp})

	require.Len(t, samples, n)
	assert.Equal(t, 0.0, samples[0][0], "attack starts silent")
	assert.InDelta(t, 0.5, samples[ramp/2][0], 1e-9, "halfway up the attack")
	assert.Equal(t, 1.0, samples[n/2][0], "full gain between ramps")
	assert.InDelta(t, 1.0/ramp, samples[n-1][0], 1e-9, "last sample nearly silent")
	assert.Greater(t, samples[n-ramp][0], samples[n-1][0])
}

func TestFade_OverlappingRampsTakeQuieter(t *testing.T) {
	const n = 10
	f := &fade{total: n, attack: n, release: n}
	for pos := 0; pos < n; pos++ {
		assert.LessOrEqual(t, f.gain(pos), 0.5+1e-9, "pos %d", pos)
	}
}

func TestCreateSounds(t *testing.T) {
	tick, err := CreateTickSound(440, 0.5, testRate)
	require.NoError(t, err)
	assert.Len(t, drain(t, tick), testRate.N(tickDuration))

	chime, err := CreateChimeSound(0.5, testRate)
	require.NoError(t, err)
	assert.Len(t, drain(t, chime), len(chimeNotes)*testRate.N(chimeNoteDuration))

	silent, err := CreateTickSound(440, 0, testRate)
	require.NoError(t, err)
	for _, s := range drain(t, silent) {
		assert.Zero(t, s[0])
	}
}

type fakePlayer struct {
	steps []float64
	done  int
}

func (f *fakePlayer) PlayStep(freq float64) { f.steps = append(f.steps, freq) }
func (f *fakePlayer) PlayDone()             { f.done++ }

func TestTicker_Throttles(t *testing.T) {
	p := &fakePlayer{}
	tk := NewTicker(p, 3)

	for i := 1; i <= 10; i++ {
		tk.Observe(nil, maze.Step{Index: i, Frontier: i})
	}
	assert.Equal(t, []float64{TickFrequency(3), TickFrequency(6), TickFrequency(9)}, p.steps)

	tk.Done()
	assert.Equal(t, 1, p.done)
}

func TestTicker_DefaultsToEveryStep(t *testing.T) {
	p := &fakePlayer{}
	tk := NewTicker(p, 0)
	tk.Observe(nil, maze.Step{Index: 1})
	tk.Observe(nil, maze.Step{Index: 2})
	assert.Len(t, p.steps, 2)
}

func TestTickFrequency_Clamped(t *testing.T) {
	assert.Equal(t, tickBaseFreq, TickFrequency(-4))
	assert.Equal(t, tickBaseFreq, TickFrequency(0))
	assert.Equal(t, tickBaseFreq+tickFreqStep*tickMaxRaises, TickFrequency(1000))
	assert.Less(t, TickFrequency(2), TickFrequency(3))
}

func TestSoundManager_UninitializedIsSilent(t *testing.T) {
	sm := NewSoundManager(0, 2)
	assert.Equal(t, DefaultSampleRate, sm.rate)
	assert.Equal(t, 1.0, sm.volume)

	sm.PlayStep(440)
	sm.PlayDone()
	assert.Zero(t, sm.mixer.Len())
	sm.Cleanup()
}
