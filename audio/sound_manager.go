package audio

import (
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
	"github.com/pkg/errors"
)

// DefaultSampleRate is used when the manager is built with a zero rate
const DefaultSampleRate = beep.SampleRate(48000)

// SoundManager plays carve sounds through the system speaker
type SoundManager struct {
	mu          sync.Mutex
	rate        beep.SampleRate
	volume      float64
	mixer       *beep.Mixer
	initialized bool
}

// NewSoundManager creates a sound manager. volume is 0.0-1.0.
func NewSoundManager(rate beep.SampleRate, volume float64) *SoundManager {
	if rate <= 0 {
		rate = DefaultSampleRate
	}
	return &SoundManager{
		rate:   rate,
		volume: clamp01(volume),
		mixer:  &beep.Mixer{},
	}
}

// Initialize opens the speaker and starts the mixer
func (sm *SoundManager) Initialize() error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.initialized {
		return nil
	}

	if err := speaker.Init(sm.rate, sm.rate.N(time.Millisecond*100)); err != nil {
		return errors.Wrap(err, "audio: speaker init")
	}

	speaker.Play(sm.mixer)
	sm.initialized = true
	return nil
}

// Cleanup silences everything still queued
func (sm *SoundManager) Cleanup() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}

	speaker.Lock()
	sm.mixer.Clear()
	speaker.Unlock()
	sm.initialized = false
}

// PlayStep queues a tick at freq
func (sm *SoundManager) PlayStep(freq float64) {
	sm.add(CreateTickSound(freq, sm.volume, sm.rate))
}

// PlayDone queues the completion chime
func (sm *SoundManager) PlayDone() {
	sm.add(CreateChimeSound(sm.volume, sm.rate))
}

// add queues s; a sound that failed to build is dropped
func (sm *SoundManager) add(s beep.Streamer, err error) {
	if err != nil {
		return
	}
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}

	speaker.Lock()
	sm.mixer.Add(s)
	speaker.Unlock()
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
