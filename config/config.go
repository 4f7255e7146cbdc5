// Package config loads maze-carver settings from the environment, optionally
// seeded from .env files.
package config

import (
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// AnimateMode selects when the terminal animation runs
type AnimateMode string

const (
	AnimateAuto AnimateMode = "auto" // only when stdout is a terminal
	AnimateOn   AnimateMode = "on"
	AnimateOff  AnimateMode = "off"
)

// Environment variable names
const (
	EnvSeed       = "MAZE_SEED"
	EnvAlgorithm  = "MAZE_ALGORITHM"
	EnvBraid      = "MAZE_BRAID"
	EnvAnimate    = "MAZE_ANIMATE"
	EnvFrameDelay = "MAZE_FRAME_DELAY"
	EnvHold       = "MAZE_HOLD"
	EnvTrail      = "MAZE_TRAIL"
	EnvGlyphs     = "MAZE_GLYPHS"
	EnvSound      = "MAZE_SOUND"
	EnvVolume     = "MAZE_VOLUME"
	EnvDebug      = "MAZE_DEBUG"
	EnvLogDir     = "MAZE_LOG_DIR"
)

// Config holds runtime settings other than the grid dimensions
type Config struct {
	Seed       int64         // 0 = clock seed
	Algorithm  string        // carve, backtracker, growing-tree, prim, kruskal, wilson, eller
	Braid      int           // walls opened after generation to add loops
	Animate    AnimateMode   // auto, on, off
	FrameDelay time.Duration // pause between animation frames
	Hold       time.Duration // final frame display time
	Trail      int           // highlighted trail length
	Glyphs     string        // emoji, block, ascii
	Sound      bool          // carve ticks through the speaker
	Volume     float64       // 0.0-1.0
	Debug      bool          // file logging
	LogDir     string        // directory for the debug log
}

// Default returns the settings used when no variable is set
func Default() Config {
	return Config{
		Algorithm:  "carve",
		Animate:    AnimateAuto,
		FrameDelay: 30 * time.Millisecond,
		Hold:       time.Second,
		Trail:      6,
		Glyphs:     "block",
		Volume:     0.5,
		LogDir:     "logs",
	}
}

// Load reads .env files (default ".env"; missing files are skipped) without
// overriding variables already set, then parses the environment.
func Load(files ...string) (Config, error) {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				logrus.WithField("file", f).Debug("env file not found")
				continue
			}
			return Config{}, errors.Wrapf(err, "config: load %s", f)
		}
	}
	return FromEnv(os.LookupEnv)
}

// FromEnv parses settings through lookup
func FromEnv(lookup func(string) (string, bool)) (Config, error) {
	cfg := Default()
	p := parser{lookup: lookup}

	p.setInt64(EnvSeed, &cfg.Seed)
	p.setString(EnvAlgorithm, &cfg.Algorithm)
	p.setInt(EnvBraid, &cfg.Braid)
	p.setDuration(EnvFrameDelay, &cfg.FrameDelay)
	p.setDuration(EnvHold, &cfg.Hold)
	p.setInt(EnvTrail, &cfg.Trail)
	p.setBool(EnvSound, &cfg.Sound)
	p.setBool(EnvDebug, &cfg.Debug)
	p.setString(EnvGlyphs, &cfg.Glyphs)
	p.setString(EnvLogDir, &cfg.LogDir)

	if v, ok := p.get(EnvAnimate); ok {
		switch mode := AnimateMode(strings.ToLower(v)); mode {
		case AnimateAuto, AnimateOn, AnimateOff:
			cfg.Animate = mode
		default:
			p.fail(EnvAnimate, v, errors.New("want auto, on or off"))
		}
	}

	// Volume is given as 0-100
	var volume int
	if p.setInt(EnvVolume, &volume) {
		if volume < 0 || volume > 100 {
			p.fail(EnvVolume, strconv.Itoa(volume), errors.New("want 0-100"))
		}
		cfg.Volume = float64(volume) / 100
	}

	if cfg.Braid < 0 {
		p.fail(EnvBraid, strconv.Itoa(cfg.Braid), errors.New("must not be negative"))
	}
	if cfg.Trail < 0 {
		p.fail(EnvTrail, strconv.Itoa(cfg.Trail), errors.New("must not be negative"))
	}
	if cfg.FrameDelay < 0 {
		p.fail(EnvFrameDelay, cfg.FrameDelay.String(), errors.New("must not be negative"))
	}

	if p.err != nil {
		return Config{}, p.err
	}
	return cfg, nil
}

// parser keeps the first error so FromEnv reads as a flat list of fields
type parser struct {
	lookup func(string) (string, bool)
	err    error
}

func (p *parser) get(key string) (string, bool) {
	v, ok := p.lookup(key)
	if !ok {
		return "", false
	}
	v = strings.TrimSpace(v)
	return v, v != ""
}

func (p *parser) fail(key, value string, err error) {
	if p.err == nil {
		p.err = errors.Wrapf(err, "config: %s=%q", key, value)
	}
}

func (p *parser) setString(key string, dst *string) {
	if v, ok := p.get(key); ok {
		*dst = v
	}
}

func (p *parser) setInt(key string, dst *int) bool {
	v, ok := p.get(key)
	if !ok {
		return false
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		p.fail(key, v, err)
		return false
	}
	*dst = n
	return true
}

func (p *parser) setInt64(key string, dst *int64) {
	if v, ok := p.get(key); ok {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			p.fail(key, v, err)
			return
		}
		*dst = n
	}
}

func (p *parser) setBool(key string, dst *bool) {
	if v, ok := p.get(key); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			p.fail(key, v, err)
			return
		}
		*dst = b
	}
}

// setDuration accepts Go durations ("40ms") or bare milliseconds ("40")
func (p *parser) setDuration(key string, dst *time.Duration) {
	v, ok := p.get(key)
	if !ok {
		return
	}
	if ms, err := strconv.Atoi(v); err == nil {
		*dst = time.Duration(ms) * time.Millisecond
		return
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		p.fail(key, v, err)
		return
	}
	*dst = d
}
