package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"
	"time"

	"github.com/akamensky/argparse"
	"github.com/gdamore/tcell/v2"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/zyedidia/generic/mapset"
	"golang.org/x/term"

	"github.com/lixenwraith/maze-carver/audio"
	"github.com/lixenwraith/maze-carver/config"
	"github.com/lixenwraith/maze-carver/maze"
	"github.com/lixenwraith/maze-carver/render"
)

const (
	exitOK        = 0
	exitFailure   = 1
	exitUsage     = 2
	exitCancelled = 130
)

// chimeWait lets the completion chime play out before the speaker is cleared
const chimeWait = 300 * time.Millisecond

// newScreen is swapped in tests
var newScreen = tcell.NewScreen

func main() {
	os.Exit(run(os.Args, os.Stdout, os.Stderr, term.IsTerminal(int(os.Stdout.Fd()))))
}

func run(args []string, stdout, stderr io.Writer, tty bool) (code int) {
	parser := argparse.NewParser("maze-carver", "Carve a maze from two opposite corners")
	rows := parser.Int("r", "rows", &argparse.Options{Default: maze.MinSize, Help: "Grid rows (M), at least 5"})
	cols := parser.Int("c", "cols", &argparse.Options{Default: maze.MinSize, Help: "Grid columns (N), at least 5"})
	if err := parser.Parse(args); err != nil {
		fmt.Fprint(stderr, parser.Usage(err))
		return exitUsage
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(stderr, "maze-carver: %v\n", err)
		return exitFailure
	}

	logFile, err := setupLogging(cfg.Debug, cfg.LogDir)
	if err != nil {
		fmt.Fprintf(stderr, "maze-carver: %v\n", err)
		return exitFailure
	}
	if logFile != nil {
		defer logFile.Close()
	}
	log := logrus.WithField("run", uuid.NewString())

	glyphs, err := render.LookupGlyphs(cfg.Glyphs)
	if err != nil {
		fmt.Fprintf(stderr, "maze-carver: %v\n", err)
		return exitFailure
	}

	alg, err := maze.ParseAlgorithm(cfg.Algorithm)
	if err != nil {
		fmt.Fprintf(stderr, "maze-carver: %v\n", err)
		return exitFailure
	}

	// Reject bad dimensions before touching the terminal
	if _, err := maze.NewGrid(*rows, *cols); err != nil {
		fmt.Fprintf(stderr, "maze-carver: %v\n", err)
		return exitUsage
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	animate := cfg.Animate == config.AnimateOn || (cfg.Animate == config.AnimateAuto && tty)
	log.WithFields(logrus.Fields{
		"rows":      *rows,
		"cols":      *cols,
		"algorithm": alg,
		"braid":     cfg.Braid,
		"animate":   animate,
		"glyphs":    glyphs.Name,
		"sound":     cfg.Sound,
	}).Info("generation requested")

	var (
		screen   tcell.Screen
		animator *render.Animator
		ticker   *audio.Ticker
		finish   = func() {}
	)

	if animate {
		screen, err = newScreen()
		if err == nil {
			err = screen.Init()
		}
		if err != nil {
			fmt.Fprintf(stderr, "maze-carver: %v\n", errors.Wrap(err, "terminal init"))
			return exitFailure
		}

		finished := false
		finish = func() {
			if !finished {
				finished = true
				screen.Fini()
			}
		}
		defer func() { finish() }()

		// Restore the terminal before reporting a crash
		defer func() {
			if r := recover(); r != nil {
				finish()
				fmt.Fprintf(stderr, "\nmaze-carver crashed: %v\nStack Trace:\n%s\n", r, debug.Stack())
				code = exitFailure
			}
		}()

		animator = render.NewAnimator(screen, render.AnimatorOptions{
			Glyphs:     glyphs,
			FrameDelay: cfg.FrameDelay,
			Trail:      cfg.Trail,
		})
		go render.WatchKeys(ctx, screen, stop)
	}

	if cfg.Sound {
		sm := audio.NewSoundManager(0, cfg.Volume)
		if err := sm.Initialize(); err != nil {
			log.WithError(err).Warn("audio unavailable, continuing without sound")
		} else {
			defer sm.Cleanup()
			ticker = audio.NewTicker(sm, 1)
		}
	}

	// Ticks follow the animation; a plain run only gets the final chime
	var observer maze.Observer
	switch {
	case animator != nil && ticker != nil:
		observer = maze.Observers(animator, ticker)
	case animator != nil:
		observer = animator
	}

	start := time.Now()
	grid, st, err := maze.Generate(ctx, maze.Config{
		Rows:      *rows,
		Cols:      *cols,
		Algorithm: alg,
		Braid:     cfg.Braid,
		Seed:      cfg.Seed,
		Observer:  observer,
		Logger:    log,
	})
	cancelled := errors.Is(err, maze.ErrCancelled)
	if err != nil && !cancelled {
		log.WithError(err).Error("generation failed")
		fmt.Fprintf(stderr, "maze-carver: %v\n", err)
		return exitFailure
	}

	log.WithFields(logrus.Fields{
		"steps":     st.Steps,
		"open":      st.Opened,
		"braided":   st.Braided,
		"elapsed":   time.Since(start),
		"cancelled": cancelled,
	}).Info("generation finished")

	if animator != nil {
		animator.Draw(grid, st)
		if !cancelled {
			hold(ctx, cfg.Hold)
		}
		finish()
	}
	if ticker != nil && !cancelled {
		ticker.Done()
		time.Sleep(chimeWait)
	}

	if err := (render.Text{Glyphs: glyphs}).Write(stdout, grid, mapset.New[maze.Coord]()); err != nil {
		fmt.Fprintf(stderr, "maze-carver: %v\n", err)
		return exitFailure
	}

	if cancelled {
		fmt.Fprintf(stderr, "maze-carver: cancelled after %d steps\n", st.Steps)
		return exitCancelled
	}
	return exitOK
}

// hold keeps the final frame up for d or until the user quits
func hold(ctx context.Context, d time.Duration) {
	if d <= 0 {
		return
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
	case <-ctx.Done():
	}
}
