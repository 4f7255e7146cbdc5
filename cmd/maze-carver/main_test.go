package main

import (
	"bytes"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/gdamore/tcell/v2"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/maze-carver/config"
)

func plainEnv(t *testing.T) {
	t.Helper()
	restoreLogrus(t)
	t.Setenv(config.EnvAnimate, "off")
	t.Setenv(config.EnvSound, "false")
	t.Setenv(config.EnvDebug, "false")
	t.Setenv(config.EnvGlyphs, "ascii")
	t.Setenv(config.EnvSeed, "11")
}

func runCLI(t *testing.T, args ...string) (int, string, string) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	code := run(append([]string{"maze-carver"}, args...), &stdout, &stderr, false)
	return code, stdout.String(), stderr.String()
}

func TestRun_PrintsMaze(t *testing.T) {
	plainEnv(t)

	code, out, errOut := runCLI(t, "-r", "7", "-c", "11")
	require.Equal(t, exitOK, code, errOut)

	lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")
	require.Len(t, lines, 7)
	for i, line := range lines {
		assert.Equal(t, 11, utf8.RuneCountInString(line), "line %d", i)
	}
	assert.Equal(t, strings.Repeat("#", 11), lines[0])
	assert.Equal(t, strings.Repeat("#", 11), lines[6])
	assert.Equal(t, ' ', rune(lines[1][1]), "first seed open")
	assert.Equal(t, ' ', rune(lines[5][9]), "second seed open")
}

func TestRun_DefaultSize(t *testing.T) {
	plainEnv(t)

	code, out, _ := runCLI(t)
	require.Equal(t, exitOK, code)
	assert.Equal(t, 5, strings.Count(out, "\n"))
}

func TestRun_SeedIsReproducible(t *testing.T) {
	plainEnv(t)

	_, first, _ := runCLI(t, "--rows", "21", "--cols", "33")
	_, second, _ := runCLI(t, "--rows", "21", "--cols", "33")
	assert.Equal(t, first, second)
}

func TestRun_InvalidDimensions(t *testing.T) {
	plainEnv(t)

	code, out, errOut := runCLI(t, "-r", "4", "-c", "9")
	assert.Equal(t, exitUsage, code)
	assert.Empty(t, out)
	assert.Contains(t, errOut, "invalid dimensions")
}

func TestRun_BadArgument(t *testing.T) {
	plainEnv(t)

	code, out, _ := runCLI(t, "-r", "wide")
	assert.Equal(t, exitUsage, code)
	assert.Empty(t, out)
}

func TestRun_BadConfig(t *testing.T) {
	plainEnv(t)
	t.Setenv(config.EnvAnimate, "sometimes")

	code, _, errOut := runCLI(t)
	assert.Equal(t, exitFailure, code)
	assert.Contains(t, errOut, config.EnvAnimate)
}

func TestRun_UnknownGlyphs(t *testing.T) {
	plainEnv(t)
	t.Setenv(config.EnvGlyphs, "sixel")

	code, _, errOut := runCLI(t)
	assert.Equal(t, exitFailure, code)
	assert.Contains(t, errOut, "unknown glyph set")
}

func TestRun_TerminalInitFailure(t *testing.T) {
	plainEnv(t)
	t.Setenv(config.EnvAnimate, "on")

	orig := newScreen
	newScreen = func() (tcell.Screen, error) { return nil, errors.New("no tty") }
	defer func() { newScreen = orig }()

	code, out, errOut := runCLI(t)
	assert.Equal(t, exitFailure, code)
	assert.Empty(t, out)
	assert.Contains(t, errOut, "terminal init")
}

func TestRun_UnknownAlgorithm(t *testing.T) {
	plainEnv(t)
	t.Setenv(config.EnvAlgorithm, "sidewinder")

	code, out, errOut := runCLI(t)
	assert.Equal(t, exitFailure, code)
	assert.Empty(t, out)
	assert.Contains(t, errOut, "unknown algorithm")
}

func TestRun_LatticeWithBraid(t *testing.T) {
	plainEnv(t)
	t.Setenv(config.EnvAlgorithm, "kruskal")
	t.Setenv(config.EnvBraid, "4")

	code, out, errOut := runCLI(t, "-r", "9", "-c", "13")
	require.Equal(t, exitOK, code, errOut)

	lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")
	require.Len(t, lines, 9)
	assert.Equal(t, strings.Repeat("#", 13), lines[0])
	assert.Equal(t, "#", lines[2][2:3], "lattice posts stay wall")
}

// testScreen is a simulation screen that can quit on start or fail on draw
type testScreen struct {
	tcell.SimulationScreen
	quitOnInit  bool
	panicOnDraw bool
	finis       int
}

func newTestScreen() *testScreen {
	return &testScreen{SimulationScreen: tcell.NewSimulationScreen("UTF-8")}
}

func (s *testScreen) Init() error {
	if err := s.SimulationScreen.Init(); err != nil {
		return err
	}
	if s.quitOnInit {
		s.InjectKey(tcell.KeyRune, 'q', tcell.ModNone)
	}
	return nil
}

func (s *testScreen) SetContent(x, y int, primary rune, combining []rune, style tcell.Style) {
	if s.panicOnDraw {
		panic("draw failed")
	}
	s.SimulationScreen.SetContent(x, y, primary, combining, style)
}

func (s *testScreen) Fini() {
	s.finis++
	s.SimulationScreen.Fini()
}

// screenWriter records how often the screen was finalized before the first write
type screenWriter struct {
	bytes.Buffer
	screen       *testScreen
	writes       int
	finisAtFirst int
}

func (w *screenWriter) Write(p []byte) (int, error) {
	if w.writes == 0 {
		w.finisAtFirst = w.screen.finis
	}
	w.writes++
	return w.Buffer.Write(p)
}

func useScreen(t *testing.T, s *testScreen) {
	t.Helper()
	orig := newScreen
	newScreen = func() (tcell.Screen, error) { return s, nil }
	t.Cleanup(func() { newScreen = orig })
}

func animatedEnv(t *testing.T) {
	t.Helper()
	plainEnv(t)
	t.Setenv(config.EnvAnimate, "on")
	t.Setenv(config.EnvFrameDelay, "5ms")
	t.Setenv(config.EnvHold, "0")
}

func TestRun_QuitKeyCancels(t *testing.T) {
	animatedEnv(t)
	screen := newTestScreen()
	screen.quitOnInit = true
	useScreen(t, screen)

	stdout := &screenWriter{screen: screen}
	var stderr bytes.Buffer
	code := run([]string{"maze-carver", "-r", "41", "-c", "41"}, stdout, &stderr, true)

	assert.Equal(t, exitCancelled, code, stderr.String())
	assert.Contains(t, stderr.String(), "cancelled after")

	// The partial maze is still printed, after the terminal is restored
	lines := strings.Split(strings.TrimSuffix(stdout.String(), "\n"), "\n")
	assert.Len(t, lines, 41)
	assert.Equal(t, 1, screen.finis)
	assert.Equal(t, 1, stdout.finisAtFirst)
}

func TestRun_DrawPanicRestoresTerminal(t *testing.T) {
	animatedEnv(t)
	screen := newTestScreen()
	screen.panicOnDraw = true
	useScreen(t, screen)

	stdout := &screenWriter{screen: screen}
	var stderr bytes.Buffer
	code := run([]string{"maze-carver", "-r", "9", "-c", "9"}, stdout, &stderr, true)

	assert.Equal(t, exitFailure, code)
	assert.Contains(t, stderr.String(), "crashed: draw failed")
	assert.Contains(t, stderr.String(), "Stack Trace")
	assert.Zero(t, stdout.writes)
	assert.Equal(t, 1, screen.finis)
}

func TestRun_AnimatedCompletes(t *testing.T) {
	animatedEnv(t)
	t.Setenv(config.EnvFrameDelay, "0")
	screen := newTestScreen()
	useScreen(t, screen)

	stdout := &screenWriter{screen: screen}
	var stderr bytes.Buffer
	code := run([]string{"maze-carver", "-r", "7", "-c", "9"}, stdout, &stderr, true)

	require.Equal(t, exitOK, code, stderr.String())
	assert.Equal(t, 1, screen.finis)
	assert.Equal(t, 1, stdout.finisAtFirst)
	assert.Equal(t, 7, strings.Count(stdout.String(), "\n"))
}
