package tui

import (
	"context"
	"strings"
	"testing"
	"time"

	"RingTimer/control"
	"RingTimer/i18n"
	"RingTimer/timer"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// gridCanvas records the last rune written to each cell.
type gridCanvas struct {
	w, h  int
	cells [][]rune
}

func newGridCanvas(w, h int) *gridCanvas {
	g := &gridCanvas{w: w, h: h, cells: make([][]rune, h)}
	for y := range g.cells {
		g.cells[y] = make([]rune, w)
	}
	return g
}

func (g *gridCanvas) SetContent(x, y int, mainc rune, _ []rune, _ tcell.Style) {
	if x >= 0 && x < g.w && y >= 0 && y < g.h {
		g.cells[y][x] = mainc
	}
}

func (g *gridCanvas) Size() (int, int) { return g.w, g.h }

func (g *gridCanvas) row(y int) string { return string(g.cells[y]) }

// count returns how many cells of r lie in columns [x0, x1).
func (g *gridCanvas) count(r rune, x0, x1 int) int {
	n := 0
	for _, line := range g.cells {
		for x := x0; x < x1; x++ {
			if line[x] == r {
				n++
			}
		}
	}
	return n
}

func snapshot(d string, paused bool) timer.Snapshot {
	rem := timer.MustParseDuration(d)
	return timer.Snapshot{Remaining: rem, Initial: rem, Paused: paused, Finished: rem.IsZero()}
}

func defaultPalette(t *testing.T) Palette {
	t.Helper()
	p, err := NewPalette(timer.DefaultColors())
	require.NoError(t, err)
	return p
}

func TestNewPalette(t *testing.T) {
	p := defaultPalette(t)
	assert.Equal(t, tcell.NewRGBColor(0x0A, 0x78, 0xCC), p[0])

	_, err := NewPalette(timer.Colors{Hours: "nope", Minutes: "#000", Seconds: "#000"})
	assert.Error(t, err)
}

func TestDrawRings(t *testing.T) {
	i18n.SetLang("en")
	g := newGridCanvas(90, 24)

	Draw(g, snapshot("08:00:00", false), defaultPalette(t), timer.DefaultRingLimits())

	// the hours ring is full, the other two are empty
	assert.Positive(t, g.count(filledRune, 0, 30))
	assert.Zero(t, g.count(trackRune, 0, 30))
	assert.Zero(t, g.count(filledRune, 30, 90))
	assert.Positive(t, g.count(trackRune, 30, 90))

	assert.Contains(t, g.row(7), "08h")
	assert.Contains(t, g.row(7), "00m")
	assert.Contains(t, g.row(16), "08 hours, 00 minutes, 00 seconds remaining")
	assert.Contains(t, g.row(23), "[q] quit")
}

func TestDrawHalfRing(t *testing.T) {
	g := newGridCanvas(90, 24)
	Draw(g, snapshot("00:30:00", false), defaultPalette(t), timer.DefaultRingLimits())

	filled := g.count(filledRune, 30, 60)
	track := g.count(trackRune, 30, 60)
	require.Positive(t, filled+track)
	assert.InDelta(t, 0.5, float64(filled)/float64(filled+track), 0.1)
}

func TestDrawStates(t *testing.T) {
	i18n.SetLang("en")

	g := newGridCanvas(90, 24)
	Draw(g, snapshot("00:00:10", true), defaultPalette(t), timer.DefaultRingLimits())
	assert.Contains(t, g.row(17), "Paused")

	g = newGridCanvas(90, 24)
	Draw(g, snapshot("00:00:00", false), defaultPalette(t), timer.DefaultRingLimits())
	assert.Contains(t, g.row(17), "Time's up")
}

func TestDrawSmallTerminal(t *testing.T) {
	i18n.SetLang("en")
	g := newGridCanvas(20, 3)

	Draw(g, snapshot("00:01:00", false), defaultPalette(t), timer.DefaultRingLimits())

	assert.Zero(t, g.count(filledRune, 0, 20)+g.count(trackRune, 0, 20))
	assert.True(t, strings.HasPrefix(g.row(0), "00 hours, 01 minute"))
}

func newTestApp(t *testing.T, screen tcell.Screen, d string) (*App, *timer.Countdown) {
	t.Helper()
	c := timer.NewCountdown(nil, timer.StorageKey)
	c.Restore(timer.MustParseDuration(d))
	// a stopped runner applies commands directly
	r := control.NewRunner(c, nil, 0)
	return NewApp(screen, c, r, defaultPalette(t), timer.DefaultRingLimits()), c
}

func TestHandleKey(t *testing.T) {
	a, c := newTestApp(t, nil, "00:10:00")

	assert.True(t, a.handleKey(tcell.KeyRune, ' '))
	assert.True(t, c.Paused())
	assert.True(t, a.handleKey(tcell.KeyRune, ' '))
	assert.False(t, c.Paused())

	c.Tick()
	assert.True(t, a.handleKey(tcell.KeyRune, 'r'))
	assert.Equal(t, "00:10:00", c.Remaining().String())

	assert.True(t, a.handleKey(tcell.KeyRune, 'x'))
	assert.True(t, a.handleKey(tcell.KeyEnter, 0))

	assert.False(t, a.handleKey(tcell.KeyRune, 'q'))
	assert.False(t, a.handleKey(tcell.KeyEscape, 0))
	assert.False(t, a.handleKey(tcell.KeyCtrlC, 0))
}

func TestRunOnSimulationScreen(t *testing.T) {
	i18n.SetLang("en")
	screen := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, screen.Init())
	defer screen.Fini()
	screen.SetSize(90, 24)

	a, c := newTestApp(t, screen, "00:10:00")

	done := make(chan error, 1)
	go func() { done <- a.Run(context.Background()) }()

	screen.InjectKey(tcell.KeyRune, ' ', tcell.ModNone)
	screen.InjectKey(tcell.KeyRune, 'q', tcell.ModNone)

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after q")
	}
	assert.True(t, c.Paused())

	cells, w, _ := screen.GetContents()
	var line strings.Builder
	for _, cell := range cells[16*w : 17*w] {
		if len(cell.Runes) > 0 {
			line.WriteRune(cell.Runes[0])
		}
	}
	assert.Contains(t, line.String(), "00 hours, 10 minutes, 00 seconds remaining")
}

func TestRunStopsWithContext(t *testing.T) {
	screen := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, screen.Init())
	defer screen.Fini()

	a, _ := newTestApp(t, screen, "00:00:05")
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- a.Run(ctx) }()
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}
