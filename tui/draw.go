// Package tui renders the countdown in a terminal with tcell. It shares the
// timer.Countdown and control.Runner used by the desktop widget, so state,
// persistence and ticking behave the same in both frontends.
package tui

import (
	"fmt"
	"math"

	"RingTimer/i18n"
	"RingTimer/timer"

	"github.com/gdamore/tcell/v2"
)

const (
	filledRune = '█'
	trackRune  = '░'

	// minRadius is the smallest ring worth drawing, in rows.
	minRadius = 2
)

// Canvas is the part of tcell.Screen the renderer draws on.
type Canvas interface {
	SetContent(x, y int, mainc rune, combc []rune, style tcell.Style)
	Size() (width, height int)
}

// Palette holds the hours, minutes and seconds ring colors.
type Palette [3]tcell.Color

// NewPalette converts hex ring colors to terminal colors.
func NewPalette(c timer.Colors) (Palette, error) {
	var p Palette
	for i, s := range []string{c.Hours, c.Minutes, c.Seconds} {
		rgb, err := timer.ParseColor(s)
		if err != nil {
			return Palette{}, err
		}
		p[i] = tcell.NewRGBColor(int32(rgb.R), int32(rgb.G), int32(rgb.B))
	}
	return p, nil
}

// Draw clears the canvas and renders the three rings, the remaining time in
// words, the state line and the key help. Rings are skipped when the
// terminal is too small for them.
func Draw(c Canvas, s timer.Snapshot, p Palette, l timer.RingLimits) {
	w, h := c.Size()
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			c.SetContent(x, y, ' ', nil, tcell.StyleDefault)
		}
	}

	hh, mm, ss := s.Remaining.Fields()
	running := s.State() == timer.StateRunning

	row := 0
	cellW := w / 3
	// cells are about twice as tall as they are wide
	radius := min((h-5)/2, (cellW-2)/4)
	if radius >= minRadius {
		rings := []struct {
			left, limit int
			label       string
		}{
			{s.Remaining.Hours, l.Hours, hh + "h"},
			{s.Remaining.Minutes, l.Minutes, mm + "m"},
			{s.Remaining.Seconds, l.Seconds, ss + "s"},
		}
		for i, r := range rings {
			cx := i*cellW + cellW/2
			frac := timer.Fraction(float64(r.left), float64(r.limit))
			drawRing(c, cx, radius, radius, frac, p[i], running)
			drawText(c, cx-len(r.label)/2, radius, r.label, tcell.StyleDefault.Bold(true))
		}
		row = 2*radius + 2
	}

	drawText(c, 0, row, fmt.Sprintf(i18n.T("%s hours, %s minutes, %s seconds remaining"), hh, mm, ss), tcell.StyleDefault)
	switch s.State() {
	case timer.StatePaused:
		drawText(c, 0, row+1, i18n.T("Paused"), tcell.StyleDefault.Reverse(true))
	case timer.StateFinished:
		drawText(c, 0, row+1, i18n.T("Time's up"), tcell.StyleDefault.Bold(true).Blink(true))
	}
	drawText(c, 0, h-1, i18n.T("[space] pause/resume  [r] reset  [q] quit"), tcell.StyleDefault.Dim(true))
}

// drawRing draws a one cell thick ring around (cx, cy), filled clockwise
// from 12 o'clock up to frac.
func drawRing(c Canvas, cx, cy, radius int, frac float64, col tcell.Color, running bool) {
	filled := tcell.StyleDefault.Foreground(col)
	if !running {
		filled = filled.Dim(true)
	}
	track := tcell.StyleDefault.Foreground(col).Dim(true)

	r := float64(radius)
	for y := cy - radius; y <= cy+radius; y++ {
		for x := cx - 2*radius; x <= cx+2*radius; x++ {
			dx := float64(x-cx) / 2
			dy := float64(y - cy)
			if math.Abs(math.Hypot(dx, dy)-r) > 0.5 {
				continue
			}
			angle := math.Atan2(dx, -dy)
			if angle < 0 {
				angle += 2 * math.Pi
			}
			if angle/(2*math.Pi) < frac {
				c.SetContent(x, y, filledRune, nil, filled)
			} else {
				c.SetContent(x, y, trackRune, nil, track)
			}
		}
	}
}

func drawText(c Canvas, x, y int, s string, style tcell.Style) {
	w, h := c.Size()
	if y < 0 || y >= h {
		return
	}
	for _, r := range s {
		if x >= w {
			return
		}
		if x >= 0 {
			c.SetContent(x, y, r, nil, style)
		}
		x++
	}
}
