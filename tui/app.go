package tui

import (
	"context"

	"RingTimer/control"
	"RingTimer/timer"

	"github.com/gdamore/tcell/v2"
	"github.com/sirupsen/logrus"
)

var log = logrus.WithField("component", "tui")

// App drives one countdown on an initialized tcell screen.
type App struct {
	screen    tcell.Screen
	countdown *timer.Countdown
	runner    *control.Runner
	palette   Palette
	limits    timer.RingLimits

	changed chan struct{}
}

// NewApp wires the countdown to the screen. The countdown's change listener
// is taken over by the App.
func NewApp(screen tcell.Screen, c *timer.Countdown, r *control.Runner, p Palette, l timer.RingLimits) *App {
	a := &App{
		screen:    screen,
		countdown: c,
		runner:    r,
		palette:   p,
		limits:    l,
		changed:   make(chan struct{}, 1),
	}
	c.OnChange(func(timer.Snapshot) {
		select {
		case a.changed <- struct{}{}:
		default:
		}
	})
	return a
}

// Run redraws on every countdown change and handles keys until the user
// quits or ctx is done. The caller owns the screen and calls Fini.
func (a *App) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	events := make(chan tcell.Event, 16)
	go func() {
		for {
			ev := a.screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-ctx.Done():
				return
			}
		}
	}()

	a.draw()
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev := <-events:
			if !a.handleEvent(ev) {
				return nil
			}
			a.draw()
		case <-a.changed:
			a.draw()
		}
	}
}

func (a *App) draw() {
	Draw(a.screen, a.countdown.Snapshot(), a.palette, a.limits)
	a.screen.Show()
}

// handleEvent returns false when the user asked to quit.
func (a *App) handleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		return a.handleKey(ev.Key(), ev.Rune())
	case *tcell.EventResize:
		a.screen.Sync()
	}
	return true
}

func (a *App) handleKey(key tcell.Key, r rune) bool {
	switch key {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return false
	case tcell.KeyRune:
	default:
		return true
	}

	var cmd control.Command
	switch r {
	case 'q', 'Q':
		return false
	case ' ':
		cmd = control.Command{Type: control.CmdSetPaused, Paused: !a.countdown.Paused()}
	case 'r', 'R':
		cmd = control.Command{Type: control.CmdReset}
	default:
		return true
	}
	if err := a.runner.Do(cmd); err != nil {
		log.WithError(err).Warnf("Command %s failed", cmd.Type)
	}
	return true
}
