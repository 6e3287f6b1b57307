package ui

import (
	"fmt"
	"image/color"
	"sync"
	"sync/atomic"
	"time"

	"RingTimer/control"
	"RingTimer/i18n"
	"RingTimer/timer"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// Role is the accessibility role of the timer widget.
const Role = "timer"

var log = logrus.WithField("component", "timer-widget")

// Options are the public attributes of a TimerWidget.
type Options struct {
	Duration     string // HH:MM:SS
	Paused       bool
	HoursColor   string
	MinutesColor string
	SecondsColor string
	HoursLimit   int

	Store      timer.Store
	StorageKey string
	Clock      timer.Clock
	Interval   time.Duration
}

// TimerWidget shows a countdown as three rings for hours, minutes and
// seconds. It starts ticking on Attach and stops on Detach.
type TimerWidget struct {
	widget.BaseWidget

	countdown *timer.Countdown
	runner    *control.Runner

	mu         sync.RWMutex
	configured timer.Duration
	duration   string // reflected attribute
	snap       timer.Snapshot
	colors     timer.Colors
	palette    [3]color.NRGBA
	limits     timer.RingLimits
	attached   bool

	hoursRing, minutesRing, secondsRing *TimeRing
	hoursText, minutesText, secondsText *canvas.Text
	colorFilterRect                     *canvas.Rectangle
	tappableContainer                   *TappableContainer

	dirty atomic.Bool

	// OnDurationChanged observes the reflected duration attribute. It runs
	// on the tick goroutine and must not call the widget's setters.
	OnDurationChanged func(string)
	// OnFinished is called on its own goroutine when the countdown ends, so
	// it may call Reset or SetDuration to start again.
	OnFinished func()
}

// NewTimerWidget validates opts and builds a detached widget.
func NewTimerWidget(opts Options) (*TimerWidget, error) {
	d, err := timer.ParseDuration(opts.Duration)
	if err != nil {
		return nil, errors.Wrap(err, "duration")
	}

	colors := timer.DefaultColors()
	if opts.HoursColor != "" {
		colors.Hours = opts.HoursColor
	}
	if opts.MinutesColor != "" {
		colors.Minutes = opts.MinutesColor
	}
	if opts.SecondsColor != "" {
		colors.Seconds = opts.SecondsColor
	}
	palette, err := parsePalette(colors)
	if err != nil {
		return nil, err
	}

	limits := timer.DefaultRingLimits()
	if opts.HoursLimit > 0 {
		limits.Hours = opts.HoursLimit
	}

	w := &TimerWidget{
		configured: d,
		duration:   d.String(),
		snap:       timer.Snapshot{Remaining: d, Initial: d, Paused: opts.Paused},
		colors:     colors,
		palette:    palette,
		limits:     limits,
	}
	w.countdown = timer.NewCountdown(opts.Store, opts.StorageKey)
	w.countdown.Configure(d)
	// only an attached widget writes to the store
	w.countdown.SetPersist(false)
	w.countdown.SetPaused(opts.Paused)
	w.countdown.OnChange(w.countdownChanged)
	w.countdown.OnFinish(w.countdownFinished)
	w.runner = control.NewRunner(w.countdown, opts.Clock, opts.Interval)

	w.hoursText = newLabelText()
	w.minutesText = newLabelText()
	w.secondsText = newLabelText()
	w.hoursRing = NewTimeRing(0, 0, palette[0], w.hoursText)
	w.minutesRing = NewTimeRing(0, 0, palette[1], w.minutesText)
	w.secondsRing = NewTimeRing(0, 0, palette[2], w.secondsText)
	w.colorFilterRect = canvas.NewRectangle(color.Transparent)
	w.colorFilterRect.CornerRadius = timer.RingSize / 2

	w.ExtendBaseWidget(w)
	w.updateRings()
	return w, nil
}

func newLabelText() *canvas.Text {
	t := canvas.NewText("", color.White)
	t.TextSize = timer.FontSizeLabel
	t.TextStyle.Bold = true
	t.Alignment = fyne.TextAlignCenter
	return t
}

func parsePalette(c timer.Colors) ([3]color.NRGBA, error) {
	var p [3]color.NRGBA
	for i, s := range []string{c.Hours, c.Minutes, c.Seconds} {
		nc, err := timer.ParseColor(s)
		if err != nil {
			return p, err
		}
		p[i] = nc
	}
	return p, nil
}

func (w *TimerWidget) CreateRenderer() fyne.WidgetRenderer {
	rings := container.NewGridWithColumns(3, w.hoursRing, w.minutesRing, w.secondsRing)
	w.tappableContainer = NewTappableContainer(
		container.NewStack(container.NewPadded(rings), w.colorFilterRect),
		w.TogglePause,
		func(*fyne.PointEvent) { w.Reset() },
	)
	return widget.NewSimpleRenderer(w.tappableContainer)
}

// Attach resumes the persisted remaining time, or the configured duration
// when nothing usable is stored, and starts the one second tick.
func (w *TimerWidget) Attach() error {
	w.mu.Lock()
	if w.attached {
		w.mu.Unlock()
		return control.ErrAlreadyRunning
	}
	w.attached = true
	configured := w.configured
	w.mu.Unlock()

	d := w.countdown.Restore(configured)
	w.countdown.SetPersist(true)
	log.Infof("Attached at %s", d)
	return w.runner.Start()
}

// Detach stops the tick. When it returns no further tick or storage write
// happens; setters keep working on the in-memory state, and the next Attach
// resumes from the store.
func (w *TimerWidget) Detach() {
	w.runner.Stop()
	w.countdown.SetPersist(false)
	w.mu.Lock()
	w.attached = false
	w.mu.Unlock()
	log.Info("Detached")
}

// Attached reports whether the widget is ticking.
func (w *TimerWidget) Attached() bool {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.attached
}

// Duration returns the reflected duration attribute, the current remaining
// time as HH:MM:SS.
func (w *TimerWidget) Duration() string {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.duration
}

// SetDuration restarts the countdown from s.
func (w *TimerWidget) SetDuration(s string) error {
	d, err := timer.ParseDuration(s)
	if err != nil {
		return err
	}
	w.mu.Lock()
	w.configured = d
	w.mu.Unlock()
	return w.runner.Do(control.Command{Type: control.CmdSetDuration, Duration: d})
}

// Paused reports the paused attribute.
func (w *TimerWidget) Paused() bool {
	return w.countdown.Paused()
}

// SetPaused sets the paused attribute.
func (w *TimerWidget) SetPaused(paused bool) {
	if err := w.runner.Do(control.Command{Type: control.CmdSetPaused, Paused: paused}); err != nil {
		log.WithError(err).Warn("Failed to change paused state")
	}
}

// TogglePause pauses a running countdown and resumes a paused one.
func (w *TimerWidget) TogglePause() {
	w.SetPaused(!w.Paused())
}

// Reset restarts the countdown from the configured duration.
func (w *TimerWidget) Reset() {
	if err := w.runner.Do(control.Command{Type: control.CmdReset}); err != nil {
		log.WithError(err).Warn("Failed to reset")
	}
}

// Colors returns the ring colors.
func (w *TimerWidget) Colors() timer.Colors {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.colors
}

// SetHoursColor sets the hours ring color.
func (w *TimerWidget) SetHoursColor(s string) error {
	return w.setColor(0, s)
}

// SetMinutesColor sets the minutes ring color.
func (w *TimerWidget) SetMinutesColor(s string) error {
	return w.setColor(1, s)
}

// SetSecondsColor sets the seconds ring color.
func (w *TimerWidget) SetSecondsColor(s string) error {
	return w.setColor(2, s)
}

func (w *TimerWidget) setColor(i int, s string) error {
	c, err := timer.ParseColor(s)
	if err != nil {
		return err
	}
	w.mu.Lock()
	w.palette[i] = c
	switch i {
	case 0:
		w.colors.Hours = s
	case 1:
		w.colors.Minutes = s
	case 2:
		w.colors.Seconds = s
	}
	w.mu.Unlock()
	w.scheduleRefresh()
	return nil
}

// SetHoursLimit changes the value at which the hours ring is full.
func (w *TimerWidget) SetHoursLimit(n int) error {
	if n <= 0 {
		return errors.Errorf("hours limit must be positive, got %d", n)
	}
	w.mu.Lock()
	w.limits.Hours = n
	w.mu.Unlock()
	w.scheduleRefresh()
	return nil
}

// Role returns the accessibility role of the widget.
func (w *TimerWidget) Role() string {
	return Role
}

// AccessibilityLabel summarizes the remaining time in words.
func (w *TimerWidget) AccessibilityLabel() string {
	w.mu.RLock()
	h, m, s := w.snap.Remaining.Fields()
	w.mu.RUnlock()
	return fmt.Sprintf(i18n.T("%s hours, %s minutes, %s seconds remaining"), h, m, s)
}

// Rings returns the hours, minutes and seconds rings.
func (w *TimerWidget) Rings() (hours, minutes, seconds *TimeRing) {
	return w.hoursRing, w.minutesRing, w.secondsRing
}

// Snapshot returns the state currently rendered.
func (w *TimerWidget) Snapshot() timer.Snapshot {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.snap
}

func (w *TimerWidget) countdownChanged(s timer.Snapshot) {
	w.mu.Lock()
	w.snap = s
	old := w.duration
	w.duration = s.Remaining.String()
	changed := old != w.duration
	w.mu.Unlock()

	if changed && w.OnDurationChanged != nil {
		w.OnDurationChanged(s.Remaining.String())
	}
	w.scheduleRefresh()
}

func (w *TimerWidget) countdownFinished() {
	if fn := w.OnFinished; fn != nil {
		go fn()
	}
}

// scheduleRefresh queues a single re-render however many mutations happen
// before it runs.
func (w *TimerWidget) scheduleRefresh() {
	if !w.dirty.CompareAndSwap(false, true) {
		return
	}
	fyne.Do(func() {
		w.dirty.Store(false)
		w.Refresh()
	})
}

// Refresh re-renders the rings from the current state.
func (w *TimerWidget) Refresh() {
	w.updateRings()
	w.BaseWidget.Refresh()
}

func (w *TimerWidget) updateRings() {
	w.mu.RLock()
	s, p, l := w.snap, w.palette, w.limits
	w.mu.RUnlock()

	h, m, sec := s.Remaining.Fields()

	w.hoursText.Text = h + "h"
	w.minutesText.Text = m + "m"
	w.secondsText.Text = sec + "s"
	w.hoursRing.Label = fmt.Sprintf(i18n.T("%s hours"), h)
	w.minutesRing.Label = fmt.Sprintf(i18n.T("%s minutes"), m)
	w.secondsRing.Label = fmt.Sprintf(i18n.T("%s seconds"), sec)

	w.hoursRing.SetValues(float64(l.Hours), float64(s.Remaining.Hours), p[0])
	w.minutesRing.SetValues(float64(l.Minutes), float64(s.Remaining.Minutes), p[1])
	w.secondsRing.SetValues(float64(l.Seconds), float64(s.Remaining.Seconds), p[2])

	var opacity float64
	if s.State() != timer.StateRunning {
		opacity = timer.StoppedOpacity
	}
	w.colorFilterRect.FillColor = withAlpha(timer.BackgroundColor, uint8(opacity*255))
	w.colorFilterRect.Refresh()
}
