// Package main contains the desktop application wiring and the AppManager,
// which owns the timer widget, its store and the finish chime.
//
// Maintenance notes / tips:
//   - The widget ticks on its own goroutine (see control.Runner). Everything
//     the AppManager touches on the widget goes through its thread-safe
//     setters, so configuration reloads may arrive from any goroutine.
//   - Closing the window detaches the widget before the store is closed, so
//     no write can reach a closed badger database.
package main

import (
	"sync"

	"RingTimer/audio"
	"RingTimer/config"
	"RingTimer/storage"
	"RingTimer/ui"

	"fyne.io/fyne/v2"
	"github.com/sirupsen/logrus"
)

// AppID identifies the preferences of the application.
const AppID = "io.github.ringtimer"

var log = logrus.WithField("component", "app")

// AppManager is the main application struct, holding all state.
type AppManager struct {
	mainWindow fyne.Window
	config     *config.Manager
	store      storage.Store
	chime      *audio.Chime
	timer      *ui.TimerWidget

	mu      sync.Mutex
	applied config.TimerConfig
	closed  bool
}

// NewAppManager creates a new application manager.
func NewAppManager(cfgManager *config.Manager, fyneApp fyne.App) (*AppManager, error) {
	cfg := cfgManager.GetConfig()

	a := &AppManager{config: cfgManager, applied: cfg.Timer}
	a.store = storage.OpenOrFallback(cfg.Storage.Backend, cfg.Storage.Path, fyneApp.Preferences())
	a.chime = audio.NewChime(cfg.Audio.Chime, cfg.Audio.Volume)

	tw, err := ui.NewTimerWidget(ui.Options{
		Duration:     cfg.Timer.Duration,
		Paused:       cfg.Timer.Paused,
		HoursColor:   cfg.Timer.Hours,
		MinutesColor: cfg.Timer.Minutes,
		SecondsColor: cfg.Timer.Seconds,
		HoursLimit:   cfg.Timer.HoursLimit,
		Store:        a.store,
		StorageKey:   cfg.Storage.Key,
	})
	if err != nil {
		a.store.Close()
		return nil, err
	}
	tw.OnFinished = a.finished
	a.timer = tw

	log.Infof("Timer configured for %s with %s storage", cfg.Timer.Duration, cfg.Storage.Backend)
	return a, nil
}

// Timer returns the timer widget.
func (a *AppManager) Timer() *ui.TimerWidget {
	return a.timer
}

// ApplyConfig pushes a reloaded configuration to the live widget. Only the
// fields that changed since the last apply are touched, so an edit of the
// colors does not restart the countdown.
func (a *AppManager) ApplyConfig(cfg *config.Config) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.closed {
		return
	}
	prev := a.applied
	next := cfg.Timer

	if next.Hours != prev.Hours {
		a.logIfErr(a.timer.SetHoursColor(next.Hours), "hours color")
	}
	if next.Minutes != prev.Minutes {
		a.logIfErr(a.timer.SetMinutesColor(next.Minutes), "minutes color")
	}
	if next.Seconds != prev.Seconds {
		a.logIfErr(a.timer.SetSecondsColor(next.Seconds), "seconds color")
	}
	if next.HoursLimit != prev.HoursLimit {
		a.logIfErr(a.timer.SetHoursLimit(next.HoursLimit), "hours limit")
	}
	if next.Duration != prev.Duration {
		a.logIfErr(a.timer.SetDuration(next.Duration), "duration")
	}
	if next.Paused != prev.Paused {
		a.timer.SetPaused(next.Paused)
	}
	a.chime.SetVolume(cfg.Audio.Volume)

	a.applied = next
}

// finished plays the chime and brings the window forward.
func (a *AppManager) finished() {
	a.chime.Play()
	if w := a.mainWindow; w != nil {
		fyne.Do(w.RequestFocus)
	}
}

func (a *AppManager) logIfErr(err error, what string) {
	if err != nil {
		log.WithError(err).Warnf("Failed to apply %s", what)
	}
}

// Shutdown detaches the widget and closes the store.
func (a *AppManager) Shutdown() {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.closed {
		return
	}
	a.closed = true

	a.timer.Detach()
	if err := a.store.Close(); err != nil {
		log.WithError(err).Warn("Failed to close store")
	}
}
