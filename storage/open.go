package storage

import (
	"io"
	"strings"

	"RingTimer/timer"

	"fyne.io/fyne/v2"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// Backend names accepted by Open.
const (
	BackendPreferences = "preferences"
	BackendBadger      = "badger"
	BackendMemory      = "memory"
)

// ErrPreferencesUnavailable is returned when the preferences backend is
// requested without a fyne app.
var ErrPreferencesUnavailable = errors.New("preferences backend needs a fyne app")

var log = logrus.WithField("component", "storage")

// Store is a timer.Store that holds resources.
type Store interface {
	timer.Store
	io.Closer
}

// ValidBackend reports whether name is a known backend.
func ValidBackend(name string) bool {
	switch strings.ToLower(name) {
	case BackendPreferences, BackendBadger, BackendMemory:
		return true
	}
	return false
}

// Open returns the store for backend. prefs may be nil when no fyne app
// exists; path is the badger data directory.
func Open(backend, path string, prefs fyne.Preferences) (Store, error) {
	switch strings.ToLower(backend) {
	case BackendPreferences:
		if prefs == nil {
			return nil, ErrPreferencesUnavailable
		}
		return NewPreferencesStore(prefs), nil
	case BackendBadger:
		if path == "" {
			return nil, errors.New("badger backend needs a data path")
		}
		return NewBadgerStore(path)
	case BackendMemory:
		return NewMemoryStore(), nil
	}
	return nil, errors.Errorf("unknown storage backend %q", backend)
}

// OpenOrFallback is Open, falling back to a MemoryStore on failure. Storage
// problems never keep the timer from running.
func OpenOrFallback(backend, path string, prefs fyne.Preferences) Store {
	s, err := Open(backend, path, prefs)
	if err != nil {
		log.WithError(err).Warnf("Failed to open %s storage, remaining time will not survive a restart", backend)
		return NewMemoryStore()
	}
	return s
}
