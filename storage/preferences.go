package storage

import (
	"RingTimer/timer"

	"fyne.io/fyne/v2"
)

// PreferencesStore persists values in the fyne application preferences,
// which are saved per application ID.
type PreferencesStore struct {
	prefs fyne.Preferences
}

// NewPreferencesStore wraps prefs.
func NewPreferencesStore(prefs fyne.Preferences) *PreferencesStore {
	return &PreferencesStore{prefs: prefs}
}

// Get retrieves a value for a key. Preferences cannot tell an empty string
// from a missing key, so both are reported as not found.
func (s *PreferencesStore) Get(key string) (string, error) {
	v := s.prefs.String(key)
	if v == "" {
		return "", timer.ErrNotFound
	}
	return v, nil
}

// Set stores a value for a key
func (s *PreferencesStore) Set(key, value string) error {
	s.prefs.SetString(key, value)
	return nil
}

// Close is a no-op, fyne saves preferences itself.
func (s *PreferencesStore) Close() error {
	return nil
}
