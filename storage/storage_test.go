package storage

import (
	"testing"

	"RingTimer/timer"

	"fyne.io/fyne/v2/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func exerciseStore(t *testing.T, s timer.Store) {
	t.Helper()

	_, err := s.Get(timer.StorageKey)
	assert.ErrorIs(t, err, timer.ErrNotFound)

	require.NoError(t, s.Set(timer.StorageKey, "01:02:03"))
	v, err := s.Get(timer.StorageKey)
	require.NoError(t, err)
	assert.Equal(t, "01:02:03", v)

	require.NoError(t, s.Set(timer.StorageKey, "01:02:02"))
	v, err = s.Get(timer.StorageKey)
	require.NoError(t, err)
	assert.Equal(t, "01:02:02", v)

	_, err = s.Get("other-key")
	assert.ErrorIs(t, err, timer.ErrNotFound)
}

func TestMemoryStore(t *testing.T) {
	exerciseStore(t, NewMemoryStore())
}

func TestPreferencesStore(t *testing.T) {
	a := test.NewTempApp(t)
	exerciseStore(t, NewPreferencesStore(a.Preferences()))
}

func TestBadgerStoreInMemory(t *testing.T) {
	s, err := NewInMemoryBadgerStore()
	require.NoError(t, err)
	defer s.Close()

	exerciseStore(t, s)

	require.NoError(t, s.Delete(timer.StorageKey))
	_, err = s.Get(timer.StorageKey)
	assert.ErrorIs(t, err, timer.ErrNotFound)
}

func TestBadgerStoreSurvivesReopen(t *testing.T) {
	dir := t.TempDir()

	s, err := NewBadgerStore(dir)
	require.NoError(t, err)
	require.NoError(t, s.Set(timer.StorageKey, "00:42:00"))
	require.NoError(t, s.Close())

	s, err = NewBadgerStore(dir)
	require.NoError(t, err)
	defer s.Close()

	v, err := s.Get(timer.StorageKey)
	require.NoError(t, err)
	assert.Equal(t, "00:42:00", v)
}

func TestOpen(t *testing.T) {
	s, err := Open(BackendMemory, "", nil)
	require.NoError(t, err)
	assert.IsType(t, &MemoryStore{}, s)

	_, err = Open(BackendPreferences, "", nil)
	assert.ErrorIs(t, err, ErrPreferencesUnavailable)

	_, err = Open("redis", "", nil)
	assert.Error(t, err)

	_, err = Open(BackendBadger, "", nil)
	assert.Error(t, err)

	a := test.NewTempApp(t)
	s, err = Open("Preferences", "", a.Preferences())
	require.NoError(t, err)
	assert.IsType(t, &PreferencesStore{}, s)

	s, err = Open(BackendBadger, t.TempDir(), nil)
	require.NoError(t, err)
	assert.IsType(t, &BadgerStore{}, s)
	assert.NoError(t, s.Close())
}

func TestOpenOrFallback(t *testing.T) {
	s := OpenOrFallback(BackendPreferences, "", nil)
	assert.IsType(t, &MemoryStore{}, s)
	exerciseStore(t, s)
}

func TestValidBackend(t *testing.T) {
	assert.True(t, ValidBackend("badger"))
	assert.True(t, ValidBackend("MEMORY"))
	assert.False(t, ValidBackend("sqlite"))
}
