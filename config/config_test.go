package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"RingTimer/storage"
	"RingTimer/timer"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfigIsValid(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, "#0A78CC", cfg.Timer.Hours)
	assert.Equal(t, "#73A321", cfg.Timer.Minutes)
	assert.Equal(t, "#875AE0", cfg.Timer.Seconds)
	assert.Equal(t, timer.RingLimits{Hours: 8, Minutes: 60, Seconds: 60}, cfg.Limits())
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{name: "Bad duration", mutate: func(c *Config) { c.Timer.Duration = "soon" }},
		{name: "Bad color", mutate: func(c *Config) { c.Timer.Seconds = "purple" }},
		{name: "Zero hours limit", mutate: func(c *Config) { c.Timer.HoursLimit = 0 }},
		{name: "Unknown backend", mutate: func(c *Config) { c.Storage.Backend = "cookies" }},
		{name: "Window size", mutate: func(c *Config) { c.App.WindowWidth = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestNewManagerWritesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "config.yaml")

	m, err := NewManager(path)
	require.NoError(t, err)
	assert.FileExists(t, path)
	assert.Equal(t, "00:25:00", m.GetConfig().Timer.Duration)
	assert.Equal(t, filepath.Join(filepath.Dir(path), "data"), m.GetConfig().Storage.Path)
	assert.Equal(t, path, m.Path())
}

func TestNewManagerReadsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := `
timer:
  duration: "01:30:00"
  paused: true
  minutes_color: "#ff0000"
  hours_limit: 12
storage:
  backend: memory
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0644))

	m, err := NewManager(path)
	require.NoError(t, err)
	cfg := m.GetConfig()

	assert.Equal(t, "01:30:00", cfg.Timer.Duration)
	assert.True(t, cfg.Timer.Paused)
	assert.Equal(t, "#ff0000", cfg.Timer.Minutes)
	assert.Equal(t, "#0A78CC", cfg.Timer.Hours, "missing keys keep defaults")
	assert.Equal(t, 12, cfg.Limits().Hours)
	assert.Equal(t, storage.BackendMemory, cfg.Storage.Backend)
}

func TestNewManagerRejectsInvalidFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("timer:\n  duration: \"1:99:00\"\n"), 0644))

	_, err := NewManager(path)
	assert.ErrorIs(t, err, timer.ErrOutOfRange)
}

func TestNewManagerKeepsUnparseableFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := []byte("timer:\n  duration: \"00:10:00\n")
	require.NoError(t, os.WriteFile(path, data, 0644))

	_, err := NewManager(path)
	require.Error(t, err)

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, data, got)
}

func TestApplyEnv(t *testing.T) {
	t.Setenv(EnvDuration, "00:00:30")
	t.Setenv(EnvPaused, "true")
	t.Setenv(EnvStore, "badger")
	t.Setenv(EnvLang, "pt")
	t.Setenv(EnvLogLevel, "debug")

	cfg := DefaultConfig()
	cfg.ApplyEnv()

	assert.Equal(t, "00:00:30", cfg.Timer.Duration)
	assert.True(t, cfg.Timer.Paused)
	assert.Equal(t, "badger", cfg.Storage.Backend)
	assert.Equal(t, "pt", cfg.App.Language)
	assert.Equal(t, "debug", cfg.App.LogLevel)
}

func TestApplyEnvIgnoresBadPaused(t *testing.T) {
	t.Setenv(EnvPaused, "maybe")
	cfg := DefaultConfig()
	cfg.ApplyEnv()
	assert.False(t, cfg.Timer.Paused)
}

func TestUpdateTimerConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	m, err := NewManager(path)
	require.NoError(t, err)

	tc := m.GetConfig().Timer
	tc.Duration = "02:00:00"
	require.NoError(t, m.UpdateTimerConfig(tc))

	again, err := NewManager(path)
	require.NoError(t, err)
	assert.Equal(t, "02:00:00", again.GetConfig().Timer.Duration)

	tc.Duration = "bad"
	assert.Error(t, m.UpdateTimerConfig(tc))
}

func TestWatchConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	m, err := NewManager(path)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	changes := make(chan *Config, 4)
	require.NoError(t, m.WatchConfig(ctx, func(c *Config) { changes <- c }))

	// invalid content is skipped
	require.NoError(t, os.WriteFile(path, []byte("timer:\n  seconds_color: nope\n"), 0644))
	time.Sleep(3 * reloadDelay)
	require.NoError(t, os.WriteFile(path, []byte("timer:\n  seconds_color: \"#00ff00\"\n  paused: true\n"), 0644))

	select {
	case c := <-changes:
		assert.Equal(t, "#00ff00", c.Timer.Seconds)
		assert.True(t, c.Timer.Paused)
		assert.Equal(t, c, m.GetConfig())
	case <-time.After(5 * time.Second):
		t.Fatal("no configuration change delivered")
	}
}
