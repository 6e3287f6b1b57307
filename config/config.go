// Package config loads the YAML configuration of the timer, applies
// environment overrides and watches the file for changes.
package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	"RingTimer/storage"
	"RingTimer/timer"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// Environment overrides.
const (
	EnvConfig   = "RINGTIMER_CONFIG"
	EnvDuration = "RINGTIMER_DURATION"
	EnvPaused   = "RINGTIMER_PAUSED"
	EnvStore    = "RINGTIMER_STORE"
	EnvLang     = "RINGTIMER_LANG"
	EnvLogLevel = "RINGTIMER_LOG_LEVEL"
)

var log = logrus.WithField("component", "config")

type Config struct {
	App     AppConfig     `yaml:"app"`
	Timer   TimerConfig   `yaml:"timer"`
	Storage StorageConfig `yaml:"storage"`
	Audio   AudioConfig   `yaml:"audio"`
	Theme   ThemeConfig   `yaml:"theme"`
}

type AppConfig struct {
	Name         string `yaml:"name"`
	WindowWidth  int    `yaml:"window_width"`
	WindowHeight int    `yaml:"window_height"`
	Language     string `yaml:"language"`
	LogLevel     string `yaml:"log_level"`
}

// TimerConfig mirrors the widget attributes.
type TimerConfig struct {
	Duration     string `yaml:"duration"`
	Paused       bool   `yaml:"paused"`
	timer.Colors `yaml:",inline"`
	HoursLimit   int `yaml:"hours_limit"`
}

type StorageConfig struct {
	Backend string `yaml:"backend"`
	Path    string `yaml:"path"`
	Key     string `yaml:"key"`
}

type AudioConfig struct {
	Chime  bool    `yaml:"chime"`
	Volume float64 `yaml:"volume"`
}

type ThemeConfig struct {
	DarkMode bool `yaml:"dark_mode"`
}

// DefaultConfig returns the built-in configuration.
func DefaultConfig() *Config {
	return &Config{
		App: AppConfig{
			Name:         "RingTimer",
			WindowWidth:  timer.WindowWidth,
			WindowHeight: timer.WindowHeight,
			LogLevel:     "info",
		},
		Timer: TimerConfig{
			Duration:   "00:25:00",
			Colors:     timer.DefaultColors(),
			HoursLimit: timer.DefaultRingLimits().Hours,
		},
		Storage: StorageConfig{
			Backend: storage.BackendPreferences,
			Key:     timer.StorageKey,
		},
		Audio: AudioConfig{
			Chime: true,
		},
		Theme: ThemeConfig{
			DarkMode: true,
		},
	}
}

// Validate checks every field the widget consumes.
func (c *Config) Validate() error {
	if _, err := timer.ParseDuration(c.Timer.Duration); err != nil {
		return errors.Wrap(err, "timer.duration")
	}
	if err := c.Timer.Colors.Validate(); err != nil {
		return errors.Wrap(err, "timer colors")
	}
	if c.Timer.HoursLimit <= 0 {
		return errors.Errorf("timer.hours_limit must be positive, got %d", c.Timer.HoursLimit)
	}
	if !storage.ValidBackend(c.Storage.Backend) {
		return errors.Errorf("unknown storage.backend %q", c.Storage.Backend)
	}
	if c.App.WindowWidth <= 0 || c.App.WindowHeight <= 0 {
		return errors.New("app window size must be positive")
	}
	return nil
}

// Limits returns the ring limits configured for the widget.
func (c *Config) Limits() timer.RingLimits {
	l := timer.DefaultRingLimits()
	l.Hours = c.Timer.HoursLimit
	return l
}

// ApplyEnv overrides fields from the environment, loading a .env file in
// the working directory first if there is one.
func (c *Config) ApplyEnv() {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(errors.Cause(err)) {
		log.WithError(err).Warn("Error loading .env file")
	}

	if v := strings.TrimSpace(os.Getenv(EnvDuration)); v != "" {
		c.Timer.Duration = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvPaused)); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			c.Timer.Paused = b
		} else {
			log.Warnf("Ignoring %s=%q: %v", EnvPaused, v, err)
		}
	}
	if v := strings.TrimSpace(os.Getenv(EnvStore)); v != "" {
		c.Storage.Backend = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvLang)); v != "" {
		c.App.Language = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogLevel)); v != "" {
		c.App.LogLevel = v
	}
}

type Manager struct {
	mu         sync.RWMutex
	config     *Config
	configPath string
}

// NewManager loads the configuration at path, or at the default location
// under the user's home when path is empty. A missing file is created with
// the defaults; a file that exists but does not parse is left untouched and
// reported.
func NewManager(path string) (*Manager, error) {
	if path == "" {
		configDir, err := getConfigDir()
		if err != nil {
			return nil, err
		}
		path = filepath.Join(configDir, "config.yaml")
	}

	manager := &Manager{
		configPath: path,
	}

	// Load or create the configuration
	if err := manager.loadConfig(); err != nil {
		if !os.IsNotExist(errors.Cause(err)) {
			return nil, err
		}
		log.Infof("Writing default configuration to %s", path)
		manager.config = DefaultConfig()
		if err := manager.SaveConfig(); err != nil {
			return nil, err
		}
	}

	manager.config.ApplyEnv()
	if err := manager.config.Validate(); err != nil {
		return nil, err
	}
	if manager.config.Storage.Path == "" {
		manager.config.Storage.Path = filepath.Join(filepath.Dir(path), "data")
	}
	return manager, nil
}

func (m *Manager) loadConfig() error {
	config, err := readConfig(m.configPath)
	if err != nil {
		return err
	}
	m.config = config
	return nil
}

// readConfig reads a file on top of the defaults so missing keys keep
// their default values.
func readConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	config := DefaultConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, errors.Wrapf(err, "parse %s", path)
	}
	return config, nil
}

func (m *Manager) SaveConfig() error {
	data, err := yaml.Marshal(m.GetConfig())
	if err != nil {
		return err
	}

	// Make sure the config directory exists
	configDir := filepath.Dir(m.configPath)
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return err
	}

	return os.WriteFile(m.configPath, data, 0644)
}

func (m *Manager) GetConfig() *Config {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.config
}

// Path returns the location of the configuration file.
func (m *Manager) Path() string {
	return m.configPath
}

func getConfigDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}

	return filepath.Join(homeDir, ".ringtimer"), nil
}

// UpdateTimerConfig replaces the timer section and saves the file.
func (m *Manager) UpdateTimerConfig(config TimerConfig) error {
	m.mu.Lock()
	updated := *m.config
	updated.Timer = config
	if err := updated.Validate(); err != nil {
		m.mu.Unlock()
		return err
	}
	m.config = &updated
	m.mu.Unlock()
	return m.SaveConfig()
}
