package config

import (
	"context"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/pkg/errors"
)

// reloadDelay coalesces the burst of events editors produce on save.
const reloadDelay = 100 * time.Millisecond

// ConfigChangeCallback receives every valid configuration reloaded from disk.
type ConfigChangeCallback func(*Config)

// WatchConfig calls callback with the new configuration each time the file
// changes, until ctx is done. Invalid files are logged and skipped. The
// directory is watched so editors that replace the file are seen too.
func (m *Manager) WatchConfig(ctx context.Context, callback ConfigChangeCallback) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return errors.Wrap(err, "create watcher")
	}
	if err := watcher.Add(filepath.Dir(m.configPath)); err != nil {
		watcher.Close()
		return errors.Wrap(err, "watch config directory")
	}

	go func() {
		defer watcher.Close()

		var pending <-chan time.Time
		for {
			select {
			case <-ctx.Done():
				return
			case ev, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Clean(ev.Name) != filepath.Clean(m.configPath) {
					continue
				}
				if ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create) || ev.Has(fsnotify.Rename) {
					pending = time.After(reloadDelay)
				}
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				log.WithError(err).Warn("Config watcher error")
			case <-pending:
				pending = nil
				if cfg := m.reload(); cfg != nil {
					callback(cfg)
				}
			}
		}
	}()
	return nil
}

func (m *Manager) reload() *Config {
	cfg, err := readConfig(m.configPath)
	if err != nil {
		log.WithError(err).Warn("Failed to reload configuration")
		return nil
	}
	cfg.ApplyEnv()
	if err := cfg.Validate(); err != nil {
		log.WithError(err).Warn("Ignoring invalid configuration")
		return nil
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if cfg.Storage.Path == "" {
		cfg.Storage.Path = m.config.Storage.Path
	}
	log.Info("Configuration reloaded")
	m.config = cfg
	return cfg
}
