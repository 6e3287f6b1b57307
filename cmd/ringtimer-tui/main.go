// Command ringtimer-tui runs the ring countdown in a terminal.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"RingTimer/audio"
	"RingTimer/config"
	"RingTimer/control"
	"RingTimer/i18n"
	"RingTimer/logging"
	"RingTimer/storage"
	"RingTimer/timer"
	"RingTimer/tui"

	"github.com/gdamore/tcell/v2"
	"github.com/sirupsen/logrus"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "ringtimer-tui: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfgManager, err := config.NewManager(os.Getenv(config.EnvConfig))
	if err != nil {
		return err
	}
	cfg := cfgManager.GetConfig()

	// stderr belongs to the terminal UI, so logs go to a file
	logPath := filepath.Join(filepath.Dir(cfgManager.Path()), "ringtimer-tui.log")
	logFile, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return err
	}
	defer logFile.Close()
	if err := logging.Setup(cfg.App.LogLevel, logFile); err != nil {
		logrus.WithError(err).Warn("Falling back to info logging")
	}
	i18n.Init(cfg.App.Language)

	// there are no fyne preferences outside the desktop app
	backend := cfg.Storage.Backend
	if backend == storage.BackendPreferences {
		backend = storage.BackendBadger
	}
	store := storage.OpenOrFallback(backend, cfg.Storage.Path, nil)
	defer store.Close()

	d, err := timer.ParseDuration(cfg.Timer.Duration)
	if err != nil {
		return err
	}
	palette, err := tui.NewPalette(cfg.Timer.Colors)
	if err != nil {
		return err
	}

	countdown := timer.NewCountdown(store, cfg.Storage.Key)
	countdown.SetPaused(cfg.Timer.Paused)
	countdown.Restore(d)

	chime := audio.NewChime(cfg.Audio.Chime, cfg.Audio.Volume)
	countdown.OnFinish(chime.Play)

	screen, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := screen.Init(); err != nil {
		return err
	}
	defer screen.Fini()

	runner := control.NewRunner(countdown, nil, control.DefaultInterval)
	app := tui.NewApp(screen, countdown, runner, palette, cfg.Limits())
	if err := runner.Start(); err != nil {
		return err
	}
	defer runner.Stop()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return app.Run(ctx)
}
