package main

import (
	"context"
	"os"

	"RingTimer/config"
	"RingTimer/i18n"
	"RingTimer/logging"
	"RingTimer/ui"

	"fyne.io/fyne/v2/app"
	"github.com/sirupsen/logrus"
)

func main() {
	cfgManager, err := config.NewManager(os.Getenv(config.EnvConfig))
	if err != nil {
		logrus.Fatalf("Failed to load configuration: %v", err)
	}
	cfg := cfgManager.GetConfig()

	if err := logging.Setup(cfg.App.LogLevel, nil); err != nil {
		logrus.WithError(err).Warn("Falling back to info logging")
	}
	i18n.Init(cfg.App.Language)

	fyneApp := app.NewWithID(AppID)
	fyneApp.Settings().SetTheme(ui.NewTimerTheme(cfg.Theme.DarkMode))

	a, err := NewAppManager(cfgManager, fyneApp)
	if err != nil {
		logrus.Fatalf("Failed to create timer: %v", err)
	}

	w := ui.CreateMainWindow(a.Timer(), fyneApp, cfg)
	a.mainWindow = w

	ctx, cancel := context.WithCancel(context.Background())
	w.SetOnClosed(func() {
		cancel()
		a.Shutdown()
	})

	if err := cfgManager.WatchConfig(ctx, a.ApplyConfig); err != nil {
		logrus.WithError(err).Warn("Configuration changes will need a restart")
	}

	if err := a.Timer().Attach(); err != nil {
		logrus.Fatalf("Failed to start timer: %v", err)
	}

	w.ShowAndRun()
}
