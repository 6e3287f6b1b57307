package ui

import (
	"RingTimer/config"
	"RingTimer/i18n"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"
)

// HandleKeyRune handles key presses for the timer window.
func HandleKeyRune(tw *TimerWidget, r rune) {
	switch r {
	case ' ':
		tw.TogglePause()
	case 'r', 'R':
		tw.Reset()
	}
}

// CreateMainWindow builds the window showing tw.
func CreateMainWindow(tw *TimerWidget, fyneApp fyne.App, cfg *config.Config) fyne.Window {
	title := cfg.App.Name
	if title == "" {
		title = fyneApp.Metadata().Name
	}
	if title == "" {
		title = i18n.T("Timer")
	}
	w := fyneApp.NewWindow(title)

	w.Canvas().SetOnTypedRune(func(r rune) { HandleKeyRune(tw, r) })

	w.SetContent(container.New(layout.NewCenterLayout(), tw))
	w.Resize(fyne.NewSize(float32(cfg.App.WindowWidth), float32(cfg.App.WindowHeight)))
	w.SetFixedSize(true)
	return w
}

// TappableContainer forwards primary and secondary taps on its content.
type TappableContainer struct {
	widget.BaseWidget
	Content           fyne.CanvasObject
	OnTappedPrimary   func()
	OnTappedSecondary func(e *fyne.PointEvent)
}

func NewTappableContainer(c fyne.CanvasObject, onP func(), onS func(e *fyne.PointEvent)) *TappableContainer {
	t := &TappableContainer{
		Content:           c,
		OnTappedPrimary:   onP,
		OnTappedSecondary: onS,
	}
	t.ExtendBaseWidget(t)
	return t
}

func (t *TappableContainer) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(t.Content)
}

func (t *TappableContainer) Tapped(_ *fyne.PointEvent) {
	if t.OnTappedPrimary != nil {
		t.OnTappedPrimary()
	}
}

func (t *TappableContainer) TappedSecondary(e *fyne.PointEvent) {
	if t.OnTappedSecondary != nil {
		t.OnTappedSecondary(e)
	}
}
