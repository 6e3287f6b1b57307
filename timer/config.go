package timer

import (
	"image/color"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/pkg/errors"
)

// StorageKey is the key the remaining time is persisted under.
const StorageKey = "time-remaining"

// Default ring colors.
const (
	DefaultHoursColor   = "#0A78CC"
	DefaultMinutesColor = "#73A321"
	DefaultSecondsColor = "#875AE0"
)

// UI constants
const (
	FontSizeLabel float32 = 22.0 // Ring label

	// Dimensions
	RingSize      = 120
	RingThickness = 0.16 // fraction of the ring radius
	WindowWidth   = 420
	WindowHeight  = 180
)

var (
	// BackgroundColor is the base of the filter laid over a stopped timer.
	BackgroundColor = color.NRGBA{R: 0x1e, G: 0x1e, B: 0x1e, A: 0xff}

	// TrackAlpha is the opacity of the unfilled part of a ring.
	TrackAlpha uint8 = 0x40

	// StoppedOpacity dims the rings while paused or finished.
	StoppedOpacity = 0.65
)

// Colors holds the CSS-style hex colors of the three rings.
type Colors struct {
	Hours   string `yaml:"hours_color"`
	Minutes string `yaml:"minutes_color"`
	Seconds string `yaml:"seconds_color"`
}

// DefaultColors returns the stock ring colors.
func DefaultColors() Colors {
	return Colors{Hours: DefaultHoursColor, Minutes: DefaultMinutesColor, Seconds: DefaultSecondsColor}
}

// Validate checks that every color parses.
func (c Colors) Validate() error {
	for _, s := range []string{c.Hours, c.Minutes, c.Seconds} {
		if _, err := ParseColor(s); err != nil {
			return err
		}
	}
	return nil
}

// RingLimits holds the maximum value each ring displays as full.
type RingLimits struct {
	Hours   int
	Minutes int
	Seconds int
}

// DefaultRingLimits caps the hours ring at a working day.
func DefaultRingLimits() RingLimits {
	return RingLimits{Hours: 8, Minutes: 60, Seconds: 60}
}

// ParseColor parses a #RRGGBB (or #RGB) hex color.
func ParseColor(s string) (color.NRGBA, error) {
	c, err := colorful.Hex(s)
	if err != nil {
		return color.NRGBA{}, errors.Wrapf(err, "invalid color %q", s)
	}
	r, g, b := c.RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: 0xff}, nil
}
