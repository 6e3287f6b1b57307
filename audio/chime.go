// Package audio plays the chime that marks the end of a countdown.
package audio

import (
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

const (
	sampleRate    beep.SampleRate = 44100
	chimeFreq                     = 880.0
	chimeDuration                 = 600 * time.Millisecond
)

var log = logrus.WithField("component", "audio")

// Chime plays a short tone. A Chime whose speaker could not be initialized
// stays silent.
type Chime struct {
	mu      sync.Mutex
	enabled bool
	volume  float64
}

// NewChime initializes the speaker when enabled. volume is in the
// effects.Volume scale (0 is unchanged, negative is quieter).
func NewChime(enabled bool, volume float64) *Chime {
	c := &Chime{volume: volume}
	if !enabled {
		return c
	}
	if err := speaker.Init(sampleRate, sampleRate.N(time.Second/10)); err != nil {
		log.WithError(err).Warn("Audio disabled: failed to initialize speaker")
		return c
	}
	c.enabled = true
	return c
}

// Enabled reports whether the chime can be heard.
func (c *Chime) Enabled() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.enabled
}

// SetVolume changes the chime volume.
func (c *Chime) SetVolume(v float64) {
	c.mu.Lock()
	c.volume = v
	c.mu.Unlock()
}

// Play plays the chime without blocking.
func (c *Chime) Play() {
	c.mu.Lock()
	enabled, volume := c.enabled, c.volume
	c.mu.Unlock()
	if !enabled {
		return
	}

	s, err := Tone(sampleRate, chimeFreq, chimeDuration, volume)
	if err != nil {
		log.WithError(err).Warn("Failed to build chime")
		return
	}
	speaker.Play(s)
}

// Tone returns a sine tone of freq Hz lasting d, scaled by volume.
func Tone(sr beep.SampleRate, freq float64, d time.Duration, volume float64) (beep.Streamer, error) {
	sine, err := generators.SineTone(sr, freq)
	if err != nil {
		return nil, errors.Wrap(err, "sine tone")
	}
	return &effects.Volume{
		Streamer: beep.Take(sr.N(d), sine),
		Base:     2,
		Volume:   volume,
		Silent:   false,
	}, nil
}
