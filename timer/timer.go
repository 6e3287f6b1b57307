// Package timer contains the countdown domain logic: the Duration value,
// the Countdown state machine and the Store it persists to.
//
// Maintenance notes:
//   - Countdown fields are read by the render side and written by the tick
//     goroutine, so every access goes through mu. Listeners are always
//     called after mu is released; a listener may call Snapshot.
//   - Prefer mutating a running Countdown through control.Runner so ticks
//     and commands stay ordered.
package timer

import (
	"sync"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// TimerState defines the possible states of a countdown.
type TimerState int

const (
	StateRunning TimerState = iota
	StatePaused
	StateFinished
)

func (s TimerState) String() string {
	switch s {
	case StateRunning:
		return "running"
	case StatePaused:
		return "paused"
	case StateFinished:
		return "finished"
	}
	return "unknown"
}

var log = logrus.WithField("component", "countdown")

// Countdown represents a single countdown's state and logic.
type Countdown struct {
	store Store
	key   string

	mu        sync.RWMutex
	remaining Duration
	initial   Duration
	paused    bool
	finished  bool
	detached  bool

	onChange func(Snapshot)
	onFinish func()
}

// NewCountdown creates a countdown persisting under key. A nil store
// disables persistence.
func NewCountdown(store Store, key string) *Countdown {
	if key == "" {
		key = StorageKey
	}
	return &Countdown{store: store, key: key}
}

// OnChange registers the listener called after every state change.
func (c *Countdown) OnChange(fn func(Snapshot)) {
	c.mu.Lock()
	c.onChange = fn
	c.mu.Unlock()
}

// OnFinish registers the listener called once when the countdown hits zero.
func (c *Countdown) OnFinish(fn func()) {
	c.mu.Lock()
	c.onFinish = fn
	c.mu.Unlock()
}

// Configure sets the configured duration and the remaining time without
// touching the store or notifying listeners.
func (c *Countdown) Configure(d Duration) {
	c.mu.Lock()
	c.initial = d
	c.remaining = d
	c.finished = d.IsZero()
	c.mu.Unlock()
}

// Restore loads the persisted remaining time, falling back to configured
// when nothing usable is stored. It returns the duration in effect.
func (c *Countdown) Restore(configured Duration) Duration {
	d := configured
	if saved, ok := c.load(); ok {
		d = saved
	}

	c.mu.Lock()
	c.initial = configured
	c.remaining = d
	c.finished = d.IsZero()
	c.mu.Unlock()

	c.notify()
	return d
}

func (c *Countdown) load() (Duration, bool) {
	if c.store == nil {
		return Duration{}, false
	}
	raw, err := c.store.Get(c.key)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			log.WithError(err).Warn("Failed to read persisted time, using configured duration")
		}
		return Duration{}, false
	}
	d, err := ParseDuration(raw)
	if err != nil {
		log.WithError(err).Warn("Ignoring malformed persisted time")
		return Duration{}, false
	}
	log.Infof("Resuming from persisted time %s", d)
	return d, true
}

// SetPersist turns storage writes on or off. While off, mutations stay in
// memory and the store keeps the last persisted value.
func (c *Countdown) SetPersist(on bool) {
	c.mu.Lock()
	c.detached = !on
	c.mu.Unlock()
}

func (c *Countdown) persist(d Duration) {
	c.mu.RLock()
	off := c.detached
	c.mu.RUnlock()
	if c.store == nil || off {
		return
	}
	if err := c.store.Set(c.key, d.String()); err != nil {
		log.WithError(err).Warn("Failed to persist remaining time")
	}
}

// Tick processes one second of time passing. It reports whether the
// remaining time changed.
func (c *Countdown) Tick() bool {
	c.mu.Lock()
	if c.paused || c.finished {
		c.mu.Unlock()
		return false
	}
	c.remaining = c.remaining.Minus(1)
	remaining := c.remaining
	done := remaining.IsZero()
	c.finished = done
	onFinish := c.onFinish
	c.mu.Unlock()

	c.persist(remaining)
	c.notify()

	if done {
		log.Info("Countdown finished")
		if onFinish != nil {
			onFinish()
		}
	}
	return true
}

// SetPaused pauses or resumes the countdown.
func (c *Countdown) SetPaused(paused bool) {
	c.mu.Lock()
	changed := c.paused != paused
	c.paused = paused
	c.mu.Unlock()
	if changed {
		c.notify()
	}
}

// Pause stops the countdown.
func (c *Countdown) Pause() { c.SetPaused(true) }

// Resume continues a paused countdown.
func (c *Countdown) Resume() { c.SetPaused(false) }

// SetDuration restarts the countdown from d and persists it.
func (c *Countdown) SetDuration(d Duration) {
	c.mu.Lock()
	c.initial = d
	c.remaining = d
	c.finished = d.IsZero()
	c.mu.Unlock()

	c.persist(d)
	c.notify()
}

// Reset puts the countdown back to its configured duration.
func (c *Countdown) Reset() {
	c.mu.Lock()
	c.remaining = c.initial
	c.finished = c.initial.IsZero()
	d := c.remaining
	c.mu.Unlock()

	c.persist(d)
	c.notify()
}

func (c *Countdown) notify() {
	c.mu.RLock()
	fn := c.onChange
	c.mu.RUnlock()
	if fn != nil {
		fn(c.Snapshot())
	}
}

// Snapshot is an atomic copy of the countdown fields the UI renders.
type Snapshot struct {
	Remaining Duration
	Initial   Duration
	Paused    bool
	Finished  bool
}

// State derives the TimerState of the snapshot.
func (s Snapshot) State() TimerState {
	switch {
	case s.Finished:
		return StateFinished
	case s.Paused:
		return StatePaused
	}
	return StateRunning
}

// Snapshot returns a consistent snapshot of the countdown.
func (c *Countdown) Snapshot() Snapshot {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return Snapshot{
		Remaining: c.remaining,
		Initial:   c.initial,
		Paused:    c.paused,
		Finished:  c.finished,
	}
}

// Remaining returns the remaining time in a thread-safe manner.
func (c *Countdown) Remaining() Duration {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.remaining
}

// Paused reports whether the countdown is paused.
func (c *Countdown) Paused() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.paused
}
