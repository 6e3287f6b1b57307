package control

import (
	"context"
	"sync"
	"time"

	"RingTimer/timer"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// ErrAlreadyRunning is returned when Start is called on a running Runner.
var ErrAlreadyRunning = errors.New("runner already running")

// DefaultInterval is the tick cadence of the countdown.
const DefaultInterval = time.Second

var log = logrus.WithField("component", "runner")

// Runner owns the periodic tick of one Countdown. Ticks and commands are
// handled by a single goroutine so they never overlap.
type Runner struct {
	countdown *timer.Countdown
	clock     timer.Clock
	interval  time.Duration

	mu     sync.Mutex
	cmdCh  chan Command
	ctx    context.Context
	cancel context.CancelFunc
	done   chan struct{}
}

// NewRunner creates a stopped runner. A nil clock uses timer.SystemClock and
// a non-positive interval uses DefaultInterval.
func NewRunner(c *timer.Countdown, clock timer.Clock, interval time.Duration) *Runner {
	if clock == nil {
		clock = timer.SystemClock
	}
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Runner{countdown: c, clock: clock, interval: interval}
}

// Start begins ticking.
func (r *Runner) Start() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.done != nil {
		return ErrAlreadyRunning
	}

	ticker := r.clock.NewTicker(r.interval)
	r.ctx, r.cancel = context.WithCancel(context.Background())
	r.cmdCh = make(chan Command)
	r.done = make(chan struct{})

	go r.loop(r.ctx, ticker, r.cmdCh, r.done)
	log.Debugf("Started ticking every %s", r.interval)
	return nil
}

// Stop cancels the tick and waits for the loop to exit. Once Stop returns
// the countdown is never ticked again by this runner. Stop is idempotent.
func (r *Runner) Stop() {
	r.mu.Lock()
	cancel, done := r.cancel, r.done
	r.cancel, r.done, r.ctx, r.cmdCh = nil, nil, nil, nil
	r.mu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	<-done
	log.Debug("Stopped ticking")
}

// Running reports whether the loop is active.
func (r *Runner) Running() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.done != nil
}

// Do performs cmd. While running the command is serialized with ticks by the
// loop; otherwise it is applied directly.
func (r *Runner) Do(cmd Command) error {
	r.mu.Lock()
	ctx, cmdCh := r.ctx, r.cmdCh
	r.mu.Unlock()

	if cmdCh == nil {
		return Apply(r.countdown, cmd)
	}

	reply := make(chan error, 1)
	cmd.Reply = reply

	select {
	case cmdCh <- cmd:
		return <-reply
	case <-ctx.Done():
		// stopped while we were waiting, nothing else mutates now
		return Apply(r.countdown, cmd)
	}
}

func (r *Runner) loop(ctx context.Context, ticker timer.Ticker, cmdCh <-chan Command, done chan<- struct{}) {
	defer close(done)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C():
			r.countdown.Tick()
		case cmd := <-cmdCh:
			err := Apply(r.countdown, cmd)
			if err != nil {
				log.WithError(err).Warnf("Command %s failed", cmd.Type)
			}
			// send reply if requested
			if cmd.Reply != nil {
				select {
				case cmd.Reply <- err:
				default:
				}
			}
		}
	}
}
