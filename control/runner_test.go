package control

import (
	"sync"
	"testing"
	"time"

	"RingTimer/timer"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// manualTicker delivers ticks only when the test sends them.
type manualTicker struct {
	ch      chan time.Time
	mu      sync.Mutex
	stopped bool
}

func (m *manualTicker) C() <-chan time.Time { return m.ch }

func (m *manualTicker) Stop() {
	m.mu.Lock()
	m.stopped = true
	m.mu.Unlock()
}

func (m *manualTicker) isStopped() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.stopped
}

type manualClock struct {
	mu      sync.Mutex
	tickers []*manualTicker
}

func (m *manualClock) NewTicker(time.Duration) timer.Ticker {
	m.mu.Lock()
	defer m.mu.Unlock()
	t := &manualTicker{ch: make(chan time.Time)}
	m.tickers = append(m.tickers, t)
	return t
}

func (m *manualClock) last() *manualTicker {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.tickers[len(m.tickers)-1]
}

// tick blocks until the loop has received the tick.
func (m *manualClock) tick() {
	m.last().ch <- time.Now()
}

func newCountdown(d string) *timer.Countdown {
	c := timer.NewCountdown(nil, timer.StorageKey)
	c.Restore(timer.MustParseDuration(d))
	return c
}

func TestRunnerTicksCountdown(t *testing.T) {
	c := newCountdown("00:00:05")
	clock := &manualClock{}
	r := NewRunner(c, clock, time.Second)
	require.NoError(t, r.Start())
	defer r.Stop()

	for i := 0; i < 3; i++ {
		clock.tick()
	}
	// a command round trip orders us after the last tick
	require.NoError(t, r.Do(Command{Type: CmdResume}))

	assert.Equal(t, "00:00:02", c.Remaining().String())
}

func TestRunnerStartTwice(t *testing.T) {
	r := NewRunner(newCountdown("00:01:00"), &manualClock{}, 0)
	require.NoError(t, r.Start())
	defer r.Stop()

	assert.ErrorIs(t, r.Start(), ErrAlreadyRunning)
	assert.True(t, r.Running())
}

func TestRunnerStopIsSynchronous(t *testing.T) {
	c := newCountdown("00:01:00")
	clock := &manualClock{}
	r := NewRunner(c, clock, time.Second)
	require.NoError(t, r.Start())

	clock.tick()
	ticker := clock.last()
	r.Stop()

	assert.False(t, r.Running())
	assert.True(t, ticker.isStopped())

	select {
	case ticker.ch <- time.Now():
		t.Fatal("tick accepted after Stop")
	case <-time.After(20 * time.Millisecond):
	}
	assert.Equal(t, "00:00:59", c.Remaining().String())

	// idempotent
	r.Stop()
}

func TestRunnerDoWhenStopped(t *testing.T) {
	c := newCountdown("00:01:00")
	r := NewRunner(c, &manualClock{}, time.Second)

	require.NoError(t, r.Do(Command{Type: CmdSetPaused, Paused: true}))
	assert.True(t, c.Paused())

	require.NoError(t, r.Do(Command{Type: CmdSetDuration, Duration: timer.MustParseDuration("00:00:30")}))
	assert.Equal(t, "00:00:30", c.Remaining().String())
}

func TestRunnerDoSerializesWithTicks(t *testing.T) {
	c := newCountdown("00:00:10")
	clock := &manualClock{}
	r := NewRunner(c, clock, time.Second)
	require.NoError(t, r.Start())
	defer r.Stop()

	require.NoError(t, r.Do(Command{Type: CmdPause}))
	clock.tick()
	clock.tick()
	require.NoError(t, r.Do(Command{Type: CmdResume}))
	assert.Equal(t, "00:00:10", c.Remaining().String())

	clock.tick()
	require.NoError(t, r.Do(Command{Type: CmdReset}))
	assert.Equal(t, "00:00:10", c.Remaining().String())
}

func TestRunnerRestart(t *testing.T) {
	c := newCountdown("00:00:10")
	clock := &manualClock{}
	r := NewRunner(c, clock, time.Second)

	require.NoError(t, r.Start())
	clock.tick()
	r.Stop()

	require.NoError(t, r.Start())
	clock.tick()
	require.NoError(t, r.Do(Command{Type: CmdResume}))
	r.Stop()

	assert.Equal(t, "00:00:08", c.Remaining().String())
}

func TestApplyUnknownCommand(t *testing.T) {
	err := Apply(newCountdown("00:00:10"), Command{Type: CommandType(99)})
	assert.Error(t, err)
}

func TestRunnerWithSystemClock(t *testing.T) {
	c := newCountdown("00:00:10")
	r := NewRunner(c, nil, 5*time.Millisecond)
	require.NoError(t, r.Start())

	assert.Eventually(t, func() bool {
		return c.Remaining().TotalSeconds() <= 8
	}, time.Second, 5*time.Millisecond)

	r.Stop()
	after := c.Remaining()
	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, after, c.Remaining())
}
