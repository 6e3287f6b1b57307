// Package control defines lightweight command messages used by the UI to
// request actions from the countdown loop, and the Runner that owns that
// loop. The loop centralizes state changes to avoid races and to simplify
// synchronization.
package control

import (
	"fmt"

	"RingTimer/timer"
)

// CommandType enumerates supported command operations.
type CommandType int

const (
	CmdPause CommandType = iota
	CmdResume
	CmdSetPaused
	CmdSetDuration
	CmdReset
)

func (t CommandType) String() string {
	switch t {
	case CmdPause:
		return "pause"
	case CmdResume:
		return "resume"
	case CmdSetPaused:
		return "set-paused"
	case CmdSetDuration:
		return "set-duration"
	case CmdReset:
		return "reset"
	}
	return fmt.Sprintf("command(%d)", int(t))
}

// Command is the message sent from the UI to the Runner loop. The optional
// Reply channel is used by the loop to confirm completion back to the
// sender (useful for keeping UI state in sync).
type Command struct {
	Type     CommandType
	Duration timer.Duration // CmdSetDuration
	Paused   bool           // CmdSetPaused
	Reply    chan error     // optional reply channel
}

// Apply performs cmd on c.
func Apply(c *timer.Countdown, cmd Command) error {
	switch cmd.Type {
	case CmdPause:
		c.Pause()
	case CmdResume:
		c.Resume()
	case CmdSetPaused:
		c.SetPaused(cmd.Paused)
	case CmdSetDuration:
		c.SetDuration(cmd.Duration)
	case CmdReset:
		c.Reset()
	default:
		return fmt.Errorf("unknown command %s", cmd.Type)
	}
	return nil
}
