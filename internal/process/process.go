// Package process runs external publishers so they can be torn down as a
// group when their context is cancelled.
package process

import (
	"errors"
	"os/exec"
	"time"
)

// ErrInvalidPID is returned for pids that would target the caller's group.
var ErrInvalidPID = errors.New("invalid pid")

// WaitDelay bounds how long Wait blocks on pipes after a group kill.
const WaitDelay = 2 * time.Second

// Bind isolates cmd and makes context cancellation kill its whole group.
// cmd must have been created with exec.CommandContext.
func Bind(cmd *exec.Cmd) {
	Isolate(cmd)
	cmd.Cancel = func() error {
		if cmd.Process == nil {
			return nil
		}
		if err := KillProcessGroup(cmd.Process.Pid); err != nil {
			return cmd.Process.Kill()
		}
		return nil
	}
	cmd.WaitDelay = WaitDelay
}
