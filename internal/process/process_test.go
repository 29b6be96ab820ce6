package process

// Notes:
// - KillProcessGroup is exercised only with pids that cannot name a real
//   group. Killing a live group is covered by TestBind_CancelKillsGroup on
//   unix, which owns the child it kills.

import (
	"context"
	"errors"
	"os/exec"
	"runtime"
	"testing"
	"time"
)

// ---------------------------------------------------------------------------
// TestKillProcessGroup - Invalid PID Handling
// ---------------------------------------------------------------------------

func TestKillProcessGroup_InvalidPID(t *testing.T) {
	t.Parallel()

	for _, pid := range []int{0, -1} {
		if err := KillProcessGroup(pid); !errors.Is(err, ErrInvalidPID) {
			t.Errorf("KillProcessGroup(%d) error = %v, want ErrInvalidPID", pid, err)
		}
	}
}

func TestKillProcessGroup_UnknownPID(t *testing.T) {
	t.Parallel()

	// Must not panic; the error value is platform dependent.
	_ = KillProcessGroup(999999999)
}

// ---------------------------------------------------------------------------
// TestBind - Context Cancellation
// ---------------------------------------------------------------------------

func TestBind_SetsCancel(t *testing.T) {
	t.Parallel()

	cmd := exec.CommandContext(context.Background(), "true")
	Bind(cmd)

	if cmd.Cancel == nil {
		t.Fatal("expected Cancel to be set")
	}
	if cmd.WaitDelay != WaitDelay {
		t.Errorf("WaitDelay = %v, want %v", cmd.WaitDelay, WaitDelay)
	}
	if cmd.SysProcAttr == nil {
		t.Error("expected SysProcAttr to be set")
	}
	// Not started yet: cancel is a no-op.
	if err := cmd.Cancel(); err != nil {
		t.Errorf("Cancel() before start = %v, want nil", err)
	}
}

func TestBind_CancelKillsGroup(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("uses sh")
	}
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh not available")
	}
	t.Parallel()

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	cmd := exec.CommandContext(ctx, "sh", "-c", "sleep 30 & sleep 30")
	Bind(cmd)

	start := time.Now()
	err := cmd.Run()
	if err == nil {
		t.Fatal("expected error from cancelled command")
	}
	if elapsed := time.Since(start); elapsed > 10*time.Second {
		t.Errorf("command ran %v after cancellation", elapsed)
	}
}
