package main

import (
	"bytes"
	"context"
	"io"
	"os/exec"
	"sort"
	"testing"
	"time"
)

// fixedNow is the clock used by CLI tests.
var fixedNow = time.Date(2024, time.March, 9, 10, 0, 0, 0, time.UTC)

// stubRunner answers every command with a canned result.
type stubRunner struct {
	stdout string
	stderr string
	err    error
	calls  []string
}

func (r *stubRunner) Run(_ context.Context, stdin io.Reader, name string, args ...string) (string, string, error) {
	if stdin != nil {
		_, _ = io.Copy(io.Discard, stdin)
	}
	r.calls = append(r.calls, name)
	return r.stdout, r.stderr, r.err
}

// missingTool mimics exec's error for an executable not on PATH.
func missingTool(name string) error {
	return &exec.Error{Name: name, Err: exec.ErrNotFound}
}

// testEnv returns an Environment with captured output and a fake process
// environment.
func testEnv(t *testing.T, vars map[string]string) (*Environment, *bytes.Buffer, *bytes.Buffer) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	env := &Environment{
		Now:    func() time.Time { return fixedNow },
		Stdout: &stdout,
		Stderr: &stderr,
		Getenv: func(k string) string { return vars[k] },
		Environ: func() []string {
			out := make([]string, 0, len(vars))
			for k, v := range vars {
				out = append(out, k+"="+v)
			}
			sort.Strings(out)
			return out
		},
		LookPath: func(name string) (string, error) { return "", missingTool(name) },
		TempDir:  t.TempDir,
		Runner:   &stubRunner{err: missingTool("rst2html")},
	}
	return env, &stdout, &stderr
}
