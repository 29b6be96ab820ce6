package pipeline

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"strings"

	"github.com/alnah/go-txt2epub/internal/process"
)

// Sentinel errors for structured-text publishing.
var (
	ErrPublisherNotFound = errors.New("structured-text publisher not found")
	ErrPublish           = errors.New("structured-text publishing failed")
	ErrUnknownBackend    = errors.New("unknown structured-text backend")
)

// Publisher backends.
const (
	BackendDocutils = "docutils"
	BackendPandoc   = "pandoc"
)

// StructuredTextPublisher turns reStructuredText into a full HTML document.
type StructuredTextPublisher interface {
	Publish(ctx context.Context, source string) (string, error)
}

// CommandRunner abstracts command execution to enable testing without real subprocesses.
type CommandRunner interface {
	Run(ctx context.Context, stdin io.Reader, name string, args ...string) (stdout, stderr string, err error)
}

// ExecRunner implements CommandRunner using os/exec. The child runs in its
// own process group, which is killed when ctx is done.
type ExecRunner struct{}

func (r *ExecRunner) Run(ctx context.Context, stdin io.Reader, name string, args ...string) (string, string, error) {
	cmd := exec.CommandContext(ctx, name, args...) // #nosec G204 -- publisher command is user-configured
	process.Bind(cmd)

	var stdout, stderr bytes.Buffer
	cmd.Stdin = stdin
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	if err != nil && ctx.Err() != nil {
		err = fmt.Errorf("%w: %v", ctx.Err(), err)
	}
	return stdout.String(), stderr.String(), err
}

// CommandPublisher runs an external reStructuredText to HTML tool that reads
// the source on stdin and writes a standalone document to stdout.
type CommandPublisher struct {
	Runner  CommandRunner
	Backend string
	Command string
	Args    []string

	// Resolve finds Command on PATH; nil means exec.LookPath.
	Resolve func(file string) (string, error)
}

// NewCommandPublisher returns a publisher for backend ("docutils" or
// "pandoc"). A non-empty command replaces the backend's default executable.
func NewCommandPublisher(backend, command string) (*CommandPublisher, error) {
	backend = strings.ToLower(backend)
	if backend == "" {
		backend = BackendDocutils
	}

	p := &CommandPublisher{Runner: &ExecRunner{}, Backend: backend}
	switch backend {
	case BackendDocutils:
		// docutils' front end writes the full html4css1 document
		p.Command = "rst2html"
		p.Args = []string{"--input-encoding=utf-8", "--output-encoding=utf-8", "--no-datestamp", "--no-generator", "--no-source-link"}
	case BackendPandoc:
		p.Command = "pandoc"
		p.Args = []string{"-f", "rst", "-t", "html", "--standalone"}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, backend)
	}
	if command != "" {
		p.Command = command
	}
	return p, nil
}

// Publish runs the command with source on stdin.
func (p *CommandPublisher) Publish(ctx context.Context, source string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	stdout, stderr, err := p.Runner.Run(ctx, strings.NewReader(source), p.Command, p.Args...)
	if err != nil {
		if errors.Is(err, exec.ErrNotFound) {
			return "", fmt.Errorf("%w: %s (%s backend)", ErrPublisherNotFound, p.Command, p.Backend)
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return "", fmt.Errorf("%w: %s: %w", ErrPublish, p.Command, ctxErr)
		}
		msg := strings.TrimSpace(stderr)
		if msg == "" {
			msg = err.Error()
		}
		return "", fmt.Errorf("%w: %s: %s", ErrPublish, p.Command, msg)
	}
	return stdout, nil
}

// LookPath reports where the publisher's command resolves.
func (p *CommandPublisher) LookPath() (string, error) {
	resolve := p.Resolve
	if resolve == nil {
		resolve = exec.LookPath
	}
	path, err := resolve(p.Command)
	if err != nil {
		return "", fmt.Errorf("%w: %s", ErrPublisherNotFound, p.Command)
	}
	return path, nil
}
