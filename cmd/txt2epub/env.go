package main

import (
	"io"
	"os"
	"os/exec"
	"time"

	txt2epub "github.com/alnah/go-txt2epub"
	"github.com/alnah/go-txt2epub/internal/pipeline"
)

// Environment holds injectable dependencies for testability.
type Environment struct {
	Now      func() time.Time
	Stdout   io.Writer
	Stderr   io.Writer
	Getenv   func(string) string
	Environ  func() []string
	LookPath func(string) (string, error)
	TempDir  func() string

	// Runner executes external tools: the publisher during convert and
	// version probes during doctor.
	Runner txt2epub.CommandRunner
}

// DefaultEnv returns the production environment.
func DefaultEnv() *Environment {
	return &Environment{
		Now:      time.Now,
		Stdout:   os.Stdout,
		Stderr:   os.Stderr,
		Getenv:   os.Getenv,
		Environ:  os.Environ,
		LookPath: exec.LookPath,
		TempDir:  os.TempDir,
		Runner:   &pipeline.ExecRunner{},
	}
}
