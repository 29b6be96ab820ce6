package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"runtime"

	"go.uber.org/automaxprocs/maxprocs"
)

// Version is set at build time via ldflags.
var Version = "dev"

// ErrUnknownCommand is returned for an unrecognized subcommand.
var ErrUnknownCommand = errors.New("unknown command")

func main() {
	// Error ignored: maxprocs.Set only fails if GOMAXPROCS is invalid,
	// in which case runtime defaults apply.
	_, _ = maxprocs.Set(maxprocs.Logger(func(string, ...interface{}) {}))

	env := DefaultEnv()
	if values, path, err := readDotEnv(dotEnvFiles...); err == nil {
		applyDotEnv(values, os.LookupEnv, os.Setenv)
		if hasFlag(os.Args[1:], "-v", "--verbose") {
			fmt.Fprintf(env.Stderr, "loaded environment from %s\n", path)
		}
	}

	ctx, stop := notifyContext(context.Background())
	code := run(ctx, os.Args, env)
	stop()
	os.Exit(code)
}

// run dispatches to a subcommand and returns the process exit code.
func run(ctx context.Context, args []string, env *Environment) int {
	if len(args) < 2 {
		printUsage(env.Stderr)
		return ExitUsage
	}

	cmd, rest := args[1], args[2:]
	switch cmd {
	case "convert":
		flags, positional, err := parseConvertFlags(rest, env.Stderr)
		if err != nil {
			if errors.Is(err, errHelpRequested) {
				return ExitSuccess
			}
			return reportError(env, fmt.Errorf("%w: %v", ErrUsage, err))
		}
		return reportError(env, runConvert(ctx, positional, flags, env))
	case "config":
		return reportError(env, runConfigCmd(rest, env))
	case "doctor":
		return runDoctorCmd(ctx, rest, env)
	case "completion":
		if err := runCompletion(rest, env); err != nil {
			return reportError(env, fmt.Errorf("%w: %v", ErrUsage, err))
		}
		return ExitSuccess
	case "version", "--version":
		fmt.Fprintf(env.Stdout, "txt2epub %s (%s %s/%s)\n", Version, runtime.Version(), runtime.GOOS, runtime.GOARCH)
		return ExitSuccess
	case "help", "-h", "--help":
		return runHelp(rest, env)
	default:
		fmt.Fprintf(env.Stderr, "%v: %s\n\n", ErrUnknownCommand, cmd)
		printUsage(env.Stderr)
		return ExitUsage
	}
}

// reportError prints err to stderr and maps it to an exit code.
func reportError(env *Environment, err error) int {
	if err == nil {
		return ExitSuccess
	}
	fmt.Fprintf(env.Stderr, "error: %v\n", err)
	return exitCodeFor(err)
}

// hasFlag reports whether any of names appears in args before a "--".
func hasFlag(args []string, names ...string) bool {
	for _, a := range args {
		if a == "--" {
			return false
		}
		for _, n := range names {
			if a == n {
				return true
			}
		}
	}
	return false
}
