package main

import (
	"errors"
	"fmt"
	"io"
)

// runConfigCmd prints the configuration convert would use with the same
// flags, after file, environment and flag values are merged.
func runConfigCmd(args []string, env *Environment) error {
	flags, _, err := parseFlagsWithUsage("config", args, env.Stderr, printConfigUsage)
	if err != nil {
		if errors.Is(err, errHelpRequested) {
			return nil
		}
		return fmt.Errorf("%w: %v", ErrUsage, err)
	}

	cfg, err := resolveConfig(flags, env, newLogger(env.Stderr, flags.common.quiet, flags.common.verbose))
	if err != nil {
		return err
	}
	out, err := cfg.YAML()
	if err != nil {
		return err
	}
	_, err = env.Stdout.Write(out)
	return err
}

// printConfigUsage prints usage for the config command.
func printConfigUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: txt2epub config [convert flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Print the effective configuration as YAML. Accepts every convert flag;")
	fmt.Fprintln(w, "values are merged as flags > environment > config file > defaults.")
	fmt.Fprintln(w, "The output can be saved and passed back with --config.")
}
