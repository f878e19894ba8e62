package graph

import (
	"fmt"
	"os"
)

// ShellRunner invokes a shell command, inheriting the parent's
// stdout/stderr, and reports a non-zero exit as an error. The graph
// package doesn't know how to run a subprocess itself (that lives in
// src/process, which in turn would have to import graph for Target) —
// it's handed a closure instead, matching the Callback pattern already
// used for non-shell actions.
type ShellRunner func(command string) error

// Options carries the handful of build-wide settings that affect firing
// and checking: verbosity, quiet mode, and the -t "don't actually run
// anything" testing mode.
type Options struct {
	// Verbose is 0 (default), 1 (-v) or 2 (-vv, extra trace in Check).
	Verbose int
	Quiet   bool
	Testing bool
}

// Fire invokes t's action. A callback action always runs; a command
// action is echoed per the verbosity rules, skipped entirely in testing
// mode, and on failure is re-echoed to stderr regardless of how quiet
// the build was asked to be (spec §4.2, §7.3).
func Fire(t *Target, opts Options, run ShellRunner) error {
	if t.Callback != nil {
		return t.Callback(t.Payload)
	}
	if t.Command == "" {
		return nil
	}
	switch {
	case opts.Verbose > 0:
		fmt.Println(t.Command)
	case t.Message != "" && !opts.Quiet:
		fmt.Printf("%s %s\n", t.Message, t.Name())
	}
	if opts.Testing {
		return nil
	}
	if err := run(t.Command); err != nil {
		fmt.Fprintln(os.Stderr, t.Command)
		return fmt.Errorf("%s: %w", t.Name(), err)
	}
	return nil
}
