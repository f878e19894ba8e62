// Package process runs the shell commands that Target actions and the
// buildfile itself are made of. Builds are strictly single-threaded
// (spec §5): every call here blocks until the subprocess exits, and
// there is deliberately no timeout or cancellation plumbing — a hung
// compiler just hangs the build, exactly as it would running the
// command by hand.
package process

import (
	"os"
	"os/exec"
	"path/filepath"

	"github.com/thought-machine/shmake/src/cli/logging"
)

var log = logging.Log

// Shell is the interpreter used to run both the buildfile and every
// fired shell command.
const Shell = "/bin/sh"

// Run executes command through the system shell in dir, with stdout and
// stderr inherited from this process so build output interleaves with
// everything else on the terminal. A non-zero exit is returned as an
// error; the caller (graph.Fire) is responsible for re-echoing the
// command and translating that into the process's exit status.
func Run(command, dir string) error {
	cmd := exec.Command(Shell, "-c", command)
	cmd.Dir = dir
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	cmd.Env = os.Environ()
	return cmd.Run()
}

// RunScript executes an external script (the buildfile) with args,
// inheriting the environment plus any extra KEY=VALUE pairs the driver
// was given on its command line (spec §6).
func RunScript(path string, args []string, extraEnv []string) error {
	if filepath.Base(path) == path {
		// A bare name is the buildfile in the working directory, not a
		// program to look up on $PATH.
		path = "./" + path
	}
	cmd := exec.Command(path, args...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	cmd.Env = append(os.Environ(), extraEnv...)
	log.Debugf("running %s %v", path, args)
	return cmd.Run()
}
