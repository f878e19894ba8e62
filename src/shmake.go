package main

import (
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/thought-machine/shmake/src/cli"
	"github.com/thought-machine/shmake/src/cli/logging"
	"github.com/thought-machine/shmake/src/directive"
	"github.com/thought-machine/shmake/src/graph"
)

var log = logging.Log

const version = "1.0.0"

var opts struct {
	Usage string `usage:"shmake drives a build from the directives an executable buildfile emits.\n\nThe buildfile is run once per invocation; it calls shell functions (C, T, S, R, Q, all) that describe the build graph, which shmake then brings up to date using file modification times as the freshness test."`

	File      string        `short:"f" long:"file" default:"buildfile" description:"Buildfile to run."`
	Directory string        `short:"C" long:"directory" description:"Change to this directory before running."`
	Testing   bool          `short:"t" long:"testing" description:"Print actions instead of running them."`
	Debug     bool          `short:"g" long:"debug" description:"Build everything in debug mode."`
	Verbose   cli.Verbosity `short:"v" long:"verbose" description:"Increase verbosity; repeat for more (-vv)."`
	Quiet     bool          `short:"q" long:"quiet" description:"Suppress per-target messages."`
	Create    string        `short:"c" long:"create" description:"Write a starter buildfile whose body is this statement, then exit."`

	Args struct {
		Targets []string `positional-arg-name:"target" description:"Target to build, or KEY=VALUE pairs to export into the buildfile's environment."`
	} `positional-args:"true"`
}

func main() {
	cli.ParseFlagsOrDie("shmake", version, &opts, os.Args)
	logging.Init(int(opts.Verbose), opts.Quiet)

	if opts.Create != "" {
		if err := scaffold(opts.File, opts.Create); err != nil {
			log.Errorf("%s", err)
			os.Exit(1)
		}
		fmt.Println("buildfile created")
		return
	}

	if opts.Directory != "" {
		if err := os.Chdir(opts.Directory); err != nil {
			log.Errorf("chdir %s: %s", opts.Directory, err)
			os.Exit(1)
		}
	}

	targetName, extraEnv := splitArgs(opts.Args.Targets)
	extraEnv = append(extraEnv, platEnv())

	d := directive.NewDriver(graph.Options{
		Verbose: int(opts.Verbose),
		Quiet:   opts.Quiet,
		Testing: opts.Testing,
	}, opts.Debug)

	if err := directive.Run(d, opts.File, targetName, extraEnv); err != nil {
		log.Errorf("%s", err)
		os.Exit(1)
	}
}

// splitArgs separates the driver's trailing positional arguments into
// KEY=VALUE environment bindings and, at most, a single target name
// (spec §6).
func splitArgs(args []string) (targetName string, env []string) {
	for _, a := range args {
		if k, v, ok := strings.Cut(a, "="); ok {
			env = append(env, k+"="+v)
			continue
		}
		targetName = a
	}
	return targetName, env
}

// platEnv exports PLAT, the platform name the buildfile can branch on,
// computed the same way the original does: the output of `uname` (spec §6).
func platEnv() string {
	out, err := exec.Command("uname").Output()
	if err != nil {
		log.Debugf("uname: %s", err)
		return "PLAT="
	}
	return "PLAT=" + strings.TrimSpace(string(out))
}

// scaffold writes a starter buildfile sourcing the shell helper, with
// body as its single statement, and makes it executable (spec §6).
func scaffold(path, body string) error {
	helper, err := directive.MaterializeHelper()
	if err != nil {
		return err
	}
	contents := fmt.Sprintf("#!/bin/sh\n. %s\n\n%s\n", helper, body)
	if err := os.WriteFile(path, []byte(contents), 0755); err != nil {
		return err
	}
	return nil
}
