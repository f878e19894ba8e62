package directive

import (
	"bufio"
	"fmt"
	"os"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/karrick/godirwalk"

	"github.com/thought-machine/shmake/src/fs"
	"github.com/thought-machine/shmake/src/graph"
	"github.com/thought-machine/shmake/src/process"
)

// Run materializes the shell helper, executes buildfile (passing a
// fresh temp path as its $1), decodes every directive line it wrote,
// dispatches them, then brings targetName up to date (spec §4.7).
// targetName may be empty, meaning "all".
func Run(d *Driver, buildfile string, targetName string, extraEnv []string) error {
	helper, err := MaterializeHelper()
	if err != nil {
		return fmt.Errorf("materializing helper script: %w", err)
	}
	directivePath := fmt.Sprintf("%s.%d", helper, os.Getpid())
	defer os.Remove(directivePath)

	if err := process.RunScript(buildfile, []string{directivePath}, extraEnv); err != nil {
		return fmt.Errorf("running %s: %w", buildfile, err)
	}

	if err := dispatchFile(d, directivePath); err != nil {
		return err
	}

	if len(d.Reg.Targets()) == 0 {
		return fmt.Errorf("no targets defined")
	}

	return d.Finish(targetName)
}

func dispatchFile(d *Driver, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("opening directive file: %w", err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1<<20)
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			continue
		}
		if err := d.Dispatch(Decode(line)); err != nil {
			return err
		}
	}
	return scanner.Err()
}

// Finish selects the root target per spec §4.7's fallback rules and
// either runs clean or invokes the freshness check on it.
func (d *Driver) Finish(targetName string) error {
	if targetName == "" {
		targetName = "all"
	}
	t, ok := d.Reg.TargetByName(targetName)
	if !ok {
		if targetName == "clean" {
			return d.clean()
		}
		targets := d.Reg.Targets()
		if len(targets) == 0 {
			return fmt.Errorf("no target %s", targetName)
		}
		t = targets[0]
	}

	start := time.Now()
	fired, err := graph.Check(t, d.Opts, func(command string) error {
		return process.Run(command, "")
	})
	if err != nil {
		return err
	}
	d.printSummary(fired, time.Since(start))
	return nil
}

// clean removes every non-PHONY target's output file (and, for OBJ
// targets, its sibling .d) and then sweeps any recorded output
// directory that ended up empty (§4.16, supplemented from
// original_source/).
func (d *Driver) clean() error {
	for _, t := range d.Reg.Targets() {
		if err := t.Remove(d.Opts.Verbose > 0); err != nil {
			return err
		}
	}
	for odir := range d.OutDirs {
		removeIfEmpty(odir)
	}
	return nil
}

func removeIfEmpty(dir string) {
	if !fs.IsDirectory(dir) {
		return
	}
	empty := true
	err := godirwalk.Walk(dir, &godirwalk.Options{
		Callback: func(path string, de *godirwalk.Dirent) error {
			if path != dir && !de.IsDir() {
				empty = false
				return godirwalk.SkipThis
			}
			return nil
		},
		Unsorted: true,
	})
	if err == nil && empty {
		os.Remove(dir)
	}
}

func (d *Driver) printSummary(fired bool, elapsed time.Duration) {
	if d.Opts.Quiet || d.Opts.Testing || !fired {
		return
	}
	fmt.Printf("build finished in %s\n", humanize.RelTime(time.Now().Add(-elapsed), time.Now(), "", ""))
}
