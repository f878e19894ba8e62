// Package directive decodes the line-oriented protocol a buildfile emits
// and dispatches each line to the graph, plan and needs packages that do
// the real work (spec §4.7, §6).
package directive

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/thought-machine/shmake/src/cli/logging"
	"github.com/thought-machine/shmake/src/fs"
	"github.com/thought-machine/shmake/src/graph"
	"github.com/thought-machine/shmake/src/needs"
	"github.com/thought-machine/shmake/src/plan"
)

var log = logging.Log

// Driver owns the Registry being built up across a single buildfile run
// and the default state the `set` directive edits.
type Driver struct {
	Reg      *graph.Registry
	Opts     graph.Options
	Defaults Defaults

	// GlobalDebug mirrors the driver's own -g flag, which forces every
	// compile-and-link directive into a debug build regardless of what
	// the directive itself asked for.
	GlobalDebug bool

	// OutDirs records every output directory the compile planner wrote
	// an object into, so clean can find them again (§4.16).
	OutDirs map[string]bool

	cc, cxx string
}

// NewDriver returns a Driver ready to dispatch directives. Exports
// defaults to on, matching the historical behavior of shipping dynamic
// symbols unless a buildfile explicitly turns it off.
func NewDriver(opts graph.Options, globalDebug bool) *Driver {
	return &Driver{
		Reg:         graph.NewRegistry(),
		Opts:        opts,
		Defaults:    Defaults{Exports: true},
		GlobalDebug: globalDebug,
		OutDirs:     map[string]bool{},
	}
}

// Dispatch handles one decoded Line, mutating d.Reg as a side effect.
func (d *Driver) Dispatch(line Line) error {
	switch line.Tag {
	case "C", "C99", "C++", "C++11":
		return d.compileAndLink(line.Tag, line.Args)
	case "target":
		return d.targetDirective(line.Args)
	case "all":
		d.allDirective(line.Args)
		return nil
	case "set":
		return d.Defaults.Apply(line.Args)
	case "rule":
		return d.ruleDirective(line.Args)
	case "quit":
		return d.quitDirective(line.Args)
	default:
		return fmt.Errorf("unrecognized directive %q", line.Tag)
	}
}

func (d *Driver) targetDirective(args []string) error {
	if len(args) < 2 {
		return fmt.Errorf("target directive requires a name and a command")
	}
	name := args[0]
	cmd := args[len(args)-1]
	if cmd == "none" {
		cmd = ""
	}
	prereqs := d.Reg.Expand(args[1 : len(args)-1])
	d.Reg.TargetDirective(name, d.Reg.ResolveNames(prereqs), cmd)
	return nil
}

func (d *Driver) allDirective(names []string) {
	prereqs := d.Reg.Expand(names)
	t := d.Reg.NewTarget("all", d.Reg.ResolveNames(prereqs), nil, nil)
	t.Kind = graph.PHONY
}

func (d *Driver) ruleDirective(args []string) error {
	r, err := ParseRuleArgs(args)
	if err != nil {
		return fmt.Errorf("rule: %w", err)
	}
	targets := make([]*graph.Target, 0, len(r.Files))
	for _, f := range r.Files {
		tname := f
		if r.OutExt != "ditto" {
			tname = fs.ReplaceExtension(f, r.OutExt)
		}
		tname = fs.JoinOutDir(r.OutDir, tname)
		t := d.Reg.NewTarget(tname, d.Reg.ResolveNames([]string{f}), nil, nil)
		t.Command = r.Command
		t.Kind = graph.FILE
		targets = append(targets, t)
	}
	d.Reg.NewNamedGroup(r.Name, r.Command, targets)
	return nil
}

func (d *Driver) quitDirective(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("quit directive requires a message")
	}
	if args[0] == "exists" {
		if len(args) < 2 {
			return fmt.Errorf("quit exists requires a variable name")
		}
		if os.Getenv(args[1]) == "" {
			return fmt.Errorf("quit: %q does not exist", args[1])
		}
		return nil
	}
	return fmt.Errorf("quit: %s", strings.Join(args, " "))
}

// compileAndLink handles the C / C99 / C++ / C++11 directive tags (spec
// §4.7). When the compile args carry a rule-extension (-R), each input
// file becomes its own independent program, grouped by the directive's
// own name; otherwise the whole file list goes through straight_build
// as one build.
func (d *Driver) compileAndLink(tag string, rawArgs []string) error {
	c, err := ParseCompileArgs(rawArgs)
	if err != nil {
		return fmt.Errorf("%s: %w", tag, err)
	}
	isCxx := tag == "C++" || tag == "C++11"
	compiler, err := d.discoverCompiler(isCxx)
	if err != nil {
		return err
	}
	switch tag {
	case "C99":
		c.Cflags = prependFlag(c.Cflags, "-std=c99")
	case "C++11":
		c.Cflags = prependFlag(c.Cflags, "-std=c++0x")
	}

	if !c.HasRule {
		_, err := d.straightBuild(compiler, c)
		return err
	}

	ext := c.RuleExt
	if ext == "exe" {
		ext = ""
	}
	targets := make([]*graph.Target, 0, len(c.Files))
	for _, src := range c.Files {
		single := c
		single.Name = fs.ReplaceExtension(src, ext)
		single.Files = []string{src}
		t, err := d.straightBuild(compiler, single)
		if err != nil {
			return err
		}
		targets = append(targets, t)
	}
	d.Reg.NewNamedGroup(c.Name, "cmd", targets)
	return nil
}

func prependFlag(flags, flag string) string {
	if flags == "" {
		return flag
	}
	return flag + " " + flags
}

// straightBuild is straight_build(compiler, name, files) from spec §4.7:
// fold needs into cflags/lflags, default a bare name to a single-file
// build, apply excludes, classify the output by name's extension,
// partition sources from prebuilt libraries, then hand off to the
// compile and link planners.
func (d *Driver) straightBuild(compiler string, c CompileArgs) (*graph.Target, error) {
	cflags, lflags := c.Cflags, ""
	needNames := append(append([]string{}, d.Defaults.Needs...), c.Needs...)
	if err := needs.Update(needNames, d.Defaults.NeedPath, &cflags, &lflags); err != nil {
		return nil, err
	}

	name, files := c.Name, c.Files
	if len(files) == 0 {
		files = []string{name}
		name = fs.ReplaceExtension(name, "")
	}
	if len(c.Excludes) > 0 {
		files = excludeFiles(files, c.Excludes)
	}

	kind := plan.EXE
	switch filepath.Ext(name) {
	case ".so":
		kind = plan.SO
		lflags = appendSpace(lflags, "-shared")
		if runtime.GOOS != "darwin" {
			cflags = appendSpace(cflags, "-fpic")
		}
	case ".a":
		kind = plan.LIB
	case ".c":
		files = append(files, name)
		name = fs.ReplaceExtension(name, "")
	}

	sources, libs := partitionByExtension(files)

	outDir := c.OutDir
	if outDir == "" {
		outDir = d.Defaults.OutDir
	}
	debug := c.Debug || d.Defaults.Debug || d.GlobalDebug
	if outDir == "auto" {
		outDir = fmt.Sprintf("%s-%s", compiler, debugWord(debug))
	}
	if outDir != "" {
		d.OutDirs[outDir] = true
	}

	if debug {
		cflags = appendSpace(cflags, "-g")
	} else {
		opt := c.Opt
		if opt == "" {
			opt = "2"
		}
		cflags = appendSpace(cflags, "-O"+opt)
	}

	if kind == plan.EXE {
		exports := c.Exports || d.Defaults.Exports
		if exports {
			if runtime.GOOS != "darwin" {
				lflags = appendSpace(lflags, "-Wl,-E")
			}
		} else if !debug {
			lflags = appendSpace(lflags, "-Wl,-s")
		}
	}

	group := plan.Compile(d.Reg, plan.CompileSpec{
		Compiler:    compiler,
		Files:       sources,
		Cflags:      cflags,
		IncludeDirs: append(append([]string{}, d.Defaults.Includes...), c.IncludeDirs...),
		Defines:     append(append([]string{}, d.Defaults.Defines...), c.Defines...),
		OutDir:      outDir,
	})

	inputs := make([]graph.PrereqRef, 0, len(libs)+1)
	inputs = append(inputs, group)
	for _, l := range libs {
		inputs = append(inputs, l)
	}

	t := plan.Link(d.Reg, plan.LinkSpec{
		Linker:  compiler,
		Name:    name,
		Inputs:  inputs,
		Lflags:  lflags,
		LibDirs: append(append([]string{}, d.Defaults.LibDirs...), c.LibDirs...),
		Libs:    append(append([]string{}, d.Defaults.Libs...), c.Libs...),
		Kind:    kind,
	})
	d.Reg.PushToFront(t)
	return t, nil
}

func debugWord(debug bool) string {
	if debug {
		return "debug"
	}
	return "release"
}

func appendSpace(s, extra string) string {
	if s == "" {
		return extra
	}
	return s + " " + extra
}

func excludeFiles(files, excludes []string) []string {
	excluded := map[string]bool{}
	for _, e := range excludes {
		excluded[e] = true
	}
	out := make([]string, 0, len(files))
	for _, f := range files {
		if !excluded[f] {
			out = append(out, f)
		}
	}
	return out
}

func partitionByExtension(files []string) (sources, libs []string) {
	for _, f := range files {
		switch filepath.Ext(f) {
		case ".a", ".so":
			libs = append(libs, f)
		default:
			sources = append(sources, f)
		}
	}
	return sources, libs
}

// discoverCompiler picks $CC/gcc/cc for C, $CXX/g++/c++ for C++,
// memoizing the result on the Driver (spec §4.7, §6).
func (d *Driver) discoverCompiler(cxx bool) (string, error) {
	if cxx {
		if d.cxx == "" {
			c, err := lookupCompiler("CXX", "g++", "c++")
			if err != nil {
				return "", err
			}
			d.cxx = c
		}
		return d.cxx, nil
	}
	if d.cc == "" {
		c, err := lookupCompiler("CC", "gcc", "cc")
		if err != nil {
			return "", err
		}
		d.cc = c
	}
	return d.cc, nil
}

func lookupCompiler(envVar string, candidates ...string) (string, error) {
	if v := os.Getenv(envVar); v != "" {
		return v, nil
	}
	for _, c := range candidates {
		if _, err := exec.LookPath(c); err == nil {
			log.Debugf("discovered compiler %s for $%s", c, envVar)
			return c, nil
		}
	}
	return "", fmt.Errorf("no usable compiler found (tried $%s, %s)", envVar, strings.Join(candidates, ", "))
}
