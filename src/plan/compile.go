// Package plan implements the compile and link planners (spec §4.4,
// §4.5): given a buildfile directive's arguments, each builds the
// Targets (and, for compilation, the Group wrapping them) that the
// freshness-check engine will later walk.
package plan

import (
	"fmt"
	"os"
	"strings"

	"github.com/alessio/shellescape"

	"github.com/thought-machine/shmake/src/fs"
	"github.com/thought-machine/shmake/src/graph"
)

// CompileSpec is the input to Compile: a compiler invocation, the
// sources (or Group names, already expanded by the caller) to build,
// and the flags that apply to every one of them.
type CompileSpec struct {
	Compiler    string
	Files       []string
	Cflags      string
	IncludeDirs []string
	Defines     []string
	OutDir      string
}

// Compile builds one OBJ Target per source file plus a Group wrapping
// them all, ingesting each file's .d auto-dependency file when one
// exists from a previous build (spec §4.4). The first build of a file
// has no .d yet, so its Target's only prerequisite is the source file
// itself; once compiled, subsequent runs pick up header dependencies.
func Compile(r *graph.Registry, spec CompileSpec) *graph.Group {
	prefix := commandPrefix(spec)
	targets := make([]*graph.Target, 0, len(spec.Files))
	for _, f := range spec.Files {
		obj := fs.JoinOutDir(spec.OutDir, fs.ReplaceExtension(f, ".o"))
		prereqNames := depsFor(obj, f)
		t := r.NewTarget(obj, r.ResolveNames(prereqNames), nil, nil)
		t.Command = fmt.Sprintf("%s %s -o %s", prefix, shellescape.Quote(f), shellescape.Quote(obj))
		t.Message = "compiling"
		t.Kind = graph.OBJ
		targets = append(targets, t)
	}
	return r.NewGroup(prefix, targets)
}

// commandPrefix builds the compiler invocation shared by every source
// file: "{compiler} -c -Wall -MMD {cflags} -Dx -Dy -Ia -Ib" with each
// flag list space-delimited (spec §4.4).
func commandPrefix(spec CompileSpec) string {
	var b strings.Builder
	b.WriteString(spec.Compiler)
	b.WriteString(" -c -Wall -MMD")
	if spec.Cflags != "" {
		b.WriteString(" ")
		b.WriteString(spec.Cflags)
	}
	b.WriteString(flagConcat("-D", spec.Defines))
	b.WriteString(flagConcat("-I", spec.IncludeDirs))
	return b.String()
}

func flagConcat(prefix string, values []string) string {
	var b strings.Builder
	for _, v := range values {
		b.WriteString(" ")
		b.WriteString(prefix)
		b.WriteString(v)
	}
	return b.String()
}

// depsFor returns obj's prerequisite list: the contents of its sibling
// .d file if one exists and parses, or just [f] otherwise — the state
// before any compile has ever produced dependency info (spec §4.4).
func depsFor(obj, f string) []string {
	dfile := fs.ReplaceExtension(obj, ".d")
	contents, err := os.ReadFile(dfile)
	if err != nil {
		return []string{f}
	}
	deps := fs.ParseDepFile(string(contents))
	if len(deps) == 0 {
		return []string{f}
	}
	return deps
}
