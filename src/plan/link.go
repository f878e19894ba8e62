package plan

import (
	"fmt"
	"strings"

	"github.com/alessio/shellescape"

	"github.com/thought-machine/shmake/src/graph"
)

// Kind is the kind of artifact the link planner produces.
type Kind int

// The link kinds spec §4.5 enumerates. STATIC is reserved: no planner
// path ever constructs one (spec §9 Open Questions).
const (
	EXE Kind = iota
	SO
	LIB
	STATIC
)

// LinkSpec is the input to Link.
type LinkSpec struct {
	Linker  string
	Name    string
	Inputs  []graph.PrereqRef // object files, library paths, and/or Groups; nil entries reserve a slot
	Lflags  string
	LibDirs []string
	Libs    []string
	Kind    Kind
}

// Link flattens spec.Inputs (expanding any Group reference to its
// Targets, in order, and skipping nil slots) into a single Target's
// prerequisite list, then builds that Target's link or archive command
// (spec §4.5). The returned Target is always Kind PROG.
func Link(r *graph.Registry, spec LinkSpec) *graph.Target {
	refs := flatten(r, spec.Inputs)
	t := r.NewTarget(spec.Name, refs, nil, nil)
	objFiles := joinNames(t.Prereq)

	name := shellescape.Quote(spec.Name)
	if spec.Kind == LIB {
		t.Command = fmt.Sprintf("ar rcu %s %s; ranlib %s", name, objFiles, name)
	} else {
		t.Command = fmt.Sprintf("%s %s %s%s%s -o %s",
			spec.Linker, objFiles, spec.Lflags,
			flagConcat("-L", spec.LibDirs), flagConcat("-l", spec.Libs),
			name)
	}
	t.Message = "linking"
	t.Kind = graph.PROG
	return t
}

// flatten replaces every Group reference in refs with its Targets, in
// order, and drops nil entries (used to reserve a slot for the compile
// Group before the caller knows whether there'll be one).
func flatten(r *graph.Registry, refs []graph.PrereqRef) []graph.PrereqRef {
	out := make([]graph.PrereqRef, 0, len(refs))
	for _, ref := range refs {
		if ref == nil {
			continue
		}
		if g, ok := ref.(*graph.Group); ok {
			for _, t := range g.Targets {
				out = append(out, t)
			}
			continue
		}
		out = append(out, ref)
	}
	return out
}

func joinNames(nodes []graph.Node) string {
	names := make([]string, len(nodes))
	for i, n := range nodes {
		names[i] = shellescape.Quote(n.Name())
	}
	return strings.Join(names, " ")
}
