package graph

import (
	"strings"

	"github.com/thought-machine/shmake/src/tmpl"
)

// TargetDirective implements the `target` directive's Target-construction
// rule (spec §4.2 `target(name, prereq_names, cmd)`): it wraps NewTarget,
// and if cmd contains the literal "@" it is treated as a command template
// with three recognized @(VAR) variables — TARGET, INPUT and DEPS — after
// which the resulting Target's kind becomes FILE. The literal command
// "none" (already filtered by the caller) never reaches here; this
// function always sets a real command or leaves it empty.
func (r *Registry) TargetDirective(name string, prereqs []PrereqRef, cmd string) *Target {
	t := r.NewTarget(name, prereqs, nil, nil)
	if cmd == "" {
		return t
	}
	if strings.Contains(cmd, "@") {
		cmd = tmpl.Expand(cmd, tmpl.AtParen, map[string]string{
			"TARGET": t.Name(),
			"INPUT":  firstPrereqName(t.Prereq),
			"DEPS":   depsVar(t.Prereq),
		})
		t.Kind = FILE
	}
	t.Command = cmd
	return t
}

func firstPrereqName(prereq []Node) string {
	if len(prereq) == 0 {
		return ""
	}
	return prereq[0].Name()
}

func depsVar(prereq []Node) string {
	if len(prereq) == 1 {
		return prereq[0].Name()
	}
	names := make([]string, len(prereq))
	for i, p := range prereq {
		names[i] = p.Name()
	}
	return strings.Join(names, " ")
}
