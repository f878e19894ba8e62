package graph

import "github.com/thought-machine/shmake/src/fs"

// Kind classifies what a Target represents, which governs how clean
// treats it and, for OBJ, which sibling files ride along with it.
type Kind int

// The four kinds a Target can be (spec §3); STATIC is reserved and never
// produced by any planner.
const (
	PHONY Kind = iota
	FILE
	OBJ
	PROG
	STATIC
)

// Callback is the payload of a Target whose action is a Go function
// rather than a shell command.
type Callback func(payload interface{}) error

// Target is a File plus prerequisites and an action. It satisfies Node,
// so a Target may be used anywhere a File is expected.
type Target struct {
	File

	// Prereq is the ordered, duplicate-preserving prerequisite list, each
	// entry already resolved to a Node at creation time (spec §3).
	Prereq []Node

	// At most one of Callback or Command is set; a Target with neither
	// and no prereqs does nothing when fired.
	Callback Callback
	Payload  interface{}
	Command  string

	// Message is the short verb shown in non-verbose mode instead of the
	// command line, e.g. "compiling", "linking"; quiet mode shows neither.
	Message string

	Kind Kind

	checked bool
}

// HasAction reports whether firing t would do anything.
func (t *Target) HasAction() bool {
	return t.Callback != nil || t.Command != ""
}

// Remove deletes t's output file, and for OBJ targets its sibling .d
// file. PHONY targets are left alone since they never own a real file
// (spec §4.2).
func (t *Target) Remove(verbose bool) error {
	if t.Kind == PHONY {
		return nil
	}
	err := Remove(t.Name(), verbose)
	if t.Kind == OBJ {
		// Best-effort: a build that never got as far as compiling this
		// target won't have a .d file yet.
		_ = Remove(fs.ReplaceExtension(t.Name(), ".d"), verbose)
	}
	return err
}
