package graph

// Group is a named, ordered collection of Targets, used to let one
// directive's output feed another directive's prerequisite list by
// name (spec §3, §4.3). Groups hold references to Targets, not copies;
// Targets outlive any Group that mentions them.
type Group struct {
	// Cmd is the command template that produced the group, kept purely
	// for diagnostics.
	Cmd     string
	Targets []*Target
	name    string
}

// Name returns the group's name: either a user-given rule name or an
// auto-assigned "*G###".
func (g *Group) Name() string { return g.name }
