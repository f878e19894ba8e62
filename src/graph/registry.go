package graph

import "fmt"

// Registry is the process-wide, single-build bookkeeping described in
// spec §3: every Target and Group created during one driver invocation
// is owned here, in insertion order, and looked up by name when a later
// directive mentions it. It is a plain struct rather than package-level
// state, so a build's lifetime is exactly the Registry's lifetime.
type Registry struct {
	targets      []*Target
	targetByName map[string]*Target

	groups      []*Group
	groupByName map[string]*Group
	groupSeq    int
}

// NewRegistry returns an empty, ready-to-use Registry.
func NewRegistry() *Registry {
	return &Registry{
		targetByName: map[string]*Target{},
		groupByName:  map[string]*Group{},
	}
}

// Targets returns every Target registered so far, in insertion order.
func (r *Registry) Targets() []*Target { return r.targets }

// Groups returns every Group registered so far, in insertion order.
func (r *Registry) Groups() []*Group { return r.groups }

// TargetByName looks up a previously registered Target.
func (r *Registry) TargetByName(name string) (*Target, bool) {
	t, ok := r.targetByName[name]
	return t, ok
}

// GroupByName looks up a previously registered Group.
func (r *Registry) GroupByName(name string) (*Group, bool) {
	g, ok := r.groupByName[name]
	return g, ok
}

// PrereqRef is anything NewTarget accepts in a prerequisite list: a
// Node already resolved by the caller (an existing Target, or a File the
// caller minted itself), or a bare name to resolve against the registry.
type PrereqRef interface{}

// NewTarget creates a Target named name, or returns the existing one if
// name is already registered — registration is idempotent, and the
// second call does not touch prereqs or the action (spec §3 invariants,
// §8). Each element of prereqs is resolved via Resolve before being
// stored.
func (r *Registry) NewTarget(name string, prereqs []PrereqRef, payload interface{}, cb Callback) *Target {
	if t, ok := r.targetByName[name]; ok {
		return t
	}
	t := &Target{File: File{name: name}, Payload: payload, Callback: cb}
	for _, p := range prereqs {
		t.Prereq = append(t.Prereq, r.Resolve(p))
	}
	r.targetByName[name] = t
	r.targets = append(r.targets, t)
	return t
}

// Resolve turns a heterogeneous prerequisite reference into a Node: a
// Node is used as-is; a string is looked up as a Target name, falling
// back to a freshly minted File (spec §4.2 step 1).
func (r *Registry) Resolve(ref PrereqRef) Node {
	switch v := ref.(type) {
	case Node:
		return v
	case string:
		if t, ok := r.targetByName[v]; ok {
			return t
		}
		return NewFile(v)
	default:
		panic(fmt.Sprintf("graph: unsupported prereq reference %#v", ref))
	}
}

// ResolveNames resolves a list of bare names the same way Resolve does,
// a convenience for callers building a prereq list purely from strings
// (the common case coming off the directive decoder).
func (r *Registry) ResolveNames(names []string) []PrereqRef {
	refs := make([]PrereqRef, len(names))
	for i, n := range names {
		refs[i] = n
	}
	return refs
}

// NewGroup registers a Group under an auto-assigned name of the form
// "*G###" with a monotonically increasing counter.
func (r *Registry) NewGroup(cmd string, targets []*Target) *Group {
	r.groupSeq++
	return r.NewNamedGroup(fmt.Sprintf("*G%03d", r.groupSeq), cmd, targets)
}

// NewNamedGroup registers a Group under a user-given name, e.g. a rule's
// name.
func (r *Registry) NewNamedGroup(name, cmd string, targets []*Target) *Group {
	g := &Group{Cmd: cmd, Targets: targets, name: name}
	r.groups = append(r.groups, g)
	r.groupByName[name] = g
	return g
}

// Expand walks names, replacing every element that names a Group with
// that Group's Target names in declaration order; everything else
// passes through unchanged. It is order-preserving and idempotent for
// inputs that contain no group names (spec §4.3, §8).
func (r *Registry) Expand(names []string) []string {
	out := make([]string, 0, len(names))
	for _, n := range names {
		if g, ok := r.groupByName[n]; ok {
			for _, t := range g.Targets {
				out = append(out, t.Name())
			}
			continue
		}
		out = append(out, n)
	}
	return out
}

// PushToFront swaps t with whatever currently occupies position 0 in
// the targets list. This is a swap, not a rotation: if t is pushed
// again after other targets have been registered, the target it
// displaces the first time ends up back in an arbitrary middle
// position, not restored to the front (spec §9 Open Questions — this
// surprising behavior is preserved deliberately).
func (r *Registry) PushToFront(t *Target) {
	if len(r.targets) == 0 || r.targets[0] == t {
		return
	}
	for i, cand := range r.targets {
		if cand == t {
			r.targets[0], r.targets[i] = r.targets[i], r.targets[0]
			return
		}
	}
}
