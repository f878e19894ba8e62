package graph

// Check is the freshness-check / fire algorithm (spec §4.2). It walks
// t's prerequisites depth-first, left to right, firing any prerequisite
// Target that needs it first, then fires t itself if any prerequisite is
// newer than t or is missing entirely (time 0). The checked flag
// guards against re-evaluating a Target reached by more than one path
// in a single build (diamond dependencies); there is no topological
// presort, so correctness relies entirely on this recursion and flag.
//
// The returned bool mirrors the source algorithm's own return value,
// which callers don't generally need: true unless t had prerequisites,
// wasn't already checked, and none of them had changed.
func Check(t *Target, opts Options, run ShellRunner) (bool, error) {
	if len(t.Prereq) == 0 {
		return true, Fire(t, opts, run)
	}
	if t.checked {
		return true, nil
	}
	t.checked = true

	selfTime := t.Time()
	changed := false
	for _, p := range t.Prereq {
		if pt, ok := p.(*Target); ok {
			if _, err := Check(pt, opts, run); err != nil {
				return false, err
			}
		}
		prereqTime := p.Time()
		if opts.Verbose > 1 {
			log.Debugf("%s: target=%d prereq=%s prereq_time=%d", t.Name(), selfTime, p.Name(), prereqTime)
		}
		if prereqTime > selfTime || prereqTime == 0 {
			changed = true
		}
	}
	if !changed {
		return false, nil
	}
	if err := Fire(t, opts, run); err != nil {
		return false, err
	}
	return true, nil
}
