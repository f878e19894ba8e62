// Package graph implements shmake's core data model: File, Target, Group
// and the per-build Registry that owns them, plus the freshness-check /
// fire algorithm that walks the dependency graph.
package graph

import "github.com/thought-machine/shmake/src/cli/logging"

var log = logging.Log

// Node is anything that can appear in a Target's prerequisite list: a
// plain File or a Target. Both answer the same two questions, which is
// all the freshness check needs.
type Node interface {
	Name() string
	Time() int64
}
