package dag

import (
	"sync"

	"gonum.org/v1/gonum/graph/simple"
)

// Graph is the dependency structure of a diagram: one vertex per node id and
// an edge from every input to the node that reads it. Unlike a strict DAG it
// accepts cycles and self-references, since users create them while editing;
// they are reported rather than rejected.
// All operations on the graph are concurrency-safe.
type Graph struct {
	// mutex protects every field below.
	mutex sync.RWMutex
	// directed holds the edges. Its int64 ids are assigned in insertion
	// order, which keeps every listing deterministic.
	directed *simple.DirectedGraph
	// ids maps a node id to its vertex id.
	ids map[string]int64
	// names is the reverse of ids.
	names map[int64]string
	// selfLoops records nodes that reference themselves. simple graphs
	// cannot hold self edges.
	selfLoops map[int64]bool
}
