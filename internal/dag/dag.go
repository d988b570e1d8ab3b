package dag

import (
	"errors"
	"fmt"
	"slices"

	"gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/graph/topo"
)

// New creates and returns an initialized, empty Graph.
func New() *Graph {
	return &Graph{
		directed:  simple.NewDirectedGraph(),
		ids:       make(map[string]int64),
		names:     make(map[int64]string),
		selfLoops: make(map[int64]bool),
	}
}

// AddNode adds a new node with the given ID to the graph. If a node with
// the same ID already exists, the function does nothing.
func (g *Graph) AddNode(id string) {
	g.mutex.Lock()
	defer g.mutex.Unlock()

	if _, ok := g.ids[id]; ok {
		return
	}

	vid := int64(len(g.ids))
	g.directed.AddNode(simple.Node(vid))
	g.ids[id] = vid
	g.names[vid] = id
}

// AddEdge creates a directed edge from the `fromID` node to the `toID` node.
// This signifies that `toID` has a dependency on `fromID`. An error is returned
// if either node does not exist. An edge from a node to itself is recorded as
// a self-loop.
func (g *Graph) AddEdge(fromID, toID string) error {
	g.mutex.Lock()
	defer g.mutex.Unlock()

	from, ok := g.ids[fromID]
	if !ok {
		return fmt.Errorf("source node not found: %s", fromID)
	}

	to, ok := g.ids[toID]
	if !ok {
		return fmt.Errorf("destination node not found: %s", toID)
	}

	if from == to {
		g.selfLoops[from] = true
		return nil
	}
	g.directed.SetEdge(simple.Edge{F: simple.Node(from), T: simple.Node(to)})
	return nil
}

// Len returns the number of nodes.
func (g *Graph) Len() int {
	g.mutex.RLock()
	defer g.mutex.RUnlock()
	return len(g.ids)
}

// Dependencies returns the IDs of the nodes the given node depends on, in
// insertion order.
func (g *Graph) Dependencies(id string) ([]string, error) {
	g.mutex.RLock()
	defer g.mutex.RUnlock()

	vid, ok := g.ids[id]
	if !ok {
		return nil, fmt.Errorf("node not found: %s", id)
	}
	return g.neighbours(vid, g.directed.To(vid)), nil
}

// Dependents returns the IDs of the nodes that depend on the given node, in
// insertion order.
func (g *Graph) Dependents(id string) ([]string, error) {
	g.mutex.RLock()
	defer g.mutex.RUnlock()

	vid, ok := g.ids[id]
	if !ok {
		return nil, fmt.Errorf("node not found: %s", id)
	}
	return g.neighbours(vid, g.directed.From(vid)), nil
}

func (g *Graph) neighbours(vid int64, it graph.Nodes) []string {
	var vids []int64
	for it.Next() {
		vids = append(vids, it.Node().ID())
	}
	if g.selfLoops[vid] {
		vids = append(vids, vid)
	}
	slices.Sort(vids)
	return g.namesOf(vids)
}

// DetectCycles checks the graph for any cycles. It returns a *CycleError
// listing every cycle group, or nil.
func (g *Graph) DetectCycles() error {
	if cycles := g.Cycles(); len(cycles) > 0 {
		return &CycleError{Groups: cycles}
	}
	return nil
}

// Cycles returns every group of nodes that reference each other, directly or
// through others, including single nodes that reference themselves. Groups
// and their members are in insertion order.
func (g *Graph) Cycles() [][]string {
	g.mutex.RLock()
	defer g.mutex.RUnlock()

	var groups [][]int64
	for _, scc := range topo.TarjanSCC(g.directed) {
		if len(scc) == 1 && !g.selfLoops[scc[0].ID()] {
			continue
		}
		groups = append(groups, sortedIDs(scc))
	}
	slices.SortFunc(groups, func(a, b []int64) int { return int(a[0] - b[0]) })

	out := make([][]string, len(groups))
	for i, grp := range groups {
		out[i] = g.namesOf(grp)
	}
	return out
}

// Order returns every node id so that each node comes after the nodes it
// depends on. The order is stable for a given insertion sequence. A cycle
// group cannot be ordered internally; its members are placed together, in
// insertion order, where the group as a whole belongs. Use DetectCycles to
// learn which groups those are.
func (g *Graph) Order() []string {
	g.mutex.RLock()
	defer g.mutex.RUnlock()

	// SortStabilized only fails with topo.Unorderable, whose groups fill
	// the nil slots of sorted.
	sorted, err := topo.SortStabilized(g.directed, byID)
	var unorderable topo.Unorderable
	errors.As(err, &unorderable)

	vids := make([]int64, 0, len(sorted))
	next := 0
	for _, n := range sorted {
		if n != nil {
			vids = append(vids, n.ID())
			continue
		}
		vids = append(vids, sortedIDs(unorderable[next])...)
		next++
	}
	return g.namesOf(vids)
}

func (g *Graph) namesOf(vids []int64) []string {
	out := make([]string, len(vids))
	for i, vid := range vids {
		out[i] = g.names[vid]
	}
	return out
}

func byID(nodes []graph.Node) {
	slices.SortFunc(nodes, func(a, b graph.Node) int { return int(a.ID() - b.ID()) })
}

func sortedIDs(nodes []graph.Node) []int64 {
	out := make([]int64, len(nodes))
	for i, n := range nodes {
		out[i] = n.ID()
	}
	slices.Sort(out)
	return out
}
