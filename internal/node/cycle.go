package node

// walk is the state of one public read. It tracks the nodes currently being
// resolved so that re-entering one is reported instead of recursing forever,
// and memoizes results so each node is resolved at most once per read.
type walk struct {
	active map[*Node]bool
	values map[*Node]ValueResult
	units  map[*Node]UnitResult
	warned map[*Node]bool
}

func newWalk() *walk {
	return &walk{
		active: make(map[*Node]bool),
		values: make(map[*Node]ValueResult),
		units:  make(map[*Node]UnitResult),
		warned: make(map[*Node]bool),
	}
}

// cycleSignal travels up the resolution stack from the frame that found
// origin already in progress back to origin's own frame.
type cycleSignal struct {
	origin *Node
}

// enter marks n as in progress, or returns a signal if it already is.
func (w *walk) enter(n *Node) *cycleSignal {
	if w.active[n] {
		return &cycleSignal{origin: n}
	}
	w.active[n] = true
	return nil
}

func (w *walk) leave(n *Node) {
	delete(w.active, n)
}

// participate records the cycle error for both results of n and logs one
// warning per node per read. It reports whether the cycle closes at n.
func (w *walk) participate(n *Node, sig *cycleSignal) bool {
	w.values[n] = valueError(CycleDetected)
	w.units[n] = UnitResult{Error: CycleDetected}
	if !w.warned[n] {
		w.warned[n] = true
		n.logger().Warn("Cycle detected while resolving node.", "node_id", n.id, "label", n.Label(), "origin_id", sig.origin.id)
	}
	return sig.origin == n
}
