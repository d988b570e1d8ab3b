package diagram

import (
	"context"
	"errors"

	"github.com/specialistvlad/unitgridgo/internal/ctxlog"
	"github.com/specialistvlad/unitgridgo/internal/dag"
	"github.com/specialistvlad/unitgridgo/internal/node"
)

// Row is the resolved state of one node.
type Row struct {
	ID      string `json:"id"`
	Label   string `json:"label"`
	Value   string `json:"value"`
	Unit    string `json:"unit,omitempty"`
	Error   string `json:"error,omitempty"`
	Message string `json:"message,omitempty"`
	// Inputs and Dependents are the live references into and out of the
	// node. Stale references are left out.
	Inputs     []string `json:"inputs,omitempty"`
	Dependents []string `json:"dependents,omitempty"`
}

// Report is the result of evaluating a whole diagram.
type Report struct {
	// Rows are in dependency order: every node follows its inputs.
	Rows []Row `json:"rows"`
	// Cycles lists the groups of nodes that reference each other.
	Cycles [][]string `json:"cycles,omitempty"`
}

// Topology builds the dependency graph of the diagram's current references.
// Stale references are left out.
func (d *Diagram) Topology() *dag.Graph {
	g := dag.New()
	nodes := d.Nodes()
	for _, n := range nodes {
		g.AddNode(n.ID())
	}
	for _, n := range nodes {
		for _, in := range n.InputIDs() {
			// Unknown ids are the stale references; there is no edge to draw.
			_ = g.AddEdge(in, n.ID())
		}
	}
	return g
}

// Evaluate resolves every node in dependency order. Cycles do not stop the
// evaluation; the nodes involved report the cycle error in their rows.
func (d *Diagram) Evaluate(ctx context.Context) (Report, error) {
	logger := ctxlog.FromContext(ctx)

	topology := d.Topology()
	var report Report
	var cycleErr *dag.CycleError
	if errors.As(topology.DetectCycles(), &cycleErr) {
		report.Cycles = cycleErr.Groups
		logger.Warn("Diagram contains cycles.", "groups", len(cycleErr.Groups))
	}
	order := topology.Order()
	logger.Debug("Evaluating diagram.", "nodes", len(order))

	for _, id := range order {
		if err := ctx.Err(); err != nil {
			return Report{}, err
		}
		n := d.Node(id)
		if n == nil {
			continue
		}
		row := d.rowOf(n)
		var err error
		if row.Inputs, err = topology.Dependencies(id); err != nil {
			return Report{}, err
		}
		if row.Dependents, err = topology.Dependents(id); err != nil {
			return Report{}, err
		}
		report.Rows = append(report.Rows, row)
		logger.Debug("Evaluated node.", "node_id", id)
	}
	return report, nil
}

func (d *Diagram) rowOf(n *node.Node) Row {
	v := n.ComputedValueResult()
	u := n.ComputedUnitResult()

	row := Row{
		ID:      n.ID(),
		Label:   n.Label(),
		Value:   "NaN",
		Unit:    u.Unit,
		Error:   v.Error,
		Message: v.Message,
	}
	if v.Valid {
		row.Value = node.FormatValue(v.Value, d.language)
	}
	if row.Error == "" {
		row.Error = u.Error
	}
	if row.Message == "" {
		row.Message = u.Message
	}
	return row
}
