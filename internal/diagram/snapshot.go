package diagram

import (
	"fmt"
	"io"

	"github.com/goccy/go-json"

	"github.com/specialistvlad/unitgridgo/internal/node"
	"github.com/specialistvlad/unitgridgo/internal/units"
)

// Snapshot is the serializable state of a diagram.
type Snapshot struct {
	Units []UnitDecl  `json:"units,omitempty" yaml:"units,omitempty"`
	Nodes []NodeState `json:"nodes" yaml:"nodes"`
}

// UnitDecl is a custom unit declaration.
type UnitDecl struct {
	Symbol  string   `json:"symbol" yaml:"symbol"`
	Aliases []string `json:"aliases,omitempty" yaml:"aliases,omitempty"`
}

// NodeState holds every stored field of a node. Computed results are never
// part of it. Absent values are nil.
type NodeState struct {
	ID             string   `json:"id" yaml:"id"`
	Name           string   `json:"name,omitempty" yaml:"name,omitempty"`
	DisplayName    string   `json:"displayName,omitempty" yaml:"displayName,omitempty"`
	Description    string   `json:"description,omitempty" yaml:"description,omitempty"`
	Value          *float64 `json:"value,omitempty" yaml:"value,omitempty"`
	TemporaryValue *float64 `json:"temporaryValue,omitempty" yaml:"temporaryValue,omitempty"`
	Unit           string   `json:"unit,omitempty" yaml:"unit,omitempty"`
	Expression     string   `json:"expression,omitempty" yaml:"expression,omitempty"`
	Operation      string   `json:"operation,omitempty" yaml:"operation,omitempty"`
	Inputs         []string `json:"inputs" yaml:"inputs"`
	Labels         []string `json:"labels" yaml:"labels"`
	Color          string   `json:"color,omitempty" yaml:"color,omitempty"`
	Icon           string   `json:"icon,omitempty" yaml:"icon,omitempty"`
}

// StateProvider is the bridge a host uses to persist and restore a diagram.
type StateProvider interface {
	State() Snapshot
	SetState(Snapshot) error
}

var _ StateProvider = (*Diagram)(nil)

// State implements StateProvider.
func (d *Diagram) State() Snapshot { return d.Export() }

// SetState implements StateProvider.
func (d *Diagram) SetState(s Snapshot) error { return d.Import(s) }

// Export captures every node and declared unit.
func (d *Diagram) Export() Snapshot {
	d.mu.RLock()
	decls := make([]UnitDecl, len(d.declared))
	for i, u := range d.declared {
		decls[i] = UnitDecl{Symbol: u.Symbol, Aliases: append([]string(nil), u.Aliases...)}
	}
	d.mu.RUnlock()

	s := Snapshot{Units: decls}
	for _, n := range d.Nodes() {
		s.Nodes = append(s.Nodes, StateOf(n))
	}
	return s
}

// StateOf captures a single node.
func StateOf(n *node.Node) NodeState {
	st := NodeState{
		ID:          n.ID(),
		Name:        n.Name(),
		DisplayName: n.DisplayName(),
		Description: n.Description(),
		Unit:        n.Unit(),
		Expression:  n.Expression(),
		Operation:   n.Operation().String(),
		Inputs:      n.InputIDs(),
		Labels:      n.Labels(),
		Color:       n.Color(),
		Icon:        n.Icon(),
	}
	if v, ok := n.Value(); ok {
		st.Value = &v
	}
	if v, ok := n.TemporaryValue(); ok {
		st.TemporaryValue = &v
	}
	if st.Inputs == nil {
		st.Inputs = []string{}
	}
	if st.Labels == nil {
		st.Labels = []string{}
	}
	return st
}

// Options converts the state back into node options.
func (st NodeState) Options() ([]node.Option, error) {
	op, err := node.ParseOperation(st.Operation)
	if err != nil {
		return nil, err
	}
	opts := []node.Option{
		node.WithName(st.Name),
		node.WithDisplayName(st.DisplayName),
		node.WithDescription(st.Description),
		node.WithUnit(st.Unit),
		node.WithExpression(st.Expression),
		node.WithOperation(op),
		node.WithInputs(st.Inputs...),
		node.WithLabels(st.Labels...),
		node.WithColor(st.Color),
		node.WithIcon(st.Icon),
	}
	if st.ID != "" {
		opts = append(opts, node.WithID(st.ID))
	}
	if st.Value != nil {
		opts = append(opts, node.WithValue(*st.Value))
	}
	if st.TemporaryValue != nil {
		opts = append(opts, node.WithTemporaryValue(*st.TemporaryValue))
	}
	return opts, nil
}

// Import replaces the diagram's nodes with those in s and declares its
// units. Nothing changes if any node or unit is invalid. Nodes without an id
// get a generated one.
func (d *Diagram) Import(s Snapshot) error {
	nodes := make([]*node.Node, 0, len(s.Nodes))
	seen := make(map[string]bool, len(s.Nodes))
	for i, st := range s.Nodes {
		opts, err := st.Options()
		if err != nil {
			return fmt.Errorf("node %d (%s): %w", i, st.ID, err)
		}
		n, err := node.New(opts...)
		if err != nil {
			return fmt.Errorf("node %d (%s): %w", i, st.ID, err)
		}
		if seen[n.ID()] {
			return fmt.Errorf("node %d: %w: %s", i, ErrDuplicateNode, n.ID())
		}
		seen[n.ID()] = true
		nodes = append(nodes, n)
	}

	// Units are tried on a scratch registry first so a bad declaration
	// leaves none of the others registered.
	scratch := d.units.Clone()
	for _, u := range s.Units {
		if err := scratch.RegisterUnit(u.Symbol, units.WithAliases(u.Aliases...)); err != nil {
			return fmt.Errorf("declaring unit %q: %w", u.Symbol, err)
		}
	}
	for _, u := range s.Units {
		if err := d.DeclareUnit(u.Symbol, u.Aliases...); err != nil {
			return err
		}
	}

	d.mu.Lock()
	for _, old := range d.nodes {
		old.Attach(nil)
	}
	d.nodes = make(map[string]*node.Node, len(nodes))
	d.order = make([]string, 0, len(nodes))
	for _, n := range nodes {
		d.nodes[n.ID()] = n
		d.order = append(d.order, n.ID())
		n.Attach(d)
	}
	d.mu.Unlock()

	d.logger.Debug("Imported diagram snapshot.", "nodes", len(nodes), "units", len(s.Units))
	return nil
}

// EncodeJSON writes the diagram snapshot as indented JSON.
func (d *Diagram) EncodeJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(d.Export()); err != nil {
		return fmt.Errorf("encoding diagram: %w", err)
	}
	return nil
}

// DecodeJSON reads a JSON snapshot and imports it.
func (d *Diagram) DecodeJSON(r io.Reader) error {
	s, err := ReadSnapshot(r)
	if err != nil {
		return err
	}
	return d.Import(s)
}

// ReadSnapshot decodes a JSON snapshot. Unknown fields are rejected.
func ReadSnapshot(r io.Reader) (Snapshot, error) {
	var s Snapshot
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&s); err != nil {
		return Snapshot{}, fmt.Errorf("decoding diagram: %w", err)
	}
	return s, nil
}
