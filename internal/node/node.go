package node

import (
	"fmt"
	"log/slog"
	"math"
	"slices"

	"golang.org/x/text/language"

	"github.com/specialistvlad/unitgridgo/internal/nodeid"
	"github.com/specialistvlad/unitgridgo/internal/units"
)

// DefaultColor is the color of a node that was never given one.
const DefaultColor = "light-gray"

// Graph is the owning collection a node resolves its inputs through.
// Inputs are stored as ids, so a removed node simply stops resolving.
type Graph interface {
	// Lookup returns the node with the given id, if it is still present.
	Lookup(id string) (*Node, bool)
	// Units returns the shared unit registry.
	Units() *units.Registry
	// Logger receives diagnostics such as cycle warnings.
	Logger() *slog.Logger
	// Language selects number formatting for display strings.
	Language() language.Tag
}

// Node is a single quantity in a diagram: an optional own value and unit,
// or a derivation from an ordered list of inputs.
//
// A Node is not safe for concurrent mutation. Computed values are never
// stored; every read re-derives them from the current inputs.
type Node struct {
	// id is the immutable identifier used for references.
	id string

	name        string
	displayName string
	description string

	value    float64
	hasValue bool
	// temp holds an in-progress edit that shadows value until committed.
	temp    float64
	hasTemp bool

	unit       string
	expression string
	operation  Operation

	// inputs are ids of upstream nodes, in operand order.
	inputs []string
	labels []string

	color string
	icon  string

	graph Graph
}

// Option configures a node at construction.
type Option func(*Node) error

// New creates a detached node. Without WithID a random id is generated.
func New(opts ...Option) (*Node, error) {
	n := &Node{color: DefaultColor}
	for _, opt := range opts {
		if err := opt(n); err != nil {
			return nil, err
		}
	}
	if n.id == "" {
		n.id = nodeid.New()
	}
	return n, nil
}

// WithID sets the node id.
func WithID(id string) Option {
	return func(n *Node) error {
		if err := nodeid.Validate(id); err != nil {
			return fmt.Errorf("node id: %w", err)
		}
		n.id = id
		return nil
	}
}

// WithName sets the symbolic name used in expressions.
func WithName(name string) Option {
	return func(n *Node) error {
		n.name = name
		return nil
	}
}

// WithDisplayName sets the long label.
func WithDisplayName(name string) Option {
	return func(n *Node) error {
		n.displayName = name
		return nil
	}
}

// WithDescription sets the free-text description.
func WithDescription(description string) Option {
	return func(n *Node) error {
		n.description = description
		return nil
	}
}

// WithValue sets the own value. Non-finite values leave it absent.
func WithValue(v float64) Option {
	return func(n *Node) error {
		n.SetValue(v)
		return nil
	}
}

// WithTemporaryValue sets an uncommitted value.
func WithTemporaryValue(v float64) Option {
	return func(n *Node) error {
		n.SetTemporaryValue(v)
		return nil
	}
}

// WithUnit sets the own unit.
func WithUnit(unit string) Option {
	return func(n *Node) error {
		n.unit = unit
		return nil
	}
}

// WithExpression sets the user expression.
func WithExpression(expression string) Option {
	return func(n *Node) error {
		n.expression = expression
		return nil
	}
}

// WithOperation sets the operation shorthand.
func WithOperation(op Operation) Option {
	return func(n *Node) error {
		n.operation = op
		return nil
	}
}

// WithInputs sets the input ids in operand order.
func WithInputs(ids ...string) Option {
	return func(n *Node) error {
		n.SetInputs(ids...)
		return nil
	}
}

// WithLabels adds "type:value" labels.
func WithLabels(labels ...string) Option {
	return func(n *Node) error {
		for _, l := range labels {
			if err := n.AddLabel(l); err != nil {
				return err
			}
		}
		return nil
	}
}

// WithColor sets the color. An empty color keeps the default.
func WithColor(color string) Option {
	return func(n *Node) error {
		n.SetColor(color)
		return nil
	}
}

// WithIcon sets the icon name.
func WithIcon(icon string) Option {
	return func(n *Node) error {
		n.icon = icon
		return nil
	}
}

// Attach binds the node to the collection that owns it.
func (n *Node) Attach(g Graph) {
	n.graph = g
}

// ID returns the node's identifier.
func (n *Node) ID() string { return n.id }

func (n *Node) Name() string         { return n.name }
func (n *Node) DisplayName() string  { return n.displayName }
func (n *Node) Description() string  { return n.description }
func (n *Node) Unit() string         { return n.unit }
func (n *Node) Expression() string   { return n.expression }
func (n *Node) Operation() Operation { return n.operation }
func (n *Node) Color() string        { return n.color }
func (n *Node) Icon() string         { return n.icon }

// Label returns the best human label: display name, then name, then id.
func (n *Node) Label() string {
	switch {
	case n.displayName != "":
		return n.displayName
	case n.name != "":
		return n.name
	default:
		return n.id
	}
}

// Value returns the stored own value.
func (n *Node) Value() (float64, bool) {
	return n.value, n.hasValue
}

// TemporaryValue returns the uncommitted value.
func (n *Node) TemporaryValue() (float64, bool) {
	return n.temp, n.hasTemp
}

// CurrentValue returns the temporary value while one is set, else the value.
func (n *Node) CurrentValue() (float64, bool) {
	if n.hasTemp {
		return n.temp, true
	}
	return n.value, n.hasValue
}

func (n *Node) SetName(name string)               { n.name = name }
func (n *Node) SetDisplayName(name string)        { n.displayName = name }
func (n *Node) SetDescription(description string) { n.description = description }
func (n *Node) SetUnit(unit string)               { n.unit = unit }
func (n *Node) SetExpression(expression string)   { n.expression = expression }
func (n *Node) SetOperation(op Operation)         { n.operation = op }
func (n *Node) SetIcon(icon string)               { n.icon = icon }

// SetColor sets the color; an empty string restores the default.
func (n *Node) SetColor(color string) {
	if color == "" {
		color = DefaultColor
	}
	n.color = color
}

// SetValue stores v. NaN and infinities clear the value.
func (n *Node) SetValue(v float64) {
	n.value, n.hasValue = finite(v)
}

// ClearValue removes the own value.
func (n *Node) ClearValue() {
	n.value, n.hasValue = 0, false
}

// SetTemporaryValue stores an uncommitted value. NaN and infinities clear it.
func (n *Node) SetTemporaryValue(v float64) {
	n.temp, n.hasTemp = finite(v)
}

// ClearTemporaryValue drops the uncommitted value.
func (n *Node) ClearTemporaryValue() {
	n.temp, n.hasTemp = 0, false
}

// CommitTemporaryValue moves the temporary value into the own value.
func (n *Node) CommitTemporaryValue() {
	if !n.hasTemp {
		return
	}
	n.value, n.hasValue = n.temp, true
	n.ClearTemporaryValue()
}

func finite(v float64) (float64, bool) {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

// AddInput appends an input reference. An id already present is ignored.
func (n *Node) AddInput(id string) {
	if id == "" || slices.Contains(n.inputs, id) {
		return
	}
	n.inputs = append(n.inputs, id)
}

// RemoveInput drops every reference to id.
func (n *Node) RemoveInput(id string) {
	n.inputs = slices.DeleteFunc(n.inputs, func(s string) bool { return s == id })
}

// SetInputs replaces the input list, dropping empty and repeated ids.
func (n *Node) SetInputs(ids ...string) {
	n.inputs = nil
	for _, id := range ids {
		n.AddInput(id)
	}
}

// InputIDs returns the referenced ids, stale ones included.
func (n *Node) InputIDs() []string {
	return slices.Clone(n.inputs)
}

// NumberOfInputs returns the length of the input list.
func (n *Node) NumberOfInputs() int {
	return len(n.inputs)
}

// Inputs resolves the input list. Entries whose node is gone are nil.
func (n *Node) Inputs() []*Node {
	out := make([]*Node, len(n.inputs))
	for i, id := range n.inputs {
		out[i] = n.lookup(id)
	}
	return out
}

func (n *Node) lookup(id string) *Node {
	if n.graph == nil {
		return nil
	}
	in, ok := n.graph.Lookup(id)
	if !ok {
		return nil
	}
	return in
}

// detachedUnits serves nodes that belong to no graph.
var detachedUnits = units.NewRegistry()

func (n *Node) registry() *units.Registry {
	if n.graph != nil {
		if reg := n.graph.Units(); reg != nil {
			return reg
		}
	}
	return detachedUnits
}

func (n *Node) logger() *slog.Logger {
	if n.graph != nil {
		if l := n.graph.Logger(); l != nil {
			return l
		}
	}
	return slog.Default()
}

func (n *Node) language() language.Tag {
	if n.graph != nil {
		return n.graph.Language()
	}
	return language.English
}
