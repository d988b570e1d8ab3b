package diagram

import (
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"

	"golang.org/x/text/language"

	"github.com/specialistvlad/unitgridgo/internal/node"
	"github.com/specialistvlad/unitgridgo/internal/units"
)

// ErrDuplicateNode is returned when a node id is already taken.
var ErrDuplicateNode = errors.New("duplicate node id")

// Diagram owns a set of nodes and the unit registry they share. It is the
// node.Graph its nodes resolve their inputs through.
//
// Lookups are safe for concurrent use. Nodes themselves are not safe for
// concurrent mutation, so edits and reads of one diagram should not overlap.
type Diagram struct {
	mu sync.RWMutex
	// nodes is keyed by id; order keeps insertion order for listings.
	nodes map[string]*node.Node
	order []string
	// declared lists custom units registered through DeclareUnit, so they
	// survive a snapshot round trip.
	declared []UnitDecl

	units    *units.Registry
	logger   *slog.Logger
	language language.Tag
}

// Option configures a Diagram.
type Option func(*Diagram)

// WithLogger sets the logger that receives cycle warnings.
func WithLogger(logger *slog.Logger) Option {
	return func(d *Diagram) {
		if logger != nil {
			d.logger = logger
		}
	}
}

// WithLanguage sets the locale used for display values.
func WithLanguage(tag language.Tag) Option {
	return func(d *Diagram) {
		d.language = tag
	}
}

// New creates an empty diagram over reg. A nil registry is replaced with a
// fresh one.
func New(reg *units.Registry, opts ...Option) *Diagram {
	if reg == nil {
		reg = units.NewRegistry()
	}
	d := &Diagram{
		nodes:    make(map[string]*node.Node),
		units:    reg,
		logger:   slog.Default(),
		language: language.English,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Lookup implements node.Graph.
func (d *Diagram) Lookup(id string) (*node.Node, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	n, ok := d.nodes[id]
	return n, ok
}

// Units implements node.Graph.
func (d *Diagram) Units() *units.Registry { return d.units }

// Logger implements node.Graph.
func (d *Diagram) Logger() *slog.Logger { return d.logger }

// Language implements node.Graph.
func (d *Diagram) Language() language.Tag { return d.language }

// NewNode creates a node from opts and adds it.
func (d *Diagram) NewNode(opts ...node.Option) (*node.Node, error) {
	n, err := node.New(opts...)
	if err != nil {
		return nil, err
	}
	if err := d.Add(n); err != nil {
		return nil, err
	}
	return n, nil
}

// Add attaches n to the diagram.
func (d *Diagram) Add(n *node.Node) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if _, exists := d.nodes[n.ID()]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateNode, n.ID())
	}
	d.nodes[n.ID()] = n
	d.order = append(d.order, n.ID())
	n.Attach(d)
	return nil
}

// Remove detaches the node with the given id and reports whether it existed.
// References to it from other nodes are kept; they stop resolving until a
// node with the same id is added again.
func (d *Diagram) Remove(id string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	n, ok := d.nodes[id]
	if !ok {
		return false
	}
	delete(d.nodes, id)
	d.order = slices.DeleteFunc(d.order, func(s string) bool { return s == id })
	n.Attach(nil)
	return true
}

// Node returns the node with the given id, or nil.
func (d *Diagram) Node(id string) *node.Node {
	n, _ := d.Lookup(id)
	return n
}

// Nodes returns every node in insertion order.
func (d *Diagram) Nodes() []*node.Node {
	d.mu.RLock()
	defer d.mu.RUnlock()

	out := make([]*node.Node, len(d.order))
	for i, id := range d.order {
		out[i] = d.nodes[id]
	}
	return out
}

// Len returns the number of nodes.
func (d *Diagram) Len() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return len(d.order)
}

// DeclareUnit registers a custom unit with optional aliases and records it
// for export. Declaring the same unit again only adds new aliases.
func (d *Diagram) DeclareUnit(symbol string, aliases ...string) error {
	if err := d.units.RegisterUnit(symbol, units.WithAliases(aliases...)); err != nil {
		return fmt.Errorf("declaring unit %q: %w", symbol, err)
	}
	d.logger.Debug("Declared custom unit.", "symbol", symbol, "aliases", aliases)

	d.mu.Lock()
	defer d.mu.Unlock()
	for i := range d.declared {
		if d.declared[i].Symbol != symbol {
			continue
		}
		for _, a := range aliases {
			if !slices.Contains(d.declared[i].Aliases, a) {
				d.declared[i].Aliases = append(d.declared[i].Aliases, a)
			}
		}
		return nil
	}
	d.declared = append(d.declared, UnitDecl{Symbol: symbol, Aliases: slices.Clone(aliases)})
	return nil
}
