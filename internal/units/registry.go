package units

import (
	"fmt"
	"maps"
	"sort"
	"sync"

	"gonum.org/v1/gonum/unit"
)

// Registry is the shared unit vocabulary: the built-in table plus custom
// units registered at runtime. It is safe for concurrent use. Registration is
// additive; nothing is ever removed.
type Registry struct {
	mu     sync.RWMutex
	custom map[string]*Definition
}

// NewRegistry creates a registry that knows only the built-in units.
func NewRegistry() *Registry {
	return &Registry{custom: make(map[string]*Definition)}
}

// Clone returns an independent registry holding the same custom units.
// Registering into the clone leaves r untouched.
func (r *Registry) Clone() *Registry {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return &Registry{custom: maps.Clone(r.custom)}
}

// Option configures a RegisterUnit call.
type Option func(*registration)

type registration struct {
	aliases []string
}

// WithAliases adds alternative spellings that resolve to the same unit,
// e.g. "cats" for "cat".
func WithAliases(aliases ...string) Option {
	return func(r *registration) {
		r.aliases = append(r.aliases, aliases...)
	}
}

// RegisterUnit adds a custom unit. Registering a known symbol again is a
// no-op apart from binding any new aliases to it.
func (r *Registry) RegisterUnit(symbol string, opts ...Option) error {
	var reg registration
	for _, opt := range opts {
		opt(&reg)
	}

	names := append([]string{symbol}, reg.aliases...)
	for _, name := range names {
		if !ValidSymbol(name) {
			return fmt.Errorf("%w: %q", ErrInvalidSymbol, name)
		}
		if IsBuiltin(name) {
			return fmt.Errorf("%w: %q", ErrBuiltinUnit, name)
		}
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	root := r.custom[symbol]
	if root != nil {
		root = root.Root()
	}
	for _, alias := range reg.aliases {
		if existing, ok := r.custom[alias]; ok && (root == nil || existing.Root() != root) {
			return fmt.Errorf("%w: %q is bound to %q", ErrAliasConflict, alias, existing.Root().Name)
		}
	}

	if root == nil {
		root = &Definition{
			Name:       symbol,
			Dimensions: unit.Dimensions{customDimension(symbol): 1},
			Scale:      1,
			custom:     true,
		}
		r.custom[symbol] = root
	}
	for _, alias := range reg.aliases {
		if _, ok := r.custom[alias]; ok {
			continue
		}
		r.custom[alias] = &Definition{
			Name:       alias,
			Dimensions: root.Dimensions,
			Scale:      1,
			custom:     true,
			root:       root,
		}
	}
	return nil
}

// Known reports whether name resolves to a unit.
func (r *Registry) Known(name string) bool {
	_, ok := r.Lookup(name)
	return ok
}

// Lookup resolves a single unit name, prefixed or not. A nil registry
// resolves built-in units only.
func (r *Registry) Lookup(name string) (Term, bool) {
	if t, ok := lookupBuiltin(name); ok {
		return t, true
	}
	if r == nil {
		return Term{}, false
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	if d, ok := r.custom[name]; ok {
		return Term{Def: d, Power: 1}, true
	}
	return Term{}, false
}

// Parse resolves a unit string such as "kg m / s^2" into its terms.
func (r *Registry) Parse(s string) ([]Term, error) {
	raw, err := parseRaw(s)
	if err != nil {
		return nil, err
	}
	terms := make([]Term, 0, len(raw))
	for _, rt := range raw {
		if rt.power == 0 {
			continue
		}
		t, ok := r.Lookup(rt.name)
		if !ok {
			return nil, &UnknownUnitError{Name: rt.name}
		}
		t.Power = rt.power
		terms = append(terms, t)
	}
	return terms, nil
}

// RegisterUnknown registers every identifier in a unit string that is not
// already a unit. It lets users type units such as "widgets / day" without
// declaring "widgets" first.
func (r *Registry) RegisterUnknown(s string) error {
	raw, err := parseRaw(s)
	if err != nil {
		return err
	}
	for _, rt := range raw {
		if r.Known(rt.name) {
			continue
		}
		if err := r.RegisterUnit(rt.name); err != nil {
			return err
		}
	}
	return nil
}

// Custom lists the registered custom unit names, aliases included, sorted.
func (r *Registry) Custom() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.custom))
	for name := range r.custom {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
