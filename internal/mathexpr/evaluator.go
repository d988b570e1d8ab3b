package mathexpr

import (
	"fmt"
	"math"

	"github.com/specialistvlad/unitgridgo/internal/units"
)

// Evaluator evaluates expressions against a shared unit registry. Each
// evaluator keeps its own display preferences, recorded from the units the
// caller writes, so two evaluators over one registry can simplify the same
// result differently.
type Evaluator struct {
	registry *units.Registry
	system   *units.System
}

// New returns an evaluator bound to reg. A nil registry knows built-in
// units only.
func New(reg *units.Registry) *Evaluator {
	return &Evaluator{registry: reg, system: units.NewSystem()}
}

// Registry returns the unit registry the evaluator resolves names against.
func (e *Evaluator) Registry() *units.Registry {
	return e.registry
}

// Unit returns value in the given unit and records the unit as the
// preferred display unit for its dimensions.
func (e *Evaluator) Unit(value float64, unit string) (*units.Quantity, error) {
	terms, err := e.registry.Parse(unit)
	if err != nil {
		return nil, err
	}
	e.system.Prefer(terms...)
	return units.NewQuantity(value, terms).Bind(e.system), nil
}

// UnitOnly returns a bare unit without a magnitude.
func (e *Evaluator) UnitOnly(unit string) (*units.Quantity, error) {
	terms, err := e.registry.Parse(unit)
	if err != nil {
		return nil, err
	}
	e.system.Prefer(terms...)
	return units.NewUnit(terms).Bind(e.system), nil
}

// Evaluate parses and evaluates expr. Scope values must be float64, int or
// *units.Quantity. The result is a float64 or a *units.Quantity; products
// and quotients whose units cancel come back as float64 in SI terms.
func (e *Evaluator) Evaluate(expr string, scope map[string]any) (any, error) {
	root, err := parse(expr)
	if err != nil {
		return nil, err
	}
	return root.eval(&env{scope: scope, ev: e})
}

type env struct {
	scope map[string]any
	ev    *Evaluator
}

func (n *numberLit) eval(*env) (any, error) {
	return n.v, nil
}

func (n *symbolRef) eval(env *env) (any, error) {
	if v, ok := env.scope[n.name]; ok {
		switch tv := v.(type) {
		case float64:
			return tv, nil
		case int:
			return float64(tv), nil
		case *units.Quantity:
			return tv, nil
		default:
			return nil, fmt.Errorf("%w: %s is %T", units.ErrUnexpectedType, n.name, v)
		}
	}
	if term, ok := env.ev.registry.Lookup(n.name); ok {
		env.ev.system.Prefer(term)
		return units.NewUnit([]units.Term{term}).Bind(env.ev.system), nil
	}
	return nil, &UnknownSymbolError{Name: n.name}
}

func (n *unaryExpr) eval(env *env) (any, error) {
	x, err := n.x.eval(env)
	if err != nil {
		return nil, err
	}
	if n.op == "+" {
		return x, nil
	}
	switch v := x.(type) {
	case float64:
		return -v, nil
	case *units.Quantity:
		return v.Neg(), nil
	}
	return nil, typeError("negate", x, nil)
}

func (n *binaryExpr) eval(env *env) (any, error) {
	x, err := n.x.eval(env)
	if err != nil {
		return nil, err
	}
	y, err := n.y.eval(env)
	if err != nil {
		return nil, err
	}
	switch n.op {
	case "+":
		return add(x, y, false)
	case "-":
		return add(x, y, true)
	case "*":
		return multiply(x, y)
	case "/":
		return divide(x, y)
	case "^":
		return power(x, y)
	}
	return nil, fmt.Errorf("unsupported operator %q", n.op)
}

func (n *convertExpr) eval(env *env) (any, error) {
	x, err := n.x.eval(env)
	if err != nil {
		return nil, err
	}
	target, err := n.unitTarget(env)
	if err != nil {
		return nil, err
	}
	q, ok := x.(*units.Quantity)
	if !ok {
		return nil, typeError("convert", x, target)
	}
	t, ok := target.(*units.Quantity)
	if !ok {
		return nil, typeError("convert", x, target)
	}
	return q.To(t)
}

// unitTarget reads the conversion target as a unit string when it is one, so
// "a to 1/s" converts to a bare "s^-1" instead of evaluating 1 divided by s.
func (n *convertExpr) unitTarget(env *env) (any, error) {
	inScope := false
	n.target.symbols(func(name string) {
		if _, ok := env.scope[name]; ok {
			inScope = true
		}
	})
	if !inScope {
		if terms, err := env.ev.registry.Parse(n.text); err == nil {
			env.ev.system.Prefer(terms...)
			return units.NewUnit(terms).Bind(env.ev.system), nil
		}
	}
	return n.target.eval(env)
}

func add(x, y any, subtract bool) (any, error) {
	verb := "add"
	if subtract {
		verb = "subtract"
	}
	switch a := x.(type) {
	case float64:
		if b, ok := y.(float64); ok {
			if subtract {
				return a - b, nil
			}
			return a + b, nil
		}
	case *units.Quantity:
		if b, ok := y.(*units.Quantity); ok {
			if subtract {
				return a.Sub(b)
			}
			return a.Add(b)
		}
	}
	return nil, typeError(verb, x, y)
}

func multiply(x, y any) (any, error) {
	switch a := x.(type) {
	case float64:
		switch b := y.(type) {
		case float64:
			return a * b, nil
		case *units.Quantity:
			return b.Scale(a), nil
		}
	case *units.Quantity:
		switch b := y.(type) {
		case float64:
			return a.Scale(b), nil
		case *units.Quantity:
			return numericIfUnitless(a.Mul(b)), nil
		}
	}
	return nil, typeError("multiply", x, y)
}

func divide(x, y any) (any, error) {
	switch a := x.(type) {
	case float64:
		switch b := y.(type) {
		case float64:
			return a / b, nil
		case *units.Quantity:
			return b.Inverse().Scale(a), nil
		}
	case *units.Quantity:
		switch b := y.(type) {
		case float64:
			return a.Scale(1 / b), nil
		case *units.Quantity:
			return numericIfUnitless(a.Div(b)), nil
		}
	}
	return nil, typeError("divide", x, y)
}

func power(x, y any) (any, error) {
	p, ok := y.(float64)
	if !ok {
		return nil, typeError("raise", x, y)
	}
	switch a := x.(type) {
	case float64:
		return math.Pow(a, p), nil
	case *units.Quantity:
		q, err := a.Pow(p)
		if err != nil {
			return nil, err
		}
		return numericIfUnitless(q), nil
	}
	return nil, typeError("raise", x, y)
}

// numericIfUnitless turns a product whose dimensions cancel into a plain
// number expressed in SI terms, so "m / cm" yields 100. Bare units count as
// one of themselves, so "s / s" is 1.
func numericIfUnitless(q *units.Quantity) any {
	if q.Dimensionless() {
		return q.SIValue()
	}
	return q
}

func typeError(verb string, x, y any) error {
	if y == nil {
		return fmt.Errorf("%w: cannot %s %s", units.ErrUnexpectedType, verb, describe(x))
	}
	return fmt.Errorf("%w: cannot %s %s and %s", units.ErrUnexpectedType, verb, describe(x), describe(y))
}

func describe(v any) string {
	switch tv := v.(type) {
	case float64:
		return "number " + units.FormatNumber(tv)
	case *units.Quantity:
		return "unit " + tv.String()
	}
	return fmt.Sprintf("%T", v)
}
