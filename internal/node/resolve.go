package node

import (
	"errors"
	"fmt"
	"math"

	"github.com/specialistvlad/unitgridgo/internal/mathexpr"
	"github.com/specialistvlad/unitgridgo/internal/units"
)

// ComputedValueResult resolves the node's value from its inputs.
func (n *Node) ComputedValueResult() ValueResult {
	r, _ := newWalk().value(n)
	return r
}

// ComputedUnitResult resolves the node's unit from its inputs.
func (n *Node) ComputedUnitResult() UnitResult {
	r, _ := newWalk().unit(n)
	return r
}

// ComputedValue returns the resolved value, if there is one.
func (n *Node) ComputedValue() (float64, bool) {
	r := n.ComputedValueResult()
	return r.Value, r.Valid
}

func (n *Node) ComputedValueError() string   { return n.ComputedValueResult().Error }
func (n *Node) ComputedValueMessage() string { return n.ComputedValueResult().Message }
func (n *Node) ComputedUnit() string         { return n.ComputedUnitResult().Unit }
func (n *Node) ComputedUnitError() string    { return n.ComputedUnitResult().Error }
func (n *Node) ComputedUnitMessage() string  { return n.ComputedUnitResult().Message }

func (w *walk) value(n *Node) (ValueResult, *cycleSignal) {
	if r, ok := w.values[n]; ok {
		return r, nil
	}
	if sig := w.enter(n); sig != nil {
		return ValueResult{}, sig
	}
	defer w.leave(n)

	r, sig := w.resolveValue(n)
	if sig != nil {
		if w.participate(n, sig) {
			return w.values[n], nil
		}
		return ValueResult{}, sig
	}
	w.values[n] = r
	return r, nil
}

func (w *walk) unit(n *Node) (UnitResult, *cycleSignal) {
	if r, ok := w.units[n]; ok {
		return r, nil
	}
	if sig := w.enter(n); sig != nil {
		return UnitResult{}, sig
	}
	defer w.leave(n)

	r, sig := w.resolveUnit(n)
	if sig != nil {
		if w.participate(n, sig) {
			return w.units[n], nil
		}
		return UnitResult{}, sig
	}
	w.units[n] = r
	return r, nil
}

// plan is what both resolvers need before evaluating: the effective
// expression and the present inputs.
type plan struct {
	expr    string
	ok      bool
	present int
	inputs  []operand
	// passThrough is set for a lone input with no expression or own unit.
	passThrough bool
}

// operand is a present input. Every operand is resolved so that reference
// cycles surface even through inputs the expression ignores, but only used
// operands must be evaluable.
type operand struct {
	token string
	node  *Node
	used  bool
}

func (n *Node) plan() plan {
	inputs := n.Inputs()
	p := plan{}
	for _, in := range inputs {
		if in != nil {
			p.present++
		}
	}
	if p.present == 0 {
		return p
	}
	p.expr, p.ok = n.EffectiveExpression()
	if !p.ok {
		return p
	}
	p.passThrough = p.present == 1 && n.expression == "" && n.unit == ""

	referenced := map[string]bool{}
	if syms, err := mathexpr.Symbols(p.expr); err == nil {
		for _, s := range syms {
			referenced[s] = true
		}
	} else {
		referenced = nil
	}
	for i, in := range inputs {
		if in == nil {
			continue
		}
		token := InputToken(i)
		p.inputs = append(p.inputs, operand{token: token, node: in, used: referenced == nil || referenced[token]})
	}
	return p
}

func (w *walk) resolveValue(n *Node) (ValueResult, *cycleSignal) {
	p := n.plan()
	if p.present == 0 {
		if v, ok := n.CurrentValue(); ok {
			return valueOf(v), nil
		}
		return ValueResult{}, nil
	}
	if !p.ok {
		if p.present == 2 {
			return valueError(NoOperation), nil
		}
		return valueError(NoExpression), nil
	}

	ev := n.evaluator()
	scope := make(map[string]any, len(p.inputs))
	var last ValueResult
	for _, op := range p.inputs {
		vr, sig := w.value(op.node)
		if sig != nil {
			return ValueResult{}, sig
		}
		ur, sig := w.unit(op.node)
		if sig != nil {
			return ValueResult{}, sig
		}
		if !op.used {
			continue
		}
		arg, ok := evaluable(ev, vr, ur, false)
		if !ok {
			if vr.Valid {
				// The unit side reports the actual problem.
				return valueMessage(CannotComputeValue), nil
			}
			return ValueResult{}, nil
		}
		scope[op.token] = arg
		last = vr
	}
	if p.passThrough {
		return valueOf(last.Value), nil
	}

	res, err := ev.Evaluate(p.expr, scope)
	if err != nil {
		return valueError(classify(err)), nil
	}
	switch r := res.(type) {
	case float64:
		if math.IsNaN(r) {
			return valueMessage(CannotComputeValue), nil
		}
		return valueOf(r), nil
	case *units.Quantity:
		if !r.HasValue() {
			return ValueResult{}, nil
		}
		v, _ := r.Reduced().Value()
		if math.IsNaN(v) {
			return valueMessage(CannotComputeValue), nil
		}
		return valueOf(v), nil
	default:
		return valueError(UnknownResultType(fmt.Sprintf("%T", res))), nil
	}
}

func (w *walk) resolveUnit(n *Node) (UnitResult, *cycleSignal) {
	p := n.plan()
	if p.present == 0 {
		return UnitResult{Unit: n.unit}, nil
	}
	if !p.ok {
		// The value side already reports the missing operation.
		return UnitResult{}, nil
	}

	ev := n.evaluator()
	scope := make(map[string]any, len(p.inputs))
	withUnits := false
	var last UnitResult
	for _, op := range p.inputs {
		vr, sig := w.value(op.node)
		if sig != nil {
			return UnitResult{}, sig
		}
		ur, sig := w.unit(op.node)
		if sig != nil {
			return UnitResult{}, sig
		}
		if !op.used {
			continue
		}
		arg, ok := evaluable(ev, vr, ur, true)
		if !ok {
			return UnitResult{Error: InvalidInputUnits}, nil
		}
		if _, isQuantity := arg.(*units.Quantity); isQuantity {
			withUnits = true
		}
		scope[op.token] = arg
		last = ur
	}
	if p.passThrough {
		return UnitResult{Unit: last.Unit}, nil
	}

	res, err := ev.Evaluate(p.expr, scope)
	if err != nil {
		msg := classify(err)
		if msg == IncompatibleUnits {
			// Keep the requested output unit visible next to the error.
			return UnitResult{Unit: n.unit, Error: msg}, nil
		}
		return UnitResult{Error: msg}, nil
	}
	switch r := res.(type) {
	case float64:
		if withUnits {
			return UnitResult{Message: UnitsCancel}, nil
		}
		return UnitResult{}, nil
	case *units.Quantity:
		u := r.Reduced().FormatUnits()
		if u == "" {
			return UnitResult{Message: UnitsCancel}, nil
		}
		return UnitResult{Unit: u}, nil
	default:
		return UnitResult{Error: UnknownResultType(fmt.Sprintf("%T", res))}, nil
	}
}

// evaluable converts an input's resolved value and unit into an expression
// operand: a plain number, or a quantity when the input has a unit. With
// orOne a missing value stands in as 1 so unit algebra can still proceed.
func evaluable(ev *mathexpr.Evaluator, vr ValueResult, ur UnitResult, orOne bool) (any, bool) {
	v := vr.Value
	if !vr.Valid {
		if !orOne {
			return nil, false
		}
		v = 1
	}
	if ur.Unit == "" {
		return v, true
	}
	// Units typed on nodes are accepted without declaring them first.
	if err := ev.Registry().RegisterUnknown(ur.Unit); err != nil {
		return nil, false
	}
	q, err := ev.Unit(v, ur.Unit)
	if err != nil {
		return nil, false
	}
	return q, true
}

// evaluator returns a fresh evaluator over the graph's registry, with the
// node's own unit registered so it can be used as a conversion target.
func (n *Node) evaluator() *mathexpr.Evaluator {
	reg := n.registry()
	if n.unit != "" {
		_ = reg.RegisterUnknown(n.unit)
	}
	return mathexpr.New(reg)
}

func classify(err error) string {
	var unknown *mathexpr.UnknownSymbolError
	switch {
	case errors.Is(err, units.ErrIncompatibleUnits), errors.Is(err, units.ErrUnexpectedType):
		return IncompatibleUnits
	case errors.As(err, &unknown):
		return UnknownSymbol(unknown.Name)
	default:
		return UnknownError(err.Error())
	}
}
