package node

import (
	"strconv"

	"github.com/specialistvlad/unitgridgo/internal/mathexpr"
)

// InputRef describes one slot of a node's input list for expression building.
type InputRef struct {
	// Name is the input node's symbolic name, if any.
	Name string
	// Present is false for a reference whose node is gone.
	Present bool
}

// InputToken is the variable an input is bound to inside an effective
// expression. It is derived from the input's position in the list.
func InputToken(i int) string {
	return "input_" + strconv.Itoa(i)
}

// BuildExpression derives the expression a node evaluates.
//
// A user expression has input names rewritten to their tokens. Without one,
// two inputs and an operation give "input_0 <op> input_1", and a single input
// passes through. Anything else yields no expression. A non-empty unit wraps
// the result as a conversion: "(<expr>) to <unit>".
func BuildExpression(expression string, op Operation, inputs []InputRef, unit string) (string, bool) {
	var present []int
	for i, in := range inputs {
		if in.Present {
			present = append(present, i)
		}
	}

	var base string
	switch {
	case expression != "":
		base = substituteNames(expression, inputs)
	case len(present) == 2 && op != OperationNone:
		base = InputToken(present[0]) + " " + op.Symbol() + " " + InputToken(present[1])
	case len(present) == 1:
		base = InputToken(present[0])
	default:
		return "", false
	}

	if unit != "" {
		return "(" + base + ") to " + unit, true
	}
	return base, true
}

// substituteNames rewrites standalone input names to input tokens. The first
// input with a given name wins. Text that cannot be tokenized is returned as
// is; evaluating it reports the syntax error.
func substituteNames(expression string, inputs []InputRef) string {
	names := make(map[string]string)
	for i, in := range inputs {
		if !in.Present || in.Name == "" {
			continue
		}
		if _, taken := names[in.Name]; !taken {
			names[in.Name] = InputToken(i)
		}
	}
	if len(names) == 0 {
		return expression
	}
	out, err := mathexpr.RenameSymbols(expression, names)
	if err != nil {
		return expression
	}
	return out
}

// EffectiveExpression returns the expression the node currently evaluates,
// or false when it is under-specified.
func (n *Node) EffectiveExpression() (string, bool) {
	return BuildExpression(n.expression, n.operation, n.inputRefs(), n.unit)
}

func (n *Node) inputRefs() []InputRef {
	refs := make([]InputRef, len(n.inputs))
	for i, in := range n.Inputs() {
		if in != nil {
			refs[i] = InputRef{Name: in.name, Present: true}
		}
	}
	return refs
}
