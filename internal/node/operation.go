package node

import (
	"fmt"
	"strings"
)

// Operation is the two-input arithmetic shorthand used when a node has no
// expression.
type Operation int

const (
	// OperationNone leaves a two-input node without a derived expression.
	OperationNone Operation = iota
	Add
	Subtract
	Multiply
	Divide
)

var operationNames = map[Operation]string{
	OperationNone: "",
	Add:           "add",
	Subtract:      "subtract",
	Multiply:      "multiply",
	Divide:        "divide",
}

var operationSymbols = map[Operation]string{
	Add:      "+",
	Subtract: "-",
	Multiply: "×",
	Divide:   "÷",
}

// String returns the lowercase name used in diagram files.
func (o Operation) String() string {
	return operationNames[o]
}

// Symbol returns the operator written into synthesized expressions.
func (o Operation) Symbol() string {
	return operationSymbols[o]
}

// ParseOperation accepts an operation name or its operator symbol. The empty
// string is OperationNone.
func ParseOperation(s string) (Operation, error) {
	s = strings.TrimSpace(strings.ToLower(s))
	switch s {
	case "":
		return OperationNone, nil
	case "add", "+":
		return Add, nil
	case "subtract", "-", "−":
		return Subtract, nil
	case "multiply", "*", "×":
		return Multiply, nil
	case "divide", "/", "÷":
		return Divide, nil
	}
	return OperationNone, fmt.Errorf("unknown operation %q", s)
}
