package node

import "fmt"

// Resolver error strings.
const (
	NoOperation       = "no operation"
	NoExpression      = "no expression"
	IncompatibleUnits = "incompatible units"
	InvalidInputUnits = "invalid input units"
	CycleDetected     = "cycles or loops between cards is not supported"
)

// Resolver messages. These are informational and do not block other results.
const (
	UnitsCancel        = "units cancel"
	CannotComputeValue = "cannot compute value from inputs"
)

// UnknownResultType is the error for an evaluation result that is neither a
// number nor a quantity.
func UnknownResultType(kind string) string {
	return "unknown result type: " + kind
}

// UnknownError wraps an unclassified evaluation failure.
func UnknownError(detail string) string {
	return "unknown error: " + detail
}

// UnknownSymbol is the error for an expression that names no input or unit.
func UnknownSymbol(name string) string {
	return "unknown symbol: " + name
}

// ValueResult is the outcome of resolving a node's value. At most one of a
// valid value, Error and Message is set; all empty means "no value yet".
type ValueResult struct {
	Value   float64
	Valid   bool
	Error   string
	Message string
}

func (r ValueResult) String() string {
	switch {
	case r.Error != "":
		return "error: " + r.Error
	case r.Message != "":
		return "message: " + r.Message
	case r.Valid:
		return fmt.Sprintf("value: %g", r.Value)
	}
	return "empty"
}

// UnitResult is the outcome of resolving a node's unit. Unit and Error are
// both set when a requested output unit cannot be reached.
type UnitResult struct {
	Unit    string
	Error   string
	Message string
}

func (r UnitResult) String() string {
	switch {
	case r.Error != "" && r.Unit != "":
		return fmt.Sprintf("error: %s (unit %s)", r.Error, r.Unit)
	case r.Error != "":
		return "error: " + r.Error
	case r.Message != "":
		return "message: " + r.Message
	case r.Unit != "":
		return "unit: " + r.Unit
	}
	return "empty"
}

func valueOf(v float64) ValueResult     { return ValueResult{Value: v, Valid: true} }
func valueError(e string) ValueResult   { return ValueResult{Error: e} }
func valueMessage(m string) ValueResult { return ValueResult{Message: m} }
