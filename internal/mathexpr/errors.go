package mathexpr

import "fmt"

// SyntaxError reports an expression that cannot be parsed.
type SyntaxError struct {
	Expr string
	Pos  int
	Msg  string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("syntax error in %q at position %d: %s", e.Expr, e.Pos, e.Msg)
}

// UnknownSymbolError reports a name that is neither in scope nor a unit.
type UnknownSymbolError struct {
	Name string
}

func (e *UnknownSymbolError) Error() string {
	return fmt.Sprintf("undefined symbol %s", e.Name)
}
