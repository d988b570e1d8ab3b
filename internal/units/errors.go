package units

import (
	"errors"
	"fmt"
)

var (
	// ErrIncompatibleUnits is returned when quantities of different
	// dimensions are added, subtracted or converted into each other.
	ErrIncompatibleUnits = errors.New("units do not match")
	// ErrUnexpectedType is returned when a plain number is mixed with a
	// quantity where both sides must carry units.
	ErrUnexpectedType = errors.New("unexpected type of argument")
	// ErrMissingValue is returned when a unit without a magnitude takes part
	// in addition or subtraction.
	ErrMissingValue = errors.New("unit has no value")
	// ErrFractionalPower is returned for non-integer powers of a unit.
	ErrFractionalPower = errors.New("fractional unit powers are not supported")
	// ErrInvalidSymbol is returned when registering a symbol outside the unit grammar.
	ErrInvalidSymbol = errors.New("invalid unit symbol")
	// ErrBuiltinUnit is returned when registering a name the built-in table already owns.
	ErrBuiltinUnit = errors.New("unit is built in")
	// ErrAliasConflict is returned when an alias is already bound to another unit.
	ErrAliasConflict = errors.New("alias belongs to another unit")
)

// SyntaxError reports a malformed unit string.
type SyntaxError struct {
	Input  string
	Offset int
	Msg    string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("invalid unit %q at offset %d: %s", e.Input, e.Offset, e.Msg)
}

// UnknownUnitError reports a well-formed identifier that names no unit.
type UnknownUnitError struct {
	Name string
}

func (e *UnknownUnitError) Error() string {
	return fmt.Sprintf("unknown unit %q", e.Name)
}
