// Package mathexpr parses and evaluates arithmetic expressions over plain
// numbers and unit-tagged quantities.
//
// The grammar covers numbers, names, + - * / ^ (with × · ÷ − as aliases),
// unary signs, parentheses, implicit multiplication ("2 s", "3 cats") and
// conversion with "to" ("a to cm/s"). Names resolve against the caller's
// scope first and the unit registry second.
package mathexpr
