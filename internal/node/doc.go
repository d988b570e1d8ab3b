// Package node implements a single quantity in a diagram: a value with an
// optional unit, either set directly or derived from other nodes through an
// expression or a two-input operation.
//
// Derived results are never cached. Every read walks the inputs as they are
// at that moment, converts units along the way, and reports problems as
// result strings rather than Go errors. Reference cycles are detected during
// the walk and reported on every node that takes part in them.
package node
