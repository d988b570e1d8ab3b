// Package units owns the unit vocabulary used by the expression evaluator.
//
// A Registry combines a fixed table of built-in units (SI base and derived
// units, common imperial units, SI prefixes) with custom units registered at
// runtime. Custom units are additive: once a symbol is known it stays known
// for the lifetime of the registry, and every evaluator created from the
// registry sees it.
//
// Quantity is a magnitude tagged with a compound unit. Dimensional analysis
// is delegated to gonum's unit package; the term list kept alongside the
// magnitude only controls how the quantity is displayed.
package units
