// Package diagram holds a set of nodes and the unit registry they share.
//
// A Diagram is the collection nodes resolve their inputs through. It can be
// exported to a Snapshot and restored from one, encoded as JSON, and
// evaluated as a whole into a Report whose rows follow dependency order.
package diagram
