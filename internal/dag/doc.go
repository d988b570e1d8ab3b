// Package dag is the dependency analysis layer. It mirrors the input
// references of a diagram as a directed graph, built on gonum, and answers
// the structural questions the diagram needs before it evaluates: which
// nodes feed which, in what order they can be evaluated, and which groups of
// nodes form cycles.
//
// The graph only describes structure. Values are always resolved by the
// nodes themselves; a cycle reported here is the same cycle the node
// resolvers flag while reading.
package dag
