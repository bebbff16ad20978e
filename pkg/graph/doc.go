// Package graph provides the nodes of a symbolic computation graph.
//
// A node is either a leaf (a constant holding a value or a
// placeholder which must be fed on evaluation) or a computed
// node owning exactly one Operation. An operation declares an
// ordered list of input nodes and computes its output from a
// Context mapping each input node (by identity) to its
// resolved value.
//
// Nodes are immutable once constructed. Inputs are shared
// references, so the same node may be consumed by any number
// of downstream nodes. Evaluation itself is provided by
// package session.
package graph
