// Package expression builds symbolic graphs from arithmetic
// expressions like
//
//	z = x + y
//	w = z * z
//
// Identifiers refer to nodes of a Scope. Identifiers not defined
// by an assignment become placeholders, which must be fed when
// evaluating the graph. Using the same identifier several times
// refers to the same node, so the resulting graph shares it.
package expression
