package graph

import (
	"errors"
	"fmt"
	"slices"
)

// ErrMissingDependency is reported by a Context queried for a
// node which is not part of it.
var ErrMissingDependency = errors.New("missing dependency")

// Operation is the computation rule of a computed node.
//
// Compute must be a pure function of the given context. It is
// called with a context containing a value for each node
// returned by Inputs.
type Operation[V any] interface {
	Name() string
	Inputs() []*Node[V]
	Compute(ctx Context[V]) (V, error)
}

// Infix is optionally implemented by operations rendered with
// an infix operator symbol.
type Infix interface {
	Symbol() string
}

// Context maps nodes to their resolved values.
type Context[V any] map[*Node[V]]V

// Get returns the value for the given node.
func (c Context[V]) Get(n *Node[V]) (V, error) {
	if v, ok := c[n]; ok {
		return v, nil
	}
	var _nil V
	return _nil, fmt.Errorf("%w: no value for %s", ErrMissingDependency, n.Label())
}

// Values returns the values of the given nodes in order.
func (c Context[V]) Values(nodes []*Node[V]) ([]V, error) {
	r := make([]V, len(nodes))
	for i, n := range nodes {
		v, err := c.Get(n)
		if err != nil {
			return nil, err
		}
		r[i] = v
	}
	return r, nil
}

// Feed maps nodes to values overriding their regular
// resolution during an evaluation.
type Feed[V any] map[*Node[V]]V

func (f Feed[V]) Lookup(n *Node[V]) (V, bool) {
	v, ok := f[n]
	return v, ok
}

////////////////////////////////////////////////////////////////////////////////

// BaseOperation implements the input handling for operations.
type BaseOperation[V any] struct {
	name   string
	inputs []*Node[V]
}

func NewBaseOperation[V any](name string, inputs ...*Node[V]) BaseOperation[V] {
	return BaseOperation[V]{name: name, inputs: slices.Clone(inputs)}
}

func (o *BaseOperation[V]) Name() string {
	return o.name
}

func (o *BaseOperation[V]) Inputs() []*Node[V] {
	return slices.Clone(o.inputs)
}
