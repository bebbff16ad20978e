package graph

import (
	"fmt"

	"github.com/google/uuid"
)

type Kind int

const (
	KindConstant Kind = iota
	KindPlaceholder
	KindComputed
)

func (k Kind) String() string {
	switch k {
	case KindConstant:
		return "constant"
	case KindPlaceholder:
		return "placeholder"
	case KindComputed:
		return "computed"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Node is a vertex of the computation graph. Its identity
// is the pointer, two nodes are never equal by value.
type Node[V any] struct {
	id    string
	name  string
	kind  Kind
	value V
	op    Operation[V]
}

// Constant creates a leaf holding the given value.
func Constant[V any](name string, v V) *Node[V] {
	return &Node[V]{
		id:    uuid.New().String(),
		name:  name,
		kind:  KindConstant,
		value: v,
	}
}

// Placeholder creates a leaf without a value. It must be
// fed when evaluating a graph depending on it.
func Placeholder[V any](name string) *Node[V] {
	return &Node[V]{
		id:   uuid.New().String(),
		name: name,
		kind: KindPlaceholder,
	}
}

// Computed creates a node whose value is computed by op.
func Computed[V any](name string, op Operation[V]) *Node[V] {
	if op == nil {
		panic("graph: computed node requires an operation")
	}
	return &Node[V]{
		id:   uuid.New().String(),
		name: name,
		kind: KindComputed,
		op:   op,
	}
}

func (n *Node[V]) Kind() Kind {
	return n.kind
}

func (n *Node[V]) Name() string {
	return n.name
}

// ID returns a unique id used to identify the node in
// logs if it has no name.
func (n *Node[V]) ID() string {
	return n.id
}

func (n *Node[V]) HasOperation() bool {
	return n.kind == KindComputed
}

// Value returns the stored value. ok is only true for constants.
func (n *Node[V]) Value() (v V, ok bool) {
	if n.kind != KindConstant {
		return v, false
	}
	return n.value, true
}

func (n *Node[V]) Operation() Operation[V] {
	return n.op
}

// Inputs returns the input nodes of the operation, if any.
func (n *Node[V]) Inputs() []*Node[V] {
	if n.op == nil {
		return nil
	}
	return n.op.Inputs()
}

// String returns the name of the node or, for anonymous
// nodes, its expression.
func (n *Node[V]) String() string {
	if n.name != "" {
		return n.name
	}
	return Format(n)
}

// Label is the short description used in dumps and error
// messages. It never expands the inputs of a node.
func (n *Node[V]) Label() string {
	switch n.kind {
	case KindConstant:
		if n.name == "" {
			return fmt.Sprintf("%v", n.value)
		}
		return fmt.Sprintf("%s[%v]", n.name, n.value)
	case KindPlaceholder:
		if n.name == "" {
			return "placeholder/" + n.id[:8]
		}
		return n.name
	default:
		if n.name == "" {
			return fmt.Sprintf("%s/%s", n.op.Name(), n.id[:8])
		}
		return fmt.Sprintf("%s=%s", n.name, n.op.Name())
	}
}
