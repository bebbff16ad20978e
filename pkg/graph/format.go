package graph

import (
	"fmt"
	"io"
	"strings"

	"k8s.io/apimachinery/pkg/util/sets"
)

// Format renders the expression of a node. Computed nodes are
// expanded down to the leaves, leaves are rendered by name or,
// for anonymous constants, by value.
func Format[V any](n *Node[V]) string {
	return format(n, sets.New[*Node[V]]())
}

func format[V any](n *Node[V], active sets.Set[*Node[V]]) string {
	switch n.kind {
	case KindConstant:
		if n.name != "" {
			return n.name
		}
		return fmt.Sprintf("%v", n.value)
	case KindPlaceholder:
		return n.Label()
	}
	if active.Has(n) {
		return "<" + n.Label() + ">"
	}
	active.Insert(n)
	defer active.Delete(n)

	var args []string
	for _, i := range n.op.Inputs() {
		args = append(args, format(i, active))
	}
	if infix, ok := n.op.(Infix); ok && len(args) > 1 {
		return "(" + strings.Join(args, infix.Symbol()) + ")"
	}
	return fmt.Sprintf("%s(%s)", n.op.Name(), strings.Join(args, ","))
}

// Dump writes the dependency tree of a node. Computed nodes
// already dumped before are referenced by their label only.
func Dump[V any](w io.Writer, n *Node[V]) error {
	return dump(w, n, "", sets.New[*Node[V]]())
}

func dump[V any](w io.Writer, n *Node[V], gap string, done sets.Set[*Node[V]]) error {
	_, err := fmt.Fprintf(w, "%s%s", gap, n.Label())
	if err != nil {
		return err
	}
	inputs := n.Inputs()
	if len(inputs) == 0 {
		return nil
	}
	if done.Has(n) {
		_, err = fmt.Fprintf(w, " (...)")
		return err
	}
	done.Insert(n)

	_, err = fmt.Fprintf(w, " (")
	if err != nil {
		return err
	}
	for i, l := range inputs {
		if i > 0 {
			_, err := fmt.Fprintf(w, ",")
			if err != nil {
				return err
			}
		}
		_, err := fmt.Fprintf(w, "\n")
		if err != nil {
			return err
		}
		err = dump(w, l, gap+"  ", done)
		if err != nil {
			return err
		}
	}
	_, err = fmt.Fprintf(w, "\n%s)", gap)
	return err
}

// Reachable returns all nodes the given node depends on,
// including itself.
func Reachable[V any](n *Node[V]) sets.Set[*Node[V]] {
	found := sets.New[*Node[V]]()
	stack := []*Node[V]{n}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if found.Has(cur) {
			continue
		}
		found.Insert(cur)
		stack = append(stack, cur.Inputs()...)
	}
	return found
}

// Leaves returns the leaf nodes reachable from n in
// depth-first input order.
func Leaves[V any](n *Node[V]) []*Node[V] {
	var leaves []*Node[V]
	seen := sets.New[*Node[V]]()

	var visit func(n *Node[V])
	visit = func(n *Node[V]) {
		if seen.Has(n) {
			return
		}
		seen.Insert(n)
		if !n.HasOperation() {
			leaves = append(leaves, n)
			return
		}
		for _, i := range n.Inputs() {
			visit(i)
		}
	}
	visit(n)
	return leaves
}
