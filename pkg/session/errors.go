package session

import (
	"errors"
	"fmt"

	"github.com/mandelsoft/symbolic/pkg/graph"
	"github.com/mandelsoft/symbolic/pkg/utils"
)

var (
	ErrUnresolvedInput = errors.New("unresolved input")
	ErrCycleDetected   = errors.New("dependency cycle")
	ErrDepthExceeded   = errors.New("evaluation depth exceeded")
)

func path[V any](nodes []*graph.Node[V]) string {
	return utils.JoinFunc(nodes, "->", (*graph.Node[V]).Label)
}

// UnresolvedInputError is returned for a placeholder which
// is neither fed nor has a value. Path is the chain of
// consumers leading to it, starting at the evaluated target.
type UnresolvedInputError[V any] struct {
	Node *graph.Node[V]
	Path []*graph.Node[V]
}

func (e *UnresolvedInputError[V]) Error() string {
	if len(e.Path) == 0 {
		return fmt.Sprintf("%s: %s", ErrUnresolvedInput, e.Node.Label())
	}
	return fmt.Sprintf("%s: %s (required by %s)", ErrUnresolvedInput, e.Node.Label(), path(e.Path))
}

func (e *UnresolvedInputError[V]) Is(err error) bool {
	return err == ErrUnresolvedInput
}

// CycleError reports a node depending on itself. Cycle starts
// and ends with the same node.
type CycleError[V any] struct {
	Cycle []*graph.Node[V]
}

func (e *CycleError[V]) Error() string {
	return fmt.Sprintf("%s %s", ErrCycleDetected, path(e.Cycle))
}

func (e *CycleError[V]) Is(err error) bool {
	return err == ErrCycleDetected
}
