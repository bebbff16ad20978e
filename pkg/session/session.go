package session

import (
	"fmt"

	"github.com/mandelsoft/logging"
	"k8s.io/apimachinery/pkg/util/sets"

	"github.com/mandelsoft/symbolic/pkg/graph"
	"github.com/mandelsoft/symbolic/pkg/utils"
)

// Session evaluates nodes of symbolic graphs. It does not keep
// any graph or evaluation state, so a single session can be used
// for concurrent evaluations.
type Session[V any] struct {
	log      logging.Logger
	maxDepth int
}

// New creates a session logging to the given context (the default
// context if nil). An optional maxDepth limits the length of the
// dependency chain resolved by a single evaluation, 0 means
// unlimited.
func New[V any](lctx logging.Context, maxDepth ...int) *Session[V] {
	if lctx == nil {
		lctx = logging.DefaultContext()
	}
	return &Session[V]{
		log:      lctx.Logger(REALM),
		maxDepth: utils.Optional(maxDepth...),
	}
}

func (s *Session[V]) MaxDepth() int {
	return s.maxDepth
}

// Evaluate computes the value of target. Nodes found in feed
// are not resolved, their fed value is used instead, at any
// depth of the graph including target itself.
func (s *Session[V]) Evaluate(target *graph.Node[V], feed graph.Feed[V]) (V, error) {
	e := s.newEvaluation(feed)
	return e.resolve(target)
}

// EvaluateAll computes the values of all targets in one pass.
// Nodes shared by several targets are resolved only once.
func (s *Session[V]) EvaluateAll(targets []*graph.Node[V], feed graph.Feed[V]) ([]V, error) {
	e := s.newEvaluation(feed)
	result := make([]V, len(targets))
	for i, t := range targets {
		v, err := e.resolve(t)
		if err != nil {
			return nil, err
		}
		result[i] = v
	}
	return result, nil
}

// Evaluate evaluates target with a session using the
// default logging context.
func Evaluate[V any](target *graph.Node[V], feed graph.Feed[V]) (V, error) {
	return New[V](nil).Evaluate(target, feed)
}

////////////////////////////////////////////////////////////////////////////////

type frame[V any] struct {
	node   *graph.Node[V]
	inputs []*graph.Node[V]
	next   int
}

// evaluation holds the state of a single evaluation call.
type evaluation[V any] struct {
	log      logging.Logger
	maxDepth int
	feed     graph.Feed[V]
	resolved map[*graph.Node[V]]V
	active   sets.Set[*graph.Node[V]]
	stack    []*frame[V]
}

func (s *Session[V]) newEvaluation(feed graph.Feed[V]) *evaluation[V] {
	return &evaluation[V]{
		log:      s.log,
		maxDepth: s.maxDepth,
		feed:     feed,
		resolved: map[*graph.Node[V]]V{},
		active:   sets.New[*graph.Node[V]](),
	}
}

// lookup provides the value for an already known node, either
// by feed or by a previous resolution in this evaluation.
func (e *evaluation[V]) lookup(n *graph.Node[V]) (V, bool) {
	if v, ok := e.feed.Lookup(n); ok {
		e.log.Trace("using fed value for {{node}}", "node", n.Label())
		return v, true
	}
	if v, ok := e.resolved[n]; ok {
		e.log.Trace("reusing value for {{node}}", "node", n.Label())
		return v, true
	}
	var _nil V
	return _nil, false
}

// value returns the value of a node known to be fed or resolved.
func (e *evaluation[V]) value(n *graph.Node[V]) V {
	if v, ok := e.feed.Lookup(n); ok {
		return v
	}
	return e.resolved[n]
}

func (e *evaluation[V]) path() []*graph.Node[V] {
	return utils.TransformSlice(e.stack, func(f *frame[V]) *graph.Node[V] { return f.node })
}

// push prepares the resolution of a node not known so far.
// Leaves are resolved immediately, computed nodes are put
// on the stack.
func (e *evaluation[V]) push(n *graph.Node[V]) error {
	switch n.Kind() {
	case graph.KindConstant:
		v, _ := n.Value()
		e.resolved[n] = v
		return nil
	case graph.KindPlaceholder:
		return &UnresolvedInputError[V]{Node: n, Path: e.path()}
	}

	if e.active.Has(n) {
		return &CycleError[V]{Cycle: utils.Cycle(n, e.path()...)}
	}
	if e.maxDepth > 0 && len(e.stack) >= e.maxDepth {
		return fmt.Errorf("%w: limit %d reached at %s", ErrDepthExceeded, e.maxDepth, n.Label())
	}
	e.active.Insert(n)
	e.stack = append(e.stack, &frame[V]{node: n, inputs: n.Inputs()})
	return nil
}

func (e *evaluation[V]) resolve(target *graph.Node[V]) (V, error) {
	var _nil V

	if v, ok := e.lookup(target); ok {
		return v, nil
	}
	if err := e.push(target); err != nil {
		return _nil, err
	}

	for len(e.stack) > 0 {
		f := e.stack[len(e.stack)-1]
		if f.next < len(f.inputs) {
			in := f.inputs[f.next]
			f.next++
			if _, ok := e.lookup(in); ok {
				continue
			}
			if err := e.push(in); err != nil {
				return _nil, err
			}
			continue
		}

		ctx := graph.Context[V]{}
		for _, in := range f.inputs {
			ctx[in] = e.value(in)
		}
		v, err := f.node.Operation().Compute(ctx)
		if err != nil {
			e.log.Debug("computation of {{node}} failed: {{error}}", "node", f.node.Label(), "error", err)
			return _nil, err
		}
		e.log.Debug("computed {{node}}: {{value}}", "node", f.node.Label(), "value", v)
		e.resolved[f.node] = v
		e.active.Delete(f.node)
		e.stack = e.stack[:len(e.stack)-1]
	}
	return e.resolved[target], nil
}
