package ops

import (
	"github.com/mandelsoft/symbolic/pkg/graph"
)

type function[V any] struct {
	graph.BaseOperation[V]
	fn func(args ...V) (V, error)
}

func (o *function[V]) Compute(ctx graph.Context[V]) (V, error) {
	args, err := ctx.Values(o.Inputs())
	if err != nil {
		var _nil V
		return _nil, err
	}
	return o.fn(args...)
}

// Func creates a computed node applying fn to the values of
// its inputs. fn must be free of side effects.
func Func[V any](name, op string, fn func(args ...V) (V, error), inputs ...*graph.Node[V]) *graph.Node[V] {
	return graph.Computed[V](name, &function[V]{
		BaseOperation: graph.NewBaseOperation(op, inputs...),
		fn:            fn,
	})
}
