package ops

import (
	"errors"
	"fmt"

	"github.com/mandelsoft/symbolic/pkg/graph"
)

const (
	OP_ADD = "add"
	OP_SUB = "sub"
	OP_MUL = "mul"
	OP_DIV = "div"
	OP_NEG = "neg"
)

var ErrDivisionByZero = errors.New("division by zero")

type Number interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 |
		~float32 | ~float64
}

type Constructor[V Number] func(name string, inputs ...*graph.Node[V]) *graph.Node[V]

type arithmetic[V Number] struct {
	graph.BaseOperation[V]
	symbol string
	fold   func(a, b V) (V, error)
}

var _ graph.Infix = (*arithmetic[int])(nil)

func (o *arithmetic[V]) Symbol() string {
	return o.symbol
}

func (o *arithmetic[V]) Compute(ctx graph.Context[V]) (V, error) {
	operands, err := ctx.Values(o.Inputs())
	if err != nil {
		return 0, err
	}
	r := operands[0]
	for _, v := range operands[1:] {
		r, err = o.fold(r, v)
		if err != nil {
			return 0, err
		}
	}
	return r, nil
}

func newArithmetic[V Number](op, symbol string, fold func(a, b V) (V, error), name string, inputs []*graph.Node[V]) *graph.Node[V] {
	if len(inputs) == 0 {
		panic(fmt.Sprintf("ops: operation %s requires at least one input", op))
	}
	return graph.Computed[V](name, &arithmetic[V]{
		BaseOperation: graph.NewBaseOperation(op, inputs...),
		symbol:        symbol,
		fold:          fold,
	})
}

func Add[V Number](name string, inputs ...*graph.Node[V]) *graph.Node[V] {
	return newArithmetic(OP_ADD, "+", func(a, b V) (V, error) { return a + b, nil }, name, inputs)
}

func Sub[V Number](name string, inputs ...*graph.Node[V]) *graph.Node[V] {
	return newArithmetic(OP_SUB, "-", func(a, b V) (V, error) { return a - b, nil }, name, inputs)
}

func Mul[V Number](name string, inputs ...*graph.Node[V]) *graph.Node[V] {
	return newArithmetic(OP_MUL, "*", func(a, b V) (V, error) { return a * b, nil }, name, inputs)
}

func Div[V Number](name string, inputs ...*graph.Node[V]) *graph.Node[V] {
	label := name
	if label == "" {
		label = OP_DIV
	}
	return newArithmetic(OP_DIV, "/", func(a, b V) (V, error) {
		if b == 0 {
			return 0, fmt.Errorf("%w for operation %q", ErrDivisionByZero, label)
		}
		return a / b, nil
	}, name, inputs)
}

// Neg negates its single input.
func Neg[V Number](name string, input *graph.Node[V]) *graph.Node[V] {
	return Func(name, OP_NEG, func(args ...V) (V, error) { return -args[0], nil }, input)
}

var operators = map[string]string{
	"+": OP_ADD,
	"-": OP_SUB,
	"*": OP_MUL,
	"/": OP_DIV,
}

// Operator returns the constructor for an operator symbol
// (+, -, * or /) or an operation name.
func Operator[V Number](op string) (Constructor[V], bool) {
	if n, ok := operators[op]; ok {
		op = n
	}
	switch op {
	case OP_ADD:
		return Add[V], true
	case OP_SUB:
		return Sub[V], true
	case OP_MUL:
		return Mul[V], true
	case OP_DIV:
		return Div[V], true
	}
	return nil, false
}
