package ops_test

import (
	"errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/mandelsoft/symbolic/pkg/graph"
	"github.com/mandelsoft/symbolic/pkg/ops"
	"github.com/mandelsoft/symbolic/pkg/session"
)

func compute[V any](n *graph.Node[V], ctx graph.Context[V]) (V, error) {
	return n.Operation().Compute(ctx)
}

var _ = Describe("operations", func() {
	a := graph.Constant("a", 100)
	b := graph.Constant("b", 5)
	c := graph.Constant("c", 2)
	ctx := graph.Context[int]{a: 100, b: 5, c: 2}

	DescribeTable("arithmetic",
		func(cons ops.Constructor[int], expected int) {
			Expect(compute(cons("", a, b, c), ctx)).To(Equal(expected))
		},
		Entry("add", ops.Constructor[int](ops.Add[int]), 107),
		Entry("sub", ops.Constructor[int](ops.Sub[int]), 93),
		Entry("mul", ops.Constructor[int](ops.Mul[int]), 1000),
		Entry("div", ops.Constructor[int](ops.Div[int]), 10),
	)

	It("single operand", func() {
		Expect(compute(ops.Sub("", a), ctx)).To(Equal(100))
	})

	It("negates", func() {
		Expect(compute(ops.Neg("", b), ctx)).To(Equal(-5))
	})

	It("floats", func() {
		x := graph.Constant("x", 1.0)
		y := graph.Constant("y", 4.0)
		Expect(session.Evaluate(ops.Div("", x, y), nil)).To(Equal(0.25))
	})

	It("rejects division by zero", func() {
		zero := graph.Constant("zero", 0)
		_, err := compute(ops.Div("", a, zero), graph.Context[int]{a: 1, zero: 0})
		Expect(err).To(MatchError(`division by zero for operation "div"`))
		Expect(errors.Is(err, ops.ErrDivisionByZero)).To(BeTrue())
	})

	It("fails for missing inputs", func() {
		_, err := compute(ops.Add("", a, b), graph.Context[int]{a: 1})
		Expect(errors.Is(err, graph.ErrMissingDependency)).To(BeTrue())
	})

	It("requires inputs", func() {
		Expect(func() { ops.Add[int]("") }).To(Panic())
	})

	It("maps operator symbols", func() {
		for _, op := range []string{"+", "-", "*", "/", ops.OP_ADD, ops.OP_DIV} {
			cons, ok := ops.Operator[int](op)
			Expect(ok).To(BeTrue(), op)
			Expect(cons).NotTo(BeNil())
		}
		_, ok := ops.Operator[int]("%")
		Expect(ok).To(BeFalse())

		cons, _ := ops.Operator[int]("-")
		Expect(compute(cons("", a, b), ctx)).To(Equal(95))
	})

	It("applies functions", func() {
		maximum := ops.Func("max", "max", func(args ...int) (int, error) {
			m := args[0]
			for _, v := range args[1:] {
				if v > m {
					m = v
				}
			}
			return m, nil
		}, c, a, b)
		Expect(compute(maximum, ctx)).To(Equal(100))
		Expect(maximum.Operation().Name()).To(Equal("max"))
	})
})
