package expression_test

import (
	"github.com/go-test/deep"
	. "github.com/mandelsoft/symbolic/pkg/testutils"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/mandelsoft/symbolic/pkg/expression"
	"github.com/mandelsoft/symbolic/pkg/graph"
	"github.com/mandelsoft/symbolic/pkg/ops"
	"github.com/mandelsoft/symbolic/pkg/session"
)

var _ = Describe("expression", func() {
	Context("parse", func() {
		It("parses nested expression", func() {
			n := Must(expression.Parse("A+(B*(C+D))+1"))
			Expect(graph.Format(n)).To(Equal("((A+(B*(C+D)))+1)"))
			Expect(expression.Operands(n)).To(Equal([]string{"A", "B", "C", "D"}))
		})

		It("respects precedence", func() {
			n := Must(expression.Parse("a + b * c - d / 2"))
			Expect(graph.Format(n)).To(Equal("((a+(b*c))-(d/2))"))
		})

		It("folds from left to right", func() {
			n := Must(expression.Parse("10 - 4 - 3"))
			Expect(Must(session.Evaluate(n, nil))).To(Equal(3))
		})

		It("parses negative numbers", func() {
			n := Must(expression.Parse("---12"))
			v, ok := n.Value()
			Expect(ok).To(BeTrue())
			Expect(v).To(Equal(-12))
		})

		It("negates operands", func() {
			n := Must(expression.Parse("-x"))
			Expect(n.Operation().Name()).To(Equal(ops.OP_NEG))
			Expect(graph.Format(n)).To(Equal("neg(x)"))
			Expect(Must(expression.Parse("--x")).Kind()).To(Equal(graph.KindPlaceholder))
		})

		It("shares identical identifiers", func() {
			n := Must(expression.Parse("x * x"))
			in := n.Inputs()
			Expect(in[0]).To(BeIdenticalTo(in[1]))
			Expect(Must(session.Evaluate(n, graph.Feed[int]{in[0]: 5}))).To(Equal(25))
		})
	})

	Context("scope", func() {
		var scope *expression.Scope

		BeforeEach(func() {
			scope = expression.NewScope()
		})

		It("defines names", func() {
			n := Must(scope.Parse("z = x + y; w = z * z"))
			z, ok := scope.Lookup("z")
			Expect(ok).To(BeTrue())
			Expect(z.Label()).To(Equal("z=add"))
			Expect(n.Label()).To(Equal("w=mul"))
			Expect(n.Inputs()).To(Equal([]*graph.Node[int]{z, z}))

			Expect(deep.Equal(scope.Definitions(), []string{"z", "w"})).To(BeNil())
			Expect(deep.Equal(scope.Placeholders(), []string{"x", "y"})).To(BeNil())
			Expect(deep.Equal(scope.Names(), []string{"w", "x", "y", "z"})).To(BeNil())

			x, _ := scope.Lookup("x")
			y, _ := scope.Lookup("y")
			Expect(Must(session.Evaluate(n, graph.Feed[int]{x: 2, y: 3}))).To(Equal(25))
		})

		It("names the final node of a chain", func() {
			n := Must(scope.Parse("s = a + b + c"))
			Expect(n.Name()).To(Equal("s"))
			Expect(n.Inputs()[0].Name()).To(Equal(""))
		})

		It("names parenthesized expressions", func() {
			n := Must(scope.Parse("s = (a + b)"))
			Expect(n.Label()).To(Equal("s=add"))
			Expect(graph.Format(n)).To(Equal("(a+b)"))
		})

		It("defines constants", func() {
			n := Must(scope.Parse("c = 5\nd = c * 2\n"))
			c, _ := scope.Lookup("c")
			Expect(c.Label()).To(Equal("c[5]"))
			Expect(Must(session.Evaluate(n, nil))).To(Equal(10))
		})

		It("aliases nodes", func() {
			n := Must(scope.Parse("y = x"))
			Expect(n.Kind()).To(Equal(graph.KindPlaceholder))
			x, _ := scope.Lookup("x")
			y, _ := scope.Lookup("y")
			Expect(y).To(BeIdenticalTo(x))
		})

		It("continues on successive parse calls", func() {
			Must(scope.Parse("z = x + 1"))
			n := Must(scope.Parse("z * 2"))
			z, _ := scope.Lookup("z")
			Expect(n.Inputs()[0]).To(BeIdenticalTo(z))
		})

		It("uses the last statement", func() {
			n := Must(scope.Parse(";; a = 1;\n\n b = a + 1 ;\n"))
			Expect(n.Label()).To(Equal("b=add"))
		})

		It("rejects redefinitions", func() {
			_, err := scope.Parse("x = 1; x = 2")
			Expect(err).To(MatchError(ContainSubstring(`name "x" already defined`)))
		})

		It("rejects assigning placeholders in use", func() {
			_, err := scope.Parse("y = x + 1; x = 2")
			Expect(err).To(MatchError(ContainSubstring(`name "x" already defined`)))
		})
	})

	Context("errors", func() {
		It("missing operand", func() {
			_, err := expression.Parse("a+")
			MustFailWithMessage(err, `"a+" 2: operand expected, but found end of input`)
		})

		It("missing bracket", func() {
			_, err := expression.Parse("(a+b")
			MustFailWithMessage(err, `"(a+b" 4: ")" expected, but found end of input`)
		})

		It("unexpected character", func() {
			_, err := expression.Parse("a b")
			MustFailWithMessage(err, `"a b" 3: unexpected character "b"`)
		})

		It("invalid operand", func() {
			_, err := expression.Parse("a+*")
			MustFailWithMessage(err, `"a+*" 3: unexpected character "*" for operand`)
		})

		It("empty input", func() {
			_, err := expression.Parse(" ; \n")
			MustFailWithMessage(err, `no expression found in " ; \n"`)
		})
	})
})
