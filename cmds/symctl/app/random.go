package app

import (
	"fmt"
	"math/rand"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/goombaio/namegenerator"
	"github.com/spf13/cobra"

	"github.com/mandelsoft/symbolic/pkg/expression"
	"github.com/mandelsoft/symbolic/pkg/feeds"
)

type Random struct {
	cmd *cobra.Command

	mainopts *Options
	seed     int64
	vars     int
	steps    int
	depth    int

	rand      *rand.Rand
	generator namegenerator.Generator
}

func NewRandom(opts *Options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "random <options>",
		Short: "evaluate a randomly generated expression",
		Long: `
Generate a sequence of random definitions over randomly named
inputs, feed the inputs with random values and evaluate the last
definition. Later definitions use earlier ones, so the resulting
graph shares nodes. The same seed generates the same expression.
`,
		Args: cobra.NoArgs,
	}
	TweakCommand(cmd)

	c := &Random{
		cmd:      cmd,
		mainopts: opts,
	}
	c.cmd.RunE = func(cmd *cobra.Command, args []string) error { return c.Run() }
	flags := cmd.Flags()
	flags.Int64Var(&c.seed, "seed", 0, "random seed (default is current time)")
	flags.IntVar(&c.vars, "vars", 3, "number of inputs")
	flags.IntVar(&c.steps, "steps", 3, "number of definitions")
	flags.IntVar(&c.depth, "depth", 2, "nesting depth of definitions")
	return cmd
}

func (c *Random) Run() error {
	if c.vars < 1 || c.steps < 1 {
		return fmt.Errorf("at least one input and one definition required")
	}
	if c.seed == 0 {
		c.seed = time.Now().UnixNano()
	}
	c.rand = rand.New(rand.NewSource(c.seed))
	c.generator = namegenerator.NewNameGenerator(c.seed)

	inputs := c.names(c.vars, nil)
	defined := c.names(c.steps, inputs)

	var statements []string
	for i, n := range defined {
		operands := slices.Concat(inputs, defined[:i])
		statements = append(statements, fmt.Sprintf("%s = %s", n, c.expression(operands, c.depth)))
	}
	values := feeds.Values{}
	for _, n := range inputs {
		values[n] = c.rand.Intn(19) - 9
	}

	scope := expression.NewScope()
	target, err := scope.Parse(strings.Join(statements, "\n"))
	if err != nil {
		return err
	}
	feed, _ := values.Bind(scope)
	result, err := c.mainopts.Session().Evaluate(target, feed)
	if err != nil {
		return err
	}

	out := c.cmd.OutOrStdout()
	fmt.Fprintf(out, "seed: %d\n", c.seed)
	for _, n := range values.Names() {
		fmt.Fprintf(out, "%s := %d\n", n, values[n])
	}
	for _, s := range statements {
		fmt.Fprintf(out, "%s\n", s)
	}
	fmt.Fprintf(out, "result: %d\n", result)
	return nil
}

// names generates count new identifiers not used in the given list.
func (c *Random) names(count int, used []string) []string {
	var list []string
	for len(list) < count {
		n := strings.ReplaceAll(c.generator.Generate(), "-", "_")
		for slices.Contains(used, n) || slices.Contains(list, n) {
			n = fmt.Sprintf("%s_%d", n, c.rand.Intn(100))
		}
		list = append(list, n)
	}
	return list
}

func (c *Random) expression(operands []string, depth int) string {
	if depth <= 0 || c.rand.Intn(4) == 0 {
		if c.rand.Intn(5) == 0 {
			return strconv.Itoa(c.rand.Intn(10))
		}
		return operands[c.rand.Intn(len(operands))]
	}
	op := "+-*"[c.rand.Intn(3)]
	return fmt.Sprintf("(%s %c %s)", c.expression(operands, depth-1), op, c.expression(operands, depth-1))
}
