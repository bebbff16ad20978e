package app

import (
	"fmt"
	"slices"

	"github.com/spf13/cobra"
	"k8s.io/apimachinery/pkg/util/sets"
	"sigs.k8s.io/yaml"

	"github.com/mandelsoft/symbolic/pkg/expression"
	"github.com/mandelsoft/symbolic/pkg/feeds"
	"github.com/mandelsoft/symbolic/pkg/graph"
)

type Eval struct {
	cmd *cobra.Command

	mainopts *Options
	sources  Sources
	feeds    []string
	settings []string
	all      bool
	output   string
}

func NewEval(opts *Options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "eval {<expression>} <options>",
		Short: "evaluate expressions",
		Long: `
Evaluate the last statement of the given expressions (or the
node selected with --target). Input values are taken from the
feed files of the configuration, feed files given with --feeds
and explicit settings (name=value), later ones overriding
earlier ones. Named nodes can be fed, also, to override their
computed value.
`,
	}
	TweakCommand(cmd)

	c := &Eval{
		cmd:      cmd,
		mainopts: opts,
	}
	c.cmd.RunE = func(cmd *cobra.Command, args []string) error { return c.Run(args) }
	flags := cmd.Flags()
	c.sources.AddFlags(flags)
	flags.StringArrayVarP(&c.feeds, "feeds", "F", nil, "feed file")
	flags.StringArrayVarP(&c.settings, "set", "s", nil, "input value (name=value)")
	flags.BoolVarP(&c.all, "all", "a", false, "evaluate all named definitions")
	flags.StringVarP(&c.output, "output", "o", "", "output format")
	return cmd
}

func (c *Eval) values() (feeds.Values, error) {
	values := feeds.Values{}
	for _, f := range slices.Concat(c.mainopts.feeds, c.feeds) {
		v, err := feeds.Load(c.mainopts.fs, f)
		if err != nil {
			return nil, err
		}
		values.Merge(v)
	}
	v, err := feeds.ParseAssignments(c.settings...)
	if err != nil {
		return nil, err
	}
	return values.Merge(v), nil
}

func (c *Eval) Run(args []string) error {
	err := CheckOutput(c.output)
	if err != nil {
		return err
	}
	scope, target, err := c.sources.Parse(c.mainopts.fs, args)
	if err != nil {
		return err
	}

	names := []string{c.sources.target}
	targets := []*expression.Node{target}
	if c.all {
		names = scope.Definitions()
		if len(names) == 0 {
			return fmt.Errorf("no named definitions found")
		}
		targets = nil
		for _, n := range names {
			t, _ := scope.Lookup(n)
			targets = append(targets, t)
		}
	}

	values, err := c.values()
	if err != nil {
		return err
	}
	feed, unbound := values.Bind(scope)
	for _, n := range unbound {
		c.warn("feed %q does not match any name", n)
	}

	reachable := sets.New[*expression.Node]()
	for _, t := range targets {
		reachable = reachable.Union(graph.Reachable(t))
	}
	for _, n := range values.Names() {
		if node, ok := scope.Lookup(n); ok && !reachable.Has(node) {
			c.warn("feed %q has no effect", n)
		}
	}

	result, err := c.mainopts.Session().EvaluateAll(targets, feed)
	if err != nil {
		return err
	}
	return c.print(names, result)
}

func (c *Eval) warn(msg string, args ...any) {
	fmt.Fprintf(c.cmd.ErrOrStderr(), "Warning: "+msg+"\n", args...)
}

func (c *Eval) print(names []string, result []int) error {
	out := c.cmd.OutOrStdout()
	if c.output == OUTPUT_YAML {
		m := map[string]int{}
		for i, n := range names {
			if n == "" {
				n = "result"
			}
			m[n] = result[i]
		}
		data, err := yaml.Marshal(m)
		if err != nil {
			return err
		}
		_, err = out.Write(data)
		return err
	}
	if !c.all {
		fmt.Fprintf(out, "%d\n", result[0])
		return nil
	}
	for i, n := range names {
		fmt.Fprintf(out, "%s = %d\n", n, result[i])
	}
	return nil
}
