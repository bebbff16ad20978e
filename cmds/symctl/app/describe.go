package app

import (
	"bytes"
	"fmt"

	"github.com/spf13/cobra"
	"sigs.k8s.io/yaml"

	"github.com/mandelsoft/symbolic/pkg/expression"
	"github.com/mandelsoft/symbolic/pkg/fingerprint"
	"github.com/mandelsoft/symbolic/pkg/graph"
)

type Describe struct {
	cmd *cobra.Command

	mainopts *Options
	sources  Sources
	output   string
}

type Description struct {
	Expression  string   `json:"expression"`
	Inputs      []string `json:"inputs,omitempty"`
	Id          string   `json:"id"`
	Fingerprint string   `json:"fingerprint"`
	Graph       string   `json:"graph,omitempty"`
}

func NewDescribe(opts *Options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "describe {<expression>} <options>",
		Short: "describe the dependency graph of an expression",
	}
	TweakCommand(cmd)

	c := &Describe{
		cmd:      cmd,
		mainopts: opts,
	}
	c.cmd.RunE = func(cmd *cobra.Command, args []string) error { return c.Run(args) }
	flags := cmd.Flags()
	c.sources.AddFlags(flags)
	flags.StringVarP(&c.output, "output", "o", "", "output format")
	return cmd
}

func (c *Describe) Run(args []string) error {
	err := CheckOutput(c.output)
	if err != nil {
		return err
	}
	_, target, err := c.sources.Parse(c.mainopts.fs, args)
	if err != nil {
		return err
	}

	buf := bytes.NewBuffer(nil)
	err = graph.Dump(buf, target)
	if err != nil {
		return err
	}
	f := fingerprint.Get(target)
	desc := &Description{
		Expression:  graph.Format(target),
		Inputs:      expression.Operands(target),
		Id:          f.Id(),
		Fingerprint: f.Hash(),
		Graph:       buf.String(),
	}

	out := c.cmd.OutOrStdout()
	if c.output == OUTPUT_YAML {
		data, err := yaml.Marshal(desc)
		if err != nil {
			return err
		}
		_, err = out.Write(data)
		return err
	}
	fmt.Fprintf(out, "%s\n", desc.Graph)
	fmt.Fprintf(out, "expression:  %s\n", desc.Expression)
	if len(desc.Inputs) > 0 {
		fmt.Fprintf(out, "inputs:      %v\n", desc.Inputs)
	}
	fmt.Fprintf(out, "fingerprint: %s\n", desc.Fingerprint)
	return nil
}
