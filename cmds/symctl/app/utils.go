package app

import (
	"fmt"

	"github.com/mandelsoft/vfs/pkg/vfs"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/mandelsoft/symbolic/pkg/expression"
)

const (
	OUTPUT_TEXT = ""
	OUTPUT_YAML = "yaml"
)

func TweakCommand(cmd *cobra.Command) {
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true
	cmd.DisableFlagsInUseLine = true
}

// Sources describes the expressions a command works on.
type Sources struct {
	files  []string
	target string
}

func (s *Sources) AddFlags(flags *pflag.FlagSet) {
	flags.StringArrayVarP(&s.files, "file", "f", nil, "expression file")
	flags.StringVarP(&s.target, "target", "t", "", "name of node to use (default is last statement)")
}

// Parse parses all expression files and arguments into a common
// scope and returns the selected target.
func (s *Sources) Parse(fs vfs.FileSystem, args []string) (*expression.Scope, *expression.Node, error) {
	var last *expression.Node

	scope := expression.NewScope()
	for _, f := range s.files {
		data, err := vfs.ReadFile(fs, f)
		if err != nil {
			return nil, nil, err
		}
		last, err = scope.Parse(string(data))
		if err != nil {
			return nil, nil, fmt.Errorf("file %q: %w", f, err)
		}
	}
	for _, a := range args {
		var err error
		last, err = scope.Parse(a)
		if err != nil {
			return nil, nil, err
		}
	}
	if last == nil {
		return nil, nil, fmt.Errorf("expression required")
	}
	if s.target != "" {
		n, ok := scope.Lookup(s.target)
		if !ok {
			return nil, nil, fmt.Errorf("unknown target %q", s.target)
		}
		last = n
	}
	return scope, last, nil
}

func CheckOutput(output string) error {
	switch output {
	case OUTPUT_TEXT, OUTPUT_YAML:
		return nil
	}
	return fmt.Errorf("invalid output format %q", output)
}
