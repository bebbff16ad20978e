package expression

import (
	"fmt"
	"slices"

	"github.com/mandelsoft/symbolic/pkg/graph"
	"github.com/mandelsoft/symbolic/pkg/utils"
)

type Node = graph.Node[int]

// Scope keeps the named nodes of a set of expressions.
type Scope struct {
	nodes        map[string]*Node
	defined      []string
	placeholders []string
}

func NewScope() *Scope {
	return &Scope{
		nodes: map[string]*Node{},
	}
}

func (s *Scope) Lookup(name string) (*Node, bool) {
	n, ok := s.nodes[name]
	return n, ok
}

// Names returns all names of the scope in alphabetical order.
func (s *Scope) Names() []string {
	return utils.OrderedMapKeys(s.nodes)
}

// Definitions returns the names defined by assignments
// in definition order.
func (s *Scope) Definitions() []string {
	return slices.Clone(s.defined)
}

// Placeholders returns the names of implicitly created
// placeholders in order of first usage.
func (s *Scope) Placeholders() []string {
	return slices.Clone(s.placeholders)
}

// Define binds a name to a node.
func (s *Scope) Define(name string, n *Node) error {
	if _, ok := s.nodes[name]; ok {
		return fmt.Errorf("name %q already defined", name)
	}
	s.nodes[name] = n
	s.defined = append(s.defined, name)
	return nil
}

// Operand returns the node for a name, creating a placeholder
// for unknown names.
func (s *Scope) Operand(name string) *Node {
	if n, ok := s.nodes[name]; ok {
		return n
	}
	n := graph.Placeholder[int](name)
	s.nodes[name] = n
	s.placeholders = append(s.placeholders, name)
	return n
}

// Parse parses the statements of in into the scope and returns
// the node of the last statement.
func (s *Scope) Parse(in string) (*Node, error) {
	p := newParser(in, s)

	n, err := p.parseProgram()
	if err != nil {
		return nil, err
	}
	if n == nil {
		return nil, fmt.Errorf("no expression found in %q", in)
	}
	return n, nil
}

// Parse parses an expression using a new scope.
func Parse(in string) (*Node, error) {
	return NewScope().Parse(in)
}

// Operands returns the names of all placeholders the node
// depends on.
func Operands(n *Node) []string {
	var result []string
	for _, l := range graph.Leaves(n) {
		if l.Kind() == graph.KindPlaceholder {
			result = utils.AppendUnique(result, l.Name())
		}
	}
	return result
}
