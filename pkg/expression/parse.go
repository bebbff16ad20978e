package expression

import (
	"strconv"
	"unicode"

	"github.com/mandelsoft/symbolic/pkg/graph"
	"github.com/mandelsoft/symbolic/pkg/ops"
	"github.com/mandelsoft/symbolic/pkg/scanner"
)

type parser struct {
	scanner.Scanner
	scope *Scope
}

func newParser(in string, scope *Scope) *parser {
	return &parser{
		Scanner: scanner.NewScanner(in),
		scope:   scope,
	}
}

func isIdentifierStart(r rune) bool {
	return unicode.IsLetter(r) || r == '_'
}

func isIdentifier(r rune) bool {
	return isIdentifierStart(r) || unicode.IsDigit(r)
}

func isSeparator(r rune) bool {
	return r == ';' || r == '\n'
}

func (s *parser) parseProgram() (*Node, error) {
	var last *Node
	for {
		n := s.SkipSpaces()
		for isSeparator(n) {
			s.Next()
			n = s.SkipSpaces()
		}
		if s.AtEnd() {
			return last, nil
		}
		e, err := s.parseStatement()
		if err != nil {
			return nil, err
		}
		last = e

		n = s.SkipBlanks()
		switch {
		case s.AtEnd():
			return last, nil
		case isSeparator(n):
			s.Next()
		default:
			return nil, s.Errorf("unexpected character %q", string(n))
		}
	}
}

func (s *parser) parseStatement() (*Node, error) {
	if !isIdentifierStart(s.SkipBlanks()) {
		return s.parseSum("", nil)
	}
	// an identifier is either the target of an assignment
	// or the first operand of the expression.
	name := s.ScanWhile(isIdentifier)
	if s.SkipBlanks() != '=' {
		return s.parseSum("", s.scope.Operand(name))
	}
	s.Next()
	n, err := s.parseSum(name, nil)
	if err != nil {
		return nil, err
	}
	err = s.scope.Define(name, n)
	if err != nil {
		return nil, s.Errorf("%s", err)
	}
	return n, nil
}

// combine folds the operands from left to right. The name is
// given to the final node only.
func combine(name string, operands []*Node, operators []rune) *Node {
	if len(operators) == 0 {
		return rename(name, operands[0])
	}
	n := operands[0]
	for i, op := range operators {
		cons, _ := ops.Operator[int](string(op))
		nodename := ""
		if i == len(operators)-1 {
			nodename = name
		}
		n = cons(nodename, n, operands[i+1])
	}
	return n
}

// parseSum parses a sum. If first is given, it is used as
// already parsed first operand.
func (s *parser) parseSum(name string, first *Node) (*Node, error) {
	var operators []rune
	var operands []*Node

	for {
		o, err := s.parseProduct(first)
		if err != nil {
			return nil, err
		}
		first = nil
		operands = append(operands, o)

		switch n := s.SkipBlanks(); n {
		case '+', '-':
			operators = append(operators, n)
			s.Next()
		default:
			return combine(name, operands, operators), nil
		}
	}
}

func (s *parser) parseProduct(first *Node) (*Node, error) {
	var operators []rune
	var operands []*Node

	if first == nil {
		o, err := s.parseUnary()
		if err != nil {
			return nil, err
		}
		first = o
	}
	operands = append(operands, first)

	for {
		switch n := s.SkipBlanks(); n {
		case '*', '/':
			operators = append(operators, n)
			s.Next()
			o, err := s.parseUnary()
			if err != nil {
				return nil, err
			}
			operands = append(operands, o)
		default:
			return combine("", operands, operators), nil
		}
	}
}

func (s *parser) parseUnary() (*Node, error) {
	neg := false
	n := s.SkipBlanks()
	for n == '-' {
		neg = !neg
		s.Next()
		n = s.SkipBlanks()
	}
	if unicode.IsDigit(n) {
		return s.parseNumber(neg)
	}
	o, err := s.parseOperand()
	if err != nil {
		return nil, err
	}
	if neg {
		return ops.Neg("", o), nil
	}
	return o, nil
}

func (s *parser) parseOperand() (*Node, error) {
	n := s.SkipBlanks()
	switch {
	case isIdentifierStart(n):
		return s.scope.Operand(s.ScanWhile(isIdentifier)), nil
	case n == '(':
		s.Next()
		e, err := s.parseSum("", nil)
		if err != nil {
			return nil, err
		}
		s.SkipBlanks()
		err = s.ConsumeRune(')')
		if err != nil {
			return nil, err
		}
		return e, nil
	case s.AtEnd():
		return nil, s.Errorf("operand expected, but found end of input")
	default:
		return nil, s.Errorf("unexpected character %q for operand", string(n))
	}
}

func (s *parser) parseNumber(neg bool) (*Node, error) {
	digits := s.ScanWhile(unicode.IsDigit)
	v, err := strconv.Atoi(digits)
	if err != nil {
		return nil, s.Errorf("invalid number %q: %s", digits, err)
	}
	if neg {
		v = -v
	}
	return graph.Constant("", v), nil
}

// rename provides a node for the given name. Anonymous nodes are
// freshly created by the parser and only used here, so they can be
// recreated with the name. Named nodes are bound as they are.
func rename(name string, n *Node) *Node {
	if name == "" || n.Name() != "" {
		return n
	}
	if v, ok := n.Value(); ok {
		return graph.Constant(name, v)
	}
	if n.HasOperation() {
		return graph.Computed(name, n.Operation())
	}
	return n
}
