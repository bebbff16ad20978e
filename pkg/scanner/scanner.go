package scanner

import (
	"fmt"
	"unicode"
	"unicode/utf8"
)

// Scanner reads runes from a string. The current rune is 0
// at the end of the input.
type Scanner interface {
	Next() rune
	ConsumeRune(r rune) error
	// SkipBlanks skips white space except line breaks.
	SkipBlanks() rune
	// SkipSpaces skips all white space.
	SkipSpaces() rune
	ScanWhile(f func(r rune) bool) string
	Current() rune
	Position() int
	Line() int
	AtEnd() bool

	Errorf(msg string, args ...interface{}) error
}

type scanner struct {
	in      []byte
	offset  int
	no      int
	line    int
	current rune
}

func NewScanner(in string) Scanner {
	s := &scanner{
		in:   []byte(in),
		line: 1,
	}
	s.Next()
	return s
}

func (s *scanner) Next() rune {
	if s.current == '\n' {
		s.line++
	}
	if s.offset >= len(s.in) {
		s.current = 0
		return 0
	}
	r, size := utf8.DecodeRune(s.in[s.offset:])
	s.current = r
	if r == utf8.RuneError {
		return r
	}
	s.offset += size
	s.no++
	return r
}

func (s *scanner) ConsumeRune(r rune) error {
	if s.Current() != r {
		if s.AtEnd() {
			return s.Errorf("%q expected, but found end of input", string(r))
		}
		return s.Errorf("%q expected", string(r))
	}
	s.Next()
	return nil
}

func (s *scanner) Current() rune {
	return s.current
}

func (s *scanner) AtEnd() bool {
	return s.current == 0
}

func (s *scanner) Position() int {
	return s.no
}

func (s *scanner) Line() int {
	return s.line
}

func (s *scanner) SkipBlanks() rune {
	n := s.Current()
	for n != '\n' && unicode.IsSpace(n) {
		n = s.Next()
	}
	return n
}

func (s *scanner) SkipSpaces() rune {
	n := s.Current()
	for unicode.IsSpace(n) {
		n = s.Next()
	}
	return n
}

func (s *scanner) ScanWhile(f func(r rune) bool) string {
	var r []rune
	for n := s.Current(); n != 0 && f(n); n = s.Next() {
		r = append(r, n)
	}
	return string(r)
}

func (s *scanner) Errorf(msg string, args ...interface{}) error {
	return fmt.Errorf("%q %d: %s", string(s.in), s.Position(), fmt.Sprintf(msg, args...))
}
