// Package fingerprint provides a formal id and hash for the
// subgraph of a node. It covers the structure of the graph, the
// operations and the values of the constants, so two graphs with
// the same fingerprint compute the same result for the same feeds.
package fingerprint

import (
	"fmt"
	"sort"
	"strings"

	"github.com/mandelsoft/symbolic/pkg/graph"
	"github.com/mandelsoft/symbolic/pkg/utils"
)

const (
	TYPE_CONSTANT    = "const"
	TYPE_PLACEHOLDER = "input"
)

type Fingerprint struct {
	Graph  string   `json:"graph"`
	Values []string `json:"values"`
}

func (f *Fingerprint) Id() string {
	return f.Graph + ":" + strings.Join(f.Values, ",")
}

func (f *Fingerprint) Hash() string {
	return utils.HashData(f)
}

func (f *Fingerprint) String() string {
	return f.Id()
}

type names[V any] struct {
	effective map[*graph.Node[V]]string
	used      map[string]int
	anonymous int
}

func typeOf[V any](n *graph.Node[V]) string {
	switch n.Kind() {
	case graph.KindConstant:
		return TYPE_CONSTANT
	case graph.KindPlaceholder:
		return TYPE_PLACEHOLDER
	default:
		return n.Operation().Name()
	}
}

// name assigns the effective name. Anonymous nodes are numbered
// in visiting order, names used by several nodes get a suffix.
func (s *names[V]) name(n *graph.Node[V]) string {
	name := n.Name()
	if name == "" {
		s.anonymous++
		name = fmt.Sprintf("#%d", s.anonymous)
	} else {
		s.used[name]++
		if c := s.used[name]; c > 1 {
			name = fmt.Sprintf("%s#%d", name, c)
		}
	}
	eff := fmt.Sprintf("%s/%s", typeOf(n), name)
	s.effective[n] = eff
	return eff
}

func (s *names[V]) getId(n *graph.Node[V]) string {
	if eff, ok := s.effective[n]; ok {
		return eff
	}
	eff := s.name(n)
	inputs := n.Inputs()
	if len(inputs) == 0 {
		return eff
	}

	var graphs []string
	for _, i := range inputs {
		graphs = append(graphs, s.getId(i))
	}
	return fmt.Sprintf("%s(%s)", eff, strings.Join(graphs, ","))
}

// Get determines the fingerprint of the subgraph of n.
func Get[V any](n *graph.Node[V]) *Fingerprint {
	s := &names[V]{
		effective: map[*graph.Node[V]]string{},
		used:      map[string]int{},
	}

	g := s.getId(n)

	var list []string
	for c, eff := range s.effective {
		if v, ok := c.Value(); ok {
			eff = fmt.Sprintf("%s[%v]", eff, v)
		}
		list = append(list, eff)
	}
	sort.Strings(list)
	return &Fingerprint{Graph: g, Values: list}
}

func Id[V any](n *graph.Node[V]) string {
	return Get(n).Id()
}

func Hash[V any](n *graph.Node[V]) string {
	return Get(n).Hash()
}
