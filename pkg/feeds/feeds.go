// Package feeds provides named input values for expression
// scopes. Values can be given as name=value assignments or
// as YAML documents mapping names to integers.
package feeds

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/drone/envsubst"
	"github.com/mandelsoft/logging"
	"github.com/mandelsoft/vfs/pkg/vfs"
	"sigs.k8s.io/yaml"

	"github.com/mandelsoft/symbolic/pkg/expression"
	"github.com/mandelsoft/symbolic/pkg/graph"
	"github.com/mandelsoft/symbolic/pkg/utils"
)

var REALM = logging.DefineRealm("symbolic/feeds", "feed handling")

var log = logging.DefaultContext().Logger(REALM)

type Values map[string]int

// Names returns the value names in alphabetical order.
func (v Values) Names() []string {
	return utils.OrderedMapKeys(v)
}

// Merge adds the given values. Later values override
// earlier ones.
func (v Values) Merge(add Values) Values {
	for n, e := range add {
		v[n] = e
	}
	return v
}

// Bind provides a feed for the nodes of the given scope. Names
// not found in the scope are returned as unbound.
func (v Values) Bind(scope *expression.Scope) (graph.Feed[int], []string) {
	var unbound []string

	feed := graph.Feed[int]{}
	for _, name := range v.Names() {
		n, ok := scope.Lookup(name)
		if !ok {
			unbound = append(unbound, name)
			continue
		}
		log.Trace("binding {{name}} to {{value}}", "name", name, "value", v[name])
		feed[n] = v[name]
	}
	return feed, unbound
}

// ParseAssignment parses an assignment of the form name=value.
func ParseAssignment(s string) (string, int, error) {
	name, value, ok := strings.Cut(s, "=")
	if !ok {
		return "", 0, fmt.Errorf("invalid assignment %q: '=' expected", s)
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return "", 0, fmt.Errorf("invalid assignment %q: name missing", s)
	}
	v, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return "", 0, fmt.Errorf("invalid value for %q: %w", name, err)
	}
	return name, v, nil
}

func ParseAssignments(list ...string) (Values, error) {
	values := Values{}
	for _, a := range list {
		n, v, err := ParseAssignment(a)
		if err != nil {
			return nil, err
		}
		values[n] = v
	}
	return values, nil
}

// Parse reads a YAML document of named integer values. Variable
// references (${VAR}) are substituted using the given lookup
// function (default is the process environment) before parsing.
func Parse(data []byte, lookup ...func(string) string) (Values, error) {
	text, err := envsubst.Eval(string(data), utils.OptionalDefaulted(os.Getenv, lookup...))
	if err != nil {
		return nil, err
	}

	var raw map[string]json.Number
	err = yaml.Unmarshal([]byte(text), &raw)
	if err != nil {
		return nil, err
	}

	values := Values{}
	for n, e := range raw {
		if e == "" {
			return nil, fmt.Errorf("no value for %q", n)
		}
		v, err := strconv.Atoi(e.String())
		if err != nil {
			return nil, fmt.Errorf("invalid value for %q: %w", n, err)
		}
		values[n] = v
	}
	return values, nil
}

// Load reads a feed file.
func Load(fs vfs.FileSystem, path string, lookup ...func(string) string) (Values, error) {
	data, err := vfs.ReadFile(fs, path)
	if err != nil {
		return nil, err
	}
	values, err := Parse(data, lookup...)
	if err != nil {
		return nil, fmt.Errorf("feed file %q: %w", path, err)
	}
	log.Debug("loaded {{count}} values from {{file}}", "count", len(values), "file", path)
	return values, nil
}
