package dash

import (
	"errors"
	"fmt"
	"net/http"
	"slices"
	"strings"
)

var ErrUndefined = errors.New("undefined")

// Scope holds the named data sources visible to a chart. The sources of a
// chart live in a scope nested in the dashboard scope and shadow the
// dashboard sources with the same name.
type Scope struct {
	outer   *Scope
	sources map[string]DataSource
}

func NewScope() *Scope {
	return &Scope{
		sources: make(map[string]DataSource),
	}
}

// Nest returns an empty scope whose lookups fall back to s.
func (s *Scope) Nest() *Scope {
	n := NewScope()
	n.outer = s
	return n
}

func (s *Scope) Define(name string, src DataSource) {
	s.sources[name] = src
}

// DefineAll builds the sources described by list and defines them in s.
// Relative paths are resolved against dir.
func (s *Scope) DefineAll(list map[string]SourceConfig, dir string, client *http.Client) error {
	for name, sc := range list {
		src, err := sc.Source(dir, client)
		if err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
		s.Define(name, src)
	}
	return nil
}

func (s *Scope) Lookup(name string) (DataSource, error) {
	for sc := s; sc != nil; sc = sc.outer {
		if src, ok := sc.sources[name]; ok {
			return src, nil
		}
	}
	if names := s.Names(); len(names) > 0 {
		return nil, fmt.Errorf("%s: %w source (known: %s)", name, ErrUndefined, strings.Join(names, ", "))
	}
	return nil, fmt.Errorf("%s: %w source", name, ErrUndefined)
}

// Names returns the sorted names visible from s.
func (s *Scope) Names() []string {
	var names []string
	for sc := s; sc != nil; sc = sc.outer {
		for n := range sc.sources {
			if !slices.Contains(names, n) {
				names = append(names, n)
			}
		}
	}
	slices.Sort(names)
	return names
}
