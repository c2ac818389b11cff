package charts

import (
	"errors"
	"fmt"
	"slices"
	"sync"
)

var (
	ErrUnknownKind = errors.New("unknown chart kind")
	ErrRegistered  = errors.New("chart kind already registered")
)

const (
	KindBar  = "bar"
	KindLine = "line"
	KindPie  = "pie"
)

type Factory func() Renderer

// Registry maps chart kinds to the factories of their renderers. It is
// filled once at startup and read concurrently afterwards.
type Registry struct {
	mu        sync.RWMutex
	factories map[string]Factory
}

func NewRegistry() *Registry {
	return &Registry{
		factories: make(map[string]Factory),
	}
}

// Builtin returns a registry holding the bar, line and pie charts.
func Builtin() *Registry {
	reg := NewRegistry()
	reg.Register(KindBar, func() Renderer { return BarChart{} })
	reg.Register(KindLine, func() Renderer { return LineChart{} })
	reg.Register(KindPie, func() Renderer { return PieChart{} })
	return reg
}

func (r *Registry) Register(kind string, fn Factory) error {
	if kind == "" || fn == nil {
		return fmt.Errorf("register %q: kind and factory are required", kind)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.factories[kind]; ok {
		return fmt.Errorf("%w: %s", ErrRegistered, kind)
	}
	r.factories[kind] = fn
	return nil
}

func (r *Registry) Lookup(kind string) (Renderer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	fn, ok := r.factories[kind]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownKind, kind)
	}
	return fn(), nil
}

func (r *Registry) Frame(kind string) (*Frame, error) {
	rdr, err := r.Lookup(kind)
	if err != nil {
		return nil, err
	}
	return NewFrame(kind, rdr), nil
}

func (r *Registry) Kinds() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var list []string
	for k := range r.factories {
		list = append(list, k)
	}
	slices.Sort(list)
	return list
}
