package interpreter

import (
	"fmt"
	"slices"
)

// FunctionDef is a user-defined procedure. The body is kept as raw source
// lines and replayed through the dispatcher on every call.
type FunctionDef struct {
	Name   string
	Params []string
	Body   []string
}

// Registry stores function definitions in definition order
type Registry struct {
	defs []*FunctionDef
	max  int
}

// NewRegistry creates a registry holding at most max definitions (0 = unbounded)
func NewRegistry(max int) *Registry {
	return &Registry{max: max}
}

// Define appends fn. Redefining a name appends a second entry; Lookup keeps
// resolving to the first one.
func (r *Registry) Define(fn *FunctionDef) error {
	if r.max > 0 && len(r.defs) >= r.max {
		return fmt.Errorf("%w (%d), cannot define '%s'", ErrFunctionLimit, r.max, fn.Name)
	}
	r.defs = append(r.defs, fn)
	return nil
}

// Lookup returns the earliest definition called name
func (r *Registry) Lookup(name string) (*FunctionDef, bool) {
	for _, fn := range r.defs {
		if fn.Name == name {
			return fn, true
		}
	}
	return nil, false
}

// All returns a copy of the definitions in definition order
func (r *Registry) All() []*FunctionDef {
	return slices.Clone(r.defs)
}

func (r *Registry) Len() int {
	return len(r.defs)
}

func (r *Registry) Reset() {
	r.defs = nil
}
