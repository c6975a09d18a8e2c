package interpreter

import (
	"fmt"
	"slices"
)

// Store is the flat, insertion-ordered variable table shared by the whole
// program and every function call. Call-local variables are whatever is
// appended after a watermark; Truncate drops them again.
type Store struct {
	vars []Variable
	max  int
}

// NewStore creates a table holding at most max variables (0 = unbounded)
func NewStore(max int) *Store {
	return &Store{vars: make([]Variable, 0, 16), max: max}
}

// Get returns the variable called name
func (s *Store) Get(name string) (Variable, bool) {
	for _, v := range s.vars {
		if v.Name == name {
			return v, true
		}
	}
	return Variable{}, false
}

// Lookup returns the stored text of name; it satisfies parser.Lookup
func (s *Store) Lookup(name string) (string, bool) {
	v, ok := s.Get(name)
	return v.Value, ok
}

// Set overwrites an existing variable in place or appends a new one.
// A new variable beyond capacity is dropped and ErrVariableLimit returned;
// existing entries are never touched by a failed Set.
func (s *Store) Set(v Variable) error {
	for idx := range s.vars {
		if s.vars[idx].Name == v.Name {
			s.vars[idx] = v
			return nil
		}
	}

	if s.max > 0 && len(s.vars) >= s.max {
		return fmt.Errorf("%w (%d), cannot create '%s'", ErrVariableLimit, s.max, v.Name)
	}

	s.vars = append(s.vars, v)
	return nil
}

// Len is the current watermark
func (s *Store) Len() int {
	return len(s.vars)
}

// Truncate drops every variable appended after mark
func (s *Store) Truncate(mark int) {
	if mark < 0 {
		mark = 0
	}
	if mark < len(s.vars) {
		s.vars = s.vars[:mark]
	}
}

// All returns a copy of the variables in insertion order
func (s *Store) All() []Variable {
	return slices.Clone(s.vars)
}

// Reset removes every variable
func (s *Store) Reset() {
	s.vars = s.vars[:0]
}
