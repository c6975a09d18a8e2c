package stack

import "errors"

var ErrFull = errors.New("stack is full")

type Stack[T any] struct {
	a   []T
	max int // 0 means unbounded
}

// NewStack creates a new stack instance holding at most max elements
func NewStack[T any](max int, elm ...T) *Stack[T] {
	stack := Stack[T]{
		a:   make([]T, 0, len(elm)),
		max: max,
	}

	stack.a = append(stack.a, elm...)

	return &stack
}

// Push adds an element to the top of the stack
func (s *Stack[T]) Push(elm T) error {
	if s.max > 0 && len(s.a) >= s.max {
		return ErrFull
	}

	s.a = append(s.a, elm)
	return nil
}

// Pop removes and returns the top element of the stack
func (s *Stack[T]) Pop() (T, bool) {
	var zero T
	if len(s.a) < 1 {
		return zero, false
	}

	elm := s.a[len(s.a)-1]
	s.a = s.a[:len(s.a)-1]

	return elm, true
}

// Peek returns the top element of the stack without removing it
func (s *Stack[T]) Peek() (T, bool) {
	var zero T
	if len(s.a) < 1 {
		return zero, false
	}

	return s.a[len(s.a)-1], true
}

// Get the size of the stack
func (s *Stack[T]) Size() int {
	return len(s.a)
}

// Array returns the elements from bottom to top
func (s *Stack[T]) Array() []T {
	return s.a
}

// Any reports whether some element satisfies fn
func (s *Stack[T]) Any(fn func(T) bool) bool {
	for _, e := range s.a {
		if fn(e) {
			return true
		}
	}
	return false
}

// Reset empties the stack
func (s *Stack[T]) Reset() {
	s.a = s.a[:0]
}
