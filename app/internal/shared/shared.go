// SPDX-License-Identifier: Unlicense OR MIT

// Package shared implements reference counted process singletons.
package shared

import "sync"

// Value holds a lazily created value that lives as long as it has
// holders. The first Acquire creates it and the last Release destroys
// it. A later Acquire creates a fresh value.
type Value[T any] struct {
	New     func() (*T, error)
	Destroy func(*T)

	mu   sync.Mutex
	refs int
	v    *T
}

// Acquire returns the value, creating it if it has no holders.
func (s *Value[T]) Acquire() (*T, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.refs == 0 {
		v, err := s.New()
		if err != nil {
			return nil, err
		}
		s.v = v
	}
	s.refs++
	return s.v, nil
}

// Release drops one reference, destroying the value when it was the
// last.
func (s *Value[T]) Release() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.refs == 0 {
		panic("shared: Release without Acquire")
	}
	s.refs--
	if s.refs > 0 {
		return
	}
	v := s.v
	s.v = nil
	if s.Destroy != nil {
		s.Destroy(v)
	}
}

// Refs returns the number of holders.
func (s *Value[T]) Refs() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.refs
}
