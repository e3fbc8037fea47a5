package state

import (
	"sort"
	"sync"
)

// PerScreen holds one value per viewport, created lazily on first access.
type PerScreen[T any] struct {
	mu      sync.Mutex
	create  func(viewport int) T
	entries map[int]T
}

// NewPerScreen returns a store that builds missing entries with create.
func NewPerScreen[T any](create func(viewport int) T) *PerScreen[T] {
	return &PerScreen[T]{create: create, entries: make(map[int]T)}
}

// Get returns the value for viewport, creating it when absent.
func (s *PerScreen[T]) Get(viewport int) T {
	s.mu.Lock()
	defer s.mu.Unlock()
	if v, ok := s.entries[viewport]; ok {
		return v
	}
	v := s.create(viewport)
	s.entries[viewport] = v
	return v
}

// Lookup returns the value for viewport without creating it.
func (s *PerScreen[T]) Lookup(viewport int) (T, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.entries[viewport]
	return v, ok
}

// Viewports lists the viewports that currently hold a value, ascending.
func (s *PerScreen[T]) Viewports() []int {
	s.mu.Lock()
	defer s.mu.Unlock()
	ids := make([]int, 0, len(s.entries))
	for id := range s.entries {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}
