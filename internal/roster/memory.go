package roster

import (
	"context"
	"slices"
	"sync"

	"golang.org/x/text/cases"
)

// Key folds a player name so "Asta", "ASTA" and "asta" collide.
func Key(name string) string {
	return cases.Fold().String(name)
}

// MemoryStore keeps values in insertion order. Re-putting an existing name
// replaces the value in place.
type MemoryStore[T any] struct {
	mu    sync.RWMutex
	m     map[string]T
	order []string
}

func NewMemoryStore[T any]() *MemoryStore[T] {
	return &MemoryStore[T]{m: map[string]T{}}
}

func (s *MemoryStore[T]) Get(_ context.Context, name string) (T, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.m[Key(name)]
	return v, ok, nil
}

func (s *MemoryStore[T]) Put(_ context.Context, name string, v T) error {
	k := Key(name)
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.m[k]; !ok {
		s.order = append(s.order, k)
	}
	s.m[k] = v
	return nil
}

func (s *MemoryStore[T]) Delete(_ context.Context, name string) (bool, error) {
	k := Key(name)
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.m[k]; !ok {
		return false, nil
	}
	delete(s.m, k)
	s.order = slices.DeleteFunc(s.order, func(o string) bool { return o == k })
	return true, nil
}

func (s *MemoryStore[T]) List(_ context.Context) ([]T, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]T, 0, len(s.order))
	for _, k := range s.order {
		out = append(out, s.m[k])
	}
	return out, nil
}
