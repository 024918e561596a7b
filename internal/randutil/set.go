package randutil

import (
	"fmt"
	"maps"
	"slices"

	"github.com/alex65536/tsrand/internal/randsrc"
)

// Set supports O(1) insertion, deletion and uniform sampling of its members.
type Set[T comparable] struct {
	mp map[T]int
	v  []T
}

func (s *Set[T]) makeMap() {
	if s.mp == nil {
		s.mp = make(map[T]int)
	}
}

func (s *Set[T]) Add(val T) bool {
	s.makeMap()
	if _, ok := s.mp[val]; ok {
		return false
	}
	s.mp[val] = len(s.v)
	s.v = append(s.v, val)
	return true
}

func (s Set[T]) Has(val T) bool {
	if s.mp == nil {
		return false
	}
	_, ok := s.mp[val]
	return ok
}

func (s Set[T]) Len() int {
	return len(s.v)
}

func (s *Set[T]) Del(val T) bool {
	s.makeMap()
	idx, ok := s.mp[val]
	if !ok {
		return false
	}
	tail := len(s.v) - 1
	if idx != tail {
		s.v[idx], s.v[tail] = s.v[tail], s.v[idx]
		s.mp[s.v[idx]] = idx
	}
	s.v = s.v[:tail]
	delete(s.mp, val)
	return true
}

// Get returns a uniformly chosen member, or the zero value if the set is empty.
func (s Set[T]) Get(src randsrc.Source) (T, error) {
	if len(s.v) == 0 {
		return *new(T), nil
	}
	idx, err := src.IntN(len(s.v))
	if err != nil {
		return *new(T), fmt.Errorf("pick member: %w", err)
	}
	return s.v[idx], nil
}

// Pop removes and returns a uniformly chosen member. The second result is false if the set
// is empty.
func (s *Set[T]) Pop(src randsrc.Source) (T, bool, error) {
	if len(s.v) == 0 {
		return *new(T), false, nil
	}
	val, err := s.Get(src)
	if err != nil {
		return *new(T), false, err
	}
	s.Del(val)
	return val, true, nil
}

func (s Set[T]) Values() []T {
	return slices.Clone(s.v)
}

func (s Set[T]) Clone() Set[T] {
	s.mp = maps.Clone(s.mp)
	s.v = slices.Clone(s.v)
	return s
}
