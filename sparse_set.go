package stockroom

import (
	"math"
	"reflect"
)

const tombstone = math.MaxUint32

var _ store = &SparseSet[struct{}]{}

// store is the type-erased view a World keeps of each SparseSet.
type store interface {
	Has(Entity) bool
	Remove(Entity) bool
	Len() int
	Owners() []Entity
	Sweep(alive func(Entity) bool) int
	Clear()
}

// SparseSet is packed storage for one component type keyed by entity id.
//
// sparse maps an id to an index into dense and owners, which are parallel
// and contiguous. Removal swaps the last entry into the vacated index, so
// the order of Values is not stable. An entry is reachable only through the
// exact handle that owns it; entries left behind by destroyed entities stay
// unreachable until removed, swept, or overwritten by a later generation.
type SparseSet[T any] struct {
	sparse []uint32
	dense  []T
	owners []Entity
}

// NewSparseSet returns an empty set sized for capacity entries.
func NewSparseSet[T any](capacity int) *SparseSet[T] {
	return &SparseSet[T]{
		sparse: make([]uint32, 0, capacity),
		dense:  make([]T, 0, capacity),
		owners: make([]Entity, 0, capacity),
	}
}

// Add appends value for e. It fails with ComponentExistsError if e already
// holds a value in this set.
func (s *SparseSet[T]) Add(e Entity, value T) error {
	id := e.ID()
	if int(id) < len(s.sparse) {
		if i := s.sparse[id]; i != tombstone {
			if s.owners[i] == e {
				return ComponentExistsError{Type: reflect.TypeFor[T](), Entity: e}
			}
			s.dense[i] = value
			s.owners[i] = e
			return nil
		}
	} else {
		s.cover(id)
	}
	s.sparse[id] = uint32(len(s.dense))
	s.dense = append(s.dense, value)
	s.owners = append(s.owners, e)
	return nil
}

// Set stores value for e, overwriting any value e already holds.
func (s *SparseSet[T]) Set(e Entity, value T) {
	if i, ok := s.index(e); ok {
		s.dense[i] = value
		return
	}
	_ = s.Add(e, value)
}

// Remove deletes the value held by e. It reports false when there is none.
// Any pointer previously returned by Get for the entry moved into the
// vacated index is invalidated.
func (s *SparseSet[T]) Remove(e Entity) bool {
	i, ok := s.index(e)
	if !ok {
		return false
	}
	s.removeAt(i)
	return true
}

// Get returns a pointer to the value held by e. The pointer is valid until
// the next Add, Set that inserts, Remove or Sweep on this set.
func (s *SparseSet[T]) Get(e Entity) (*T, bool) {
	i, ok := s.index(e)
	if !ok {
		return nil, false
	}
	return &s.dense[i], true
}

// Has reports whether e holds a value in this set.
func (s *SparseSet[T]) Has(e Entity) bool {
	_, ok := s.index(e)
	return ok
}

// Len returns the number of packed entries, stale ones included.
func (s *SparseSet[T]) Len() int { return len(s.dense) }

// Values exposes the packed values. Owners()[i] owns Values()[i].
func (s *SparseSet[T]) Values() []T { return s.dense }

// Owners exposes the handles owning each packed value.
func (s *SparseSet[T]) Owners() []Entity { return s.owners }

// Sweep removes every entry whose owner alive rejects and returns how many
// were removed.
func (s *SparseSet[T]) Sweep(alive func(Entity) bool) int {
	removed := 0
	for i := len(s.owners) - 1; i >= 0; i-- {
		if !alive(s.owners[i]) {
			s.removeAt(i)
			removed++
		}
	}
	return removed
}

// Clear drops every entry and keeps the allocated capacity.
func (s *SparseSet[T]) Clear() {
	clear(s.dense)
	s.sparse = s.sparse[:0]
	s.dense = s.dense[:0]
	s.owners = s.owners[:0]
}

func (s *SparseSet[T]) index(e Entity) (int, bool) {
	id := e.ID()
	if int(id) >= len(s.sparse) {
		return 0, false
	}
	i := s.sparse[id]
	if i == tombstone || s.owners[i] != e {
		return 0, false
	}
	return int(i), true
}

func (s *SparseSet[T]) removeAt(i int) {
	last := len(s.dense) - 1
	gone := s.owners[i].ID()
	if i != last {
		s.dense[i] = s.dense[last]
		s.owners[i] = s.owners[last]
		s.sparse[s.owners[i].ID()] = uint32(i)
	}
	var zero T
	s.dense[last] = zero
	s.dense = s.dense[:last]
	s.owners = s.owners[:last]
	s.sparse[gone] = tombstone
}

func (s *SparseSet[T]) cover(id uint32) {
	for len(s.sparse) <= int(id) {
		s.sparse = append(s.sparse, tombstone)
	}
}
