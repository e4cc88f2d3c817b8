// Package sparse provides a sparse set data structure for efficient membership
// testing over a bounded universe of small integers.
//
// A sparse set supports O(1) insertion, removal, and membership testing while
// maintaining a dense list for iteration. internal/topdown uses it to track
// the arena node indices that still need a propagation re-check after a round
// of child insertions — the universe is the node arena's current capacity,
// known up front, so sparse/dense never need to grow on their own.
package sparse

// Set is a set of uint32 values over a fixed universe [0, capacity) that
// supports O(1) operations. It maintains both a sparse array (membership
// testing) and a dense array (iteration); the sparse array maps values to
// their index in the dense array.
type Set struct {
	sparse []uint32
	dense  []uint32
	size   uint32
}

// NewSet creates a Set over the universe [0, capacity).
func NewSet(capacity uint32) *Set {
	return &Set{
		sparse: make([]uint32, capacity),
		dense:  make([]uint32, 0, capacity),
	}
}

// Insert adds value to the set. Returns false if it was already present.
// Panics if value >= capacity.
func (s *Set) Insert(value uint32) bool {
	if s.Contains(value) {
		return false
	}
	s.dense = append(s.dense, value)
	s.sparse[value] = s.size
	s.size++
	return true
}

// Contains reports whether value is in the set.
func (s *Set) Contains(value uint32) bool {
	if value >= uint32(len(s.sparse)) {
		return false
	}
	idx := s.sparse[value]
	return idx < s.size && s.dense[idx] == value
}

// Remove deletes value from the set. No-op if value is not present.
func (s *Set) Remove(value uint32) {
	if !s.Contains(value) {
		return
	}
	idx := s.sparse[value]
	last := s.dense[s.size-1]
	s.dense[idx] = last
	s.sparse[last] = idx
	s.size--
	s.dense = s.dense[:s.size]
}

// Clear empties the set in O(1) time; capacity is unchanged.
func (s *Set) Clear() {
	s.size = 0
	s.dense = s.dense[:0]
}

// Len returns the number of elements currently in the set.
func (s *Set) Len() int {
	return int(s.size)
}

// IsEmpty reports whether the set has no elements.
func (s *Set) IsEmpty() bool {
	return s.size == 0
}

// Values returns the elements currently in the set, in insertion order
// (subject to reordering by Remove). The returned slice aliases internal
// state and is only valid until the next mutation.
func (s *Set) Values() []uint32 {
	return s.dense[:s.size]
}

// Iter calls f for every value currently in the set, in the same order as
// Values. f must not mutate the set.
func (s *Set) Iter(f func(uint32)) {
	for i := uint32(0); i < s.size; i++ {
		f(s.dense[i])
	}
}
