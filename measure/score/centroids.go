package score

import "slices"

// CentroidSet is an ordered set of ground-truth sample indices that shrinks
// as centroids are consumed.
type CentroidSet struct {
	idx      []uint64 // sorted, unique
	consumed []bool
	left     int
}

// NewCentroidSet builds a set from indices in any order. Duplicates are
// collapsed.
func NewCentroidSet(indices []uint64) *CentroidSet {
	idx := slices.Clone(indices)
	slices.Sort(idx)
	idx = slices.Compact(idx)

	return &CentroidSet{
		idx:      idx,
		consumed: make([]bool, len(idx)),
		left:     len(idx),
	}
}

// Len returns the number of centroids not yet consumed.
func (s *CentroidSet) Len() int {
	return s.left
}

// Total returns the number of centroids the set was built with.
func (s *CentroidSet) Total() int {
	return len(s.idx)
}

// Contains reports whether i is present and not yet consumed.
func (s *CentroidSet) Contains(i uint64) bool {
	pos, ok := slices.BinarySearch(s.idx, i)
	return ok && !s.consumed[pos]
}

// Take consumes i and reports whether it was present.
func (s *CentroidSet) Take(i uint64) bool {
	pos, ok := slices.BinarySearch(s.idx, i)
	if !ok || s.consumed[pos] {
		return false
	}
	s.consumed[pos] = true
	s.left--
	return true
}

// Remaining returns the unconsumed centroids in ascending order.
func (s *CentroidSet) Remaining() []uint64 {
	out := make([]uint64, 0, s.left)
	for i, v := range s.idx {
		if !s.consumed[i] {
			out = append(out, v)
		}
	}
	return out
}
