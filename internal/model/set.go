package model

// Set is a deduplicated collection of comparison keys. Facts are true sets: an
// element appearing five times in malformed source collapses to one entry.
type Set[K comparable] map[K]struct{}

// NewSet builds a set from the given items.
func NewSet[K comparable](items ...K) Set[K] {
	s := make(Set[K], len(items))
	for _, it := range items {
		s.Add(it)
	}
	return s
}

// Add inserts an item.
func (s Set[K]) Add(k K) {
	s[k] = struct{}{}
}

// Has reports membership.
func (s Set[K]) Has(k K) bool {
	_, ok := s[k]
	return ok
}

// Len returns the number of distinct items.
func (s Set[K]) Len() int {
	return len(s)
}
