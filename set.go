package cbg

// Set is a cuckoo breeding ground table presented as a key set, backed
// by a Table[K, struct{}] the same way a set built on top of a regular
// Go map is usually just map[K]struct{}.
type Set[K comparable] struct {
	t *Table[K, struct{}]
}

// NewSet constructs a Set with the given options applied.
func NewSet[K comparable](opts ...Option[K, struct{}]) *Set[K] {
	return &Set[K]{t: newTable(opts...)}
}

// Len returns the number of elements.
func (s *Set[K]) Len() int { return s.t.Len() }

// Cap returns the number of cells currently allocated.
func (s *Set[K]) Cap() int { return s.t.Cap() }

// IsEmpty reports whether the set holds no elements.
func (s *Set[K]) IsEmpty() bool { return s.t.IsEmpty() }

// LoadFactor returns Len()/Cap().
func (s *Set[K]) LoadFactor() float64 { return s.t.LoadFactor() }

// MaxLoadFactor returns the load factor at which an insert triggers a
// rehash.
func (s *Set[K]) MaxLoadFactor() float64 { return s.t.MaxLoadFactor() }

// SetMaxLoadFactor changes the load factor threshold; see
// Table.SetMaxLoadFactor.
func (s *Set[K]) SetMaxLoadFactor(lf float64) error { return s.t.SetMaxLoadFactor(lf) }

// GrowFactor returns the capacity multiplier used on a grow-triggered
// rehash.
func (s *Set[K]) GrowFactor() float64 { return s.t.GrowFactor() }

// SetGrowFactor changes the capacity multiplier; see Table.SetGrowFactor.
func (s *Set[K]) SetGrowFactor(gf float64) error { return s.t.SetGrowFactor(gf) }

// Reserve rehashes to at least n cells of capacity; it is a no-op if
// the set already has that many.
func (s *Set[K]) Reserve(n int) { s.t.Reserve(n) }

// Clear removes every element without releasing backing storage.
func (s *Set[K]) Clear() { s.t.Clear() }

// Insert adds key, returning true if it was not already present.
func (s *Set[K]) Insert(key K) bool { return s.t.Insert(key, struct{}{}) }

// Contains reports whether key is present.
func (s *Set[K]) Contains(key K) bool { return s.t.Contains(key) }

// Erase removes key, if present, and reports whether it was found.
func (s *Set[K]) Erase(key K) bool { return s.t.Erase(key) }

// Each calls fn for every element, stopping early if fn returns false.
func (s *Set[K]) Each(fn func(key K) bool) {
	s.t.Each(func(key K, _ struct{}) bool { return fn(key) })
}
