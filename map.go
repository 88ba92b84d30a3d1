package cbg

import "github.com/cbgmap/cbg/shared"

// Map is a cuckoo breeding ground table presented as a key/value map.
type Map[K comparable, V any] struct {
	t *Table[K, V]
}

// NewMap constructs a Map with the given options applied.
func NewMap[K comparable, V any](opts ...Option[K, V]) *Map[K, V] {
	return &Map[K, V]{t: newTable(opts...)}
}

// Len returns the number of entries.
func (m *Map[K, V]) Len() int { return m.t.Len() }

// Cap returns the number of cells currently allocated.
func (m *Map[K, V]) Cap() int { return m.t.Cap() }

// IsEmpty reports whether the map holds no entries.
func (m *Map[K, V]) IsEmpty() bool { return m.t.IsEmpty() }

// LoadFactor returns Len()/Cap().
func (m *Map[K, V]) LoadFactor() float64 { return m.t.LoadFactor() }

// MaxLoadFactor returns the load factor at which an insert triggers a
// rehash.
func (m *Map[K, V]) MaxLoadFactor() float64 { return m.t.MaxLoadFactor() }

// SetMaxLoadFactor changes the load factor threshold; see
// Table.SetMaxLoadFactor.
func (m *Map[K, V]) SetMaxLoadFactor(lf float64) error { return m.t.SetMaxLoadFactor(lf) }

// GrowFactor returns the capacity multiplier used on a grow-triggered
// rehash.
func (m *Map[K, V]) GrowFactor() float64 { return m.t.GrowFactor() }

// SetGrowFactor changes the capacity multiplier; see Table.SetGrowFactor.
func (m *Map[K, V]) SetGrowFactor(gf float64) error { return m.t.SetGrowFactor(gf) }

// Reserve rehashes to at least n cells of capacity; it is a no-op if
// the map already has that many.
func (m *Map[K, V]) Reserve(n int) { m.t.Reserve(n) }

// Clear removes every entry without releasing backing storage.
func (m *Map[K, V]) Clear() { m.t.Clear() }

// Insert maps key to val, returning true if key was not already
// present. If key was already present, val is discarded and the
// existing mapping is left unchanged.
func (m *Map[K, V]) Insert(key K, val V) bool { return m.t.Insert(key, val) }

// Find returns the value mapped to key, if present.
func (m *Map[K, V]) Find(key K) (V, bool) { return m.t.Find(key) }

// Contains reports whether key is present.
func (m *Map[K, V]) Contains(key K) bool { return m.t.Contains(key) }

// GetMut returns a pointer to the value mapped to key, if present, for
// in-place mutation. The pointer is valid until the next mutating call.
func (m *Map[K, V]) GetMut(key K) (*V, bool) { return m.t.GetMut(key) }

// Erase removes key, if present, and reports whether it was found.
func (m *Map[K, V]) Erase(key K) bool { return m.t.Erase(key) }

// Each calls fn for every key/val pair, stopping early if fn returns
// false.
func (m *Map[K, V]) Each(fn func(key K, val V) bool) { m.t.Each(fn) }

// Index returns the value mapped to key, inserting the zero value of V
// under key first if it was not already present, mirroring the
// insert-on-miss semantics of Go's own map index expression.
func (m *Map[K, V]) Index(key K) V {
	if v, ok := m.t.Find(key); ok {
		return v
	}
	var zero V
	m.t.Insert(key, zero)
	return zero
}

// At returns the value mapped to key, or shared.ErrKeyNotFound if key
// is absent.
func (m *Map[K, V]) At(key K) (V, error) {
	if v, ok := m.t.Find(key); ok {
		return v, nil
	}
	var zero V
	return zero, shared.ErrKeyNotFound
}
