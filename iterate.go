package cbg

// Each calls fn once for every stored key/val pair, in backend cell
// order, stopping early if fn returns false. Iteration order is not
// insertion order and is not stable across rehashes.
func (t *Table[K, V]) Each(fn func(key K, val V) bool) {
	for pos := 0; pos < t.backend.Cap(); pos++ {
		if t.backend.Meta(pos).IsEmpty() {
			continue
		}
		if !fn(t.backend.Key(pos), t.backend.Value(pos)) {
			return
		}
	}
}
