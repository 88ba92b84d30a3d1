package cbg

// Find returns the value mapped to key, if present.
func (t *Table[K, V]) Find(key K) (V, bool) {
	pos, ok := t.find(key)
	if !ok {
		var zero V
		return zero, false
	}
	return t.backend.Value(pos), true
}

// Contains reports whether key is present.
func (t *Table[K, V]) Contains(key K) bool {
	_, ok := t.find(key)
	return ok
}

// GetMut returns a pointer to the value mapped to key, if present. The
// pointer is valid until the next mutating call on the table.
func (t *Table[K, V]) GetMut(key K) (*V, bool) {
	pos, ok := t.find(key)
	if !ok {
		return nil, false
	}
	return t.backend.ValuePtr(pos), true
}
