package cbg

// Erase removes key, if present, and reports whether it was found. The
// vacated cell's unlucky_bucket and bucket_reversed bits are left as
// they were: unlucky_bucket is conservative by design (see cell.Meta),
// and bucket_reversed is sticky for the table's lifetime.
func (t *Table[K, V]) Erase(key K) bool {
	pos, ok := t.find(key)
	if !ok {
		return false
	}
	t.backend.SetMeta(pos, t.backend.Meta(pos).SetEmpty())
	t.numElems--
	return true
}
