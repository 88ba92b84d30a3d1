package cbg

import (
	"github.com/cbgmap/cbg/shared"
	"github.com/cbgmap/cbg/store"
)

// rehash replaces the backend with a fresh one of at least newCapacity
// cells and redistributes every existing element into it via the normal
// insert machinery. Go has no in-place realloc, so unlike a C++
// implementation this always allocates a brand new backend rather than
// growing the old one in place; the drain below compensates by falling
// back to a larger capacity and restarting whenever the target size
// turns out too tight for the existing label assignments to settle.
func (t *Table[K, V]) rehash(newCapacity int) {
	old := t.backend
	capacity := shared.Max(newCapacity, old.Cap())

	for {
		t.backend = t.factory(capacity)
		t.markTailReversed()

		if t.drain(old) {
			return
		}
		capacity += (capacity + 127) / 128
	}
}

// drain walks every occupied cell of src and inserts it into t.backend,
// stopping and reporting failure the moment one does not fit.
func (t *Table[K, V]) drain(src store.Backend[K, V]) bool {
	for pos := 0; pos < src.Cap(); pos++ {
		if src.Meta(pos).IsEmpty() {
			continue
		}
		if !t.tryInsert(src.Key(pos), src.Value(pos)) {
			return false
		}
	}
	return true
}
