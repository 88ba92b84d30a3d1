// Package cbg implements the Cuckoo Breeding Ground (CBG) hash table:
// an open-addressed, in-memory associative container with two
// overlapping candidate buckets per key, a per-cell label that biases
// cuckoo eviction toward the less-popular alternative, a reversible
// bucket-direction bit that lets a crowded bucket grow into its free
// lower neighbours, and a compact metadata encoding that accelerates
// negative lookups.
//
// The engine (this package) is polymorphic over a storage backend from
// the store package and a double hasher from the shared package, the
// same trait/collaborator split the teacher's algorithm packages use
// for their hasher (shared.HashFn) while keeping their bucket layout
// private to the package.
package cbg

import (
	"github.com/cbgmap/cbg/cell"
	"github.com/cbgmap/cbg/shared"
	"github.com/cbgmap/cbg/store"
	"github.com/cbgmap/cbg/store/arrays"
)

// Table is the core cuckoo breeding ground engine. It is not exported
// directly to callers; Map and Set wrap it with a typed façade the way
// the spec's public surface describes.
type Table[K comparable, V any] struct {
	backend store.Backend[K, V]
	factory store.Factory[K, V]
	hasher  shared.HashFn[K]
	equal   func(a, b K) bool

	bucketWidth int
	numElems    int

	maxLoadFactor float64
	growFactor    float64
}

func defaultEqual[K comparable](a, b K) bool { return a == b }

// newTable constructs a Table from the resolved options, defaulting to
// the parallel-arrays backend the way the teacher's GetHasher default
// covers the common built-in key kinds.
func newTable[K comparable, V any](opts ...Option[K, V]) *Table[K, V] {
	cfg := config[K, V]{
		bucketWidth:   shared.DefaultBucketWidth,
		capacity:      shared.DefaultSize,
		hasher:        shared.GetHasher[K](),
		equal:         defaultEqual[K],
		maxLoadFactor: shared.DefaultMaxLoadFactor,
		growFactor:    shared.DefaultGrowFactor,
		factory: func(capacity int) store.Backend[K, V] {
			return arrays.New[K, V](capacity)
		},
	}
	for _, opt := range opts {
		opt.apply(&cfg)
	}

	if cfg.bucketWidth < shared.MinBucketWidth || cfg.bucketWidth > shared.MaxBucketWidth {
		panic("cbg: bucket width must be in [2, 4]")
	}

	capacity := shared.Max(cfg.capacity, 2*cfg.bucketWidth)
	t := &Table[K, V]{
		factory:       cfg.factory,
		hasher:        cfg.hasher,
		equal:         cfg.equal,
		bucketWidth:   cfg.bucketWidth,
		maxLoadFactor: cfg.maxLoadFactor,
		growFactor:    cfg.growFactor,
	}
	t.backend = t.factory(capacity)
	t.markTailReversed()
	return t
}

// Len returns the number of elements currently stored.
func (t *Table[K, V]) Len() int { return t.numElems }

// Cap returns the number of cells currently allocated.
func (t *Table[K, V]) Cap() int { return t.backend.Cap() }

// IsEmpty reports whether the table holds no elements.
func (t *Table[K, V]) IsEmpty() bool { return t.numElems == 0 }

// LoadFactor returns len()/capacity() as a fraction in [0,1].
func (t *Table[K, V]) LoadFactor() float64 {
	if t.backend.Cap() == 0 {
		return 0
	}
	return float64(t.numElems) / float64(t.backend.Cap())
}

// MaxLoadFactor returns the load factor at which an insert triggers a
// rehash.
func (t *Table[K, V]) MaxLoadFactor() float64 { return t.maxLoadFactor }

// SetMaxLoadFactor changes the load factor at which an insert triggers
// a rehash. Setting it below the current load does not itself trigger
// a rehash; the next insert will. Returns shared.ErrOutOfRange for
// values outside the open interval (0, 1).
func (t *Table[K, V]) SetMaxLoadFactor(lf float64) error {
	if lf <= 0 || lf >= 1 {
		return shared.ErrOutOfRange
	}
	t.maxLoadFactor = lf
	return nil
}

// GrowFactor returns the multiplier applied to capacity on a
// grow-triggered rehash.
func (t *Table[K, V]) GrowFactor() float64 { return t.growFactor }

// SetGrowFactor changes the multiplier applied to capacity on a
// grow-triggered rehash. The effective growth is never smaller than
// 2*B-2 cells regardless of this value. Returns shared.ErrOutOfRange if
// gf <= 1.
func (t *Table[K, V]) SetGrowFactor(gf float64) error {
	if gf <= 1 {
		return shared.ErrOutOfRange
	}
	t.growFactor = gf
	return nil
}

// Clear resets all metadata to empty, zeroes the element count, and
// re-marks the tail buckets reversed. It does not release the backing
// storage.
func (t *Table[K, V]) Clear() {
	t.backend.Reset()
	t.numElems = 0
	t.markTailReversed()
}

// Reserve rehashes to at least n cells of capacity; it is a no-op if
// the table is already larger.
func (t *Table[K, V]) Reserve(n int) {
	if n <= t.backend.Cap() {
		return
	}
	t.rehash(n)
}

// markTailReversed marks the last bucketWidth-1 anchor cells as
// bucket_reversed so they never run off the end of the array.
func (t *Table[K, V]) markTailReversed() {
	n := t.backend.Cap()
	for i := n - t.bucketWidth + 1; i < n; i++ {
		if i < 0 {
			continue
		}
		t.backend.SetMeta(i, t.backend.Meta(i).SetBucketReversed())
	}
}

// reduce maps a 64-bit hash into [0, n) using multiply-high reduction.
func (t *Table[K, V]) reduce(h uint64) int {
	return shared.ReduceMultiplyHigh(h, t.backend.Cap())
}

// cellAt returns the absolute position of the i-th cell (0 <= i <
// bucketWidth) of the bucket anchored at anchor, in the direction its
// reversed flag dictates.
func cellAt(anchor, i int, reversed bool) int {
	if reversed {
		return anchor - i
	}
	return anchor + i
}

// minLabelFor computes the eviction-biased label for a freshly placed
// element: one more than the minimum label of its alternate bucket,
// clamped to cell.LMax.
func minLabelFor(altMin uint8) uint8 {
	v := altMin + 1
	if v > cell.LMax {
		return cell.LMax
	}
	return v
}
