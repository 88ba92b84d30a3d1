// Package arrays implements the parallel-arrays storage backend:
// separate metadata, key, and value slices. Metadata is the wide
// 16-bit cell.Meta word including the fingerprint byte, making this the
// backend of choice for workloads dominated by negative lookups.
package arrays

import (
	"github.com/cbgmap/cbg/cell"
)

// Backend is a parallel-arrays implementation of store.Backend.
type Backend[K comparable, V any] struct {
	meta   []cell.Meta
	keys   []K
	values []V
}

// New allocates a fresh Backend with capacity cells, all empty.
func New[K comparable, V any](capacity int) *Backend[K, V] {
	return &Backend[K, V]{
		meta:   make([]cell.Meta, capacity),
		keys:   make([]K, capacity),
		values: make([]V, capacity),
	}
}

// Cap returns the number of allocated cells.
func (b *Backend[K, V]) Cap() int { return len(b.meta) }

// Meta returns the metadata word at pos.
func (b *Backend[K, V]) Meta(pos int) cell.Meta { return b.meta[pos] }

// SetMeta stores the metadata word at pos.
func (b *Backend[K, V]) SetMeta(pos int, m cell.Meta) { b.meta[pos] = m }

// Key returns the key stored at pos.
func (b *Backend[K, V]) Key(pos int) K { return b.keys[pos] }

// Value returns the value stored at pos.
func (b *Backend[K, V]) Value(pos int) V { return b.values[pos] }

// ValuePtr returns a pointer to the value stored at pos.
func (b *Backend[K, V]) ValuePtr(pos int) *V { return &b.values[pos] }

// Write stores a key/value payload at pos.
func (b *Backend[K, V]) Write(pos int, key K, value V) {
	b.keys[pos] = key
	b.values[pos] = value
}

// MoveCell copies the payload from src to dst.
func (b *Backend[K, V]) MoveCell(dst, src int) {
	b.keys[dst] = b.keys[src]
	b.values[dst] = b.values[src]
}

// Reset clears every cell's metadata without reallocating.
func (b *Backend[K, V]) Reset() {
	for i := range b.meta {
		b.meta[i] = cell.Empty
	}
}

// SupportsFingerprint reports true: this backend's wide metadata word
// carries a usable fingerprint byte.
func (b *Backend[K, V]) SupportsFingerprint() bool { return true }
