// Package interleaved implements the interleaved-records storage
// backend: a single slice of records, each holding its own narrow
// (8-bit, no fingerprint) metadata alongside the key and value. This
// keeps one cell's data in one cache line at the cost of negative
// lookups always needing a key comparison instead of a fingerprint
// filter. Go's struct layout rules give each record natural field
// alignment on its own, so unlike the source systems-language variant
// this backend needs no manual unaligned-load handling; prefer it over
// store/blocks only when a single cache line per cell matters more than
// per-field SIMD-friendly layout.
package interleaved

import "github.com/cbgmap/cbg/cell"

type record[K comparable, V any] struct {
	meta  cell.Meta
	key   K
	value V
}

// Backend is an interleaved-records implementation of store.Backend.
type Backend[K comparable, V any] struct {
	records []record[K, V]
}

// New allocates a fresh Backend with capacity cells, all empty.
func New[K comparable, V any](capacity int) *Backend[K, V] {
	return &Backend[K, V]{records: make([]record[K, V], capacity)}
}

// Cap returns the number of allocated cells.
func (b *Backend[K, V]) Cap() int { return len(b.records) }

// Meta returns the metadata word at pos.
func (b *Backend[K, V]) Meta(pos int) cell.Meta { return b.records[pos].meta }

// SetMeta stores the metadata word at pos, masked to the narrow 8-bit
// layout this backend supports (no fingerprint byte).
func (b *Backend[K, V]) SetMeta(pos int, m cell.Meta) { b.records[pos].meta = m & 0x00FF }

// Key returns the key stored at pos.
func (b *Backend[K, V]) Key(pos int) K { return b.records[pos].key }

// Value returns the value stored at pos.
func (b *Backend[K, V]) Value(pos int) V { return b.records[pos].value }

// ValuePtr returns a pointer to the value stored at pos.
func (b *Backend[K, V]) ValuePtr(pos int) *V { return &b.records[pos].value }

// Write stores a key/value payload at pos.
func (b *Backend[K, V]) Write(pos int, key K, value V) {
	b.records[pos].key = key
	b.records[pos].value = value
}

// MoveCell copies the payload from src to dst.
func (b *Backend[K, V]) MoveCell(dst, src int) {
	b.records[dst].key = b.records[src].key
	b.records[dst].value = b.records[src].value
}

// Reset clears every cell's metadata without reallocating.
func (b *Backend[K, V]) Reset() {
	for i := range b.records {
		b.records[i].meta = cell.Empty
	}
}

// SupportsFingerprint reports false: this backend's metadata has no
// fingerprint byte, so lookups always fall back to a key comparison.
func (b *Backend[K, V]) SupportsFingerprint() bool { return false }
