// Package store defines the storage trait the table engine is
// polymorphic over, plus three concrete implementations in its
// subpackages: arrays (parallel arrays with a fingerprint-carrying wide
// metadata word), interleaved (one slice of metadata+payload records),
// and blocks (block-interleaved, metadata and payload co-located per
// block while keeping natural per-field alignment).
package store

import "github.com/cbgmap/cbg/cell"

// Backend is the storage trait the core engine consumes. A Backend owns
// a flat array of Cap() cells; the engine is responsible for all
// cuckoo/hopscotch/rehash bookkeeping and only asks the backend to
// allocate, move, and access payloads.
type Backend[K comparable, V any] interface {
	// Cap returns the number of cells currently allocated.
	Cap() int

	// Meta returns the metadata word for the cell at pos.
	Meta(pos int) cell.Meta

	// SetMeta stores the metadata word for the cell at pos.
	SetMeta(pos int, m cell.Meta)

	// Key returns the key stored at pos. Only valid when Meta(pos) is
	// not empty.
	Key(pos int) K

	// Value returns the value stored at pos. Only valid when Meta(pos)
	// is not empty.
	Value(pos int) V

	// ValuePtr returns a pointer to the value stored at pos, valid until
	// the next mutating operation on the backend.
	ValuePtr(pos int) *V

	// Write stores a key/value payload at pos, leaving metadata
	// untouched; the caller sets metadata separately.
	Write(pos int, key K, value V)

	// MoveCell copies the payload (not the metadata) from src to dst.
	MoveCell(dst, src int)

	// Reset clears every cell's metadata to cell.Empty, without
	// reallocating or touching payloads.
	Reset()

	// SupportsFingerprint reports whether this backend's metadata word
	// carries a usable fingerprint byte (only the arrays backend does).
	SupportsFingerprint() bool
}

// Factory allocates a fresh Backend with the given capacity, all cells
// zero-initialised (metadata empty).
type Factory[K comparable, V any] func(capacity int) Backend[K, V]
