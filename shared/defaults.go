// Package shared collects cross-cutting helpers used by the core table
// engine and by every storage backend: hashing, small math utilities,
// and the default tunables.
package shared

import "errors"

const (
	// DefaultMaxLoadFactor is the load factor at which an insert triggers
	// a rehash, unless overridden with WithMaxLoadFactor.
	DefaultMaxLoadFactor = 0.9001

	// DefaultGrowFactor is the multiplier applied to the capacity on a
	// grow-triggered rehash, unless overridden with WithGrowFactor.
	DefaultGrowFactor = 1.1

	// DefaultBucketWidth is the number of cells per bucket (NUM_ELEMS_BUCKET)
	// used when no WithBucketWidth option is given.
	DefaultBucketWidth = 3

	// DefaultSize is the minimum capacity a freshly constructed table
	// starts out with.
	DefaultSize = 8

	// LMax is the maximum label value a cell's 3-bit label field can hold.
	// Reaching it on both candidate buckets forces a rehash.
	LMax = 7

	// MinBucketWidth and MaxBucketWidth bound B; the source treats B as a
	// compile-time parameter, this port takes it as a construction-time
	// option instead (see WithBucketWidth) but keeps the same range.
	MinBucketWidth = 2
	MaxBucketWidth = 4

	// SecondaryHopscotchLoad is the load ratio above which insert also
	// attempts hopscotch on the secondary bucket before evicting.
	SecondaryHopscotchLoad = 0.9
)

var (
	// ErrOutOfRange signals a configuration value outside its accepted range.
	ErrOutOfRange = errors.New("out of range")

	// ErrKeyNotFound is returned by the strict Map.At accessor.
	ErrKeyNotFound = errors.New("key not found")
)
