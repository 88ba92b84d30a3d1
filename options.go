package cbg

import (
	"github.com/cbgmap/cbg/shared"
	"github.com/cbgmap/cbg/store"
)

// config collects everything an Option can influence before the Table
// backing array is allocated.
type config[K comparable, V any] struct {
	bucketWidth   int
	capacity      int
	hasher        shared.HashFn[K]
	equal         func(a, b K) bool
	maxLoadFactor float64
	growFactor    float64
	factory       store.Factory[K, V]
}

// Option configures a Map or Set at construction time, the same
// apply-to-the-being-built-value shape cockroachdb/swiss's option[K, V]
// uses for its WithHash/WithAllocator constructors.
type Option[K comparable, V any] interface {
	apply(c *config[K, V])
}

type optionFunc[K comparable, V any] func(c *config[K, V])

func (f optionFunc[K, V]) apply(c *config[K, V]) { f(c) }

// WithBucketWidth sets B, the number of cells per bucket. Must be in
// [2, 4]; the zero value keeps shared.DefaultBucketWidth (3).
func WithBucketWidth[K comparable, V any](b int) Option[K, V] {
	return optionFunc[K, V](func(c *config[K, V]) {
		if b != 0 {
			c.bucketWidth = b
		}
	})
}

// WithCapacity pre-reserves capacity for at least n elements.
func WithCapacity[K comparable, V any](n int) Option[K, V] {
	return optionFunc[K, V](func(c *config[K, V]) {
		c.capacity = int(float64(n)/c.maxLoadFactor) + 1
	})
}

// WithHasher overrides the default double hasher.
func WithHasher[K comparable, V any](h shared.HashFn[K]) Option[K, V] {
	return optionFunc[K, V](func(c *config[K, V]) { c.hasher = h })
}

// WithEqual overrides the default == equality collaborator, useful when
// K wraps a value that needs custom comparison semantics.
func WithEqual[K comparable, V any](eq func(a, b K) bool) Option[K, V] {
	return optionFunc[K, V](func(c *config[K, V]) { c.equal = eq })
}

// WithBackend overrides the default parallel-arrays storage backend.
func WithBackend[K comparable, V any](f store.Factory[K, V]) Option[K, V] {
	return optionFunc[K, V](func(c *config[K, V]) { c.factory = f })
}

// WithMaxLoadFactor overrides shared.DefaultMaxLoadFactor.
func WithMaxLoadFactor[K comparable, V any](lf float64) Option[K, V] {
	return optionFunc[K, V](func(c *config[K, V]) { c.maxLoadFactor = lf })
}

// WithGrowFactor overrides shared.DefaultGrowFactor.
func WithGrowFactor[K comparable, V any](gf float64) Option[K, V] {
	return optionFunc[K, V](func(c *config[K, V]) { c.growFactor = gf })
}
