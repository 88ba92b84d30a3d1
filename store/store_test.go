package store_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/cbgmap/cbg/cell"
	"github.com/cbgmap/cbg/store"
	"github.com/cbgmap/cbg/store/arrays"
	"github.com/cbgmap/cbg/store/blocks"
	"github.com/cbgmap/cbg/store/interleaved"
)

func factories() map[string]store.Factory[int, string] {
	return map[string]store.Factory[int, string]{
		"arrays": func(capacity int) store.Backend[int, string] {
			return arrays.New[int, string](capacity)
		},
		"interleaved": func(capacity int) store.Backend[int, string] {
			return interleaved.New[int, string](capacity)
		},
		"blocks": func(capacity int) store.Backend[int, string] {
			return blocks.New[int, string](capacity)
		},
	}
}

func TestBackendsStartEmpty(t *testing.T) {
	for name, f := range factories() {
		t.Run(name, func(t *testing.T) {
			b := f(16)
			assert.Equal(t, 16, b.Cap())
			for i := 0; i < b.Cap(); i++ {
				assert.True(t, b.Meta(i).IsEmpty())
			}
		})
	}
}

func TestBackendsWriteAndRead(t *testing.T) {
	for name, f := range factories() {
		t.Run(name, func(t *testing.T) {
			b := f(8)
			b.Write(3, 42, "hello")
			b.SetMeta(3, cell.Occupied(1, 0, false))

			assert.Equal(t, 42, b.Key(3))
			assert.Equal(t, "hello", b.Value(3))
			assert.Equal(t, "hello", *b.ValuePtr(3))
			assert.False(t, b.Meta(3).IsEmpty())
		})
	}
}

func TestBackendsMoveCell(t *testing.T) {
	for name, f := range factories() {
		t.Run(name, func(t *testing.T) {
			b := f(8)
			b.Write(1, 7, "x")
			b.SetMeta(1, cell.Occupied(2, 0, false))

			b.MoveCell(5, 1)
			assert.Equal(t, 7, b.Key(5))
			assert.Equal(t, "x", b.Value(5))
		})
	}
}

func TestBackendsReset(t *testing.T) {
	for name, f := range factories() {
		t.Run(name, func(t *testing.T) {
			b := f(8)
			b.SetMeta(2, cell.Occupied(3, 0, false).SetUnluckyBucket())
			b.Reset()
			for i := 0; i < b.Cap(); i++ {
				assert.True(t, b.Meta(i).IsEmpty())
			}
		})
	}
}

func TestArraysSupportsFingerprint(t *testing.T) {
	assert.True(t, arrays.New[int, string](4).SupportsFingerprint())
	assert.False(t, interleaved.New[int, string](4).SupportsFingerprint())
	assert.False(t, blocks.New[int, string](4).SupportsFingerprint())
}

func TestArraysPreservesFingerprintByte(t *testing.T) {
	b := arrays.New[int, string](4)
	m := cell.Occupied(1, 0, false).WithFingerprint(0xCD)
	b.SetMeta(0, m)
	assert.Equal(t, uint8(0xCD), b.Meta(0).Fingerprint())
}

func TestNarrowBackendsMaskFingerprintByte(t *testing.T) {
	for _, f := range []store.Factory[int, string]{
		func(capacity int) store.Backend[int, string] { return interleaved.New[int, string](capacity) },
		func(capacity int) store.Backend[int, string] { return blocks.New[int, string](capacity) },
	} {
		b := f(4)
		m := cell.Occupied(1, 0, false).WithFingerprint(0xCD)
		b.SetMeta(0, m)
		assert.Equal(t, uint8(0), b.Meta(0).Fingerprint())
		assert.Equal(t, uint8(1), b.Meta(0).Label())
	}
}
