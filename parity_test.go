package cbg_test

import (
	"fmt"
	"sort"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/cbgmap/cbg"
	"github.com/cbgmap/cbg/store"
	"github.com/cbgmap/cbg/store/blocks"
	"github.com/cbgmap/cbg/store/interleaved"
)

type kv struct {
	Key int
	Val int
}

// snapshot drains m into a key-sorted slice so two maps built over
// different backends can be diffed structurally regardless of the
// physical cell order each backend happened to leave them in.
func snapshot(m *cbg.Map[int, int]) []kv {
	out := make([]kv, 0, m.Len())
	m.Each(func(k, v int) bool {
		out = append(out, kv{k, v})
		return true
	})
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out
}

// TestBackendsAgreeOnContents drives the same insert/erase sequence
// through every storage backend and diffs the resulting snapshots
// against the default arrays backend, so a backend-specific bug in
// metadata handling or payload storage shows up as a structural diff
// instead of a bare pass/fail.
func TestBackendsAgreeOnContents(t *testing.T) {
	seed := func(m *cbg.Map[int, int]) {
		for i := 0; i < 4000; i++ {
			m.Insert(i, i*31+7)
		}
		for i := 0; i < 4000; i += 3 {
			m.Erase(i)
		}
	}

	baseline := cbg.NewMap[int, int]()
	seed(baseline)
	want := snapshot(baseline)

	variants := []struct {
		name    string
		backend store.Factory[int, int]
	}{
		{"interleaved", func(capacity int) store.Backend[int, int] { return interleaved.New[int, int](capacity) }},
		{"blocks", func(capacity int) store.Backend[int, int] { return blocks.New[int, int](capacity) }},
	}

	for _, v := range variants {
		t.Run(v.name, func(t *testing.T) {
			m := cbg.NewMap[int, int](cbg.WithBackend[int, int](v.backend))
			seed(m)
			got := snapshot(m)
			if diff := cmp.Diff(want, got); diff != "" {
				t.Errorf("%s backend contents differ from arrays baseline:\n%s", v.name, diff)
			}
		})
	}
}

// TestBucketWidthDoesNotChangeContents diffs the same insert sequence
// across every legal bucket width, the other axis a storage-layout
// bug could hide behind.
func TestBucketWidthDoesNotChangeContents(t *testing.T) {
	baseline := cbg.NewMap[int, int](cbg.WithBucketWidth[int, int](3))
	for i := 0; i < 3000; i++ {
		baseline.Insert(i, i*i)
	}
	want := snapshot(baseline)

	for _, b := range []int{2, 4} {
		t.Run(fmt.Sprintf("width%d", b), func(t *testing.T) {
			m := cbg.NewMap[int, int](cbg.WithBucketWidth[int, int](b))
			for i := 0; i < 3000; i++ {
				m.Insert(i, i*i)
			}
			got := snapshot(m)
			if diff := cmp.Diff(want, got); diff != "" {
				t.Errorf("bucket width %d contents differ from baseline:\n%s", b, diff)
			}
		})
	}
}
