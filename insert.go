package cbg

import (
	"github.com/cbgmap/cbg/cell"
	"github.com/cbgmap/cbg/shared"
)

// maxGrowAttempts bounds how many times Insert will rehash in response to
// a single stubborn insert before giving up. A well-behaved hasher never
// gets close to this; it exists so a pathological HashFn fails loudly
// instead of spinning.
const maxGrowAttempts = 32

// maxKicks bounds the cuckoo eviction chain. The label bias makes the
// chain's total label sum rise with every kick only until the labels
// involved reach cell.LMax, where minLabelFor clamps them; past that
// point maxKicks is what ends the chain and triggers the rehash.
const maxKicks = 256

// Insert adds key/val, growing the table as needed. It returns true if
// key was not already present (and is now mapped to val), or false if
// key was already present, in which case val is discarded and the
// existing mapping is left untouched.
func (t *Table[K, V]) Insert(key K, val V) bool {
	if _, ok := t.find(key); ok {
		return false
	}

	if float64(t.numElems+1)/float64(t.backend.Cap()) > t.maxLoadFactor {
		t.rehash(t.growSize())
	}

	for attempt := 0; !t.tryInsert(key, val); attempt++ {
		if attempt >= maxGrowAttempts {
			panic("cbg: insert failed to find room after repeated rehashing")
		}
		t.rehash(t.growSize())
	}
	t.numElems++
	return true
}

// growSize computes the next backend capacity for a grow-triggered
// rehash: growFactor times the current capacity, floored so at least
// 2*B-2 cells are always added even when starting small.
func (t *Table[K, V]) growSize() int {
	next := int(float64(t.backend.Cap()) * t.growFactor)
	min := t.backend.Cap() + 2*t.bucketWidth - 2
	if next < min {
		next = min
	}
	return next
}

// tryInsert attempts to place key/val into the current backend without
// growing it, returning false if the backend is too full to make room.
// It never touches numElems; the caller owns that count.
func (t *Table[K, V]) tryInsert(key K, val V) bool {
	h0, h1 := t.hasher(key)
	p0, p1 := t.reduce(h0), t.reduce(h1)
	fp0, fp1 := uint8(h1), uint8(h0)

	if pos, ok := t.findRoom(p0); ok {
		t.placeNew(p0, p1, pos, key, val, fp0)
		return true
	}

	// Secondary fast path: always tried, load notwithstanding.
	if pos, ok := t.emptyInBucket(p1); ok {
		t.placeNew(p1, p0, pos, key, val, fp1)
		t.markUnlucky(p0)
		return true
	}

	// Secondary hopscotch: only above the load gate, since the scan is
	// the expensive escalation and is rarely needed below it.
	if t.LoadFactor() > shared.SecondaryHopscotchLoad {
		if pos, ok := t.findRoom(p1); ok {
			t.placeNew(p1, p0, pos, key, val, fp1)
			t.markUnlucky(p0)
			return true
		}
	}

	return t.evict(key, val, p0, p1, fp0, fp1)
}

// placeNew writes a brand new element at pos within anchor's bucket,
// biasing its label off the minimum label currently held in its
// alternate bucket (altAnchor).
func (t *Table[K, V]) placeNew(anchor, altAnchor, pos int, key K, val V, fp uint8) {
	minLabel, _ := t.bucketMin(altAnchor)
	t.place(anchor, pos, key, val, minLabelFor(minLabel), fp)
}

// markUnlucky sets anchor's unlucky_bucket bit: some element whose
// primary bucket is anchor ended up in its secondary bucket instead.
func (t *Table[K, V]) markUnlucky(anchor int) {
	t.backend.SetMeta(anchor, t.backend.Meta(anchor).SetUnluckyBucket())
}

// evict runs the cuckoo eviction chain: repeatedly displace the
// lowest-label occupant between the current item's two candidate
// buckets, then try to re-home the displaced occupant the same way a
// fresh insert would. The label bias raises the chain's total label sum
// until labels saturate at cell.LMax; after maxKicks kicks without
// success it signals the caller to grow the table.
func (t *Table[K, V]) evict(key K, val V, p0, p1 int, fp0, fp1 uint8) bool {
	curKey, curVal := key, val
	anchor0, anchor1 := p0, p1
	curFp0, curFp1 := fp0, fp1

	for kick := 0; kick < maxKicks; kick++ {
		if pos, ok := t.findRoom(anchor0); ok {
			t.placeNew(anchor0, anchor1, pos, curKey, curVal, curFp0)
			return true
		}
		if pos, ok := t.findRoom(anchor1); ok {
			t.placeNew(anchor1, anchor0, pos, curKey, curVal, curFp1)
			t.markUnlucky(anchor0)
			return true
		}

		min0, pos0 := t.bucketMin(anchor0)
		min1, pos1 := t.bucketMin(anchor1)

		var victimAnchor, victimPos, victimOther int
		var victimFp uint8
		if min0 <= min1 {
			victimAnchor, victimPos, victimOther, victimFp = anchor0, pos0, anchor1, curFp0
		} else {
			victimAnchor, victimPos, victimOther, victimFp = anchor1, pos1, anchor0, curFp1
		}

		evictedKey := t.backend.Key(victimPos)
		evictedVal := t.backend.Value(victimPos)

		minLabel, _ := t.bucketMin(victimOther)
		t.place(victimAnchor, victimPos, curKey, curVal, minLabelFor(minLabel), victimFp)
		if victimAnchor == anchor1 {
			t.markUnlucky(anchor0)
		}

		eh0, eh1 := t.hasher(evictedKey)
		curKey, curVal = evictedKey, evictedVal
		curFp0, curFp1 = uint8(eh1), uint8(eh0)
		anchor0, anchor1 = t.reduce(eh0), t.reduce(eh1)
	}
	return false
}

// findRoom locates a cell for a new occupant of anchor's bucket,
// escalating through the hopscotch path's three steps in order: an
// already-free cell, a bucket reversal (this anchor's own, then a
// forward neighbour's), and finally a classic hopscotch walk.
func (t *Table[K, V]) findRoom(anchor int) (int, bool) {
	if pos, ok := t.emptyInBucket(anchor); ok {
		return pos, true
	}
	if t.reverseBucket(anchor) {
		if pos, ok := t.emptyInBucket(anchor); ok {
			return pos, true
		}
	}
	if t.tryNeighbourReversal(anchor) {
		if pos, ok := t.emptyInBucket(anchor); ok {
			return pos, true
		}
	}
	return t.hopscotch(anchor)
}

// anchorOf returns the anchor that owns the occupant stored at pos,
// derived from its distance and reversed_item bits.
func anchorOf(pos int, m cell.Meta) int {
	if m.ReversedItem() {
		return pos + int(m.Distance())
	}
	return pos - int(m.Distance())
}

// reverseBucket flips anchor's bucket_reversed bit and relocates every
// occupant anchor owns in the forward overhang (anchor+1 .. anchor+B-1)
// into the freshly available range below it (anchor-1 .. anchor-B+1),
// provided enough empty cells exist there to hold them all. It reports
// whether the flip happened; a flip with headroom to spare is what lets
// the caller's subsequent emptyInBucket find a cell for the new element.
// The bit is sticky, so this is a no-op once anchor is already reversed.
//
// anchor's own cell (distance 0) needs no physical relocation: cellAt
// resolves offset 0 to anchor itself regardless of direction, so an
// occupant sitting there stays put either way. It still owes its
// metadata an update, though: its reversed_item bit was written false
// under the old (forward) direction, and must now read true to match
// anchor's flipped bucket_reversed, or the distance-correctness
// invariant breaks for that cell the moment the flip below happens.
func (t *Table[K, V]) reverseBucket(anchor int) bool {
	if t.backend.Meta(anchor).BucketReversed() {
		return false
	}
	b := t.bucketWidth

	ownMeta := t.backend.Meta(anchor)
	ownNeedsFlip := !ownMeta.IsEmpty() && !ownMeta.ReversedItem() && anchorOf(anchor, ownMeta) == anchor

	var movants []int
	for i := 1; i < b; i++ {
		p := anchor + i
		if p >= t.backend.Cap() {
			continue
		}
		m := t.backend.Meta(p)
		if m.IsEmpty() || m.ReversedItem() {
			continue
		}
		if anchorOf(p, m) == anchor {
			movants = append(movants, p)
		}
	}

	var emptyLower []int
	for i := 1; i < b; i++ {
		p := anchor - i
		if p < 0 {
			continue
		}
		if t.backend.Meta(p).IsEmpty() {
			emptyLower = append(emptyLower, p)
		}
	}
	if len(emptyLower) < len(movants) {
		return false
	}

	t.backend.SetMeta(anchor, t.backend.Meta(anchor).SetBucketReversed())
	if ownNeedsFlip {
		t.backend.SetMeta(anchor, t.backend.Meta(anchor).SetReversedItem())
	}
	for i, p := range movants {
		dst := emptyLower[i]
		t.moveWithinTable(dst, p, uint8(anchor-dst), true)
	}
	return true
}

// tryNeighbourReversal looks at the up-to-B-1 forward neighbours behind
// anchor (anchor-1 .. anchor-B+1) whose own forward bucket could be
// encroaching on anchor's range, and reverses the first one willing to
// flip. Reversing a neighbour away from anchor is the hopscotch path's
// second escalation, tried after reversing anchor's own bucket fails.
func (t *Table[K, V]) tryNeighbourReversal(anchor int) bool {
	b := t.bucketWidth
	for k := 1; k < b; k++ {
		nb := anchor - k
		if nb < 0 {
			continue
		}
		m := t.backend.Meta(nb)
		if m.IsEmpty() || m.BucketReversed() {
			continue
		}
		if t.reverseBucket(nb) {
			return true
		}
	}
	return false
}

// maxHopScan bounds how far past anchor the classic hopscotch walk will
// look for a free cell to drag backward into range.
const maxHopScan = 64

// hopscotch implements the generalized classic-hopscotch displacement:
// find a free cell ahead of anchor, then repeatedly pull it closer by
// swapping in the occupant farthest back from it whose own anchor can
// still reach it within the bucket width, until the free cell lands
// inside anchor's own bucket. A reversed anchor's bucket lies below it,
// out of reach of this forward walk, so it reports failure for one.
func (t *Table[K, V]) hopscotch(anchor int) (int, bool) {
	if t.backend.Meta(anchor).BucketReversed() {
		return 0, false
	}
	b := t.bucketWidth
	scanLimit := anchor + maxHopScan
	if scanLimit > t.backend.Cap() {
		scanLimit = t.backend.Cap()
	}

	empty := -1
	for p := anchor; p < scanLimit; p++ {
		if t.backend.Meta(p).IsEmpty() {
			empty = p
			break
		}
	}
	if empty == -1 {
		return 0, false
	}

	for empty-anchor >= b {
		moved := false
		for c := empty - (b - 1); c < empty; c++ {
			if c < 0 {
				continue
			}
			m := t.backend.Meta(c)
			if m.IsEmpty() || m.ReversedItem() {
				continue
			}
			owner := anchorOf(c, m)
			newDist := empty - owner
			if newDist < 0 || newDist >= b {
				continue
			}
			t.moveWithinTable(empty, c, uint8(newDist), false)
			empty = c
			moved = true
			break
		}
		if !moved {
			return 0, false
		}
	}
	return empty, true
}
