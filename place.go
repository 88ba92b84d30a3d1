package cbg

import "github.com/cbgmap/cbg/cell"

// place writes key/value at pos as a member of the bucket anchored at
// anchor, computing distance and reversed_item from anchor's own
// bucket_reversed bit, and preserving pos's own bucket_reversed /
// unlucky_bucket bits (those describe pos's role as an anchor in its
// own right, not the arriving element — see cell.Meta.Preserve).
// fingerprint should be the low byte of the *other* hash value, so that
// a later probe of this bucket from the opposite direction can filter
// on it.
func (t *Table[K, V]) place(anchor, pos int, key K, val V, label uint8, fingerprint uint8) {
	ownerReversed := t.backend.Meta(anchor).BucketReversed()

	var distance uint8
	if ownerReversed {
		distance = uint8(anchor - pos)
	} else {
		distance = uint8(pos - anchor)
	}

	m := cell.Occupied(label, distance, ownerReversed).Preserve(t.backend.Meta(pos))
	if t.backend.SupportsFingerprint() {
		m = m.WithFingerprint(fingerprint)
	}

	t.backend.SetMeta(pos, m)
	t.backend.Write(pos, key, val)
}

// moveWithinTable relocates the occupant of src to the empty cell dst,
// where dst is now at distance newDistance from its owning anchor, a
// bucket whose reversed flag is newReversed. Used by bucket
// reversal and hopscotch, both of which shuffle existing occupants
// rather than placing a brand new element.
func (t *Table[K, V]) moveWithinTable(dst, src int, newDistance uint8, newReversed bool) {
	m := t.backend.Meta(src)
	t.backend.MoveCell(dst, src)

	newMeta := cell.Occupied(m.Label(), newDistance, newReversed).Preserve(t.backend.Meta(dst))
	if t.backend.SupportsFingerprint() {
		newMeta = newMeta.WithFingerprint(m.Fingerprint())
	}
	t.backend.SetMeta(dst, newMeta)
	t.backend.SetMeta(src, t.backend.Meta(src).SetEmpty())
}
