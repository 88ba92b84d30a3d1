package cbg

// find implements the two-bucket probe from the spec's lookup engine:
// probe the primary bucket first, filtering candidates by fingerprint
// when the backend supports one, and only fall through to the
// secondary bucket when the primary anchor is marked unlucky.
func (t *Table[K, V]) find(key K) (int, bool) {
	h0, h1 := t.hasher(key)
	p0 := t.reduce(h0)

	if pos, ok := t.probeBucket(p0, key, uint8(h1)); ok {
		return pos, true
	}
	if !t.backend.Meta(p0).UnluckyBucket() {
		return 0, false
	}

	p1 := t.reduce(h1)
	return t.probeBucket(p1, key, uint8(h0))
}

// probeBucket scans the bucket anchored at anchor for key, skipping
// cells whose fingerprint does not match otherFingerprint when the
// backend supports fingerprints.
func (t *Table[K, V]) probeBucket(anchor int, key K, otherFingerprint uint8) (int, bool) {
	reversed := t.backend.Meta(anchor).BucketReversed()
	useFingerprint := t.backend.SupportsFingerprint()

	for i := 0; i < t.bucketWidth; i++ {
		pos := cellAt(anchor, i, reversed)
		if pos < 0 || pos >= t.backend.Cap() {
			continue
		}
		m := t.backend.Meta(pos)
		if m.IsEmpty() {
			continue
		}
		if useFingerprint && m.Fingerprint() != otherFingerprint {
			continue
		}
		if t.equal(t.backend.Key(pos), key) {
			return pos, true
		}
	}
	return 0, false
}

// bucketMin returns the smallest label and its cell position within
// the bucket anchored at anchor. A label of 0 means that cell is empty.
func (t *Table[K, V]) bucketMin(anchor int) (minLabel uint8, minPos int) {
	reversed := t.backend.Meta(anchor).BucketReversed()
	minLabel = 0xFF

	for i := 0; i < t.bucketWidth; i++ {
		pos := cellAt(anchor, i, reversed)
		if pos < 0 || pos >= t.backend.Cap() {
			continue
		}
		lbl := t.backend.Meta(pos).Label()
		if lbl < minLabel {
			minLabel = lbl
			minPos = pos
			if lbl == 0 {
				break
			}
		}
	}
	return minLabel, minPos
}

// emptyInBucket returns the position of an empty cell within the
// bucket anchored at anchor, if one exists.
func (t *Table[K, V]) emptyInBucket(anchor int) (int, bool) {
	reversed := t.backend.Meta(anchor).BucketReversed()
	for i := 0; i < t.bucketWidth; i++ {
		pos := cellAt(anchor, i, reversed)
		if pos < 0 || pos >= t.backend.Cap() {
			continue
		}
		if t.backend.Meta(pos).IsEmpty() {
			return pos, true
		}
	}
	return 0, false
}
