package cbg

import "github.com/sanity-io/litter"

// cellDump is the shape Dump renders per occupied cell; its field names
// are what shows up in the litter.Sdump output.
type cellDump struct {
	Pos    int
	Anchor int
	Meta   string
	Key    any
	Value  any
}

// Dump renders every occupied cell of the table as a human-readable
// string, keyed positionally rather than by insertion order, for use in
// tests and debugging sessions.
func (t *Table[K, V]) Dump() string {
	var cells []cellDump
	for pos := 0; pos < t.backend.Cap(); pos++ {
		m := t.backend.Meta(pos)
		if m.IsEmpty() {
			continue
		}
		cells = append(cells, cellDump{
			Pos:    pos,
			Anchor: anchorOf(pos, m),
			Meta:   m.String(),
			Key:    t.backend.Key(pos),
			Value:  t.backend.Value(pos),
		})
	}
	return litter.Sdump(cells)
}

// Dump renders every entry of the map for debugging.
func (m *Map[K, V]) Dump() string { return m.t.Dump() }

// Dump renders every element of the set for debugging.
func (s *Set[K]) Dump() string { return s.t.Dump() }
