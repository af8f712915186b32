// Package intern tracks first-occurrence byte offsets of strings written
// into the metadata section, so the builder can emit a back-reference
// instead of a second inline copy.
//
// It is keyed by xxHash64 of the string rather than the string itself,
// adapting the hash-then-verify scheme the underlying library uses to spot
// metric-name collisions (internal/hash and the name→offset index built
// during encoding): a hash hit is only treated as a duplicate once the
// stored string compares equal, so a 64-bit hash collision degrades to a
// missed dedup opportunity, never a correctness bug.
package intern

import "github.com/geozone/zdgeo/internal/hash"

type entry struct {
	value  string
	offset int
}

// Tracker records the first-occurrence offset of each distinct string seen
// so far in a single metadata section.
type Tracker struct {
	byHash map[uint64][]entry
}

// New returns an empty Tracker.
func New() *Tracker {
	return &Tracker{byHash: make(map[uint64][]entry)}
}

// Lookup returns the offset at which s was first written, if any.
func (t *Tracker) Lookup(s string) (offset int, ok bool) {
	for _, e := range t.byHash[hash.Fingerprint(s)] {
		if e.value == s {
			return e.offset, true
		}
	}

	return 0, false
}

// Record notes that s was written inline at offset. Subsequent Lookup calls
// for the same string return this offset.
func (t *Tracker) Record(s string, offset int) {
	h := hash.Fingerprint(s)
	t.byHash[h] = append(t.byHash[h], entry{value: s, offset: offset})
}

// Reset clears all tracked strings, preserving the map's capacity.
func (t *Tracker) Reset() {
	for k := range t.byHash {
		delete(t.byHash, k)
	}
}
