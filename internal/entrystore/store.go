// Package entrystore holds the ID0 section's entry vector and the two
// binary-search primitives every other package builds on: a contiguous
// slice of entries sharing a key prefix, and the first entry at or past a
// given key. The entry store never interprets key bytes itself — it leaves
// that to internal/key — and never copies an entry's key or value.
//
// Grounded on the teacher's binary-search-based HBIN/cell lookup
// (internal/reader's hbinIndex and cell_resolve.go), generalized from a
// single fixed-size index into a range query over a fully sorted slice,
// because ID0 entries are already delivered pre-sorted by the caller
// (§6 Inputs) rather than scattered across HBIN pages that must be indexed
// first.
package entrystore

import (
	"bytes"
	"fmt"
	"sort"
)

// Entry is one immutable (key, value) record. Entries are never mutated or
// copied by this package; callers receive slices into the same backing
// array the Store was built from.
type Entry struct {
	Key   []byte
	Value []byte
}

// Store holds the full ID0 entry vector in key order. Construction fails if
// the caller's list is not already sorted — this ordering is a load-time
// invariant every other package relies on (§3, §8 invariant 1).
type Store struct {
	entries []Entry
}

// New validates that entries is sorted ascending by key and wraps it. The
// slice is kept by reference, not copied.
func New(entries []Entry) (*Store, error) {
	for i := 1; i < len(entries); i++ {
		if bytes.Compare(entries[i-1].Key, entries[i].Key) >= 0 {
			return nil, fmt.Errorf("entrystore: entries not strictly ascending at index %d", i)
		}
	}
	return &Store{entries: entries}, nil
}

// All returns every entry, in key order.
func (s *Store) All() []Entry { return s.entries }

// Len returns the number of entries.
func (s *Store) Len() int { return len(s.entries) }

// FirstGE returns the index of the first entry whose key is >= key, or
// s.Len() if none qualifies.
func (s *Store) FirstGE(key []byte) int {
	return sort.Search(len(s.entries), func(i int) bool {
		return bytes.Compare(s.entries[i].Key, key) >= 0
	})
}

// Bracket returns the contiguous slice of entries with lo <= key < hi,
// where lo and hi are arbitrary (not necessarily present) keys. Used to
// isolate one file region's worth of address-info entries (§4.7).
func (s *Store) Bracket(lo, hi []byte) []Entry {
	start := s.FirstGE(lo)
	end := s.FirstGE(hi)
	if end < start {
		end = start
	}
	return s.entries[start:end]
}

// RangeByPrefix returns the contiguous slice of entries whose keys start
// with prefix, in key order (§4.2).
func (s *Store) RangeByPrefix(prefix []byte) []Entry {
	start := s.FirstGE(prefix)
	upper, unbounded := prefixUpperBound(prefix)
	var end int
	if unbounded {
		end = len(s.entries)
	} else {
		end = s.FirstGE(upper)
	}
	return s.entries[start:end]
}

// prefixUpperBound returns the smallest key that is lexicographically
// greater than every key sharing prefix, by incrementing the last
// non-0xFF byte and truncating the rest. unbounded is true when prefix has
// no non-0xFF byte (no finite upper bound exists): the empty prefix and an
// all-0xFF prefix both take this path.
func prefixUpperBound(prefix []byte) (bound []byte, unbounded bool) {
	bound = make([]byte, len(prefix))
	copy(bound, prefix)
	for i := len(bound) - 1; i >= 0; i-- {
		if bound[i] != 0xFF {
			bound[i]++
			return bound[:i+1], false
		}
	}
	return nil, true
}
