// Package segstrpool decodes one "$ segstrings" value: a pool of
// length-prefixed strings referenced by segment and segment-class name
// indices. Grounded on original_source/src/id0/segment.rs's
// SegmentStringsIter (the inner per-value reader; the outer
// SegmentStringIter that chains values across netnode records belongs to
// the pkg/id0 facade, which already owns netnode iteration).
package segstrpool

import (
	"fmt"

	"github.com/coredump-go/idb0/internal/bufio0"
	"github.com/coredump-go/idb0/internal/varint"
)

// String is one decoded pool entry: Index is the SegmentNameIdx a Segment's
// Name or ClassID field refers to, Text is its raw bytes (not necessarily
// valid UTF-8 — IDA does not enforce an encoding here).
type String struct {
	Index uint32
	Text  []byte
}

// Decode reads every string packed into one "$ segstrings" value. The
// value begins with a (dd start, dd end) index range, followed by end-start
// length-prefixed strings; the whole value must be consumed exactly.
func Decode(value []byte) ([]String, error) {
	c := bufio0.NewCursor(value)
	start, err := varint.DecodeDD(c)
	if err != nil {
		return nil, fmt.Errorf("segstrpool: start index: %w", err)
	}
	end, err := varint.DecodeDD(c)
	if err != nil {
		return nil, fmt.Errorf("segstrpool: end index: %w", err)
	}
	if start == 0 {
		return nil, fmt.Errorf("segstrpool: start index must be > 0")
	}
	if start > end {
		return nil, fmt.Errorf("segstrpool: start index %d exceeds end index %d", start, end)
	}

	out := make([]String, 0, end-start)
	for idx := start; idx != end; idx++ {
		length, err := varint.DecodeDD(c)
		if err != nil {
			return nil, fmt.Errorf("segstrpool: length of string %d: %w", idx, err)
		}
		text, err := c.ReadN(int(length))
		if err != nil {
			return nil, fmt.Errorf("segstrpool: body of string %d: %w", idx, err)
		}
		out = append(out, String{Index: idx, Text: text})
	}
	if !c.Empty() {
		return nil, fmt.Errorf("segstrpool: %d unparsed trailing bytes", c.Len())
	}
	return out, nil
}
