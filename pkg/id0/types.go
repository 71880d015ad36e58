// Package id0 is the public read-only facade over a parsed ID0 section:
// the key/value B-tree store at the heart of an IDA Pro database. It wraps
// internal/entrystore for the underlying sorted entries and the
// internal/segcodec, internal/segstrpool, internal/fileregion, and
// internal/dirtreecodec decoders for each record family, dispatching on a
// runtime internal/wordwidth.Kind instead of a compile-time type parameter
// (see package wordwidth's doc comment for why).
package id0

import (
	"github.com/coredump-go/idb0/internal/entrystore"
	"github.com/coredump-go/idb0/internal/segcodec"
	"github.com/coredump-go/idb0/internal/wordwidth"
)

// Entry is one (key, value) record of a section, as passed to Open.
type Entry = entrystore.Entry

// Kind selects a section's netnode/address width.
type Kind = wordwidth.Kind

const (
	Bits32 = wordwidth.Bits32
	Bits64 = wordwidth.Bits64
)

// Segment is one decoded record from the "$ segs" netnode (§4.4).
type Segment = segcodec.Segment

// SegmentFlag, SegmentAlignment, SegmentCombination, SegmentPermission,
// SegmentBitness and SegmentType are the six enums packed into a Segment
// record.
type (
	SegmentFlag        = segcodec.Flag
	SegmentAlignment   = segcodec.Alignment
	SegmentCombination = segcodec.Combination
	SegmentPermission  = segcodec.Permission
	SegmentBitness     = segcodec.Bitness
	SegmentType        = segcodec.Type
)
