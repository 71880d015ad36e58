// Package segcodec decodes the "$ segs" netnode's per-segment records and
// validates the six small enums packed into each one (flag bits, alignment,
// combination, permission, bitness, type). Grounded on
// original_source/src/id0/segment.rs's Segment::inner_read, field for field,
// restructured onto internal/bufio0.Cursor and internal/varint in the
// teacher's checked-sequential-decode idiom (internal/format/nk.go's
// DecodeNK): each field is read in order and any decode failure is wrapped
// with the field name that failed, rather than validated after the fact.
package segcodec

import (
	"fmt"

	"github.com/coredump-go/idb0/internal/bufio0"
	"github.com/coredump-go/idb0/internal/varint"
	"github.com/coredump-go/idb0/internal/wordwidth"
)

// Segment is one decoded record from the "$ segs" netnode.
type Segment struct {
	StartEA  uint64
	EndEA    uint64
	Name     uint64 // SegmentNameIdx: index into the segment string pool
	ClassID  uint64 // SegmentNameIdx: meaning undocumented upstream, kept opaque
	Orgbase  uint64
	Flags    Flag
	Align    Alignment
	Comb     Combination
	Perm     Permission // zero value means "no information"
	Bitness  Bitness
	Type     Type
	Selector uint64
	Defsr    [16]uint64
	Color    uint32
}

// Decode reads one Segment record from value. An error is returned if value
// holds trailing bytes after a complete record, or any field fails its
// range/enum check.
func Decode(value []byte, kind wordwidth.Kind) (Segment, error) {
	c := bufio0.NewCursor(value)
	seg, err := decodeFrom(c, kind)
	if err != nil {
		return Segment{}, err
	}
	if !c.Empty() {
		return Segment{}, fmt.Errorf("segcodec: %d trailing bytes after segment record", c.Len())
	}
	return seg, nil
}

func decodeFrom(c *bufio0.Cursor, kind wordwidth.Kind) (Segment, error) {
	startEA, err := varint.DecodeUsize(c, kind)
	if err != nil {
		return Segment{}, fmt.Errorf("segcodec: startea: %w", err)
	}
	size, err := varint.DecodeUsize(c, kind)
	if err != nil {
		return Segment{}, fmt.Errorf("segcodec: size: %w", err)
	}
	endEA := startEA + size
	if endEA < startEA {
		return Segment{}, fmt.Errorf("segcodec: startea+size overflows (start=%#x size=%#x)", startEA, size)
	}

	name, err := varint.DecodeUsize(c, kind)
	if err != nil {
		return Segment{}, fmt.Errorf("segcodec: name: %w", err)
	}
	classID, err := varint.DecodeUsize(c, kind)
	if err != nil {
		return Segment{}, fmt.Errorf("segcodec: class_id: %w", err)
	}
	orgbase, err := varint.DecodeUsize(c, kind)
	if err != nil {
		return Segment{}, fmt.Errorf("segcodec: orgbase: %w", err)
	}

	flagsRaw, err := varint.DecodeDD(c)
	if err != nil {
		return Segment{}, fmt.Errorf("segcodec: flags: %w", err)
	}
	flags, ok := decodeFlag(flagsRaw)
	if !ok {
		return Segment{}, fmt.Errorf("segcodec: invalid segment flag value %#x", flagsRaw)
	}

	alignRaw, err := varint.DecodeDD(c)
	if err != nil {
		return Segment{}, fmt.Errorf("segcodec: align: %w", err)
	}
	align := Alignment(alignRaw)
	if !align.Valid() {
		return Segment{}, fmt.Errorf("segcodec: invalid segment alignment value %#x", alignRaw)
	}

	combRaw, err := varint.DecodeDD(c)
	if err != nil {
		return Segment{}, fmt.Errorf("segcodec: comb: %w", err)
	}
	comb := Combination(combRaw)
	if !comb.Valid() {
		return Segment{}, fmt.Errorf("segcodec: invalid segment combination value %#x", combRaw)
	}

	permRaw, err := varint.DecodeDD(c)
	if err != nil {
		return Segment{}, fmt.Errorf("segcodec: perm: %w", err)
	}
	perm, ok := decodePermission(permRaw)
	if !ok {
		return Segment{}, fmt.Errorf("segcodec: invalid segment permission value %#x", permRaw)
	}

	bitnessRaw, err := varint.DecodeDD(c)
	if err != nil {
		return Segment{}, fmt.Errorf("segcodec: bitness: %w", err)
	}
	bitness := Bitness(bitnessRaw)
	if !bitness.Valid() {
		return Segment{}, fmt.Errorf("segcodec: invalid segment bitness value %#x", bitnessRaw)
	}

	typeRaw, err := varint.DecodeDD(c)
	if err != nil {
		return Segment{}, fmt.Errorf("segcodec: seg_type: %w", err)
	}
	segType := Type(typeRaw)
	if !segType.Valid() {
		return Segment{}, fmt.Errorf("segcodec: invalid segment type value %#x", typeRaw)
	}

	selector, err := varint.DecodeUsize(c, kind)
	if err != nil {
		return Segment{}, fmt.Errorf("segcodec: selector: %w", err)
	}

	var defsr [16]uint64
	for i := range defsr {
		defsr[i], err = varint.DecodeUsize(c, kind)
		if err != nil {
			return Segment{}, fmt.Errorf("segcodec: defsr[%d]: %w", i, err)
		}
	}

	color, err := varint.DecodeDD(c)
	if err != nil {
		return Segment{}, fmt.Errorf("segcodec: color: %w", err)
	}

	return Segment{
		StartEA:  startEA,
		EndEA:    endEA,
		Name:     name,
		ClassID:  classID,
		Orgbase:  orgbase,
		Flags:    flags,
		Align:    align,
		Comb:     comb,
		Perm:     perm,
		Bitness:  bitness,
		Type:     segType,
		Selector: selector,
		Defsr:    defsr,
		Color:    color,
	}, nil
}
