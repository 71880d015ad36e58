// Package fileregion decodes the "$ fileregions" netnode's per-region
// records, whose wire layout changed at IDB version 700: older databases
// store start/end as fixed-width little-endian words and the loaded
// address as a raw 32-bit word, while 700+ stores everything as packed
// usize values with the end address delta-encoded from the start. Grounded
// on original_source/src/id0/file_region.rs's FileRegions::read, field for
// field including its version split and its tolerant trailing-zero byte.
package fileregion

import (
	"fmt"
	"math"

	"github.com/coredump-go/idb0/internal/bufio0"
	"github.com/coredump-go/idb0/internal/varint"
	"github.com/coredump-go/idb0/internal/wordwidth"
)

// Region is one decoded record from the "$ fileregions" netnode: the
// [Start, End) range of loaded addresses and the offset in the original
// input file (Eva) they came from.
type Region struct {
	Start uint64
	End   uint64
	Eva   uint64
}

// Decode reads one Region from value. version is the IDB's format version
// (IDAInfo's Version field); it selects the wire layout, not the netnode's
// own word width.
func Decode(value []byte, version uint16, kind wordwidth.Kind) (Region, error) {
	c := bufio0.NewCursor(value)
	var r Region
	var err error
	if version <= 699 {
		r, err = decodeFixed(c, kind)
	} else {
		r, err = decodePacked(c, kind)
	}
	if err != nil {
		return Region{}, err
	}
	if !c.Empty() {
		return Region{}, fmt.Errorf("fileregion: %d unparsed trailing bytes", c.Len())
	}
	return r, nil
}

func readWord(c *bufio0.Cursor, kind wordwidth.Kind) (uint64, error) {
	if kind == wordwidth.Bits64 {
		return c.ReadU64LE()
	}
	v, err := c.ReadU32LE()
	return uint64(v), err
}

func decodeFixed(c *bufio0.Cursor, kind wordwidth.Kind) (Region, error) {
	start, err := readWord(c, kind)
	if err != nil {
		return Region{}, fmt.Errorf("fileregion: start: %w", err)
	}
	end, err := readWord(c, kind)
	if err != nil {
		return Region{}, fmt.Errorf("fileregion: end: %w", err)
	}
	eva, err := c.ReadU32LE()
	if err != nil {
		return Region{}, fmt.Errorf("fileregion: eva: %w", err)
	}
	return Region{Start: start, End: end, Eva: uint64(eva)}, nil
}

func decodePacked(c *bufio0.Cursor, kind wordwidth.Kind) (Region, error) {
	start, err := varint.DecodeUsize(c, kind)
	if err != nil {
		return Region{}, fmt.Errorf("fileregion: start: %w", err)
	}
	size, err := varint.DecodeUsize(c, kind)
	if err != nil {
		return Region{}, fmt.Errorf("fileregion: size: %w", err)
	}
	end := start + size
	if end < start || (kind != wordwidth.Bits64 && end > math.MaxUint32) {
		return Region{}, fmt.Errorf("fileregion: start+size overflows (start=%#x size=%#x)", start, size)
	}
	eva, err := varint.DecodeUsize(c, kind)
	if err != nil {
		return Region{}, fmt.Errorf("fileregion: eva: %w", err)
	}
	// Some databases carry one extra packed value that is always zero; its
	// purpose is undocumented upstream. Tolerate its presence but reject a
	// nonzero one, and tolerate its absence.
	if !c.Empty() {
		unknown, err := varint.DecodeUsize(c, kind)
		if err == nil && unknown != 0 {
			return Region{}, fmt.Errorf("fileregion: trailing value is %#x, want 0", unknown)
		}
	}
	return Region{Start: start, End: end, Eva: eva}, nil
}
