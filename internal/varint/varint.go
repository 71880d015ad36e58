// Package varint decodes the ID0 section's three packed integer encodings:
// dd (up to 32 bits), dq (up to 64 bits, as two dd halves), and packed
// usize (dd or dq, chosen by the section's word width). None of the three
// is a standard LEB128/varint; all are bit-exact reproductions of IDA's own
// "unpack_dd"/"unpack_dq" routines, grounded on
// original_source/src/id0/{segment,file_region}.rs (every call site there
// goes through these same three shapes) and restructured into the teacher's
// checked-cursor idiom (internal/bufio0.Cursor) instead of a raw `&mut &[u8]`
// reslice.
package varint

import (
	"github.com/coredump-go/idb0/internal/bufio0"
	"github.com/coredump-go/idb0/internal/wordwidth"
)

// DecodeDD reads one "dd" value (up to 32 bits) from c.
//
// Encoding, by the first byte's high bits:
//
//	0xxxxxxx                      -> 7-bit value, 1 byte total
//	10xxxxxx yyyyyyyy              -> 14-bit value (x<<8)|y, 2 bytes total
//	11xxxxxx + 4 big-endian bytes  -> 32-bit value, 5 bytes total (the
//	                                  leading byte's low 6 bits are ignored)
func DecodeDD(c *bufio0.Cursor) (uint32, error) {
	first, err := c.ReadU8()
	if err != nil {
		return 0, err
	}
	switch {
	case first < 0x80:
		return uint32(first), nil
	case first < 0xC0:
		second, err := c.ReadU8()
		if err != nil {
			return 0, err
		}
		return uint32(first&0x3F)<<8 | uint32(second), nil
	default:
		v, err := c.ReadU32BE()
		if err != nil {
			return 0, err
		}
		return v, nil
	}
}

// DecodeDQ reads one "dq" value (up to 64 bits) from c: two back-to-back dd
// values, the first holding the low 32 bits and the second the high 32
// bits.
func DecodeDQ(c *bufio0.Cursor) (uint64, error) {
	lo, err := DecodeDD(c)
	if err != nil {
		return 0, err
	}
	hi, err := DecodeDD(c)
	if err != nil {
		return 0, err
	}
	return uint64(hi)<<32 | uint64(lo), nil
}

// DecodeUsize reads one packed address-sized value: dd when kind is
// Bits32, dq when kind is Bits64.
func DecodeUsize(c *bufio0.Cursor, kind wordwidth.Kind) (uint64, error) {
	if kind == wordwidth.Bits64 {
		return DecodeDQ(c)
	}
	v, err := DecodeDD(c)
	return uint64(v), err
}

// EncodeDD appends the dd-encoded form of v to dst, using the narrowest of
// the three shapes that can hold it. Used by round-trip tests (§8 invariant
// 6: decode(encode(segment)) == segment) and by nothing else — this module
// is read-only in its public surface.
func EncodeDD(dst []byte, v uint32) []byte {
	switch {
	case v < 0x80:
		return append(dst, byte(v))
	case v < 0x4000:
		return append(dst, byte(0x80|(v>>8)), byte(v))
	default:
		return append(dst, 0xC0, byte(v>>24), byte(v>>16), byte(v>>8), byte(v))
	}
}

// EncodeDQ appends the dq-encoded form of v to dst: the low 32 bits encoded
// as dd, followed by the high 32 bits encoded as dd.
func EncodeDQ(dst []byte, v uint64) []byte {
	dst = EncodeDD(dst, uint32(v))
	dst = EncodeDD(dst, uint32(v>>32))
	return dst
}

// EncodeUsize appends the packed-usize encoding of v for the given kind.
func EncodeUsize(dst []byte, v uint64, kind wordwidth.Kind) []byte {
	if kind == wordwidth.Bits64 {
		return EncodeDQ(dst, v)
	}
	return EncodeDD(dst, uint32(v))
}
