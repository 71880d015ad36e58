// Package key builds and recognizes the ID0 section's two key forms (§3,
// §4.2 of the design). Every byte sequence that identifies a record is
// produced or parsed here so that tag widths always stay aligned with the
// section's word width — nothing outside this package is allowed to splice
// key bytes together by hand.
//
// Netnode address key:    'N' name '\0'
// Netnode attribute key:  '.' netnode(W bits, BE) tag [subindex(W bits, BE)]
package key

import (
	"github.com/coredump-go/idb0/internal/bufio0"
	"github.com/coredump-go/idb0/internal/wordwidth"
)

const (
	// NetnodeNamePrefix marks a netnode-name-to-id key.
	NetnodeNamePrefix = byte('N')
	// AttrPrefix marks a netnode attribute key (address form).
	AttrPrefix = byte('.')
)

// Width returns the encoded byte width of an address/netnode id for kind.
func Width(kind wordwidth.Kind) int { return kind.Size() }

func putBE(dst []byte, v uint64, width int) []byte {
	for i := width - 1; i >= 0; i-- {
		dst = append(dst, byte(v>>(8*uint(i))))
	}
	return dst
}

// NetnodeNameKey builds the 'N'+name+'\0' key used to resolve a well-known
// netnode name to its numeric id.
func NetnodeNameKey(name []byte) []byte {
	out := make([]byte, 0, 1+len(name)+1)
	out = append(out, NetnodeNamePrefix)
	out = append(out, name...)
	out = append(out, 0)
	return out
}

// NetnodePrefix builds '.'+netnode(W bits BE): the prefix shared by every
// attribute key of a netnode, regardless of tag.
func NetnodePrefix(kind wordwidth.Kind, netnode uint64) []byte {
	out := make([]byte, 0, 1+Width(kind))
	out = append(out, AttrPrefix)
	out = putBE(out, netnode, Width(kind))
	return out
}

// TagPrefix builds '.'+netnode+tag: the prefix shared by every record of
// one (netnode, tag) family, used for AllSubkeys-style range queries.
func TagPrefix(kind wordwidth.Kind, netnode uint64, tag byte) []byte {
	out := NetnodePrefix(kind, netnode)
	return append(out, tag)
}

// AttrKey builds the full '.'+netnode+tag[+subindex] key for one record.
// subindex is omitted from the key when present == false (the "primary
// record" form, e.g. a Label at tag 'N' with no subindex).
func AttrKey(kind wordwidth.Kind, netnode uint64, tag byte, subindex uint64, present bool) []byte {
	out := TagPrefix(kind, netnode, tag)
	if !present {
		return out
	}
	return putBE(out, subindex, Width(kind))
}

// AddressKey builds '.'+address(W bits BE), the bracketing key used to
// binary-search a file region's span of address-info entries. It has no
// tag byte: as a pure prefix it sorts immediately before every attribute
// key of that address.
func AddressKey(kind wordwidth.Kind, address uint64) []byte {
	out := make([]byte, 0, 1+Width(kind))
	out = append(out, AttrPrefix)
	out = putBE(out, address, Width(kind))
	return out
}

// KeyLenNetnode returns the length of '.'+netnode(W bits), the prefix
// stripped off before reading a tag byte.
func KeyLenNetnode(kind wordwidth.Kind) int { return 1 + Width(kind) }

// KeyLenNetnodeTag returns the length of '.'+netnode(W bits)+tag, the
// prefix stripped off before reading a subindex.
func KeyLenNetnodeTag(kind wordwidth.Kind) int { return KeyLenNetnode(kind) + 1 }

// ParseAddress reads the leading '.'+address(W bits BE) from key and
// returns the address plus whatever bytes follow (tag and optional
// subindex). ok is false if key is too short or doesn't start with '.'.
func ParseAddress(kind wordwidth.Kind, k []byte) (address uint64, rest []byte, ok bool) {
	c := bufio0.NewCursor(k)
	prefix, err := c.ReadU8()
	if err != nil || prefix != AttrPrefix {
		return 0, nil, false
	}
	addr, err := readBE(c, Width(kind))
	if err != nil {
		return 0, nil, false
	}
	return addr, c.Rest(), true
}

// ParseTagSubindex reads a tag byte and an optional trailing subindex from
// the bytes that follow an address in an attribute key. hasSub is false
// when rest held exactly one byte (the tag with no subindex, e.g. a Label).
func ParseTagSubindex(kind wordwidth.Kind, rest []byte) (tag byte, subindex uint64, hasSub bool, ok bool) {
	if len(rest) < 1 {
		return 0, 0, false, false
	}
	tag = rest[0]
	body := rest[1:]
	if len(body) == 0 {
		return tag, 0, false, true
	}
	c := bufio0.NewCursor(body)
	sub, err := readBE(c, Width(kind))
	if err != nil || !c.Empty() {
		return 0, 0, false, false
	}
	return tag, sub, true, true
}

// ParseNetnodeName parses an 'N'+name+'\0' key, returning name without its
// terminator.
func ParseNetnodeName(k []byte) (name []byte, ok bool) {
	if len(k) < 2 || k[0] != NetnodeNamePrefix || k[len(k)-1] != 0 {
		return nil, false
	}
	return k[1 : len(k)-1], true
}

func readBE(c *bufio0.Cursor, width int) (uint64, error) {
	switch width {
	case 4:
		v, err := c.ReadU32BE()
		return uint64(v), err
	case 8:
		return c.ReadU64BE()
	default:
		v, err := c.ReadN(width)
		if err != nil {
			return 0, err
		}
		var out uint64
		for _, b := range v {
			out = out<<8 | uint64(b)
		}
		return out, nil
	}
}

// DecodeNetnodeID decodes a netnode-name value: a little-endian W-bit
// integer, as written immediately after an 'N' key lookup.
func DecodeNetnodeID(kind wordwidth.Kind, value []byte) (uint64, bool) {
	switch kind {
	case wordwidth.Bits64:
		if len(value) < 8 {
			return 0, false
		}
		return bufio0.U64LE(value), true
	default:
		if len(value) < 4 {
			return 0, false
		}
		return uint64(bufio0.U32LE(value)), true
	}
}
