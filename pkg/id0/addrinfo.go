package id0

import (
	"bytes"
	"unicode/utf8"

	"github.com/coredump-go/idb0/internal/entrystore"
	"github.com/coredump-go/idb0/internal/key"
)

// tagDrefFrom is the netnode altval tag carrying a "defined struct" cross
// reference. original_source never retrieved the module defining
// flag::nalt's NALT_DREF_FROM constant (see DESIGN.md), so this is a
// documented judgment call rather than a confirmed value, drawn from the
// public IDA SDK's nalt.hpp tag convention for altval cross-references.
const tagDrefFrom = 'x'

// labelRefMarker is the leading byte of an indirect Label value: the
// remaining bytes name the netnode whose 'S' records hold the label text.
// original_source's ID0CStr::parse_cstr_or_subkey body was never retrieved
// (see DESIGN.md); this package treats a value as an indirection only when
// its length is exactly 1+width, since that is the only length a fixed-size
// netnode-id reference can have — any other length is read as a literal
// string even if its first byte happens to equal the marker.
const labelRefMarker = 0xFF

// AddressInfoKind discriminates the record families address-info iteration
// can surface (§4.7).
type AddressInfoKind int

const (
	KindComment AddressInfoKind = iota
	KindRepeatableComment
	KindPreComment
	KindPostComment
	KindTilType
	KindLabel
	KindDefinedStruct
	KindOther
)

// AddressInfo is one decoded address-info record. Only the fields that
// apply to Kind are populated; the rest are zero.
type AddressInfo struct {
	Kind AddressInfoKind

	Comment []byte // Comment, RepeatableComment, PreComment, PostComment

	Til TilType // TilType

	Label string // Label

	StructTypeID uint64 // DefinedStruct: the record's subindex

	OtherTag      byte // Other
	OtherSubindex *uint64
	OtherValue    []byte
}

// AddressRecord pairs a decoded AddressInfo with the address it belongs to.
type AddressRecord struct {
	Address uint64
	Info    AddressInfo
}

// AddressInfo decodes every address-info record across every file region of
// this section, in ascending (region, address, key) order (§4.7, §8
// invariant: per-region address ordering). decoder resolves 0x3000 TilType
// records; pass PassthroughTypeDecoder{} to keep their bytes opaque.
func (s *Section) AddressInfo(version uint16, decoder TypeDecoder) ([]AddressRecord, error) {
	regions, err := s.FileRegions(version)
	if err != nil {
		return nil, err
	}
	var out []AddressRecord
	for _, r := range regions {
		lo := key.AddressKey(s.kind, r.Start)
		hi := key.AddressKey(s.kind, r.End)
		entries := s.store.Bracket(lo, hi)
		recs, err := s.decodeAddressRun(entries, decoder)
		if err != nil {
			return nil, err
		}
		out = append(out, recs...)
	}
	return out, nil
}

// AddressInfoAt decodes every address-info record at exactly one address,
// regardless of which file region contains it.
func (s *Section) AddressInfoAt(address uint64, decoder TypeDecoder) ([]AddressInfo, error) {
	entries := s.store.RangeByPrefix(key.AddressKey(s.kind, address))
	recs, err := s.decodeAddressRun(entries, decoder)
	if err != nil {
		return nil, err
	}
	out := make([]AddressInfo, 0, len(recs))
	for _, r := range recs {
		out = append(out, r.Info)
	}
	return out, nil
}

// decodeAddressRun decodes a flat, key-ordered run of address-info entries
// (one file region's bracketed span, or one address's exact-prefix span),
// advancing past whatever continuation records a TilType consumes.
// Grounded on original_source's AddressInfoIter::next_inner (§4.7).
func (s *Section) decodeAddressRun(entries []entrystore.Entry, decoder TypeDecoder) ([]AddressRecord, error) {
	kind := s.kind
	var out []AddressRecord
	i := 0
	for i < len(entries) {
		e := entries[i]
		addr, rest, ok := key.ParseAddress(kind, e.Key)
		if !ok {
			return nil, newError(ErrKindCorrupt, "address-info: malformed key", nil)
		}
		tag, sub, hasSub, ok := key.ParseTagSubindex(kind, rest)
		if !ok {
			return nil, newRecordError(ErrKindCorrupt, "address-info: malformed tag/subindex",
				Record{Netnode: addr}, nil)
		}

		switch {
		case tag == 'S' && hasSub && sub == 0:
			out = append(out, AddressRecord{addr, AddressInfo{Kind: KindComment, Comment: parseMaybeCStr(e.Value)}})
			i++

		case tag == 'S' && hasSub && sub == 1:
			out = append(out, AddressRecord{addr, AddressInfo{Kind: KindRepeatableComment, Comment: parseMaybeCStr(e.Value)}})
			i++

		case tag == 'S' && hasSub && sub >= 1000 && sub <= 1999:
			out = append(out, AddressRecord{addr, AddressInfo{Kind: KindPreComment, Comment: parseMaybeCStr(e.Value)}})
			i++

		case tag == 'S' && hasSub && sub >= 2000 && sub <= 2999:
			out = append(out, AddressRecord{addr, AddressInfo{Kind: KindPostComment, Comment: parseMaybeCStr(e.Value)}})
			i++

		case tag == 'S' && hasSub && sub == 0x3000:
			info, consumed, err := decodeTilType(kind, addr, e.Value, entries[i+1:], decoder)
			if err != nil {
				return nil, err
			}
			out = append(out, AddressRecord{addr, info})
			i += 1 + consumed

		case tag == 'S' && hasSub && sub >= 0x3001 && sub <= 0x3999:
			bad := sub
			return nil, newRecordError(ErrKindOrphanedTilContinuation, "address-info: til continuation with no preceding 0x3000 record",
				Record{Netnode: addr, Tag: tag, Subindex: &bad}, nil)

		case tag == 'N' && !hasSub:
			label, err := s.decodeLabel(addr, e.Value)
			if err != nil {
				return nil, err
			}
			out = append(out, AddressRecord{addr, AddressInfo{Kind: KindLabel, Label: label}})
			i++

		case tag == tagDrefFrom && hasSub && bytes.Equal(e.Value, []byte{0x03}):
			out = append(out, AddressRecord{addr, AddressInfo{Kind: KindDefinedStruct, StructTypeID: sub}})
			i++

		default:
			info := AddressInfo{Kind: KindOther, OtherTag: tag, OtherValue: e.Value}
			if hasSub {
				subCopy := sub
				info.OtherSubindex = &subCopy
			}
			out = append(out, AddressRecord{addr, info})
			i++
		}
	}
	return out, nil
}

// decodeTilType assembles a 0x3000 record's payload with any immediately
// following, address-matched 0x3001..0x3999 continuations (spec §4.7: the
// look-ahead requires address equality, stricter than original_source's
// literal scan which checks only tag and subindex range — spec is treated
// as authoritative, see DESIGN.md). When the first continuation is exactly
// 0x3001, its value is treated as the null-terminated field-name list and
// excluded from the concatenated type bytes; the remaining continuations
// are appended in subindex order.
func decodeTilType(kind Kind, addr uint64, base []byte, rest []entrystore.Entry, decoder TypeDecoder) (AddressInfo, int, error) {
	last := 0
	for last < len(rest) {
		e := rest[last]
		a2, r2, ok := key.ParseAddress(kind, e.Key)
		if !ok || a2 != addr {
			break
		}
		tag2, sub2, hasSub2, ok := key.ParseTagSubindex(kind, r2)
		if !ok || tag2 != 'S' || !hasSub2 || sub2 < 0x3001 || sub2 > 0x3999 {
			break
		}
		last++
	}
	run := rest[:last]

	var fields [][]byte
	continuation := run
	if len(run) > 0 {
		_, r2, _ := key.ParseAddress(kind, run[0].Key)
		_, sub2, _, _ := key.ParseTagSubindex(kind, r2)
		if sub2 == 0x3001 {
			fields = splitFieldNames(run[0].Value)
			continuation = run[1:]
		}
	}

	buf := append([]byte(nil), base...)
	for _, e := range continuation {
		buf = append(buf, e.Value...)
	}

	til, err := decoder.DecodeTilType(buf, fields)
	if err != nil {
		sub := uint64(0x3000)
		return AddressInfo{}, 0, newRecordError(ErrKindCorrupt, "til type: decoder rejected assembled record",
			Record{Netnode: addr, Tag: 'S', Subindex: &sub}, err)
	}
	return AddressInfo{Kind: KindTilType, Til: til}, last, nil
}

// splitFieldNames splits a null-terminated packed list of field names on
// \0 (§4.7), dropping the trailing empty element the final terminator
// produces.
func splitFieldNames(value []byte) [][]byte {
	if len(value) == 0 {
		return nil
	}
	parts := bytes.Split(value, []byte{0})
	if len(parts) > 0 && len(parts[len(parts)-1]) == 0 {
		parts = parts[:len(parts)-1]
	}
	return parts
}

// decodeLabel resolves a Label record's value (§4.7): either an inline
// C-string, or — when the value is exactly 1+width bytes and starts with
// labelRefMarker — an indirection to another netnode, resolved by
// concatenating that netnode's 'S' records in subindex order and trimming
// the result at its first NUL.
func (s *Section) decodeLabel(addr uint64, value []byte) (string, error) {
	width := key.Width(s.kind)
	var text []byte
	if len(value) == 1+width && value[0] == labelRefMarker {
		refNetnode, ok := key.DecodeNetnodeID(s.kind, value[1:])
		if !ok {
			return "", newRecordError(ErrKindCorrupt, "label: malformed indirection target",
				Record{Netnode: addr, Tag: 'N'}, nil)
		}
		var buf []byte
		for _, e := range allSubkeys(s.store, s.kind, refNetnode, 'S') {
			buf = append(buf, e.Value...)
		}
		text = parseMaybeCStr(buf)
	} else {
		text = parseMaybeCStr(value)
	}
	if !utf8.Valid(text) {
		return "", newRecordError(ErrKindInvalidLabel, "label: not valid utf-8", Record{Netnode: addr, Tag: 'N'}, nil)
	}
	return string(text), nil
}

// parseMaybeCStr trims value at its first NUL byte, or returns it unchanged
// if none is present. Never fails: an all-empty comment (§8 scenario 1) is
// just a zero-length result. original_source's parse_maybe_cstr body was
// never retrieved (see DESIGN.md); this mirrors the one behavior spec.md
// actually documents for comment values.
func parseMaybeCStr(value []byte) []byte {
	if idx := bytes.IndexByte(value, 0); idx >= 0 {
		return value[:idx]
	}
	return value
}
