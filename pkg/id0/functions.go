package id0

import (
	"github.com/coredump-go/idb0/internal/bufio0"
	"github.com/coredump-go/idb0/internal/key"
	"github.com/coredump-go/idb0/internal/varint"
)

// Function tag bytes under the "$ funcs" netnode. original_source's
// dump_functions.rs shows the FunctionsAndComments variants it consumes
// (Name, Function, Comment, RepeatableComment, Unknown) but the id0.rs
// module assigning each variant's tag byte was never retrieved (see
// DESIGN.md). These four single-letter tags follow the one-tag-per-record-
// family convention already confirmed for "$ segs"/"$ segstrings" (tag
// 'S'); subindex is the function's start address in every case, the same
// address-as-subindex convention address-info uses for its own netnode.
const (
	funcTagBounds            = 'S'
	funcTagComment           = 'C'
	funcTagRepeatableComment = 'R'
	funcTagName              = 'N'
)

// FunctionKind discriminates a FunctionsAndComments record (§4.9,
// original_source/src/tools/dump_functions.rs).
type FunctionKind int

const (
	FunctionKindName FunctionKind = iota
	FunctionKindFunction
	FunctionKindComment
	FunctionKindRepeatableComment
	FunctionKindUnknown
)

// FunctionsAndComments is one record from the "$ funcs" netnode.
type FunctionsAndComments struct {
	Kind FunctionKind

	Address uint64 // Function, Comment, RepeatableComment, Unknown

	Start uint64 // Function
	End   uint64 // Function

	Comment []byte // Comment, RepeatableComment

	UnknownTag   byte // Unknown
	UnknownValue []byte
}

// FunctionsAndComments decodes every record of the "$ funcs" netnode.
func (s *Section) FunctionsAndComments() ([]FunctionsAndComments, error) {
	netnode, err := resolveNetnodeID(s.store, s.kind, netnodeFuncs)
	if err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	prefix := key.NetnodePrefix(s.kind, netnode)
	entries := s.store.RangeByPrefix(prefix)

	out := make([]FunctionsAndComments, 0, len(entries))
	for _, e := range entries {
		suffix := e.Key[len(prefix):]
		tag, address, hasAddr, ok := key.ParseTagSubindex(s.kind, suffix)
		if !ok {
			return nil, newRecordError(ErrKindCorrupt, "funcs: malformed key", Record{Netnode: netnode}, nil)
		}
		switch {
		case tag == funcTagName:
			out = append(out, FunctionsAndComments{Kind: FunctionKindName})
		case tag == funcTagBounds && hasAddr:
			c := bufio0.NewCursor(e.Value)
			size, err := varint.DecodeUsize(c, s.kind)
			if err != nil {
				return nil, newRecordError(ErrKindCorrupt, "funcs: function size",
					Record{Netnode: netnode, Tag: tag, Subindex: &address}, err)
			}
			out = append(out, FunctionsAndComments{Kind: FunctionKindFunction, Address: address, Start: address, End: address + size})
		case tag == funcTagComment && hasAddr:
			out = append(out, FunctionsAndComments{Kind: FunctionKindComment, Address: address, Comment: parseMaybeCStr(e.Value)})
		case tag == funcTagRepeatableComment && hasAddr:
			out = append(out, FunctionsAndComments{Kind: FunctionKindRepeatableComment, Address: address, Comment: parseMaybeCStr(e.Value)})
		default:
			rec := FunctionsAndComments{Kind: FunctionKindUnknown, UnknownTag: tag, UnknownValue: e.Value}
			if hasAddr {
				rec.Address = address
			}
			out = append(out, rec)
		}
	}
	return out, nil
}

// Entry point record tags under the "$ entry points" netnode, subindex is
// the entry's ordinal. Same judgment-call basis as the funcs tags above.
const (
	entryTagAddress   = 'A'
	entryTagName      = 'N'
	entryTagForwarded = 'F'
	entryTagType      = 'T'
)

// EntryPoint is one program entry point (§4.9).
type EntryPoint struct {
	Ordinal   uint64
	Name      string
	Address   uint64
	Forwarded *string
	EntryType *TilType
}

// EntryPoints decodes the "$ entry points" netnode, joining its per-ordinal
// address/name/forwarded-name/type records into one EntryPoint per ordinal.
// decoder resolves EntryType records; pass PassthroughTypeDecoder{} to keep
// their bytes opaque.
func (s *Section) EntryPoints(decoder TypeDecoder) ([]EntryPoint, error) {
	netnode, err := resolveNetnodeID(s.store, s.kind, netnodeEntryPoints)
	if err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, err
	}

	byOrdinal := map[uint64]*EntryPoint{}
	var order []uint64
	get := func(ordinal uint64) *EntryPoint {
		if ep, ok := byOrdinal[ordinal]; ok {
			return ep
		}
		ep := &EntryPoint{Ordinal: ordinal}
		byOrdinal[ordinal] = ep
		order = append(order, ordinal)
		return ep
	}

	prefix := key.NetnodePrefix(s.kind, netnode)
	entries := s.store.RangeByPrefix(prefix)
	for _, e := range entries {
		suffix := e.Key[len(prefix):]
		tag, ordinal, hasOrdinal, ok := key.ParseTagSubindex(s.kind, suffix)
		if !ok || !hasOrdinal {
			return nil, newRecordError(ErrKindCorrupt, "entry points: malformed key", Record{Netnode: netnode}, nil)
		}
		switch tag {
		case entryTagAddress:
			c := bufio0.NewCursor(e.Value)
			addr, err := varint.DecodeUsize(c, s.kind)
			if err != nil {
				return nil, newRecordError(ErrKindCorrupt, "entry points: address",
					Record{Netnode: netnode, Tag: tag, Subindex: &ordinal}, err)
			}
			get(ordinal).Address = addr
		case entryTagName:
			get(ordinal).Name = string(parseMaybeCStr(e.Value))
		case entryTagForwarded:
			name := string(parseMaybeCStr(e.Value))
			get(ordinal).Forwarded = &name
		case entryTagType:
			til, err := decoder.DecodeTilType(e.Value, nil)
			if err != nil {
				return nil, newRecordError(ErrKindCorrupt, "entry points: type",
					Record{Netnode: netnode, Tag: tag, Subindex: &ordinal}, err)
			}
			get(ordinal).EntryType = &til
		}
	}

	out := make([]EntryPoint, 0, len(order))
	for _, ordinal := range order {
		out = append(out, *byOrdinal[ordinal])
	}
	return out, nil
}
