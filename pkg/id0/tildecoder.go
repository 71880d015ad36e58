package id0

// TilType is the decoded payload of a 0x3000 address-info record: the
// concatenated bytes of its source record and any 0x3001..0x3999
// continuations, plus the optional field-name list split out of the
// 0x3001 continuation when present (§4.7, §6 Outputs).
//
// Interpreting Raw as an actual IDA type descriptor belongs to the TIL
// collaborator named in §6 ("Outputs (to type decoder)") — out of scope
// here, same as the rest of the TIL format (spec §1 Non-goals). TypeDecoder
// is the seam a caller plugs a real decoder into; PassthroughTypeDecoder
// satisfies it by keeping the bytes opaque.
type TilType struct {
	Raw    []byte
	Fields [][]byte
}

// TypeDecoder turns an assembled TilType buffer and its field-name list
// into a decoded type. Implementations may fail if Raw does not describe a
// well-formed type.
type TypeDecoder interface {
	DecodeTilType(raw []byte, fields [][]byte) (TilType, error)
}

// PassthroughTypeDecoder is the default TypeDecoder: it performs no
// interpretation, returning Raw and Fields unchanged. Used when the caller
// has no TIL collaborator wired in.
type PassthroughTypeDecoder struct{}

// DecodeTilType implements TypeDecoder by copying raw into the result
// untouched.
func (PassthroughTypeDecoder) DecodeTilType(raw []byte, fields [][]byte) (TilType, error) {
	out := make([]byte, len(raw))
	copy(out, raw)
	return TilType{Raw: out, Fields: fields}, nil
}
