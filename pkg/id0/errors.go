package id0

import "fmt"

// ErrKind classifies a failure so callers can branch on intent rather than
// on error text. Adapted from the teacher's pkg/types.ErrKind, narrowed to
// the kinds §6 lists for an ID0 section.
type ErrKind int

const (
	// ErrKindNotFound means a well-known netnode or record is absent. Not
	// fatal for the section as a whole (§7).
	ErrKindNotFound ErrKind = iota
	// ErrKindCorrupt means a structural invariant was violated: unparsed
	// trailing bytes, a missing required subkey, a subindex gap where
	// density was required.
	ErrKindCorrupt
	// ErrKindUnexpectedEOF means the cursor ran out of bytes mid-field.
	ErrKindUnexpectedEOF
	// ErrKindOverflow means an arithmetic computation on an address or size
	// overflowed. No operation in this package returns it: a start+size
	// overflow in a segment or file-region record is reported as
	// ErrKindCorrupt.
	ErrKindOverflow
	// ErrKindUnknownEnum means a dd-decoded field held a value outside its
	// enum's known range. No operation in this package returns it: an
	// out-of-range segment enum is reported as ErrKindCorrupt.
	ErrKindUnknownEnum
	// ErrKindInvalidLabel means a Label's resolved bytes failed UTF-8
	// validation.
	ErrKindInvalidLabel
	// ErrKindOrphanedTilContinuation means a TilType continuation record
	// (subindex 0x3001..0x3999) appeared with no preceding 0x3000 record at
	// the same address.
	ErrKindOrphanedTilContinuation
)

func (k ErrKind) String() string {
	switch k {
	case ErrKindNotFound:
		return "NotFound"
	case ErrKindCorrupt:
		return "Corrupt"
	case ErrKindUnexpectedEOF:
		return "UnexpectedEof"
	case ErrKindOverflow:
		return "Overflow"
	case ErrKindUnknownEnum:
		return "UnknownEnumValue"
	case ErrKindInvalidLabel:
		return "InvalidLabelEncoding"
	case ErrKindOrphanedTilContinuation:
		return "OrphanedTilContinuation"
	default:
		return fmt.Sprintf("ErrKind(%d)", int(k))
	}
}

// Record identifies the entry a failure was decoding, so a dumper can
// pinpoint the offending record (§7: "the error payload must name the
// record"). Subindex is nil when the failing key carried none.
type Record struct {
	Netnode  uint64
	Tag      byte
	Subindex *uint64
}

func (r *Record) String() string {
	if r == nil {
		return ""
	}
	if r.Subindex == nil {
		return fmt.Sprintf("netnode=%#x tag=%q", r.Netnode, r.Tag)
	}
	return fmt.Sprintf("netnode=%#x tag=%q subindex=%#x", r.Netnode, r.Tag, *r.Subindex)
}

// Error is the typed error every exported operation returns on failure.
type Error struct {
	Kind   ErrKind
	Msg    string
	Record *Record // nil when the failure is not tied to one record
	Err    error   // optional underlying cause
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	msg := e.Msg
	if e.Record != nil {
		msg = fmt.Sprintf("%s (%s)", msg, e.Record)
	}
	if e.Err != nil {
		return msg + ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Err }

func newError(kind ErrKind, msg string, cause error) *Error {
	return &Error{Kind: kind, Msg: msg, Err: cause}
}

func newRecordError(kind ErrKind, msg string, rec Record, cause error) *Error {
	return &Error{Kind: kind, Msg: msg, Record: &rec, Err: cause}
}

// errNotFound reports a missing well-known netnode or record.
func errNotFound(msg string) *Error { return newError(ErrKindNotFound, msg, nil) }
