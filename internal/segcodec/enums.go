package segcodec

import "fmt"

// Flag holds the segment's IDP-dependent bit flags (7 bits used, values
// documented at https://hex-rays.com/products/ida/support/sdkdoc/group___s_f_l__.html).
type Flag uint8

const (
	sflComorg   = 0x01
	sflObok     = 0x02
	sflHidden   = 0x04
	sflDebug    = 0x08
	sflLoader   = 0x10
	sflHideType = 0x20
	sflHeader   = 0x40
)

func decodeFlag(raw uint32) (Flag, bool) {
	if raw > 0x7F {
		return 0, false
	}
	return Flag(raw), true
}

// IsComorg reports whether the IBM-PC ORG directive should stay uncommented.
func (f Flag) IsComorg() bool { return f&sflComorg != 0 }

// IsOrgbasePresent reports whether Segment.Orgbase holds a value.
func (f Flag) IsOrgbasePresent() bool { return f&sflObok != 0 }

// IsHidden reports whether the segment is hidden in the listing.
func (f Flag) IsHidden() bool { return f&sflHidden != 0 }

// IsDebug reports whether the segment was created for the debugger and is
// temporary (it has no permanent flags).
func (f Flag) IsDebug() bool { return f&sflDebug != 0 }

// IsCreatedByLoader reports whether the loader, rather than the user,
// created the segment.
func (f Flag) IsCreatedByLoader() bool { return f&sflLoader != 0 }

// IsHideType reports whether the segment type is suppressed in the listing.
func (f Flag) IsHideType() bool { return f&sflHideType != 0 }

// IsHeader reports whether the segment is a header segment (no offsets are
// created into it in the disassembly).
func (f Flag) IsHeader() bool { return f&sflHeader != 0 }

// Alignment is the segment alignment code
// (https://hex-rays.com/products/ida/support/sdkdoc/group__sa__.html).
type Alignment uint8

const (
	AlignAbs          Alignment = 0
	AlignRelByte      Alignment = 1
	AlignRelWord      Alignment = 2
	AlignRelPara      Alignment = 3
	AlignRelPage      Alignment = 4
	AlignRelDble      Alignment = 5
	AlignRel4K        Alignment = 6
	AlignGroup        Alignment = 7
	AlignRel32Bytes   Alignment = 8
	AlignRel64Bytes   Alignment = 9
	AlignRelQword     Alignment = 10
	AlignRel128Bytes  Alignment = 11
	AlignRel512Bytes  Alignment = 12
	AlignRel1024Bytes Alignment = 13
	AlignRel2048Bytes Alignment = 14
)

// Valid reports whether a is one of the known alignment codes.
func (a Alignment) Valid() bool { return a <= AlignRel2048Bytes }

// Combination is the segment combination code
// (https://hex-rays.com/products/ida/support/sdkdoc/group__sc__.html).
type Combination uint8

const (
	CombPriv   Combination = 0
	CombGroup  Combination = 1
	CombPub    Combination = 2
	CombPub2   Combination = 3
	CombStack  Combination = 4
	CombCommon Combination = 5
	CombPub3   Combination = 6
)

// Valid reports whether c is one of the known combination codes.
func (c Combination) Valid() bool { return c <= CombPub3 }

// Permission holds the segment's read/write/execute bits. The zero value
// means "no information", mirroring the original's Option<NonZeroU8>.
type Permission uint8

const (
	PermExecute = 0x1
	PermWrite   = 0x2
	PermRead    = 0x4
)

func decodePermission(raw uint32) (Permission, bool) {
	if raw > 7 {
		return 0, false
	}
	return Permission(raw), true
}

// Present reports whether any permission information was recorded.
func (p Permission) Present() bool { return p != 0 }

// CanExecute reports whether the segment is executable.
func (p Permission) CanExecute() bool { return p&PermExecute != 0 }

// CanWrite reports whether the segment is writable.
func (p Permission) CanWrite() bool { return p&PermWrite != 0 }

// CanRead reports whether the segment is readable.
func (p Permission) CanRead() bool { return p&PermRead != 0 }

func (p Permission) String() string {
	if !p.Present() {
		return "Permission()"
	}
	out := "Permission("
	if p.CanRead() {
		out += "R"
	}
	if p.CanWrite() {
		out += "W"
	}
	if p.CanExecute() {
		out += "X"
	}
	return out + ")"
}

// Bitness is the number of address bits the segment uses.
type Bitness uint8

const (
	Bitness16 Bitness = 0
	Bitness32 Bitness = 1
	Bitness64 Bitness = 2
)

// Valid reports whether b is one of the three known bitness codes.
func (b Bitness) Valid() bool { return b <= Bitness64 }

// Type is the segment type
// (https://hex-rays.com/products/ida/support/sdkdoc/group___s_e_g__.html).
type Type uint8

const (
	TypeNorm   Type = 0 // unknown type, no assumptions
	TypeXtrn   Type = 1 // 'extern' definitions, no instructions allowed
	TypeCode   Type = 2
	TypeData   Type = 3
	TypeImp    Type = 4 // java: implementation segment
	TypeGrp    Type = 6 // group of segments
	TypeNull   Type = 7 // zero-length segment
	TypeUndf   Type = 8 // undefined segment type, not used
	TypeBss    Type = 9 // uninitialized segment
	TypeAbssym Type = 10
	TypeComm   Type = 11 // communal definitions
	TypeImem   Type = 12 // internal processor memory & sfr (8051)
)

// Valid reports whether t is one of the known segment types. 5 is
// deliberately absent: IDA never assigned it a meaning.
func (t Type) Valid() bool {
	switch t {
	case TypeNorm, TypeXtrn, TypeCode, TypeData, TypeImp,
		TypeGrp, TypeNull, TypeUndf, TypeBss, TypeAbssym, TypeComm, TypeImem:
		return true
	default:
		return false
	}
}

func (t Type) String() string {
	switch t {
	case TypeNorm:
		return "Norm"
	case TypeXtrn:
		return "Xtrn"
	case TypeCode:
		return "Code"
	case TypeData:
		return "Data"
	case TypeImp:
		return "Imp"
	case TypeGrp:
		return "Grp"
	case TypeNull:
		return "Null"
	case TypeUndf:
		return "Undf"
	case TypeBss:
		return "Bss"
	case TypeAbssym:
		return "Abssym"
	case TypeComm:
		return "Comm"
	case TypeImem:
		return "Imem"
	default:
		return fmt.Sprintf("Type(%d)", uint8(t))
	}
}
