package fileregion

import (
	"testing"

	"github.com/coredump-go/idb0/internal/varint"
	"github.com/coredump-go/idb0/internal/wordwidth"
)

func le32(v uint32) []byte { return []byte{byte(v), byte(v >> 8), byte(v >> 16), byte(v >> 24)} }

func TestDecodeFixedLayoutVersion699(t *testing.T) {
	var buf []byte
	buf = append(buf, le32(0x1000)...)
	buf = append(buf, le32(0x2000)...)
	buf = append(buf, le32(0x55)...)
	r, err := Decode(buf, 699, wordwidth.Bits32)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if r.Start != 0x1000 || r.End != 0x2000 || r.Eva != 0x55 {
		t.Fatalf("got %+v", r)
	}
}

func TestDecodePackedLayoutVersion700(t *testing.T) {
	var buf []byte
	buf = varint.EncodeUsize(buf, 0x1000, wordwidth.Bits32)
	buf = varint.EncodeUsize(buf, 0x500, wordwidth.Bits32) // size, not absolute end
	buf = varint.EncodeUsize(buf, 0x20, wordwidth.Bits32)
	r, err := Decode(buf, 700, wordwidth.Bits32)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if r.Start != 0x1000 || r.End != 0x1500 || r.Eva != 0x20 {
		t.Fatalf("got %+v", r)
	}
}

func TestDecodePackedLayoutToleratesTrailingZero(t *testing.T) {
	var buf []byte
	buf = varint.EncodeUsize(buf, 1, wordwidth.Bits32)
	buf = varint.EncodeUsize(buf, 1, wordwidth.Bits32)
	buf = varint.EncodeUsize(buf, 0, wordwidth.Bits32)
	buf = varint.EncodeUsize(buf, 0, wordwidth.Bits32) // trailing zero value
	r, err := Decode(buf, 700, wordwidth.Bits32)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if r.Start != 1 || r.End != 2 {
		t.Fatalf("got %+v", r)
	}
}

func TestDecodePackedLayoutRejectsNonzeroTrailing(t *testing.T) {
	var buf []byte
	buf = varint.EncodeUsize(buf, 1, wordwidth.Bits32)
	buf = varint.EncodeUsize(buf, 1, wordwidth.Bits32)
	buf = varint.EncodeUsize(buf, 0, wordwidth.Bits32)
	buf = varint.EncodeUsize(buf, 7, wordwidth.Bits32)
	if _, err := Decode(buf, 700, wordwidth.Bits32); err == nil {
		t.Fatalf("expected rejection of nonzero trailing value")
	}
}

func TestDecodePackedLayoutRejectsOverflow(t *testing.T) {
	var buf []byte
	buf = varint.EncodeUsize(buf, 0xFFFFFFFF, wordwidth.Bits32)
	buf = varint.EncodeUsize(buf, 1, wordwidth.Bits32)
	buf = varint.EncodeUsize(buf, 0, wordwidth.Bits32)
	if _, err := Decode(buf, 700, wordwidth.Bits32); err == nil {
		t.Fatalf("expected overflow rejection")
	}
}

func TestDecodeRejectsTrailingBytesInFixedLayout(t *testing.T) {
	var buf []byte
	buf = append(buf, le32(1)...)
	buf = append(buf, le32(2)...)
	buf = append(buf, le32(3)...)
	buf = append(buf, 0xFF)
	if _, err := Decode(buf, 699, wordwidth.Bits32); err == nil {
		t.Fatalf("expected rejection of trailing byte")
	}
}

func le64(v uint64) []byte {
	out := make([]byte, 8)
	for i := 0; i < 8; i++ {
		out[i] = byte(v >> (8 * uint(i)))
	}
	return out
}

func TestDecodeFixedLayout64Bit(t *testing.T) {
	var buf []byte
	buf = append(buf, le64(0x1_0000_0000)...)
	buf = append(buf, le64(0x1_0000_1000)...)
	buf = append(buf, le32(9)...)
	r, err := Decode(buf, 650, wordwidth.Bits64)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if r.Start != 0x1_0000_0000 || r.End != 0x1_0000_1000 || r.Eva != 9 {
		t.Fatalf("got %+v", r)
	}
}
