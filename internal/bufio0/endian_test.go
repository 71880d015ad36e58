package bufio0

import "testing"

func TestEndianHelpers(t *testing.T) {
	data := []byte{0x01, 0x23, 0x45, 0x67, 0x89, 0xab, 0xcd, 0xef}

	if got := U16LE(data); got != 0x2301 {
		t.Fatalf("U16LE = 0x%x, want 0x2301", got)
	}
	if got := U32LE(data); got != 0x67452301 {
		t.Fatalf("U32LE = 0x%x, want 0x67452301", got)
	}
	if got := U64LE(data); got != 0xefcdab8967452301 {
		t.Fatalf("U64LE = 0x%x, want 0xefcdab8967452301", got)
	}
	if got := U16BE(data); got != 0x0123 {
		t.Fatalf("U16BE = 0x%x, want 0x0123", got)
	}
	if got := U32BE(data); got != 0x01234567 {
		t.Fatalf("U32BE = 0x%x, want 0x01234567", got)
	}
	if got := U64BE(data); got != 0x0123456789abcdef {
		t.Fatalf("U64BE = 0x%x, want 0x0123456789abcdef", got)
	}

	short := []byte{0xAA}
	if U16LE(short) != 0 || U16BE(short) != 0 {
		t.Fatalf("short 16-bit reads should return 0")
	}
	if U32LE(short) != 0 || U32BE(short) != 0 || U64LE(short) != 0 || U64BE(short) != 0 {
		t.Fatalf("short wide reads should return 0")
	}
}

func TestCursorSequentialReads(t *testing.T) {
	data := []byte{0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07, 0x08, 0x09}
	c := NewCursor(data)

	b, err := c.ReadU8()
	if err != nil || b != 0x01 {
		t.Fatalf("ReadU8 = %v, %v", b, err)
	}
	v16, err := c.ReadU16BE()
	if err != nil || v16 != 0x0203 {
		t.Fatalf("ReadU16BE = %#x, %v", v16, err)
	}
	v32, err := c.ReadU32BE()
	if err != nil || v32 != 0x04050607 {
		t.Fatalf("ReadU32BE = %#x, %v", v32, err)
	}
	if c.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", c.Len())
	}
	if _, err := c.ReadU32BE(); err == nil {
		t.Fatalf("expected ErrUnexpectedEOF reading past end")
	}
	rest, err := c.ReadN(2)
	if err != nil || rest[0] != 0x08 || rest[1] != 0x09 {
		t.Fatalf("ReadN tail = %v, %v", rest, err)
	}
	if !c.Empty() {
		t.Fatalf("cursor should be empty after consuming all bytes")
	}
}

func TestCursorReadU16LE(t *testing.T) {
	c := NewCursor([]byte{0xBC, 0x02})
	v, err := c.ReadU16LE()
	if err != nil || v != 0x02BC {
		t.Fatalf("ReadU16LE = %#x, %v, want 0x2bc, nil", v, err)
	}
	if !c.Empty() {
		t.Fatalf("expected cursor fully consumed")
	}
}
