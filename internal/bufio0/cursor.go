package bufio0

import (
	"errors"
	"fmt"
)

// ErrUnexpectedEOF is returned by Cursor reads that would run past the end
// of the underlying slice. It never reads out of bounds first.
var ErrUnexpectedEOF = errors.New("bufio0: unexpected end of buffer")

// Cursor is a forward-only reader over a byte slice. It never panics and
// never advances past len(buf); every read either succeeds in full or
// leaves the cursor untouched and returns ErrUnexpectedEOF. Record decoders
// throughout this module (dd/dq, segment fields, file regions) are built as
// a straight sequence of Cursor reads instead of fixed-offset field access,
// because ID0 values are variable-length.
type Cursor struct {
	buf []byte
	pos int
}

// NewCursor wraps b for sequential reading starting at offset 0.
func NewCursor(b []byte) *Cursor {
	return &Cursor{buf: b}
}

// Pos returns the current read offset.
func (c *Cursor) Pos() int { return c.pos }

// Len returns the number of unread bytes remaining.
func (c *Cursor) Len() int { return len(c.buf) - c.pos }

// Empty reports whether every byte has been consumed.
func (c *Cursor) Empty() bool { return c.Len() == 0 }

// Rest returns the unread tail of the buffer without consuming it.
func (c *Cursor) Rest() []byte { return c.buf[c.pos:] }

func (c *Cursor) take(n int) ([]byte, error) {
	s, ok := Slice(c.buf, c.pos, n)
	if !ok {
		return nil, fmt.Errorf("read %d bytes at %d: %w", n, c.pos, ErrUnexpectedEOF)
	}
	c.pos += n
	return s, nil
}

// ReadU8 reads a single byte.
func (c *Cursor) ReadU8() (byte, error) {
	b, err := c.take(1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

// ReadU16BE reads a big-endian uint16.
func (c *Cursor) ReadU16BE() (uint16, error) {
	b, err := c.take(2)
	if err != nil {
		return 0, err
	}
	return U16BE(b), nil
}

// ReadU32BE reads a big-endian uint32.
func (c *Cursor) ReadU32BE() (uint32, error) {
	b, err := c.take(4)
	if err != nil {
		return 0, err
	}
	return U32BE(b), nil
}

// ReadU64BE reads a big-endian uint64.
func (c *Cursor) ReadU64BE() (uint64, error) {
	b, err := c.take(8)
	if err != nil {
		return 0, err
	}
	return U64BE(b), nil
}

// ReadU16LE reads a little-endian uint16.
func (c *Cursor) ReadU16LE() (uint16, error) {
	b, err := c.take(2)
	if err != nil {
		return 0, err
	}
	return U16LE(b), nil
}

// ReadU32LE reads a little-endian uint32.
func (c *Cursor) ReadU32LE() (uint32, error) {
	b, err := c.take(4)
	if err != nil {
		return 0, err
	}
	return U32LE(b), nil
}

// ReadU64LE reads a little-endian uint64.
func (c *Cursor) ReadU64LE() (uint64, error) {
	b, err := c.take(8)
	if err != nil {
		return 0, err
	}
	return U64LE(b), nil
}

// ReadN reads exactly n raw bytes.
func (c *Cursor) ReadN(n int) ([]byte, error) {
	return c.take(n)
}
