package mdns

import (
	"encoding/binary"
	"fmt"
)

// Cursor is a positional reader over an immutable byte buffer. It never
// reads past the end of the buffer and never zero-fills; every read that
// would run off the end fails with ErrTruncated.
//
// The zero value is not usable; construct with newCursor.
type Cursor struct {
	buf []byte
	off int
}

// newCursor returns a Cursor over buf positioned at offset 0.
func newCursor(buf []byte) *Cursor {
	return &Cursor{buf: buf}
}

// CloneAt returns an independent cursor over the same underlying buffer
// positioned at offset. It shares no mutable state with the receiver, so
// advancing one does not affect the other. Used by the name decoder to
// follow compression pointers without disturbing the primary cursor.
func (c *Cursor) CloneAt(offset int) (*Cursor, error) {
	if offset < 0 || offset >= len(c.buf) {
		return nil, fmt.Errorf("%w: clone_at offset %d out of range (len %d)", ErrBadPointer, offset, len(c.buf))
	}
	return &Cursor{buf: c.buf, off: offset}, nil
}

// Offset returns the cursor's current position.
func (c *Cursor) Offset() int { return c.off }

// SeekTo repositions the cursor at an absolute offset within the buffer.
// Used after name-bearing RDATA to enforce the "rdata_start + rdlength"
// advancement rule regardless of what the name decoder consumed.
func (c *Cursor) SeekTo(offset int) error {
	if offset < 0 || offset > len(c.buf) {
		return fmt.Errorf("%w: seek offset %d out of range (len %d)", ErrTruncated, offset, len(c.buf))
	}
	c.off = offset
	return nil
}

// Len returns the total length of the underlying buffer.
func (c *Cursor) Len() int { return len(c.buf) }

// Peek returns the byte at the current offset without advancing. ok is
// false if the cursor is at the end of the buffer.
func (c *Cursor) Peek() (b byte, ok bool) {
	if c.off >= len(c.buf) {
		return 0, false
	}
	return c.buf[c.off], true
}

// ReadU8 returns the byte at the current offset and advances by 1.
func (c *Cursor) ReadU8() (byte, error) {
	if c.off+1 > len(c.buf) {
		return 0, fmt.Errorf("%w: unexpected EOF reading u8", ErrTruncated)
	}
	b := c.buf[c.off]
	c.off++
	return b, nil
}

// ReadU16 reads two bytes big-endian and advances by 2.
func (c *Cursor) ReadU16() (uint16, error) {
	if c.off+2 > len(c.buf) {
		return 0, fmt.Errorf("%w: unexpected EOF reading u16", ErrTruncated)
	}
	v := binary.BigEndian.Uint16(c.buf[c.off : c.off+2])
	c.off += 2
	return v, nil
}

// ReadU32 reads four bytes big-endian and advances by 4.
func (c *Cursor) ReadU32() (uint32, error) {
	if c.off+4 > len(c.buf) {
		return 0, fmt.Errorf("%w: unexpected EOF reading u32", ErrTruncated)
	}
	v := binary.BigEndian.Uint32(c.buf[c.off : c.off+4])
	c.off += 4
	return v, nil
}

// ReadBytes copies n bytes into an owned buffer and advances by n.
func (c *Cursor) ReadBytes(n int) ([]byte, error) {
	if n < 0 || c.off+n > len(c.buf) {
		return nil, fmt.Errorf("%w: unexpected EOF reading %d bytes", ErrTruncated, n)
	}
	b := make([]byte, n)
	copy(b, c.buf[c.off:c.off+n])
	c.off += n
	return b, nil
}
