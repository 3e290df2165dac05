package w3g

import (
	"math"
	"unicode/utf8"
)

// cursor is the decompressed-stream contract from spec.md §4.1: a
// byte-oriented reader with primitives for fixed-length bytes,
// little-endian integers/floats, NUL-terminated UTF-8 strings and
// zero-terminated raw byte runs. The whole decompressed stream is
// materialised eagerly (permitted by the spec), so cursor is a thin,
// bounds-checked wrapper around a byte slice and a read position —
// the same offset-tracking style as the teacher's sliceReader, but
// returning errors instead of panicking on short reads.
type cursor struct {
	buf []byte
	pos int
}

func newCursor(buf []byte) *cursor {
	return &cursor{buf: buf}
}

func (c *cursor) offset() int { return c.pos }

func (c *cursor) remaining() int { return len(c.buf) - c.pos }

// bytes returns the next n bytes and advances the cursor.
func (c *cursor) bytes(n int) ([]byte, error) {
	if n < 0 || c.remaining() < n {
		return nil, shortReadErr(c.pos, n, c.remaining())
	}
	b := c.buf[c.pos : c.pos+n]
	c.pos += n
	return b, nil
}

func shortReadErr(offset, want, have int) error {
	return newTruncatedDataError(offset, "short read: wanted %d bytes, have %d", want, have)
}

func (c *cursor) u8() (uint8, error) {
	b, err := c.bytes(1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

func (c *cursor) u16() (uint16, error) {
	b, err := c.bytes(2)
	if err != nil {
		return 0, err
	}
	return uint16(b[0]) | uint16(b[1])<<8, nil
}

func (c *cursor) u32() (uint32, error) {
	b, err := c.bytes(4)
	if err != nil {
		return 0, err
	}
	return uint32(b[0]) | uint32(b[1])<<8 | uint32(b[2])<<16 | uint32(b[3])<<24, nil
}

func (c *cursor) u64() (uint64, error) {
	b, err := c.bytes(8)
	if err != nil {
		return 0, err
	}
	var v uint64
	for i := 7; i >= 0; i-- {
		v = v<<8 | uint64(b[i])
	}
	return v, nil
}

func (c *cursor) i32() (int32, error) {
	v, err := c.u32()
	return int32(v), err
}

func (c *cursor) f32() (float32, error) {
	v, err := c.u32()
	if err != nil {
		return 0, err
	}
	return math.Float32frombits(v), nil
}

// fixedString reads n bytes and returns them as a string without
// requiring a terminator (used for magic strings and version tags).
func (c *cursor) fixedString(n int) (string, error) {
	b, err := c.bytes(n)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// cString reads a NUL-terminated UTF-8 string, consuming the terminator.
func (c *cursor) cString() (string, error) {
	start := c.pos
	for c.pos < len(c.buf) && c.buf[c.pos] != 0 {
		c.pos++
	}
	if c.pos >= len(c.buf) {
		return "", newTruncatedDataError(start, "unterminated string")
	}
	s := c.buf[start:c.pos]
	c.pos++ // consume NUL
	if !utf8.Valid(s) {
		return "", newMalformedStringError(start, "invalid UTF-8 in string field")
	}
	return string(s), nil
}

// zeroTerminatedRun reads a run of bytes up to and including the next
// zero byte, returning the bytes with the terminator included (the
// "encoded string" primitive from spec.md §4.1, step 1).
func (c *cursor) zeroTerminatedRun() ([]byte, error) {
	start := c.pos
	for c.pos < len(c.buf) && c.buf[c.pos] != 0 {
		c.pos++
	}
	if c.pos >= len(c.buf) {
		return nil, newTruncatedDataError(start, "unterminated byte run")
	}
	c.pos++ // include terminator
	return c.buf[start:c.pos], nil
}

func (c *cursor) skip(n int) error {
	_, err := c.bytes(n)
	return err
}
