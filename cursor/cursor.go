// Package cursor provides a seekable, position-addressable view over an
// immutable byte buffer, with the little-endian fixed-width reads and
// 7-bit length-prefixed string reads the NRBF record parsers need.
package cursor

import (
	"math"
	"unicode/utf8"

	"github.com/zeroed-tech/viewstate-decoder/endian"
	"github.com/zeroed-tech/viewstate-decoder/errs"
)

// maxVarIntBytes bounds ReadVarString's length varint to 5 bytes (35 bits),
// per spec: more than that is ErrInvalidVarInt.
const maxVarIntBytes = 5

// Cursor is a position p over bytes b[0..n]. Reads advance p; Peek does
// not; Seek is permitted anywhere in [0, n].
type Cursor struct {
	buf    []byte
	pos    int
	engine endian.EndianEngine
}

// New creates a Cursor over buf, positioned at offset 0. NRBF is
// little-endian only, so the engine is fixed; it is still threaded through
// rather than hardcoding byte-swap logic inline, matching how the rest of
// the decoder's fixed-width reads are expressed.
func New(buf []byte) *Cursor {
	return &Cursor{buf: buf, engine: endian.GetLittleEndianEngine()}
}

// Len returns the total number of bytes in the underlying buffer.
func (c *Cursor) Len() int {
	return len(c.buf)
}

// Position returns the current read offset.
func (c *Cursor) Position() int64 {
	return int64(c.pos)
}

// Remaining returns the number of unread bytes.
func (c *Cursor) Remaining() int {
	return len(c.buf) - c.pos
}

// Seek moves the cursor to an absolute byte offset. pos must be in [0, Len()].
func (c *Cursor) Seek(pos int64) error {
	if pos < 0 || pos > int64(len(c.buf)) {
		return errs.Errorf(c.Position(), errs.ErrUnexpectedEOF, "seek target %d out of range [0,%d]", pos, len(c.buf))
	}
	c.pos = int(pos)

	return nil
}

func (c *Cursor) need(n int) error {
	if c.Remaining() < n {
		return errs.Errorf(c.Position(), errs.ErrUnexpectedEOF, "need %d bytes, have %d", n, c.Remaining())
	}

	return nil
}

// Peek returns the next byte without advancing the cursor.
func (c *Cursor) Peek() (byte, error) {
	if err := c.need(1); err != nil {
		return 0, err
	}

	return c.buf[c.pos], nil
}

// ReadU8 reads one unsigned byte.
func (c *Cursor) ReadU8() (byte, error) {
	if err := c.need(1); err != nil {
		return 0, err
	}
	b := c.buf[c.pos]
	c.pos++

	return b, nil
}

// ReadBytes reads exactly n raw bytes and returns a copy.
func (c *Cursor) ReadBytes(n int) ([]byte, error) {
	if n < 0 {
		return nil, errs.Errorf(c.Position(), errs.ErrUnexpectedEOF, "negative read length %d", n)
	}
	if err := c.need(n); err != nil {
		return nil, err
	}
	out := make([]byte, n)
	copy(out, c.buf[c.pos:c.pos+n])
	c.pos += n

	return out, nil
}

// ReadI16 reads a little-endian signed 16-bit integer.
func (c *Cursor) ReadI16() (int16, error) {
	if err := c.need(2); err != nil {
		return 0, err
	}
	v := int16(c.engine.Uint16(c.buf[c.pos : c.pos+2])) //nolint:gosec
	c.pos += 2

	return v, nil
}

// ReadU16 reads a little-endian unsigned 16-bit integer.
func (c *Cursor) ReadU16() (uint16, error) {
	if err := c.need(2); err != nil {
		return 0, err
	}
	v := c.engine.Uint16(c.buf[c.pos : c.pos+2])
	c.pos += 2

	return v, nil
}

// ReadI32 reads a little-endian signed 32-bit integer.
func (c *Cursor) ReadI32() (int32, error) {
	if err := c.need(4); err != nil {
		return 0, err
	}
	v := int32(c.engine.Uint32(c.buf[c.pos : c.pos+4])) //nolint:gosec
	c.pos += 4

	return v, nil
}

// ReadU32 reads a little-endian unsigned 32-bit integer.
func (c *Cursor) ReadU32() (uint32, error) {
	if err := c.need(4); err != nil {
		return 0, err
	}
	v := c.engine.Uint32(c.buf[c.pos : c.pos+4])
	c.pos += 4

	return v, nil
}

// ReadI64 reads a little-endian signed 64-bit integer.
func (c *Cursor) ReadI64() (int64, error) {
	if err := c.need(8); err != nil {
		return 0, err
	}
	v := int64(c.engine.Uint64(c.buf[c.pos : c.pos+8])) //nolint:gosec
	c.pos += 8

	return v, nil
}

// ReadU64 reads a little-endian unsigned 64-bit integer.
func (c *Cursor) ReadU64() (uint64, error) {
	if err := c.need(8); err != nil {
		return 0, err
	}
	v := c.engine.Uint64(c.buf[c.pos : c.pos+8])
	c.pos += 8

	return v, nil
}

// ReadF32 reads a little-endian IEEE-754 32-bit float.
func (c *Cursor) ReadF32() (float32, error) {
	bits, err := c.ReadU32()
	if err != nil {
		return 0, err
	}

	return math.Float32frombits(bits), nil
}

// ReadF64 reads a little-endian IEEE-754 64-bit float.
func (c *Cursor) ReadF64() (float64, error) {
	bits, err := c.ReadU64()
	if err != nil {
		return 0, err
	}

	return math.Float64frombits(bits), nil
}

// ReadVarString reads a 7-bit little-endian length-prefixed UTF-8 string.
// Each continuation byte contributes its low 7 bits at shift 7*i;
// termination occurs when the high bit is clear. More than 5 bytes (35
// bits) of length is ErrInvalidVarInt.
func (c *Cursor) ReadVarString() (string, error) {
	length, err := c.readVarUint()
	if err != nil {
		return "", err
	}

	raw, err := c.ReadBytes(int(length))
	if err != nil {
		return "", err
	}

	if !utf8.Valid(raw) {
		return "", errs.Errorf(c.Position(), errs.ErrInvalidUTF8, "string payload is not valid utf-8")
	}

	return string(raw), nil
}

func (c *Cursor) readVarUint() (uint64, error) {
	var result uint64
	for i := 0; i < maxVarIntBytes; i++ {
		b, err := c.ReadU8()
		if err != nil {
			return 0, err
		}

		result |= uint64(b&0x7f) << (7 * i)

		if b&0x80 == 0 {
			return result, nil
		}
	}

	return 0, errs.Errorf(c.Position(), errs.ErrInvalidVarInt, "length varint exceeds %d bytes", maxVarIntBytes)
}
