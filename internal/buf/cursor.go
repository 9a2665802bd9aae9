package buf

import (
	"bytes"
	"fmt"
	"unicode/utf8"

	"github.com/joshuapare/bookmarkkit/pkg/types"
)

// Cursor is a read-only, bounds-checked view over a byte slice. Reads take an
// absolute offset and never advance; a failed read returns *types.BoundsError
// and never panics.
type Cursor struct {
	b []byte
}

// NewCursor wraps b. The slice is borrowed, not copied.
func NewCursor(b []byte) Cursor { return Cursor{b: b} }

// Len returns the size of the underlying buffer.
func (c Cursor) Len() int { return len(c.b) }

// Bytes returns the n bytes at off. The result aliases the buffer.
func (c Cursor) Bytes(off, n int) ([]byte, error) {
	end, err := CheckRange(len(c.b), off, n)
	if err != nil {
		return nil, err
	}
	return c.b[off:end], nil
}

// U8 reads the byte at off.
func (c Cursor) U8(off int) (uint8, error) {
	b, err := c.Bytes(off, 1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

// U16 reads a little-endian uint16 at off.
func (c Cursor) U16(off int) (uint16, error) {
	b, err := c.Bytes(off, 2)
	if err != nil {
		return 0, err
	}
	return U16LE(b), nil
}

// U32 reads a little-endian uint32 at off.
func (c Cursor) U32(off int) (uint32, error) {
	b, err := c.Bytes(off, 4)
	if err != nil {
		return 0, err
	}
	return U32LE(b), nil
}

// U64 reads a little-endian uint64 at off.
func (c Cursor) U64(off int) (uint64, error) {
	b, err := c.Bytes(off, 8)
	if err != nil {
		return 0, err
	}
	return U64LE(b), nil
}

// F32 reads a little-endian float32 at off.
func (c Cursor) F32(off int) (float32, error) {
	b, err := c.Bytes(off, 4)
	if err != nil {
		return 0, err
	}
	return F32LE(b), nil
}

// F64 reads a little-endian float64 at off.
func (c Cursor) F64(off int) (float64, error) {
	b, err := c.Bytes(off, 8)
	if err != nil {
		return 0, err
	}
	return F64LE(b), nil
}

// F64BE reads a big-endian float64 at off.
func (c Cursor) F64BE(off int) (float64, error) {
	b, err := c.Bytes(off, 8)
	if err != nil {
		return 0, err
	}
	return F64BE(b), nil
}

// String reads n bytes at off as UTF-8 text. Trailing NUL terminators are
// trimmed; invalid UTF-8 is reported as types.ErrMalformedRecord.
func (c Cursor) String(off, n int) (string, error) {
	b, err := c.Bytes(off, n)
	if err != nil {
		return "", err
	}
	b = bytes.TrimRight(b, "\x00")
	if !utf8.Valid(b) {
		return "", fmt.Errorf("string at %d: invalid utf-8: %w", off, types.ErrMalformedRecord)
	}
	return string(b), nil
}
