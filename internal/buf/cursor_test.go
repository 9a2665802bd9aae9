package buf

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/joshuapare/bookmarkkit/pkg/types"
)

func TestCursorReads(t *testing.T) {
	c := NewCursor([]byte{0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07, 0x08, 0x09})
	require.Equal(t, 9, c.Len())

	u8, err := c.U8(8)
	require.NoError(t, err)
	require.Equal(t, uint8(0x09), u8)

	u16, err := c.U16(1)
	require.NoError(t, err)
	require.Equal(t, uint16(0x0302), u16)

	u32, err := c.U32(0)
	require.NoError(t, err)
	require.Equal(t, uint32(0x04030201), u32)

	u64, err := c.U64(1)
	require.NoError(t, err)
	require.Equal(t, uint64(0x0908070605040302), u64)
}

func TestCursorOutOfBounds(t *testing.T) {
	c := NewCursor(make([]byte, 6))

	cases := []struct {
		name string
		read func() error
		off  int
		n    int
	}{
		{"u8", func() error { _, err := c.U8(6); return err }, 6, 1},
		{"u16", func() error { _, err := c.U16(5); return err }, 5, 2},
		{"u32", func() error { _, err := c.U32(3); return err }, 3, 4},
		{"u64", func() error { _, err := c.U64(0); return err }, 0, 8},
		{"f32", func() error { _, err := c.F32(4); return err }, 4, 4},
		{"f64", func() error { _, err := c.F64(1); return err }, 1, 8},
		{"f64be", func() error { _, err := c.F64BE(-1); return err }, -1, 8},
		{"bytes", func() error { _, err := c.Bytes(2, 10); return err }, 2, 10},
		{"string", func() error { _, err := c.String(4, 4); return err }, 4, 4},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.read()
			var be *types.BoundsError
			require.True(t, errors.As(err, &be), "got %v", err)
			require.Equal(t, tc.off, be.Offset)
			require.Equal(t, tc.n, be.Length)
			require.Equal(t, 6, be.Size)
		})
	}
}

func TestCursorString(t *testing.T) {
	c := NewCursor([]byte("Macintosh HD\x00\x00\xff\xfe"))

	s, err := c.String(0, 14)
	require.NoError(t, err)
	require.Equal(t, "Macintosh HD", s)

	_, err = c.String(12, 4)
	require.ErrorIs(t, err, types.ErrMalformedRecord)
}
