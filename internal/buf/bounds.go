package buf

import (
	"math"

	"github.com/joshuapare/bookmarkkit/pkg/types"
)

// AddOverflowSafe adds a and b, returning ok = false when the result would overflow int.
func AddOverflowSafe(a, b int) (int, bool) {
	switch {
	case b > 0 && a > math.MaxInt-b:
		return 0, false
	case b < 0 && a < math.MinInt-b:
		return 0, false
	default:
		return a + b, true
	}
}

// MulOverflowSafe multiplies two non-negative ints, returning ok = false on
// overflow or negative input. Used for count * elementSize calculations.
func MulOverflowSafe(a, b int) (int, bool) {
	if a < 0 || b < 0 {
		return 0, false
	}
	if a == 0 || b == 0 {
		return 0, true
	}
	if a > math.MaxInt/b {
		return 0, false
	}
	return a * b, true
}

// CheckRange validates that n bytes at off fit in a buffer of size bufLen and
// returns the end offset. Failures are reported as *types.BoundsError.
func CheckRange(bufLen, off, n int) (int, error) {
	if off < 0 || n < 0 {
		return 0, &types.BoundsError{Offset: off, Length: n, Size: bufLen}
	}
	end, ok := AddOverflowSafe(off, n)
	if !ok || end > bufLen {
		return 0, &types.BoundsError{Offset: off, Length: n, Size: bufLen}
	}
	return end, nil
}

// CheckListBounds validates that count elements of elementSize bytes fit in
// the buffer starting at offset and returns the end offset.
//
//	end, err := buf.CheckListBounds(len(data), off, count, 4)
//	if err != nil {
//	    return fmt.Errorf("array: %w", err)
//	}
func CheckListBounds(bufLen, offset, count, elementSize int) (int, error) {
	total, ok := MulOverflowSafe(count, elementSize)
	if !ok {
		return 0, &types.BoundsError{Offset: offset, Length: math.MaxInt, Size: bufLen}
	}
	return CheckRange(bufLen, offset, total)
}
