package buf

import (
	"encoding/binary"
	"math"
	"testing"
)

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
	if got := U32BE(data); got != 0x01234567 {
		t.Fatalf("U32BE = 0x%x, want 0x01234567", got)
	}

	short := []byte{0xAA}
	if U16LE(short) != 0 {
		t.Fatalf("U16LE short should be 0")
	}
	if U32LE(short) != 0 || U32BE(short) != 0 || U64LE(short) != 0 {
		t.Fatalf("short reads should return 0")
	}
	if F32LE(short) != 0 || F64LE(short) != 0 || F64BE(short) != 0 {
		t.Fatalf("short float reads should return 0")
	}
}

func TestFloatHelpers(t *testing.T) {
	// 241134516.0 as stored in a real bookmark volume creation date.
	be := []byte{65, 172, 190, 215, 104, 0, 0, 0}
	if got := F64BE(be); got != 241134516.0 {
		t.Fatalf("F64BE = %v, want 241134516", got)
	}

	le := make([]byte, 8)
	binary.LittleEndian.PutUint64(le, math.Float64bits(-1.5))
	if got := F64LE(le); got != -1.5 {
		t.Fatalf("F64LE = %v, want -1.5", got)
	}

	le32 := make([]byte, 4)
	binary.LittleEndian.PutUint32(le32, math.Float32bits(3.25))
	if got := F32LE(le32); got != 3.25 {
		t.Fatalf("F32LE = %v, want 3.25", got)
	}
}
