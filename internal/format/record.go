package format

import (
	"fmt"

	"github.com/joshuapare/bookmarkkit/internal/buf"
)

// Record is one typed item in the data section.
//
// Record layout (little-endian):
//
//	Offset  Size  Description
//	0x00    4     Payload length, padding excluded.
//	0x04    4     Type tag (major | subtype).
//	0x08    ...   Payload, padded to a 4-byte boundary.
type Record struct {
	Offset  uint32 // relative to the data section
	Length  uint32
	Type    uint32
	Payload []byte // alias of the underlying buffer
}

// Major returns the major type of the record.
func (r Record) Major() uint32 { return r.Type & TypeMajorMask }

// Subtype returns the subtype of the record.
func (r Record) Subtype() uint32 { return r.Type & TypeMinorMask }

// End returns the aligned offset just past the record.
func (r Record) End() int {
	return int(r.Offset) + RecordHeaderSize + Align4(int(r.Length))
}

// ReadRecord frames the record at off. Only the header and payload bounds are
// checked; the payload is not interpreted. A maxSize <= 0 disables the size
// cap.
func ReadRecord(c buf.Cursor, off uint32, maxSize int) (Record, error) {
	hdr, err := c.Bytes(int(off), RecordHeaderSize)
	if err != nil {
		return Record{}, fmt.Errorf("record 0x%x: header: %w", off, err)
	}
	length := buf.U32LE(hdr[RecordLengthOffset:])
	tag := buf.U32LE(hdr[RecordTypeOffset:])

	if maxSize > 0 && uint64(length) > uint64(maxSize) {
		return Record{}, recordErr(off, tag,
			fmt.Sprintf("length %d exceeds %d", length, maxSize), ErrLimitExceeded)
	}
	payload, err := c.Bytes(int(off)+RecordHeaderSize, int(length))
	if err != nil {
		return Record{}, recordErr(off, tag, "payload", err)
	}
	return Record{
		Offset:  off,
		Length:  length,
		Type:    tag,
		Payload: payload,
	}, nil
}
