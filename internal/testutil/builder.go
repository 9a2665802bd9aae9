package testutil

import (
	"encoding/binary"
	"math"

	"github.com/google/uuid"

	"github.com/joshuapare/bookmarkkit/pkg/types"
)

// Layout constants mirrored here so internal/format tests can use the
// builder without an import cycle.
const (
	headerSize    = 0x30
	tocHeaderSize = 0x14
	tocEntrySize  = 0x0C
	tocMagic      = 0xFFFFFFFE

	// DefaultVersion is the version Safari writes, as read big-endian.
	DefaultVersion = 0x0410
)

// Record type tags used by the builder helpers.
const (
	TagString      = 0x0101
	TagData        = 0x0201
	TagInt8        = 0x0301
	TagInt16       = 0x0302
	TagInt32       = 0x0303
	TagInt64       = 0x0304
	TagFloat32     = 0x0305
	TagFloat64     = 0x0306
	TagDate        = 0x0400
	TagFalse       = 0x0500
	TagTrue        = 0x0501
	TagArray       = 0x0601
	TagDict        = 0x0701
	TagUUID        = 0x0801
	TagURL         = 0x0901
	TagURLRelative = 0x0902
	TagNull        = 0x0A01
)

// TOCEntry is one key -> record offset mapping passed to Builder.TOC.
type TOCEntry struct {
	Key    types.Key
	Offset uint32
}

// Builder assembles bookmark blobs for tests. Offsets returned by the
// record helpers are relative to the data section, which is how they are
// referenced from TOCs, arrays and dictionaries.
//
// Example:
//
//	b := testutil.NewBuilder()
//	name := b.String("Macintosh HD")
//	b.TOC(1, testutil.TOCEntry{Key: types.KeyVolumeName, Offset: name})
//	blob := b.Bytes()
type Builder struct {
	data     []byte
	firstTOC uint32
	version  uint32
	size     int // overrides the declared total length when > 0
	trailing []byte
}

// NewBuilder returns an empty builder. The first four bytes of the data
// section are reserved for the first TOC offset.
func NewBuilder() *Builder {
	return &Builder{data: make([]byte, 4), version: DefaultVersion}
}

// Len returns the current size of the data section.
func (b *Builder) Len() uint32 { return uint32(len(b.data)) }

// Record appends a record with the given tag and payload, padded to four
// bytes, and returns its offset.
func (b *Builder) Record(tag uint32, payload []byte) uint32 {
	return b.RecordWithLength(tag, uint32(len(payload)), payload)
}

// RecordWithLength is Record with an explicit declared length, for building
// records whose header disagrees with their payload.
func (b *Builder) RecordWithLength(tag, length uint32, payload []byte) uint32 {
	off := b.Len()
	var hdr [8]byte
	binary.LittleEndian.PutUint32(hdr[0:], length)
	binary.LittleEndian.PutUint32(hdr[4:], tag)
	b.data = append(b.data, hdr[:]...)
	b.data = append(b.data, payload...)
	for len(b.data)%4 != 0 {
		b.data = append(b.data, 0)
	}
	return off
}

// Raw appends bytes verbatim and returns their offset.
func (b *Builder) Raw(p []byte) uint32 {
	off := b.Len()
	b.data = append(b.data, p...)
	return off
}

// PatchU32 overwrites four bytes of the data section at off.
func (b *Builder) PatchU32(off, v uint32) {
	binary.LittleEndian.PutUint32(b.data[off:], v)
}

// String appends a UTF-8 string record.
func (b *Builder) String(s string) uint32 { return b.Record(TagString, []byte(s)) }

// Data appends an opaque data record.
func (b *Builder) Data(p []byte) uint32 { return b.Record(TagData, p) }

// Int32 appends a 32-bit signed number record.
func (b *Builder) Int32(v int32) uint32 {
	p := make([]byte, 4)
	binary.LittleEndian.PutUint32(p, uint32(v))
	return b.Record(TagInt32, p)
}

// Int64 appends a 64-bit signed number record.
func (b *Builder) Int64(v int64) uint32 {
	p := make([]byte, 8)
	binary.LittleEndian.PutUint64(p, uint64(v))
	return b.Record(TagInt64, p)
}

// Float64 appends a double precision number record.
func (b *Builder) Float64(v float64) uint32 {
	p := make([]byte, 8)
	binary.LittleEndian.PutUint64(p, math.Float64bits(v))
	return b.Record(TagFloat64, p)
}

// Date appends a date record holding secs since 2001-01-01 (big-endian).
func (b *Builder) Date(secs float64) uint32 {
	p := make([]byte, 8)
	binary.BigEndian.PutUint64(p, math.Float64bits(secs))
	return b.Record(TagDate, p)
}

// Bool appends a boolean record.
func (b *Builder) Bool(v bool) uint32 {
	if v {
		return b.Record(TagTrue, nil)
	}
	return b.Record(TagFalse, nil)
}

// UUID appends a binary UUID record.
func (b *Builder) UUID(id uuid.UUID) uint32 { return b.Record(TagUUID, id[:]) }

// URL appends an absolute URL record.
func (b *Builder) URL(s string) uint32 { return b.Record(TagURL, []byte(s)) }

// RelativeURL appends a relative URL record referencing a base URL record and
// a string record.
func (b *Builder) RelativeURL(base, rel uint32) uint32 {
	return b.Record(TagURLRelative, offsets(base, rel))
}

// Null appends a null record.
func (b *Builder) Null() uint32 { return b.Record(TagNull, nil) }

// Array appends an array record of the given element offsets.
func (b *Builder) Array(elems ...uint32) uint32 { return b.Record(TagArray, offsets(elems...)) }

// StringArray appends one string record per element and an array over them.
func (b *Builder) StringArray(elems ...string) uint32 {
	offs := make([]uint32, 0, len(elems))
	for _, s := range elems {
		offs = append(offs, b.String(s))
	}
	return b.Array(offs...)
}

// Dict appends a dictionary record. kv alternates key and value offsets.
func (b *Builder) Dict(kv ...uint32) uint32 { return b.Record(TagDict, offsets(kv...)) }

// TOC appends a TOC block with no successor and returns its offset. The
// first block appended becomes the first TOC unless SetFirstTOC is called.
func (b *Builder) TOC(id uint32, entries ...TOCEntry) uint32 {
	off := b.Len()
	blk := make([]byte, tocHeaderSize+len(entries)*tocEntrySize)
	binary.LittleEndian.PutUint32(blk[0x00:], uint32(len(blk)-8))
	binary.LittleEndian.PutUint32(blk[0x04:], tocMagic)
	binary.LittleEndian.PutUint32(blk[0x08:], id)
	binary.LittleEndian.PutUint32(blk[0x10:], uint32(len(entries)))
	for i, e := range entries {
		p := tocHeaderSize + i*tocEntrySize
		binary.LittleEndian.PutUint32(blk[p:], uint32(e.Key))
		binary.LittleEndian.PutUint32(blk[p+4:], e.Offset)
	}
	b.data = append(b.data, blk...)
	if b.firstTOC == 0 {
		b.firstTOC = off
	}
	return off
}

// Link sets the next-TOC field of the block at from.
func (b *Builder) Link(from, to uint32) {
	b.PatchU32(from+0x0C, to)
}

// SetFirstTOC overrides the first TOC offset stored in the data section.
func (b *Builder) SetFirstTOC(off uint32) { b.firstTOC = off }

// SetDeclaredSize overrides the total length written to the header.
func (b *Builder) SetDeclaredSize(n int) { b.size = n }

// AppendTrailing adds bytes after the declared end of the bookmark.
func (b *Builder) AppendTrailing(p []byte) { b.trailing = append(b.trailing, p...) }

// Bytes returns the assembled bookmark.
func (b *Builder) Bytes() []byte {
	binary.LittleEndian.PutUint32(b.data[0:], b.firstTOC)

	out := make([]byte, headerSize, headerSize+len(b.data)+len(b.trailing))
	copy(out, "book")
	size := headerSize + len(b.data)
	if b.size > 0 {
		size = b.size
	}
	binary.LittleEndian.PutUint32(out[0x04:], uint32(size))
	binary.BigEndian.PutUint32(out[0x08:], b.version)
	binary.LittleEndian.PutUint32(out[0x0C:], headerSize)
	out = append(out, b.data...)
	return append(out, b.trailing...)
}

func offsets(v ...uint32) []byte {
	p := make([]byte, 4*len(v))
	for i, o := range v {
		binary.LittleEndian.PutUint32(p[i*4:], o)
	}
	return p
}
