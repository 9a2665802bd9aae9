// Package format houses the low-level decoders for the macOS Bookmark
// ("book") binary format: header, table of contents and typed records. The
// goal is to keep parsing focused and bounds-checked, and independent from the
// public API so pkg/bookmark can assemble results in a more ergonomic form.
package format

// Magic is the four-byte signature at the start of every bookmark.
var Magic = []byte{'b', 'o', 'o', 'k'}

// ============================================================================
// Header
// ============================================================================
// Header field offsets (little-endian unless noted).
const (
	HeaderMagicOffset      = 0x00 // "book"
	HeaderSizeOffset       = 0x04 // ULONG, total bookmark length
	HeaderVersionOffset    = 0x08 // ULONG, stored big-endian by producers
	HeaderDataOffsetOffset = 0x0C // ULONG, start of the data section
	HeaderReservedOffset   = 0x10 // 32 reserved bytes

	MagicSize = 4

	// HeaderSize is the size of the fixed header including the reserved
	// area. Every producer writes the data section at this offset.
	HeaderSize = 0x30

	// MinDataOffset is the smallest data offset that leaves room for the
	// four defined header fields.
	MinDataOffset = 0x10
)

// ============================================================================
// Table of Contents
// ============================================================================
// TOC block field offsets, relative to the block start.
const (
	TOCLengthOffset = 0x00 // ULONG, bytes following the first 8
	TOCMagicOffset  = 0x04 // ULONG, TOCMagic
	TOCIDOffset     = 0x08 // ULONG, TOC identifier (1 = default)
	TOCNextOffset   = 0x0C // ULONG, next TOC offset, 0 = none
	TOCCountOffset  = 0x10 // ULONG, entry count

	TOCHeaderSize = 0x14
	TOCLengthBase = 0x08 // bytes not counted by the length field

	// TOCMagic tags a TOC block where a record would carry its type.
	TOCMagic = 0xFFFFFFFE

	// TOCFramingSize is the part of TOCHeaderSize not counted by the
	// block length field.
	TOCFramingSize = 8

	// TOC entry field offsets, relative to the entry start.
	TOCEntryKeyOffset      = 0x00
	TOCEntryRecordOffset   = 0x04
	TOCEntryReservedOffset = 0x08

	TOCEntrySize = 0x0C
)

// ============================================================================
// Records
// ============================================================================
// Record field offsets, relative to the record start.
const (
	RecordLengthOffset = 0x00 // ULONG, payload length (padding excluded)
	RecordTypeOffset   = 0x04 // ULONG, type tag

	RecordHeaderSize = 0x08

	// RecordAlignment is the alignment of records in the data section.
	RecordAlignment = 4

	// RecordAlignmentMask is RecordAlignment - 1.
	RecordAlignmentMask = RecordAlignment - 1
)

// Type tags are split into a major type (tag & TypeMajorMask) and a subtype
// (tag & TypeMinorMask).
const (
	TypeMajorMask = 0xFFFFFF00
	TypeMinorMask = 0x000000FF

	TypeString     = 0x0100
	TypeData       = 0x0200
	TypeNumber     = 0x0300
	TypeDate       = 0x0400
	TypeBool       = 0x0500
	TypeArray      = 0x0600
	TypeDictionary = 0x0700
	TypeUUID       = 0x0800
	TypeURL        = 0x0900
	TypeNull       = 0x0A00
)

// Full type tags as written by producers.
const (
	TagString       = TypeString | 0x01
	TagData         = TypeData | 0x01
	TagDate         = TypeDate
	TagFalse        = TypeBool
	TagTrue         = TypeBool | 0x01
	TagArray        = TypeArray | 0x01
	TagDictionary   = TypeDictionary | 0x01
	TagUUID         = TypeUUID | 0x01
	TagURL          = TypeURL | 0x01
	TagURLRelative  = TypeURL | 0x02
	TagNull         = TypeNull | 0x01
	TagNumberSInt8  = TypeNumber | NumberSInt8
	TagNumberSInt16 = TypeNumber | NumberSInt16
	TagNumberSInt32 = TypeNumber | NumberSInt32
	TagNumberSInt64 = TypeNumber | NumberSInt64
	TagNumberFloat  = TypeNumber | NumberFloat32
	TagNumberDouble = TypeNumber | NumberFloat64
)

// CFNumber subtypes.
const (
	NumberSInt8     = 1
	NumberSInt16    = 2
	NumberSInt32    = 3
	NumberSInt64    = 4
	NumberFloat32   = 5
	NumberFloat64   = 6
	NumberChar      = 7
	NumberShort     = 8
	NumberInt       = 9
	NumberLong      = 10
	NumberLongLong  = 11
	NumberFloat     = 12
	NumberDouble    = 13
	NumberCFIndex   = 14
	NumberNSInteger = 15
	NumberCGFloat   = 16
)

// Fixed payload sizes.
const (
	DateSize        = 8
	UUIDSize        = 16
	ArrayEntrySize  = 4
	DictEntrySize   = 8
	RelativeURLSize = 8
)
