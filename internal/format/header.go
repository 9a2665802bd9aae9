package format

import (
	"bytes"
	"fmt"

	"github.com/joshuapare/bookmarkkit/internal/buf"
)

// Header captures the bookmark header fields needed to locate the data
// section and the first table of contents.
//
//	Offset  Size  Description
//	------  ----  ----------------------------------------------------------
//	 0x000   4    'b' 'o' 'o' 'k'
//	 0x004   4    Total bookmark length
//	 0x008   4    Version (big-endian)
//	 0x00C   4    Offset of the data section (0x30 in practice)
//	 0x010  32    Reserved
//	 data+0  4    Offset of the first TOC, relative to the data section
//
// Every offset stored past the header is relative to the data section.
type Header struct {
	Size       uint32 // declared total length; bytes past it are ignored
	Version    uint32
	DataOffset uint32 // absolute start of the data section
	TOCOffset  uint32 // first TOC, relative to DataOffset
}

// ParseHeader validates the header of b and locates the first TOC.
func ParseHeader(b []byte) (Header, error) {
	if len(b) < HeaderSize {
		return Header{}, fmt.Errorf("bookmark header: %d bytes: %w", len(b), ErrTruncatedHeader)
	}
	if !bytes.Equal(b[HeaderMagicOffset:HeaderMagicOffset+MagicSize], Magic) {
		return Header{}, fmt.Errorf("bookmark header: %q: %w", b[:MagicSize], ErrInvalidMagic)
	}

	size := buf.U32LE(b[HeaderSizeOffset:])
	version := buf.U32BE(b[HeaderVersionOffset:])
	dataOff := buf.U32LE(b[HeaderDataOffsetOffset:])

	if uint64(size) < HeaderSize || uint64(size) > uint64(len(b)) {
		return Header{}, fmt.Errorf("bookmark header: declared size %d, have %d: %w", size, len(b), ErrTruncatedHeader)
	}
	if dataOff < MinDataOffset || uint64(dataOff)+4 > uint64(size) {
		return Header{}, fmt.Errorf("bookmark header: data offset %d: %w", dataOff, ErrTruncatedHeader)
	}

	data := b[dataOff:size]
	tocOff := buf.U32LE(data)
	if tocOff < 4 {
		return Header{}, fmt.Errorf("bookmark header: %w", malformed(0, TOCMagic, fmt.Sprintf("toc offset %d overlaps data header", tocOff)))
	}
	if _, err := buf.CheckRange(len(data), int(tocOff), TOCHeaderSize); err != nil {
		return Header{}, fmt.Errorf("bookmark header: first toc: %w", err)
	}

	return Header{
		Size:       size,
		Version:    version,
		DataOffset: dataOff,
		TOCOffset:  tocOff,
	}, nil
}

// Data returns the data section of b described by h. b must be the buffer h
// was parsed from.
func (h Header) Data(b []byte) []byte {
	return b[h.DataOffset:h.Size]
}
