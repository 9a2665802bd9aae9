package format

import (
	"fmt"

	"github.com/joshuapare/bookmarkkit/internal/buf"
	"github.com/joshuapare/bookmarkkit/pkg/types"
)

// DuplicatePolicy decides what happens when a key appears more than once
// across the TOC chain.
type DuplicatePolicy int

const (
	// DuplicateLastWins keeps the position of the first occurrence and the
	// record offset of the last one.
	DuplicateLastWins DuplicatePolicy = iota
	// DuplicateFirstWins ignores later occurrences.
	DuplicateFirstWins
	// DuplicateReject fails the decode with ErrDuplicateKey.
	DuplicateReject
)

func (p DuplicatePolicy) String() string {
	switch p {
	case DuplicateLastWins:
		return "last-wins"
	case DuplicateFirstWins:
		return "first-wins"
	case DuplicateReject:
		return "reject"
	default:
		return fmt.Sprintf("DuplicatePolicy(%d)", int(p))
	}
}

// TOCBlock is one parsed TOC block header.
//
//	Offset  Size  Description
//	------  ----  ----------------------------------------------------------
//	 0x00    4    Length of the block after the first 8 bytes
//	 0x04    4    0xFFFFFFFE
//	 0x08    4    TOC identifier
//	 0x0C    4    Next TOC offset (0 = none)
//	 0x10    4    Entry count
//	 0x14   12n   Entries: key, record offset, reserved
type TOCBlock struct {
	Offset uint32
	Length uint32
	ID     uint32
	Next   uint32
	Count  uint32
}

// End returns the offset just past the block.
func (b TOCBlock) End() int {
	return int(b.Offset) + TOCLengthBase + int(b.Length)
}

// TOCEntry maps a key to the data-section offset of its record.
type TOCEntry struct {
	Key          types.Key
	RecordOffset uint32
	Reserved     uint32
	TOCID        uint32 // identifier of the block the entry came from
}

// TOCOptions configures ParseTOC.
type TOCOptions struct {
	Limits     types.Limits
	Duplicates DuplicatePolicy
}

// TOC is the merged, ordered key -> record offset mapping of every block in
// the chain. Record offsets are not validated here.
type TOC struct {
	Blocks     []TOCBlock
	Entries    []TOCEntry
	Duplicates int // number of repeated keys seen

	index map[types.Key]int
}

// Lookup returns the entry for key k.
func (t *TOC) Lookup(k types.Key) (TOCEntry, bool) {
	i, ok := t.index[k]
	if !ok {
		return TOCEntry{}, false
	}
	return t.Entries[i], true
}

// Len returns the number of distinct keys.
func (t *TOC) Len() int { return len(t.Entries) }

// ParseTOC walks the TOC chain of data starting at first. The walk is
// iterative: a revisited block fails with ErrCyclicTOC and the chain length
// is capped by Limits.MaxTOCBlocks.
func ParseTOC(data []byte, first uint32, opts TOCOptions) (*TOC, error) {
	limits := opts.Limits.WithDefaults()
	c := buf.NewCursor(data)
	t := &TOC{index: make(map[types.Key]int)}
	visited := make(map[uint32]struct{})

	for off := first; off != 0; {
		if _, seen := visited[off]; seen {
			return nil, fmt.Errorf("toc at 0x%x: %w", off, ErrCyclicTOC)
		}
		if len(visited) >= limits.MaxTOCBlocks {
			return nil, fmt.Errorf("toc chain longer than %d blocks: %w", limits.MaxTOCBlocks, ErrLimitExceeded)
		}
		visited[off] = struct{}{}

		blk, err := readTOCBlock(c, off, limits)
		if err != nil {
			return nil, err
		}
		t.Blocks = append(t.Blocks, blk)

		base := int(off) + TOCHeaderSize
		for i := 0; i < int(blk.Count); i++ {
			e := base + i*TOCEntrySize
			entry := TOCEntry{
				Key:          types.Key(ReadU32(data, e+TOCEntryKeyOffset)),
				RecordOffset: ReadU32(data, e+TOCEntryRecordOffset),
				Reserved:     ReadU32(data, e+TOCEntryReservedOffset),
				TOCID:        blk.ID,
			}
			if err := t.add(entry, opts.Duplicates); err != nil {
				return nil, err
			}
		}
		off = blk.Next
	}
	return t, nil
}

func readTOCBlock(c buf.Cursor, off uint32, limits types.Limits) (TOCBlock, error) {
	hdr, err := c.Bytes(int(off), TOCHeaderSize)
	if err != nil {
		return TOCBlock{}, fmt.Errorf("toc at 0x%x: %w", off, err)
	}
	blk := TOCBlock{
		Offset: off,
		Length: buf.U32LE(hdr[TOCLengthOffset:]),
		ID:     buf.U32LE(hdr[TOCIDOffset:]),
		Next:   buf.U32LE(hdr[TOCNextOffset:]),
		Count:  buf.U32LE(hdr[TOCCountOffset:]),
	}
	if magic := buf.U32LE(hdr[TOCMagicOffset:]); magic != TOCMagic {
		return TOCBlock{}, malformed(off, magic, "bad toc magic")
	}
	if uint64(blk.Count) > uint64(limits.MaxTOCEntries) {
		return TOCBlock{}, fmt.Errorf("toc at 0x%x: %d entries: %w", off, blk.Count, ErrLimitExceeded)
	}
	if _, err := buf.CheckListBounds(c.Len(), int(off)+TOCHeaderSize, int(blk.Count), TOCEntrySize); err != nil {
		return TOCBlock{}, fmt.Errorf("toc at 0x%x: entries: %w", off, err)
	}
	need := uint64(TOCHeaderSize-TOCFramingSize) + uint64(blk.Count)*TOCEntrySize
	if uint64(blk.Length) < need {
		return TOCBlock{}, malformed(off, TOCMagic,
			fmt.Sprintf("toc length %d too small for %d entries", blk.Length, blk.Count))
	}
	return blk, nil
}

func (t *TOC) add(e TOCEntry, policy DuplicatePolicy) error {
	i, dup := t.index[e.Key]
	if !dup {
		t.index[e.Key] = len(t.Entries)
		t.Entries = append(t.Entries, e)
		return nil
	}
	t.Duplicates++
	switch policy {
	case DuplicateFirstWins:
		return nil
	case DuplicateReject:
		return fmt.Errorf("key %s in toc %d: %w", e.Key, e.TOCID, ErrDuplicateKey)
	default:
		t.Entries[i] = e
		return nil
	}
}
