package format

import (
	"fmt"
	"math"

	"github.com/google/uuid"

	"github.com/joshuapare/bookmarkkit/internal/buf"
	"github.com/joshuapare/bookmarkkit/pkg/types"
)

// Decoder turns records of one data section into types.Value trees.
//
// Recursion is bounded by Limits.MaxDepth. Records currently being decoded
// are tracked so a reference back into the active path fails with
// ErrTooDeeplyNested instead of recursing until the depth cap. Successful
// decodes are memoised per offset together with their subtree height, so a
// shared record reused deeper than where it was first decoded is still held
// to the depth cap.
//
// A Decoder is not safe for concurrent use.
type Decoder struct {
	cur    buf.Cursor
	limits types.Limits
	memo   map[uint32]memoEntry
	active map[uint32]struct{}
	toc    []TOCBlock
}

// memoEntry is a decoded record and the number of levels below it.
type memoEntry struct {
	v      types.Value
	height int
}

// NewDecoder returns a decoder over data, the data section of a bookmark.
func NewDecoder(data []byte, limits types.Limits) *Decoder {
	return &Decoder{
		cur:    buf.NewCursor(data),
		limits: limits.WithDefaults(),
		memo:   make(map[uint32]memoEntry),
		active: make(map[uint32]struct{}),
	}
}

// ExcludeTOC marks the blocks of t as off limits: a record overlapping one of
// them is malformed.
func (d *Decoder) ExcludeTOC(t *TOC) {
	d.toc = t.Blocks
}

// Frame reads the record header at off without decoding the payload.
func (d *Decoder) Frame(off uint32) (Record, error) {
	rec, err := ReadRecord(d.cur, off, d.limits.MaxRecordSize)
	if err != nil {
		return Record{}, err
	}
	for _, blk := range d.toc {
		if int(rec.Offset) < blk.End() && int(blk.Offset) < rec.End() {
			return Record{}, malformed(rec.Offset, rec.Type,
				fmt.Sprintf("overlaps toc block at 0x%x", blk.Offset))
		}
	}
	return rec, nil
}

// Decode decodes the record at off as a top-level value.
func (d *Decoder) Decode(off uint32) (types.Value, error) {
	v, _, err := d.decode(off, 0)
	return v, err
}

// DecodeString decodes the record at off and requires it to be a string.
func (d *Decoder) DecodeString(off uint32) (string, error) {
	v, err := d.Decode(off)
	if err != nil {
		return "", err
	}
	if v.Kind() != types.KindString {
		return "", fmt.Errorf("record 0x%x is %s: %w", off, v.Kind(), types.ErrTypeMismatch)
	}
	s, _ := v.AsString()
	return s, nil
}

// decode returns the value at off and its subtree height, zero for scalars.
func (d *Decoder) decode(off uint32, depth int) (types.Value, int, error) {
	if m, ok := d.memo[off]; ok {
		if depth+m.height > d.limits.MaxDepth {
			return types.Value{}, 0, fmt.Errorf("record 0x%x at depth %d with height %d: %w",
				off, depth, m.height, ErrTooDeeplyNested)
		}
		return m.v, m.height, nil
	}
	if depth > d.limits.MaxDepth {
		return types.Value{}, 0, fmt.Errorf("record 0x%x at depth %d: %w", off, depth, ErrTooDeeplyNested)
	}
	if _, busy := d.active[off]; busy {
		return types.Value{}, 0, fmt.Errorf("record 0x%x: reference cycle: %w", off, ErrTooDeeplyNested)
	}

	rec, err := d.Frame(off)
	if err != nil {
		return types.Value{}, 0, err
	}

	d.active[off] = struct{}{}
	v, height, err := d.decodeRecord(rec, depth)
	delete(d.active, off)
	if err != nil {
		return types.Value{}, 0, err
	}

	v = v.WithOrigin(off, rec.Type)
	d.memo[off] = memoEntry{v: v, height: height}
	return v, height, nil
}

func (d *Decoder) decodeRecord(rec Record, depth int) (types.Value, int, error) {
	switch rec.Type {
	case TagArray:
		return d.decodeArray(rec, depth)
	case TagDictionary:
		return d.decodeDict(rec, depth)
	case TagURLRelative:
		return d.decodeRelativeURL(rec, depth)
	}
	v, err := d.decodeScalar(rec)
	return v, 0, err
}

func (d *Decoder) decodeScalar(rec Record) (types.Value, error) {
	p := rec.Payload
	sub := rec.Subtype()

	switch rec.Major() {
	case TypeString:
		if sub == TagString&TypeMinorMask {
			return d.decodeString(rec)
		}
	case TypeData:
		if sub == TagData&TypeMinorMask {
			return types.NewData(p), nil
		}
	case TypeNumber:
		return decodeNumber(rec)
	case TypeDate:
		if rec.Type == TagDate {
			if len(p) != DateSize {
				return types.Value{}, malformed(rec.Offset, rec.Type, fmt.Sprintf("date payload %d bytes", len(p)))
			}
			secs, err := buf.NewCursor(p).F64BE(0)
			if err != nil {
				return types.Value{}, recordErr(rec.Offset, rec.Type, "date", err)
			}
			if math.IsNaN(secs) || math.IsInf(secs, 0) {
				return types.Value{}, malformed(rec.Offset, rec.Type, "date is not finite")
			}
			return types.NewDate(secs), nil
		}
	case TypeBool:
		switch rec.Type {
		case TagFalse:
			return types.NewBool(false), nil
		case TagTrue:
			return types.NewBool(true), nil
		}
	case TypeUUID:
		if rec.Type == TagUUID {
			if len(p) != UUIDSize {
				return types.Value{}, malformed(rec.Offset, rec.Type, fmt.Sprintf("uuid payload %d bytes", len(p)))
			}
			id, err := uuid.FromBytes(p)
			if err != nil {
				return types.Value{}, recordErr(rec.Offset, rec.Type, "uuid", err)
			}
			return types.NewUUID(id), nil
		}
	case TypeURL:
		if rec.Type == TagURL {
			s, err := d.text(rec)
			if err != nil {
				return types.Value{}, err
			}
			return types.NewURL(s), nil
		}
	case TypeNull:
		return types.NewNull(), nil
	}
	return types.NewUnrecognized(rec.Type, p), nil
}

func (d *Decoder) text(rec Record) (string, error) {
	s, err := buf.NewCursor(rec.Payload).String(0, len(rec.Payload))
	if err != nil {
		return "", recordErr(rec.Offset, rec.Type, "text", err)
	}
	return s, nil
}

func (d *Decoder) decodeString(rec Record) (types.Value, error) {
	s, err := d.text(rec)
	if err != nil {
		return types.Value{}, err
	}
	return types.NewString(s), nil
}

// numberWidth returns the payload width of a CFNumber subtype and whether it
// holds a floating point value.
func numberWidth(sub uint32) (width int, float bool, ok bool) {
	switch sub {
	case NumberSInt8, NumberChar:
		return 1, false, true
	case NumberSInt16, NumberShort:
		return 2, false, true
	case NumberSInt32, NumberInt:
		return 4, false, true
	case NumberSInt64, NumberLong, NumberLongLong, NumberCFIndex, NumberNSInteger:
		return 8, false, true
	case NumberFloat32, NumberFloat:
		return 4, true, true
	case NumberFloat64, NumberDouble, NumberCGFloat:
		return 8, true, true
	}
	return 0, false, false
}

func decodeNumber(rec Record) (types.Value, error) {
	width, float, ok := numberWidth(rec.Subtype())
	if !ok {
		return types.NewUnrecognized(rec.Type, rec.Payload), nil
	}
	if len(rec.Payload) != width {
		return types.Value{}, malformed(rec.Offset, rec.Type,
			fmt.Sprintf("number payload %d bytes, want %d", len(rec.Payload), width))
	}
	c := buf.NewCursor(rec.Payload)
	var (
		v   types.Value
		err error
	)
	switch {
	case float && width == 4:
		var f float32
		f, err = c.F32(0)
		v = types.NewFloat(float64(f))
	case float:
		var f float64
		f, err = c.F64(0)
		v = types.NewFloat(f)
	case width == 1:
		var u uint8
		u, err = c.U8(0)
		v = types.NewInt(int64(int8(u)))
	case width == 2:
		var u uint16
		u, err = c.U16(0)
		v = types.NewInt(int64(int16(u)))
	case width == 4:
		var u uint32
		u, err = c.U32(0)
		v = types.NewInt(int64(int32(u)))
	default:
		var u uint64
		u, err = c.U64(0)
		v = types.NewInt(int64(u))
	}
	if err != nil {
		return types.Value{}, recordErr(rec.Offset, rec.Type, "number", err)
	}
	return v, nil
}

func (d *Decoder) elementCount(rec Record, size int) (int, error) {
	if len(rec.Payload)%size != 0 {
		return 0, malformed(rec.Offset, rec.Type,
			fmt.Sprintf("payload %d bytes is not a multiple of %d", len(rec.Payload), size))
	}
	n := len(rec.Payload) / size
	if n > d.limits.MaxElements {
		return 0, recordErr(rec.Offset, rec.Type, fmt.Sprintf("%d elements", n), ErrLimitExceeded)
	}
	return n, nil
}

func (d *Decoder) decodeArray(rec Record, depth int) (types.Value, int, error) {
	n, err := d.elementCount(rec, ArrayEntrySize)
	if err != nil {
		return types.Value{}, 0, err
	}
	elems := make([]types.Value, 0, n)
	height := 0
	for i := 0; i < n; i++ {
		off := ReadU32(rec.Payload, i*ArrayEntrySize)
		v, h, err := d.decode(off, depth+1)
		if err != nil {
			return types.Value{}, 0, recordErr(rec.Offset, rec.Type, fmt.Sprintf("element %d", i), err)
		}
		height = max(height, h+1)
		elems = append(elems, v)
	}
	return types.NewArray(elems), height, nil
}

func (d *Decoder) decodeDict(rec Record, depth int) (types.Value, int, error) {
	n, err := d.elementCount(rec, DictEntrySize)
	if err != nil {
		return types.Value{}, 0, err
	}
	pairs := make([]types.Pair, 0, n)
	height := 0
	for i := 0; i < n; i++ {
		koff := ReadU32(rec.Payload, i*DictEntrySize)
		voff := ReadU32(rec.Payload, i*DictEntrySize+4)
		k, kh, err := d.decode(koff, depth+1)
		if err != nil {
			return types.Value{}, 0, recordErr(rec.Offset, rec.Type, fmt.Sprintf("key %d", i), err)
		}
		v, vh, err := d.decode(voff, depth+1)
		if err != nil {
			return types.Value{}, 0, recordErr(rec.Offset, rec.Type, fmt.Sprintf("value %d", i), err)
		}
		height = max(height, kh+1, vh+1)
		pairs = append(pairs, types.Pair{Key: k, Value: v})
	}
	return types.NewDict(pairs), height, nil
}

func (d *Decoder) decodeRelativeURL(rec Record, depth int) (types.Value, int, error) {
	if len(rec.Payload) != RelativeURLSize {
		return types.Value{}, 0, malformed(rec.Offset, rec.Type,
			fmt.Sprintf("relative url payload %d bytes", len(rec.Payload)))
	}
	base, bh, err := d.decode(ReadU32(rec.Payload, 0), depth+1)
	if err != nil {
		return types.Value{}, 0, recordErr(rec.Offset, rec.Type, "base url", err)
	}
	relv, rh, err := d.decode(ReadU32(rec.Payload, 4), depth+1)
	if err != nil {
		return types.Value{}, 0, recordErr(rec.Offset, rec.Type, "relative path", err)
	}
	rel, ok := relv.AsString()
	if !ok {
		return types.Value{}, 0, malformed(rec.Offset, rec.Type, "relative path is "+relv.Kind().String())
	}
	return types.NewRelativeURL(base, rel), max(bh, rh) + 1, nil
}
