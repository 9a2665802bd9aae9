package types

import (
	"encoding/hex"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Kind is the decoded variant held by a Value.
type Kind uint8

const (
	KindInvalid      Kind = iota // zero Value
	KindString                   // UTF-8 text
	KindData                     // opaque bytes
	KindInt                      // signed integer (every CFNumber integer subtype)
	KindFloat                    // float32/float64 numbers
	KindDate                     // seconds since MacEpoch
	KindBool                     // boolean
	KindArray                    // ordered elements
	KindDict                     // key/value pairs
	KindUUID                     // 16-byte identifier
	KindURL                      // absolute or relative URL
	KindNull                     // explicit null
	KindUnrecognized             // unknown type tag, raw payload preserved
)

func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindData:
		return "data"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindDate:
		return "date"
	case KindBool:
		return "bool"
	case KindArray:
		return "array"
	case KindDict:
		return "dict"
	case KindUUID:
		return "uuid"
	case KindURL:
		return "url"
	case KindNull:
		return "null"
	case KindUnrecognized:
		return "unrecognized"
	default:
		return "invalid"
	}
}

// Value is an immutable decoded record. Slices returned by accessors are
// copies; the Value never aliases the buffer it was decoded from.
type Value struct {
	kind   Kind
	tag    uint32 // raw type tag from the record header
	offset uint32 // record offset within the data section

	i     int64
	f     float64
	b     bool
	s     string
	raw   []byte
	id    uuid.UUID
	elems []Value
	pairs []Pair
	base  *Value // relative URL base
}

// Pair is one dictionary entry.
type Pair struct {
	Key   Value
	Value Value
}

// NewString returns a string Value.
func NewString(s string) Value { return Value{kind: KindString, s: s} }

// NewData returns a data Value holding a copy of b.
func NewData(b []byte) Value { return Value{kind: KindData, raw: clone(b)} }

// NewInt returns an integer Value.
func NewInt(v int64) Value { return Value{kind: KindInt, i: v} }

// NewFloat returns a floating point Value.
func NewFloat(v float64) Value { return Value{kind: KindFloat, f: v} }

// NewDate returns a date Value from seconds since MacEpoch.
func NewDate(secs float64) Value { return Value{kind: KindDate, f: secs} }

// NewBool returns a boolean Value.
func NewBool(v bool) Value { return Value{kind: KindBool, b: v} }

// NewArray returns an array Value. The slice is retained, not copied.
func NewArray(elems []Value) Value { return Value{kind: KindArray, elems: elems} }

// NewDict returns a dictionary Value. The slice is retained, not copied.
func NewDict(pairs []Pair) Value { return Value{kind: KindDict, pairs: pairs} }

// NewUUID returns a UUID Value.
func NewUUID(id uuid.UUID) Value { return Value{kind: KindUUID, id: id} }

// NewURL returns an absolute URL Value.
func NewURL(s string) Value { return Value{kind: KindURL, s: s} }

// NewRelativeURL returns a URL Value relative to base.
func NewRelativeURL(base Value, rel string) Value {
	return Value{kind: KindURL, s: rel, base: &base}
}

// NewNull returns a null Value.
func NewNull() Value { return Value{kind: KindNull} }

// NewUnrecognized preserves the payload of a record with an unknown type tag.
func NewUnrecognized(tag uint32, raw []byte) Value {
	return Value{kind: KindUnrecognized, tag: tag, raw: clone(raw)}
}

// WithOrigin returns v annotated with the record offset and type tag it was
// decoded from.
func (v Value) WithOrigin(offset, tag uint32) Value {
	v.offset = offset
	v.tag = tag
	return v
}

// Kind returns the decoded variant.
func (v Value) Kind() Kind { return v.kind }

// Tag returns the raw type tag of the source record.
func (v Value) Tag() uint32 { return v.tag }

// Offset returns the data-section offset of the source record.
func (v Value) Offset() uint32 { return v.offset }

// IsValid reports whether v holds a decoded value.
func (v Value) IsValid() bool { return v.kind != KindInvalid }

// IsNull reports whether v is an explicit null.
func (v Value) IsNull() bool { return v.kind == KindNull }

// AsString returns string values and absolute URL text.
func (v Value) AsString() (string, bool) {
	switch v.kind {
	case KindString:
		return v.s, true
	case KindURL:
		return v.AsURL()
	default:
		return "", false
	}
}

// AsBytes returns a copy of data or unrecognized payloads.
func (v Value) AsBytes() ([]byte, bool) {
	if v.kind != KindData && v.kind != KindUnrecognized {
		return nil, false
	}
	return clone(v.raw), true
}

// AsInt returns integer values.
func (v Value) AsInt() (int64, bool) {
	if v.kind != KindInt {
		return 0, false
	}
	return v.i, true
}

// AsUint returns non-negative integer values as uint64.
func (v Value) AsUint() (uint64, bool) {
	if v.kind != KindInt || v.i < 0 {
		return 0, false
	}
	return uint64(v.i), true
}

// AsFloat returns floating point values.
func (v Value) AsFloat() (float64, bool) {
	if v.kind != KindFloat {
		return 0, false
	}
	return v.f, true
}

// AsBool returns boolean values.
func (v Value) AsBool() (bool, bool) {
	if v.kind != KindBool {
		return false, false
	}
	return v.b, true
}

// AsDate returns the raw seconds since MacEpoch of a date value.
func (v Value) AsDate() (float64, bool) {
	if v.kind != KindDate {
		return 0, false
	}
	return v.f, true
}

// AsTime returns a date value as an absolute UTC time.
func (v Value) AsTime() (time.Time, bool) {
	if v.kind != KindDate {
		return time.Time{}, false
	}
	return MacTime(v.f)
}

// AsUUID returns UUID values.
func (v Value) AsUUID() (uuid.UUID, bool) {
	if v.kind != KindUUID {
		return uuid.Nil, false
	}
	return v.id, true
}

// AsURL returns the URL text. Relative URLs are resolved against their base;
// if resolution fails the relative text is returned unchanged.
func (v Value) AsURL() (string, bool) {
	if v.kind != KindURL {
		return "", false
	}
	if v.base == nil {
		return v.s, true
	}
	baseText, ok := v.base.AsString()
	if !ok {
		return v.s, true
	}
	base, err := url.Parse(baseText)
	if err != nil {
		return v.s, true
	}
	rel, err := url.Parse(v.s)
	if err != nil {
		return v.s, true
	}
	return base.ResolveReference(rel).String(), true
}

// Array returns a copy of the elements of an array value.
func (v Value) Array() ([]Value, bool) {
	if v.kind != KindArray {
		return nil, false
	}
	out := make([]Value, len(v.elems))
	copy(out, v.elems)
	return out, true
}

// Dict returns a copy of the pairs of a dictionary value.
func (v Value) Dict() ([]Pair, bool) {
	if v.kind != KindDict {
		return nil, false
	}
	out := make([]Pair, len(v.pairs))
	copy(out, v.pairs)
	return out, true
}

// Lookup finds the value of a dictionary entry whose key is the string name.
func (v Value) Lookup(name string) (Value, bool) {
	if v.kind != KindDict {
		return Value{}, false
	}
	for _, p := range v.pairs {
		if s, ok := p.Key.AsString(); ok && s == name {
			return p.Value, true
		}
	}
	return Value{}, false
}

// Len returns the element count of arrays and dictionaries, the byte length
// of data, and 0 otherwise.
func (v Value) Len() int {
	switch v.kind {
	case KindArray:
		return len(v.elems)
	case KindDict:
		return len(v.pairs)
	case KindData, KindUnrecognized:
		return len(v.raw)
	case KindString:
		return len(v.s)
	default:
		return 0
	}
}

// String renders v for debugging.
func (v Value) String() string {
	switch v.kind {
	case KindString:
		return fmt.Sprintf("%q", v.s)
	case KindData:
		return "0x" + hex.EncodeToString(v.raw)
	case KindInt:
		return fmt.Sprintf("%d", v.i)
	case KindFloat:
		return fmt.Sprintf("%g", v.f)
	case KindDate:
		if t, ok := MacTime(v.f); ok {
			return t.Format(time.RFC3339Nano)
		}
		return fmt.Sprintf("date(%g)", v.f)
	case KindBool:
		return fmt.Sprintf("%t", v.b)
	case KindArray:
		parts := make([]string, len(v.elems))
		for i, e := range v.elems {
			parts[i] = e.String()
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case KindDict:
		parts := make([]string, len(v.pairs))
		for i, p := range v.pairs {
			parts[i] = p.Key.String() + ": " + p.Value.String()
		}
		return "{" + strings.Join(parts, ", ") + "}"
	case KindUUID:
		return strings.ToUpper(v.id.String())
	case KindURL:
		s, _ := v.AsURL()
		return s
	case KindNull:
		return "null"
	case KindUnrecognized:
		return fmt.Sprintf("unrecognized(0x%04x, 0x%s)", v.tag, hex.EncodeToString(v.raw))
	default:
		return "<invalid>"
	}
}

func clone(b []byte) []byte {
	if b == nil {
		return nil
	}
	out := make([]byte, len(b))
	copy(out, b)
	return out
}
