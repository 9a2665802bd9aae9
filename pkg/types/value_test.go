package types

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValueAccessorsMatchKind(t *testing.T) {
	v := NewInt(-5)
	_, ok := v.AsString()
	assert.False(t, ok)
	_, ok = v.AsUint()
	assert.False(t, ok, "negative ints are not unsigned")
	n, ok := v.AsInt()
	require.True(t, ok)
	assert.Equal(t, int64(-5), n)

	u, ok := NewInt(42).AsUint()
	require.True(t, ok)
	assert.Equal(t, uint64(42), u)

	_, ok = NewString("x").AsInt()
	assert.False(t, ok)
	_, ok = NewBool(true).AsFloat()
	assert.False(t, ok)
	assert.False(t, Value{}.IsValid())
	assert.True(t, NewNull().IsNull())
}

func TestValueDataIsCopied(t *testing.T) {
	src := []byte{1, 2, 3}
	v := NewData(src)
	src[0] = 9

	got, ok := v.AsBytes()
	require.True(t, ok)
	assert.Equal(t, []byte{1, 2, 3}, got)

	got[1] = 9
	again, _ := v.AsBytes()
	assert.Equal(t, []byte{1, 2, 3}, again)
	assert.Equal(t, 3, v.Len())
}

func TestValueContainers(t *testing.T) {
	arr := NewArray([]Value{NewString("a"), NewInt(1)})
	elems, ok := arr.Array()
	require.True(t, ok)
	require.Len(t, elems, 2)
	elems[0] = NewNull()
	again, _ := arr.Array()
	assert.Equal(t, KindString, again[0].Kind())

	dict := NewDict([]Pair{
		{Key: NewString("kind"), Value: NewString("file")},
		{Key: NewInt(3), Value: NewBool(true)},
	})
	v, ok := dict.Lookup("kind")
	require.True(t, ok)
	s, _ := v.AsString()
	assert.Equal(t, "file", s)
	_, ok = dict.Lookup("missing")
	assert.False(t, ok)
	_, ok = arr.Lookup("kind")
	assert.False(t, ok)
	assert.Equal(t, 2, dict.Len())
}

func TestValueURL(t *testing.T) {
	abs := NewURL("file:///Users/")
	s, ok := abs.AsURL()
	require.True(t, ok)
	assert.Equal(t, "file:///Users/", s)

	rel := NewRelativeURL(abs, "alice/Documents/")
	s, ok = rel.AsURL()
	require.True(t, ok)
	assert.Equal(t, "file:///Users/alice/Documents/", s)

	str, ok := rel.AsString()
	require.True(t, ok)
	assert.Equal(t, s, str)

	// A base that is not text leaves the relative part unresolved.
	odd := NewRelativeURL(NewInt(1), "x")
	s, _ = odd.AsURL()
	assert.Equal(t, "x", s)
}

func TestValueDate(t *testing.T) {
	v := NewDate(0)
	secs, ok := v.AsDate()
	require.True(t, ok)
	assert.Equal(t, 0.0, secs)
	tm, ok := v.AsTime()
	require.True(t, ok)
	assert.True(t, MacEpoch.Equal(tm))
}

func TestValueOriginAndString(t *testing.T) {
	id := uuid.MustParse("96fb41c0-6ce9-4da2-8435-35bc19c735a3")
	v := NewUUID(id).WithOrigin(0x40, 0x801)
	assert.Equal(t, uint32(0x40), v.Offset())
	assert.Equal(t, uint32(0x801), v.Tag())
	assert.Equal(t, "96FB41C0-6CE9-4DA2-8435-35BC19C735A3", v.String())

	got, ok := v.AsUUID()
	require.True(t, ok)
	assert.Equal(t, id, got)

	un := NewUnrecognized(0x0BEE, []byte{0xca, 0xfe})
	assert.Equal(t, "unrecognized(0x0bee, 0xcafe)", un.String())
	assert.Equal(t, `["a", 1, true, null]`,
		NewArray([]Value{NewString("a"), NewInt(1), NewBool(true), NewNull()}).String())
	assert.Equal(t, "<invalid>", Value{}.String())
}
