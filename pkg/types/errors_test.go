package types

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrKindOf(t *testing.T) {
	cases := []struct {
		err  error
		want ErrKind
	}{
		{ErrInvalidMagic, ErrKindFormat},
		{fmt.Errorf("header: %w", ErrTruncatedHeader), ErrKindTruncated},
		{&BoundsError{Offset: 8, Length: 4, Size: 10}, ErrKindBounds},
		{&RecordError{Offset: 4, Type: 0x101, Reason: "text"}, ErrKindCorrupt},
		{&RecordError{Reason: "element 0", Err: ErrTooDeeplyNested}, ErrKindLimit},
		{ErrTypeMismatch, ErrKindType},
		{errors.New("plain"), ErrKindUnknown},
		{nil, ErrKindUnknown},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, KindOf(tc.err), "%v", tc.err)
	}
}

func TestBoundsError(t *testing.T) {
	err := fmt.Errorf("toc: %w", &BoundsError{Offset: 100, Length: 20, Size: 64})
	require.ErrorIs(t, err, ErrOutOfBounds)

	var be *BoundsError
	require.ErrorAs(t, err, &be)
	assert.Equal(t, 100, be.Offset)
	assert.Contains(t, err.Error(), "offset=100 len=20 size=64")
}

func TestRecordError(t *testing.T) {
	plain := &RecordError{Offset: 0x20, Type: 0x303, Reason: "short payload"}
	require.ErrorIs(t, plain, ErrMalformedRecord)
	assert.Equal(t, "record 0x20 (type 0x0303): short payload: bookmark: malformed record", plain.Error())

	nested := &RecordError{Offset: 0x40, Type: 0x601, Reason: "element 2",
		Err: &BoundsError{Offset: 900, Length: 8, Size: 700}}
	require.ErrorIs(t, nested, ErrOutOfBounds)
	assert.NotErrorIs(t, nested, ErrMalformedRecord)
}

func TestErrorWrapsCause(t *testing.T) {
	cause := errors.New("disk on fire")
	err := &Error{Kind: ErrKindCorrupt, Msg: "bookmark: broken", Err: cause}
	assert.Equal(t, "bookmark: broken: disk on fire", err.Error())
	assert.ErrorIs(t, err, cause)

	var nilErr *Error
	assert.Equal(t, "<nil>", nilErr.Error())
	assert.Equal(t, "type", ErrKindType.String())
	assert.Equal(t, "unknown", ErrKind(99).String())
}
