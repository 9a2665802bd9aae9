package types

import (
	"errors"
	"fmt"
)

// -----------------------------------------------------------------------------
// Typed Errors (stable categories for programmatic handling)
// -----------------------------------------------------------------------------

// ErrKind classifies errors so callers can branch on intent rather than text.
type ErrKind int

const (
	ErrKindUnknown   ErrKind = iota // not produced by this module
	ErrKindFormat                   // bad magic / not a bookmark
	ErrKindTruncated                // buffer shorter than a structure requires
	ErrKindBounds                   // offset/length outside the buffer
	ErrKindCorrupt                  // structural corruption (cycles, bad tags, bad lengths)
	ErrKindLimit                    // a configured decode limit was exceeded
	ErrKindType                     // value has a different type than requested
)

func (k ErrKind) String() string {
	switch k {
	case ErrKindFormat:
		return "format"
	case ErrKindTruncated:
		return "truncated"
	case ErrKindBounds:
		return "bounds"
	case ErrKindCorrupt:
		return "corrupt"
	case ErrKindLimit:
		return "limit"
	case ErrKindType:
		return "type"
	default:
		return "unknown"
	}
}

// Error is a typed error with an optional underlying cause.
type Error struct {
	Kind ErrKind
	Msg  string
	Err  error // optional underlying cause
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Err != nil {
		return e.Msg + ": " + e.Err.Error()
	}
	return e.Msg
}

func (e *Error) Unwrap() error { return e.Err }

// Sentinels returned (directly or wrapped) by the decoder.
var (
	// ErrInvalidMagic indicates the blob does not start with "book".
	ErrInvalidMagic = &Error{Kind: ErrKindFormat, Msg: "bookmark: invalid magic"}
	// ErrTruncatedHeader indicates the buffer cannot hold the header it declares.
	ErrTruncatedHeader = &Error{Kind: ErrKindTruncated, Msg: "bookmark: truncated header"}
	// ErrOutOfBounds indicates a read past the end of the buffer.
	ErrOutOfBounds = &Error{Kind: ErrKindBounds, Msg: "bookmark: out of bounds"}
	// ErrCyclicTOC indicates the TOC chain revisits a block.
	ErrCyclicTOC = &Error{Kind: ErrKindCorrupt, Msg: "bookmark: cyclic table of contents"}
	// ErrTooDeeplyNested indicates nested arrays/dictionaries exceed the
	// depth ceiling or reference themselves.
	ErrTooDeeplyNested = &Error{Kind: ErrKindLimit, Msg: "bookmark: record nesting too deep"}
	// ErrMalformedRecord indicates a record whose framing or payload is invalid.
	ErrMalformedRecord = &Error{Kind: ErrKindCorrupt, Msg: "bookmark: malformed record"}
	// ErrLimitExceeded indicates a configured count or size limit was hit.
	ErrLimitExceeded = &Error{Kind: ErrKindLimit, Msg: "bookmark: limit exceeded"}
	// ErrDuplicateKey indicates a repeated TOC key under DuplicateReject.
	ErrDuplicateKey = &Error{Kind: ErrKindCorrupt, Msg: "bookmark: duplicate toc key"}
	// ErrTypeMismatch indicates a value has a different type than requested.
	ErrTypeMismatch = &Error{Kind: ErrKindType, Msg: "bookmark: value has different type"}
)

// BoundsError reports a read of Length bytes at Offset from a buffer of Size bytes.
type BoundsError struct {
	Offset int
	Length int
	Size   int
}

func (e *BoundsError) Error() string {
	return fmt.Sprintf("bookmark: out of bounds: offset=%d len=%d size=%d", e.Offset, e.Length, e.Size)
}

func (e *BoundsError) Unwrap() error { return ErrOutOfBounds }

// RecordError reports a record that could not be decoded. Err defaults to
// ErrMalformedRecord when the record itself is at fault.
type RecordError struct {
	Offset uint32
	Type   uint32
	Reason string
	Err    error
}

func (e *RecordError) Error() string {
	cause := e.Err
	if cause == nil {
		cause = ErrMalformedRecord
	}
	return fmt.Sprintf("record 0x%x (type 0x%04x): %s: %v", e.Offset, e.Type, e.Reason, cause)
}

func (e *RecordError) Unwrap() error {
	if e.Err == nil {
		return ErrMalformedRecord
	}
	return e.Err
}

// KindOf returns the category of err, or ErrKindUnknown when err does not
// wrap a *Error.
func KindOf(err error) ErrKind {
	var te *Error
	if errors.As(err, &te) {
		return te.Kind
	}
	return ErrKindUnknown
}
