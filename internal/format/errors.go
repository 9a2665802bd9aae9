package format

import "github.com/joshuapare/bookmarkkit/pkg/types"

// Sentinels are shared with pkg/types so callers can match them without
// importing this package.
var (
	ErrInvalidMagic    = types.ErrInvalidMagic
	ErrTruncatedHeader = types.ErrTruncatedHeader
	ErrOutOfBounds     = types.ErrOutOfBounds
	ErrCyclicTOC       = types.ErrCyclicTOC
	ErrTooDeeplyNested = types.ErrTooDeeplyNested
	ErrMalformedRecord = types.ErrMalformedRecord
	ErrLimitExceeded   = types.ErrLimitExceeded
	ErrDuplicateKey    = types.ErrDuplicateKey
)

func malformed(off, tag uint32, reason string) error {
	return &types.RecordError{Offset: off, Type: tag, Reason: reason}
}

func recordErr(off, tag uint32, reason string, cause error) error {
	return &types.RecordError{Offset: off, Type: tag, Reason: reason, Err: cause}
}
