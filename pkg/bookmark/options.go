package bookmark

import (
	"io"
	"log/slog"

	"github.com/joshuapare/bookmarkkit/internal/format"
	"github.com/joshuapare/bookmarkkit/pkg/types"
)

// Re-exported types for convenience.
type (
	Key        = types.Key
	Value      = types.Value
	Limits     = types.Limits
	Diagnostic = types.Diagnostic
)

// DuplicatePolicy decides what happens when a key appears more than once in
// the table of contents.
type DuplicatePolicy = format.DuplicatePolicy

// Duplicate key policies.
const (
	DuplicateLastWins  = format.DuplicateLastWins
	DuplicateFirstWins = format.DuplicateFirstWins
	DuplicateReject    = format.DuplicateReject
)

// Errors returned (wrapped) by Parse. Use errors.Is to match them.
var (
	ErrInvalidMagic    = types.ErrInvalidMagic
	ErrTruncatedHeader = types.ErrTruncatedHeader
	ErrOutOfBounds     = types.ErrOutOfBounds
	ErrCyclicTOC       = types.ErrCyclicTOC
	ErrTooDeeplyNested = types.ErrTooDeeplyNested
	ErrMalformedRecord = types.ErrMalformedRecord
	ErrLimitExceeded   = types.ErrLimitExceeded
	ErrDuplicateKey    = types.ErrDuplicateKey
	ErrTypeMismatch    = types.ErrTypeMismatch
)

// Options controls decoding.
type Options struct {
	// Limits bounds the work done on hostile input. Zero fields fall back
	// to types.DefaultLimits().
	Limits Limits

	// Tolerant turns a top-level record outside the buffer into a
	// diagnostic instead of a fatal error.
	Tolerant bool

	// Duplicates selects the duplicate key policy.
	// Default: DuplicateLastWins
	Duplicates DuplicatePolicy

	// StrictTypes fails the decode with ErrTypeMismatch when a well-known
	// key holds a value of the wrong type. By default the named field is
	// treated as absent and a warning is recorded.
	StrictTypes bool

	// NormalizeUnicode returns names (path components, volume and file
	// names, custom key names) in Unicode NFC. Bookmarks written on HFS+
	// volumes store decomposed names.
	NormalizeUnicode bool

	// Logger receives recovered faults at Warn and structure summaries at
	// Debug. If nil, output is discarded.
	Logger *slog.Logger
}

// DefaultOptions returns the options used by Parse.
func DefaultOptions() Options {
	return Options{
		Limits:     types.DefaultLimits(),
		Duplicates: DuplicateLastWins,
	}
}

func (o Options) withDefaults() Options {
	o.Limits = o.Limits.WithDefaults()
	if o.Logger == nil {
		o.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return o
}
