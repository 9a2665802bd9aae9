package types

// ============================================================================
// Decode Limits
// ============================================================================
// These bound the work a single decode may perform on attacker-controlled
// input. Every limit is checked before the corresponding allocation or
// recursion happens.

const (
	// DefaultMaxDepth is the nesting ceiling for arrays and dictionaries.
	// Real bookmarks nest at most two levels (path arrays of strings).
	DefaultMaxDepth = 32

	// DefaultMaxTOCBlocks is the step cap on the TOC chain walk.
	DefaultMaxTOCBlocks = 64

	// DefaultMaxTOCEntries caps the entry count of a single TOC block.
	DefaultMaxTOCEntries = 4096

	// DefaultMaxRecordSize caps a single record payload (16 MiB).
	DefaultMaxRecordSize = 16 << 20

	// DefaultMaxElements caps the element count of a single array or
	// dictionary.
	DefaultMaxElements = 1 << 16

	// StrictDivisor derives StrictLimits from the defaults.
	StrictDivisor = 4

	// RelaxedMultiplier derives RelaxedLimits from the defaults.
	RelaxedMultiplier = 4
)

// Limits defines constraints applied while decoding a bookmark.
type Limits struct {
	// MaxDepth is the maximum nesting depth of arrays/dictionaries. A
	// top-level record is depth 0.
	MaxDepth int

	// MaxTOCBlocks is the maximum number of chained TOC blocks.
	MaxTOCBlocks int

	// MaxTOCEntries is the maximum entry count of one TOC block.
	MaxTOCEntries int

	// MaxRecordSize is the maximum declared payload length of a record.
	MaxRecordSize int

	// MaxElements is the maximum element count of an array or dictionary.
	MaxElements int
}

// DefaultLimits returns limits that accept every bookmark observed in the wild.
func DefaultLimits() Limits {
	return Limits{
		MaxDepth:      DefaultMaxDepth,
		MaxTOCBlocks:  DefaultMaxTOCBlocks,
		MaxTOCEntries: DefaultMaxTOCEntries,
		MaxRecordSize: DefaultMaxRecordSize,
		MaxElements:   DefaultMaxElements,
	}
}

// StrictLimits returns conservative limits for untrusted input in constrained
// environments.
func StrictLimits() Limits {
	return Limits{
		MaxDepth:      DefaultMaxDepth / StrictDivisor,
		MaxTOCBlocks:  DefaultMaxTOCBlocks / StrictDivisor,
		MaxTOCEntries: DefaultMaxTOCEntries / StrictDivisor,
		MaxRecordSize: DefaultMaxRecordSize / StrictDivisor,
		MaxElements:   DefaultMaxElements / StrictDivisor,
	}
}

// RelaxedLimits returns permissive limits for unusual, trusted input.
func RelaxedLimits() Limits {
	return Limits{
		MaxDepth:      DefaultMaxDepth * RelaxedMultiplier,
		MaxTOCBlocks:  DefaultMaxTOCBlocks * RelaxedMultiplier,
		MaxTOCEntries: DefaultMaxTOCEntries * RelaxedMultiplier,
		MaxRecordSize: DefaultMaxRecordSize * RelaxedMultiplier,
		MaxElements:   DefaultMaxElements * RelaxedMultiplier,
	}
}

// WithDefaults fills zero (or negative) fields from DefaultLimits.
func (l Limits) WithDefaults() Limits {
	d := DefaultLimits()
	if l.MaxDepth <= 0 {
		l.MaxDepth = d.MaxDepth
	}
	if l.MaxTOCBlocks <= 0 {
		l.MaxTOCBlocks = d.MaxTOCBlocks
	}
	if l.MaxTOCEntries <= 0 {
		l.MaxTOCEntries = d.MaxTOCEntries
	}
	if l.MaxRecordSize <= 0 {
		l.MaxRecordSize = d.MaxRecordSize
	}
	if l.MaxElements <= 0 {
		l.MaxElements = d.MaxElements
	}
	return l
}
