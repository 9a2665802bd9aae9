package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLimitPresets(t *testing.T) {
	d := DefaultLimits()
	assert.Equal(t, 32, d.MaxDepth)
	assert.Equal(t, 64, d.MaxTOCBlocks)
	assert.Equal(t, 4096, d.MaxTOCEntries)
	assert.Equal(t, 16<<20, d.MaxRecordSize)
	assert.Equal(t, 65536, d.MaxElements)

	s := StrictLimits()
	r := RelaxedLimits()
	assert.Less(t, s.MaxDepth, d.MaxDepth)
	assert.Less(t, s.MaxRecordSize, d.MaxRecordSize)
	assert.Greater(t, r.MaxDepth, d.MaxDepth)
	assert.Greater(t, r.MaxElements, d.MaxElements)
}

func TestLimitsWithDefaults(t *testing.T) {
	assert.Equal(t, DefaultLimits(), Limits{}.WithDefaults())

	l := Limits{MaxDepth: 3, MaxElements: -1}.WithDefaults()
	assert.Equal(t, 3, l.MaxDepth)
	assert.Equal(t, DefaultMaxElements, l.MaxElements)
	assert.Equal(t, DefaultMaxTOCBlocks, l.MaxTOCBlocks)
}
