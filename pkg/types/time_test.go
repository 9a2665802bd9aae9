package types

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMacTime(t *testing.T) {
	tm, ok := MacTime(0)
	require.True(t, ok)
	assert.Equal(t, time.Date(2001, 1, 1, 0, 0, 0, 0, time.UTC), tm)

	tm, ok = MacTime(667551907)
	require.True(t, ok)
	assert.Equal(t, time.Date(2022, time.February, 26, 7, 5, 7, 0, time.UTC), tm)

	tm, ok = MacTime(-1.5)
	require.True(t, ok)
	assert.Equal(t, time.Date(2000, time.December, 31, 23, 59, 58, 500000000, time.UTC), tm)

	for _, bad := range []float64{math.NaN(), math.Inf(1), math.Inf(-1), 1e300} {
		_, ok := MacTime(bad)
		assert.False(t, ok, "%v", bad)
	}
}

func TestMacSecondsRoundTrip(t *testing.T) {
	want := time.Date(2022, time.June, 17, 0, 1, 40, 74744500, time.UTC)
	got, ok := MacTime(MacSeconds(want))
	require.True(t, ok)
	assert.WithinDuration(t, want, got, time.Microsecond)
}
