package types

import (
	"math"
	"time"
)

// MacEpoch is the reference date of Core Foundation absolute times.
var MacEpoch = time.Date(2001, time.January, 1, 0, 0, 0, 0, time.UTC)

const (
	macEpochUnix = 978307200 // MacEpoch in Unix seconds
	// maxMacSeconds keeps conversions inside time.Time's nanosecond range.
	maxMacSeconds = 1 << 33
)

// MacTime converts seconds since MacEpoch to a UTC time.Time. It reports false
// for NaN, infinities and values too far from the epoch to represent.
func MacTime(secs float64) (time.Time, bool) {
	if math.IsNaN(secs) || math.IsInf(secs, 0) || math.Abs(secs) > maxMacSeconds {
		return time.Time{}, false
	}
	whole := math.Floor(secs)
	nsec := int64(math.Round((secs - whole) * float64(time.Second)))
	return time.Unix(macEpochUnix+int64(whole), nsec).UTC(), true
}

// MacSeconds converts t to seconds since MacEpoch.
func MacSeconds(t time.Time) float64 {
	return float64(t.Unix()-macEpochUnix) + float64(t.Nanosecond())/float64(time.Second)
}
