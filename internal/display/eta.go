package display

import (
	"fmt"
	"time"
)

// now is the clock used by MinutesFromNow. Tests replace it.
var now = time.Now

// Minutes returns the whole minutes between now and a departure given in
// milliseconds since the epoch. Both instants are reduced to whole seconds first
// (the millisecond value truncates), then the difference is floored, so a
// departure 30 seconds in the past yields -1.
func Minutes(departureMs int64, now time.Time) int64 {
	diff := departureMs/1000 - now.Unix()
	m := diff / 60
	if diff%60 != 0 && diff < 0 {
		m--
	}
	return m
}

// MinutesFromNow is Minutes against the current time, sampled on every call
func MinutesFromNow(departureMs int64) int64 {
	return Minutes(departureMs, now())
}

// ETA formats the minutes until departure as "<N> min"
func ETA(departureMs int64) string {
	return fmt.Sprintf("%d min", MinutesFromNow(departureMs))
}
