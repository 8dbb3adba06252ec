package utils

import (
	"math"
	"time"
)

// Seconds converts floating point seconds, as found in configuration
// files, to a duration rounded to the nanosecond. Negative values become 0.
func Seconds(secs float64) time.Duration {
	if secs <= 0 || math.IsNaN(secs) {
		return 0
	}
	return time.Duration(math.Round(secs * float64(time.Second)))
}
