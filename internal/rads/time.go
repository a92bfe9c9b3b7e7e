package rads

import (
	"math"
	"time"
)

const secsPerDay = 86400

// TimeBase converts RADS day offsets into seconds relative to a target epoch.
type TimeBase struct {
	Ref   time.Time
	Epoch time.Time
	shift float64
}

// NewTimeBase returns the RADS time base: days since 1858-11-17T00:00:00Z
// (Modified Julian Date) mapped onto seconds since 1970-01-01T00:00:00Z.
// Both epochs are fixed in UTC whatever zone the run formats dates in.
func NewTimeBase() TimeBase {
	ref := time.Date(1858, time.November, 17, 0, 0, 0, 0, time.UTC)
	epoch := time.Date(1970, time.January, 1, 0, 0, 0, 0, time.UTC)
	return TimeBase{
		Ref:   ref,
		Epoch: epoch,
		shift: epoch.Sub(ref).Seconds(),
	}
}

// Seconds converts a day offset from Ref into whole seconds since Epoch,
// rounded to the nearest second (halves away from zero).
func (tb TimeBase) Seconds(days float64) int64 {
	return int64(math.Round(days*secsPerDay - tb.shift))
}
