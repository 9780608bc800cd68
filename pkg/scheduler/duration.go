package scheduler

import (
	"math"
	"time"
)

const (
	dateLayout  = "2006-01-02"
	clockLayout = "2006-01-02 15:04"
)

// ShiftHours computes the working hours between two clock times on the
// given date, rounded to two decimals. When end is at or before start the
// shift is treated as crossing midnight and a day is added before
// subtracting. Unparsable input yields 0; callers must treat 0 or
// anything above 16 as an invalid shift.
func ShiftHours(date, start, end string) float64 {
	startAt, err := time.Parse(clockLayout, date+" "+start)
	if err != nil {
		return 0
	}
	endAt, err := time.Parse(clockLayout, date+" "+end)
	if err != nil {
		return 0
	}
	if !endAt.After(startAt) {
		endAt = endAt.Add(24 * time.Hour)
	}
	return math.Round(endAt.Sub(startAt).Hours()*100) / 100
}
