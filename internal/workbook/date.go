package workbook

import (
	"math"
	"time"
)

const (
	// leapBugSerial is 1900-02-29, a day that does not exist but is
	// counted by the 1900 date system.
	leapBugSerial = 60

	// maxSerialDays is the first serial past 9999-12-31.
	maxSerialDays = 2958466

	secondsPerDay = 86400
)

var (
	epochAfterLeapBug  = time.Date(1899, time.December, 30, 0, 0, 0, 0, time.UTC)
	epochBeforeLeapBug = time.Date(1899, time.December, 31, 0, 0, 0, 0, time.UTC)
)

// SerialToTime converts a serial in the 1900 date system to a UTC time.
// It reports false for negative serials, the phantom 1900-02-29, serials
// with no date part, and dates past 9999-12-31.
func SerialToTime(serial float64) (time.Time, bool) {
	if math.IsNaN(serial) || serial < 0 {
		return time.Time{}, false
	}

	days := math.Floor(serial)
	seconds := math.Round((serial - days) * secondsPerDay)
	if seconds == secondsPerDay {
		days++
		seconds = 0
	}

	switch {
	case days >= maxSerialDays, days < 1, days == leapBugSerial:
		return time.Time{}, false
	case days < leapBugSerial:
		return epochBeforeLeapBug.AddDate(0, 0, int(days)).Add(time.Duration(seconds) * time.Second), true
	default:
		return epochAfterLeapBug.AddDate(0, 0, int(days)).Add(time.Duration(seconds) * time.Second), true
	}
}
