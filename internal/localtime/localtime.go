package localtime

import (
	"errors"
	"time"
)

// Location is the fixed UTC+05:30 offset used for every wall-clock
// comparison in the system. A fixed zone, not a named zone: the window
// math must never shift with DST rules.
var Location = time.FixedZone("UTC+05:30", 5*3600+30*60)

const (
	// Layout is fixed-width and zero-padded, so formatted timestamps
	// order lexicographically the same way the underlying instants do.
	Layout    = "2006-01-02 15:04:05"
	DayLayout = "2006-01-02"
)

var ErrInvalidTimestamp = errors.New("invalid timestamp")

// ToLocalOffset converts an absolute instant to the local-offset
// wall-clock string. The zero instant means the transport never carried
// a date and is reported as invalid.
func ToLocalOffset(t time.Time) (string, error) {
	if t.IsZero() {
		return "", ErrInvalidTimestamp
	}
	return t.In(Location).Format(Layout), nil
}

// Day returns the local calendar day for the given instant.
func Day(t time.Time) string {
	return t.In(Location).Format(DayLayout)
}

// Window returns the admission window for the given "now": from
// yesterday 19:30:00 up to (but excluding) today 19:00:00, local offset.
// The end is earlier in clock-time than the start, so the window spans
// midnight and covers 23.5 hours, not 24.
func Window(now time.Time) (start, end string) {
	local := now.In(Location)
	today := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, Location)
	yesterday := today.AddDate(0, 0, -1)

	start = yesterday.Format(DayLayout) + " 19:30:00"
	end = today.Format(DayLayout) + " 19:00:00"
	return start, end
}
