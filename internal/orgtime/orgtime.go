// Package orgtime centralizes date and time handling in the organizational
// timezone. All calendar computations (report dates, reminder triggers,
// trailing windows) go through this package regardless of host locale.
package orgtime

import "time"

// Zone is the fixed organizational timezone (UTC-3).
var Zone = time.FixedZone("UTC-3", -3*60*60)

// DateFormat is the canonical calendar-date layout used in storage and APIs.
const DateFormat = "2006-01-02"

// Now returns the current time in the organizational timezone.
func Now() time.Time {
	return time.Now().In(Zone)
}

// In converts t to the organizational timezone.
func In(t time.Time) time.Time {
	return t.In(Zone)
}

// DateOf returns the calendar date of t in the organizational timezone.
func DateOf(t time.Time) string {
	return t.In(Zone).Format(DateFormat)
}

// Today returns today's calendar date in the organizational timezone.
func Today() string {
	return DateOf(Now())
}

// Yesterday returns the previous calendar day relative to now.
func Yesterday() string {
	return DateOf(Now().AddDate(0, 0, -1))
}

// ParseDate parses a YYYY-MM-DD string as midnight in the organizational
// timezone.
func ParseDate(s string) (time.Time, error) {
	return time.ParseInLocation(DateFormat, s, Zone)
}

// IsWeekend reports whether the given date falls on a Saturday or Sunday.
func IsWeekend(t time.Time) bool {
	wd := t.In(Zone).Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

// PreviousWorkday returns the calendar date of the last weekday strictly
// before t, skipping Saturday and Sunday. A Monday therefore maps to the
// preceding Friday.
func PreviousWorkday(t time.Time) string {
	d := t.In(Zone).AddDate(0, 0, -1)
	for IsWeekend(d) {
		d = d.AddDate(0, 0, -1)
	}
	return d.Format(DateFormat)
}
