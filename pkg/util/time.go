package util

import (
	"time"

	_ "time/tzdata"
)

const MinutesPerDay = 24 * 60

const defaultTimezone = "America/New_York"

// MinuteOfDay is hours*60+minutes of t in its own location, the date is dropped.
func MinuteOfDay(t time.Time) int {
	return t.Hour()*60 + t.Minute()
}

// FormatMinuteOfDay renders a minute-of-day as a 12 hour clock label, eg. "5:30 PM".
func FormatMinuteOfDay(minute int) string {
	return time.Date(0, 1, 1, 0, minute, 0, 0, time.UTC).Format("3:04 PM")
}

// LoadTimezone resolves BIKEFLOW_TIMEZONE, the zone trip timestamps are read in.
func LoadTimezone() (*time.Location, error) {
	return time.LoadLocation(GetEnvironmentVariable("BIKEFLOW_TIMEZONE", defaultTimezone))
}
