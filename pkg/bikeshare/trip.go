package bikeshare

import "time"

// Trip is a single ride from the trip log. Trips are never modified once
// they have been loaded.
type Trip struct {
	RideID     string
	BikeType   string
	MemberType string

	StartStationID string
	EndStationID   string

	StartedAt time.Time
	EndedAt   time.Time
}

func (t *Trip) Duration() time.Duration {
	return t.EndedAt.Sub(t.StartedAt)
}
