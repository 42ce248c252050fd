package traffic

import (
	"github.com/bikeflow/bikeflow/pkg/bikeshare"
	"github.com/bikeflow/bikeflow/pkg/util"
)

// Buckets holds one ordered slot of trips per minute-of-day.
type Buckets [util.MinutesPerDay][]*bikeshare.Trip

// Len is the number of trips across every bucket.
func (b *Buckets) Len() int {
	total := 0
	for _, bucket := range b {
		total += len(bucket)
	}

	return total
}

// TripIndex partitions the trip log by minute-of-day so a windowed lookup
// only touches the buckets inside the window. Every trip sits in exactly one
// departure bucket (its start minute) and one arrival bucket (its end minute).
type TripIndex struct {
	DeparturesByMinute Buckets
	ArrivalsByMinute   Buckets

	trips int
}

func NewTripIndex(trips []*bikeshare.Trip) *TripIndex {
	index := &TripIndex{}
	index.Ingest(trips)

	return index
}

func (i *TripIndex) Ingest(trips []*bikeshare.Trip) {
	for _, trip := range trips {
		startedMinutes := util.MinuteOfDay(trip.StartedAt)
		i.DeparturesByMinute[startedMinutes] = append(i.DeparturesByMinute[startedMinutes], trip)

		endedMinutes := util.MinuteOfDay(trip.EndedAt)
		i.ArrivalsByMinute[endedMinutes] = append(i.ArrivalsByMinute[endedMinutes], trip)
	}

	i.trips += len(trips)
}

// Len is the number of trips ingested so far.
func (i *TripIndex) Len() int {
	return i.trips
}
