package traffic

import (
	"time"

	"github.com/bikeflow/bikeflow/pkg/bikeshare"
)

var day = time.Date(2024, 3, 12, 0, 0, 0, 0, time.UTC)

func at(minute int) time.Time {
	return day.Add(time.Duration(minute) * time.Minute).Add(17 * time.Second)
}

func trip(rideID string, start string, end string, startedMinute int, endedMinute int) *bikeshare.Trip {
	return &bikeshare.Trip{
		RideID:         rideID,
		StartStationID: start,
		EndStationID:   end,
		StartedAt:      at(startedMinute),
		EndedAt:        at(endedMinute),
	}
}

func stations(shortNames ...string) []*bikeshare.Station {
	list := make([]*bikeshare.Station, 0, len(shortNames))
	for _, shortName := range shortNames {
		list = append(list, &bikeshare.Station{ShortName: shortName})
	}

	return list
}

func rideIDs(trips []*bikeshare.Trip) []string {
	ids := make([]string, 0, len(trips))
	for _, trip := range trips {
		ids = append(ids, trip.RideID)
	}

	return ids
}

func oneTripPerMinute() *Buckets {
	var buckets Buckets
	for minute := range buckets {
		buckets[minute] = []*bikeshare.Trip{trip("", "A", "B", minute, minute)}
	}

	return &buckets
}

// scenarioTrips is the three trip log used throughout the tests:
// T1 A->B 100->200, T2 A->A 101->102, T3 B->A 700->705.
func scenarioTrips() []*bikeshare.Trip {
	return []*bikeshare.Trip{
		trip("T1", "A", "B", 100, 200),
		trip("T2", "A", "A", 101, 102),
		trip("T3", "B", "A", 700, 705),
	}
}
