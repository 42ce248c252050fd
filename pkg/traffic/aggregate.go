package traffic

import (
	"github.com/bikeflow/bikeflow/pkg/bikeshare"
)

// Aggregate counts departures by start station and arrivals by end station
// and writes the counts onto the given stations, which are returned as-is.
// Stations without a matching trip end up with zero traffic.
func Aggregate(stations []*bikeshare.Station, departureTrips []*bikeshare.Trip, arrivalTrips []*bikeshare.Trip) []*bikeshare.Station {
	departures := countBy(departureTrips, func(trip *bikeshare.Trip) string { return trip.StartStationID })
	arrivals := countBy(arrivalTrips, func(trip *bikeshare.Trip) string { return trip.EndStationID })

	for _, station := range stations {
		id := station.ShortName

		station.Arrivals = arrivals[id]
		station.Departures = departures[id]
		station.TotalTraffic = station.Arrivals + station.Departures
	}

	return stations
}

func countBy(trips []*bikeshare.Trip, key func(*bikeshare.Trip) string) map[string]int {
	counts := map[string]int{}

	for _, trip := range trips {
		counts[key(trip)]++
	}

	return counts
}
