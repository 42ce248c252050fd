package stats

import (
	"context"
	"time"

	"github.com/bikeflow/bikeflow/pkg/traffic"
)

// HourlyTraffic is the station traffic for the window centred on the start
// of one hour of the day.
type HourlyTraffic struct {
	Dataset       string
	Hour          int
	Minute        int
	Label         string
	WindowMinutes int

	Departures int
	Arrivals   int

	Stations []StationTraffic

	RecordedAt time.Time
}

type StationTraffic struct {
	ShortName      string
	Lon            float64
	Lat            float64
	Departures     int
	Arrivals       int
	TotalTraffic   int
	DepartureRatio float64
}

func HourlyProfile(ctx context.Context, service *traffic.Service) ([]HourlyTraffic, error) {
	recordedAt := time.Now()
	profile := make([]HourlyTraffic, 0, 24)

	for hour := 0; hour < 24; hour++ {
		filter, err := traffic.AtMinute(hour * 60)
		if err != nil {
			return nil, err
		}

		snapshot, err := service.Compute(ctx, filter)
		if err != nil {
			return nil, err
		}

		hourly := HourlyTraffic{
			Dataset:       service.DatasetID,
			Hour:          hour,
			Minute:        hour * 60,
			Label:         filter.Label(),
			WindowMinutes: service.Engine().WindowMinutes(),
			Stations:      make([]StationTraffic, 0, len(snapshot.Stations)),
			RecordedAt:    recordedAt,
		}

		for _, station := range snapshot.Stations {
			hourly.Departures += station.Departures
			hourly.Arrivals += station.Arrivals

			hourly.Stations = append(hourly.Stations, StationTraffic{
				ShortName:      station.ShortName,
				Lon:            station.Lon,
				Lat:            station.Lat,
				Departures:     station.Departures,
				Arrivals:       station.Arrivals,
				TotalTraffic:   station.TotalTraffic,
				DepartureRatio: station.DepartureRatio(),
			})
		}

		profile = append(profile, hourly)
	}

	return profile, nil
}
