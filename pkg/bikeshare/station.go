package bikeshare

import "fmt"

// Station is a dock location from the station feed. The traffic fields are
// derived and get overwritten every time traffic is recomputed.
type Station struct {
	ShortName string  `json:"short_name"`
	StationID string  `json:"station_id,omitempty"`
	Name      string  `json:"name,omitempty"`
	Capacity  int     `json:"capacity,omitempty"`
	Lon       float64 `json:"lon"`
	Lat       float64 `json:"lat"`

	Arrivals     int `json:"arrivals"`
	Departures   int `json:"departures"`
	TotalTraffic int `json:"totalTraffic"`
}

// DepartureRatio is departures / totalTraffic, 0 for a station with no traffic.
func (s *Station) DepartureRatio() float64 {
	if s.TotalTraffic == 0 {
		return 0
	}

	return float64(s.Departures) / float64(s.TotalTraffic)
}

func (s *Station) ResetTraffic() {
	s.Arrivals = 0
	s.Departures = 0
	s.TotalTraffic = 0
}

func (s *Station) Tooltip() string {
	return fmt.Sprintf("%d trips (%d departures, %d arrivals)", s.TotalTraffic, s.Departures, s.Arrivals)
}
