package bikeshare

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDepartureRatio(t *testing.T) {
	station := Station{ShortName: "A32000", Departures: 3, Arrivals: 1, TotalTraffic: 4}
	assert.Equal(t, 0.75, station.DepartureRatio())

	empty := Station{ShortName: "A32001"}
	assert.Equal(t, 0.0, empty.DepartureRatio())
}

func TestResetTraffic(t *testing.T) {
	station := Station{ShortName: "A32000", Lon: -71.09, Lat: 42.36, Departures: 3, Arrivals: 1, TotalTraffic: 4}
	station.ResetTraffic()

	assert.Equal(t, 0, station.Arrivals)
	assert.Equal(t, 0, station.Departures)
	assert.Equal(t, 0, station.TotalTraffic)
	assert.Equal(t, -71.09, station.Lon)
}

func TestTooltip(t *testing.T) {
	station := Station{Departures: 2, Arrivals: 5, TotalTraffic: 7}
	assert.Equal(t, "7 trips (2 departures, 5 arrivals)", station.Tooltip())
}
