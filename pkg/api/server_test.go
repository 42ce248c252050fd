package api

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/bikeflow/bikeflow/pkg/bikeshare"
	"github.com/bikeflow/bikeflow/pkg/traffic"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService() *traffic.Service {
	day := time.Date(2024, 3, 12, 0, 0, 0, 0, time.UTC)
	at := func(minute int) time.Time { return day.Add(time.Duration(minute) * time.Minute) }

	trips := []*bikeshare.Trip{
		{RideID: "T1", StartStationID: "A", EndStationID: "B", StartedAt: at(100), EndedAt: at(200)},
		{RideID: "T2", StartStationID: "A", EndStationID: "A", StartedAt: at(101), EndedAt: at(102)},
		{RideID: "T3", StartStationID: "B", EndStationID: "A", StartedAt: at(700), EndedAt: at(705)},
	}

	stations := []*bikeshare.Station{
		{ShortName: "A", Name: "MIT at Mass Ave", Lon: -71.09, Lat: 42.36},
		{ShortName: "B", Lon: -71.10, Lat: 42.37},
		{ShortName: "C", Lon: -71.11, Lat: 42.38},
	}

	return traffic.NewService("bluebikes-2024-03", traffic.NewEngine(stations, traffic.NewTripIndex(trips), traffic.DefaultWindowMinutes))
}

func get(t *testing.T, path string) (int, map[string]interface{}) {
	app := NewApp(newTestService())

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, path, nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(body, &decoded), string(body))

	return resp.StatusCode, decoded
}

func stationsByName(t *testing.T, body map[string]interface{}) map[string]map[string]interface{} {
	list, ok := body["stations"].([]interface{})
	require.True(t, ok, "stations should be a list")

	byName := map[string]map[string]interface{}{}
	for _, item := range list {
		station := item.(map[string]interface{})
		byName[station["short_name"].(string)] = station
	}

	return byName
}

func TestVersion(t *testing.T) {
	status, body := get(t, "/core/version")

	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "v0.1", body["version"])
}

func TestListStationsNoFilter(t *testing.T) {
	status, body := get(t, "/core/stations")
	require.Equal(t, http.StatusOK, status)

	assert.Equal(t, "any", body["timeFilter"])
	assert.Equal(t, "(any time)", body["label"])

	stations := stationsByName(t, body)
	require.Len(t, stations, 3)

	assert.Equal(t, 2.0, stations["A"]["departures"])
	assert.Equal(t, 2.0, stations["A"]["arrivals"])
	assert.Equal(t, 4.0, stations["A"]["totalTraffic"])
	assert.Equal(t, 25.0, stations["A"]["radius"])
	assert.Equal(t, 0.5, stations["A"]["flow"])
	assert.Equal(t, 0.0, stations["C"]["totalTraffic"])
	assert.Equal(t, 0.0, stations["C"]["radius"])

	// detailed fields are left out of the basic group
	assert.NotContains(t, stations["A"], "tooltip")
	assert.NotContains(t, stations["A"], "name")

	scale := body["radiusScale"].(map[string]interface{})
	assert.Equal(t, []interface{}{0.0, 25.0}, scale["range"])
}

func TestListStationsWindowed(t *testing.T) {
	status, body := get(t, "/core/stations?time=100&group=detailed")
	require.Equal(t, http.StatusOK, status)

	assert.Equal(t, "100", body["timeFilter"])
	assert.Equal(t, "1:40 AM", body["label"])

	stations := stationsByName(t, body)

	assert.Equal(t, 2.0, stations["A"]["departures"])
	assert.Equal(t, 1.0, stations["A"]["arrivals"])
	assert.Equal(t, 3.0, stations["A"]["totalTraffic"])
	assert.Equal(t, "3 trips (2 departures, 1 arrivals)", stations["A"]["tooltip"])
	assert.Equal(t, "MIT at Mass Ave", stations["A"]["name"])
	assert.Equal(t, 50.0, stations["A"]["radius"])
	assert.Equal(t, 1.0, stations["A"]["flow"])

	assert.Equal(t, 0.0, stations["B"]["totalTraffic"])
	assert.Equal(t, 3.0, stations["B"]["radius"])
	assert.Equal(t, 0.0, stations["B"]["departureRatio"])
}

func TestListStationsInvalidTime(t *testing.T) {
	for _, value := range []string{"1440", "-5", "noon"} {
		status, body := get(t, "/core/stations?time="+value)

		assert.Equal(t, http.StatusBadRequest, status, value)
		assert.NotEmpty(t, body["error"], value)
	}
}

func TestListStationsFilterExpression(t *testing.T) {
	status, body := get(t, "/core/stations?filter="+url.QueryEscape("totalTraffic >= 2 && departures < 2"))
	require.Equal(t, http.StatusOK, status)

	stations := stationsByName(t, body)
	assert.Len(t, stations, 1)
	assert.Contains(t, stations, "B")
}

func TestListStationsInvalidFilterExpression(t *testing.T) {
	status, body := get(t, "/core/stations?filter="+url.QueryEscape("totalTraffic >"))

	assert.Equal(t, http.StatusBadRequest, status)
	assert.Contains(t, body["error"], "Invalid filter")
}

func TestListStationsByIDs(t *testing.T) {
	status, body := get(t, "/core/stations?ids=C,A,C")
	require.Equal(t, http.StatusOK, status)

	list := body["stations"].([]interface{})
	require.Len(t, list, 2)
	assert.Equal(t, "C", list[0].(map[string]interface{})["short_name"])
	assert.Equal(t, "A", list[1].(map[string]interface{})["short_name"])

	status, _ = get(t, "/core/stations?ids=A,Z")
	assert.Equal(t, http.StatusNotFound, status)
}

func TestGetStation(t *testing.T) {
	status, body := get(t, "/core/stations/B?time=700&group=detailed")
	require.Equal(t, http.StatusOK, status)

	assert.Equal(t, "B", body["short_name"])
	assert.Equal(t, 1.0, body["departures"])
	assert.Equal(t, 0.0, body["arrivals"])
	assert.Equal(t, 1.0, body["departureRatio"])

	status, body = get(t, "/core/stations/Z")
	assert.Equal(t, http.StatusNotFound, status)
	assert.NotEmpty(t, body["error"])
}

func TestBusiest(t *testing.T) {
	status, body := get(t, "/core/busiest?limit=2")
	require.Equal(t, http.StatusOK, status)

	list := body["stations"].([]interface{})
	require.Len(t, list, 2)
	assert.Equal(t, "A", list[0].(map[string]interface{})["short_name"])
	assert.Equal(t, "B", list[1].(map[string]interface{})["short_name"])
}

func TestWindow(t *testing.T) {
	status, body := get(t, "/core/window?time=30")
	require.Equal(t, http.StatusOK, status)

	assert.Equal(t, true, body["active"])
	assert.Equal(t, 1410.0, body["minMinute"])
	assert.Equal(t, 90.0, body["maxMinute"])
	assert.Equal(t, true, body["wraps"])
	assert.Equal(t, "12:30 AM", body["label"])
	assert.Equal(t, []interface{}{3.0, 50.0}, body["radiusRange"])

	status, body = get(t, "/core/window?time=-1")
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, false, body["active"])
	assert.Equal(t, "(any time)", body["label"])
}

func TestUnknownRoute(t *testing.T) {
	status, body := get(t, "/core/routes")

	assert.Equal(t, http.StatusNotFound, status)
	assert.NotEmpty(t, body["error"])
}
