package stats

import (
	"context"
	"testing"
	"time"

	"github.com/bikeflow/bikeflow/pkg/bikeshare"
	"github.com/bikeflow/bikeflow/pkg/traffic"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

func newService() *traffic.Service {
	day := time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)
	trips := []*bikeshare.Trip{
		{StartStationID: "A", EndStationID: "B", StartedAt: day.Add(8*time.Hour + 10*time.Minute), EndedAt: day.Add(8*time.Hour + 25*time.Minute)},
		{StartStationID: "B", EndStationID: "A", StartedAt: day.Add(17*time.Hour + 30*time.Minute), EndedAt: day.Add(17*time.Hour + 50*time.Minute)},
	}
	stations := []*bikeshare.Station{{ShortName: "A", Lon: -71.09, Lat: 42.36}, {ShortName: "B", Lon: -71.10, Lat: 42.37}}

	return traffic.NewService("bluebikes-2024-03", traffic.NewEngine(stations, traffic.NewTripIndex(trips), traffic.DefaultWindowMinutes))
}

func TestHourlyProfile(t *testing.T) {
	profile, err := HourlyProfile(context.Background(), newService())
	require.NoError(t, err)
	require.Len(t, profile, 24)

	eight := profile[8]
	assert.Equal(t, 480, eight.Minute)
	assert.Equal(t, "8:00 AM", eight.Label)
	assert.Equal(t, 60, eight.WindowMinutes)
	assert.Equal(t, 1, eight.Departures)
	assert.Equal(t, 1, eight.Arrivals)
	assert.Equal(t, "A", eight.Stations[0].ShortName)
	assert.Equal(t, 1.0, eight.Stations[0].DepartureRatio)
	assert.Equal(t, 0.0, eight.Stations[1].DepartureRatio)

	// 9:00 covers [8:00, 10:00) so the morning trip still shows
	assert.Equal(t, 1, profile[9].Departures)

	assert.Equal(t, 1, profile[17].Departures)
	assert.Equal(t, 1, profile[18].Departures)
	assert.Equal(t, 0, profile[3].Departures)
	assert.Equal(t, 0, profile[3].Arrivals)
}

func TestRecordModels(t *testing.T) {
	profile, err := HourlyProfile(context.Background(), newService())
	require.NoError(t, err)

	models := RecordModels(profile)
	require.Len(t, models, 24)

	model, ok := models[17].(*mongo.UpdateOneModel)
	require.True(t, ok)
	assert.Equal(t, bson.M{"dataset": "bluebikes-2024-03", "hour": 17}, model.Filter)
	assert.True(t, *model.Upsert)
}

func TestDocuments(t *testing.T) {
	profile, err := HourlyProfile(context.Background(), newService())
	require.NoError(t, err)

	documents := Documents(profile)
	require.Len(t, documents, 48)

	first := documents[0]
	assert.Equal(t, "bluebikes-2024-03", first.Dataset)
	assert.Equal(t, 0, first.Hour)
	assert.Equal(t, "A", first.ShortName)
	assert.Equal(t, []float64{-71.09, 42.36}, first.Location)

	assert.Equal(t, "station-traffic-bluebikes-2024-03", IndexName("Bluebikes-2024-03"))
}
