package tripcsv

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const trafficExtract = `ride_id,bike_type,started_at,ended_at,start_station_id,end_station_id,is_member
CBCD0D7777F0E45F,classic,2024-03-01 00:00:15.123,2024-03-01 00:11:04.456,A32000,M32006,1
E23C7D66C88E0A9A,electric,2024-03-01 23:58:02.000,2024-03-02 00:06:30.000,M32006,B32012,0
`

const systemExport = `ride_id,rideable_type,started_at,ended_at,start_station_name,start_station_id,end_station_name,end_station_id,member_casual
9A1B2C3D,classic_bike,2024-03-04 17:42:10,2024-03-04 17:55:01,MIT at Mass Ave,A32000,,,casual
`

func mustLocation(t *testing.T) *time.Location {
	location, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)

	return location
}

func TestParseTrafficExtract(t *testing.T) {
	tripLog := &TripLog{Location: mustLocation(t)}
	require.NoError(t, tripLog.ParseFile(strings.NewReader(trafficExtract)))

	trips := tripLog.Trips()
	require.Len(t, trips, 2)

	first := trips[0]
	assert.Equal(t, "CBCD0D7777F0E45F", first.RideID)
	assert.Equal(t, "classic", first.BikeType)
	assert.Equal(t, "member", first.MemberType)
	assert.Equal(t, "A32000", first.StartStationID)
	assert.Equal(t, "M32006", first.EndStationID)
	assert.Equal(t, 0, first.StartedAt.Hour()*60+first.StartedAt.Minute())
	assert.Equal(t, 11, first.EndedAt.Hour()*60+first.EndedAt.Minute())
	assert.Equal(t, "America/New_York", first.StartedAt.Location().String())

	overnight := trips[1]
	assert.Equal(t, "casual", overnight.MemberType)
	assert.Equal(t, 23*60+58, overnight.StartedAt.Hour()*60+overnight.StartedAt.Minute())
	assert.Equal(t, 6, overnight.EndedAt.Hour()*60+overnight.EndedAt.Minute())
}

func TestParseSystemExport(t *testing.T) {
	tripLog := &TripLog{Location: mustLocation(t)}
	require.NoError(t, tripLog.ParseFile(strings.NewReader(systemExport)))

	trips := tripLog.Trips()
	require.Len(t, trips, 1)

	assert.Equal(t, "classic_bike", trips[0].BikeType)
	assert.Equal(t, "casual", trips[0].MemberType)
	assert.Equal(t, "", trips[0].EndStationID)
	assert.Equal(t, 12*time.Minute+51*time.Second, trips[0].Duration())
}

func TestParseCustomLayout(t *testing.T) {
	body := "started_at,ended_at,start_station_id,end_station_id\n03/01/2024 08:15,03/01/2024 08:40,A,B\n"

	tripLog := &TripLog{Layout: "01/02/2006 15:04", Location: mustLocation(t)}
	require.NoError(t, tripLog.ParseFile(strings.NewReader(body)))

	assert.Equal(t, 8*60+15, tripLog.Trips()[0].StartedAt.Hour()*60+tripLog.Trips()[0].StartedAt.Minute())
}

func TestParseRejectsBadTimestamp(t *testing.T) {
	body := "started_at,ended_at,start_station_id,end_station_id\n2024-03-01 08:15:00,2024-03-01 08:40:00,A,B\nyesterday,2024-03-01 08:40:00,A,B\n"

	tripLog := &TripLog{Location: mustLocation(t)}
	err := tripLog.ParseFile(strings.NewReader(body))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "line 3")
	assert.Empty(t, tripLog.Trips())
}

func TestParseRejectsMissingTimestamp(t *testing.T) {
	body := "started_at,ended_at,start_station_id,end_station_id\n2024-03-01 08:15:00,,A,B\n"

	tripLog := &TripLog{Location: mustLocation(t)}
	assert.Error(t, tripLog.ParseFile(strings.NewReader(body)))
}
