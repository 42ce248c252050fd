package tripcsv

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/bikeflow/bikeflow/pkg/bikeshare"
	"github.com/gocarina/gocsv"
	"github.com/rs/zerolog/log"
)

var defaultLayouts = []string{
	"2006-01-02 15:04:05.000",
	"2006-01-02 15:04:05",
	time.RFC3339,
}

// TripRecord covers both the monthly system data export and the reduced
// traffic extract, which name a few of the columns differently.
type TripRecord struct {
	RideID       string `csv:"ride_id"`
	BikeType     string `csv:"bike_type"`
	RideableType string `csv:"rideable_type"`

	StartedAt string `csv:"started_at"`
	EndedAt   string `csv:"ended_at"`

	StartStationID string `csv:"start_station_id"`
	EndStationID   string `csv:"end_station_id"`

	IsMember     string `csv:"is_member"`
	MemberCasual string `csv:"member_casual"`
}

type TripLog struct {
	// Layout is tried before the default timestamp layouts.
	Layout   string
	Location *time.Location

	trips []*bikeshare.Trip
}

func (l *TripLog) ParseFile(reader io.Reader) error {
	csvReader := csv.NewReader(reader)
	csvReader.FieldsPerRecord = -1

	var records []TripRecord
	if err := gocsv.UnmarshalCSV(csvReader, &records); err != nil {
		return fmt.Errorf("failed to parse trip csv: %w", err)
	}

	location := l.Location
	if location == nil {
		location = time.Local
	}

	layouts := defaultLayouts
	if l.Layout != "" {
		layouts = append([]string{l.Layout}, defaultLayouts...)
	}

	trips := make([]*bikeshare.Trip, 0, len(records))
	for i, record := range records {
		trip, err := record.toTrip(layouts, location)
		if err != nil {
			// header is line 1
			return fmt.Errorf("trip csv line %d: %w", i+2, err)
		}

		trips = append(trips, trip)
	}

	log.Debug().Int("trips", len(trips)).Str("location", location.String()).Msg("Parsed trip csv")

	l.trips = trips
	return nil
}

func (l *TripLog) Trips() []*bikeshare.Trip {
	return l.trips
}

func (r TripRecord) toTrip(layouts []string, location *time.Location) (*bikeshare.Trip, error) {
	startedAt, err := parseTimestamp(r.StartedAt, layouts, location)
	if err != nil {
		return nil, fmt.Errorf("started_at: %w", err)
	}

	endedAt, err := parseTimestamp(r.EndedAt, layouts, location)
	if err != nil {
		return nil, fmt.Errorf("ended_at: %w", err)
	}

	bikeType := r.BikeType
	if bikeType == "" {
		bikeType = r.RideableType
	}

	return &bikeshare.Trip{
		RideID:         r.RideID,
		BikeType:       bikeType,
		MemberType:     r.memberType(),
		StartStationID: strings.TrimSpace(r.StartStationID),
		EndStationID:   strings.TrimSpace(r.EndStationID),
		StartedAt:      startedAt,
		EndedAt:        endedAt,
	}, nil
}

func (r TripRecord) memberType() string {
	switch strings.ToLower(strings.TrimSpace(r.IsMember)) {
	case "":
		return r.MemberCasual
	case "1", "true", "yes":
		return "member"
	default:
		return "casual"
	}
}

func parseTimestamp(value string, layouts []string, location *time.Location) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, errors.New("missing timestamp")
	}

	for _, layout := range layouts {
		if parsed, err := time.ParseInLocation(layout, value, location); err == nil {
			return parsed.In(location), nil
		}
	}

	return time.Time{}, fmt.Errorf("unrecognised timestamp %q", value)
}
