package datasets

import (
	"fmt"
	"time"

	"github.com/bikeflow/bikeflow/pkg/util"
	iso8601 "github.com/senseyeio/duration"
)

const defaultWindow = "PT60M"

// DataSet is one station feed paired with the trip log recorded against it.
type DataSet struct {
	Identifier    string
	DataSourceRef string `json:"-"`

	Provider Provider

	Stations Source
	Trips    Source

	TimestampLayout string
	Timezone        string

	// Window is the ISO8601 distance either side of the selected minute.
	Window string
}

type Source struct {
	Format SourceFormat
	Source string

	Header map[string]string `json:"-"`
}

type SourceFormat string

const (
	SourceFormatStationInformation SourceFormat = "station-information"
	SourceFormatTripCSV            SourceFormat = "trip-csv"
)

type Provider struct {
	Name    string
	Website string
}

// WindowMinutes converts Window to whole minutes. It must be positive and
// shorter than half a day so the two edges of the window never meet.
func (d DataSet) WindowMinutes() (int, error) {
	window := d.Window
	if window == "" {
		window = defaultWindow
	}

	duration, err := iso8601.ParseISO8601(window)
	if err != nil {
		return 0, fmt.Errorf("dataset %s has invalid window %q: %w", d.Identifier, window, err)
	}

	reference := time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)
	minutes := int(duration.Shift(reference).Sub(reference) / time.Minute)

	if minutes <= 0 || minutes >= util.MinutesPerDay/2 {
		return 0, fmt.Errorf("dataset %s window %q must be between 1 and 719 minutes", d.Identifier, window)
	}

	return minutes, nil
}

// Location is the zone trip timestamps are read in. The dataset setting wins
// over BIKEFLOW_TIMEZONE.
func (d DataSet) Location() (*time.Location, error) {
	if d.Timezone != "" {
		return time.LoadLocation(d.Timezone)
	}

	return util.LoadTimezone()
}
