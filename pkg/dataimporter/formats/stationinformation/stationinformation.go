package stationinformation

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/bikeflow/bikeflow/pkg/bikeshare"
)

// StationInformation is a GBFS style station feed: {"data": {"stations": [...]}}.
type StationInformation struct {
	Data struct {
		Stations []StationRecord `json:"stations"`
	} `json:"data"`

	stations []*bikeshare.Station
}

type StationRecord struct {
	ShortName string         `json:"short_name"`
	StationID string         `json:"station_id"`
	Name      string         `json:"name"`
	Capacity  FlexibleNumber `json:"capacity"`
	Lon       FlexibleNumber `json:"lon"`
	Lat       FlexibleNumber `json:"lat"`
}

// FlexibleNumber accepts both 42.36 and "42.36".
type FlexibleNumber float64

func (n *FlexibleNumber) UnmarshalJSON(data []byte) error {
	data = bytes.Trim(data, `"`)
	if len(data) == 0 || string(data) == "null" {
		*n = 0
		return nil
	}

	value, err := strconv.ParseFloat(string(data), 64)
	if err != nil {
		return fmt.Errorf("invalid number %q", string(data))
	}

	*n = FlexibleNumber(value)
	return nil
}

func (s *StationInformation) ParseFile(reader io.Reader) error {
	if err := json.NewDecoder(reader).Decode(s); err != nil {
		return fmt.Errorf("failed to decode station information: %w", err)
	}

	if len(s.Data.Stations) == 0 {
		return errors.New("station information contains no stations")
	}

	seen := map[string]bool{}
	s.stations = make([]*bikeshare.Station, 0, len(s.Data.Stations))

	for i, record := range s.Data.Stations {
		if record.ShortName == "" {
			return fmt.Errorf("station %d has no short_name", i)
		}
		if seen[record.ShortName] {
			return fmt.Errorf("duplicate station short_name %s", record.ShortName)
		}
		seen[record.ShortName] = true

		s.stations = append(s.stations, &bikeshare.Station{
			ShortName: record.ShortName,
			StationID: record.StationID,
			Name:      record.Name,
			Capacity:  int(record.Capacity),
			Lon:       float64(record.Lon),
			Lat:       float64(record.Lat),
		})
	}

	return nil
}

func (s *StationInformation) Stations() []*bikeshare.Station {
	return s.stations
}
