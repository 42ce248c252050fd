package stats

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/bikeflow/bikeflow/pkg/elastic_client"
	"github.com/rs/zerolog/log"
)

// StationHourDocument is one station in one hour, flattened for Elasticsearch.
type StationHourDocument struct {
	Dataset string
	Hour    int
	Label   string

	ShortName string
	Location  []float64

	Departures     int
	Arrivals       int
	TotalTraffic   int
	DepartureRatio float64

	Timestamp time.Time
}

func IndexName(dataset string) string {
	return fmt.Sprintf("station-traffic-%s", strings.ToLower(dataset))
}

func Documents(profile []HourlyTraffic) []StationHourDocument {
	var documents []StationHourDocument

	for _, hourly := range profile {
		for _, station := range hourly.Stations {
			documents = append(documents, StationHourDocument{
				Dataset:        hourly.Dataset,
				Hour:           hourly.Hour,
				Label:          hourly.Label,
				ShortName:      station.ShortName,
				Location:       []float64{station.Lon, station.Lat},
				Departures:     station.Departures,
				Arrivals:       station.Arrivals,
				TotalTraffic:   station.TotalTraffic,
				DepartureRatio: station.DepartureRatio,
				Timestamp:      hourly.RecordedAt,
			})
		}
	}

	return documents
}

func Index(profile []HourlyTraffic) {
	for _, document := range Documents(profile) {
		documentJSON, err := json.Marshal(document)
		if err != nil {
			log.Error().Err(err).Str("station", document.ShortName).Msg("Failed to marshal station traffic")
			continue
		}

		elastic_client.IndexRequest(IndexName(document.Dataset), bytes.NewReader(documentJSON))
	}
}
