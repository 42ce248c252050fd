package manager

import (
	"context"
	"fmt"
	"time"

	"github.com/bikeflow/bikeflow/pkg/bikeshare"
	"github.com/bikeflow/bikeflow/pkg/dataimporter/datasets"
	"github.com/bikeflow/bikeflow/pkg/dataimporter/formats"
	"github.com/bikeflow/bikeflow/pkg/dataimporter/formats/stationinformation"
	"github.com/bikeflow/bikeflow/pkg/dataimporter/formats/tripcsv"
	"github.com/bikeflow/bikeflow/pkg/traffic"
	"github.com/rs/zerolog/log"
	"github.com/sourcegraph/conc/pool"
)

// LoadedData is a fully loaded dataset. It only exists when both the station
// feed and the trip log loaded without error.
type LoadedData struct {
	DataSet       datasets.DataSet
	Stations      []*bikeshare.Station
	Trips         []*bikeshare.Trip
	WindowMinutes int
}

// Engine builds the trip index. This is the only place the index gets
// built, once per load.
func (l *LoadedData) Engine() *traffic.Engine {
	index := traffic.NewTripIndex(l.Trips)

	return traffic.NewEngine(l.Stations, index, l.WindowMinutes)
}

func (l *LoadedData) Service() *traffic.Service {
	return traffic.NewService(l.DataSet.Identifier, l.Engine())
}

func LoadDataset(ctx context.Context, identifier string) (*LoadedData, error) {
	dataset, err := GetDataset(DataSourcesDirectory(), identifier)
	if err != nil {
		return nil, err
	}

	return Load(ctx, dataset)
}

// Load fetches the station feed and trip log at the same time. The first
// failure cancels the other fetch and nothing is returned.
func Load(ctx context.Context, dataset datasets.DataSet) (*LoadedData, error) {
	startTime := time.Now()

	windowMinutes, err := dataset.WindowMinutes()
	if err != nil {
		return nil, err
	}

	location, err := dataset.Location()
	if err != nil {
		return nil, fmt.Errorf("dataset %s timezone: %w", dataset.Identifier, err)
	}

	stationFormat, err := stationFormatFor(dataset.Stations)
	if err != nil {
		return nil, err
	}

	tripFormat, err := tripFormatFor(dataset, location)
	if err != nil {
		return nil, err
	}

	p := pool.New().WithContext(ctx).WithCancelOnError().WithFirstError()

	p.Go(func(ctx context.Context) error {
		return parseSource(ctx, dataset.Stations, stationFormat)
	})
	p.Go(func(ctx context.Context) error {
		return parseSource(ctx, dataset.Trips, tripFormat)
	})

	if err := p.Wait(); err != nil {
		log.Error().Err(err).Str("dataset", dataset.Identifier).Msg("Failed to load dataset")
		return nil, err
	}

	loaded := &LoadedData{
		DataSet:       dataset,
		Stations:      stationFormat.Stations(),
		Trips:         tripFormat.Trips(),
		WindowMinutes: windowMinutes,
	}

	log.Info().
		Str("dataset", dataset.Identifier).
		Int("stations", len(loaded.Stations)).
		Int("trips", len(loaded.Trips)).
		Str("location", location.String()).
		Str("duration", time.Since(startTime).String()).
		Msg("Loaded dataset")

	return loaded, nil
}

func parseSource(ctx context.Context, source datasets.Source, format formats.Format) error {
	log.Info().Str("source", source.Source).Str("format", string(source.Format)).Msg("Loading source")

	reader, err := openSource(ctx, source)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", source.Source, err)
	}
	defer reader.Close()

	if err := format.ParseFile(reader); err != nil {
		return fmt.Errorf("failed to parse %s: %w", source.Source, err)
	}

	return nil
}

func stationFormatFor(source datasets.Source) (formats.StationFormat, error) {
	switch source.Format {
	case datasets.SourceFormatStationInformation, "":
		return &stationinformation.StationInformation{}, nil
	default:
		return nil, fmt.Errorf("unrecognised station format %s", source.Format)
	}
}

func tripFormatFor(dataset datasets.DataSet, location *time.Location) (formats.TripFormat, error) {
	switch dataset.Trips.Format {
	case datasets.SourceFormatTripCSV, "":
		return &tripcsv.TripLog{Layout: dataset.TimestampLayout, Location: location}, nil
	default:
		return nil, fmt.Errorf("unrecognised trip format %s", dataset.Trips.Format)
	}
}
