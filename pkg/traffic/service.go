package traffic

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/bikeflow/bikeflow/pkg/bikeshare"
	"github.com/rs/zerolog/log"
)

var ErrUnknownStation = errors.New("unknown station")

// Cache stores computed station traffic per dataset and time filter.
type Cache interface {
	Get(ctx context.Context, key string) ([]bikeshare.Station, error)
	Set(ctx context.Context, key string, stations []bikeshare.Station) error
}

// Snapshot is a private copy of the station traffic for one filter, safe to
// hand to any number of readers.
type Snapshot struct {
	Filter   TimeFilter
	Stations []bikeshare.Station
	Scale    RadiusScale
}

func NewSnapshot(filter TimeFilter, stations []bikeshare.Station) Snapshot {
	return Snapshot{
		Filter:   filter,
		Stations: stations,
		Scale:    NewRadiusScale(stations, filter),
	}
}

func (s Snapshot) Station(shortName string) (bikeshare.Station, error) {
	for _, station := range s.Stations {
		if station.ShortName == shortName {
			return station, nil
		}
	}

	return bikeshare.Station{}, fmt.Errorf("%w: %s", ErrUnknownStation, shortName)
}

// Service runs recomputes one at a time against the engine's shared station
// buffer and hands out snapshots copied from it.
type Service struct {
	DatasetID string
	Cache     Cache

	engine       *Engine
	computeMutex sync.Mutex
}

func NewService(datasetID string, engine *Engine) *Service {
	return &Service{
		DatasetID: datasetID,
		engine:    engine,
	}
}

func (s *Service) Engine() *Engine {
	return s.engine
}

func (s *Service) Compute(ctx context.Context, filter TimeFilter) (Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return Snapshot{}, err
	}

	cacheKey := s.cacheKey(filter)

	if s.Cache != nil {
		stations, err := s.Cache.Get(ctx, cacheKey)
		if err == nil {
			log.Debug().Str("key", cacheKey).Msg("Station traffic served from cache")
			return NewSnapshot(filter, stations), nil
		}
	}

	stations := s.computeCopy(filter)

	if s.Cache != nil {
		if err := s.Cache.Set(ctx, cacheKey, stations); err != nil {
			log.Error().Err(err).Str("key", cacheKey).Msg("Failed to cache station traffic")
		}
	}

	return NewSnapshot(filter, stations), nil
}

func (s *Service) computeCopy(filter TimeFilter) []bikeshare.Station {
	s.computeMutex.Lock()
	defer s.computeMutex.Unlock()

	computed := s.engine.ComputeStationTraffic(filter)

	stations := make([]bikeshare.Station, len(computed))
	for i, station := range computed {
		stations[i] = *station
	}

	return stations
}

func (s *Service) cacheKey(filter TimeFilter) string {
	return fmt.Sprintf("station-traffic/%s/%d/%s", s.DatasetID, s.engine.WindowMinutes(), filter.String())
}
