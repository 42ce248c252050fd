package traffic

import (
	"github.com/bikeflow/bikeflow/pkg/bikeshare"
	"github.com/rs/zerolog/log"
)

// Engine ties a trip index built once at load time to the station list it
// writes traffic onto. The station list is reused as the output buffer on
// every call, so callers must not recompute concurrently.
type Engine struct {
	index     *TripIndex
	stations  []*bikeshare.Station
	halfWidth int
}

func NewEngine(stations []*bikeshare.Station, index *TripIndex, halfWidth int) *Engine {
	if halfWidth <= 0 {
		halfWidth = DefaultWindowMinutes
	}

	return &Engine{
		index:     index,
		stations:  stations,
		halfWidth: halfWidth,
	}
}

func (e *Engine) ComputeStationTraffic(filter TimeFilter) []*bikeshare.Station {
	departures := SelectWidth(&e.index.DeparturesByMinute, filter, e.halfWidth)
	arrivals := SelectWidth(&e.index.ArrivalsByMinute, filter, e.halfWidth)

	log.Debug().
		Str("filter", filter.String()).
		Int("departures", len(departures)).
		Int("arrivals", len(arrivals)).
		Msg("Computing station traffic")

	return Aggregate(e.stations, departures, arrivals)
}

func (e *Engine) Index() *TripIndex {
	return e.index
}

func (e *Engine) StationCount() int {
	return len(e.stations)
}

func (e *Engine) WindowMinutes() int {
	return e.halfWidth
}
