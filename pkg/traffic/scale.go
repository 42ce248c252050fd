package traffic

import (
	"math"

	"github.com/bikeflow/bikeflow/pkg/bikeshare"
)

// Circles get more room when a filter is active since windowed counts are
// much smaller than whole-day counts.
var (
	UnfilteredRadiusRange = [2]float64{0, 25}
	FilteredRadiusRange   = [2]float64{3, 50}
)

var stationFlowRange = []float64{0, 0.5, 1}

func RadiusRangeFor(filter TimeFilter) [2]float64 {
	if filter.Active() {
		return FilteredRadiusRange
	}

	return UnfilteredRadiusRange
}

// RadiusScale is a square root scale from [0, max totalTraffic] onto Range.
type RadiusScale struct {
	DomainMax float64    `json:"domainMax"`
	Range     [2]float64 `json:"range"`
}

func NewRadiusScale(stations []bikeshare.Station, filter TimeFilter) RadiusScale {
	maxTraffic := 0
	for _, station := range stations {
		if station.TotalTraffic > maxTraffic {
			maxTraffic = station.TotalTraffic
		}
	}

	return RadiusScale{
		DomainMax: float64(maxTraffic),
		Range:     RadiusRangeFor(filter),
	}
}

func (s RadiusScale) Radius(totalTraffic int) float64 {
	t := 0.5
	if s.DomainMax > 0 {
		t = math.Sqrt(float64(totalTraffic)) / math.Sqrt(s.DomainMax)
	}

	return s.Range[0] + t*(s.Range[1]-s.Range[0])
}

// StationFlow buckets a departure ratio in [0,1] into mostly arrivals (0),
// balanced (0.5) or mostly departures (1).
func StationFlow(ratio float64) float64 {
	if math.IsNaN(ratio) {
		return stationFlowRange[0]
	}

	n := len(stationFlowRange)
	i := int(math.Floor(ratio * float64(n)))
	i = max(0, min(n-1, i))

	return stationFlowRange[i]
}
