package traffic

import (
	"strings"

	"github.com/bikeflow/bikeflow/pkg/bikeshare"
	"golang.org/x/exp/slices"
)

// Busiest orders a copy of stations by total traffic, highest first, and
// keeps at most limit of them. A limit <= 0 keeps everything.
func Busiest(stations []bikeshare.Station, limit int) []bikeshare.Station {
	ranked := slices.Clone(stations)

	slices.SortStableFunc(ranked, func(a, b bikeshare.Station) int {
		if a.TotalTraffic != b.TotalTraffic {
			return b.TotalTraffic - a.TotalTraffic
		}

		return strings.Compare(a.ShortName, b.ShortName)
	})

	if limit > 0 && len(ranked) > limit {
		ranked = ranked[:limit]
	}

	return ranked
}
