package formats

import (
	"io"

	"github.com/bikeflow/bikeflow/pkg/bikeshare"
)

type Format interface {
	ParseFile(io.Reader) error
}

type StationFormat interface {
	Format
	Stations() []*bikeshare.Station
}

type TripFormat interface {
	Format
	Trips() []*bikeshare.Trip
}
