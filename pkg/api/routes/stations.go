package routes

import (
	"fmt"
	"strings"

	"github.com/bikeflow/bikeflow/pkg/bikeshare"
	"github.com/bikeflow/bikeflow/pkg/traffic"
	"github.com/bikeflow/bikeflow/pkg/util"
	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
	"github.com/gofiber/fiber/v2"
	"github.com/jinzhu/copier"
	"github.com/liip/sheriff"
)

// StationTraffic is a station as the map draws it.
type StationTraffic struct {
	ShortName string  `json:"short_name" expr:"shortName" groups:"basic,detailed"`
	StationID string  `json:"station_id" expr:"stationId" groups:"detailed"`
	Name      string  `json:"name" expr:"name" groups:"detailed"`
	Capacity  int     `json:"capacity" expr:"capacity" groups:"detailed"`
	Lon       float64 `json:"lon" expr:"lon" groups:"basic,detailed"`
	Lat       float64 `json:"lat" expr:"lat" groups:"basic,detailed"`

	Arrivals     int `json:"arrivals" expr:"arrivals" groups:"basic,detailed"`
	Departures   int `json:"departures" expr:"departures" groups:"basic,detailed"`
	TotalTraffic int `json:"totalTraffic" expr:"totalTraffic" groups:"basic,detailed"`

	DepartureRatio float64 `json:"departureRatio" expr:"departureRatio" groups:"detailed"`
	Flow           float64 `json:"flow" expr:"flow" groups:"basic,detailed"`
	Radius         float64 `json:"radius" expr:"radius" groups:"basic,detailed"`
	Tooltip        string  `json:"tooltip" expr:"tooltip" groups:"detailed"`
}

func StationsRouter(router fiber.Router, service *traffic.Service) {
	router.Get("/", func(c *fiber.Ctx) error {
		return listStations(c, service)
	})
	router.Get("/:identifier", func(c *fiber.Ctx) error {
		return getStation(c, service)
	})
}

func BusiestRouter(router fiber.Router, service *traffic.Service) {
	router.Get("/", func(c *fiber.Ctx) error {
		return getBusiestStations(c, service)
	})
}

func listStations(c *fiber.Ctx, service *traffic.Service) error {
	snapshot, err := computeSnapshot(c, service)
	if err != nil {
		return err
	}

	stations := snapshot.Stations

	if idsQuery := c.Query("ids"); idsQuery != "" {
		ids := util.RemoveDuplicateStrings(strings.Split(idsQuery, ","), nil)
		stations = make([]bikeshare.Station, 0, len(ids))

		for _, id := range ids {
			station, err := snapshot.Station(id)
			if err != nil {
				return errorResponse(fiber.StatusNotFound, err.Error())
			}
			stations = append(stations, station)
		}
	}

	stationsTraffic, err := toStationTraffic(stations, snapshot.Scale)
	if err != nil {
		return errorResponse(fiber.StatusInternalServerError, "Could not build station traffic")
	}

	if filterQuery := c.Query("filter"); filterQuery != "" {
		if err := filterStations(&stationsTraffic, filterQuery); err != nil {
			return errorResponse(fiber.StatusBadRequest, fmt.Sprintf("Invalid filter: %s", err))
		}
	}

	if limit := c.QueryInt("limit", 0); limit > 0 && len(stationsTraffic) > limit {
		stationsTraffic = stationsTraffic[:limit]
	}

	return sendStations(c, snapshot, stationsTraffic)
}

func getStation(c *fiber.Ctx, service *traffic.Service) error {
	snapshot, err := computeSnapshot(c, service)
	if err != nil {
		return err
	}

	station, err := snapshot.Station(c.Params("identifier"))
	if err != nil {
		return errorResponse(fiber.StatusNotFound, "Could not find Station matching short name")
	}

	stationTraffic, err := toStationTraffic([]bikeshare.Station{station}, snapshot.Scale)
	if err != nil {
		return errorResponse(fiber.StatusInternalServerError, "Could not build station traffic")
	}

	reduced, err := reduce(c, stationTraffic[0])
	if err != nil {
		return errorResponse(fiber.StatusInternalServerError, "Sheriff could not reduce station")
	}

	return c.JSON(reduced)
}

func getBusiestStations(c *fiber.Ctx, service *traffic.Service) error {
	snapshot, err := computeSnapshot(c, service)
	if err != nil {
		return err
	}

	busiest := traffic.Busiest(snapshot.Stations, c.QueryInt("limit", 10))

	stationsTraffic, err := toStationTraffic(busiest, snapshot.Scale)
	if err != nil {
		return errorResponse(fiber.StatusInternalServerError, "Could not build station traffic")
	}

	return sendStations(c, snapshot, stationsTraffic)
}

func computeSnapshot(c *fiber.Ctx, service *traffic.Service) (traffic.Snapshot, error) {
	filter, err := traffic.ParseTimeFilter(c.Query("time"))
	if err != nil {
		return traffic.Snapshot{}, errorResponse(fiber.StatusBadRequest, err.Error())
	}

	snapshot, err := service.Compute(c.UserContext(), filter)
	if err != nil {
		return traffic.Snapshot{}, errorResponse(fiber.StatusInternalServerError, "Could not compute station traffic")
	}

	return snapshot, nil
}

func toStationTraffic(stations []bikeshare.Station, scale traffic.RadiusScale) ([]StationTraffic, error) {
	stationsTraffic := make([]StationTraffic, len(stations))

	for i := range stations {
		station := &stations[i]

		if err := copier.Copy(&stationsTraffic[i], station); err != nil {
			return nil, err
		}

		stationsTraffic[i].DepartureRatio = station.DepartureRatio()
		stationsTraffic[i].Flow = traffic.StationFlow(station.DepartureRatio())
		stationsTraffic[i].Radius = scale.Radius(station.TotalTraffic)
		stationsTraffic[i].Tooltip = station.Tooltip()
	}

	return stationsTraffic, nil
}

func filterStations(stationsTraffic *[]StationTraffic, filterQuery string) error {
	program, err := expr.Compile(filterQuery, expr.Env(StationTraffic{}), expr.AsBool())
	if err != nil {
		return err
	}

	var runErr error
	util.InPlaceFilter(stationsTraffic, func(station StationTraffic) bool {
		matches, err := runFilter(program, station)
		if err != nil && runErr == nil {
			runErr = err
		}

		return matches
	})

	return runErr
}

func runFilter(program *vm.Program, station StationTraffic) (bool, error) {
	output, err := expr.Run(program, station)
	if err != nil {
		return false, err
	}

	matches, _ := output.(bool)
	return matches, nil
}

func sendStations(c *fiber.Ctx, snapshot traffic.Snapshot, stationsTraffic []StationTraffic) error {
	reduced, err := reduce(c, stationsTraffic)
	if err != nil {
		return errorResponse(fiber.StatusInternalServerError, "Sheriff could not reduce stations")
	}

	return c.JSON(fiber.Map{
		"timeFilter":  snapshot.Filter.String(),
		"label":       snapshot.Filter.Label(),
		"radiusScale": snapshot.Scale,
		"stations":    reduced,
	})
}

func reduce(c *fiber.Ctx, data interface{}) (interface{}, error) {
	group := c.Query("group", "basic")
	if group != "basic" && group != "detailed" {
		group = "basic"
	}

	return sheriff.Marshal(&sheriff.Options{
		Groups: []string{group},
	}, data)
}

func errorResponse(status int, message string) error {
	return fiber.NewError(status, message)
}
