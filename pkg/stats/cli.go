package stats

import (
	"fmt"

	"github.com/bikeflow/bikeflow/pkg/database"
	"github.com/bikeflow/bikeflow/pkg/dataimporter/manager"
	"github.com/bikeflow/bikeflow/pkg/elastic_client"
	"github.com/urfave/cli/v2"
)

var datasetFlag = &cli.StringFlag{
	Name:     "id",
	Usage:    "ID of the dataset",
	Required: true,
}

func RegisterCLI() *cli.Command {
	return &cli.Command{
		Name:  "stats",
		Usage: "Hourly station traffic profiles",
		Subcommands: []*cli.Command{
			{
				Name:  "profile",
				Usage: "print total departures & arrivals for every hour of the day",
				Flags: []cli.Flag{datasetFlag},
				Action: func(c *cli.Context) error {
					profile, err := loadProfile(c)
					if err != nil {
						return err
					}

					for _, hourly := range profile {
						fmt.Fprintf(c.App.Writer, "%s\t%d departures\t%d arrivals\n", hourly.Label, hourly.Departures, hourly.Arrivals)
					}

					return nil
				},
			},
			{
				Name:  "record",
				Usage: "record the hourly profile into MongoDB",
				Flags: []cli.Flag{datasetFlag},
				Action: func(c *cli.Context) error {
					if err := database.Connect(); err != nil {
						return err
					}
					defer database.Disconnect()

					profile, err := loadProfile(c)
					if err != nil {
						return err
					}

					return Record(c.Context, database.GetCollection(database.StationTrafficCollection), profile)
				},
			},
			{
				Name:  "index",
				Usage: "index the hourly profile into Elasticsearch",
				Flags: []cli.Flag{datasetFlag},
				Action: func(c *cli.Context) error {
					if err := elastic_client.Connect(); err != nil {
						return err
					}

					profile, err := loadProfile(c)
					if err != nil {
						return err
					}

					Index(profile)
					elastic_client.WaitUntilQueueEmpty()

					return nil
				},
			},
		},
	}
}

func loadProfile(c *cli.Context) ([]HourlyTraffic, error) {
	loaded, err := manager.LoadDataset(c.Context, c.String("id"))
	if err != nil {
		return nil, err
	}

	return HourlyProfile(c.Context, loaded.Service())
}
