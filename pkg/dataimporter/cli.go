package dataimporter

import (
	"fmt"

	"github.com/bikeflow/bikeflow/pkg/dataimporter/manager"
	"github.com/bikeflow/bikeflow/pkg/traffic"
	"github.com/kr/pretty"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"
)

func RegisterCLI() *cli.Command {
	return &cli.Command{
		Name:  "data-importer",
		Usage: "Load & validate bike share station feeds and trip logs",
		Subcommands: []*cli.Command{
			{
				Name:  "list",
				Usage: "List the registered datasets",
				Action: func(c *cli.Context) error {
					registered, err := manager.GetRegisteredDataSets(manager.DataSourcesDirectory())
					if err != nil {
						return err
					}

					for _, dataset := range registered {
						fmt.Fprintf(c.App.Writer, "%s\t%s\n", dataset.Identifier, dataset.Provider.Name)
					}

					return nil
				},
			},
			{
				Name:  "check",
				Usage: "Load a dataset and report what it contains",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "id",
						Usage:    "ID of the dataset",
						Required: true,
					},
					&cli.IntFlag{
						Name:  "top",
						Value: 10,
						Usage: "number of busiest stations to print",
					},
					&cli.BoolFlag{
						Name:  "pretty",
						Usage: "dump the dataset definition and busiest stations in full",
					},
				},
				Action: func(c *cli.Context) error {
					loaded, err := manager.LoadDataset(c.Context, c.String("id"))
					if err != nil {
						return err
					}

					service := loaded.Service()
					snapshot, err := service.Compute(c.Context, traffic.NoFilter())
					if err != nil {
						return err
					}

					busiest := traffic.Busiest(snapshot.Stations, c.Int("top"))

					if c.Bool("pretty") {
						pretty.Fprintf(c.App.Writer, "%# v\n", loaded.DataSet)
						pretty.Fprintf(c.App.Writer, "%# v\n", busiest)
						return nil
					}

					log.Info().
						Str("dataset", loaded.DataSet.Identifier).
						Int("stations", len(loaded.Stations)).
						Int("trips", len(loaded.Trips)).
						Int("window", loaded.WindowMinutes).
						Msg("Dataset is valid")

					for _, station := range busiest {
						fmt.Fprintf(c.App.Writer, "%s\t%s\n", station.ShortName, station.Tooltip())
					}

					return nil
				},
			},
		},
	}
}
