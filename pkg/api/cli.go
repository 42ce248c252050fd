package api

import (
	"github.com/bikeflow/bikeflow/pkg/dataimporter/manager"
	"github.com/bikeflow/bikeflow/pkg/redis_client"
	"github.com/bikeflow/bikeflow/pkg/trafficcache"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"
)

func RegisterCLI() *cli.Command {
	return &cli.Command{
		Name:  "web-api",
		Usage: "Provides the station traffic web API",
		Subcommands: []*cli.Command{
			{
				Name:  "run",
				Usage: "run web api server",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "listen",
						Value: ":8080",
						Usage: "listen target for the web server",
					},
					&cli.StringFlag{
						Name:     "id",
						Usage:    "ID of the dataset to serve",
						Required: true,
					},
				},
				Action: func(c *cli.Context) error {
					loaded, err := manager.LoadDataset(c.Context, c.String("id"))
					if err != nil {
						return err
					}

					service := loaded.Service()

					if redis_client.Configured() {
						if err := redis_client.Connect(); err != nil {
							return err
						}

						trafficCache := &trafficcache.Cache{}
						trafficCache.Setup(redis_client.Client, trafficcache.DefaultExpiration)
						service.Cache = trafficCache
					} else {
						log.Info().Msg("Skipping Redis setup, station traffic will not be cached")
					}

					log.Info().Str("listen", c.String("listen")).Str("dataset", loaded.DataSet.Identifier).Msg("Starting web api")

					return SetupServer(c.String("listen"), service)
				},
			},
		},
	}
}
