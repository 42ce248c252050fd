package redis_client

import (
	"context"
	"strconv"

	"github.com/bikeflow/bikeflow/pkg/util"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

var Client *redis.Client

const defaultConnectionAddress = "localhost:6379"
const defaultConnectionPassword = ""
const defaultDatabase = 0

// Configured reports whether a Redis address has been provided. Redis is
// optional, without it computed traffic is simply not cached.
func Configured() bool {
	return util.GetEnvironmentVariables()["BIKEFLOW_REDIS_ADDRESS"] != ""
}

func Connect() error {
	address := defaultConnectionAddress
	password := defaultConnectionPassword
	database := defaultDatabase

	env := util.GetEnvironmentVariables()

	if env["BIKEFLOW_REDIS_ADDRESS"] != "" {
		address = env["BIKEFLOW_REDIS_ADDRESS"]
	}

	if env["BIKEFLOW_REDIS_PASSWORD"] != "" {
		password = env["BIKEFLOW_REDIS_PASSWORD"]
	}

	if env["BIKEFLOW_REDIS_DATABASE"] != "" {
		if n, err := strconv.Atoi(env["BIKEFLOW_REDIS_DATABASE"]); err == nil {
			database = n
		} else {
			return err
		}
	}

	client := redis.NewClient(&redis.Options{
		Addr:     address,
		Password: password,
		DB:       database,
	})

	if err := client.Ping(context.Background()).Err(); err != nil {
		return err
	}

	Client = client

	log.Info().Str("address", address).Int("database", database).Msg("Redis client setup")

	return nil
}
