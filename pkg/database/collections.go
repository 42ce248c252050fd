package database

import (
	"context"

	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const StationTrafficCollection = "station_traffic"

func createIndexes() {
	createStationTrafficIndexes()
}

func createStationTrafficIndexes() {
	stationTrafficCollection := GetCollection(StationTrafficCollection)
	stationTrafficIndex := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "dataset", Value: 1}, {Key: "hour", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "stations.shortname", Value: 1}},
		},
	}

	opts := options.CreateIndexes()
	_, err := stationTrafficCollection.Indexes().CreateMany(context.Background(), stationTrafficIndex, opts)
	if err != nil {
		log.Error().Err(err).Msg("Creating Index")
	}
}
