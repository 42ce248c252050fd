package stats

import (
	"context"

	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// RecordModels builds one upsert per hour keyed on dataset and hour, so
// recording the same dataset again replaces the earlier profile.
func RecordModels(profile []HourlyTraffic) []mongo.WriteModel {
	models := make([]mongo.WriteModel, 0, len(profile))

	for _, hourly := range profile {
		updateModel := mongo.NewUpdateOneModel()
		updateModel.SetFilter(bson.M{"dataset": hourly.Dataset, "hour": hourly.Hour})
		updateModel.SetUpdate(bson.M{"$set": hourly})
		updateModel.SetUpsert(true)

		models = append(models, updateModel)
	}

	return models
}

func Record(ctx context.Context, collection *mongo.Collection, profile []HourlyTraffic) error {
	if len(profile) == 0 {
		return nil
	}

	result, err := collection.BulkWrite(ctx, RecordModels(profile), options.BulkWrite().SetOrdered(false))
	if err != nil {
		return err
	}

	log.Info().
		Str("dataset", profile[0].Dataset).
		Int64("inserted", result.UpsertedCount).
		Int64("modified", result.ModifiedCount).
		Msg("Recorded hourly station traffic")

	return nil
}
