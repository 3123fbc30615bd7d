package database

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"cognicare-go/internal/config"
)

// Init connects to the document store and returns the application
// database handle. The per-domain telemetry collections are schemaless;
// nothing is migrated here.
func Init(ctx context.Context, log *zap.Logger) (*mongo.Database, error) {
	conf := config.Conf.Mongo

	connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(conf.URI))
	if err != nil {
		return nil, err
	}

	if err := client.Ping(connectCtx, nil); err != nil {
		return nil, err
	}

	log.Info("Document store connection established successfully.",
		zap.String("dbname", conf.DBName))
	return client.Database(conf.DBName), nil
}
