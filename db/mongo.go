package db

import (
	"context"
	"fmt"

	"github.com/nadit/nadit-backend/config"
	"github.com/nadit/nadit-backend/store"
	mongostore "github.com/nadit/nadit-backend/store/mongo"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

func openMongo(ctx context.Context, cfg config.DatabaseConfig) (store.Database, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URL))
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("mongo ping: %w", err)
	}
	return mongostore.NewFeedbackStore(client.Database(cfg.Name)), nil
}
