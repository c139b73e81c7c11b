package infrastructure

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const defaultDatabaseName = "luminawell"

// Collection names
const (
	metricsCollectionName = "metrics"
	usersCollectionName   = "users"
	adminsCollectionName  = "admins"
	quotesCollectionName  = "quotes"
)

const idxOwnerTypeCreated = "OwnerIdMetricTypeCreatedAt"

var luminawellIndexes = map[string][]mongo.IndexModel{
	metricsCollectionName: {
		{
			Keys: bson.D{{Key: "ownerId", Value: 1}, {Key: "metricType", Value: 1}, {Key: "createdAt", Value: -1}},
			Options: options.Index().
				SetName(idxOwnerTypeCreated),
		},
	},
	usersCollectionName: {
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetName("UniqueEmail").SetUnique(true),
		},
	},
	adminsCollectionName: {
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetName("UniqueEmail").SetUnique(true),
		},
	},
}

// MongoAdapter wraps the mongo client for the repositories and owns the
// declared indexes.
type MongoAdapter struct {
	client   *mongo.Client
	database *mongo.Database
	logger   *log.Logger
}

// NewMongoAdapter connects, pings and declares the indexes. The database
// name is taken from the URI path when present.
func NewMongoAdapter(uri string, logger *log.Logger) (*MongoAdapter, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	clientOptions := options.Client().
		ApplyURI(uri).
		SetMaxPoolSize(50).
		SetMinPoolSize(5).
		SetMaxConnIdleTime(30 * time.Second).
		SetServerSelectionTimeout(5 * time.Second).
		SetConnectTimeout(10 * time.Second)

	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		return nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}

	dbName := extractDatabaseName(uri)
	if dbName == "" {
		dbName = defaultDatabaseName
	}

	adapter := &MongoAdapter{
		client:   client,
		database: client.Database(dbName),
		logger:   logger,
	}
	if err := adapter.ensureIndexes(ctx); err != nil {
		return nil, err
	}
	logger.Printf("connected to MongoDB database %s", dbName)
	return adapter, nil
}

func (a *MongoAdapter) Collection(name string) *mongo.Collection {
	return a.database.Collection(name)
}

func (a *MongoAdapter) Ping(ctx context.Context) error {
	return a.client.Ping(ctx, readpref.Primary())
}

func (a *MongoAdapter) Close(ctx context.Context) error {
	return a.client.Disconnect(ctx)
}

func (a *MongoAdapter) ensureIndexes(ctx context.Context) error {
	for collection, indexes := range luminawellIndexes {
		if _, err := a.Collection(collection).Indexes().CreateMany(ctx, indexes); err != nil {
			return fmt.Errorf("failed to create indexes on %s: %w", collection, err)
		}
	}
	return nil
}

// extractDatabaseName pulls the database from a mongodb URI,
// e.g. mongodb://host:27017/luminawell?authSource=admin -> luminawell
func extractDatabaseName(uri string) string {
	withoutScheme := uri
	if idx := strings.Index(uri, "://"); idx >= 0 {
		withoutScheme = uri[idx+3:]
	}
	slash := strings.Index(withoutScheme, "/")
	if slash < 0 {
		return ""
	}
	name := withoutScheme[slash+1:]
	if question := strings.Index(name, "?"); question >= 0 {
		name = name[:question]
	}
	return name
}
