package infrastructure

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/luminawell/luminawell-api/schema"
)

// MetricMongoRepository persists MetricEntry documents. Every query filters
// by the owner id so another user's document id reads as a miss.
type MetricMongoRepository struct {
	*MongoAdapter
}

func NewMetricMongoRepository(adapter *MongoAdapter) *MetricMongoRepository {
	return &MetricMongoRepository{MongoAdapter: adapter}
}

func (r *MetricMongoRepository) collection() *mongo.Collection {
	return r.Collection(metricsCollectionName)
}

// ownerQuery is the access-control key of every entry operation.
func ownerQuery(ownerID string) bson.M {
	return bson.M{"ownerId": ownerID}
}

func ownerEntryQuery(id string, ownerID string) (bson.M, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, err
	}
	return bson.M{"_id": objectID, "ownerId": ownerID}, nil
}

// ListByOwnerAndType returns all documents of the owner for one type, in
// store-native order.
func (r *MetricMongoRepository) ListByOwnerAndType(ctx context.Context, ownerID string, metricType schema.MetricType) ([]schema.MetricEntry, error) {
	query := ownerQuery(ownerID)
	query["metricType"] = metricType
	return r.list(ctx, query)
}

func (r *MetricMongoRepository) ListByOwner(ctx context.Context, ownerID string) ([]schema.MetricEntry, error) {
	return r.list(ctx, ownerQuery(ownerID))
}

func (r *MetricMongoRepository) list(ctx context.Context, query bson.M) ([]schema.MetricEntry, error) {
	cursor, err := r.collection().Find(ctx, query)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	entries := []schema.MetricEntry{}
	if err := cursor.All(ctx, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

func (r *MetricMongoRepository) GetByIDAndOwner(ctx context.Context, id string, ownerID string) (*schema.MetricEntry, error) {
	query, err := ownerEntryQuery(id, ownerID)
	if err != nil {
		// a malformed id cannot match any document
		return nil, nil
	}
	var entry schema.MetricEntry
	if err := r.collection().FindOne(ctx, query).Decode(&entry); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &entry, nil
}

func (r *MetricMongoRepository) Create(ctx context.Context, entry *schema.MetricEntry) error {
	now := time.Now()
	entry.CreatedAt = now
	entry.UpdatedAt = now
	result, err := r.collection().InsertOne(ctx, entry)
	if err != nil {
		return err
	}
	if objectID, ok := result.InsertedID.(primitive.ObjectID); ok {
		entry.ID = objectID
	}
	return nil
}

func (r *MetricMongoRepository) ReplacePayload(ctx context.Context, id string, ownerID string, metricType schema.MetricType, payload interface{}) (*schema.MetricEntry, error) {
	query, err := ownerEntryQuery(id, ownerID)
	if err != nil {
		return nil, nil
	}
	// the type filter keeps a cross-type id from growing a second payload
	query["metricType"] = metricType
	update := bson.M{"$set": bson.M{
		string(metricType): payload,
		"updatedAt":        time.Now(),
	}}
	return r.findOneAndUpdate(ctx, query, update)
}

func (r *MetricMongoRepository) UpdateValue(ctx context.Context, id string, ownerID string, value interface{}) (*schema.MetricEntry, error) {
	query, err := ownerEntryQuery(id, ownerID)
	if err != nil {
		return nil, nil
	}
	update := bson.M{"$set": bson.M{
		"value":     value,
		"updatedAt": time.Now(),
	}}
	return r.findOneAndUpdate(ctx, query, update)
}

func (r *MetricMongoRepository) findOneAndUpdate(ctx context.Context, query bson.M, update bson.M) (*schema.MetricEntry, error) {
	var entry schema.MetricEntry
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	if err := r.collection().FindOneAndUpdate(ctx, query, update, opts).Decode(&entry); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &entry, nil
}

func (r *MetricMongoRepository) Delete(ctx context.Context, id string, ownerID string, metricType schema.MetricType) (int64, error) {
	query, err := ownerEntryQuery(id, ownerID)
	if err != nil {
		return 0, nil
	}
	query["metricType"] = metricType
	result, err := r.collection().DeleteOne(ctx, query)
	if err != nil {
		return 0, err
	}
	return result.DeletedCount, nil
}

func (r *MetricMongoRepository) DeleteByType(ctx context.Context, ownerID string, metricType schema.MetricType) (int64, error) {
	query := ownerQuery(ownerID)
	query["metricType"] = metricType
	result, err := r.collection().DeleteMany(ctx, query)
	if err != nil {
		return 0, err
	}
	return result.DeletedCount, nil
}

// SummarizeByType groups all entries by metric type: entry count, distinct
// owners and latest entry time.
func (r *MetricMongoRepository) SummarizeByType(ctx context.Context) ([]schema.MetricSummary, error) {
	pipeline := []bson.M{
		{"$group": bson.M{
			"_id":         "$metricType",
			"entryCount":  bson.M{"$sum": 1},
			"owners":      bson.M{"$addToSet": "$ownerId"},
			"latestEntry": bson.M{"$max": "$updatedAt"},
		}},
		{"$project": bson.M{
			"_id":         1,
			"entryCount":  1,
			"ownerCount":  bson.M{"$size": "$owners"},
			"latestEntry": 1,
		}},
		{"$sort": bson.M{"_id": 1}},
	}
	cursor, err := r.collection().Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	summaries := []schema.MetricSummary{}
	if err := cursor.All(ctx, &summaries); err != nil {
		return nil, err
	}
	return summaries, nil
}
