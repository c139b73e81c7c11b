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

// QuoteMongoRepository persists the motivational quotes shown on the
// dashboards.
type QuoteMongoRepository struct {
	*MongoAdapter
}

func NewQuoteMongoRepository(adapter *MongoAdapter) *QuoteMongoRepository {
	return &QuoteMongoRepository{MongoAdapter: adapter}
}

func (r *QuoteMongoRepository) collection() *mongo.Collection {
	return r.Collection(quotesCollectionName)
}

func (r *QuoteMongoRepository) List(ctx context.Context, filter schema.QuoteFilter) ([]schema.Quote, error) {
	query := bson.M{}
	if filter.ID != "" {
		objectID, err := primitive.ObjectIDFromHex(filter.ID)
		if err != nil {
			return []schema.Quote{}, nil
		}
		query["_id"] = objectID
	}
	if filter.Text != "" {
		query["text"] = bson.M{"$regex": filter.Text, "$options": "i"}
	}
	if filter.Author != "" {
		query["author"] = bson.M{"$regex": filter.Author, "$options": "i"}
	}

	cursor, err := r.collection().Find(ctx, query)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	quotes := []schema.Quote{}
	if err := cursor.All(ctx, &quotes); err != nil {
		return nil, err
	}
	return quotes, nil
}

func (r *QuoteMongoRepository) Create(ctx context.Context, quote *schema.Quote) error {
	now := time.Now()
	quote.CreatedAt = now
	quote.UpdatedAt = now
	result, err := r.collection().InsertOne(ctx, quote)
	if err != nil {
		return err
	}
	if objectID, ok := result.InsertedID.(primitive.ObjectID); ok {
		quote.ID = objectID
	}
	return nil
}

func (r *QuoteMongoRepository) Update(ctx context.Context, id string, quote *schema.Quote) (*schema.Quote, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, nil
	}
	update := bson.M{"$set": bson.M{
		"text":      quote.Text,
		"author":    quote.Author,
		"category":  quote.Category,
		"updatedAt": time.Now(),
	}}
	var updated schema.Quote
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	if err := r.collection().FindOneAndUpdate(ctx, bson.M{"_id": objectID}, update, opts).Decode(&updated); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &updated, nil
}

func (r *QuoteMongoRepository) Delete(ctx context.Context, id string) (int64, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return 0, nil
	}
	result, err := r.collection().DeleteOne(ctx, bson.M{"_id": objectID})
	if err != nil {
		return 0, err
	}
	return result.DeletedCount, nil
}
