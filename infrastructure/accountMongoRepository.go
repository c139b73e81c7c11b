package infrastructure

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/luminawell/luminawell-api/schema"
)

// AccountMongoRepository persists credential documents for one role.
// User and admin accounts live in separate collections with the same shape.
type AccountMongoRepository struct {
	*MongoAdapter
	collectionName string
}

func NewAccountMongoRepository(adapter *MongoAdapter, role string) (*AccountMongoRepository, error) {
	var collectionName string
	switch role {
	case schema.RoleUser:
		collectionName = usersCollectionName
	case schema.RoleAdmin:
		collectionName = adminsCollectionName
	default:
		return nil, fmt.Errorf("unknown account role %q", role)
	}
	return &AccountMongoRepository{
		MongoAdapter:   adapter,
		collectionName: collectionName,
	}, nil
}

func (r *AccountMongoRepository) collection() *mongo.Collection {
	return r.Collection(r.collectionName)
}

func (r *AccountMongoRepository) FindByEmail(ctx context.Context, email string) (*schema.Account, error) {
	var account schema.Account
	if err := r.collection().FindOne(ctx, bson.M{"email": email}).Decode(&account); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &account, nil
}

func (r *AccountMongoRepository) Create(ctx context.Context, account *schema.Account) error {
	result, err := r.collection().InsertOne(ctx, account)
	if err != nil {
		return err
	}
	if objectID, ok := result.InsertedID.(primitive.ObjectID); ok {
		account.ID = objectID
	}
	return nil
}

func (r *AccountMongoRepository) UpdatePassword(ctx context.Context, email string, passwordHash string) (bool, error) {
	update := bson.M{"$set": bson.M{
		"password":  passwordHash,
		"updatedAt": time.Now(),
	}}
	result, err := r.collection().UpdateOne(ctx, bson.M{"email": email}, update)
	if err != nil {
		return false, err
	}
	return result.MatchedCount > 0, nil
}
