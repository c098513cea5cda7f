package repository

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/krmu/lostfound-api/internal/model"
)

// FoundItemRepository defines the interface for found-item database
// operations.
type FoundItemRepository interface {
	CreateFoundItem(ctx context.Context, item *model.FoundItem) (*model.FoundItem, error)
	ListFoundItems(ctx context.Context) ([]*model.FoundItem, error)
	MarkFoundItemReturned(ctx context.Context, id string) (*model.FoundItem, error)
	DeleteFoundItem(ctx context.Context, id string) (*model.FoundItem, error)
}

const foundItemCollection = "found_items"

type foundItemMongoRepository struct {
	db *mongo.Database
}

// NewFoundItemMongoRepository creates a MongoDB-backed FoundItemRepository.
func NewFoundItemMongoRepository(db *mongo.Database) FoundItemRepository {
	return &foundItemMongoRepository{db: db}
}

func (r *foundItemMongoRepository) CreateFoundItem(
	ctx context.Context,
	item *model.FoundItem,
) (*model.FoundItem, error) {
	now := time.Now()
	item.CreatedAt = now
	item.UpdatedAt = now

	result, err := r.db.Collection(foundItemCollection).InsertOne(ctx, item)
	if err != nil {
		return nil, err
	}

	if objectID, ok := result.InsertedID.(bson.ObjectID); ok {
		item.ID = objectID
	} else {
		return nil, errors.New("failed to convert inserted ID to ObjectID")
	}

	return item, nil
}

func (r *foundItemMongoRepository) ListFoundItems(ctx context.Context) ([]*model.FoundItem, error) {
	cursor, err := r.db.Collection(foundItemCollection).Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var items []*model.FoundItem
	for cursor.Next(ctx) {
		var item model.FoundItem
		if err := cursor.Decode(&item); err != nil {
			return nil, err
		}
		items = append(items, &item)
	}

	if err := cursor.Err(); err != nil {
		return nil, err
	}

	return items, nil
}

// MarkFoundItemReturned unconditionally flips is_returned to true.
func (r *foundItemMongoRepository) MarkFoundItemReturned(ctx context.Context, id string) (*model.FoundItem, error) {
	objectID, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return nil, err
	}

	result := r.db.Collection(foundItemCollection).FindOneAndUpdate(
		ctx,
		bson.M{"_id": objectID},
		bson.M{"$set": bson.M{
			"is_returned": true,
			"updated_at":  time.Now(),
		}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	)
	if result.Err() != nil {
		return nil, result.Err()
	}

	var item model.FoundItem
	if err := result.Decode(&item); err != nil {
		return nil, err
	}

	return &item, nil
}

// DeleteFoundItem removes a found item and returns its prior state.
func (r *foundItemMongoRepository) DeleteFoundItem(ctx context.Context, id string) (*model.FoundItem, error) {
	objectID, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return nil, err
	}

	result := r.db.Collection(foundItemCollection).FindOneAndDelete(ctx, bson.M{"_id": objectID})
	if result.Err() != nil {
		return nil, result.Err()
	}

	var item model.FoundItem
	if err := result.Decode(&item); err != nil {
		return nil, err
	}

	return &item, nil
}
