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

// ComplaintRepository defines the interface for lost-item report database
// operations.
type ComplaintRepository interface {
	CreateComplaint(ctx context.Context, complaint *model.Complaint) (*model.Complaint, error)
	GetComplaint(ctx context.Context, id string) (*model.Complaint, error)
	ListComplaints(ctx context.Context) ([]*model.Complaint, error)
	UpdateComplaintStatus(ctx context.Context, id string, status model.ComplaintStatus) (*model.Complaint, error)
	DeleteComplaint(ctx context.Context, id string) (*model.Complaint, error)
}

const complaintCollection = "complaints"

type complaintMongoRepository struct {
	db *mongo.Database
}

// NewComplaintMongoRepository creates a MongoDB-backed ComplaintRepository.
func NewComplaintMongoRepository(db *mongo.Database) ComplaintRepository {
	return &complaintMongoRepository{db: db}
}

func (r *complaintMongoRepository) CreateComplaint(
	ctx context.Context,
	complaint *model.Complaint,
) (*model.Complaint, error) {
	now := time.Now()
	complaint.CreatedAt = now
	complaint.UpdatedAt = now

	result, err := r.db.Collection(complaintCollection).InsertOne(ctx, complaint)
	if err != nil {
		return nil, err
	}

	if objectID, ok := result.InsertedID.(bson.ObjectID); ok {
		complaint.ID = objectID
	} else {
		return nil, errors.New("failed to convert inserted ID to ObjectID")
	}

	return complaint, nil
}

func (r *complaintMongoRepository) GetComplaint(ctx context.Context, id string) (*model.Complaint, error) {
	objectID, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return nil, err
	}

	result := r.db.Collection(complaintCollection).FindOne(ctx, bson.M{"_id": objectID})
	if result.Err() != nil {
		return nil, result.Err()
	}

	var complaint model.Complaint
	if err := result.Decode(&complaint); err != nil {
		return nil, err
	}

	return &complaint, nil
}

// ListComplaints returns every complaint, newest-created first.
func (r *complaintMongoRepository) ListComplaints(ctx context.Context) ([]*model.Complaint, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})

	cursor, err := r.db.Collection(complaintCollection).Find(ctx, bson.M{}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var complaints []*model.Complaint
	for cursor.Next(ctx) {
		var complaint model.Complaint
		if err := cursor.Decode(&complaint); err != nil {
			return nil, err
		}
		complaints = append(complaints, &complaint)
	}

	if err := cursor.Err(); err != nil {
		return nil, err
	}

	return complaints, nil
}

func (r *complaintMongoRepository) UpdateComplaintStatus(
	ctx context.Context,
	id string,
	status model.ComplaintStatus,
) (*model.Complaint, error) {
	objectID, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return nil, err
	}

	result := r.db.Collection(complaintCollection).FindOneAndUpdate(
		ctx,
		bson.M{"_id": objectID},
		bson.M{"$set": bson.M{
			"status":     status,
			"updated_at": time.Now(),
		}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	)
	if result.Err() != nil {
		return nil, result.Err()
	}

	var complaint model.Complaint
	if err := result.Decode(&complaint); err != nil {
		return nil, err
	}

	return &complaint, nil
}

// DeleteComplaint removes a complaint and returns its prior state.
func (r *complaintMongoRepository) DeleteComplaint(ctx context.Context, id string) (*model.Complaint, error) {
	objectID, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return nil, err
	}

	result := r.db.Collection(complaintCollection).FindOneAndDelete(ctx, bson.M{"_id": objectID})
	if result.Err() != nil {
		return nil, result.Err()
	}

	var complaint model.Complaint
	if err := result.Decode(&complaint); err != nil {
		return nil, err
	}

	return &complaint, nil
}
