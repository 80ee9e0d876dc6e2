package repository

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"readiness/internal/model"
)

// ResultRepo handles MongoDB operations for completed assessment results
type ResultRepo interface {
	Save(ctx context.Context, result *model.AssessmentResult) error
	GetBySessionID(ctx context.Context, sessionID string) (*model.AssessmentResult, error)
	ListByUser(ctx context.Context, userID string) ([]*model.AssessmentResult, error)
}

type resultRepo struct {
	collection *mongo.Collection
}

// NewResultRepo creates a new result repository
func NewResultRepo(db *mongo.Database) ResultRepo {
	return &resultRepo{
		collection: db.Collection("results"),
	}
}

func (r *resultRepo) Save(ctx context.Context, result *model.AssessmentResult) error {
	opts := options.Replace().SetUpsert(true)
	_, err := r.collection.ReplaceOne(ctx, bson.M{"_id": result.SessionID}, result, opts)
	return err
}

func (r *resultRepo) GetBySessionID(ctx context.Context, sessionID string) (*model.AssessmentResult, error) {
	var result model.AssessmentResult
	err := r.collection.FindOne(ctx, bson.M{"_id": sessionID}).Decode(&result)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// ListByUser returns a user's results, newest first
func (r *resultRepo) ListByUser(ctx context.Context, userID string) ([]*model.AssessmentResult, error) {
	opts := options.Find().SetSort(bson.D{{Key: "completedAt", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.M{"userId": userID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var results []*model.AssessmentResult
	if err := cursor.All(ctx, &results); err != nil {
		return nil, err
	}
	return results, nil
}
