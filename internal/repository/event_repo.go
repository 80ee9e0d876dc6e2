package repository

import (
	"context"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"readiness/internal/model"
)

// EventRepo stores completion events for later analysis
type EventRepo interface {
	Insert(ctx context.Context, event *model.CompletionEvent) error
	ListByType(ctx context.Context, t model.AssessmentType, limit int64) ([]*model.CompletionEvent, error)
}

type eventRepo struct {
	collection *mongo.Collection
}

// NewEventRepo creates a new completion event repository
func NewEventRepo(db *mongo.Database) EventRepo {
	return &eventRepo{
		collection: db.Collection("completion_events"),
	}
}

func (r *eventRepo) Insert(ctx context.Context, event *model.CompletionEvent) error {
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	_, err := r.collection.InsertOne(ctx, event)
	return err
}

// ListByType returns the latest events for an assessment type
func (r *eventRepo) ListByType(ctx context.Context, t model.AssessmentType, limit int64) ([]*model.CompletionEvent, error) {
	opts := options.Find().SetSort(bson.D{{Key: "completedAt", Value: -1}})
	if limit > 0 {
		opts.SetLimit(limit)
	}
	cursor, err := r.collection.Find(ctx, bson.M{"assessmentType": t}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var events []*model.CompletionEvent
	if err := cursor.All(ctx, &events); err != nil {
		return nil, err
	}
	return events, nil
}
