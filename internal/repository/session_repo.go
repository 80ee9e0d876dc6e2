package repository

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"readiness/internal/model"
)

// SessionRepo persists assessment sessions together with their resume context
type SessionRepo interface {
	Create(ctx context.Context, record *model.SessionRecord) error
	GetByID(ctx context.Context, id string) (*model.SessionRecord, error)
	// Update replaces the record only if the stored session is still in progress
	// at expectedIndex. Otherwise it returns ErrConcurrentUpdate.
	Update(ctx context.Context, record *model.SessionRecord, expectedIndex int) error
	ListByUser(ctx context.Context, userID string) ([]*model.SessionRecord, error)
}

type sessionRepo struct {
	collection *mongo.Collection
}

// NewSessionRepo creates a new session repository
func NewSessionRepo(db *mongo.Database) SessionRepo {
	return &sessionRepo{
		collection: db.Collection("sessions"),
	}
}

func (r *sessionRepo) Create(ctx context.Context, record *model.SessionRecord) error {
	record.ID = record.Session.ID
	record.UpdatedAt = time.Now()

	_, err := r.collection.InsertOne(ctx, record)
	if mongo.IsDuplicateKeyError(err) {
		return ErrDuplicateSession
	}
	return err
}

func (r *sessionRepo) GetByID(ctx context.Context, id string) (*model.SessionRecord, error) {
	var record model.SessionRecord
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&record)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &record, nil
}

func (r *sessionRepo) Update(ctx context.Context, record *model.SessionRecord, expectedIndex int) error {
	record.ID = record.Session.ID
	record.UpdatedAt = time.Now()

	filter := bson.M{
		"_id":                          record.ID,
		"session.status":               model.SessionInProgress,
		"session.currentQuestionIndex": expectedIndex,
	}
	result, err := r.collection.ReplaceOne(ctx, filter, record)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return ErrConcurrentUpdate
	}
	return nil
}

func (r *sessionRepo) ListByUser(ctx context.Context, userID string) ([]*model.SessionRecord, error) {
	cursor, err := r.collection.Find(ctx, bson.M{"session.userId": userID})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var records []*model.SessionRecord
	if err := cursor.All(ctx, &records); err != nil {
		return nil, err
	}
	return records, nil
}
