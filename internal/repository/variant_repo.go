package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"readiness/internal/model"
)

// VariantRepo handles MongoDB operations for A/B variants
type VariantRepo interface {
	Upsert(ctx context.Context, variant *model.Variant) (string, error)
	GetByID(ctx context.Context, id string) (*model.Variant, error)
	ListByType(ctx context.Context, t model.AssessmentType, activeOnly bool) ([]*model.Variant, error)
}

type variantRepo struct {
	collection *mongo.Collection
}

// NewVariantRepo creates a new variant repository
func NewVariantRepo(db *mongo.Database) VariantRepo {
	return &variantRepo{
		collection: db.Collection("variants"),
	}
}

// Upsert stores the variant, assigning an id when it has none
func (r *variantRepo) Upsert(ctx context.Context, variant *model.Variant) (string, error) {
	if variant.ID == "" {
		variant.ID = uuid.NewString()
	}
	if variant.CreatedAt.IsZero() {
		variant.CreatedAt = time.Now()
	}

	opts := options.Replace().SetUpsert(true)
	if _, err := r.collection.ReplaceOne(ctx, bson.M{"_id": variant.ID}, variant, opts); err != nil {
		return "", err
	}
	return variant.ID, nil
}

func (r *variantRepo) GetByID(ctx context.Context, id string) (*model.Variant, error) {
	var variant model.Variant
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&variant)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &variant, nil
}

// ListByType returns variants in creation order so assignment stays stable
func (r *variantRepo) ListByType(ctx context.Context, t model.AssessmentType, activeOnly bool) ([]*model.Variant, error) {
	filter := bson.M{"assessmentType": t}
	if activeOnly {
		filter["active"] = true
	}
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}, {Key: "_id", Value: 1}})

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var variants []*model.Variant
	if err := cursor.All(ctx, &variants); err != nil {
		return nil, err
	}
	return variants, nil
}
