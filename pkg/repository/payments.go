package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/example/agrigrow/pkg/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// LedgerRepository stores payment submissions for admin review.
type LedgerRepository struct {
	coll *mongo.Collection
}

func NewLedgerRepository(db *mongo.Database) *LedgerRepository {
	return &LedgerRepository{coll: db.Collection(paymentsCollection)}
}

func (r *LedgerRepository) Create(ctx context.Context, e *models.LedgerEntry) error {
	e.ID = primitive.NewObjectID()
	if _, err := r.coll.InsertOne(ctx, e); err != nil {
		return fmt.Errorf("failed to insert payment: %w", err)
	}
	return nil
}

func (r *LedgerRepository) List(ctx context.Context) ([]models.LedgerEntry, error) {
	opts := options.Find().SetSort(bson.D{{Key: "date", Value: -1}})
	cursor, err := r.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list payments: %w", err)
	}
	defer cursor.Close(ctx)

	entries := []models.LedgerEntry{}
	if err := cursor.All(ctx, &entries); err != nil {
		return nil, fmt.Errorf("failed to decode payments: %w", err)
	}
	return entries, nil
}

func (r *LedgerRepository) SetStatus(ctx context.Context, id primitive.ObjectID, status string) (*models.LedgerEntry, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var e models.LedgerEntry
	err := r.coll.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{"status": status}}, opts).Decode(&e)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update payment status: %w", err)
	}
	return &e, nil
}
