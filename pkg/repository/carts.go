package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/example/agrigrow/pkg/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// CartRepository stores one cart document per user. Save and Delete only
// apply when the stored version matches the one that was read.
type CartRepository struct {
	coll *mongo.Collection
}

func NewCartRepository(db *mongo.Database) *CartRepository {
	return &CartRepository{coll: db.Collection(cartsCollection)}
}

func (r *CartRepository) FindByUser(ctx context.Context, userID string) (*models.Cart, error) {
	var cart models.Cart
	err := r.coll.FindOne(ctx, bson.M{"userId": userID}).Decode(&cart)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find cart: %w", err)
	}
	return &cart, nil
}

// Create inserts a first cart for the user. Losing the race against another
// first insert surfaces as ErrVersionConflict through the unique userId index.
func (r *CartRepository) Create(ctx context.Context, cart *models.Cart) error {
	now := time.Now()
	cart.ID = primitive.NewObjectID()
	cart.Version = 1
	cart.CreatedAt, cart.UpdatedAt = now, now

	_, err := r.coll.InsertOne(ctx, cart)
	if mongo.IsDuplicateKeyError(err) {
		return ErrVersionConflict
	}
	if err != nil {
		return fmt.Errorf("failed to insert cart: %w", err)
	}
	return nil
}

func (r *CartRepository) Save(ctx context.Context, cart *models.Cart) error {
	now := time.Now()
	filter := bson.M{"_id": cart.ID, "version": cart.Version}
	update := bson.M{
		"$set": bson.M{"items": cart.Items, "updatedAt": now},
		"$inc": bson.M{"version": 1},
	}

	res, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("failed to update cart: %w", err)
	}
	if res.MatchedCount == 0 {
		return ErrVersionConflict
	}
	cart.Version++
	cart.UpdatedAt = now
	return nil
}

func (r *CartRepository) Delete(ctx context.Context, cart *models.Cart) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": cart.ID, "version": cart.Version})
	if err != nil {
		return fmt.Errorf("failed to delete cart: %w", err)
	}
	if res.DeletedCount == 0 {
		return ErrVersionConflict
	}
	return nil
}
