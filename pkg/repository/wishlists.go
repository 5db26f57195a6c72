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
	"go.mongodb.org/mongo-driver/mongo/options"
)

type WishlistRepository struct {
	coll *mongo.Collection
}

func NewWishlistRepository(db *mongo.Database) *WishlistRepository {
	return &WishlistRepository{coll: db.Collection(wishlistsCollection)}
}

func (r *WishlistRepository) FindByUser(ctx context.Context, userID string) (*models.Wishlist, error) {
	var w models.Wishlist
	err := r.coll.FindOne(ctx, bson.M{"userId": userID}).Decode(&w)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find wishlist: %w", err)
	}
	return &w, nil
}

// AddProduct adds productID to the user's set, creating the wishlist on
// first use, and returns the stored result.
func (r *WishlistRepository) AddProduct(ctx context.Context, userID string, productID primitive.ObjectID) (*models.Wishlist, error) {
	now := time.Now()
	update := bson.M{
		"$addToSet":    bson.M{"products": productID},
		"$set":         bson.M{"updatedAt": now},
		"$setOnInsert": bson.M{"createdAt": now},
	}
	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)

	var w models.Wishlist
	if err := r.coll.FindOneAndUpdate(ctx, bson.M{"userId": userID}, update, opts).Decode(&w); err != nil {
		return nil, fmt.Errorf("failed to add to wishlist: %w", err)
	}
	return &w, nil
}

func (r *WishlistRepository) RemoveProduct(ctx context.Context, userID string, productID primitive.ObjectID) (*models.Wishlist, error) {
	update := bson.M{
		"$pull": bson.M{"products": productID},
		"$set":  bson.M{"updatedAt": time.Now()},
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var w models.Wishlist
	err := r.coll.FindOneAndUpdate(ctx, bson.M{"userId": userID}, update, opts).Decode(&w)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to remove from wishlist: %w", err)
	}
	return &w, nil
}

// DeleteIfEmpty removes the user's wishlist only while its set is empty, so a
// concurrent add is never thrown away.
func (r *WishlistRepository) DeleteIfEmpty(ctx context.Context, userID string) (bool, error) {
	res, err := r.coll.DeleteOne(ctx, bson.M{"userId": userID, "products": bson.M{"$size": 0}})
	if err != nil {
		return false, fmt.Errorf("failed to delete wishlist: %w", err)
	}
	return res.DeletedCount > 0, nil
}
