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

type AddressRepository struct {
	coll *mongo.Collection
}

func NewAddressRepository(db *mongo.Database) *AddressRepository {
	return &AddressRepository{coll: db.Collection(addressesCollection)}
}

func (r *AddressRepository) Create(ctx context.Context, a *models.Address) error {
	now := time.Now()
	a.ID = primitive.NewObjectID()
	a.CreatedAt, a.UpdatedAt = now, now

	if _, err := r.coll.InsertOne(ctx, a); err != nil {
		return fmt.Errorf("failed to insert address: %w", err)
	}
	return nil
}

// FindOwned returns the address only if it belongs to userID.
func (r *AddressRepository) FindOwned(ctx context.Context, id primitive.ObjectID, userID string) (*models.Address, error) {
	return r.findOne(ctx, bson.M{"_id": id, "userId": userID})
}

func (r *AddressRepository) FindByLocation(ctx context.Context, userID, address, pincode string) (*models.Address, error) {
	return r.findOne(ctx, bson.M{"userId": userID, "address": address, "pincode": pincode})
}

func (r *AddressRepository) findOne(ctx context.Context, filter bson.M) (*models.Address, error) {
	var a models.Address
	err := r.coll.FindOne(ctx, filter).Decode(&a)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find address: %w", err)
	}
	return &a, nil
}

// ListByUser returns the default address first, then oldest first.
func (r *AddressRepository) ListByUser(ctx context.Context, userID string) ([]models.Address, error) {
	opts := options.Find().SetSort(bson.D{{Key: "isDefault", Value: -1}, {Key: "createdAt", Value: 1}})
	cursor, err := r.coll.Find(ctx, bson.M{"userId": userID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list addresses: %w", err)
	}
	defer cursor.Close(ctx)

	addresses := []models.Address{}
	if err := cursor.All(ctx, &addresses); err != nil {
		return nil, fmt.Errorf("failed to decode addresses: %w", err)
	}
	return addresses, nil
}

// UnsetDefault clears the default flag on every address of userID except the
// one with id except. Pass primitive.NilObjectID to clear all of them.
func (r *AddressRepository) UnsetDefault(ctx context.Context, userID string, except primitive.ObjectID) error {
	filter := bson.M{"userId": userID, "isDefault": true, "_id": bson.M{"$ne": except}}
	update := bson.M{"$set": bson.M{"isDefault": false, "updatedAt": time.Now()}}
	if _, err := r.coll.UpdateMany(ctx, filter, update); err != nil {
		return fmt.Errorf("failed to unset default addresses: %w", err)
	}
	return nil
}

func (r *AddressRepository) Replace(ctx context.Context, a *models.Address) error {
	a.UpdatedAt = time.Now()
	res, err := r.coll.ReplaceOne(ctx, bson.M{"_id": a.ID, "userId": a.UserID}, a)
	if err != nil {
		return fmt.Errorf("failed to update address: %w", err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}
