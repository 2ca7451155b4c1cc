package repository

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/coursehaven/backend/internal/db"
	"github.com/coursehaven/backend/internal/models"
)

// PurchaseRepository is the ownership ledger. Insert is the conditional
// write: the unique (user_id, course_id) index turns a concurrent duplicate
// into ErrAlreadyPurchased instead of a second record.
type PurchaseRepository interface {
	Insert(ctx context.Context, purchase *models.Purchase) error
	Exists(ctx context.Context, userID, courseID primitive.ObjectID) (bool, error)
	FindByUser(ctx context.Context, userID primitive.ObjectID) ([]models.Purchase, error)
}

type purchaseRepoImpl struct {
	coll *mongo.Collection
}

func NewPurchaseRepository(database *mongo.Database) PurchaseRepository {
	return &purchaseRepoImpl{coll: database.Collection(db.PurchaseCollection)}
}

func (r *purchaseRepoImpl) Insert(ctx context.Context, purchase *models.Purchase) error {
	_, err := r.coll.InsertOne(ctx, purchase)
	if mongo.IsDuplicateKeyError(err) {
		return models.ErrAlreadyPurchased
	}
	if err != nil {
		return fmt.Errorf("insert purchase: %w", err)
	}
	return nil
}

func (r *purchaseRepoImpl) Exists(ctx context.Context, userID, courseID primitive.ObjectID) (bool, error) {
	err := r.coll.FindOne(ctx, bson.M{"user_id": userID, "course_id": courseID}).Err()
	if errors.Is(err, mongo.ErrNoDocuments) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("find purchase: %w", err)
	}
	return true, nil
}

func (r *purchaseRepoImpl) FindByUser(ctx context.Context, userID primitive.ObjectID) ([]models.Purchase, error) {
	cursor, err := r.coll.Find(ctx, bson.M{"user_id": userID})
	if err != nil {
		return nil, fmt.Errorf("find purchases: %w", err)
	}
	defer cursor.Close(ctx)

	purchases := []models.Purchase{}
	if err := cursor.All(ctx, &purchases); err != nil {
		return nil, fmt.Errorf("decode purchases: %w", err)
	}
	return purchases, nil
}
