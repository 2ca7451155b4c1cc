package repository

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/coursehaven/backend/internal/db"
	"github.com/coursehaven/backend/internal/models"
)

// OrderRepository records payment confirmations. The unique payment_id index
// makes Insert safe against re-submitted confirmations.
type OrderRepository interface {
	Insert(ctx context.Context, order *models.Order) error
	FindByPaymentID(ctx context.Context, paymentID string) (*models.Order, error)
}

type orderRepoImpl struct {
	coll *mongo.Collection
}

func NewOrderRepository(database *mongo.Database) OrderRepository {
	return &orderRepoImpl{coll: database.Collection(db.OrderCollection)}
}

func (r *orderRepoImpl) Insert(ctx context.Context, order *models.Order) error {
	_, err := r.coll.InsertOne(ctx, order)
	if mongo.IsDuplicateKeyError(err) {
		return models.ErrDuplicateOrder
	}
	if err != nil {
		return fmt.Errorf("insert order: %w", err)
	}
	return nil
}

func (r *orderRepoImpl) FindByPaymentID(ctx context.Context, paymentID string) (*models.Order, error) {
	var order models.Order
	err := r.coll.FindOne(ctx, bson.M{"payment_id": paymentID}).Decode(&order)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find order: %w", err)
	}
	return &order, nil
}
