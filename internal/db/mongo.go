package db

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Collection names used across the repositories.
const (
	AdminCollection    = "admins"
	UserCollection     = "users"
	CourseCollection   = "courses"
	PurchaseCollection = "purchases"
	OrderCollection    = "orders"
)

// Connect opens a MongoDB connection and verifies it with a ping.
func Connect(ctx context.Context, uri, dbName string) (*mongo.Database, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("mongodb connect: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("mongodb ping: %w", err)
	}
	return client.Database(dbName), nil
}

// EnsureIndexes creates the indexes the workflow relies on: unique emails per
// credential collection, a unique (user_id, course_id) pair on the purchase
// ledger, and a unique payment_id on orders. The last two are what make the
// duplicate-purchase guard and order finalization safe to retry.
func EnsureIndexes(ctx context.Context, database *mongo.Database) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	unique := options.Index().SetUnique(true)

	for _, coll := range []string{AdminCollection, UserCollection} {
		_, err := database.Collection(coll).Indexes().CreateOne(ctx, mongo.IndexModel{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: unique,
		})
		if err != nil {
			return fmt.Errorf("index %s.email: %w", coll, err)
		}
	}

	_, err := database.Collection(PurchaseCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "user_id", Value: 1}, {Key: "course_id", Value: 1}},
		Options: unique,
	})
	if err != nil {
		return fmt.Errorf("index purchases.user_id+course_id: %w", err)
	}

	_, err = database.Collection(OrderCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "payment_id", Value: 1}},
		Options: unique,
	})
	if err != nil {
		return fmt.Errorf("index orders.payment_id: %w", err)
	}
	return nil
}
