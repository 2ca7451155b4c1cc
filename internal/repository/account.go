package repository

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/coursehaven/backend/internal/models"
)

// AccountRepository reads and writes one credential collection. The same
// implementation backs both admins and users; the collection decides the role.
type AccountRepository interface {
	FindByEmail(ctx context.Context, email string) (*models.Account, error)
	Insert(ctx context.Context, account *models.Account) error
}

type accountRepoImpl struct {
	coll *mongo.Collection
}

func NewAccountRepository(database *mongo.Database, collection string) AccountRepository {
	return &accountRepoImpl{coll: database.Collection(collection)}
}

func (r *accountRepoImpl) FindByEmail(ctx context.Context, email string) (*models.Account, error) {
	var account models.Account
	err := r.coll.FindOne(ctx, bson.M{"email": email}).Decode(&account)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, models.ErrAccountNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find account: %w", err)
	}
	return &account, nil
}

func (r *accountRepoImpl) Insert(ctx context.Context, account *models.Account) error {
	_, err := r.coll.InsertOne(ctx, account)
	if mongo.IsDuplicateKeyError(err) {
		return models.ErrEmailTaken
	}
	if err != nil {
		return fmt.Errorf("insert account: %w", err)
	}
	return nil
}
