package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/coursehaven/backend/internal/db"
	"github.com/coursehaven/backend/internal/models"
)

// CourseRepository is the catalog store. UpdateOwned and DeleteOwned run a
// single conditional operation keyed on (_id, creator_id): a miss means
// "not found or not yours" and is never split into two distinguishable
// failures.
type CourseRepository interface {
	Insert(ctx context.Context, course *models.Course) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Course, error)
	FindAll(ctx context.Context) ([]models.Course, error)
	FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.Course, error)
	UpdateOwned(ctx context.Context, id, creatorID primitive.ObjectID, update models.CourseUpdate) (*models.Course, error)
	DeleteOwned(ctx context.Context, id, creatorID primitive.ObjectID) (*models.Course, error)
}

type courseRepoImpl struct {
	coll *mongo.Collection
}

func NewCourseRepository(database *mongo.Database) CourseRepository {
	return &courseRepoImpl{coll: database.Collection(db.CourseCollection)}
}

func (r *courseRepoImpl) Insert(ctx context.Context, course *models.Course) error {
	_, err := r.coll.InsertOne(ctx, course)
	if err != nil {
		return fmt.Errorf("insert course: %w", err)
	}
	return nil
}

func (r *courseRepoImpl) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Course, error) {
	var course models.Course
	err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&course)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, models.ErrCourseNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find course: %w", err)
	}
	return &course, nil
}

func (r *courseRepoImpl) FindAll(ctx context.Context) ([]models.Course, error) {
	return r.find(ctx, bson.M{})
}

func (r *courseRepoImpl) FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.Course, error) {
	return r.find(ctx, bson.M{"_id": bson.M{"$in": ids}})
}

func (r *courseRepoImpl) find(ctx context.Context, filter bson.M) ([]models.Course, error) {
	cursor, err := r.coll.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("find courses: %w", err)
	}
	defer cursor.Close(ctx)

	courses := []models.Course{}
	if err := cursor.All(ctx, &courses); err != nil {
		return nil, fmt.Errorf("decode courses: %w", err)
	}
	return courses, nil
}

func (r *courseRepoImpl) UpdateOwned(ctx context.Context, id, creatorID primitive.ObjectID, update models.CourseUpdate) (*models.Course, error) {
	set := bson.M{
		"title":       update.Title,
		"description": update.Description,
		"price":       update.Price,
		"updated_at":  time.Now(),
	}
	if update.Image != nil {
		set["image"] = *update.Image
	}

	var course models.Course
	err := r.coll.FindOneAndUpdate(ctx,
		bson.M{"_id": id, "creator_id": creatorID},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&course)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, models.ErrCourseNotOwned
	}
	if err != nil {
		return nil, fmt.Errorf("update course: %w", err)
	}
	return &course, nil
}

func (r *courseRepoImpl) DeleteOwned(ctx context.Context, id, creatorID primitive.ObjectID) (*models.Course, error) {
	var course models.Course
	err := r.coll.FindOneAndDelete(ctx, bson.M{"_id": id, "creator_id": creatorID}).Decode(&course)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, models.ErrCourseNotOwned
	}
	if err != nil {
		return nil, fmt.Errorf("delete course: %w", err)
	}
	return &course, nil
}
