package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Purchase is the ledger entry recording that a user owns a course.
// A unique index on (user_id, course_id) makes the ledger the authoritative
// duplicate-purchase guard.
type Purchase struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	UserID      primitive.ObjectID `bson:"user_id" json:"userId"`
	CourseID    primitive.ObjectID `bson:"course_id" json:"courseId"`
	PurchasedBy string             `bson:"purchased_by,omitempty" json:"-"`
	CreatedAt   time.Time          `bson:"created_at" json:"created_at"`
}
