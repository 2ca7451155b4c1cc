package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CourseImage points at the stored course artwork: the object key in the
// image store plus the URL clients fetch it from.
type CourseImage struct {
	PublicID string `bson:"public_id" json:"public_id"`
	URL      string `bson:"url" json:"url"`
}

type Course struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Title       string             `bson:"title" json:"title"`
	Description string             `bson:"description" json:"description"`
	Price       float64            `bson:"price" json:"price"`
	Image       CourseImage        `bson:"image" json:"image"`
	CreatorID   primitive.ObjectID `bson:"creator_id" json:"creatorId"`
	CreatedBy   string             `bson:"created_by,omitempty" json:"-"`
	CreatedAt   time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt   time.Time          `bson:"updated_at" json:"updated_at"`
}

// CourseUpdate carries the mutable course fields for a conditional update.
// A nil Image leaves the stored artwork untouched.
type CourseUpdate struct {
	Title       string       `bson:"title"`
	Description string       `bson:"description"`
	Price       float64      `bson:"price"`
	Image       *CourseImage `bson:"image,omitempty"`
}
