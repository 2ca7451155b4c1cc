package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Account is a credential record. Admins and users share the same shape;
// the role is implied by the collection the record lives in.
type Account struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	FirstName string             `bson:"first_name" json:"firstName" validate:"required,min=3"`
	LastName  string             `bson:"last_name" json:"lastName" validate:"required,min=3"`
	Email     string             `bson:"email" json:"email" validate:"required,email"`
	Password  string             `bson:"password,omitempty" json:"-"`
	CreatedBy string             `bson:"created_by,omitempty" json:"-"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time          `bson:"updated_at" json:"-"`
}

// Public returns the identity fields safe to put in a response body.
func (a Account) Public() map[string]interface{} {
	return map[string]interface{}{
		"id":        a.ID.Hex(),
		"firstName": a.FirstName,
		"lastName":  a.LastName,
		"email":     a.Email,
	}
}
