package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Order statuses. An order stays pending until the payment intent has been
// verified against the gateway; only then is it recorded as success.
const (
	OrderPending = "pending"
	OrderSuccess = "success"
	OrderFailed  = "failed"
)

// Order records the confirmed payment behind a purchase. PaymentID carries a
// unique index so re-submitting the same confirmation cannot record a second
// order.
type Order struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Email     string             `bson:"email" json:"email"`
	UserID    primitive.ObjectID `bson:"user_id" json:"userId"`
	CourseID  primitive.ObjectID `bson:"course_id" json:"courseId"`
	PaymentID string             `bson:"payment_id" json:"paymentId"`
	Amount    float64            `bson:"amount" json:"amount"`
	Status    string             `bson:"status" json:"status"`
	CreatedBy string             `bson:"created_by,omitempty" json:"-"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
}
