package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Waiter is staff identity scoped to one restaurant. The 4-digit PIN is a
// plaintext convenience gate for the waiter app, not a security boundary.
type Waiter struct {
	ID            primitive.ObjectID `bson:"_id"`
	Waiter_id     string             `json:"waiter_id"`
	Restaurant_id *string            `json:"restaurant_id" validate:"required"`
	Name          *string            `json:"name" validate:"required,min=2,max=100"`
	Pin           *string            `json:"pin" validate:"required,len=4,numeric"`
	Active        bool               `json:"active"`
	Created_at    time.Time          `json:"created_at"`
	Updated_at    time.Time          `json:"updated_at"`
}
