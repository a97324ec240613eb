package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Subscription struct {
	ID              primitive.ObjectID `bson:"_id"`
	Subscription_id string             `json:"subscription_id"`
	Restaurant_id   *string            `json:"restaurant_id" validate:"required"`
	Plan            *string            `json:"plan" validate:"required,eq=free|eq=standard|eq=premium"`
	Status          *string            `json:"status" validate:"required,eq=trial|eq=active|eq=past_due|eq=cancelled"`
	Expires_at      time.Time          `json:"expires_at"`
	Created_at      time.Time          `json:"created_at"`
	Updated_at      time.Time          `json:"updated_at"`
}
