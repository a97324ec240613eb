package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Restaurant struct {
	ID                primitive.ObjectID     `bson:"_id"`
	Restaurant_id     string                 `json:"restaurant_id"`
	Owner_id          *string                `json:"owner_id" validate:"required"`
	Name              *string                `json:"name" validate:"required,min=2,max=200"`
	Address           *string                `json:"address"`
	Phone             *string                `json:"phone"`
	Settings          map[string]interface{} `json:"settings"`
	Payment_types     []string               `json:"payment_types"`
	Daily_tab_counter int                    `json:"daily_tab_counter"`
	Last_tab_reset    time.Time              `json:"last_tab_reset"`
	Created_at        time.Time              `json:"created_at"`
	Updated_at        time.Time              `json:"updated_at"`
}
