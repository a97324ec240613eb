package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	OrderPending   = "pending"
	OrderPreparing = "preparing"
	OrderReady     = "ready"
	OrderServed    = "served"
	OrderCancelled = "cancelled"
)

// OrderLine snapshots the menu item at order time. Name and price are copied
// in so later menu edits or deletions never change a historical bill.
type OrderLine struct {
	Menu_item_id *string  `json:"menu_item_id" validate:"required"`
	Name         *string  `json:"name" validate:"required"`
	Price        *float64 `json:"price" validate:"required"`
	Quantity     *int     `json:"quantity" validate:"required"`
	Notes        *string  `json:"notes"`
}

type Order struct {
	ID          primitive.ObjectID `bson:"_id"`
	Order_id    string             `json:"order_id"`
	Tab_id      *string            `json:"tab_id" validate:"required"`
	Items       []OrderLine        `json:"items" validate:"required"`
	Status      string             `json:"status"`
	Total       float64            `json:"total"`
	Waiter_id   *string            `json:"waiter_id"`
	Waiter_name *string            `json:"waiter_name"`
	Created_at  time.Time          `json:"created_at"`
	Updated_at  time.Time          `json:"updated_at"`
}

var orderTransitions = map[string][]string{
	OrderPending:   {OrderPreparing, OrderCancelled},
	OrderPreparing: {OrderReady, OrderCancelled},
	OrderReady:     {OrderServed, OrderCancelled},
	OrderServed:    {},
	OrderCancelled: {},
}

func IsOrderStatus(s string) bool {
	_, ok := orderTransitions[s]
	return ok
}

func CanTransitionOrder(from string, to string) bool {
	for _, next := range orderTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}
