package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	TabInactive          = "inactive"
	TabActive            = "active"
	TabPendingAcceptance = "pending_acceptance"
	TabBillAccepted      = "bill_accepted"
	TabCompleted         = "completed"
	TabCancelled         = "cancelled"
)

type Tab struct {
	ID               primitive.ObjectID `bson:"_id"`
	Tab_id           string             `json:"tab_id"`
	Restaurant_id    *string            `json:"restaurant_id" validate:"required"`
	Reference_number string             `json:"reference_number"`
	Status           string             `json:"status" validate:"required,eq=inactive|eq=active|eq=pending_acceptance|eq=bill_accepted|eq=completed|eq=cancelled"`
	Waiter_id        *string            `json:"waiter_id"`
	Waiter_name      *string            `json:"waiter_name"`
	Total            float64            `json:"total"`
	Order_count      int                `json:"order_count"`
	Item_count       int                `json:"item_count"`
	Created_at       time.Time          `json:"created_at"`
	Updated_at       time.Time          `json:"updated_at"`
}

// tabTransitions lists every legal forward move. cancelled is reachable from
// any non-terminal status except inactive (an inactive tab is abandoned, not
// cancelled).
var tabTransitions = map[string][]string{
	TabInactive:          {TabActive},
	TabActive:            {TabPendingAcceptance, TabCancelled},
	TabPendingAcceptance: {TabBillAccepted, TabCancelled},
	TabBillAccepted:      {TabCompleted, TabCancelled},
	TabCompleted:         {},
	TabCancelled:         {},
}

func IsTabStatus(s string) bool {
	_, ok := tabTransitions[s]
	return ok
}

func TabTerminal(s string) bool {
	return s == TabCompleted || s == TabCancelled
}

// CanTransitionTab reports whether a tab may move from one status to
// another. Same-status writes are not transitions and are rejected.
func CanTransitionTab(from string, to string) bool {
	for _, next := range tabTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}
