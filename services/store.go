package services

import (
	"context"
	"time"

	"bill-o/models"
)

// WaiterRef is the waiter identity stamped onto tabs and orders.
type WaiterRef struct {
	ID   string
	Name string
}

// TabAggregates are the cached rollup fields on a tab. Order_count counts
// every order document attached to the tab; Total and Item_count cover
// non-cancelled orders only.
type TabAggregates struct {
	Total      float64
	OrderCount int
	ItemCount  int
}

// TabUpdate is the aggregate mutation applied to a tab alongside an order
// insert. Activate is non-nil when the order is the tab's first and the tab
// moves inactive -> active in the same write.
type TabUpdate struct {
	TabID      string
	Aggregates TabAggregates
	Activate   *WaiterRef
	UpdatedAt  time.Time
}

// ReferenceDecision computes the next reference counter and reset date from
// the stored ones. It must be pure: the store may re-run it on transaction
// retry.
type ReferenceDecision func(counter int, lastReset time.Time) (next int, reset time.Time)

// OrderDecision builds the order document and the tab aggregate update from
// the tab's current state. Like ReferenceDecision it must be pure: the store
// may re-run it against a fresh tab read on transaction retry.
type OrderDecision func(tab models.Tab) (models.Order, TabUpdate, error)

// Store is the persistence surface of the tab lifecycle core. The Mongo
// implementation lives in the store package; tests use an in-memory fake.
type Store interface {
	GetRestaurant(ctx context.Context, restaurantID string) (models.Restaurant, error)

	// AllocateTabReference runs decide against the restaurant's counter
	// state and persists the outcome as one atomic read-modify-write. Two
	// concurrent calls for the same restaurant never observe the same
	// counter value.
	AllocateTabReference(ctx context.Context, restaurantID string, decide ReferenceDecision) (int, error)

	InsertTab(ctx context.Context, tab models.Tab) error
	GetTab(ctx context.Context, tabID string) (models.Tab, error)
	SetTabStatus(ctx context.Context, tabID string, status string, waiter *WaiterRef, updatedAt time.Time) error
	SetTabAggregates(ctx context.Context, tabID string, agg TabAggregates, updatedAt time.Time) error
	DeleteTab(ctx context.Context, tabID string) error

	// AppendOrder loads the tab, runs decide against its current state and
	// commits the resulting order insert and tab update as one all-or-nothing
	// write. Concurrent appends to the same tab serialize: each decide call
	// sees the aggregates left by the previous commit. The returned bool
	// reports whether the write activated the tab. No reader may observe the
	// order without the tab aggregates reflecting it, or the reverse.
	AppendOrder(ctx context.Context, tabID string, decide OrderDecision) (models.Order, bool, error)
	GetOrder(ctx context.Context, orderID string) (models.Order, error)
	OrdersByTab(ctx context.Context, tabID string) ([]models.Order, error)
	SetOrderStatus(ctx context.Context, orderID string, status string, updatedAt time.Time) error
}
