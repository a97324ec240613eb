package services

import (
	"context"
	"math"
	"time"

	"bill-o/apperrors"
	"bill-o/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type OrderService struct {
	Store  Store
	Logger *zap.Logger
	Now    func() time.Time
}

func NewOrderService(store Store, logger *zap.Logger) *OrderService {
	return &OrderService{Store: store, Logger: logger, Now: time.Now}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// OrderTotal sums price x quantity over the lines, rounded to cents.
func OrderTotal(items []models.OrderLine) float64 {
	var sum float64
	for _, it := range items {
		sum += *it.Price * float64(*it.Quantity)
	}
	return round2(sum)
}

func validateItems(items []models.OrderLine) error {
	if len(items) == 0 {
		return apperrors.Validationf("order must contain at least one item")
	}
	for i, it := range items {
		if it.Menu_item_id == nil || *it.Menu_item_id == "" {
			return apperrors.Validationf("order item %d: menu_item_id is required", i)
		}
		if it.Name == nil || *it.Name == "" {
			return apperrors.Validationf("order item %d: name is required", i)
		}
		if it.Price == nil || *it.Price <= 0 {
			return apperrors.Validationf("order item %d: price must be greater than zero", i)
		}
		if it.Quantity == nil || *it.Quantity <= 0 {
			return apperrors.Validationf("order item %d: quantity must be greater than zero", i)
		}
	}
	return nil
}

// AppendOrder creates an order on a tab and updates the tab's cached
// aggregates in the same atomic write. The tab read, the terminal-status
// check and the aggregate arithmetic all run inside the store's decide
// closure, so concurrent appends each build on the aggregates the previous
// commit left behind. When the tab is still inactive the order activates it
// and the submitting waiter is assigned; that requires waiter identity. The
// returned bool reports whether activation happened.
func (s *OrderService) AppendOrder(ctx context.Context, tabID string, items []models.OrderLine, waiter *WaiterRef) (models.Order, bool, error) {
	if err := validateItems(items); err != nil {
		return models.Order{}, false, err
	}

	now := s.Now()
	lines := make([]models.OrderLine, len(items))
	copy(lines, items)
	for i := range lines {
		p := round2(*lines[i].Price)
		lines[i].Price = &p
	}
	orderID := primitive.NewObjectID()

	order, activated, err := s.Store.AppendOrder(ctx, tabID, func(tab models.Tab) (models.Order, TabUpdate, error) {
		if models.TabTerminal(tab.Status) {
			return models.Order{}, TabUpdate{}, apperrors.Statef("cannot add order to tab %s: tab is %s", tabID, tab.Status)
		}
		var activate *WaiterRef
		if tab.Status == models.TabInactive {
			if waiter == nil || waiter.ID == "" || waiter.Name == "" {
				return models.Order{}, TabUpdate{}, apperrors.Validationf("first order on an inactive tab requires waiter identity")
			}
			activate = waiter
		}

		var order models.Order
		order.ID = orderID
		order.Order_id = orderID.Hex()
		tabId := tab.Tab_id
		order.Tab_id = &tabId
		order.Items = lines
		order.Status = models.OrderPending
		order.Total = OrderTotal(lines)
		if waiter != nil {
			order.Waiter_id = &waiter.ID
			order.Waiter_name = &waiter.Name
		}
		order.Created_at = now
		order.Updated_at = now

		upd := TabUpdate{
			TabID: tab.Tab_id,
			Aggregates: TabAggregates{
				Total:      round2(tab.Total + order.Total),
				OrderCount: tab.Order_count + 1,
				ItemCount:  tab.Item_count + lineQuantity(lines),
			},
			Activate:  activate,
			UpdatedAt: now,
		}
		return order, upd, nil
	})
	if err != nil {
		return models.Order{}, false, err
	}
	s.Logger.Info("order appended",
		zap.String("order_id", order.Order_id),
		zap.String("tab_id", tabID),
		zap.Float64("order_total", order.Total),
		zap.Bool("activated_tab", activated))
	return order, activated, nil
}

func lineQuantity(items []models.OrderLine) int {
	n := 0
	for _, it := range items {
		n += *it.Quantity
	}
	return n
}

// UpdateOrderStatus applies one forward move of the order state machine.
// Cancelling an order re-runs reconciliation so the tab total drops the
// cancelled lines.
func (s *OrderService) UpdateOrderStatus(ctx context.Context, orderID string, newStatus string) (models.Order, error) {
	if !models.IsOrderStatus(newStatus) {
		return models.Order{}, apperrors.Validationf("unknown order status %q", newStatus)
	}
	order, err := s.Store.GetOrder(ctx, orderID)
	if err != nil {
		return models.Order{}, err
	}
	if !models.CanTransitionOrder(order.Status, newStatus) {
		return models.Order{}, apperrors.Statef("cannot move order %s from %s to %s", orderID, order.Status, newStatus)
	}
	now := s.Now()
	if err := s.Store.SetOrderStatus(ctx, orderID, newStatus, now); err != nil {
		return models.Order{}, err
	}
	order.Status = newStatus
	order.Updated_at = now
	if newStatus == models.OrderCancelled && order.Tab_id != nil {
		if _, err := s.ReconcileTab(ctx, *order.Tab_id); err != nil {
			return models.Order{}, err
		}
	}
	return order, nil
}
