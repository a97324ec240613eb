package services

import (
	"context"
	"strconv"
	"time"

	"bill-o/apperrors"
	"bill-o/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

const (
	InitiatorCustomer = "customer"
	InitiatorWaiter   = "waiter"
)

type TabService struct {
	Store  Store
	Logger *zap.Logger
	Now    func() time.Time
}

func NewTabService(store Store, logger *zap.Logger) *TabService {
	return &TabService{Store: store, Logger: logger, Now: time.Now}
}

// CreateTab opens a new bill. The customer QR path opens it inactive with no
// waiter; the waiter path opens it active and requires waiter identity. Both
// paths allocate the next daily reference number for the restaurant.
func (s *TabService) CreateTab(ctx context.Context, restaurantID string, initiator string, waiter *WaiterRef) (models.Tab, error) {
	if initiator != InitiatorCustomer && initiator != InitiatorWaiter {
		return models.Tab{}, apperrors.Validationf("unknown tab initiator %q", initiator)
	}
	if initiator == InitiatorWaiter && (waiter == nil || waiter.ID == "" || waiter.Name == "") {
		return models.Tab{}, apperrors.Validationf("waiter-opened tab requires waiter id and name")
	}

	now := s.Now()
	ref, err := s.Store.AllocateTabReference(ctx, restaurantID, func(counter int, lastReset time.Time) (int, time.Time) {
		return NextReference(counter, lastReset, now)
	})
	if err != nil {
		return models.Tab{}, err
	}

	var tab models.Tab
	tab.ID = primitive.NewObjectID()
	tab.Tab_id = tab.ID.Hex()
	tab.Restaurant_id = &restaurantID
	tab.Reference_number = strconv.Itoa(ref)
	tab.Status = models.TabInactive
	if initiator == InitiatorWaiter {
		tab.Status = models.TabActive
		tab.Waiter_id = &waiter.ID
		tab.Waiter_name = &waiter.Name
	}
	tab.Created_at = now
	tab.Updated_at = now

	if err := s.Store.InsertTab(ctx, tab); err != nil {
		return models.Tab{}, err
	}
	s.Logger.Info("tab created",
		zap.String("tab_id", tab.Tab_id),
		zap.String("restaurant_id", restaurantID),
		zap.String("reference_number", tab.Reference_number),
		zap.String("status", tab.Status))
	return tab, nil
}

// ActivateTab moves an inactive tab to active and assigns the waiter. Waiter
// identity is a precondition, not merely written after the fact.
func (s *TabService) ActivateTab(ctx context.Context, tabID string, waiter WaiterRef) (models.Tab, error) {
	if waiter.ID == "" || waiter.Name == "" {
		return models.Tab{}, apperrors.Validationf("cannot activate tab: waiter identity required")
	}
	tab, err := s.Store.GetTab(ctx, tabID)
	if err != nil {
		return models.Tab{}, err
	}
	if tab.Status != models.TabInactive {
		return models.Tab{}, apperrors.Statef("cannot activate tab %s: status is %s, expected %s", tabID, tab.Status, models.TabInactive)
	}
	now := s.Now()
	if err := s.Store.SetTabStatus(ctx, tabID, models.TabActive, &waiter, now); err != nil {
		return models.Tab{}, err
	}
	tab.Status = models.TabActive
	tab.Waiter_id = &waiter.ID
	tab.Waiter_name = &waiter.Name
	tab.Updated_at = now
	return tab, nil
}

// UpdateTabStatus applies one forward move of the tab state machine. The
// activation edge is additionally gated on a waiter already being assigned
// and at least one order existing; ActivateTab is the path that assigns.
func (s *TabService) UpdateTabStatus(ctx context.Context, tabID string, newStatus string) (models.Tab, error) {
	if !models.IsTabStatus(newStatus) {
		return models.Tab{}, apperrors.Validationf("unknown tab status %q", newStatus)
	}
	tab, err := s.Store.GetTab(ctx, tabID)
	if err != nil {
		return models.Tab{}, err
	}
	if !models.CanTransitionTab(tab.Status, newStatus) {
		return models.Tab{}, apperrors.Statef("cannot move tab %s from %s to %s", tabID, tab.Status, newStatus)
	}
	if newStatus == models.TabActive && (tab.Waiter_id == nil || tab.Order_count == 0) {
		return models.Tab{}, apperrors.Statef("cannot activate tab: waiter and at least one order required")
	}
	now := s.Now()
	if err := s.Store.SetTabStatus(ctx, tabID, newStatus, nil, now); err != nil {
		return models.Tab{}, err
	}
	s.Logger.Info("tab status changed",
		zap.String("tab_id", tabID),
		zap.String("from", tab.Status),
		zap.String("to", newStatus))
	tab.Status = newStatus
	tab.Updated_at = now
	return tab, nil
}

// DeleteTab removes a tab that never accumulated orders. Once an order
// exists the tab must be cancelled or completed instead, never deleted, so
// order documents cannot dangle.
func (s *TabService) DeleteTab(ctx context.Context, tabID string) error {
	tab, err := s.Store.GetTab(ctx, tabID)
	if err != nil {
		return err
	}
	orders, err := s.Store.OrdersByTab(ctx, tabID)
	if err != nil {
		return err
	}
	if len(orders) > 0 {
		return apperrors.Statef("cannot delete tab %s: %d orders attached", tabID, len(orders))
	}
	if err := s.Store.DeleteTab(ctx, tab.Tab_id); err != nil {
		return err
	}
	s.Logger.Info("tab deleted", zap.String("tab_id", tabID))
	return nil
}
