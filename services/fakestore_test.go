package services_test

import (
	"context"
	"sync"
	"time"

	"bill-o/apperrors"
	"bill-o/models"
	"bill-o/services"
)

// fakeStore is an in-memory services.Store. The mutex serializes every
// operation, which models the store's transactional guarantees: decide
// closures run against a consistent snapshot and multi-document writes are
// all-or-nothing.
type fakeStore struct {
	mu          sync.Mutex
	restaurants map[string]models.Restaurant
	tabs        map[string]models.Tab
	orders      []models.Order

	failAppend error // when set, AppendOrder fails without writing
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		restaurants: map[string]models.Restaurant{},
		tabs:        map[string]models.Tab{},
	}
}

func (f *fakeStore) addRestaurant(r models.Restaurant) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.restaurants[r.Restaurant_id] = r
}

func (f *fakeStore) restaurant(id string) models.Restaurant {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.restaurants[id]
}

func (f *fakeStore) tab(id string) models.Tab {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.tabs[id]
}

func (f *fakeStore) corruptTabAggregates(id string, total float64, orderCount int, itemCount int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	tab := f.tabs[id]
	tab.Total = total
	tab.Order_count = orderCount
	tab.Item_count = itemCount
	f.tabs[id] = tab
}

func (f *fakeStore) GetRestaurant(ctx context.Context, restaurantID string) (models.Restaurant, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	r, ok := f.restaurants[restaurantID]
	if !ok {
		return models.Restaurant{}, apperrors.NotFoundf("restaurant %s not found", restaurantID)
	}
	return r, nil
}

func (f *fakeStore) AllocateTabReference(ctx context.Context, restaurantID string, decide services.ReferenceDecision) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	r, ok := f.restaurants[restaurantID]
	if !ok {
		return 0, apperrors.NotFoundf("restaurant %s not found", restaurantID)
	}
	next, reset := decide(r.Daily_tab_counter, r.Last_tab_reset)
	r.Daily_tab_counter = next
	r.Last_tab_reset = reset
	f.restaurants[restaurantID] = r
	return next, nil
}

func (f *fakeStore) InsertTab(ctx context.Context, tab models.Tab) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.tabs[tab.Tab_id] = tab
	return nil
}

func (f *fakeStore) GetTab(ctx context.Context, tabID string) (models.Tab, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	tab, ok := f.tabs[tabID]
	if !ok {
		return models.Tab{}, apperrors.NotFoundf("tab %s not found", tabID)
	}
	return tab, nil
}

func (f *fakeStore) SetTabStatus(ctx context.Context, tabID string, status string, waiter *services.WaiterRef, updatedAt time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	tab, ok := f.tabs[tabID]
	if !ok {
		return apperrors.NotFoundf("tab %s not found", tabID)
	}
	tab.Status = status
	if waiter != nil {
		id, name := waiter.ID, waiter.Name
		tab.Waiter_id = &id
		tab.Waiter_name = &name
	}
	tab.Updated_at = updatedAt
	f.tabs[tabID] = tab
	return nil
}

func (f *fakeStore) SetTabAggregates(ctx context.Context, tabID string, agg services.TabAggregates, updatedAt time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	tab, ok := f.tabs[tabID]
	if !ok {
		return apperrors.NotFoundf("tab %s not found", tabID)
	}
	tab.Total = agg.Total
	tab.Order_count = agg.OrderCount
	tab.Item_count = agg.ItemCount
	tab.Updated_at = updatedAt
	f.tabs[tabID] = tab
	return nil
}

func (f *fakeStore) DeleteTab(ctx context.Context, tabID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.tabs[tabID]; !ok {
		return apperrors.NotFoundf("tab %s not found", tabID)
	}
	delete(f.tabs, tabID)
	return nil
}

func (f *fakeStore) AppendOrder(ctx context.Context, tabID string, decide services.OrderDecision) (models.Order, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failAppend != nil {
		return models.Order{}, false, f.failAppend
	}
	tab, ok := f.tabs[tabID]
	if !ok {
		return models.Order{}, false, apperrors.NotFoundf("tab %s not found", tabID)
	}
	order, upd, err := decide(tab)
	if err != nil {
		return models.Order{}, false, err
	}
	f.orders = append(f.orders, order)
	tab.Total = upd.Aggregates.Total
	tab.Order_count = upd.Aggregates.OrderCount
	tab.Item_count = upd.Aggregates.ItemCount
	if upd.Activate != nil {
		id, name := upd.Activate.ID, upd.Activate.Name
		tab.Status = models.TabActive
		tab.Waiter_id = &id
		tab.Waiter_name = &name
	}
	tab.Updated_at = upd.UpdatedAt
	f.tabs[upd.TabID] = tab
	return order, upd.Activate != nil, nil
}

func (f *fakeStore) GetOrder(ctx context.Context, orderID string) (models.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, o := range f.orders {
		if o.Order_id == orderID {
			return o, nil
		}
	}
	return models.Order{}, apperrors.NotFoundf("order %s not found", orderID)
}

func (f *fakeStore) OrdersByTab(ctx context.Context, tabID string) ([]models.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Order
	for _, o := range f.orders {
		if o.Tab_id != nil && *o.Tab_id == tabID {
			out = append(out, o)
		}
	}
	return out, nil
}

func (f *fakeStore) SetOrderStatus(ctx context.Context, orderID string, status string, updatedAt time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.orders {
		if f.orders[i].Order_id == orderID {
			f.orders[i].Status = status
			f.orders[i].Updated_at = updatedAt
			return nil
		}
	}
	return apperrors.NotFoundf("order %s not found", orderID)
}
