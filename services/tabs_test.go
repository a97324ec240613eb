package services_test

import (
	"context"
	"testing"
	"time"

	"bill-o/apperrors"
	"bill-o/models"
	"bill-o/services"

	"github.com/stretchr/testify/require"
)

func TestCreateTab_CustomerScanOpensInactive(t *testing.T) {
	store := newFakeStore()
	seedRestaurant(store, "r1", 0, day(2025, time.March, 9))
	svc := newTabService(store)
	svc.Now = func() time.Time { return time.Date(2025, time.March, 10, 12, 0, 0, 0, time.UTC) }

	tab, err := svc.CreateTab(context.Background(), "r1", services.InitiatorCustomer, nil)
	require.NoError(t, err)
	require.Equal(t, models.TabInactive, tab.Status)
	require.Equal(t, "1", tab.Reference_number)
	require.Equal(t, float64(0), tab.Total)
	require.Equal(t, 0, tab.Order_count)
	require.Nil(t, tab.Waiter_id)
	require.Nil(t, tab.Waiter_name)
}

func TestCreateTab_WaiterOpensActive(t *testing.T) {
	store := newFakeStore()
	seedRestaurant(store, "r1", 0, time.Time{})
	svc := newTabService(store)

	tab, err := svc.CreateTab(context.Background(), "r1", services.InitiatorWaiter, &services.WaiterRef{ID: "w1", Name: "Dana"})
	require.NoError(t, err)
	require.Equal(t, models.TabActive, tab.Status)
	require.Equal(t, "w1", *tab.Waiter_id)
	require.Equal(t, "Dana", *tab.Waiter_name)
}

func TestCreateTab_WaiterPathRequiresIdentity(t *testing.T) {
	store := newFakeStore()
	seedRestaurant(store, "r1", 0, time.Time{})
	svc := newTabService(store)

	_, err := svc.CreateTab(context.Background(), "r1", services.InitiatorWaiter, nil)
	require.True(t, apperrors.IsValidation(err))

	_, err = svc.CreateTab(context.Background(), "r1", services.InitiatorWaiter, &services.WaiterRef{ID: "w1"})
	require.True(t, apperrors.IsValidation(err))
}

func TestCreateTab_RejectsUnknownInitiator(t *testing.T) {
	store := newFakeStore()
	seedRestaurant(store, "r1", 0, time.Time{})
	svc := newTabService(store)

	_, err := svc.CreateTab(context.Background(), "r1", "robot", nil)
	require.True(t, apperrors.IsValidation(err))
}

func TestActivateTab_AssignsWaiter(t *testing.T) {
	store := newFakeStore()
	seedRestaurant(store, "r1", 0, time.Time{})
	svc := newTabService(store)
	tab, err := svc.CreateTab(context.Background(), "r1", services.InitiatorCustomer, nil)
	require.NoError(t, err)

	activated, err := svc.ActivateTab(context.Background(), tab.Tab_id, services.WaiterRef{ID: "w1", Name: "Dana"})
	require.NoError(t, err)
	require.Equal(t, models.TabActive, activated.Status)
	require.Equal(t, "w1", *activated.Waiter_id)
	require.Equal(t, models.TabActive, store.tab(tab.Tab_id).Status)
}

func TestActivateTab_FailsWhenNotInactive(t *testing.T) {
	store := newFakeStore()
	seedRestaurant(store, "r1", 0, time.Time{})
	svc := newTabService(store)
	tab, err := svc.CreateTab(context.Background(), "r1", services.InitiatorWaiter, &services.WaiterRef{ID: "w1", Name: "Dana"})
	require.NoError(t, err)

	_, err = svc.ActivateTab(context.Background(), tab.Tab_id, services.WaiterRef{ID: "w2", Name: "Sam"})
	require.True(t, apperrors.IsState(err))
}

func TestActivateTab_RequiresWaiterIdentity(t *testing.T) {
	store := newFakeStore()
	svc := newTabService(store)

	_, err := svc.ActivateTab(context.Background(), "t1", services.WaiterRef{})
	require.True(t, apperrors.IsValidation(err))
}

func TestUpdateTabStatus_WalksForwardOnly(t *testing.T) {
	store := newFakeStore()
	seedRestaurant(store, "r1", 0, time.Time{})
	svc := newTabService(store)
	tab, err := svc.CreateTab(context.Background(), "r1", services.InitiatorWaiter, &services.WaiterRef{ID: "w1", Name: "Dana"})
	require.NoError(t, err)

	for _, next := range []string{models.TabPendingAcceptance, models.TabBillAccepted, models.TabCompleted} {
		updated, err := svc.UpdateTabStatus(context.Background(), tab.Tab_id, next)
		require.NoError(t, err)
		require.Equal(t, next, updated.Status)
	}
}

func TestUpdateTabStatus_RejectsBackwardMove(t *testing.T) {
	store := newFakeStore()
	seedRestaurant(store, "r1", 0, time.Time{})
	svc := newTabService(store)
	tab, err := svc.CreateTab(context.Background(), "r1", services.InitiatorWaiter, &services.WaiterRef{ID: "w1", Name: "Dana"})
	require.NoError(t, err)
	for _, next := range []string{models.TabPendingAcceptance, models.TabBillAccepted, models.TabCompleted} {
		_, err := svc.UpdateTabStatus(context.Background(), tab.Tab_id, next)
		require.NoError(t, err)
	}

	_, err = svc.UpdateTabStatus(context.Background(), tab.Tab_id, models.TabActive)
	require.True(t, apperrors.IsState(err))
	require.Equal(t, models.TabCompleted, store.tab(tab.Tab_id).Status, "failed transition must not mutate the tab")
}

func TestUpdateTabStatus_ActivationNeedsWaiterAndOrders(t *testing.T) {
	store := newFakeStore()
	seedRestaurant(store, "r1", 0, time.Time{})
	svc := newTabService(store)
	tab, err := svc.CreateTab(context.Background(), "r1", services.InitiatorCustomer, nil)
	require.NoError(t, err)

	_, err = svc.UpdateTabStatus(context.Background(), tab.Tab_id, models.TabActive)
	require.True(t, apperrors.IsState(err))
	require.Contains(t, err.Error(), "waiter and at least one order required")
}

func TestUpdateTabStatus_RejectsUnknownStatus(t *testing.T) {
	store := newFakeStore()
	svc := newTabService(store)

	_, err := svc.UpdateTabStatus(context.Background(), "t1", "paid")
	require.True(t, apperrors.IsValidation(err))
}

func TestDeleteTab_RefusedOnceOrdersExist(t *testing.T) {
	store := newFakeStore()
	seedRestaurant(store, "r1", 0, time.Time{})
	tabSvc := newTabService(store)
	orderSvc := newOrderService(store)

	tab, err := tabSvc.CreateTab(context.Background(), "r1", services.InitiatorCustomer, nil)
	require.NoError(t, err)
	_, _, err = orderSvc.AppendOrder(context.Background(), tab.Tab_id, lines(line("espresso", 2.50, 1)), &services.WaiterRef{ID: "w1", Name: "Dana"})
	require.NoError(t, err)

	err = tabSvc.DeleteTab(context.Background(), tab.Tab_id)
	require.True(t, apperrors.IsState(err))

	empty, err := tabSvc.CreateTab(context.Background(), "r1", services.InitiatorCustomer, nil)
	require.NoError(t, err)
	require.NoError(t, tabSvc.DeleteTab(context.Background(), empty.Tab_id))
}
