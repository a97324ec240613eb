package services_test

import (
	"context"
	"sort"
	"strconv"
	"sync"
	"testing"
	"time"

	"bill-o/apperrors"
	"bill-o/models"
	"bill-o/services"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestNextReference_IncrementsWithinSameDay(t *testing.T) {
	noon := time.Date(2025, time.March, 10, 12, 0, 0, 0, time.UTC)
	next, reset := services.NextReference(4, day(2025, time.March, 10), noon)
	require.Equal(t, 5, next)
	require.Equal(t, day(2025, time.March, 10), reset)
}

func TestNextReference_ResetsOnNewDay(t *testing.T) {
	morning := time.Date(2025, time.March, 11, 8, 30, 0, 0, time.UTC)
	next, reset := services.NextReference(42, day(2025, time.March, 10), morning)
	require.Equal(t, 1, next)
	require.Equal(t, day(2025, time.March, 11), reset)
}

func TestNextReference_ZeroValueResetDateCountsAsNewDay(t *testing.T) {
	now := time.Date(2025, time.March, 10, 9, 0, 0, 0, time.UTC)
	next, _ := services.NextReference(0, time.Time{}, now)
	require.Equal(t, 1, next)
}

func newTabService(store services.Store) *services.TabService {
	return services.NewTabService(store, zap.NewNop())
}

func seedRestaurant(store *fakeStore, id string, counter int, lastReset time.Time) {
	owner := "owner-1"
	name := "Trattoria"
	store.addRestaurant(models.Restaurant{
		Restaurant_id:     id,
		Owner_id:          &owner,
		Name:              &name,
		Daily_tab_counter: counter,
		Last_tab_reset:    lastReset,
	})
}

func TestCreateTab_ConsecutiveReferencesStartAtOne(t *testing.T) {
	store := newFakeStore()
	seedRestaurant(store, "r1", 0, time.Time{})
	svc := newTabService(store)
	svc.Now = func() time.Time { return time.Date(2025, time.March, 10, 12, 0, 0, 0, time.UTC) }

	for want := 1; want <= 5; want++ {
		tab, err := svc.CreateTab(context.Background(), "r1", services.InitiatorCustomer, nil)
		require.NoError(t, err)
		require.Equal(t, strconv.Itoa(want), tab.Reference_number)
	}
}

func TestCreateTab_ReferenceResetsAcrossDays(t *testing.T) {
	store := newFakeStore()
	seedRestaurant(store, "r1", 17, day(2025, time.March, 9))
	svc := newTabService(store)
	svc.Now = func() time.Time { return time.Date(2025, time.March, 10, 10, 0, 0, 0, time.UTC) }

	tab, err := svc.CreateTab(context.Background(), "r1", services.InitiatorCustomer, nil)
	require.NoError(t, err)
	require.Equal(t, "1", tab.Reference_number)
	require.Equal(t, 1, store.restaurant("r1").Daily_tab_counter)
	require.Equal(t, day(2025, time.March, 10), store.restaurant("r1").Last_tab_reset)
}

func TestCreateTab_UnknownRestaurant(t *testing.T) {
	store := newFakeStore()
	svc := newTabService(store)

	_, err := svc.CreateTab(context.Background(), "nope", services.InitiatorCustomer, nil)
	require.Error(t, err)
	require.True(t, apperrors.IsNotFound(err))
}

func TestCreateTab_ConcurrentAllocationsNeverCollide(t *testing.T) {
	store := newFakeStore()
	seedRestaurant(store, "r1", 0, time.Time{})
	svc := newTabService(store)
	svc.Now = func() time.Time { return time.Date(2025, time.March, 10, 19, 0, 0, 0, time.UTC) }

	const n = 50
	refs := make([]string, n)
	errs := make(chan error, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			tab, err := svc.CreateTab(context.Background(), "r1", services.InitiatorCustomer, nil)
			if err != nil {
				errs <- err
				return
			}
			refs[i] = tab.Reference_number
		}(i)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	nums := make([]int, n)
	for i, r := range refs {
		v, err := strconv.Atoi(r)
		require.NoError(t, err)
		nums[i] = v
	}
	sort.Ints(nums)
	for i := 0; i < n; i++ {
		require.Equal(t, i+1, nums[i], "references must be distinct consecutive integers")
	}
}
