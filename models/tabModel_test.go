package models_test

import (
	"testing"

	"bill-o/models"

	"github.com/stretchr/testify/require"
)

var allTabStatuses = []string{
	models.TabInactive,
	models.TabActive,
	models.TabPendingAcceptance,
	models.TabBillAccepted,
	models.TabCompleted,
	models.TabCancelled,
}

func TestCanTransitionTab_ForwardPath(t *testing.T) {
	path := allTabStatuses[:5]
	for i := 0; i < len(path)-1; i++ {
		require.True(t, models.CanTransitionTab(path[i], path[i+1]),
			"%s -> %s must be legal", path[i], path[i+1])
	}
}

func TestCanTransitionTab_CancelFromNonTerminal(t *testing.T) {
	for _, from := range []string{models.TabActive, models.TabPendingAcceptance, models.TabBillAccepted} {
		require.True(t, models.CanTransitionTab(from, models.TabCancelled))
	}
	require.False(t, models.CanTransitionTab(models.TabInactive, models.TabCancelled))
}

func TestCanTransitionTab_NeverBackward(t *testing.T) {
	order := map[string]int{
		models.TabInactive:          0,
		models.TabActive:            1,
		models.TabPendingAcceptance: 2,
		models.TabBillAccepted:      3,
		models.TabCompleted:         4,
	}
	for from, fi := range order {
		for to, ti := range order {
			if ti < fi {
				require.False(t, models.CanTransitionTab(from, to),
					"%s -> %s would move the tab backward", from, to)
			}
		}
	}
}

func TestCanTransitionTab_TerminalStatesHaveNoExit(t *testing.T) {
	for _, from := range []string{models.TabCompleted, models.TabCancelled} {
		require.True(t, models.TabTerminal(from))
		for _, to := range allTabStatuses {
			require.False(t, models.CanTransitionTab(from, to))
		}
	}
}

func TestCanTransitionTab_SelfTransitionRejected(t *testing.T) {
	for _, s := range allTabStatuses {
		require.False(t, models.CanTransitionTab(s, s))
	}
}

func TestIsTabStatus(t *testing.T) {
	for _, s := range allTabStatuses {
		require.True(t, models.IsTabStatus(s))
	}
	require.False(t, models.IsTabStatus("paid"))
	require.False(t, models.IsTabStatus(""))
}

func TestCanTransitionOrder(t *testing.T) {
	require.True(t, models.CanTransitionOrder(models.OrderPending, models.OrderPreparing))
	require.True(t, models.CanTransitionOrder(models.OrderPreparing, models.OrderReady))
	require.True(t, models.CanTransitionOrder(models.OrderReady, models.OrderServed))
	for _, from := range []string{models.OrderPending, models.OrderPreparing, models.OrderReady} {
		require.True(t, models.CanTransitionOrder(from, models.OrderCancelled))
	}
	require.False(t, models.CanTransitionOrder(models.OrderServed, models.OrderCancelled))
	require.False(t, models.CanTransitionOrder(models.OrderReady, models.OrderPending))
	require.False(t, models.CanTransitionOrder(models.OrderCancelled, models.OrderPending))
}
