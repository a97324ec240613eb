package services

import (
	"context"

	"bill-o/models"

	"go.uber.org/zap"
)

// ComputeAggregates rebuilds a tab's rollup fields from its full order set.
// Every attached order counts toward OrderCount; cancelled orders are
// excluded from Total and ItemCount.
func ComputeAggregates(orders []models.Order) TabAggregates {
	var agg TabAggregates
	var sum float64
	for _, o := range orders {
		agg.OrderCount++
		if o.Status == models.OrderCancelled {
			continue
		}
		sum += OrderTotal(o.Items)
		agg.ItemCount += lineQuantity(o.Items)
	}
	agg.Total = round2(sum)
	return agg
}

// ReconcileTab recomputes the tab's cached aggregates from its order history
// and overwrites them. It is the self-healing path for drift caused by
// writes that bypassed AppendOrder, and is safe to run repeatedly.
func (s *OrderService) ReconcileTab(ctx context.Context, tabID string) (TabAggregates, error) {
	tab, err := s.Store.GetTab(ctx, tabID)
	if err != nil {
		return TabAggregates{}, err
	}
	orders, err := s.Store.OrdersByTab(ctx, tabID)
	if err != nil {
		return TabAggregates{}, err
	}
	agg := ComputeAggregates(orders)
	if err := s.Store.SetTabAggregates(ctx, tab.Tab_id, agg, s.Now()); err != nil {
		return TabAggregates{}, err
	}
	if agg.Total != tab.Total || agg.OrderCount != tab.Order_count || agg.ItemCount != tab.Item_count {
		s.Logger.Warn("tab aggregates drifted",
			zap.String("tab_id", tabID),
			zap.Float64("stored_total", tab.Total),
			zap.Float64("recomputed_total", agg.Total),
			zap.Int("stored_order_count", tab.Order_count),
			zap.Int("recomputed_order_count", agg.OrderCount))
	}
	return agg, nil
}
