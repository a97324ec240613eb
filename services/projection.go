package services

import (
	"context"
	"sync"

	"bill-o/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// TabSnapshot is one consistent view of the tabs matching a query. Err is
// set when the underlying subscription failed; Tabs is then empty and the
// error stays set on every later delivery until the caller re-subscribes.
type TabSnapshot struct {
	Tabs []models.Tab
	Err  error
}

type OrderSnapshot struct {
	Orders []models.Order
	Err    error
}

type TabQuery struct {
	RestaurantID string
	Statuses     []string
}

// ChangeSource feeds the projector a fresh snapshot after every underlying
// collection change. The channel closes when ctx is cancelled. Errors are
// delivered in-band; implementations may layer fallbacks internally but
// expose a single channel regardless.
type ChangeSource interface {
	WatchTabs(ctx context.Context, q TabQuery) <-chan TabSnapshot
	WatchOrders(ctx context.Context, tabID string) <-chan OrderSnapshot
}

// Unsubscribe detaches a subscription. After it returns, the callback is
// never invoked again.
type Unsubscribe func()

type Projector struct {
	Source ChangeSource
	Logger *zap.Logger
}

func NewProjector(source ChangeSource, logger *zap.Logger) *Projector {
	return &Projector{Source: source, Logger: logger}
}

// subscription serializes deliveries against teardown. Callbacks run under
// the mutex, so once close returns no callback can be in flight.
type subscription struct {
	mu     sync.Mutex
	closed bool
	err    error
}

func (s *subscription) deliver(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	fn()
}

func (s *subscription) close() {
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()
}

// SubscribeTabs pushes tab snapshots for a restaurant dashboard to fn until
// the returned handle is called. Exactly one handle is returned no matter
// how the source is layered internally.
func (p *Projector) SubscribeTabs(ctx context.Context, q TabQuery, fn func(TabSnapshot)) Unsubscribe {
	id := uuid.NewString()
	sub := &subscription{}
	cctx, cancel := context.WithCancel(ctx)
	ch := p.Source.WatchTabs(cctx, q)
	p.Logger.Debug("tab subscription opened",
		zap.String("subscription_id", id),
		zap.String("restaurant_id", q.RestaurantID))

	go func() {
		for snap := range ch {
			if snap.Err != nil {
				sub.err = snap.Err
				p.Logger.Warn("tab subscription degraded",
					zap.String("subscription_id", id),
					zap.Error(snap.Err))
			}
			out := snap
			if sub.err != nil {
				out = TabSnapshot{Tabs: []models.Tab{}, Err: sub.err}
			}
			sub.deliver(func() { fn(out) })
		}
	}()

	return func() {
		cancel()
		sub.close()
		p.Logger.Debug("tab subscription closed", zap.String("subscription_id", id))
	}
}

// SubscribeOrders pushes order snapshots for one tab (customer and kitchen
// views) to fn until the returned handle is called.
func (p *Projector) SubscribeOrders(ctx context.Context, tabID string, fn func(OrderSnapshot)) Unsubscribe {
	id := uuid.NewString()
	sub := &subscription{}
	cctx, cancel := context.WithCancel(ctx)
	ch := p.Source.WatchOrders(cctx, tabID)
	p.Logger.Debug("order subscription opened",
		zap.String("subscription_id", id),
		zap.String("tab_id", tabID))

	go func() {
		for snap := range ch {
			if snap.Err != nil {
				sub.err = snap.Err
				p.Logger.Warn("order subscription degraded",
					zap.String("subscription_id", id),
					zap.Error(snap.Err))
			}
			out := snap
			if sub.err != nil {
				out = OrderSnapshot{Orders: []models.Order{}, Err: sub.err}
			}
			sub.deliver(func() { fn(out) })
		}
	}()

	return func() {
		cancel()
		sub.close()
		p.Logger.Debug("order subscription closed", zap.String("subscription_id", id))
	}
}
