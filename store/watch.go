package store

import (
	"context"
	"time"

	"bill-o/apperrors"
	"bill-o/database"
	"bill-o/models"
	"bill-o/services"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

// Watcher implements services.ChangeSource. It prefers change streams and
// falls back to interval polling when Watch is unavailable (standalone
// mongod has no oplog); either way the caller gets one channel.
type Watcher struct {
	tabs   *mongo.Collection
	orders *mongo.Collection
	logger *zap.Logger
	poll   time.Duration
}

func NewWatcher(client *mongo.Client, logger *zap.Logger) *Watcher {
	return &Watcher{
		tabs:   database.OpenCollection(client, "tabs"),
		orders: database.OpenCollection(client, "orders"),
		logger: logger,
		poll:   3 * time.Second,
	}
}

func (w *Watcher) WatchTabs(ctx context.Context, q services.TabQuery) <-chan services.TabSnapshot {
	out := make(chan services.TabSnapshot, 1)
	go func() {
		defer close(out)
		send := func(snap services.TabSnapshot) bool {
			select {
			case out <- snap:
				return true
			case <-ctx.Done():
				return false
			}
		}
		emit := func() bool {
			tabs, err := w.queryTabs(ctx, q)
			if err != nil {
				if ctx.Err() != nil {
					return false
				}
				return send(services.TabSnapshot{Err: err})
			}
			return send(services.TabSnapshot{Tabs: tabs})
		}
		if !emit() {
			return
		}
		stream, err := w.tabs.Watch(ctx, mongo.Pipeline{})
		if err != nil {
			w.logger.Warn("tab change stream unavailable, polling instead", zap.Error(err))
			w.pollLoop(ctx, emit)
			return
		}
		defer stream.Close(context.Background())
		for stream.Next(ctx) {
			if !emit() {
				return
			}
		}
		if err := stream.Err(); err != nil && ctx.Err() == nil {
			send(services.TabSnapshot{Err: apperrors.Transient("tab subscription failed", err)})
		}
	}()
	return out
}

func (w *Watcher) WatchOrders(ctx context.Context, tabID string) <-chan services.OrderSnapshot {
	out := make(chan services.OrderSnapshot, 1)
	go func() {
		defer close(out)
		send := func(snap services.OrderSnapshot) bool {
			select {
			case out <- snap:
				return true
			case <-ctx.Done():
				return false
			}
		}
		emit := func() bool {
			orders, err := w.queryOrders(ctx, tabID)
			if err != nil {
				if ctx.Err() != nil {
					return false
				}
				return send(services.OrderSnapshot{Err: err})
			}
			return send(services.OrderSnapshot{Orders: orders})
		}
		if !emit() {
			return
		}
		stream, err := w.orders.Watch(ctx, mongo.Pipeline{})
		if err != nil {
			w.logger.Warn("order change stream unavailable, polling instead", zap.Error(err))
			w.pollLoop(ctx, emit)
			return
		}
		defer stream.Close(context.Background())
		for stream.Next(ctx) {
			if !emit() {
				return
			}
		}
		if err := stream.Err(); err != nil && ctx.Err() == nil {
			send(services.OrderSnapshot{Err: apperrors.Transient("order subscription failed", err)})
		}
	}()
	return out
}

func (w *Watcher) pollLoop(ctx context.Context, emit func() bool) {
	ticker := time.NewTicker(w.poll)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if !emit() {
				return
			}
		}
	}
}

func (w *Watcher) queryTabs(ctx context.Context, q services.TabQuery) ([]models.Tab, error) {
	filter := bson.M{"restaurant_id": q.RestaurantID}
	if len(q.Statuses) > 0 {
		filter["status"] = bson.M{"$in": q.Statuses}
	}
	opts := options.Find().SetSort(bson.D{{Key: "updated_at", Value: -1}})
	cursor, err := w.tabs.Find(ctx, filter, opts)
	if err != nil {
		return nil, apperrors.Transient("tab query failed", err)
	}
	defer cursor.Close(ctx)
	tabs := []models.Tab{}
	if err := cursor.All(ctx, &tabs); err != nil {
		return nil, apperrors.Transient("tab decoding failed", err)
	}
	return tabs, nil
}

func (w *Watcher) queryOrders(ctx context.Context, tabID string) ([]models.Order, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}})
	cursor, err := w.orders.Find(ctx, bson.M{"tab_id": tabID}, opts)
	if err != nil {
		return nil, apperrors.Transient("order query failed", err)
	}
	defer cursor.Close(ctx)
	orders := []models.Order{}
	if err := cursor.All(ctx, &orders); err != nil {
		return nil, apperrors.Transient("order decoding failed", err)
	}
	return orders, nil
}
