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

// Mongo implements services.Store on the document store. The two multi-write
// operations (reference allocation, order append) run inside sessions so
// their reads and writes commit as one unit.
type Mongo struct {
	client      *mongo.Client
	restaurants *mongo.Collection
	tabs        *mongo.Collection
	orders      *mongo.Collection
	logger      *zap.Logger
}

func NewMongo(client *mongo.Client, logger *zap.Logger) *Mongo {
	return &Mongo{
		client:      client,
		restaurants: database.OpenCollection(client, "restaurants"),
		tabs:        database.OpenCollection(client, "tabs"),
		orders:      database.OpenCollection(client, "orders"),
		logger:      logger,
	}
}

func (m *Mongo) GetRestaurant(ctx context.Context, restaurantID string) (models.Restaurant, error) {
	var restaurant models.Restaurant
	err := m.restaurants.FindOne(ctx, bson.M{"restaurant_id": restaurantID}).Decode(&restaurant)
	if err == mongo.ErrNoDocuments {
		return models.Restaurant{}, apperrors.NotFoundf("restaurant %s not found", restaurantID)
	}
	if err != nil {
		return models.Restaurant{}, apperrors.Transient("restaurant lookup failed", err)
	}
	return restaurant, nil
}

// AllocateTabReference reads the restaurant's counter state, applies decide
// and writes the outcome back, all in one transaction. The reset check and
// the increment are evaluated together, so two transactions spanning a day
// boundary cannot both reset to 1.
func (m *Mongo) AllocateTabReference(ctx context.Context, restaurantID string, decide services.ReferenceDecision) (int, error) {
	session, err := m.client.StartSession()
	if err != nil {
		return 0, apperrors.Transient("could not start session", err)
	}
	defer session.EndSession(ctx)

	result, err := session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		var restaurant models.Restaurant
		if err := m.restaurants.FindOne(sc, bson.M{"restaurant_id": restaurantID}).Decode(&restaurant); err != nil {
			if err == mongo.ErrNoDocuments {
				return nil, apperrors.NotFoundf("restaurant %s not found", restaurantID)
			}
			return nil, apperrors.Transient("restaurant lookup failed", err)
		}
		next, reset := decide(restaurant.Daily_tab_counter, restaurant.Last_tab_reset)
		update := bson.D{{Key: "$set", Value: bson.D{
			{Key: "daily_tab_counter", Value: next},
			{Key: "last_tab_reset", Value: reset},
			{Key: "updated_at", Value: time.Now()},
		}}}
		if _, err := m.restaurants.UpdateOne(sc, bson.M{"restaurant_id": restaurantID}, update); err != nil {
			return nil, apperrors.Transient("counter update failed", err)
		}
		return next, nil
	})
	if err != nil {
		if apperrors.KindOf(err) != 0 {
			return 0, err
		}
		return 0, apperrors.Transient("reference allocation failed", err)
	}
	return result.(int), nil
}

func (m *Mongo) InsertTab(ctx context.Context, tab models.Tab) error {
	if _, err := m.tabs.InsertOne(ctx, tab); err != nil {
		return apperrors.Transient("tab insert failed", err)
	}
	return nil
}

func (m *Mongo) GetTab(ctx context.Context, tabID string) (models.Tab, error) {
	var tab models.Tab
	err := m.tabs.FindOne(ctx, bson.M{"tab_id": tabID}).Decode(&tab)
	if err == mongo.ErrNoDocuments {
		return models.Tab{}, apperrors.NotFoundf("tab %s not found", tabID)
	}
	if err != nil {
		return models.Tab{}, apperrors.Transient("tab lookup failed", err)
	}
	return tab, nil
}

func (m *Mongo) SetTabStatus(ctx context.Context, tabID string, status string, waiter *services.WaiterRef, updatedAt time.Time) error {
	set := bson.D{
		{Key: "status", Value: status},
		{Key: "updated_at", Value: updatedAt},
	}
	if waiter != nil {
		set = append(set, bson.E{Key: "waiter_id", Value: waiter.ID})
		set = append(set, bson.E{Key: "waiter_name", Value: waiter.Name})
	}
	result, err := m.tabs.UpdateOne(ctx, bson.M{"tab_id": tabID}, bson.D{{Key: "$set", Value: set}})
	if err != nil {
		return apperrors.Transient("tab status update failed", err)
	}
	if result.MatchedCount == 0 {
		return apperrors.NotFoundf("tab %s not found", tabID)
	}
	return nil
}

func (m *Mongo) SetTabAggregates(ctx context.Context, tabID string, agg services.TabAggregates, updatedAt time.Time) error {
	set := bson.D{
		{Key: "total", Value: agg.Total},
		{Key: "order_count", Value: agg.OrderCount},
		{Key: "item_count", Value: agg.ItemCount},
		{Key: "updated_at", Value: updatedAt},
	}
	result, err := m.tabs.UpdateOne(ctx, bson.M{"tab_id": tabID}, bson.D{{Key: "$set", Value: set}})
	if err != nil {
		return apperrors.Transient("tab aggregate update failed", err)
	}
	if result.MatchedCount == 0 {
		return apperrors.NotFoundf("tab %s not found", tabID)
	}
	return nil
}

func (m *Mongo) DeleteTab(ctx context.Context, tabID string) error {
	result, err := m.tabs.DeleteOne(ctx, bson.M{"tab_id": tabID})
	if err != nil {
		return apperrors.Transient("tab delete failed", err)
	}
	if result.DeletedCount == 0 {
		return apperrors.NotFoundf("tab %s not found", tabID)
	}
	return nil
}

// appendResult carries the committed order out of the transaction closure.
type appendResult struct {
	order     models.Order
	activated bool
}

// AppendOrder reads the tab, runs decide against its current state and
// commits the order insert plus the tab aggregate update in one transaction,
// so no reader ever sees one without the other. A write conflict aborts and
// re-runs the whole callback, decide included, against a fresh tab read;
// concurrent appends therefore never build on the same aggregates.
func (m *Mongo) AppendOrder(ctx context.Context, tabID string, decide services.OrderDecision) (models.Order, bool, error) {
	session, err := m.client.StartSession()
	if err != nil {
		return models.Order{}, false, apperrors.Transient("could not start session", err)
	}
	defer session.EndSession(ctx)

	result, err := session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		var tab models.Tab
		if err := m.tabs.FindOne(sc, bson.M{"tab_id": tabID}).Decode(&tab); err != nil {
			if err == mongo.ErrNoDocuments {
				return nil, apperrors.NotFoundf("tab %s not found", tabID)
			}
			return nil, apperrors.Transient("tab lookup failed", err)
		}
		order, upd, err := decide(tab)
		if err != nil {
			return nil, err
		}
		if _, err := m.orders.InsertOne(sc, order); err != nil {
			return nil, apperrors.Transient("order insert failed", err)
		}
		set := bson.D{
			{Key: "total", Value: upd.Aggregates.Total},
			{Key: "order_count", Value: upd.Aggregates.OrderCount},
			{Key: "item_count", Value: upd.Aggregates.ItemCount},
			{Key: "updated_at", Value: upd.UpdatedAt},
		}
		if upd.Activate != nil {
			set = append(set, bson.E{Key: "status", Value: models.TabActive})
			set = append(set, bson.E{Key: "waiter_id", Value: upd.Activate.ID})
			set = append(set, bson.E{Key: "waiter_name", Value: upd.Activate.Name})
		}
		if _, err := m.tabs.UpdateOne(sc, bson.M{"tab_id": upd.TabID}, bson.D{{Key: "$set", Value: set}}); err != nil {
			return nil, apperrors.Transient("tab aggregate update failed", err)
		}
		return appendResult{order: order, activated: upd.Activate != nil}, nil
	})
	if err != nil {
		if apperrors.KindOf(err) != 0 {
			return models.Order{}, false, err
		}
		return models.Order{}, false, apperrors.Transient("order append failed", err)
	}
	r := result.(appendResult)
	m.logger.Debug("order committed",
		zap.String("order_id", r.order.Order_id),
		zap.String("tab_id", tabID))
	return r.order, r.activated, nil
}

func (m *Mongo) GetOrder(ctx context.Context, orderID string) (models.Order, error) {
	var order models.Order
	err := m.orders.FindOne(ctx, bson.M{"order_id": orderID}).Decode(&order)
	if err == mongo.ErrNoDocuments {
		return models.Order{}, apperrors.NotFoundf("order %s not found", orderID)
	}
	if err != nil {
		return models.Order{}, apperrors.Transient("order lookup failed", err)
	}
	return order, nil
}

func (m *Mongo) OrdersByTab(ctx context.Context, tabID string) ([]models.Order, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}})
	cursor, err := m.orders.Find(ctx, bson.M{"tab_id": tabID}, opts)
	if err != nil {
		return nil, apperrors.Transient("order listing failed", err)
	}
	defer cursor.Close(ctx)
	var orders []models.Order
	if err := cursor.All(ctx, &orders); err != nil {
		return nil, apperrors.Transient("order decoding failed", err)
	}
	return orders, nil
}

func (m *Mongo) SetOrderStatus(ctx context.Context, orderID string, status string, updatedAt time.Time) error {
	update := bson.D{{Key: "$set", Value: bson.D{
		{Key: "status", Value: status},
		{Key: "updated_at", Value: updatedAt},
	}}}
	result, err := m.orders.UpdateOne(ctx, bson.M{"order_id": orderID}, update)
	if err != nil {
		return apperrors.Transient("order status update failed", err)
	}
	if result.MatchedCount == 0 {
		return apperrors.NotFoundf("order %s not found", orderID)
	}
	return nil
}
