package controllers

import (
	"context"
	"net/http"
	"sync"

	"bill-o/services"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// TabsDashboard streams tab snapshots for one restaurant over a websocket.
// Every change in the tabs collection produces a fresh "tabs" frame; a
// degraded subscription produces empty frames with the error attached, so
// the dashboard keeps rendering.
func TabsDashboard() gin.HandlerFunc {
	return func(c *gin.Context) {
		restaurantId := c.Param("restaurant_id")
		statuses := c.QueryArray("status")

		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			logger.Warn("websocket upgrade failed", zap.Error(err))
			return
		}
		defer conn.Close()

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		var writeMu sync.Mutex
		unsubscribe := projector.SubscribeTabs(ctx, services.TabQuery{
			RestaurantID: restaurantId,
			Statuses:     statuses,
		}, func(snap services.TabSnapshot) {
			writeMu.Lock()
			defer writeMu.Unlock()
			frame := gin.H{"event": "tabs", "tabs": snap.Tabs}
			if snap.Err != nil {
				frame["error"] = snap.Err.Error()
			}
			if err := conn.WriteJSON(frame); err != nil {
				cancel()
			}
		})
		defer unsubscribe()

		// block until the client goes away
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				break
			}
		}
	}
}

// OrdersDashboard streams order snapshots for one tab; used by the customer
// bill view and the kitchen display.
func OrdersDashboard() gin.HandlerFunc {
	return func(c *gin.Context) {
		tabId := c.Param("tab_id")

		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			logger.Warn("websocket upgrade failed", zap.Error(err))
			return
		}
		defer conn.Close()

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		var writeMu sync.Mutex
		unsubscribe := projector.SubscribeOrders(ctx, tabId, func(snap services.OrderSnapshot) {
			writeMu.Lock()
			defer writeMu.Unlock()
			frame := gin.H{"event": "orders", "orders": snap.Orders}
			if snap.Err != nil {
				frame["error"] = snap.Err.Error()
			}
			if err := conn.WriteJSON(frame); err != nil {
				cancel()
			}
		})
		defer unsubscribe()

		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				break
			}
		}
	}
}
