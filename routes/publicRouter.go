package routes

import (
	controller "bill-o/controllers"

	"github.com/gin-gonic/gin"
)

// PublicRoutes are reachable without a token: the customer QR scan path,
// the waiter PIN login, and the customer-facing menu.
func PublicRoutes(incomingRoutes *gin.Engine) {
	incomingRoutes.POST("/scan/:restaurant_id/tabs", controller.CreateTabByScan())
	incomingRoutes.POST("/waiters/login", controller.WaiterLogin())
	incomingRoutes.GET("/restaurants/:restaurant_id/menu", controller.GetMenuItemsByRestaurant())
}
