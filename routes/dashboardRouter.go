package routes

import (
	controller "bill-o/controllers"

	"github.com/gin-gonic/gin"
)

func DashboardRoutes(incomingRoutes *gin.Engine) {
	incomingRoutes.GET("/ws/restaurants/:restaurant_id/tabs", controller.TabsDashboard())
	incomingRoutes.GET("/ws/tabs/:tab_id/orders", controller.OrdersDashboard())
}
