package routes

import (
	controller "bill-o/controllers"

	"github.com/gin-gonic/gin"
)

func OrderRoutes(incomingRoutes *gin.Engine) {
	incomingRoutes.POST("/tabs/:tab_id/orders", controller.CreateOrder())
	incomingRoutes.GET("/tabs/:tab_id/orders", controller.GetOrdersByTab())
	incomingRoutes.GET("/orders/:order_id", controller.GetOrder())
	incomingRoutes.PATCH("/orders/:order_id/status", controller.UpdateOrderStatus())
}
