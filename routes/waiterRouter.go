package routes

import (
	controller "bill-o/controllers"

	"github.com/gin-gonic/gin"
)

func WaiterRoutes(incomingRoutes *gin.Engine) {
	incomingRoutes.GET("/waiters", controller.GetWaiters())
	incomingRoutes.GET("/waiters/:waiter_id", controller.GetWaiter())
	incomingRoutes.POST("/waiters", controller.CreateWaiter())
	incomingRoutes.PATCH("/waiters/:waiter_id", controller.UpdateWaiter())
}
