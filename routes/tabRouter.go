package routes

import (
	controller "bill-o/controllers"

	"github.com/gin-gonic/gin"
)

func TabRoutes(incomingRoutes *gin.Engine) {
	incomingRoutes.GET("/tabs", controller.GetTabs())
	incomingRoutes.GET("/tabs/:tab_id", controller.GetTab())
	incomingRoutes.POST("/tabs", controller.CreateTab())
	incomingRoutes.POST("/tabs/:tab_id/activate", controller.ActivateTab())
	incomingRoutes.PATCH("/tabs/:tab_id/status", controller.UpdateTabStatus())
	incomingRoutes.POST("/tabs/:tab_id/reconcile", controller.ReconcileTab())
	incomingRoutes.DELETE("/tabs/:tab_id", controller.DeleteTab())
}
