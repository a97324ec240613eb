package routes

import (
	controller "bill-o/controllers"

	"github.com/gin-gonic/gin"
)

func MenuItemRoutes(incomingRoutes *gin.Engine) {
	incomingRoutes.GET("/menuItems/:menu_item_id", controller.GetMenuItem())
	incomingRoutes.POST("/menuItems", controller.CreateMenuItem())
	incomingRoutes.PATCH("/menuItems/:menu_item_id", controller.UpdateMenuItem())
	incomingRoutes.DELETE("/menuItems/:menu_item_id", controller.DeleteMenuItem())
}
