package routes

import (
	controller "bill-o/controllers"

	"github.com/gin-gonic/gin"
)

func RestaurantRoutes(incomingRoutes *gin.Engine) {
	incomingRoutes.GET("/restaurants", controller.GetRestaurants())
	incomingRoutes.GET("/restaurants/:restaurant_id", controller.GetRestaurant())
	incomingRoutes.POST("/restaurants", controller.CreateRestaurant())
	incomingRoutes.PATCH("/restaurants/:restaurant_id", controller.UpdateRestaurant())
	incomingRoutes.GET("/restaurants/:restaurant_id/subscription", controller.GetSubscription())
	incomingRoutes.PUT("/subscriptions", controller.UpsertSubscription())
}
