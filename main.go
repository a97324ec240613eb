package main

import (
	"log"
	"net/http"
	"os"
	"time"

	middleware "bill-o/middleware"
	routes "bill-o/routes"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(".env"); err != nil {
		log.Println("no .env file found, using environment")
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8000"
	}

	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())

	allowedOrigin := os.Getenv("FRONTEND_ORIGIN")
	if allowedOrigin == "" {
		allowedOrigin = "http://localhost:9000"
	}
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{allowedOrigin},
		AllowMethods:     []string{"POST", "GET", "PATCH", "DELETE", "PUT", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "token"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"message": "page not found"})
	})

	// routes a customer or an unauthenticated waiter app can reach
	routes.UserRoutes(router)
	routes.PublicRoutes(router)
	routes.DashboardRoutes(router)

	router.Use(middleware.Authentication())
	routes.RestaurantRoutes(router)
	routes.WaiterRoutes(router)
	routes.MenuItemRoutes(router)
	routes.TabRoutes(router)
	routes.OrderRoutes(router)

	router.Run(":" + port)
}
