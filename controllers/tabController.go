package controllers

import (
	"context"
	"net/http"
	"time"

	"bill-o/database"
	"bill-o/services"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var tabCollection *mongo.Collection = database.OpenCollection(database.Client, "tabs")

type CreateTabRequest struct {
	Restaurant_id string  `json:"restaurant_id" validate:"required"`
	Initiator     string  `json:"initiator" validate:"required,eq=customer|eq=waiter"`
	Waiter_id     *string `json:"waiter_id"`
	Waiter_name   *string `json:"waiter_name"`
}

func GetTabs() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
		defer cancel()
		restaurantId := c.Query("restaurant_id")
		if restaurantId == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "restaurant_id query parameter is required"})
			return
		}
		filter := bson.M{"restaurant_id": restaurantId}
		if statuses := c.QueryArray("status"); len(statuses) > 0 {
			filter["status"] = bson.M{"$in": statuses}
		}
		opts := options.Find().SetSort(bson.D{{Key: "updated_at", Value: -1}})
		result, err := tabCollection.Find(ctx, filter, opts)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "error occurred while listing tabs"})
			return
		}
		var allTabs []bson.M
		if err := result.All(ctx, &allTabs); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "error occurred while decoding tabs"})
			return
		}
		c.JSON(http.StatusOK, allTabs)
	}
}

func GetTab() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
		defer cancel()
		tab, err := tabService.Store.GetTab(ctx, c.Param("tab_id"))
		if err != nil {
			abortWithError(c, err)
			return
		}
		c.JSON(http.StatusOK, tab)
	}
}

func CreateTab() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
		defer cancel()
		var req CreateTabRequest
		if err := c.BindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if validationErr := validate.Struct(&req); validationErr != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": validationErr.Error()})
			return
		}
		var waiter *services.WaiterRef
		if req.Waiter_id != nil && req.Waiter_name != nil {
			waiter = &services.WaiterRef{ID: *req.Waiter_id, Name: *req.Waiter_name}
		}
		tab, err := tabService.CreateTab(ctx, req.Restaurant_id, req.Initiator, waiter)
		if err != nil {
			abortWithError(c, err)
			return
		}
		c.JSON(http.StatusOK, tab)
	}
}

// CreateTabByScan is the public QR path: the customer opens an inactive tab
// with nothing but the restaurant id baked into the QR code.
func CreateTabByScan() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
		defer cancel()
		restaurantId := c.Param("restaurant_id")
		tab, err := tabService.CreateTab(ctx, restaurantId, services.InitiatorCustomer, nil)
		if err != nil {
			abortWithError(c, err)
			return
		}
		c.JSON(http.StatusOK, tab)
	}
}

func ActivateTab() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
		defer cancel()
		var req struct {
			Waiter_id   *string `json:"waiter_id" validate:"required"`
			Waiter_name *string `json:"waiter_name" validate:"required"`
		}
		if err := c.BindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if validationErr := validate.Struct(&req); validationErr != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": validationErr.Error()})
			return
		}
		tab, err := tabService.ActivateTab(ctx, c.Param("tab_id"), services.WaiterRef{ID: *req.Waiter_id, Name: *req.Waiter_name})
		if err != nil {
			abortWithError(c, err)
			return
		}
		c.JSON(http.StatusOK, tab)
	}
}

func UpdateTabStatus() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
		defer cancel()
		var req struct {
			Status *string `json:"status" validate:"required"`
		}
		if err := c.BindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if validationErr := validate.Struct(&req); validationErr != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": validationErr.Error()})
			return
		}
		tab, err := tabService.UpdateTabStatus(ctx, c.Param("tab_id"), *req.Status)
		if err != nil {
			abortWithError(c, err)
			return
		}
		c.JSON(http.StatusOK, tab)
	}
}

// ReconcileTab recomputes the tab's cached totals from its order history.
// Admin repair path for aggregates that drifted outside AppendOrder.
func ReconcileTab() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
		defer cancel()
		agg, err := orderService.ReconcileTab(ctx, c.Param("tab_id"))
		if err != nil {
			abortWithError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"tab_id":      c.Param("tab_id"),
			"total":       agg.Total,
			"order_count": agg.OrderCount,
			"item_count":  agg.ItemCount,
		})
	}
}

func DeleteTab() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
		defer cancel()
		if err := tabService.DeleteTab(ctx, c.Param("tab_id")); err != nil {
			abortWithError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "tab deleted"})
	}
}
