package controllers

import (
	"context"
	"net/http"
	"time"

	"bill-o/database"
	"bill-o/helpers"
	"bill-o/models"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

var waiterCollection *mongo.Collection = database.OpenCollection(database.Client, "waiters")

func GetWaiters() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
		defer cancel()
		restaurantId := c.Query("restaurant_id")
		if restaurantId == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "restaurant_id query parameter is required"})
			return
		}
		result, err := waiterCollection.Find(ctx, bson.M{"restaurant_id": restaurantId})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "error occurred while listing waiters"})
			return
		}
		var allWaiters []bson.M
		if err := result.All(ctx, &allWaiters); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "error occurred while decoding waiters"})
			return
		}
		c.JSON(http.StatusOK, allWaiters)
	}
}

func GetWaiter() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
		defer cancel()
		var waiter models.Waiter
		err := waiterCollection.FindOne(ctx, bson.M{"waiter_id": c.Param("waiter_id")}).Decode(&waiter)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "waiter not found"})
			return
		}
		c.JSON(http.StatusOK, waiter)
	}
}

func CreateWaiter() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
		defer cancel()
		var waiter models.Waiter
		if err := c.BindJSON(&waiter); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if validationErr := validate.Struct(&waiter); validationErr != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": validationErr.Error()})
			return
		}
		waiter.ID = primitive.NewObjectID()
		waiter.Waiter_id = waiter.ID.Hex()
		waiter.Active = true
		waiter.Created_at, _ = time.Parse(time.RFC3339, time.Now().Format(time.RFC3339))
		waiter.Updated_at = waiter.Created_at

		if _, err := waiterCollection.InsertOne(ctx, waiter); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "waiter was not created"})
			return
		}
		c.JSON(http.StatusOK, waiter)
	}
}

func UpdateWaiter() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
		defer cancel()
		waiterId := c.Param("waiter_id")
		var waiter models.Waiter
		if err := c.BindJSON(&waiter); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		var updateObj primitive.D
		if waiter.Name != nil {
			updateObj = append(updateObj, bson.E{Key: "name", Value: waiter.Name})
		}
		if waiter.Pin != nil {
			updateObj = append(updateObj, bson.E{Key: "pin", Value: waiter.Pin})
		}
		updateObj = append(updateObj, bson.E{Key: "active", Value: waiter.Active})
		updated_at, _ := time.Parse(time.RFC3339, time.Now().Format(time.RFC3339))
		updateObj = append(updateObj, bson.E{Key: "updated_at", Value: updated_at})

		result, err := waiterCollection.UpdateOne(
			ctx,
			bson.M{"waiter_id": waiterId},
			bson.D{{Key: "$set", Value: updateObj}},
		)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "waiter update failed"})
			return
		}
		if result.MatchedCount == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "waiter not found"})
			return
		}
		c.JSON(http.StatusOK, result)
	}
}

// WaiterLogin compares the submitted 4-digit PIN against the stored value.
// The PIN is a plaintext convenience gate: no hashing, no rate limiting. Do
// not treat it as a security boundary.
func WaiterLogin() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
		defer cancel()
		var req struct {
			Waiter_id *string `json:"waiter_id" validate:"required"`
			Pin       *string `json:"pin" validate:"required,len=4,numeric"`
		}
		if err := c.BindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if validationErr := validate.Struct(&req); validationErr != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": validationErr.Error()})
			return
		}
		var waiter models.Waiter
		err := waiterCollection.FindOne(ctx, bson.M{"waiter_id": req.Waiter_id}).Decode(&waiter)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "waiter or pin is incorrect"})
			return
		}
		if !waiter.Active || waiter.Pin == nil || *waiter.Pin != *req.Pin {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "waiter or pin is incorrect"})
			return
		}
		token, refreshToken, err := helpers.GenerateAllTokens("", *waiter.Name, waiter.Waiter_id, "WAITER")
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "token generation failed"})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"waiter":        waiter,
			"token":         token,
			"refresh_token": refreshToken,
		})
	}
}
