package controllers

import (
	"context"
	"net/http"
	"time"

	"bill-o/database"
	"bill-o/models"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var subscriptionCollection *mongo.Collection = database.OpenCollection(database.Client, "subscriptions")

func GetSubscription() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
		defer cancel()
		var subscription models.Subscription
		err := subscriptionCollection.FindOne(ctx, bson.M{"restaurant_id": c.Param("restaurant_id")}).Decode(&subscription)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "no subscription for restaurant"})
			return
		}
		c.JSON(http.StatusOK, subscription)
	}
}

// UpsertSubscription records the plan state pushed by the billing provider.
// The billing flow itself lives outside this service.
func UpsertSubscription() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
		defer cancel()
		var subscription models.Subscription
		if err := c.BindJSON(&subscription); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if validationErr := validate.Struct(&subscription); validationErr != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": validationErr.Error()})
			return
		}
		updated_at, _ := time.Parse(time.RFC3339, time.Now().Format(time.RFC3339))
		updateObj := bson.D{
			{Key: "plan", Value: subscription.Plan},
			{Key: "status", Value: subscription.Status},
			{Key: "expires_at", Value: subscription.Expires_at},
			{Key: "updated_at", Value: updated_at},
		}
		filter := bson.M{"restaurant_id": subscription.Restaurant_id}
		upsert := true
		opt := options.UpdateOptions{
			Upsert: &upsert,
		}
		result, err := subscriptionCollection.UpdateOne(
			ctx,
			filter,
			bson.D{
				{Key: "$set", Value: updateObj},
				{Key: "$setOnInsert", Value: bson.D{
					{Key: "_id", Value: primitive.NewObjectID()},
					{Key: "subscription_id", Value: primitive.NewObjectID().Hex()},
					{Key: "created_at", Value: updated_at},
				}},
			},
			&opt,
		)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "subscription update failed"})
			return
		}
		c.JSON(http.StatusOK, result)
	}
}
