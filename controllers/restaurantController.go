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

var restaurantCollection *mongo.Collection = database.OpenCollection(database.Client, "restaurants")

func GetRestaurants() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
		defer cancel()
		filter := bson.M{}
		if ownerId := c.Query("owner_id"); ownerId != "" {
			filter["owner_id"] = ownerId
		}
		result, err := restaurantCollection.Find(ctx, filter)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "error occurred while listing restaurants"})
			return
		}
		var allRestaurants []bson.M
		if err := result.All(ctx, &allRestaurants); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "error occurred while decoding restaurants"})
			return
		}
		c.JSON(http.StatusOK, allRestaurants)
	}
}

func GetRestaurant() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
		defer cancel()
		restaurant, err := tabService.Store.GetRestaurant(ctx, c.Param("restaurant_id"))
		if err != nil {
			abortWithError(c, err)
			return
		}
		c.JSON(http.StatusOK, restaurant)
	}
}

func CreateRestaurant() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
		defer cancel()
		var restaurant models.Restaurant
		if err := c.BindJSON(&restaurant); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if validationErr := validate.Struct(&restaurant); validationErr != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": validationErr.Error()})
			return
		}
		restaurant.ID = primitive.NewObjectID()
		restaurant.Restaurant_id = restaurant.ID.Hex()
		restaurant.Daily_tab_counter = 0
		restaurant.Last_tab_reset = time.Time{}
		restaurant.Created_at, _ = time.Parse(time.RFC3339, time.Now().Format(time.RFC3339))
		restaurant.Updated_at = restaurant.Created_at

		if _, err := restaurantCollection.InsertOne(ctx, restaurant); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "restaurant was not created"})
			return
		}
		c.JSON(http.StatusOK, restaurant)
	}
}

func UpdateRestaurant() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
		defer cancel()
		restaurantId := c.Param("restaurant_id")
		var restaurant models.Restaurant
		if err := c.BindJSON(&restaurant); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		var updateObj primitive.D
		if restaurant.Name != nil {
			updateObj = append(updateObj, bson.E{Key: "name", Value: restaurant.Name})
		}
		if restaurant.Address != nil {
			updateObj = append(updateObj, bson.E{Key: "address", Value: restaurant.Address})
		}
		if restaurant.Phone != nil {
			updateObj = append(updateObj, bson.E{Key: "phone", Value: restaurant.Phone})
		}
		if restaurant.Settings != nil {
			updateObj = append(updateObj, bson.E{Key: "settings", Value: restaurant.Settings})
		}
		if restaurant.Payment_types != nil {
			updateObj = append(updateObj, bson.E{Key: "payment_types", Value: restaurant.Payment_types})
		}
		// daily_tab_counter and last_tab_reset are owned by the reference
		// allocator and never writable through this endpoint
		updated_at, _ := time.Parse(time.RFC3339, time.Now().Format(time.RFC3339))
		updateObj = append(updateObj, bson.E{Key: "updated_at", Value: updated_at})

		filter := bson.M{"restaurant_id": restaurantId}
		result, err := restaurantCollection.UpdateOne(
			ctx,
			filter,
			bson.D{{Key: "$set", Value: updateObj}},
			options.Update(),
		)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "restaurant update failed"})
			return
		}
		if result.MatchedCount == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "restaurant not found"})
			return
		}
		c.JSON(http.StatusOK, result)
	}
}
