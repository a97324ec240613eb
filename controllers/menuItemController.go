package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"bill-o/database"
	"bill-o/models"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

var menuItemCollection *mongo.Collection = database.OpenCollection(database.Client, "menuItems")

const menuCacheTTL = 5 * time.Minute

func menuCacheKey(restaurantId string) string {
	return "billo:menu:" + restaurantId
}

// GetMenuItemsByRestaurant serves the customer-facing menu. Reads go through
// the Redis cache when configured; the cache is dropped on every menu write.
func GetMenuItemsByRestaurant() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
		defer cancel()
		restaurantId := c.Param("restaurant_id")

		if database.RedisClient != nil {
			cached, err := database.RedisClient.Get(ctx, menuCacheKey(restaurantId)).Result()
			if err == nil {
				var items []models.MenuItem
				if json.Unmarshal([]byte(cached), &items) == nil {
					c.JSON(http.StatusOK, items)
					return
				}
			}
		}

		result, err := menuItemCollection.Find(ctx, bson.M{"restaurant_id": restaurantId})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "error occurred while listing menu items"})
			return
		}
		items := []models.MenuItem{}
		if err := result.All(ctx, &items); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "error occurred while decoding menu items"})
			return
		}

		if database.RedisClient != nil {
			if raw, err := json.Marshal(items); err == nil {
				if err := database.RedisClient.Set(ctx, menuCacheKey(restaurantId), raw, menuCacheTTL).Err(); err != nil {
					logger.Warn("menu cache write failed", zap.Error(err))
				}
			}
		}
		c.JSON(http.StatusOK, items)
	}
}

func GetMenuItem() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
		defer cancel()
		var item models.MenuItem
		err := menuItemCollection.FindOne(ctx, bson.M{"menu_item_id": c.Param("menu_item_id")}).Decode(&item)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "menu item not found"})
			return
		}
		c.JSON(http.StatusOK, item)
	}
}

func CreateMenuItem() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
		defer cancel()
		var item models.MenuItem
		if err := c.BindJSON(&item); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if validationErr := validate.Struct(&item); validationErr != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": validationErr.Error()})
			return
		}
		if *item.Price <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "price must be greater than zero"})
			return
		}
		item.ID = primitive.NewObjectID()
		item.Menu_item_id = item.ID.Hex()
		item.Available = true
		item.Created_at, _ = time.Parse(time.RFC3339, time.Now().Format(time.RFC3339))
		item.Updated_at = item.Created_at

		if _, err := menuItemCollection.InsertOne(ctx, item); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "menu item was not created"})
			return
		}
		dropMenuCache(ctx, *item.Restaurant_id)
		c.JSON(http.StatusOK, item)
	}
}

func UpdateMenuItem() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
		defer cancel()
		menuItemId := c.Param("menu_item_id")
		var item models.MenuItem
		if err := c.BindJSON(&item); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		var updateObj primitive.D
		if item.Name != nil {
			updateObj = append(updateObj, bson.E{Key: "name", Value: item.Name})
		}
		if item.Category != nil {
			updateObj = append(updateObj, bson.E{Key: "category", Value: item.Category})
		}
		if item.Price != nil {
			if *item.Price <= 0 {
				c.JSON(http.StatusBadRequest, gin.H{"error": "price must be greater than zero"})
				return
			}
			updateObj = append(updateObj, bson.E{Key: "price", Value: item.Price})
		}
		if item.Description != nil {
			updateObj = append(updateObj, bson.E{Key: "description", Value: item.Description})
		}
		updateObj = append(updateObj, bson.E{Key: "available", Value: item.Available})
		updated_at, _ := time.Parse(time.RFC3339, time.Now().Format(time.RFC3339))
		updateObj = append(updateObj, bson.E{Key: "updated_at", Value: updated_at})

		var existing models.MenuItem
		if err := menuItemCollection.FindOne(ctx, bson.M{"menu_item_id": menuItemId}).Decode(&existing); err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "menu item not found"})
			return
		}
		_, err := menuItemCollection.UpdateOne(
			ctx,
			bson.M{"menu_item_id": menuItemId},
			bson.D{{Key: "$set", Value: updateObj}},
		)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "menu item update failed"})
			return
		}
		dropMenuCache(ctx, *existing.Restaurant_id)
		c.JSON(http.StatusOK, gin.H{"message": "menu item updated"})
	}
}

// DeleteMenuItem removes a catalog entry. Orders that referenced it keep
// their snapshotted name and price, so historical bills are unaffected.
func DeleteMenuItem() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
		defer cancel()
		var existing models.MenuItem
		if err := menuItemCollection.FindOne(ctx, bson.M{"menu_item_id": c.Param("menu_item_id")}).Decode(&existing); err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "menu item not found"})
			return
		}
		if _, err := menuItemCollection.DeleteOne(ctx, bson.M{"menu_item_id": c.Param("menu_item_id")}); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "menu item delete failed"})
			return
		}
		dropMenuCache(ctx, *existing.Restaurant_id)
		c.JSON(http.StatusOK, gin.H{"message": "menu item deleted"})
	}
}

func dropMenuCache(ctx context.Context, restaurantId string) {
	if database.RedisClient == nil {
		return
	}
	if err := database.RedisClient.Del(ctx, menuCacheKey(restaurantId)).Err(); err != nil {
		logger.Warn("menu cache invalidation failed",
			zap.String("restaurant_id", restaurantId),
			zap.Error(err))
	}
}
