package controllers

import (
	"context"
	"net/http"
	"time"

	"bill-o/models"
	"bill-o/services"

	"github.com/gin-gonic/gin"
)

type AppendOrderRequest struct {
	Items       []models.OrderLine `json:"items" validate:"required"`
	Waiter_id   *string            `json:"waiter_id"`
	Waiter_name *string            `json:"waiter_name"`
}

// CreateOrder appends an order to a tab. The order insert and the tab
// aggregate update commit together; the response carries the created order
// and whether this first order activated the tab.
func CreateOrder() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
		defer cancel()
		var req AppendOrderRequest
		if err := c.BindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		var waiter *services.WaiterRef
		if req.Waiter_id != nil && req.Waiter_name != nil {
			waiter = &services.WaiterRef{ID: *req.Waiter_id, Name: *req.Waiter_name}
		}
		order, activated, err := orderService.AppendOrder(ctx, c.Param("tab_id"), req.Items, waiter)
		if err != nil {
			abortWithError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"order":         order,
			"activated_tab": activated,
		})
	}
}

func GetOrdersByTab() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
		defer cancel()
		orders, err := orderService.Store.OrdersByTab(ctx, c.Param("tab_id"))
		if err != nil {
			abortWithError(c, err)
			return
		}
		c.JSON(http.StatusOK, orders)
	}
}

func GetOrder() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
		defer cancel()
		order, err := orderService.Store.GetOrder(ctx, c.Param("order_id"))
		if err != nil {
			abortWithError(c, err)
			return
		}
		c.JSON(http.StatusOK, order)
	}
}

func UpdateOrderStatus() gin.HandlerFunc {
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
		order, err := orderService.UpdateOrderStatus(ctx, c.Param("order_id"), *req.Status)
		if err != nil {
			abortWithError(c, err)
			return
		}
		c.JSON(http.StatusOK, order)
	}
}
