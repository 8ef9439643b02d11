package controllers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rudracore/portal-api/config"
	"github.com/rudracore/portal-api/middleware"
	"github.com/rudracore/portal-api/models"
	"github.com/rudracore/portal-api/services"
	"gorm.io/gorm"
)

// GetDelivery handles GET /api/v1/delivery?order=<id> - the access-controlled
// view over a completed order's deliverable.
//
// The lookup uses a single compound predicate (id AND user_id AND
// status=completed) so an order that is unowned, nonexistent, or not yet
// completed is indistinguishable from not found.
func GetDelivery(c *gin.Context) {
	// A missing order parameter redirects before any query is attempted
	orderParam := c.Query("order")
	if orderParam == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "MISSING_ORDER",
				"message": "No order specified",
			},
			"redirect": middleware.PathOrders,
		})
		return
	}

	userID, err := middleware.GetUserUUID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "UNAUTHORIZED",
				"message": "Could not extract user information",
			},
			"redirect": middleware.PathAuth,
		})
		return
	}

	// A malformed id cannot match any order
	orderID, err := uuid.Parse(orderParam)
	if err != nil {
		deliveryNotFound(c)
		return
	}

	db := config.GetDB()
	var order models.Order
	err = db.Preload("Service").
		Where("id = ? AND user_id = ? AND status = ?", orderID, userID, models.OrderStatusCompleted).
		First(&order).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			deliveryNotFound(c)
			return
		}

		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "FETCH_FAILED",
				"message": "Failed to load delivery information",
			},
			"redirect": middleware.PathOrders,
		})
		return
	}

	// Resolve the stored link to something the client can open. A failed
	// resolution degrades to "delivery pending" rather than blocking the page.
	deliveryURL := ""
	if order.DeliveryLink != nil {
		deliveryURL, err = services.GetDeliveryService().ResolveLink(*order.DeliveryLink)
		if err != nil {
			log.Printf("Failed to resolve delivery link for order %s: %v", order.ID, err)
			deliveryURL = ""
		}
	}

	data := gin.H{
		"order":          orderView(order),
		"delivery_ready": deliveryURL != "",
		"support_url":    config.GetConfig().SupportURL,
	}
	if deliveryURL != "" {
		data["delivery_url"] = deliveryURL
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    data,
	})
}

// deliveryNotFound is the single answer for every unauthorized, premature,
// or nonexistent delivery request
func deliveryNotFound(c *gin.Context) {
	c.JSON(http.StatusNotFound, gin.H{
		"success": false,
		"error": gin.H{
			"code":    "ORDER_NOT_FOUND",
			"message": "This delivery is not available or doesn't exist.",
		},
		"redirect": middleware.PathOrders,
	})
}
