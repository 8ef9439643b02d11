package controllers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rudracore/portal-api/config"
	"github.com/rudracore/portal-api/middleware"
	"github.com/rudracore/portal-api/models"
	"gorm.io/gorm"
)

// CreateOrderRequest represents the request body for placing an order.
// Details is free text; requiring it is a client-side concern, the write
// itself accepts an empty value.
type CreateOrderRequest struct {
	ServiceID       string `json:"service_id" binding:"required,uuid"`
	Details         string `json:"details"`
	IncludeLifetime bool   `json:"include_lifetime"`
}

// OrderView is an order joined with its service metadata plus the display
// treatment for its status
type OrderView struct {
	models.Order
	StatusBadge  string      `json:"status_badge"`
	ServiceIcon  models.Icon `json:"service_icon"`
	DeliveryPath string      `json:"delivery_path,omitempty"`
}

// CreateOrder handles POST /api/v1/orders - places a new order for the
// current user with status pending
func CreateOrder(c *gin.Context) {
	userID, err := middleware.GetUserUUID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "UNAUTHORIZED",
				"message": "Could not extract user information",
			},
		})
		return
	}

	var req CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Invalid request data",
				"details": err.Error(),
			},
		})
		return
	}

	serviceID, err := uuid.Parse(req.ServiceID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Invalid service id",
			},
		})
		return
	}

	// The ordered service must exist; its prices fix the order total
	db := config.GetDB()
	var service models.Service
	if err := db.First(&service, "id = ?", serviceID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "SERVICE_NOT_FOUND",
					"message": "Service not found",
				},
			})
			return
		}

		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "FETCH_FAILED",
				"message": "Failed to fetch service",
			},
		})
		return
	}

	if req.IncludeLifetime && service.LifetimePrice == nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": fmt.Sprintf("Service %q does not offer lifetime updates", service.Name),
			},
		})
		return
	}

	// Total is fixed at creation time and never recomputed, even if the
	// service's prices change later
	totalAmount := service.BasePrice
	if req.IncludeLifetime {
		totalAmount = *service.LifetimePrice
	}

	order := models.Order{
		UserID:          userID,
		ServiceID:       service.ID,
		Details:         req.Details,
		TotalAmount:     totalAmount,
		IncludeLifetime: req.IncludeLifetime,
		Status:          models.OrderStatusPending,
	}

	if err := db.Create(&order).Error; err != nil {
		// Surface the store's message verbatim so the client can retry
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "ORDER_FAILED",
				"message": err.Error(),
			},
		})
		return
	}

	// Load the service relationship to return complete data
	if err := db.Preload("Service").First(&order, "id = ?", order.ID).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to load order details",
			},
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success":  true,
		"data":     orderView(order),
		"redirect": middleware.PathOrders,
	})
}

// ListOrders handles GET /api/v1/orders - returns the current user's orders
// joined with their services, newest first
func ListOrders(c *gin.Context) {
	userID, err := middleware.GetUserUUID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "UNAUTHORIZED",
				"message": "Could not extract user information",
			},
		})
		return
	}

	db := config.GetDB()
	var orders []models.Order
	if err := db.Preload("Service").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&orders).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "FETCH_FAILED",
				"message": "Failed to fetch orders",
			},
		})
		return
	}

	views := make([]OrderView, 0, len(orders))
	for _, order := range orders {
		views = append(views, orderView(order))
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    views,
	})
}

// orderView decorates an order with its display treatment. Completed orders
// carry the path to their delivery page.
func orderView(order models.Order) OrderView {
	view := OrderView{
		Order:       order,
		StatusBadge: models.StatusBadge(order.Status),
		ServiceIcon: models.ResolveIcon(order.Service.Icon),
	}
	if order.Status == models.OrderStatusCompleted {
		view.DeliveryPath = fmt.Sprintf("%s?order=%s", middleware.PathDelivery, order.ID)
	}
	return view
}
