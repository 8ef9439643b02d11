package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rudracore/portal-api/config"
	"github.com/rudracore/portal-api/middleware"
	"github.com/rudracore/portal-api/models"
	"gorm.io/gorm"
)

// GetDashboard handles GET /api/v1/dashboard - returns the greeting profile
// and counters for the landing view after login
func GetDashboard(c *gin.Context) {
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

	// A missing profile is not fatal; the dashboard greets a generic user
	var profile *models.Profile
	var found models.Profile
	if err := db.First(&found, "id = ?", userID).Error; err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusInternalServerError, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "FETCH_FAILED",
					"message": "Failed to fetch profile",
				},
			})
			return
		}
	} else {
		profile = &found
	}

	var orderCount int64
	if err := db.Model(&models.Order{}).Where("user_id = ?", userID).Count(&orderCount).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "FETCH_FAILED",
				"message": "Failed to fetch order count",
			},
		})
		return
	}

	var serviceCount int64
	if err := db.Model(&models.Service{}).Count(&serviceCount).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "FETCH_FAILED",
				"message": "Failed to fetch service count",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"profile":       profile,
			"order_count":   orderCount,
			"service_count": serviceCount,
		},
	})
}
