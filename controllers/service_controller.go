package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rudracore/portal-api/config"
	"github.com/rudracore/portal-api/models"
)

// ServiceView is a catalog entry with its icon key normalized to a known glyph
type ServiceView struct {
	models.Service
	Icon models.Icon `json:"icon"`
}

// ListServices handles GET /api/v1/services - returns the full catalog
// ordered by creation time ascending
func ListServices(c *gin.Context) {
	db := config.GetDB()

	var catalog []models.Service
	if err := db.Order("created_at ASC").Find(&catalog).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "FETCH_FAILED",
				"message": "Failed to fetch services",
			},
		})
		return
	}

	views := make([]ServiceView, 0, len(catalog))
	for _, service := range catalog {
		views = append(views, ServiceView{
			Service: service,
			Icon:    models.ResolveIcon(service.Icon),
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    views,
	})
}
