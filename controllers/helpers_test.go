package controllers

import (
	"testing"
	"time"

	"github.com/auth0/go-jwt-middleware/v2/validator"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rudracore/portal-api/config"
	"github.com/rudracore/portal-api/middleware"
	"github.com/rudracore/portal-api/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	return router
}

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to connect to test database: %v", err)
	}

	if err := db.AutoMigrate(&models.Service{}, &models.Order{}, &models.Profile{}); err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}

	config.SetDB(db)
	return db
}

func setupTestConfig() *config.Config {
	cfg := &config.Config{
		GoEnv:       "test",
		AuthBaseURL: "https://auth.test.example.com",
		JWTSecret:   "test-secret",
		JWTAudience: "authenticated",
		SupportURL:  "https://rudracore.com/support",
	}
	config.SetConfig(cfg)
	return cfg
}

// mockAuthMiddleware installs a session the way the real JWT middleware does
func mockAuthMiddleware(userID uuid.UUID, accessToken string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("user_id", userID.String())
		c.Set("access_token", accessToken)

		mockClaims := &validator.ValidatedClaims{
			RegisteredClaims: validator.RegisteredClaims{
				Subject: userID.String(),
			},
			CustomClaims: &middleware.CustomClaims{
				Email: "user@example.com",
			},
		}
		c.Set("validated_claims", mockClaims)

		c.Next()
	}
}

func seedService(t *testing.T, db *gorm.DB, name string, basePrice float64, lifetimePrice *float64) models.Service {
	t.Helper()

	service := models.Service{
		Name:          name,
		Description:   name + " description",
		Category:      "Development",
		Icon:          "Code",
		BasePrice:     basePrice,
		LifetimePrice: lifetimePrice,
	}
	if err := db.Create(&service).Error; err != nil {
		t.Fatalf("Failed to seed service: %v", err)
	}
	return service
}

func seedOrder(t *testing.T, db *gorm.DB, userID uuid.UUID, service models.Service, status string, createdAt time.Time) models.Order {
	t.Helper()

	order := models.Order{
		UserID:      userID,
		ServiceID:   service.ID,
		Status:      status,
		Details:     "seeded order",
		TotalAmount: service.BasePrice,
	}
	if err := db.Create(&order).Error; err != nil {
		t.Fatalf("Failed to seed order: %v", err)
	}

	// Pin created_at so ordering assertions are deterministic
	if err := db.Model(&models.Order{}).Where("id = ?", order.ID).
		Update("created_at", createdAt).Error; err != nil {
		t.Fatalf("Failed to set order timestamp: %v", err)
	}
	order.CreatedAt = createdAt

	return order
}

func floatPtr(v float64) *float64 {
	return &v
}

func strPtr(v string) *string {
	return &v
}
