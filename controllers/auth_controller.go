package controllers

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rudracore/portal-api/config"
	"github.com/rudracore/portal-api/middleware"
	"github.com/rudracore/portal-api/models"
	"github.com/rudracore/portal-api/services"
)

// SignupRequest represents the request body for creating an account
type SignupRequest struct {
	Email       string `json:"email" binding:"required,email"`
	Password    string `json:"password" binding:"required"`
	FullName    string `json:"full_name" binding:"required"`
	Phone       string `json:"phone" binding:"required"`
	DiscordID   string `json:"discord_id"`
	InstagramID string `json:"instagram_id"`
	LinkedinID  string `json:"linkedin_id"`
}

// LoginRequest represents the request body for signing in
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Signup handles POST /api/v1/auth/signup - registers a new account with the
// identity provider and creates the matching profile row
func Signup(c *gin.Context) {
	var req SignupRequest
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

	// Phone must be non-empty, not just present
	if strings.TrimSpace(req.Phone) == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Phone number is required",
			},
		})
		return
	}

	// Optional socials default to empty string
	metadata := map[string]string{
		"full_name":    req.FullName,
		"phone":        req.Phone,
		"discord_id":   req.DiscordID,
		"instagram_id": req.InstagramID,
		"linkedin_id":  req.LinkedinID,
	}

	identity := services.GetIdentityService()
	session, err := identity.SignUp(req.Email, req.Password, metadata)
	if err != nil {
		var identityErr *services.IdentityError
		if errors.As(err, &identityErr) {
			// Surface the provider's message verbatim
			status := http.StatusBadRequest
			if identityErr.StatusCode == http.StatusUnprocessableEntity || identityErr.StatusCode == http.StatusConflict {
				status = http.StatusConflict
			}
			c.JSON(status, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "SIGNUP_FAILED",
					"message": identityErr.Message,
				},
			})
			return
		}

		log.Printf("Identity provider signup error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "IDENTITY_ERROR",
				"message": "Failed to reach the identity provider",
			},
		})
		return
	}

	// Mirror the new user into the profiles table
	userID, err := uuid.Parse(session.User.ID)
	if err != nil {
		log.Printf("Identity provider returned a non-UUID user id: %q", session.User.ID)
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "IDENTITY_ERROR",
				"message": "Identity provider returned an invalid user id",
			},
		})
		return
	}

	profile := models.Profile{
		ID:          userID,
		Email:       req.Email,
		FullName:    req.FullName,
		Phone:       req.Phone,
		DiscordID:   req.DiscordID,
		InstagramID: req.InstagramID,
		LinkedinID:  req.LinkedinID,
	}

	db := config.GetDB()
	if err := db.Create(&profile).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to create profile",
			},
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success":  true,
		"data":     gin.H{"session": session, "profile": profile},
		"redirect": middleware.PathDashboard,
	})
}

// Login handles POST /api/v1/auth/login - exchanges credentials for a session
func Login(c *gin.Context) {
	var req LoginRequest
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

	identity := services.GetIdentityService()
	session, err := identity.SignInWithPassword(req.Email, req.Password)
	if err != nil {
		var identityErr *services.IdentityError
		if errors.As(err, &identityErr) {
			c.JSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "INVALID_CREDENTIALS",
					"message": identityErr.Message,
				},
			})
			return
		}

		log.Printf("Identity provider login error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "IDENTITY_ERROR",
				"message": "Failed to reach the identity provider",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"data":     gin.H{"session": session},
		"redirect": middleware.DecideRedirect(true, middleware.PathAuth),
	})
}

// Logout handles POST /api/v1/auth/logout - revokes the current session
func Logout(c *gin.Context) {
	accessToken, err := middleware.GetAccessToken(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "MISSING_TOKEN",
				"message": "Access token not found",
			},
		})
		return
	}

	identity := services.GetIdentityService()
	if err := identity.SignOut(accessToken); err != nil {
		var identityErr *services.IdentityError
		if errors.As(err, &identityErr) {
			c.JSON(http.StatusInternalServerError, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "SIGNOUT_FAILED",
					"message": identityErr.Message,
				},
			})
			return
		}

		log.Printf("Identity provider logout error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "IDENTITY_ERROR",
				"message": "Failed to reach the identity provider",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"redirect": middleware.PathAuth,
	})
}

// GetSession handles GET /api/v1/auth/session - resolves the caller's
// session, returning a null user for anonymous callers rather than a 401
func GetSession(c *gin.Context) {
	auth := c.GetHeader("Authorization")
	if !strings.HasPrefix(auth, "Bearer ") {
		c.JSON(http.StatusOK, gin.H{
			"success":  true,
			"data":     gin.H{"user": nil},
			"redirect": middleware.DecideRedirect(false, c.Request.URL.Path),
		})
		return
	}

	identity := services.GetIdentityService()
	user, err := identity.GetUser(strings.TrimPrefix(auth, "Bearer "))
	if err != nil {
		// An expired or revoked token is the same as no session
		c.JSON(http.StatusOK, gin.H{
			"success":  true,
			"data":     gin.H{"user": nil},
			"redirect": middleware.DecideRedirect(false, c.Request.URL.Path),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    gin.H{"user": user},
	})
}
