package controllers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/rudracore/portal-api/models"
	"github.com/rudracore/portal-api/services"
	"github.com/stretchr/testify/assert"
)

func postJSON(router http.Handler, path string, body map[string]interface{}) *httptest.ResponseRecorder {
	data, _ := json.Marshal(body)
	req, _ := http.NewRequest(http.MethodPost, path, bytes.NewBuffer(data))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestSignup(t *testing.T) {
	db := setupTestDB(t)
	setupTestConfig()
	services.NewMockIdentityService().SetAsMockForTesting()

	router := setupTestRouter()
	router.POST("/auth/signup", Signup)

	t.Run("creates account and profile with defaulted socials", func(t *testing.T) {
		w := postJSON(router, "/auth/signup", map[string]interface{}{
			"email":     "a@b.com",
			"password":  "hunter22",
			"full_name": "Ada Lovelace",
			"phone":     "+1555",
		})

		assert.Equal(t, http.StatusCreated, w.Code)

		var response map[string]interface{}
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.True(t, response["success"].(bool))
		assert.Equal(t, "/dashboard", response["redirect"])

		data := response["data"].(map[string]interface{})
		session := data["session"].(map[string]interface{})
		assert.NotEmpty(t, session["access_token"])

		user := session["user"].(map[string]interface{})
		userID, err := uuid.Parse(user["id"].(string))
		assert.NoError(t, err)

		// Profile row mirrors the signup metadata, socials default to ""
		var profile models.Profile
		assert.NoError(t, db.First(&profile, "id = ?", userID).Error)
		assert.Equal(t, "a@b.com", profile.Email)
		assert.Equal(t, "Ada Lovelace", profile.FullName)
		assert.Equal(t, "+1555", profile.Phone)
		assert.Equal(t, "", profile.DiscordID)
		assert.Equal(t, "", profile.InstagramID)
		assert.Equal(t, "", profile.LinkedinID)
	})

	t.Run("duplicate email surfaces the provider message verbatim", func(t *testing.T) {
		w := postJSON(router, "/auth/signup", map[string]interface{}{
			"email":     "a@b.com",
			"password":  "hunter22",
			"full_name": "Ada Again",
			"phone":     "+1555",
		})

		assert.Equal(t, http.StatusConflict, w.Code)

		var response map[string]interface{}
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		errorData := response["error"].(map[string]interface{})
		assert.Equal(t, "SIGNUP_FAILED", errorData["code"])
		assert.Equal(t, "User already registered", errorData["message"])
	})

	t.Run("blank phone rejected", func(t *testing.T) {
		w := postJSON(router, "/auth/signup", map[string]interface{}{
			"email":     "c@d.com",
			"password":  "hunter22",
			"full_name": "Blank Phone",
			"phone":     "   ",
		})

		assert.Equal(t, http.StatusBadRequest, w.Code)

		var response map[string]interface{}
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		errorData := response["error"].(map[string]interface{})
		assert.Equal(t, "VALIDATION_ERROR", errorData["code"])
		assert.Equal(t, "Phone number is required", errorData["message"])
	})

	t.Run("missing phone rejected by binding", func(t *testing.T) {
		w := postJSON(router, "/auth/signup", map[string]interface{}{
			"email":     "e@f.com",
			"password":  "hunter22",
			"full_name": "No Phone",
		})

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("invalid email rejected by binding", func(t *testing.T) {
		w := postJSON(router, "/auth/signup", map[string]interface{}{
			"email":     "not-an-email",
			"password":  "hunter22",
			"full_name": "Bad Email",
			"phone":     "+1555",
		})

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("socials are stored when provided", func(t *testing.T) {
		w := postJSON(router, "/auth/signup", map[string]interface{}{
			"email":        "social@b.com",
			"password":     "hunter22",
			"full_name":    "Social User",
			"phone":        "+1666",
			"discord_id":   "user#1234",
			"instagram_id": "@user",
			"linkedin_id":  "linkedin.com/in/user",
		})

		assert.Equal(t, http.StatusCreated, w.Code)

		var profile models.Profile
		assert.NoError(t, db.First(&profile, "email = ?", "social@b.com").Error)
		assert.Equal(t, "user#1234", profile.DiscordID)
		assert.Equal(t, "@user", profile.InstagramID)
		assert.Equal(t, "linkedin.com/in/user", profile.LinkedinID)
	})
}

func TestLogin(t *testing.T) {
	setupTestDB(t)
	setupTestConfig()
	identity := services.NewMockIdentityService()
	identity.SetAsMockForTesting()

	identity.RegisterUser("ada@example.com", "hunter22", &services.IdentityUser{
		ID:    uuid.New().String(),
		Email: "ada@example.com",
	})

	router := setupTestRouter()
	router.POST("/auth/login", Login)

	t.Run("valid credentials return a session", func(t *testing.T) {
		w := postJSON(router, "/auth/login", map[string]interface{}{
			"email":    "ada@example.com",
			"password": "hunter22",
		})

		assert.Equal(t, http.StatusOK, w.Code)

		var response map[string]interface{}
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.True(t, response["success"].(bool))
		assert.Equal(t, "/dashboard", response["redirect"])

		data := response["data"].(map[string]interface{})
		session := data["session"].(map[string]interface{})
		assert.NotEmpty(t, session["access_token"])
	})

	t.Run("wrong password surfaces the provider message verbatim", func(t *testing.T) {
		w := postJSON(router, "/auth/login", map[string]interface{}{
			"email":    "ada@example.com",
			"password": "wrong",
		})

		assert.Equal(t, http.StatusUnauthorized, w.Code)

		var response map[string]interface{}
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		errorData := response["error"].(map[string]interface{})
		assert.Equal(t, "INVALID_CREDENTIALS", errorData["code"])
		assert.Equal(t, "Invalid login credentials", errorData["message"])
	})

	t.Run("unknown email surfaces the same message", func(t *testing.T) {
		w := postJSON(router, "/auth/login", map[string]interface{}{
			"email":    "ghost@example.com",
			"password": "hunter22",
		})

		assert.Equal(t, http.StatusUnauthorized, w.Code)

		var response map[string]interface{}
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		errorData := response["error"].(map[string]interface{})
		assert.Equal(t, "Invalid login credentials", errorData["message"])
	})
}

func TestGetSession(t *testing.T) {
	setupTestDB(t)
	setupTestConfig()
	identity := services.NewMockIdentityService()
	identity.SetAsMockForTesting()

	session, err := identity.SignUp("ada@example.com", "hunter22", map[string]string{"full_name": "Ada"})
	assert.NoError(t, err)

	router := setupTestRouter()
	router.GET("/auth/session", GetSession)

	t.Run("anonymous caller gets a null user", func(t *testing.T) {
		req, _ := http.NewRequest(http.MethodGet, "/auth/session", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var response map[string]interface{}
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.True(t, response["success"].(bool))
		data := response["data"].(map[string]interface{})
		assert.Nil(t, data["user"])
	})

	t.Run("valid token resolves to its user", func(t *testing.T) {
		req, _ := http.NewRequest(http.MethodGet, "/auth/session", nil)
		req.Header.Set("Authorization", "Bearer "+session.AccessToken)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var response map[string]interface{}
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		data := response["data"].(map[string]interface{})
		user := data["user"].(map[string]interface{})
		assert.Equal(t, "ada@example.com", user["email"])
	})

	t.Run("revoked token is the same as no session", func(t *testing.T) {
		assert.NoError(t, identity.SignOut(session.AccessToken))

		req, _ := http.NewRequest(http.MethodGet, "/auth/session", nil)
		req.Header.Set("Authorization", "Bearer "+session.AccessToken)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var response map[string]interface{}
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		data := response["data"].(map[string]interface{})
		assert.Nil(t, data["user"])
	})
}

func TestLogout(t *testing.T) {
	setupTestDB(t)
	setupTestConfig()
	identity := services.NewMockIdentityService()
	identity.SetAsMockForTesting()

	session, err := identity.SignUp("ada@example.com", "hunter22", nil)
	assert.NoError(t, err)
	userID, err := uuid.Parse(session.User.ID)
	assert.NoError(t, err)

	router := setupTestRouter()
	router.POST("/auth/logout", mockAuthMiddleware(userID, session.AccessToken), Logout)

	t.Run("revokes the session", func(t *testing.T) {
		w := postJSON(router, "/auth/logout", nil)

		assert.Equal(t, http.StatusOK, w.Code)

		var response map[string]interface{}
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.True(t, response["success"].(bool))
		assert.Equal(t, "/auth", response["redirect"])

		// The token no longer resolves to a user
		_, err := identity.GetUser(session.AccessToken)
		assert.Error(t, err)
	})

	t.Run("second logout fails", func(t *testing.T) {
		w := postJSON(router, "/auth/logout", nil)

		assert.Equal(t, http.StatusInternalServerError, w.Code)

		var response map[string]interface{}
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		errorData := response["error"].(map[string]interface{})
		assert.Equal(t, "SIGNOUT_FAILED", errorData["code"])
	})
}
