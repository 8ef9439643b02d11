package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rudracore/portal-api/config"
)

// IdentityUser represents a user account held by the identity provider
type IdentityUser struct {
	ID           string            `json:"id"`
	Email        string            `json:"email"`
	UserMetadata map[string]string `json:"user_metadata"`
}

// Session represents an authenticated session issued by the identity provider
type Session struct {
	AccessToken  string       `json:"access_token"`
	TokenType    string       `json:"token_type"`
	ExpiresIn    int          `json:"expires_in"`
	RefreshToken string       `json:"refresh_token"`
	User         IdentityUser `json:"user"`
}

// IdentityError carries the provider's own error message so handlers can
// surface it verbatim to the client.
type IdentityError struct {
	StatusCode int
	Message    string
}

func (e *IdentityError) Error() string {
	return e.Message
}

// IdentityInterface defines the operations delegated to the external
// identity provider
type IdentityInterface interface {
	SignUp(email, password string, metadata map[string]string) (*Session, error)
	SignInWithPassword(email, password string) (*Session, error)
	SignOut(accessToken string) error
	GetUser(accessToken string) (*IdentityUser, error)
}

// IdentityService handles interactions with the identity provider's HTTP API
type IdentityService struct {
	baseURL    string
	httpClient *http.Client
}

var identityServiceInstance IdentityInterface

// InitIdentityService initializes the identity service from configuration
func InitIdentityService(cfg *config.Config) IdentityInterface {
	identityServiceInstance = NewIdentityService(cfg)
	return identityServiceInstance
}

// GetIdentityService returns the initialized identity service instance
func GetIdentityService() IdentityInterface {
	return identityServiceInstance
}

// SetIdentityService sets the identity service instance (primarily for testing)
func SetIdentityService(service IdentityInterface) {
	identityServiceInstance = service
}

// NewIdentityService creates a new identity service instance
func NewIdentityService(cfg *config.Config) *IdentityService {
	return &IdentityService{
		baseURL: cfg.AuthBaseURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// endpoint constructs a full URL for a provider endpoint
// If the base URL already includes a protocol (for testing), use it as-is
func (s *IdentityService) endpoint(path string) string {
	base := strings.TrimSuffix(s.baseURL, "/")
	if strings.HasPrefix(base, "http://") || strings.HasPrefix(base, "https://") {
		return base + path
	}
	return "https://" + base + path
}

// SignUp registers a new user with the identity provider. The metadata map
// is stored as the user's profile attributes.
func (s *IdentityService) SignUp(email, password string, metadata map[string]string) (*Session, error) {
	payload := map[string]interface{}{
		"email":    email,
		"password": password,
		"data":     metadata,
	}

	var session Session
	if err := s.post(s.endpoint("/signup"), "", payload, &session); err != nil {
		return nil, err
	}

	return &session, nil
}

// SignInWithPassword exchanges credentials for a session
func (s *IdentityService) SignInWithPassword(email, password string) (*Session, error) {
	payload := map[string]interface{}{
		"email":    email,
		"password": password,
	}

	var session Session
	if err := s.post(s.endpoint("/token?grant_type=password"), "", payload, &session); err != nil {
		return nil, err
	}

	return &session, nil
}

// SignOut revokes the session behind the given access token
func (s *IdentityService) SignOut(accessToken string) error {
	return s.post(s.endpoint("/logout"), accessToken, nil, nil)
}

// GetUser fetches the user behind the given access token
func (s *IdentityService) GetUser(accessToken string) (*IdentityUser, error) {
	req, err := http.NewRequest(http.MethodGet, s.endpoint("/user"), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Add("Authorization", "Bearer "+accessToken)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to call user endpoint: %w", err)
	}
	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil {
			_ = closeErr
		}
	}()

	if resp.StatusCode != http.StatusOK {
		return nil, providerError(resp)
	}

	var user IdentityUser
	if err := json.NewDecoder(resp.Body).Decode(&user); err != nil {
		return nil, fmt.Errorf("failed to decode user response: %w", err)
	}

	return &user, nil
}

// post sends a JSON POST to the provider and decodes the response into out
// (out may be nil for endpoints with empty responses)
func (s *IdentityService) post(url, accessToken string, payload, out interface{}) error {
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequest(http.MethodPost, url, body)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if accessToken != "" {
		req.Header.Add("Authorization", "Bearer "+accessToken)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to call identity provider: %w", err)
	}
	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil {
			_ = closeErr
		}
	}()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return providerError(resp)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("failed to decode provider response: %w", err)
		}
	}

	return nil
}

// providerError extracts the provider's error message from a failed response
func providerError(resp *http.Response) error {
	raw, _ := io.ReadAll(resp.Body)

	// The provider reports errors as {"msg": ...} or {"error_description": ...}
	var parsed struct {
		Msg              string `json:"msg"`
		Message          string `json:"message"`
		ErrorDescription string `json:"error_description"`
	}
	message := ""
	if err := json.Unmarshal(raw, &parsed); err == nil {
		switch {
		case parsed.Msg != "":
			message = parsed.Msg
		case parsed.Message != "":
			message = parsed.Message
		case parsed.ErrorDescription != "":
			message = parsed.ErrorDescription
		}
	}
	if message == "" {
		message = fmt.Sprintf("identity provider returned status %d", resp.StatusCode)
	}

	return &IdentityError{StatusCode: resp.StatusCode, Message: message}
}
