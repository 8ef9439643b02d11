package services

import (
	"fmt"
	"net/http"
	"sync"

	"github.com/google/uuid"
)

// MockIdentityService is an in-memory implementation of IdentityInterface
// for testing
type MockIdentityService struct {
	accounts map[string]*mockAccount // keyed by email
	sessions map[string]*IdentityUser // keyed by access token
	mu       sync.RWMutex

	// SignToken mints the access token for a user. When nil, an opaque
	// mock token is used; tests exercising the real JWT middleware can
	// install a signer that produces valid tokens.
	SignToken func(user *IdentityUser) string
}

type mockAccount struct {
	password string
	user     *IdentityUser
}

// NewMockIdentityService creates a new mock identity service
func NewMockIdentityService() *MockIdentityService {
	return &MockIdentityService{
		accounts: make(map[string]*mockAccount),
		sessions: make(map[string]*IdentityUser),
	}
}

// SetAsMockForTesting sets this mock as the global identity service instance
func (m *MockIdentityService) SetAsMockForTesting() {
	SetIdentityService(m)
}

// SignUp registers a new account, rejecting duplicate emails the way the
// real provider does
func (m *MockIdentityService) SignUp(email, password string, metadata map[string]string) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.accounts[email]; exists {
		return nil, &IdentityError{StatusCode: http.StatusUnprocessableEntity, Message: "User already registered"}
	}

	user := &IdentityUser{
		ID:           uuid.New().String(),
		Email:        email,
		UserMetadata: metadata,
	}
	m.accounts[email] = &mockAccount{password: password, user: user}

	return m.issueSession(user), nil
}

// SignInWithPassword validates credentials against registered accounts
func (m *MockIdentityService) SignInWithPassword(email, password string) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	account, exists := m.accounts[email]
	if !exists || account.password != password {
		return nil, &IdentityError{StatusCode: http.StatusBadRequest, Message: "Invalid login credentials"}
	}

	return m.issueSession(account.user), nil
}

// SignOut revokes the session behind the given token
func (m *MockIdentityService) SignOut(accessToken string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.sessions[accessToken]; !exists {
		return &IdentityError{StatusCode: http.StatusUnauthorized, Message: "Invalid token"}
	}

	delete(m.sessions, accessToken)
	return nil
}

// GetUser resolves a token to its user
func (m *MockIdentityService) GetUser(accessToken string) (*IdentityUser, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	user, exists := m.sessions[accessToken]
	if !exists {
		return nil, &IdentityError{StatusCode: http.StatusUnauthorized, Message: "Invalid token"}
	}

	return user, nil
}

// RegisterUser seeds an account directly (for testing setup)
func (m *MockIdentityService) RegisterUser(email, password string, user *IdentityUser) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.accounts[email] = &mockAccount{password: password, user: user}
}

// issueSession creates a session for a user; callers must hold the lock
func (m *MockIdentityService) issueSession(user *IdentityUser) *Session {
	token := fmt.Sprintf("mock-token-%s", uuid.New().String())
	if m.SignToken != nil {
		token = m.SignToken(user)
	}
	m.sessions[token] = user

	return &Session{
		AccessToken: token,
		TokenType:   "bearer",
		ExpiresIn:   3600,
		User:        *user,
	}
}
