package services

import (
	"fmt"
	"strings"
	"sync"
)

// MockDeliveryService is a mock implementation of DeliveryInterface for testing
type MockDeliveryService struct {
	resolved map[string]string // keys resolved so far, for assertions
	mu       sync.RWMutex
}

// NewMockDeliveryService creates a new mock delivery service
func NewMockDeliveryService() *MockDeliveryService {
	return &MockDeliveryService{
		resolved: make(map[string]string),
	}
}

// SetAsMockForTesting sets this mock as the global delivery service instance
func (m *MockDeliveryService) SetAsMockForTesting() {
	SetDeliveryService(m)
}

// ResolveLink mimics the real resolver: absolute URLs pass through, bucket
// keys come back as mock presigned URLs
func (m *MockDeliveryService) ResolveLink(link string) (string, error) {
	if link == "" {
		return "", nil
	}

	if strings.HasPrefix(link, "http://") || strings.HasPrefix(link, "https://") {
		return link, nil
	}

	url := fmt.Sprintf("https://test-bucket.s3.us-east-1.amazonaws.com/%s?mock=true", link)

	m.mu.Lock()
	m.resolved[link] = url
	m.mu.Unlock()

	return url, nil
}

// ResolvedKeys returns the bucket keys resolved so far (for testing assertions)
func (m *MockDeliveryService) ResolvedKeys() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	keys := make([]string, 0, len(m.resolved))
	for k := range m.resolved {
		keys = append(keys, k)
	}
	return keys
}
