package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestS3DeliveryServiceResolveLinkPassthrough(t *testing.T) {
	// Absolute URLs and empty links never touch the bucket
	service := &S3DeliveryService{bucket: "deliverables"}

	url, err := service.ResolveLink("https://downloads.example.com/build.apk")
	assert.NoError(t, err)
	assert.Equal(t, "https://downloads.example.com/build.apk", url)

	url, err = service.ResolveLink("http://downloads.example.com/build.apk")
	assert.NoError(t, err)
	assert.Equal(t, "http://downloads.example.com/build.apk", url)

	url, err = service.ResolveLink("")
	assert.NoError(t, err)
	assert.Equal(t, "", url)
}

func TestMockDeliveryServiceResolveLink(t *testing.T) {
	mock := NewMockDeliveryService()

	url, err := mock.ResolveLink("deliveries/build.zip")
	assert.NoError(t, err)
	assert.Contains(t, url, "deliveries/build.zip")
	assert.Contains(t, url, "mock=true")

	// Absolute URLs pass through like the real resolver
	url, err = mock.ResolveLink("https://example.com/file")
	assert.NoError(t, err)
	assert.Equal(t, "https://example.com/file", url)

	assert.Equal(t, []string{"deliveries/build.zip"}, mock.ResolvedKeys())
}

func TestSetDeliveryService(t *testing.T) {
	original := GetDeliveryService()
	defer SetDeliveryService(original)

	mock := NewMockDeliveryService()
	mock.SetAsMockForTesting()
	assert.Equal(t, DeliveryInterface(mock), GetDeliveryService())
}
