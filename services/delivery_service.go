package services

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	appConfig "github.com/rudracore/portal-api/config"
)

// DeliveryInterface resolves a stored delivery link to a URL the client can
// open. Links are either absolute URLs (passed through) or keys into the
// private deliverables bucket (presigned).
type DeliveryInterface interface {
	ResolveLink(link string) (string, error)
}

// S3DeliveryService resolves bucket-key delivery links via presigned URLs
type S3DeliveryService struct {
	client *s3.Client
	bucket string
}

var deliveryServiceInstance DeliveryInterface

// InitDeliveryService initializes the delivery service with AWS credentials
func InitDeliveryService() (DeliveryInterface, error) {
	cfg := appConfig.GetConfig()

	// Load AWS configuration with explicit options
	awsConfig, err := config.LoadDefaultConfig(context.TODO(),
		config.WithRegion(cfg.AWSRegion),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.AWSAccessKeyID,
			cfg.AWSSecretAccessKey,
			"",
		)),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	client := s3.NewFromConfig(awsConfig)

	deliveryServiceInstance = &S3DeliveryService{
		client: client,
		bucket: cfg.AWSS3Bucket,
	}

	return deliveryServiceInstance, nil
}

// GetDeliveryService returns the initialized delivery service instance
func GetDeliveryService() DeliveryInterface {
	return deliveryServiceInstance
}

// SetDeliveryService sets the delivery service instance (primarily for testing)
func SetDeliveryService(service DeliveryInterface) {
	deliveryServiceInstance = service
}

// ResolveLink resolves a delivery link. Absolute URLs pass through unchanged;
// anything else is treated as a key in the deliverables bucket and presigned.
// The presigned URL expires after 1 hour.
func (s *S3DeliveryService) ResolveLink(link string) (string, error) {
	if link == "" {
		return "", nil
	}

	if strings.HasPrefix(link, "http://") || strings.HasPrefix(link, "https://") {
		return link, nil
	}

	presignClient := s3.NewPresignClient(s.client)

	ctx := context.TODO()
	request, err := presignClient.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(link),
	}, func(opts *s3.PresignOptions) {
		opts.Expires = time.Hour
	})
	if err != nil {
		return "", fmt.Errorf("failed to generate presigned URL: %w", err)
	}

	log.Printf("Generated presigned URL for key %s", link)
	return request.URL, nil
}
