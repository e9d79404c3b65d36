package storage

import (
	"bytes"
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"bak-counter/apperrors"
	appconfig "bak-counter/config"
)

// EvidenceStore is the key-addressable blob store consumed by the workflows.
// Put failures surface as StorageError; Delete failures are for the caller
// to log and swallow.
type EvidenceStore interface {
	Put(ctx context.Context, key string, data []byte, contentType string) error
	Delete(ctx context.Context, key string) error
}

// SpacesClient is the DigitalOcean Spaces implementation of EvidenceStore.
type SpacesClient struct {
	client *s3.Client
	bucket string
}

// NewSpacesClient builds an S3 client pointed at the configured Spaces
// endpoint.
func NewSpacesClient(ctx context.Context, cfg *appconfig.Config) (*SpacesClient, error) {
	endpoint := fmt.Sprintf("https://%s", cfg.SpacesEndpoint)

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.SpacesRegion),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.SpacesKey, cfg.SpacesSecret, "",
		)),
		awsconfig.WithEndpointResolver(aws.EndpointResolverFunc(
			func(service, region string) (aws.Endpoint, error) {
				return aws.Endpoint{URL: endpoint}, nil
			}),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load Spaces config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.UsePathStyle = true // required for Spaces
	})
	return &SpacesClient{client: client, bucket: cfg.SpacesBucket}, nil
}

func (s *SpacesClient) Put(ctx context.Context, key string, data []byte, contentType string) error {
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
		ACL:         "public-read",
	})
	if err != nil {
		return apperrors.Storage(fmt.Sprintf("failed to upload %s: %v", key, err))
	}
	return nil
}

func (s *SpacesClient) Delete(ctx context.Context, key string) error {
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("failed to delete %s: %w", key, err)
	}
	return nil
}
