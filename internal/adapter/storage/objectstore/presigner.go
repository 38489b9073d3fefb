package objectstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"go.uber.org/zap"
)

// PresignExpiry is the lifetime of every signed URL.
const PresignExpiry = 60 * time.Second

var ErrBucketNotConfigured = errors.New("object storage bucket is not configured")

// Presigner signs GET URLs for objects in one bucket.
type Presigner struct {
	bucket string
	client *s3.PresignClient
	log    *zap.Logger
}

// NewPresigner loads AWS credentials from the default chain.
func NewPresigner(ctx context.Context, bucket, region string, log *zap.Logger) (*Presigner, error) {
	opts := []func(*awsconfig.LoadOptions) error{}
	if region != "" {
		opts = append(opts, awsconfig.WithRegion(region))
	}
	cfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load aws config: %w", err)
	}
	return NewPresignerFromConfig(cfg, bucket, log), nil
}

func NewPresignerFromConfig(cfg aws.Config, bucket string, log *zap.Logger) *Presigner {
	return &Presigner{
		bucket: bucket,
		client: s3.NewPresignClient(s3.NewFromConfig(cfg)),
		log:    log,
	}
}

// PresignedGetURL returns a signed GET URL for key, valid for PresignExpiry.
func (p *Presigner) PresignedGetURL(ctx context.Context, key string) (string, error) {
	if p.bucket == "" {
		return "", ErrBucketNotConfigured
	}

	req, err := p.client.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(p.bucket),
		Key:    aws.String(key),
	}, s3.WithPresignExpires(PresignExpiry))
	if err != nil {
		return "", fmt.Errorf("failed to presign %s: %w", key, err)
	}

	p.log.Debug("Presigned object URL", zap.String("key", key))
	return req.URL, nil
}
