package storage

import (
	"context"
	"fmt"
	"io"

	"g2p-portal-backend/internal/domain"

	aws "github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// S3Storage stores documents in an S3-compatible bucket (AWS S3 or MinIO).
// Single bucket per backend row; keys map to object keys directly.
type S3Storage struct {
	client *s3.Client
	bucket string
}

// NewS3FromBackend builds a client from the ERP's storage_backend
// server_env_defaults keys.
func NewS3FromBackend(ctx context.Context, backend *domain.DocumentStore) (*S3Storage, error) {
	env := backend.ServerEnvDefaults
	bucket := env["x_aws_bucket_env_default"]
	if bucket == "" {
		return nil, fmt.Errorf("s3 bucket required on backend %d", backend.ID)
	}
	region := env["x_aws_region_env_default"]
	if region == "" {
		region = "us-east-1"
	}

	loadOpts := []func(*awsconfig.LoadOptions) error{awsconfig.WithRegion(region)}
	accessKey := env["x_aws_access_key_id_env_default"]
	secretKey := env["x_aws_secret_access_key_env_default"]
	if accessKey != "" && secretKey != "" {
		loadOpts = append(loadOpts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(accessKey, secretKey, "")))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, err
	}

	endpoint := env["x_aws_host_env_default"]
	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if endpoint != "" {
			o.BaseEndpoint = aws.String(endpoint)
			// MinIO serves buckets path style.
			o.UsePathStyle = true
		}
	})
	return &S3Storage{client: client, bucket: bucket}, nil
}

func (s *S3Storage) Put(ctx context.Context, key string, r io.Reader, contentType string) error {
	input := &s3.PutObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
		Body:   r,
	}
	if contentType != "" {
		input.ContentType = aws.String(contentType)
	}
	if _, err := s.client.PutObject(ctx, input); err != nil {
		return fmt.Errorf("put object %s: %w", key, err)
	}
	return nil
}

func (s *S3Storage) Get(ctx context.Context, key string) (io.ReadCloser, error) {
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, fmt.Errorf("get object %s: %w", key, err)
	}
	return out.Body, nil
}
