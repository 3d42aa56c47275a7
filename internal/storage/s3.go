package storage

import (
	"bytes"
	"campusconnect/placement-app/internal/config"
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsCfg "github.com/aws/aws-sdk-go-v2/config" // Alias config to avoid clash
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
)

// s3API is the slice of the S3 client used by the storage driver, split out
// so tests can substitute a fake.
type s3API interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
	HeadObject(ctx context.Context, params *s3.HeadObjectInput, optFns ...func(*s3.Options)) (*s3.HeadObjectOutput, error)
	DeleteObject(ctx context.Context, params *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
}

// s3Storage implements the FileStorage interface using an S3-compatible backend.
type s3Storage struct {
	client     s3API
	bucketName string
}

// NewS3Storage creates a new S3 storage service instance.
func NewS3Storage(cfg config.S3Config) (FileStorage, error) {
	// Custom resolver for S3-compatible endpoints (like MinIO, DigitalOcean Spaces)
	customResolver := aws.EndpointResolverWithOptionsFunc(func(service, region string, options ...interface{}) (aws.Endpoint, error) {
		if cfg.Endpoint != "" {
			return aws.Endpoint{
				PartitionID:   "aws",
				URL:           cfg.Endpoint,
				SigningRegion: cfg.Region,
			}, nil
		}
		// Fallback to default AWS endpoint resolution if no custom endpoint is set
		return aws.Endpoint{}, &aws.EndpointNotFoundError{}
	})

	awsSDKConfig, err := awsCfg.LoadDefaultConfig(context.TODO(),
		awsCfg.WithRegion(cfg.Region),
		awsCfg.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, "")),
		awsCfg.WithEndpointResolverWithOptions(customResolver),
	)
	if err != nil {
		log.Printf("ERROR: Failed to load AWS SDK config for S3: %v", err)
		return nil, err
	}

	// Force path-style addressing required by most S3-compatible services (like MinIO)
	s3Client := s3.NewFromConfig(awsSDKConfig, func(o *s3.Options) {
		o.UsePathStyle = true
	})

	log.Printf("S3 Storage Service initialized for endpoint: %s, bucket: %s", cfg.Endpoint, cfg.BucketName)

	return &s3Storage{
		client:     s3Client,
		bucketName: cfg.BucketName,
	}, nil
}

// Save uploads the PDF bytes under {ownerID}_{unixMillis}.pdf. If two saves
// for one owner land on the same millisecond the timestamp is bumped until
// the key is free, so a later upload never overwrites an earlier blob.
func (s *s3Storage) Save(ctx context.Context, ownerID string, data []byte) (string, error) {
	millis := time.Now().UnixMilli()
	locator := fmt.Sprintf("%s_%d.pdf", ownerID, millis)
	for {
		taken, err := s.Exists(ctx, locator)
		if err != nil {
			return "", fmt.Errorf("check key '%s': %w", locator, err)
		}
		if !taken {
			break
		}
		millis++
		locator = fmt.Sprintf("%s_%d.pdf", ownerID, millis)
	}

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.bucketName),
		Key:           aws.String(locator),
		Body:          bytes.NewReader(data),
		ContentType:   aws.String("application/pdf"),
		ContentLength: aws.Int64(int64(len(data))),
	})
	if err != nil {
		log.Printf("ERROR: Failed to upload object '%s' to bucket '%s': %v", locator, s.bucketName, err)
		return "", err
	}
	return locator, nil
}

// Get downloads the stored bytes for a locator.
func (s *s3Storage) Get(ctx context.Context, locator string) ([]byte, error) {
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucketName),
		Key:    aws.String(locator),
	})
	if err != nil {
		return nil, fmt.Errorf("get object '%s': %w", locator, err)
	}
	defer out.Body.Close()

	data, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, fmt.Errorf("read object body '%s': %w", locator, err)
	}
	return data, nil
}

// Exists checks object presence with a HEAD request.
func (s *s3Storage) Exists(ctx context.Context, locator string) (bool, error) {
	_, err := s.client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(s.bucketName),
		Key:    aws.String(locator),
	})
	if err != nil {
		var notFound *types.NotFound
		if errors.As(err, &notFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// Delete removes an object from the S3 bucket. S3 DeleteObject succeeds on
// a missing key, which matches the idempotent contract.
func (s *s3Storage) Delete(ctx context.Context, locator string) error {
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucketName),
		Key:    aws.String(locator),
	})
	if err != nil {
		log.Printf("ERROR: Failed to delete object '%s' from bucket '%s': %v", locator, s.bucketName, err)
		return err
	}
	return nil
}
