package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsCfg "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"dancerfit/admin-dashboard/internal/config"
	"dancerfit/admin-dashboard/internal/logger"
)

// s3Storage presigns GET URLs for private media.
type s3Storage struct {
	presignClient *s3.PresignClient
	bucketName    string
	bucketURL     string
	expires       time.Duration
	public        *PublicBucket
	log           *logger.Logger
}

// NewS3Storage creates a presigning resolver. Paths that aren't keys in the
// configured bucket fall through to the public URL form.
func NewS3Storage(cfg config.S3Config, log *logger.Logger) (MediaURLResolver, error) {
	if cfg.BucketName == "" {
		return nil, fmt.Errorf("s3: bucket name is required")
	}
	if log == nil {
		log = logger.Nop()
	}

	// Custom resolver for S3-compatible endpoints (MinIO, Spaces)
	customResolver := aws.EndpointResolverWithOptionsFunc(func(service, region string, options ...interface{}) (aws.Endpoint, error) {
		if cfg.Endpoint != "" {
			return aws.Endpoint{
				PartitionID:   "aws",
				URL:           cfg.Endpoint,
				SigningRegion: cfg.Region,
			}, nil
		}
		return aws.Endpoint{}, &aws.EndpointNotFoundError{}
	})

	awsSDKConfig, err := awsCfg.LoadDefaultConfig(context.TODO(),
		awsCfg.WithRegion(cfg.Region),
		awsCfg.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, "")),
		awsCfg.WithEndpointResolverWithOptions(customResolver),
	)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	s3Client := s3.NewFromConfig(awsSDKConfig, func(o *s3.Options) {
		o.UsePathStyle = cfg.Endpoint != ""
	})

	expires := cfg.PresignExpiry
	if expires <= 0 {
		expires = DefaultPresignedURLExpiry
	}
	log.Info("s3 media resolver initialized", "endpoint", cfg.Endpoint, "bucket", cfg.BucketName, "expiry", expires)

	return &s3Storage{
		presignClient: s3.NewPresignClient(s3Client),
		bucketName:    cfg.BucketName,
		bucketURL:     cfg.BucketURL,
		expires:       expires,
		public:        NewPublicBucket(cfg.BucketURL),
		log:           log,
	}, nil
}

func (s *s3Storage) VideoURL(ctx context.Context, path string) (string, error) {
	key, ok := objectKey(path, s.bucketURL)
	if !ok {
		return s.public.VideoURL(ctx, path)
	}
	req, err := s.presignClient.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucketName),
		Key:    aws.String(key),
	}, s3.WithPresignExpires(s.expires))
	if err != nil {
		s.log.Error("presign GET failed", "key", key, "error", err)
		return "", fmt.Errorf("presign %s: %w", key, err)
	}
	return req.URL, nil
}

func (s *s3Storage) ImageURL(ctx context.Context, path, fallback string) string {
	u, err := s.VideoURL(ctx, path)
	if err != nil {
		return fallback
	}
	return u
}

// New picks the presigning resolver when S3 credentials are configured and the
// public bucket otherwise.
func New(cfg config.S3Config, log *logger.Logger) (MediaURLResolver, error) {
	if cfg.AccessKeyID == "" || cfg.SecretAccessKey == "" {
		return NewPublicBucket(cfg.BucketURL), nil
	}
	return NewS3Storage(cfg, log)
}
