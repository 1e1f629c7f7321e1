package dataset

import (
	"context"
	"errors"
	"fmt"
	"path"
	"strings"
	"sync"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"

	"github.com/i474232898/air-quality-dashboard/internal/airquality"
)

// S3Config configures access to S3-compatible storage (AWS S3, MinIO, Garage, R2).
// Empty credentials fall back to the default AWS credential chain.
type S3Config struct {
	Endpoint        string
	AccessKeyID     string
	SecretAccessKey string
	Region          string
}

// S3Client is the subset of *s3.Client used by S3Source.
type S3Client interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// S3Source reads the dataset object s3://bucket/key.
type S3Source struct {
	bucket string
	key    string
	cfg    S3Config

	clientOnce sync.Once
	client     S3Client
	clientErr  error
}

// NewS3Source creates an S3Source. client may be nil; it is then built from
// cfg on first load.
func NewS3Source(bucket, key string, cfg S3Config, client S3Client) *S3Source {
	return &S3Source{
		bucket: bucket,
		key:    key,
		cfg:    cfg,
		client: client,
	}
}

// ParseS3Location splits "s3://bucket/path/to/key" into bucket and key.
func ParseS3Location(location string) (bucket, key string, err error) {
	rest, ok := strings.CutPrefix(location, "s3://")
	if !ok {
		return "", "", fmt.Errorf("not an s3 location: %q", location)
	}
	bucket, key, _ = strings.Cut(rest, "/")
	if bucket == "" || key == "" {
		return "", "", fmt.Errorf("s3 location must be s3://bucket/key, got %q", location)
	}
	return bucket, key, nil
}

func (s *S3Source) Name() string {
	return "s3://" + s.bucket + "/" + s.key
}

func (s *S3Source) Load(ctx context.Context) (airquality.Table, error) {
	client, err := s.getClient(ctx)
	if err != nil {
		return airquality.Table{}, err
	}

	out, err := client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.key),
	})
	if err != nil {
		var noSuchKey *types.NoSuchKey
		var notFound *types.NotFound
		var noSuchBucket *types.NoSuchBucket
		if errors.As(err, &noSuchKey) || errors.As(err, &notFound) || errors.As(err, &noSuchBucket) {
			return airquality.Table{}, fmt.Errorf("%w: %s", airquality.ErrDatasetNotFound, s.Name())
		}
		return airquality.Table{}, fmt.Errorf("get %s: %w", s.Name(), err)
	}
	defer out.Body.Close()

	return ReadTable(out.Body, path.Base(s.key))
}

func (s *S3Source) getClient(ctx context.Context) (S3Client, error) {
	s.clientOnce.Do(func() {
		if s.client != nil {
			return
		}
		client, err := NewS3Client(ctx, s.cfg)
		if err != nil {
			s.clientErr = err
			return
		}
		s.client = client
	})
	return s.client, s.clientErr
}

// NewS3Client builds an S3 client; a custom endpoint switches to path-style
// addressing.
func NewS3Client(ctx context.Context, cfg S3Config) (*s3.Client, error) {
	region := cfg.Region
	if region == "" {
		region = "us-east-1"
	}

	opts := []func(*awsconfig.LoadOptions) error{awsconfig.WithRegion(region)}
	if cfg.AccessKeyID != "" && cfg.SecretAccessKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	return s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	}), nil
}
