// Package blob stores binary objects, avatars today, in an S3-compatible
// bucket and hands back the public URL for each stored object.
package blob

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/prohunt/prohunt/pkg/logger"
)

// Store writes objects and reports the URL they are reachable at.
type Store interface {
	Put(ctx context.Context, key string, data []byte, contentType string) (string, error)
}

// S3Store implements Store on an S3-compatible bucket.
type S3Store struct {
	client        *s3.Client
	bucket        string
	region        string
	publicBaseURL string
	logger        logger.Logger
}

type settings struct {
	endpoint      string
	publicBaseURL string
	accessKey     string
	secretKey     string
	logger        logger.Logger
}

// Option applies a configuration option to the S3Store.
type Option func(*settings)

// WithEndpoint points the client at a custom S3-compatible endpoint, for
// example a Cloudflare R2 or MinIO deployment.
func WithEndpoint(endpoint string) Option {
	return func(s *settings) { s.endpoint = endpoint }
}

// WithPublicBaseURL overrides the base URL used to compose object URLs.
func WithPublicBaseURL(base string) Option {
	return func(s *settings) { s.publicBaseURL = strings.TrimRight(base, "/") }
}

// WithStaticCredentials uses fixed credentials instead of the default
// provider chain.
func WithStaticCredentials(accessKey, secretKey string) Option {
	return func(s *settings) {
		s.accessKey = accessKey
		s.secretKey = secretKey
	}
}

// WithLogger sets a custom logger for the store.
func WithLogger(l logger.Logger) Option {
	return func(s *settings) {
		if l != nil {
			s.logger = l
		}
	}
}

// NewS3Store creates a Store backed by the named bucket.
func NewS3Store(ctx context.Context, bucket, region string, opts ...Option) (*S3Store, error) {
	var st settings
	for _, opt := range opts {
		opt(&st)
	}

	loadOpts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(region),
	}
	if st.accessKey != "" {
		loadOpts = append(loadOpts,
			awsconfig.WithCredentialsProvider(
				credentials.NewStaticCredentialsProvider(st.accessKey, st.secretKey, ""),
			),
		)
	}

	cfg, err := awsconfig.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load aws config: %w", err)
	}

	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		if st.endpoint != "" {
			o.BaseEndpoint = aws.String(st.endpoint)
			o.UsePathStyle = true
		}
	})

	l := st.logger
	if l == nil {
		l = logger.Named("blob")
	}

	return &S3Store{
		client:        client,
		bucket:        bucket,
		region:        region,
		publicBaseURL: st.publicBaseURL,
		logger:        l,
	}, nil
}

// Put writes the object under key and returns its public URL.
func (s *S3Store) Put(ctx context.Context, key string, data []byte, contentType string) (string, error) {
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrPutFailed, err)
	}

	url := s.objectURL(key)
	s.logger.Debug(ctx, "object stored",
		logger.String("key", key),
		logger.Int("bytes", len(data)),
		logger.String("url", url),
	)
	return url, nil
}

func (s *S3Store) objectURL(key string) string {
	if s.publicBaseURL != "" {
		return s.publicBaseURL + "/" + key
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.bucket, s.region, key)
}
