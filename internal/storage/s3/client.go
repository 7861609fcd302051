package s3

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	awss3 "github.com/aws/aws-sdk-go-v2/service/s3"

	"studioportal/internal/config"
)

var ErrNotConfigured = errors.New("object storage not configured")

// Client wraps an S3-compatible bucket (AWS, MinIO, R2). Objects live under
// "<folder>/<name>" keys and are served from a public base URL.
type Client struct {
	bucket        string
	publicBaseURL string
	s3            *awss3.Client
}

func New(cfg *config.Config) (*Client, error) {
	endpoint := strings.TrimSpace(cfg.S3Endpoint)
	bucket := strings.TrimSpace(cfg.S3Bucket)
	accessKey := strings.TrimSpace(cfg.S3AccessKey)
	secret := strings.TrimSpace(cfg.S3SecretKey)

	if bucket == "" || accessKey == "" || secret == "" {
		return nil, ErrNotConfigured
	}

	if endpoint != "" {
		if _, err := url.Parse(endpoint); err != nil {
			return nil, fmt.Errorf("invalid s3 endpoint: %w", err)
		}
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(context.Background(),
		awsconfig.WithRegion(cfg.S3Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(accessKey, secret, "")),
	)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	s3Client := awss3.NewFromConfig(awsCfg, func(o *awss3.Options) {
		if endpoint != "" {
			o.BaseEndpoint = aws.String(endpoint)
		}
		o.UsePathStyle = true
	})

	publicBase := strings.TrimRight(cfg.S3PublicBaseURL, "/")
	if publicBase == "" && endpoint != "" {
		publicBase = strings.TrimRight(endpoint, "/") + "/" + bucket
	}

	return &Client{
		bucket:        bucket,
		publicBaseURL: publicBase,
		s3:            s3Client,
	}, nil
}

// Upload stores the object under "<folder>/<name>" and returns its public
// URL together with the storage key.
func (c *Client) Upload(ctx context.Context, body io.Reader, folder, name, contentType string) (string, string, error) {
	if c == nil {
		return "", "", ErrNotConfigured
	}

	key := folder + "/" + name
	_, err := c.s3.PutObject(ctx, &awss3.PutObjectInput{
		Bucket:      aws.String(c.bucket),
		Key:         aws.String(key),
		Body:        body,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", "", fmt.Errorf("put object %s: %w", key, err)
	}

	return c.publicBaseURL + "/" + key, key, nil
}

func (c *Client) Delete(ctx context.Context, key string) error {
	if c == nil {
		return ErrNotConfigured
	}

	_, err := c.s3.DeleteObject(ctx, &awss3.DeleteObjectInput{
		Bucket: aws.String(c.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("delete object %s: %w", key, err)
	}
	return nil
}

func (c *Client) Exists(ctx context.Context, key string) (bool, error) {
	if c == nil {
		return false, ErrNotConfigured
	}

	_, err := c.s3.HeadObject(ctx, &awss3.HeadObjectInput{
		Bucket: aws.String(c.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return false, nil
	}
	return true, nil
}

// Download returns a reader over the object body plus its content type.
// The caller owns closing the reader.
func (c *Client) Download(ctx context.Context, key string) (io.ReadCloser, string, error) {
	if c == nil {
		return nil, "", ErrNotConfigured
	}

	out, err := c.s3.GetObject(ctx, &awss3.GetObjectInput{
		Bucket: aws.String(c.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, "", fmt.Errorf("get object %s: %w", key, err)
	}

	contentType := ""
	if out.ContentType != nil {
		contentType = *out.ContentType
	}
	return out.Body, contentType, nil
}
