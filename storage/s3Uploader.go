package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/lucsky/cuid"
)

const DefaultMaxBytes = 5 << 20

var (
	ErrUnsupportedType = errors.New("only image uploads are accepted")
	ErrTooLarge        = errors.New("upload exceeds the size limit")
	ErrDisabled        = errors.New("image uploads are not configured")
)

// PutObjectAPI is the slice of the S3 client the uploader needs.
type PutObjectAPI interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

type Options struct {
	Region        string
	Bucket        string
	PublicBaseURL string
	// Endpoint points the client at an S3 compatible host (MinIO, R2).
	// Path-style addressing is used when it is set.
	Endpoint string
	MaxBytes int64
}

// S3Uploader stores payment screenshots under payments/ in one bucket and
// hands back their public URL.
type S3Uploader struct {
	client   PutObjectAPI
	bucket   string
	baseURL  string
	maxBytes int64
	newKey   func() string
}

func NewS3Uploader(ctx context.Context, opts Options) (*S3Uploader, error) {
	cfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(opts.Region))
	if err != nil {
		return nil, fmt.Errorf("unable to load SDK config: %w", err)
	}

	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		if opts.Endpoint != "" {
			o.BaseEndpoint = aws.String(opts.Endpoint)
			o.UsePathStyle = true
		}
	})
	return NewS3UploaderWithClient(client, opts), nil
}

func NewS3UploaderWithClient(client PutObjectAPI, opts Options) *S3Uploader {
	limit := opts.MaxBytes
	if limit <= 0 {
		limit = DefaultMaxBytes
	}
	return &S3Uploader{
		client:   client,
		bucket:   opts.Bucket,
		baseURL:  strings.TrimRight(opts.PublicBaseURL, "/"),
		maxBytes: limit,
		newKey:   cuid.New,
	}
}

// Upload reads the whole body, checks it really is an image and puts it in
// the bucket. The declared content type is only used for the extension.
func (u *S3Uploader) Upload(ctx context.Context, filename, contentType string, body io.Reader) (string, error) {
	data, err := io.ReadAll(io.LimitReader(body, u.maxBytes+1))
	if err != nil {
		return "", fmt.Errorf("read upload: %w", err)
	}
	if int64(len(data)) > u.maxBytes {
		return "", ErrTooLarge
	}

	sniffed := http.DetectContentType(data)
	if !strings.HasPrefix(sniffed, "image/") {
		return "", fmt.Errorf("%w: got %s", ErrUnsupportedType, sniffed)
	}

	key := "payments/" + u.newKey() + extension(filename, sniffed)
	_, err = u.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(u.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(sniffed),
	})
	if err != nil {
		return "", fmt.Errorf("unable to upload file to S3: %w", err)
	}
	return u.baseURL + "/" + key, nil
}

var imageExtensions = map[string]string{
	"image/png":  ".png",
	"image/jpeg": ".jpg",
	"image/gif":  ".gif",
	"image/webp": ".webp",
	"image/bmp":  ".bmp",
}

func extension(filename, sniffed string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".png", ".jpg", ".jpeg", ".gif", ".webp", ".bmp", ".heic":
		return ext
	}
	return imageExtensions[sniffed]
}

// Disabled is used when no bucket is configured. Every upload fails, which
// checkout records as a failed upload without blocking the order.
type Disabled struct{}

func (Disabled) Upload(context.Context, string, string, io.Reader) (string, error) {
	return "", ErrDisabled
}
