package utils

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

var ErrExporterDisabled = errors.New("s3 exporter not configured")

// S3API is the subset of the S3 client used for exports.
type S3API interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

type Exporter struct {
	client    S3API
	bucket    string
	publicURL string
}

func NewExporter(client S3API, bucket, publicURL string) *Exporter {
	return &Exporter{client: client, bucket: bucket, publicURL: strings.TrimRight(publicURL, "/")}
}

func (e *Exporter) Enabled() bool { return e != nil && e.client != nil && e.bucket != "" }

// ExportKey builds "<prefix>/<name>-<unixnano>.json".
func ExportKey(prefix, name string, now time.Time) string {
	return fmt.Sprintf("%s/%s-%d.json", prefix, name, now.UnixNano())
}

// Upload stores data under key and returns its public URL (or s3:// URI
// when no public URL is configured).
func (e *Exporter) Upload(ctx context.Context, key, contentType string, data []byte) (string, error) {
	if !e.Enabled() {
		return "", ErrExporterDisabled
	}
	_, err := e.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(e.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload to S3: %w", err)
	}
	if e.publicURL == "" {
		return fmt.Sprintf("s3://%s/%s", e.bucket, key), nil
	}
	return fmt.Sprintf("%s/%s", e.publicURL, key), nil
}
