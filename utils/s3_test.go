package utils

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubS3 struct {
	in   *s3.PutObjectInput
	body []byte
	err  error
}

func (s *stubS3) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	s.in = in
	s.body, _ = io.ReadAll(in.Body)
	return &s3.PutObjectOutput{}, s.err
}

func TestExporterUpload(t *testing.T) {
	stub := &stubS3{}
	now := time.Unix(10, 5)

	e := NewExporter(stub, "bucket", "")
	url, err := e.Upload(context.Background(), ExportKey("grocery-plans", "p1", now), "application/json", []byte(`{}`))
	require.NoError(t, err)
	assert.Equal(t, "s3://bucket/grocery-plans/p1-10000000005.json", url)
	assert.Equal(t, "bucket", aws.ToString(stub.in.Bucket))
	assert.Equal(t, "application/json", aws.ToString(stub.in.ContentType))
	assert.Equal(t, []byte(`{}`), stub.body)

	e = NewExporter(stub, "bucket", "https://cdn.example.com/")
	url, err = e.Upload(context.Background(), "k.json", "application/json", nil)
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com/k.json", url)

	stub.err = errors.New("denied")
	_, err = e.Upload(context.Background(), "k.json", "application/json", nil)
	assert.Error(t, err)

	_, err = NewExporter(nil, "bucket", "").Upload(context.Background(), "k", "x", nil)
	assert.ErrorIs(t, err, ErrExporterDisabled)
}
