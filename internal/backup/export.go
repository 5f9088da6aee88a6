package backup

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// uploader is the slice of the S3 upload manager the exporter needs.
type uploader interface {
	Upload(ctx context.Context, input *s3.PutObjectInput, opts ...func(*manager.Uploader)) (*manager.UploadOutput, error)
}

// Exporter streams vault archives to an S3 bucket.
type Exporter struct {
	uploader uploader
	bucket   string
	prefix   string

	now func() time.Time
}

// NewExporter builds an exporter from the ambient AWS credential chain.
func NewExporter(ctx context.Context, bucket, prefix, region string) (*Exporter, error) {
	if strings.TrimSpace(bucket) == "" {
		return nil, fmt.Errorf("backup: bucket is not configured")
	}

	opts := []func(*awsconfig.LoadOptions) error{}
	if region != "" {
		opts = append(opts, awsconfig.WithRegion(region))
	}

	cfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("backup: loading aws config: %w", err)
	}

	client := s3.NewFromConfig(cfg)
	return &Exporter{
		uploader: manager.NewUploader(client),
		bucket:   bucket,
		prefix:   prefix,
		now:      time.Now,
	}, nil
}

// Export uploads the archive read from r and returns the object key.
func (e *Exporter) Export(ctx context.Context, r io.Reader) (string, error) {
	key := e.objectKey()

	contentType := "application/gzip"
	_, err := e.uploader.Upload(ctx, &s3.PutObjectInput{
		Bucket:      &e.bucket,
		Key:         &key,
		Body:        r,
		ContentType: &contentType,
	})
	if err != nil {
		return "", fmt.Errorf("backup: uploading %s: %w", key, err)
	}

	return key, nil
}

func (e *Exporter) objectKey() string {
	name := e.now().UTC().Format("2006-01-02T15-04-05Z") + ".tar.gz"
	if e.prefix == "" {
		return name
	}
	return path.Join(e.prefix, name)
}
