package backup

import (
	"bytes"
	"context"
	"fmt"
	"path"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// uploader is the slice of the S3 upload manager S3Target needs.
type uploader interface {
	Upload(ctx context.Context, input *s3.PutObjectInput, opts ...func(*manager.Uploader)) (*manager.UploadOutput, error)
}

// S3Target writes snapshots as objects under bucket/prefix.
type S3Target struct {
	uploader uploader
	bucket   string
	prefix   string
}

// NewS3Target builds a target from the ambient AWS configuration
// (environment, shared config files, or instance role).
func NewS3Target(ctx context.Context, bucket, prefix string) (*S3Target, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	client := s3.NewFromConfig(cfg)
	return &S3Target{
		uploader: manager.NewUploader(client),
		bucket:   bucket,
		prefix:   prefix,
	}, nil
}

func (t *S3Target) Write(ctx context.Context, name string, data []byte) (string, error) {
	key := path.Join(t.prefix, name)
	_, err := t.uploader.Upload(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(t.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String("application/json"),
	})
	if err != nil {
		return "", fmt.Errorf("upload s3://%s/%s: %w", t.bucket, key, err)
	}
	return "s3://" + t.bucket + "/" + key, nil
}
