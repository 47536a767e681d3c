// Package archive uploads completed analysis reports to an S3 bucket for
// long term retention
package archive

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/cisco-open/nd-insights-client/pkg/logging"
	"github.com/cisco-open/nd-insights-client/pkg/metrics"
)

// Uploader writes analysis reports into one bucket
type Uploader struct {
	client *s3.Client
	bucket string
}

// NewFromEnv builds an uploader from NDI_ARCHIVE_BUCKET and the standard AWS
// environment. It returns nil when no bucket is configured, which callers
// treat as archiving disabled.
func NewFromEnv(ctx context.Context) (*Uploader, error) {
	bucket, exists := os.LookupEnv("NDI_ARCHIVE_BUCKET")
	if !exists || bucket == "" {
		return nil, nil
	}

	opts := []func(*awsconfig.LoadOptions) error{}
	accessKeyID, hasAccessKeyID := os.LookupEnv("AWS_ACCESS_KEY_ID")
	secretAccessKey, hasSecretAccessKey := os.LookupEnv("AWS_SECRET_ACCESS_KEY")
	if hasAccessKeyID && hasSecretAccessKey {
		sessionToken := os.Getenv("AWS_SESSION_TOKEN") // optional
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(accessKeyID, secretAccessKey, sessionToken)))
	}

	cfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("could not load AWS configuration: %w", err)
	}

	return &Uploader{
		client: s3.NewFromConfig(cfg),
		bucket: bucket,
	}, nil
}

// Report uploads one report as pretty printed JSON and returns the object key
func (u *Uploader) Report(ctx context.Context, kind string, name string, report interface{}) (string, error) {
	if u == nil {
		return "", nil
	}

	body, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return "", fmt.Errorf("could not marshal report: %w", err)
	}

	key := fmt.Sprintf("%s/%s-%s.json", kind, name, time.Now().UTC().Format("20060102T150405Z"))

	_, err = u.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(u.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(body),
		ContentType: aws.String("application/json"),
	})
	if err != nil {
		return "", fmt.Errorf("could not upload report to s3://%s/%s: %w", u.bucket, key, err)
	}

	metrics.Inc(metrics.ReportsArchived, kind)
	logging.Infof("archived report to s3://%s/%s", u.bucket, key)
	return key, nil
}
