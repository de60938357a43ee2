package remotefile

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/rios0rios0/gitpuller/internal/domain/repositories"
)

// S3EndpointEnvVar points the S3 provider at an S3-compatible endpoint (e.g. MinIO).
const S3EndpointEnvVar = "GITPULLER_S3_ENDPOINT"

// S3API is the subset of the S3 client the provider uses.
type S3API interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// S3Provider fetches objects identified as "bucket/key".
type S3Provider struct {
	client S3API
}

// NewS3Provider creates an S3Provider around an existing client.
func NewS3Provider(client S3API) *S3Provider {
	return &S3Provider{client: client}
}

// NewS3ProviderFromEnv loads credentials from the default AWS chain.
func NewS3ProviderFromEnv(ctx context.Context) (repositories.RemoteFileRepository, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS configuration: %w", err)
	}
	if cfg.Region == "" {
		cfg.Region = "us-east-1"
	}

	endpoint := os.Getenv(S3EndpointEnvVar)
	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		if endpoint != "" {
			o.BaseEndpoint = aws.String(endpoint)
			o.UsePathStyle = true
		}
	})
	return NewS3Provider(client), nil
}

// Name identifies the provider in registry lookups and log lines.
func (it *S3Provider) Name() string { return "s3" }

// Fetch downloads the object into w.
func (it *S3Provider) Fetch(
	ctx context.Context,
	fileID string,
	w io.Writer,
	progress repositories.ProgressFunc,
) error {
	bucket, key, ok := strings.Cut(strings.TrimPrefix(fileID, "s3://"), "/")
	if !ok || bucket == "" || key == "" {
		return fmt.Errorf("invalid S3 file identifier %q, expected bucket/key", fileID)
	}

	out, err := it.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("failed to get object: %w", err)
	}
	defer out.Body.Close()

	return copyWithProgress(ctx, w, out.Body, aws.ToInt64(out.ContentLength), progress)
}
