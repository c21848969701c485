package aws

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"gocloud.dev/blob"
	"gocloud.dev/blob/s3blob"

	"github.com/akmistry/s3tools"
)

const s3Scheme = "s3"

func init() {
	s3tools.RegisterBucketScheme(s3Scheme, openS3Opener)
}

func openS3Opener(cfg *s3tools.Config) (s3tools.BucketOpener, error) {
	return NewS3Opener(context.TODO(), cfg.S3)
}

// S3Opener opens S3 buckets through a shared client.
type S3Opener struct {
	client *s3.Client
}

var _ = (s3tools.BucketOpener)((*S3Opener)(nil))

// NewS3Opener loads the default AWS config, overridden by any region and
// static credentials in cfg.
func NewS3Opener(ctx context.Context, cfg s3tools.S3Config) (*S3Opener, error) {
	awsCfg, err := config.LoadDefaultConfig(ctx, loadOptions(cfg)...)
	if err != nil {
		return nil, err
	}
	return NewS3OpenerFromConfig(awsCfg, cfg), nil
}

func NewS3OpenerFromConfig(awsCfg aws.Config, cfg s3tools.S3Config) *S3Opener {
	return &S3Opener{
		client: s3.NewFromConfig(awsCfg, clientOptions(cfg)...),
	}
}

func loadOptions(cfg s3tools.S3Config) []func(*config.LoadOptions) error {
	var optFns []func(*config.LoadOptions) error
	if cfg.Region != "" {
		optFns = append(optFns, config.WithRegion(cfg.Region))
	}
	if cfg.AccessKey != "" && cfg.SecretKey != "" {
		optFns = append(optFns, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, "")))
	}
	return optFns
}

func clientOptions(cfg s3tools.S3Config) []func(*s3.Options) {
	var optFns []func(*s3.Options)
	if cfg.Endpoint != "" {
		endpoint := cfg.Endpoint
		optFns = append(optFns, func(opts *s3.Options) {
			opts.BaseEndpoint = aws.String(endpoint)
		})
	}
	if cfg.PathStyle {
		optFns = append(optFns, func(opts *s3.Options) {
			opts.UsePathStyle = true
		})
	}
	return optFns
}

func (o *S3Opener) OpenBucket(ctx context.Context, name string) (*blob.Bucket, error) {
	return s3blob.OpenBucketV2(ctx, o.client, name, nil)
}
