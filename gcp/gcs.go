package gcp

import (
	"context"

	"gocloud.dev/blob"
	"gocloud.dev/blob/gcsblob"
	gcloud "gocloud.dev/gcp"

	"github.com/akmistry/s3tools"
)

const gcsScheme = "gs"

func init() {
	s3tools.RegisterBucketScheme(gcsScheme, openGcsOpener)
}

func openGcsOpener(cfg *s3tools.Config) (s3tools.BucketOpener, error) {
	return NewGcsOpener(context.TODO())
}

// GcsOpener opens Google Cloud Storage buckets with application default
// credentials.
type GcsOpener struct {
	client *gcloud.HTTPClient
}

var _ = (s3tools.BucketOpener)((*GcsOpener)(nil))

func NewGcsOpener(ctx context.Context) (*GcsOpener, error) {
	creds, err := gcloud.DefaultCredentials(ctx)
	if err != nil {
		return nil, err
	}
	client, err := gcloud.NewHTTPClient(gcloud.DefaultTransport(), gcloud.CredentialsTokenSource(creds))
	if err != nil {
		return nil, err
	}
	return &GcsOpener{client: client}, nil
}

func (o *GcsOpener) OpenBucket(ctx context.Context, name string) (*blob.Bucket, error) {
	return gcsblob.OpenBucket(ctx, o.client, name, nil)
}
