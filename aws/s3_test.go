package aws

import (
	"context"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/akmistry/s3tools"
)

func TestLoadOptions(t *testing.T) {
	var lo config.LoadOptions
	for _, fn := range loadOptions(s3tools.S3Config{
		Region:    "eu-west-1",
		AccessKey: "access",
		SecretKey: "secret",
	}) {
		if err := fn(&lo); err != nil {
			t.Fatalf("load option error = %v", err)
		}
	}

	if lo.Region != "eu-west-1" {
		t.Errorf("Region %q != expected eu-west-1", lo.Region)
	}
	if lo.Credentials == nil {
		t.Fatal("Credentials not set")
	}
	creds, err := lo.Credentials.Retrieve(context.Background())
	if err != nil {
		t.Fatalf("Retrieve() error = %v", err)
	}
	if creds.AccessKeyID != "access" || creds.SecretAccessKey != "secret" {
		t.Errorf("Credentials %q/%q != expected access/secret", creds.AccessKeyID, creds.SecretAccessKey)
	}
}

func TestLoadOptions_Empty(t *testing.T) {
	if opts := loadOptions(s3tools.S3Config{AccessKey: "access"}); len(opts) != 0 {
		t.Errorf("loadOptions() returned %d options, expected none", len(opts))
	}
}

func TestClientOptions(t *testing.T) {
	var opts s3.Options
	for _, fn := range clientOptions(s3tools.S3Config{
		Endpoint:  "http://localhost:9000",
		PathStyle: true,
	}) {
		fn(&opts)
	}

	if !opts.UsePathStyle {
		t.Error("UsePathStyle not set")
	}
	if aws.ToString(opts.BaseEndpoint) != "http://localhost:9000" {
		t.Errorf("BaseEndpoint %q != expected http://localhost:9000", aws.ToString(opts.BaseEndpoint))
	}
}

func TestOpenBucket(t *testing.T) {
	awsCfg := aws.Config{Region: "us-east-1"}
	o := NewS3OpenerFromConfig(awsCfg, s3tools.S3Config{PathStyle: true})

	b, err := o.OpenBucket(context.Background(), "test-bucket")
	if err != nil {
		t.Fatalf("OpenBucket() error = %v", err)
	}
	if err := b.Close(); err != nil {
		t.Errorf("Close() error = %v", err)
	}
}

func TestSchemeRegistered(t *testing.T) {
	for _, scheme := range s3tools.RegisteredSchemes() {
		if scheme == s3Scheme {
			return
		}
	}
	t.Errorf("scheme %q not registered", s3Scheme)
}
