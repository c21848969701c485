package s3tools

import (
	"context"
	"sort"
	"sync"

	"gocloud.dev/blob"
)

// BucketOpener opens buckets of a single storage scheme by name.
type BucketOpener interface {
	OpenBucket(ctx context.Context, name string) (*blob.Bucket, error)
}

type BucketOpenerFunc func(ctx context.Context, name string) (*blob.Bucket, error)

func (f BucketOpenerFunc) OpenBucket(ctx context.Context, name string) (*blob.Bucket, error) {
	return f(ctx, name)
}

// SchemeFunc builds the BucketOpener for a scheme from the session config.
type SchemeFunc func(cfg *Config) (BucketOpener, error)

var (
	bucketSchemeMap = make(map[string]SchemeFunc)
	schemeLock      sync.Mutex
)

func RegisterBucketScheme(scheme string, fn SchemeFunc) {
	schemeLock.Lock()
	bucketSchemeMap[scheme] = fn
	schemeLock.Unlock()
}

func lookupBucketScheme(scheme string) SchemeFunc {
	schemeLock.Lock()
	defer schemeLock.Unlock()
	return bucketSchemeMap[scheme]
}

// RegisteredSchemes returns the sorted list of globally registered schemes.
func RegisteredSchemes() []string {
	schemeLock.Lock()
	schemes := make([]string, 0, len(bucketSchemeMap))
	for scheme := range bucketSchemeMap {
		schemes = append(schemes, scheme)
	}
	schemeLock.Unlock()

	sort.Strings(schemes)
	return schemes
}
