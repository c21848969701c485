package s3tools

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"gocloud.dev/blob"
	"gocloud.dev/blob/fileblob"
)

const testBucket = "test-bucket"

// dirOpener serves buckets from directories under root and counts opens.
type dirOpener struct {
	root string

	lock  sync.Mutex
	opens map[string]int
}

func newDirOpener(root string) *dirOpener {
	return &dirOpener{root: root, opens: make(map[string]int)}
}

func (o *dirOpener) OpenBucket(ctx context.Context, name string) (*blob.Bucket, error) {
	o.lock.Lock()
	o.opens[name]++
	o.lock.Unlock()

	dir := filepath.Join(o.root, name)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return nil, err
	}
	return fileblob.OpenBucket(dir, nil)
}

func (o *dirOpener) openCount(name string) int {
	o.lock.Lock()
	defer o.lock.Unlock()
	return o.opens[name]
}

func newTestConfig(t *testing.T) Config {
	cfg := DefaultConfig()
	cfg.DefaultBucket = testBucket
	cfg.TempDir = t.TempDir()
	return cfg
}

// newTestSession returns a session whose "s3" scheme is backed by local
// directories.
func newTestSession(t *testing.T, cfg Config, opts ...Option) (*Session, *dirOpener) {
	t.Helper()

	o := newDirOpener(t.TempDir())
	opts = append([]Option{WithOpener("s3", o)}, opts...)
	s, err := NewSession(cfg, opts...)
	if err != nil {
		t.Fatalf("NewSession() error = %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s, o
}
