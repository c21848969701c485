package local

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gocloud.dev/blob"
	"gocloud.dev/blob/fileblob"

	"github.com/akmistry/s3tools"
)

const fileScheme = "file"

func init() {
	s3tools.RegisterBucketScheme(fileScheme, openDirOpener)
}

func openDirOpener(cfg *s3tools.Config) (s3tools.BucketOpener, error) {
	root := cfg.Local.Root
	if root == "" {
		root = filepath.Join(os.TempDir(), "s3tools")
	}
	return NewDirOpener(root), nil
}

// DirOpener stores each bucket as a directory under root.
type DirOpener struct {
	root string
}

var _ = (s3tools.BucketOpener)((*DirOpener)(nil))

func NewDirOpener(root string) *DirOpener {
	return &DirOpener{root: root}
}

func (o *DirOpener) OpenBucket(ctx context.Context, name string) (*blob.Bucket, error) {
	if name == "." || name == ".." || strings.ContainsAny(name, `/\`) {
		return nil, fmt.Errorf("s3tools/local: invalid bucket name %q", name)
	}
	dir := filepath.Join(o.root, name)
	err := os.MkdirAll(dir, 0750)
	if err != nil {
		return nil, err
	}
	return fileblob.OpenBucket(dir, nil)
}
