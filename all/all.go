package all

import (
	_ "github.com/akmistry/s3tools/aws"
	_ "github.com/akmistry/s3tools/gcp"
	_ "github.com/akmistry/s3tools/local"
)

// Meta-package to import all storage schemes
