package s3tools

// BucketEnv names the environment variable consulted for the default bucket
// when none has been set on the session.
const BucketEnv = "S3TOOLS_BUCKET"

const (
	defaultScheme          = "s3"
	defaultBucketCacheSize = 16
)

// Config holds the storage settings of a Session.
type Config struct {
	// DefaultBucket is used for references without an explicit bucket.
	DefaultBucket string `mapstructure:"bucket"`
	// DefaultScheme is the scheme of references without an explicit bucket.
	DefaultScheme string `mapstructure:"scheme" validate:"required"`
	// TempDir receives downloads made with BackendFile. Empty means
	// os.TempDir().
	TempDir         string `mapstructure:"temp_dir"`
	BucketCacheSize int    `mapstructure:"bucket_cache_size" validate:"min=1"`

	S3    S3Config    `mapstructure:"s3"`
	Local LocalConfig `mapstructure:"local"`
}

type S3Config struct {
	Region    string `mapstructure:"region"`
	Endpoint  string `mapstructure:"endpoint" validate:"omitempty,url"`
	AccessKey string `mapstructure:"access_key" validate:"required_with=SecretKey"`
	SecretKey string `mapstructure:"secret_key" validate:"required_with=AccessKey"`
	PathStyle bool   `mapstructure:"path_style"`
}

// LocalConfig configures the "file" scheme, where each bucket is a
// directory under Root.
type LocalConfig struct {
	Root string `mapstructure:"root"`
}

func DefaultConfig() Config {
	return Config{
		DefaultScheme:   defaultScheme,
		BucketCacheSize: defaultBucketCacheSize,
	}
}
