// Package config loads s3tools configuration from defaults, YAML files,
// S3TOOLS_* environment variables and command-line flags.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/akmistry/s3tools"
)

const envPrefix = "S3TOOLS"

// Config is the root configuration. Storage settings are inlined, so the
// default bucket is the top-level key "bucket" and reads S3TOOLS_BUCKET.
type Config struct {
	Storage s3tools.Config `mapstructure:",squash"`
	Log     LogConfig      `mapstructure:"log"`
}

type LogConfig struct {
	Level  string `mapstructure:"level" validate:"required,oneof=debug info warn error"`
	Format string `mapstructure:"format" validate:"required,oneof=text json"`
}

// flagToViperKey maps CLI flag names to viper keys where they differ.
var flagToViperKey = map[string]string{
	"region":     "s3.region",
	"endpoint":   "s3.endpoint",
	"path-style": "s3.path_style",
	"local-root": "local.root",
	"temp-dir":   "temp_dir",
	"log-level":  "log.level",
	"log-format": "log.format",
}

// bindFlags binds each flag set on the command line to its viper key, so
// defaulted flags leave env and file values in place.
func bindFlags(v *viper.Viper, flags *pflag.FlagSet) error {
	var err error
	flags.Visit(func(f *pflag.Flag) {
		if err != nil {
			return
		}
		key, ok := flagToViperKey[f.Name]
		if !ok {
			key = f.Name
		}
		if bindErr := v.BindPFlag(key, f); bindErr != nil {
			err = fmt.Errorf("bind flag --%s: %w", f.Name, bindErr)
		}
	})
	return err
}

func setDefaults(v *viper.Viper) {
	defaults := s3tools.DefaultConfig()
	v.SetDefault("bucket", "")
	v.SetDefault("scheme", defaults.DefaultScheme)
	v.SetDefault("temp_dir", "")
	v.SetDefault("bucket_cache_size", defaults.BucketCacheSize)

	v.SetDefault("s3.region", "")
	v.SetDefault("s3.endpoint", "")
	v.SetDefault("s3.access_key", "")
	v.SetDefault("s3.secret_key", "")
	v.SetDefault("s3.path_style", false)

	v.SetDefault("local.root", "")

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
}

// Load reads configuration and returns a validated Config.
// Precedence, highest first: flags > env > config files > defaults.
// Later files in configFiles override earlier ones; with no files,
// ./s3tools.yaml is read if present. flags may be nil.
func Load(configFiles []string, flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()

	setDefaults(v)

	if len(configFiles) > 0 {
		v.SetConfigFile(configFiles[0])
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", configFiles[0], err)
		}
		for _, cf := range configFiles[1:] {
			v.SetConfigFile(cf)
			if err := v.MergeInConfig(); err != nil {
				return nil, fmt.Errorf("merge config %s: %w", cf, err)
			}
		}
	} else {
		v.SetConfigName("s3tools")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")

		if err := v.ReadInConfig(); err != nil {
			var configNotFound viper.ConfigFileNotFoundError
			if !errors.As(err, &configNotFound) {
				slog.Warn("error reading config file", "err", err)
			}
		}
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if flags != nil {
		if err := bindFlags(v, flags); err != nil {
			return nil, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	validate := validator.New()
	if err := validate.Struct(&cfg); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return &cfg, nil
}
