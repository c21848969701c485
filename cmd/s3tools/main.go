package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/akmistry/s3tools"
	_ "github.com/akmistry/s3tools/all"
	"github.com/akmistry/s3tools/config"
)

var version = "dev"

// app holds the state shared by subcommands for one invocation.
type app struct {
	session *s3tools.Session
}

func newRootCmd() *cobra.Command {
	a := &app{}
	var configFiles []string

	rootCmd := &cobra.Command{
		Version: version,
		Use:     "s3tools",
		Short:   "Read and write objects in S3 and other object stores",
		Long: `s3tools reads and writes objects addressed either as scheme://bucket/key
or as bare keys in a default bucket (--bucket or S3TOOLS_BUCKET).`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configFiles, cmd.Flags())
			if err != nil {
				return err
			}
			setupLogging(cfg.Log, cmd.ErrOrStderr())

			a.session, err = s3tools.NewSession(cfg.Storage)
			return err
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if a.session == nil {
				return nil
			}
			return a.session.Close()
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringSliceVar(&configFiles, "config", nil, "config file paths, later files override earlier ones (default: ./s3tools.yaml)")
	flags.String("bucket", "", "default bucket for bare keys (env: S3TOOLS_BUCKET)")
	flags.String("scheme", "", "scheme for bare keys: s3, gs or file (default: s3, env: S3TOOLS_SCHEME)")
	flags.String("region", "", "S3 region (env: S3TOOLS_S3_REGION)")
	flags.String("endpoint", "", "S3 endpoint URL (env: S3TOOLS_S3_ENDPOINT)")
	flags.Bool("path-style", false, "use path-style S3 addressing (env: S3TOOLS_S3_PATH_STYLE)")
	flags.String("local-root", "", "root directory of file:// buckets (env: S3TOOLS_LOCAL_ROOT)")
	flags.String("temp-dir", "", "directory for file backend downloads (env: S3TOOLS_TEMP_DIR)")
	flags.String("log-level", "", "log level: debug, info, warn, error (env: S3TOOLS_LOG_LEVEL)")
	flags.String("log-format", "", "log format: text, json (env: S3TOOLS_LOG_FORMAT)")

	rootCmd.AddCommand(
		newCatCmd(a),
		newPutCmd(a),
		newGetCmd(a),
		newLsCmd(a),
		newRmCmd(a),
		newImgCmd(a),
	)
	return rootCmd
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
