package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/akmistry/s3tools"
)

func newCatCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "cat REF...",
		Short: "Write objects to stdout",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, ref := range args {
				data, err := a.session.GetBytes(cmd.Context(), ref)
				if err != nil {
					return fmt.Errorf("cat %s: %w", ref, err)
				}
				if _, err := cmd.OutOrStdout().Write(data); err != nil {
					return err
				}
			}
			return nil
		},
	}
}

func newPutCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "put REF [FILE]",
		Short: "Upload FILE, or stdin, to an object",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ref := args[0]
			r := cmd.InOrStdin()
			if len(args) == 2 {
				f, err := os.Open(args[1])
				if err != nil {
					return err
				}
				defer f.Close()
				r = f
			}

			return a.session.WithWriter(cmd.Context(), ref, func(w io.Writer) error {
				_, err := io.Copy(w, r)
				return err
			})
		},
	}
}

func newGetCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "get REF...",
		Short: "Download objects to the temp dir and print their local paths",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, ref := range args {
				r, err := a.session.OpenReader(cmd.Context(), ref, s3tools.BackendFile)
				if err != nil {
					return fmt.Errorf("get %s: %w", ref, err)
				}
				name := r.Location().String()
				if f, ok := r.(interface{ Name() string }); ok {
					name = f.Name()
				}
				r.Close()
				fmt.Fprintln(cmd.OutOrStdout(), name)
			}
			return nil
		},
	}
}

func newLsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "ls PATTERN...",
		Short: "List objects or local files matching each pattern",
		Long: `ls expands each pattern. Patterns of the form scheme://bucket/prefix list
every object under prefix; glob characters in the key are matched per path
element. Other patterns are local filesystem globs.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, pattern := range args {
				refs, err := a.session.Expand(cmd.Context(), pattern)
				if err != nil {
					return fmt.Errorf("ls %s: %w", pattern, err)
				}
				for _, ref := range refs {
					fmt.Fprintln(cmd.OutOrStdout(), ref)
				}
			}
			return nil
		},
	}
}

func newRmCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "rm REF...",
		Short: "Delete objects",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, ref := range args {
				if err := a.session.Delete(cmd.Context(), ref); err != nil {
					return fmt.Errorf("rm %s: %w", ref, err)
				}
			}
			return nil
		},
	}
}
