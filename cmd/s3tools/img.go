package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/akmistry/s3tools"
)

func newImgCmd(a *app) *cobra.Command {
	var backendName string

	imgCmd := &cobra.Command{
		Use:   "img",
		Short: "Work with TIFF images",
	}
	imgCmd.PersistentFlags().StringVar(&backendName, "backend", "memory", "read backend: memory or file")

	infoCmd := &cobra.Command{
		Use:   "info REF",
		Short: "Print the bounds and pixel type of an image",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			backend, err := s3tools.ParseBackend(backendName)
			if err != nil {
				return err
			}
			img, err := a.session.GetImage(cmd.Context(), args[0], backend)
			if err != nil {
				return err
			}
			b := img.Bounds()
			fmt.Fprintf(cmd.OutOrStdout(), "%s %dx%d %T\n", args[0], b.Dx(), b.Dy(), img)
			return nil
		},
	}

	copyCmd := &cobra.Command{
		Use:   "copy SRC DST",
		Short: "Decode an image and store it re-encoded at DST",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			backend, err := s3tools.ParseBackend(backendName)
			if err != nil {
				return err
			}
			img, err := a.session.GetImage(cmd.Context(), args[0], backend)
			if err != nil {
				return err
			}
			return a.session.PutImage(cmd.Context(), args[1], img)
		},
	}

	imgCmd.AddCommand(infoCmd, copyCmd)
	return imgCmd
}
