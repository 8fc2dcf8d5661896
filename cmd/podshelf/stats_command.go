package main

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/ytget/podshelf/internal/library"
	"github.com/ytget/podshelf/internal/model"
)

func newStatsCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show episode counts for the whole library",
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				path string
				s    model.Statistics
			)
			err := ctx.withLibrary(func(lib *library.Library) error {
				path = lib.Path()
				var err error
				s, err = lib.Statistics(cmd.Context())
				return err
			})
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Library:    %s\n", path)
			fmt.Fprintf(out, "Episodes:   %s\n", humanize.Comma(int64(s.Total)))
			fmt.Fprintf(out, "New:        %s\n", humanize.Comma(int64(s.New)))
			fmt.Fprintf(out, "Downloaded: %s\n", humanize.Comma(int64(s.Downloaded)))
			fmt.Fprintf(out, "Unplayed:   %s\n", humanize.Comma(int64(s.Unplayed)))
			fmt.Fprintf(out, "Deleted:    %s\n", humanize.Comma(int64(s.Deleted)))
			return nil
		},
	}
}

func newUICommand() *cobra.Command {
	return &cobra.Command{
		Use:         "ui",
		Short:       "Explain how to start the desktop app",
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(cmd.OutOrStdout(), "The desktop app is a separate binary: build the module root (go build .) and run ./podshelf.")
			fmt.Fprintln(cmd.OutOrStdout(), "It keeps its settings in the Fyne preferences store; the library file can be shared with this CLI.")
			return nil
		},
	}
}
