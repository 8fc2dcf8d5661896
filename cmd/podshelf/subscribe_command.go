package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/ytget/podshelf/internal/coverart"
	"github.com/ytget/podshelf/internal/library"
	"github.com/ytget/podshelf/internal/model"
)

func newSubscribeCommand(ctx *commandContext) *cobra.Command {
	var noCover bool

	cmd := &cobra.Command{
		Use:   "subscribe URL",
		Short: "Subscribe to a podcast feed",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			feedURL := strings.TrimSpace(args[0])
			p, err := ctx.feeds().Subscribe(cmd.Context(), feedURL)
			if err != nil {
				return err
			}

			var added int
			err = ctx.withLibrary(func(lib *library.Library) error {
				added, err = lib.Subscribe(cmd.Context(), p)
				return err
			})
			if errors.Is(err, library.ErrExists) {
				fmt.Fprintf(cmd.OutOrStdout(), "Already subscribed to %s\n", feedURL)
				return nil
			}
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Subscribed to %s (%d episodes)\n", p.Title, added)

			if !noCover {
				ctx.downloadCover(cmd, p)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&noCover, "no-cover", false, "Do not download the podcast cover")
	return cmd
}

func (c *commandContext) downloadCover(cmd *cobra.Command, p *model.Podcast) {
	covers, err := c.covers()
	if err != nil {
		log.Warn().Err(err).Msg("cover store unavailable")
		return
	}
	if _, err := covers.Download(cmd.Context(), p); err != nil && !errors.Is(err, coverart.ErrNoCoverURL) {
		log.Warn().Err(err).Str("podcast", p.URL).Msg("cover download failed")
	}
}

func newRefreshCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "refresh",
		Short: "Check every feed for new episodes",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withLibrary(func(lib *library.Library) error {
				podcasts, err := lib.Podcasts(cmd.Context())
				if err != nil {
					return err
				}

				added, err := ctx.feeds().UpdateAll(cmd.Context(), lib, podcasts)
				fmt.Fprintf(cmd.OutOrStdout(), "Refreshed %d podcasts, %d new episodes\n", len(podcasts), added)
				return err
			})
		},
	}
}
