package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/ytget/podshelf/internal/background"
	"github.com/ytget/podshelf/internal/library"
	"github.com/ytget/podshelf/internal/listmodel"
	"github.com/ytget/podshelf/internal/model"
	"github.com/ytget/podshelf/internal/platform"
)

type listFlags struct {
	view   string
	search string
}

func (f *listFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.view, "view", "", "View mode (all, undeleted, downloaded, unplayed); defaults to the saved mode")
	cmd.Flags().StringVarP(&f.search, "search", "s", "", "Search term or query expression")
}

func (f *listFlags) viewMode(saved listmodel.ViewMode) (listmodel.ViewMode, error) {
	if strings.TrimSpace(f.view) == "" {
		return saved, nil
	}
	return listmodel.ParseViewMode(strings.TrimSpace(f.view))
}

func newPodcastsCommand(ctx *commandContext) *cobra.Command {
	var flags listFlags
	var sections bool

	cmd := &cobra.Command{
		Use:   "podcasts",
		Short: "List subscribed podcasts",
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, err := ctx.ensureSettings()
			if err != nil {
				return err
			}
			mode, err := flags.viewMode(settings.GetViewMode())
			if err != nil {
				return err
			}
			var podcasts []*model.Podcast
			err = ctx.withLibrary(func(lib *library.Library) error {
				podcasts, err = lib.Podcasts(cmd.Context())
				return err
			})
			if err != nil {
				return err
			}

			opts := settings.GetPodcastListOptions()
			if cmd.Flags().Changed("sections") {
				opts.Sections = sections
			}

			list := listmodel.NewPodcastList(nil)
			list.SetViewMode(mode)
			list.SetChannels(podcasts, opts)
			list.SetSearchTerm(strings.TrimSpace(flags.search))

			out := cmd.OutOrStdout()
			rows := podcastTableRows(list.Filtered().Rows())
			if len(rows) == 0 {
				fmt.Fprintln(out, "No podcasts")
				return nil
			}
			fmt.Fprintln(out, renderTable(
				[]string{"Podcast", "Unplayed", "Downloaded", "Paused", "Description"},
				rows,
				[]columnAlignment{alignLeft, alignRight, alignRight, alignLeft, alignLeft},
				isTerminal(out),
			))
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().BoolVar(&sections, "sections", false, "Group podcasts under section headers")
	return cmd
}

func podcastTableRows(rows []listmodel.PodcastRow) [][]string {
	var out [][]string
	for _, r := range rows {
		switch r.Kind {
		case listmodel.KindSeparator:
			continue
		case listmodel.KindSection:
			out = append(out, []string{"[" + r.Title + "]", pillCount(r, r.PillUnplayed), pillCount(r, r.PillDownloaded), "", ""})
		default:
			paused := ""
			if r.Channel != nil && !r.Channel.Aggregate() {
				paused = yesNo(r.Channel.Paused())
			}
			out = append(out, []string{r.Title, pillCount(r, r.PillUnplayed), pillCount(r, r.PillDownloaded), paused, r.Description})
		}
	}
	return out
}

func pillCount(r listmodel.PodcastRow, n int) string {
	if !r.PillVisible || n == 0 {
		return ""
	}
	return strconv.Itoa(n)
}

func newEpisodesCommand(ctx *commandContext) *cobra.Command {
	var flags listFlags
	var sortFlag string
	var ascending bool

	cmd := &cobra.Command{
		Use:   "episodes [PODCAST_URL]",
		Short: "List the episodes of one podcast, or of all podcasts",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, err := ctx.ensureSettings()
			if err != nil {
				return err
			}
			mode, err := flags.viewMode(settings.GetViewMode())
			if err != nil {
				return err
			}
			var ch model.Channel
			err = ctx.withLibrary(func(lib *library.Library) error {
				if len(args) == 1 {
					p, err := lib.Podcast(cmd.Context(), strings.TrimSpace(args[0]))
					if err != nil {
						return err
					}
					ch = p.Channel()
					return nil
				}
				podcasts, err := lib.Podcasts(cmd.Context())
				if err != nil {
					return err
				}
				ch = model.NewAllEpisodes(podcasts)
				return nil
			})
			if err != nil {
				return err
			}

			sortBy, descending := settings.GetEpisodeSort()
			if cmd.Flags().Changed("sort") {
				sortBy = listmodel.ParseEpisodeSort(sortFlag)
			}
			if cmd.Flags().Changed("asc") {
				descending = !ascending
			}

			sched := background.NewManualScheduler()
			list := listmodel.NewEpisodeList(sched, nil)
			list.SetIconResolver(platform.FileIconName)
			list.SetViewMode(mode)
			list.SetSort(sortBy, descending)
			list.SetSearchTerm(strings.TrimSpace(flags.search))
			list.ReplaceFromChannel(ch, false)
			sched.RunAll()

			out := cmd.OutOrStdout()
			rows := episodeTableRows(list.Filtered().Rows(), ch.Aggregate())
			if len(rows) == 0 {
				fmt.Fprintln(out, "No episodes")
				return nil
			}
			headers := []string{"Episode", "Published", "Age", "Size", "Duration", "Status"}
			aligns := []columnAlignment{alignLeft, alignLeft, alignLeft, alignRight, alignRight, alignLeft}
			if ch.Aggregate() {
				headers = append([]string{"Podcast"}, headers...)
				aligns = append([]columnAlignment{alignLeft}, aligns...)
			}
			fmt.Fprintln(out, renderTable(headers, rows, aligns, isTerminal(out)))
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVar(&sortFlag, "sort", "", "Sort column (published, title, size, duration)")
	cmd.Flags().BoolVar(&ascending, "asc", false, "Sort ascending")
	return cmd
}

func episodeTableRows(rows []listmodel.EpisodeRow, withPodcast bool) [][]string {
	out := make([][]string, 0, len(rows))
	for _, r := range rows {
		title := r.Title
		if r.Locked {
			title = "* " + title
		}
		age := ""
		if !r.Published.IsZero() {
			age = humanize.Time(r.Published)
		}
		duration := ""
		if r.TimeVisible {
			duration = r.Time
		}
		row := []string{title, r.PublishedText, age, r.FileSizeText, duration, r.Tooltip}
		if withPodcast {
			podcast := ""
			if r.Episode != nil && r.Episode.Podcast != nil {
				podcast = r.Episode.Podcast.Title
			}
			row = append([]string{podcast}, row...)
		}
		out = append(out, row)
	}
	return out
}
