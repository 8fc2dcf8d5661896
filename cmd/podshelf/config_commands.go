package main

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ytget/podshelf/internal/config"
	"github.com/ytget/podshelf/internal/listmodel"
)

func newConfigCommand(ctx *commandContext) *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect and change CLI settings",
	}

	configCmd.AddCommand(newConfigShowCommand(ctx))
	configCmd.AddCommand(newConfigSetCommand(ctx))

	return configCmd
}

func newConfigShowCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the effective settings",
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, err := ctx.ensureSettings()
			if err != nil {
				return err
			}
			rows := settingsRows(settings)
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Config file: %s\n", ctx.prefs.Path())
			fmt.Fprintln(out, renderTable([]string{"Key", "Value"}, rows, nil, isTerminal(out)))
			return nil
		},
	}
}

func newConfigSetCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "set KEY VALUE",
		Short: "Change a setting and save the config file",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, err := ctx.ensureSettings()
			if err != nil {
				return err
			}
			if err := applySetting(settings, args[0], strings.TrimSpace(args[1])); err != nil {
				return err
			}
			if err := ctx.saveSettings(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s updated\n", args[0])
			return nil
		},
	}
}

func settingsRows(s *config.Settings) [][]string {
	opts := s.GetPodcastListOptions()
	sortBy, descending := s.GetEpisodeSort()
	rows := [][]string{
		{config.KeyLibraryPath, s.GetLibraryPath()},
		{config.KeyDownloadDir, s.GetDownloadDirectory()},
		{config.KeyMaxParallel, strconv.Itoa(s.GetMaxParallelDownloads())},
		{config.KeyViewMode, s.GetViewMode().String()},
		{config.KeyEpisodeSort, sortBy.String()},
		{config.KeyEpisodeSortDescending, strconv.FormatBool(descending)},
		{config.KeyEpisodeListDescriptions, strconv.FormatBool(s.GetEpisodeListDescriptions())},
		{config.KeyPodcastListViewAll, strconv.FormatBool(opts.ViewAll)},
		{config.KeyPodcastListSections, strconv.FormatBool(opts.Sections)},
		{config.KeyCoverSize, strconv.Itoa(s.GetCoverSize())},
		{config.KeyLanguage, s.GetLanguage()},
		{config.KeyLogLevel, s.GetLogLevel()},
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i][0] < rows[j][0] })
	return rows
}

func applySetting(s *config.Settings, key, value string) error {
	parseBool := func() (bool, error) {
		b, err := strconv.ParseBool(value)
		if err != nil {
			return false, fmt.Errorf("%s: expected true or false, got %q", key, value)
		}
		return b, nil
	}
	parseInt := func() (int, error) {
		n, err := strconv.Atoi(value)
		if err != nil {
			return 0, fmt.Errorf("%s: expected a number, got %q", key, value)
		}
		return n, nil
	}

	switch key {
	case config.KeyLibraryPath:
		s.SetLibraryPath(value)
	case config.KeyDownloadDir:
		s.SetDownloadDirectory(value)
	case config.KeyMaxParallel:
		n, err := parseInt()
		if err != nil {
			return err
		}
		s.SetMaxParallelDownloads(n)
	case config.KeyCoverSize:
		n, err := parseInt()
		if err != nil {
			return err
		}
		s.SetCoverSize(n)
	case config.KeyViewMode:
		mode, err := listmodel.ParseViewMode(value)
		if err != nil {
			return err
		}
		s.SetViewMode(mode)
	case config.KeyEpisodeSort:
		_, descending := s.GetEpisodeSort()
		s.SetEpisodeSort(listmodel.ParseEpisodeSort(value), descending)
	case config.KeyEpisodeSortDescending:
		b, err := parseBool()
		if err != nil {
			return err
		}
		sortBy, _ := s.GetEpisodeSort()
		s.SetEpisodeSort(sortBy, b)
	case config.KeyEpisodeListDescriptions:
		b, err := parseBool()
		if err != nil {
			return err
		}
		s.SetEpisodeListDescriptions(b)
	case config.KeyPodcastListViewAll, config.KeyPodcastListSections:
		b, err := parseBool()
		if err != nil {
			return err
		}
		opts := s.GetPodcastListOptions()
		if key == config.KeyPodcastListViewAll {
			opts.ViewAll = b
		} else {
			opts.Sections = b
		}
		s.SetPodcastListOptions(opts)
	case config.KeyLanguage:
		s.SetLanguage(value)
	case config.KeyLogLevel:
		s.SetLogLevel(value)
	default:
		return fmt.Errorf("unknown setting %q", key)
	}
	return nil
}
