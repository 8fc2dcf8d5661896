package config

import (
	"fyne.io/fyne/v2"

	"github.com/ytget/podshelf/internal/listmodel"
	"github.com/ytget/podshelf/internal/platform"
	"github.com/ytget/podshelf/internal/thumbs"
)

// Settings keys shared by Fyne preferences and the TOML file
const (
	KeyLibraryPath             = "library_path"
	KeyDownloadDir             = "download_directory"
	KeyMaxParallel             = "max_parallel_downloads"
	KeyViewMode                = "episode_list_view_mode"
	KeyEpisodeSort             = "episode_list_sort"
	KeyEpisodeSortDescending   = "episode_list_sort_descending"
	KeyEpisodeListDescriptions = "episode_list_descriptions"
	KeyPodcastListViewAll      = "podcast_list_view_all"
	KeyPodcastListSections     = "podcast_list_sections"
	KeyCoverSize               = "cover_size"
	KeyLanguage                = "app_language"
	KeyLogLevel                = "log_level"
	KeyAutoRevealComplete      = "auto_reveal_on_complete"
)

// Default values
const (
	DefaultMaxParallel             = 2
	MaxParallelLimit               = 10
	DefaultViewMode                = listmodel.ViewAll
	DefaultEpisodeSort             = listmodel.SortPublished
	DefaultEpisodeSortDescending   = true
	DefaultEpisodeListDescriptions = true
	DefaultPodcastListViewAll      = true
	DefaultPodcastListSections     = true
	DefaultCoverSize               = thumbs.DefaultMaxSide
	MinCoverSize                   = 16
	MaxCoverSize                   = 256
	DefaultLanguage                = "system"
	DefaultLogLevel                = "info"
	DefaultAutoRevealComplete      = false
)

// Preferences is the key/value store settings are kept in. fyne.Preferences
// satisfies it, as does FilePreferences.
type Preferences interface {
	StringWithFallback(key, fallback string) string
	SetString(key, value string)
	IntWithFallback(key string, fallback int) int
	SetInt(key string, value int)
	BoolWithFallback(key string, fallback bool) bool
	SetBool(key string, value bool)
}

var _ Preferences = fyne.Preferences(nil)

// Settings manages application configuration
type Settings struct {
	prefs Preferences
}

// NewSettings creates a settings manager over the app's preferences
func NewSettings(app fyne.App) *Settings {
	return &Settings{prefs: app.Preferences()}
}

// NewSettingsFromPreferences creates a settings manager over any store
func NewSettingsFromPreferences(prefs Preferences) *Settings {
	return &Settings{prefs: prefs}
}

// GetLibraryPath returns the library database path
func (s *Settings) GetLibraryPath() string {
	path := s.prefs.StringWithFallback(KeyLibraryPath, "")
	if path == "" {
		defaultPath, err := platform.DefaultLibraryPath()
		if err != nil {
			return platform.LibraryFileName
		}
		return defaultPath
	}
	return path
}

// SetLibraryPath sets the library database path
func (s *Settings) SetLibraryPath(path string) {
	s.prefs.SetString(KeyLibraryPath, path)
}

// GetDownloadDirectory returns the configured download directory
func (s *Settings) GetDownloadDirectory() string {
	dir := s.prefs.StringWithFallback(KeyDownloadDir, "")
	if dir == "" {
		// Use ~/Podcasts by default
		defaultDir, err := platform.GetHomeDownloadsDir()
		if err != nil {
			defaultDir = "/tmp/podcasts"
		}
		s.SetDownloadDirectory(defaultDir)
		return defaultDir
	}
	return dir
}

// SetDownloadDirectory sets the download directory
func (s *Settings) SetDownloadDirectory(dir string) {
	s.prefs.SetString(KeyDownloadDir, dir)
}

// GetMaxParallelDownloads returns the maximum number of parallel downloads
func (s *Settings) GetMaxParallelDownloads() int {
	value := s.prefs.IntWithFallback(KeyMaxParallel, 0)
	if value <= 0 {
		s.SetMaxParallelDownloads(DefaultMaxParallel)
		return DefaultMaxParallel
	}
	return min(value, MaxParallelLimit)
}

// SetMaxParallelDownloads sets the maximum number of parallel downloads
func (s *Settings) SetMaxParallelDownloads(count int) {
	s.prefs.SetInt(KeyMaxParallel, clamp(count, 1, MaxParallelLimit))
}

// GetViewMode returns the episode list view mode
func (s *Settings) GetViewMode() listmodel.ViewMode {
	mode, err := listmodel.ParseViewMode(s.prefs.StringWithFallback(KeyViewMode, DefaultViewMode.String()))
	if err != nil {
		return DefaultViewMode
	}
	return mode
}

// SetViewMode sets the episode list view mode
func (s *Settings) SetViewMode(mode listmodel.ViewMode) {
	s.prefs.SetString(KeyViewMode, mode.String())
}

// GetEpisodeSort returns the episode sort column and direction
func (s *Settings) GetEpisodeSort() (listmodel.EpisodeSort, bool) {
	key := listmodel.ParseEpisodeSort(s.prefs.StringWithFallback(KeyEpisodeSort, DefaultEpisodeSort.String()))
	return key, s.prefs.BoolWithFallback(KeyEpisodeSortDescending, DefaultEpisodeSortDescending)
}

// SetEpisodeSort sets the episode sort column and direction
func (s *Settings) SetEpisodeSort(key listmodel.EpisodeSort, descending bool) {
	s.prefs.SetString(KeyEpisodeSort, key.String())
	s.prefs.SetBool(KeyEpisodeSortDescending, descending)
}

// GetEpisodeListDescriptions returns whether episode rows show descriptions
func (s *Settings) GetEpisodeListDescriptions() bool {
	return s.prefs.BoolWithFallback(KeyEpisodeListDescriptions, DefaultEpisodeListDescriptions)
}

// SetEpisodeListDescriptions sets whether episode rows show descriptions
func (s *Settings) SetEpisodeListDescriptions(show bool) {
	s.prefs.SetBool(KeyEpisodeListDescriptions, show)
}

// GetPodcastListOptions returns the podcast list layout options
func (s *Settings) GetPodcastListOptions() listmodel.PodcastListOptions {
	return listmodel.PodcastListOptions{
		ViewAll:  s.prefs.BoolWithFallback(KeyPodcastListViewAll, DefaultPodcastListViewAll),
		Sections: s.prefs.BoolWithFallback(KeyPodcastListSections, DefaultPodcastListSections),
	}
}

// SetPodcastListOptions sets the podcast list layout options
func (s *Settings) SetPodcastListOptions(opts listmodel.PodcastListOptions) {
	s.prefs.SetBool(KeyPodcastListViewAll, opts.ViewAll)
	s.prefs.SetBool(KeyPodcastListSections, opts.Sections)
}

// GetCoverSize returns the maximum cover thumbnail side in pixels
func (s *Settings) GetCoverSize() int {
	return clamp(s.prefs.IntWithFallback(KeyCoverSize, DefaultCoverSize), MinCoverSize, MaxCoverSize)
}

// SetCoverSize sets the maximum cover thumbnail side in pixels
func (s *Settings) SetCoverSize(side int) {
	s.prefs.SetInt(KeyCoverSize, clamp(side, MinCoverSize, MaxCoverSize))
}

// GetLanguage returns the configured language
func (s *Settings) GetLanguage() string {
	lang := s.prefs.StringWithFallback(KeyLanguage, "")
	if lang == "" {
		s.SetLanguage(DefaultLanguage)
		return DefaultLanguage
	}
	return lang
}

// SetLanguage sets the application language
func (s *Settings) SetLanguage(lang string) {
	s.prefs.SetString(KeyLanguage, lang)
}

// GetLogLevel returns the configured log level name
func (s *Settings) GetLogLevel() string {
	return s.prefs.StringWithFallback(KeyLogLevel, DefaultLogLevel)
}

// SetLogLevel sets the log level name
func (s *Settings) SetLogLevel(level string) {
	s.prefs.SetString(KeyLogLevel, level)
}

// GetAutoRevealOnComplete returns whether to auto-reveal completed downloads
func (s *Settings) GetAutoRevealOnComplete() bool {
	return s.prefs.BoolWithFallback(KeyAutoRevealComplete, DefaultAutoRevealComplete)
}

// SetAutoRevealOnComplete sets whether to auto-reveal completed downloads
func (s *Settings) SetAutoRevealOnComplete(autoReveal bool) {
	s.prefs.SetBool(KeyAutoRevealComplete, autoReveal)
}

// GetLanguageOptions returns available language options
func (s *Settings) GetLanguageOptions() map[string]string {
	return map[string]string{
		"system": "System Default",
		"en":     "English",
		"ru":     "Русский",
		"pt":     "Português",
	}
}

// GetLogLevelOptions returns the accepted log level names
func (s *Settings) GetLogLevelOptions() []string {
	return []string{"debug", "info", "warn", "error"}
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
