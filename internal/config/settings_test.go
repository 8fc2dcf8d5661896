package config

import (
	"path/filepath"
	"testing"

	"fyne.io/fyne/v2/test"

	"github.com/ytget/podshelf/internal/listmodel"
	"github.com/ytget/podshelf/internal/platform"
)

func TestNewSettings(t *testing.T) {
	app := test.NewApp()
	settings := NewSettings(app)

	if settings.prefs != app.Preferences() {
		t.Error("Settings should use the app preferences")
	}
}

func TestLibraryPath(t *testing.T) {
	settings := NewSettings(test.NewApp())

	if got := settings.GetLibraryPath(); filepath.Base(got) != platform.LibraryFileName {
		t.Errorf("default library path %q should end with %q", got, platform.LibraryFileName)
	}

	settings.SetLibraryPath("/data/podcasts.db")
	if got := settings.GetLibraryPath(); got != "/data/podcasts.db" {
		t.Errorf("Expected library path /data/podcasts.db, got %s", got)
	}
}

func TestDownloadDirectory(t *testing.T) {
	settings := NewSettings(test.NewApp())

	// Test default value
	dir := settings.GetDownloadDirectory()
	if dir == "" {
		t.Error("Download directory should not be empty")
	}

	// Test setting custom value
	customDir := "/custom/podcasts"
	settings.SetDownloadDirectory(customDir)

	retrievedDir := settings.GetDownloadDirectory()
	if retrievedDir != customDir {
		t.Errorf("Expected download directory %s, got %s", customDir, retrievedDir)
	}
}

func TestMaxParallelDownloads(t *testing.T) {
	settings := NewSettings(test.NewApp())

	// Test default value
	maxParallel := settings.GetMaxParallelDownloads()
	if maxParallel != DefaultMaxParallel {
		t.Errorf("Expected default max parallel %d, got %d", DefaultMaxParallel, maxParallel)
	}

	settings.SetMaxParallelDownloads(5)
	if got := settings.GetMaxParallelDownloads(); got != 5 {
		t.Errorf("Expected max parallel 5, got %d", got)
	}

	// Test boundary values
	settings.SetMaxParallelDownloads(0)
	if settings.GetMaxParallelDownloads() != 1 {
		t.Error("Max parallel should be clamped to minimum 1")
	}

	settings.SetMaxParallelDownloads(15)
	if settings.GetMaxParallelDownloads() != MaxParallelLimit {
		t.Errorf("Max parallel should be clamped to maximum %d", MaxParallelLimit)
	}
}

func TestViewMode(t *testing.T) {
	app := test.NewApp()
	settings := NewSettings(app)

	if got := settings.GetViewMode(); got != DefaultViewMode {
		t.Errorf("Expected default view mode %s, got %s", DefaultViewMode, got)
	}

	settings.SetViewMode(listmodel.ViewUnplayed)
	if got := settings.GetViewMode(); got != listmodel.ViewUnplayed {
		t.Errorf("Expected view mode unplayed, got %s", got)
	}

	app.Preferences().SetString(KeyViewMode, "bogus")
	if got := settings.GetViewMode(); got != DefaultViewMode {
		t.Errorf("Unknown view mode should fall back to %s, got %s", DefaultViewMode, got)
	}
}

func TestEpisodeSort(t *testing.T) {
	settings := NewSettings(test.NewApp())

	key, desc := settings.GetEpisodeSort()
	if key != DefaultEpisodeSort || desc != DefaultEpisodeSortDescending {
		t.Errorf("default sort = (%s, %v)", key, desc)
	}

	settings.SetEpisodeSort(listmodel.SortTitle, false)
	key, desc = settings.GetEpisodeSort()
	if key != listmodel.SortTitle || desc {
		t.Errorf("sort = (%s, %v), want (title, false)", key, desc)
	}
}

func TestListOptions(t *testing.T) {
	settings := NewSettings(test.NewApp())

	opts := settings.GetPodcastListOptions()
	if opts.ViewAll != DefaultPodcastListViewAll || opts.Sections != DefaultPodcastListSections {
		t.Errorf("default options = %+v", opts)
	}
	if !settings.GetEpisodeListDescriptions() {
		t.Error("descriptions should be shown by default")
	}

	settings.SetPodcastListOptions(listmodel.PodcastListOptions{ViewAll: false, Sections: true})
	settings.SetEpisodeListDescriptions(false)

	opts = settings.GetPodcastListOptions()
	if opts.ViewAll || !opts.Sections {
		t.Errorf("options = %+v, want {ViewAll:false Sections:true}", opts)
	}
	if settings.GetEpisodeListDescriptions() {
		t.Error("descriptions should be hidden after SetEpisodeListDescriptions(false)")
	}
}

func TestCoverSize(t *testing.T) {
	settings := NewSettings(test.NewApp())

	tests := []struct {
		set  int
		want int
	}{
		{64, 64},
		{1, MinCoverSize},
		{4096, MaxCoverSize},
	}

	if got := settings.GetCoverSize(); got != DefaultCoverSize {
		t.Errorf("default cover size = %d, want %d", got, DefaultCoverSize)
	}
	for _, tt := range tests {
		settings.SetCoverSize(tt.set)
		if got := settings.GetCoverSize(); got != tt.want {
			t.Errorf("SetCoverSize(%d) -> %d, want %d", tt.set, got, tt.want)
		}
	}
}

func TestLanguage(t *testing.T) {
	settings := NewSettings(test.NewApp())

	if lang := settings.GetLanguage(); lang != DefaultLanguage {
		t.Errorf("Expected default language %s, got %s", DefaultLanguage, lang)
	}

	settings.SetLanguage("en")
	if got := settings.GetLanguage(); got != "en" {
		t.Errorf("Expected language 'en', got %s", got)
	}
}

func TestLogLevel(t *testing.T) {
	settings := NewSettings(test.NewApp())

	if got := settings.GetLogLevel(); got != DefaultLogLevel {
		t.Errorf("Expected default log level %s, got %s", DefaultLogLevel, got)
	}
	settings.SetLogLevel("debug")
	if got := settings.GetLogLevel(); got != "debug" {
		t.Errorf("Expected log level debug, got %s", got)
	}
	if len(settings.GetLogLevelOptions()) != 4 {
		t.Errorf("Expected 4 log level options, got %v", settings.GetLogLevelOptions())
	}
}

func TestAutoRevealOnComplete(t *testing.T) {
	settings := NewSettings(test.NewApp())

	if settings.GetAutoRevealOnComplete() != DefaultAutoRevealComplete {
		t.Error("unexpected default for auto reveal")
	}
	settings.SetAutoRevealOnComplete(true)
	if !settings.GetAutoRevealOnComplete() {
		t.Error("auto reveal should be enabled")
	}
}

func TestGetLanguageOptions(t *testing.T) {
	settings := NewSettings(test.NewApp())

	options := settings.GetLanguageOptions()

	expectedLangs := []string{"system", "en", "ru", "pt"}
	for _, lang := range expectedLangs {
		if _, exists := options[lang]; !exists {
			t.Errorf("Expected language option '%s' to exist", lang)
		}
	}

	if len(options) != len(expectedLangs) {
		t.Errorf("Expected %d language options, got %d", len(expectedLangs), len(options))
	}
}
