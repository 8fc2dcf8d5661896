package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ytget/podshelf/internal/listmodel"
)

func TestLoadFile_Missing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", ConfigFileName)

	prefs, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if len(prefs.Keys()) != 0 {
		t.Errorf("Expected no keys, got %v", prefs.Keys())
	}
	if prefs.Path() != path {
		t.Errorf("Path() = %q, want %q", prefs.Path(), path)
	}
}

func TestLoadFile_Invalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), ConfigFileName)
	if err := os.WriteFile(path, []byte("this is = = not toml"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadFile(path); err == nil {
		t.Error("Expected parse error")
	}
}

func TestFilePreferences_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cfg", ConfigFileName)

	prefs, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	settings := NewSettingsFromPreferences(prefs)
	settings.SetDownloadDirectory("/srv/podcasts")
	settings.SetMaxParallelDownloads(4)
	settings.SetViewMode(listmodel.ViewDownloaded)
	settings.SetPodcastListOptions(listmodel.PodcastListOptions{ViewAll: true, Sections: false})

	if err := prefs.Save(); err != nil {
		t.Fatalf("Save: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read saved file: %v", err)
	}
	if !strings.Contains(string(data), KeyMaxParallel+" = 4") {
		t.Errorf("saved file missing max parallel entry:\n%s", data)
	}

	reloaded, err := LoadFile(path)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	again := NewSettingsFromPreferences(reloaded)

	if got := again.GetDownloadDirectory(); got != "/srv/podcasts" {
		t.Errorf("download dir = %q", got)
	}
	if got := again.GetMaxParallelDownloads(); got != 4 {
		t.Errorf("max parallel = %d, want 4", got)
	}
	if got := again.GetViewMode(); got != listmodel.ViewDownloaded {
		t.Errorf("view mode = %s", got)
	}
	if opts := again.GetPodcastListOptions(); !opts.ViewAll || opts.Sections {
		t.Errorf("options = %+v", opts)
	}
}

func TestFilePreferences_Fallbacks(t *testing.T) {
	prefs, err := LoadFile(filepath.Join(t.TempDir(), ConfigFileName))
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}

	prefs.SetString("name", "value")
	if got := prefs.IntWithFallback("name", 7); got != 7 {
		t.Errorf("IntWithFallback on string = %d, want fallback 7", got)
	}
	if got := prefs.BoolWithFallback("missing", true); !got {
		t.Error("BoolWithFallback(missing) should return fallback")
	}
	if got := prefs.StringWithFallback("missing", "fb"); got != "fb" {
		t.Errorf("StringWithFallback(missing) = %q", got)
	}
	if v, ok := prefs.Value("name"); !ok || v != "value" {
		t.Errorf("Value(name) = (%v, %v)", v, ok)
	}
}
