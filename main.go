package main

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"github.com/rs/zerolog/log"

	"github.com/ytget/podshelf/internal/config"
	"github.com/ytget/podshelf/internal/coverart"
	"github.com/ytget/podshelf/internal/download"
	"github.com/ytget/podshelf/internal/feeds"
	"github.com/ytget/podshelf/internal/library"
	"github.com/ytget/podshelf/internal/logging"
	"github.com/ytget/podshelf/internal/platform"
	"github.com/ytget/podshelf/internal/ui"
)

// Version is set during build via -ldflags "-X main.version=X.Y.Z"
var version = "dev"

const (
	AppID   = "com.ytget.podshelf"
	AppName = "Podshelf"

	WindowWidth  = 960
	WindowHeight = 640

	httpTimeout = 30 * time.Second
)

func main() {
	myApp := app.NewWithID(AppID)
	myApp.Settings().SetTheme(ui.NewCompactTheme())

	settings := config.NewSettings(myApp)
	if err := logging.Setup(settings.GetLogLevel(), os.Stderr); err != nil {
		log.Warn().Err(err).Msg("falling back to info logging")
	}
	log.Info().Str("version", version).Msg("podshelf starting")

	downloadsDir := settings.GetDownloadDirectory()
	if err := platform.CreateDirectoryIfNotExists(downloadsDir); err != nil {
		log.Warn().Err(err).Str("dir", downloadsDir).Msg("failed to ensure downloads dir")
	}

	lib, err := library.Open(settings.GetLibraryPath(), downloadsDir)
	if err != nil {
		log.Fatal().Err(err).Str("path", settings.GetLibraryPath()).Msg("could not open library")
	}
	defer func() {
		if err := lib.Close(); err != nil {
			log.Error().Err(err).Msg("could not close library")
		}
	}()

	dataDir, err := platform.GetDataDir()
	if err != nil {
		log.Fatal().Err(err).Msg("could not resolve data directory")
	}

	httpClient := &http.Client{Timeout: httpTimeout}
	downloadSvc := download.NewService(downloadsDir, settings.GetMaxParallelDownloads())

	windowTitle := fmt.Sprintf("%s v%s", AppName, version)
	myWindow := myApp.NewWindow(windowTitle)
	myWindow.Resize(fyne.NewSize(WindowWidth, WindowHeight))
	if icon, err := ui.LoadLogoResource(); err == nil {
		myWindow.SetIcon(icon)
	}

	ui.NewRootUI(myWindow, settings, ui.Services{
		Library:  lib,
		Feeds:    feeds.NewClient(httpClient),
		Covers:   coverart.NewStore(filepath.Join(dataDir, platform.CoversDirName), httpClient),
		Download: downloadSvc,
	})

	myWindow.ShowAndRun()
}
