package main

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/ytget/podshelf/internal/config"
	"github.com/ytget/podshelf/internal/coverart"
	"github.com/ytget/podshelf/internal/feeds"
	"github.com/ytget/podshelf/internal/library"
	"github.com/ytget/podshelf/internal/logging"
	"github.com/ytget/podshelf/internal/platform"
)

const httpTimeout = 30 * time.Second

type commandContext struct {
	configFlag   *string
	logLevelFlag *string

	settingsOnce sync.Once
	prefs        *config.FilePreferences
	settings     *config.Settings
	settingsErr  error

	httpClient *http.Client
}

func newCommandContext(configFlag, logLevelFlag *string) *commandContext {
	return &commandContext{
		configFlag:   configFlag,
		logLevelFlag: logLevelFlag,
		httpClient:   &http.Client{Timeout: httpTimeout},
	}
}

func (c *commandContext) ensureSettings() (*config.Settings, error) {
	c.settingsOnce.Do(func() {
		path := ""
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		if path == "" {
			var err error
			if path, err = config.DefaultConfigPath(); err != nil {
				c.settingsErr = err
				return
			}
		}

		prefs, err := config.LoadFile(path)
		if err != nil {
			c.settingsErr = err
			return
		}
		c.prefs = prefs
		c.settings = config.NewSettingsFromPreferences(prefs)

		level := c.settings.GetLogLevel()
		if c.logLevelFlag != nil && strings.TrimSpace(*c.logLevelFlag) != "" {
			level = strings.TrimSpace(*c.logLevelFlag)
		}
		if err := logging.Setup(level, os.Stderr); err != nil {
			log.Warn().Err(err).Msg("falling back to info logging")
		}
	})
	return c.settings, c.settingsErr
}

// withLibrary opens the library for the duration of fn
func (c *commandContext) withLibrary(fn func(*library.Library) error) error {
	settings, err := c.ensureSettings()
	if err != nil {
		return err
	}
	lib, err := library.Open(settings.GetLibraryPath(), settings.GetDownloadDirectory())
	if err != nil {
		return err
	}
	defer func() {
		if err := lib.Close(); err != nil {
			log.Warn().Err(err).Msg("could not close library")
		}
	}()
	return fn(lib)
}

func (c *commandContext) feeds() *feeds.Client {
	return feeds.NewClient(c.httpClient)
}

func (c *commandContext) covers() (*coverart.Store, error) {
	dir, err := platform.GetDataDir()
	if err != nil {
		return nil, err
	}
	return coverart.NewStore(filepath.Join(dir, platform.CoversDirName), c.httpClient), nil
}

func (c *commandContext) saveSettings() error {
	if c.prefs == nil {
		return nil
	}
	return c.prefs.Save()
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}

func yesNo(value bool) string {
	if value {
		return "yes"
	}
	return "no"
}
