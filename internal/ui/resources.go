package ui

import (
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"

	"github.com/ytget/podshelf/internal/listmodel"
)

const (
	AppIcon = "podshelf.png"
)

// LoadLogoResource loads the logo from file path
func LoadLogoResource() (fyne.Resource, error) {
	return fyne.LoadResourceFromPath(AppIcon)
}

// statusIconResource maps the icon names produced by listmodel onto theme
// resources. It returns nil for rows that show no status icon.
func statusIconResource(name string) fyne.Resource {
	switch {
	case name == "":
		return nil
	case name == listmodel.IconDeleted:
		return theme.DeleteIcon()
	case strings.HasPrefix(name, "gpodder-progress-"):
		return theme.DownloadIcon()
	case strings.HasPrefix(name, "audio-"):
		return theme.MediaMusicIcon()
	case strings.HasPrefix(name, "video-"):
		return theme.MediaVideoIcon()
	case strings.HasPrefix(name, "image-"):
		return theme.MediaPhotoIcon()
	default:
		return theme.FileIcon()
	}
}
