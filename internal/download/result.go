package download

import (
	"net/url"
	"path"
	"path/filepath"
	"strings"

	"github.com/ytget/podshelf/internal/model"
	"github.com/ytget/podshelf/internal/platform"
)

// Filename returns the file name an episode is saved under: the existing
// download name, else the sanitized title with the enclosure's extension
func Filename(e *model.Episode) string {
	if e.DownloadFilename != "" {
		return e.DownloadFilename
	}

	ext := ""
	base := ""
	if u, err := url.Parse(e.URL); err == nil {
		base = path.Base(u.Path)
		ext = strings.ToLower(path.Ext(u.Path))
	}
	if base == "/" || base == "." {
		base = ""
	}
	if ext == "" {
		ext = platform.ExtensionForType(e.MimeType)
	}

	name := strings.TrimSpace(e.Title)
	if name == "" {
		name = strings.TrimSuffix(base, path.Ext(base))
	}
	return platform.SanitizeFilename(name) + ext
}

// ApplyResult attaches a task snapshot to its episode and records completed
// downloads. It reports whether the persisted episode state changed.
func ApplyResult(e *model.Episode, task *model.DownloadTask) bool {
	if e == nil || task == nil || task.EpisodeURL != e.URL {
		return false
	}

	e.Download = task
	if task.Status != model.TaskStatusCompleted {
		return false
	}

	e.State = model.StateDownloaded
	e.IsNew = true
	e.DownloadFilename = filepath.Base(task.OutputPath)
	e.DownloadedAt = task.FinishedAt
	if task.TotalBytes > 0 {
		e.FileSize = task.TotalBytes
	}
	return true
}
