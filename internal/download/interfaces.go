package download

import (
	"github.com/ytget/podshelf/internal/model"
)

// Downloader defines the interface for the download service.
type Downloader interface {
	SetUpdateCallback(func(*model.DownloadTask))
	AddTask(e *model.Episode) (*model.DownloadTask, error)
	GetTask(id string) (*model.DownloadTask, bool)
	GetAllTasks() []*model.DownloadTask
	TaskForEpisode(episodeURL string) (*model.DownloadTask, bool)
	StopTask(id string) error
	PauseTask(id string) error
	ResumeTask(id string) error
	RemoveTask(id string) error

	// SetMaxParallelDownloads sets the maximum number of parallel downloads
	SetMaxParallelDownloads(max int)

	// SetDownloadDirectory sets the directory used for podcasts without one
	SetDownloadDirectory(dir string)
}

var _ Downloader = (*Service)(nil)
