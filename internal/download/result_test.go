package download

import (
	"testing"
	"time"

	"github.com/ytget/podshelf/internal/model"
)

func TestFilename(t *testing.T) {
	tests := []struct {
		name    string
		episode model.Episode
		want    string
	}{
		{"title and url extension", model.Episode{Title: "Hello / World", URL: "https://x.org/a/b.MP3?x=1"}, "Hello _ World.mp3"},
		{"existing download name", model.Episode{Title: "t", URL: "https://x.org/b.mp3", DownloadFilename: "kept.ogg"}, "kept.ogg"},
		{"extension from mime", model.Episode{Title: "Talk", URL: "https://x.org/stream", MimeType: "audio/mpeg"}, "Talk.mp3"},
		{"url base without title", model.Episode{URL: "https://x.org/files/ep42.m4a"}, "ep42.m4a"},
		{"nothing usable", model.Episode{URL: "https://x.org/"}, "unnamed"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Filename(&tt.episode); got != tt.want {
				t.Errorf("Filename() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestApplyResult(t *testing.T) {
	finished := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name       string
		task       *model.DownloadTask
		wantChange bool
		wantState  model.EpisodeState
	}{
		{"nil task", nil, false, model.StateNormal},
		{"other episode", &model.DownloadTask{EpisodeURL: "other", Status: model.TaskStatusCompleted}, false, model.StateNormal},
		{"in progress", &model.DownloadTask{EpisodeURL: "u", Status: model.TaskStatusDownloading}, false, model.StateNormal},
		{"completed", &model.DownloadTask{EpisodeURL: "u", Status: model.TaskStatusCompleted, OutputPath: "/d/file.mp3", FinishedAt: finished, TotalBytes: 99}, true, model.StateDownloaded},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := &model.Episode{URL: "u"}
			if got := ApplyResult(e, tt.task); got != tt.wantChange {
				t.Errorf("ApplyResult() = %v, want %v", got, tt.wantChange)
			}
			if e.State != tt.wantState {
				t.Errorf("State = %v, want %v", e.State, tt.wantState)
			}
			if tt.wantChange {
				if e.DownloadFilename != "file.mp3" || !e.DownloadedAt.Equal(finished) || e.FileSize != 99 || !e.IsNew {
					t.Errorf("episode = {%q %v %d %v}", e.DownloadFilename, e.DownloadedAt, e.FileSize, e.IsNew)
				}
			}
		})
	}
}
