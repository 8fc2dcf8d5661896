package model

import (
	"fmt"
	"html"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"time"
)

// NoDescription is shown when an episode carries no usable description text
const NoDescription = "No description available"

// Episode is a single entry of a podcast feed together with its local state
type Episode struct {
	ID               int64
	PodcastID        int64
	URL              string // enclosure URL, unique within the library
	GUID             string
	Title            string
	Description      string
	Link             string
	Published        time.Time
	FileSize         int64
	MimeType         string
	State            EpisodeState
	IsNew            bool
	Archive          bool // deletion prevented
	TotalTime        int  // seconds
	CurrentPosition  int  // seconds
	DownloadFilename string
	DownloadedAt     time.Time

	Podcast  *Podcast      // owning podcast, nil for detached episodes
	Download *DownloadTask // current download task, nil if none
}

var (
	htmlTagRe    = regexp.MustCompile(`(?s)<[^>]*>`)
	whitespaceRe = regexp.MustCompile(`\s+`)
)

// Downloading returns true while the episode has an unfinished download task
func (e *Episode) Downloading() bool {
	return e.Download != nil && !e.Download.Status.IsFinished()
}

// DownloadProgress returns the download progress in 0.0..1.0
func (e *Episode) DownloadProgress() float64 {
	if e.Download == nil {
		return 0
	}
	p := e.Download.Progress
	if p < 0 {
		return 0
	}
	if p > 1 {
		return 1
	}
	return p
}

// FileType classifies the enclosure as "audio", "video", "image" or "" (other)
func (e *Episode) FileType() string {
	if kind, _, ok := strings.Cut(strings.ToLower(e.MimeType), "/"); ok {
		switch kind {
		case "audio", "video", "image":
			return kind
		}
	}

	name := e.DownloadFilename
	if name == "" {
		name = e.URL
		if idx := strings.IndexAny(name, "?#"); idx >= 0 {
			name = name[:idx]
		}
	}

	switch strings.ToLower(filepath.Ext(name)) {
	case ".mp3", ".ogg", ".oga", ".opus", ".m4a", ".aac", ".flac", ".wav", ".wma":
		return "audio"
	case ".mp4", ".m4v", ".mkv", ".webm", ".mov", ".avi", ".ogv", ".wmv":
		return "video"
	case ".jpg", ".jpeg", ".png", ".gif", ".webp":
		return "image"
	}
	return ""
}

// LocalPath returns the path of the downloaded file, or "" if unknown
func (e *Episode) LocalPath() string {
	if e.DownloadFilename == "" || e.Podcast == nil || e.Podcast.DownloadDir == "" {
		return ""
	}
	return filepath.Join(e.Podcast.DownloadDir, e.DownloadFilename)
}

// FileExists reports whether the downloaded file is present on disk
func (e *Episode) FileExists() bool {
	path := e.LocalPath()
	if path == "" {
		return false
	}
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// TrimmedTitle returns the title with whitespace collapsed and the podcast
// title prefix removed when the episode title repeats it
func (e *Episode) TrimmedTitle() string {
	title := strings.TrimSpace(whitespaceRe.ReplaceAllString(e.Title, " "))
	if e.Podcast == nil || e.Podcast.Title == "" {
		return title
	}

	prefix := strings.TrimSpace(e.Podcast.Title)
	if len(title) > len(prefix) && strings.EqualFold(title[:len(prefix)], prefix) {
		rest := strings.TrimLeft(title[len(prefix):], " :-|–")
		if rest != "" {
			return rest
		}
	}
	return title
}

// OneLineDescription returns the description as plain text on a single line
func (e *Episode) OneLineDescription() string {
	text := html.UnescapeString(htmlTagRe.ReplaceAllString(e.Description, " "))
	text = strings.TrimSpace(whitespaceRe.ReplaceAllString(text, " "))
	if text == "" {
		return NoDescription
	}
	return text
}

// PlayInfoString returns "position / duration", the duration alone, or "-"
func (e *Episode) PlayInfoString() string {
	duration := FormatTime(e.TotalTime)
	if e.CurrentPosition > 0 && e.CurrentPosition != e.TotalTime {
		return fmt.Sprintf("%s / %s", FormatTime(e.CurrentPosition), duration)
	}
	if e.TotalTime > 0 {
		return duration
	}
	return "-"
}

// AgeDays returns the number of whole days since the episode was downloaded
func (e *Episode) AgeDays(now time.Time) int {
	if e.DownloadedAt.IsZero() || now.Before(e.DownloadedAt) {
		return 0
	}
	return int(now.Sub(e.DownloadedAt).Hours() / 24)
}

// AgeString returns how long ago the episode was downloaded, or "" if today
func (e *Episode) AgeString(now time.Time) string {
	days := e.AgeDays(now)
	switch {
	case days <= 0:
		return ""
	case days == 1:
		return "1 day"
	default:
		return fmt.Sprintf("%d days", days)
	}
}

// CutePubdate formats the publication date relative to now
func (e *Episode) CutePubdate(now time.Time) string {
	if e.Published.IsZero() {
		return "(unknown)"
	}

	pub := e.Published.In(now.Location())
	y, m, d := now.Date()
	today := time.Date(y, m, d, 0, 0, 0, 0, now.Location())
	day := time.Date(pub.Year(), pub.Month(), pub.Day(), 0, 0, 0, 0, now.Location())
	diff := int(today.Sub(day).Hours() / 24)

	switch {
	case diff == 0:
		return "Today"
	case diff == 1:
		return "Yesterday"
	case diff > 1 && diff < 7:
		return pub.Weekday().String()
	case pub.Year() == now.Year():
		return pub.Format("Jan 2")
	default:
		return pub.Format("Jan 2, 2006")
	}
}

// FormatTime renders seconds as MM:SS or H:MM:SS
func FormatTime(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	h := seconds / 3600
	m := (seconds % 3600) / 60
	s := seconds % 60
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%02d:%02d", m, s)
}

// SortEpisodesByPubdate returns a copy of episodes ordered by publication
// date, newest first when newestFirst is set
func SortEpisodesByPubdate(episodes []*Episode, newestFirst bool) []*Episode {
	sorted := make([]*Episode, len(episodes))
	copy(sorted, episodes)
	sort.SliceStable(sorted, func(i, j int) bool {
		if newestFirst {
			return sorted[i].Published.After(sorted[j].Published)
		}
		return sorted[i].Published.Before(sorted[j].Published)
	})
	return sorted
}
