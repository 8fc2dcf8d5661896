package library

import (
	"database/sql"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"github.com/ytget/podshelf/internal/model"
)

func scanPodcasts(rows *sql.Rows) ([]*model.Podcast, error) {
	defer rows.Close()

	var podcasts []*model.Podcast
	for rows.Next() {
		var (
			p      = model.NewPodcast("", "")
			thumb  []byte
			paused int
		)
		if err := rows.Scan(
			&p.ID, &p.URL, &p.Title, &p.Description, &p.Link, &p.Section, &p.CoverURL, &thumb,
			&paused, &p.DownloadDir,
		); err != nil {
			return nil, fmt.Errorf("scan podcast: %w", err)
		}
		p.CoverThumb = thumb
		p.PauseSubscription = paused != 0
		podcasts = append(podcasts, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate podcasts: %w", err)
	}
	return podcasts, nil
}

func scanEpisodes(rows *sql.Rows) ([]*model.Episode, error) {
	defer rows.Close()

	var episodes []*model.Episode
	for rows.Next() {
		var (
			e                       model.Episode
			published, downloadedAt string
			state, isNew, archive   int
		)
		if err := rows.Scan(
			&e.ID, &e.PodcastID, &e.URL, &e.GUID, &e.Title, &e.Description, &e.Link, &published,
			&e.FileSize, &e.MimeType, &state, &isNew, &archive, &e.TotalTime, &e.CurrentPosition,
			&e.DownloadFilename, &downloadedAt,
		); err != nil {
			return nil, fmt.Errorf("scan episode: %w", err)
		}
		e.Published = parseTime(published)
		e.DownloadedAt = parseTime(downloadedAt)
		e.State = model.EpisodeState(state)
		e.IsNew = isNew != 0
		e.Archive = archive != 0
		episodes = append(episodes, &e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate episodes: %w", err)
	}
	return episodes, nil
}

func sortPodcasts(podcasts []*model.Podcast) {
	sort.SliceStable(podcasts, func(i, j int) bool {
		ki, kj := podcasts[i].SortKey(), podcasts[j].SortKey()
		if ki != kj {
			return ki < kj
		}
		return podcasts[i].URL < podcasts[j].URL
	})
}

// refreshMetadata copies feed-provided fields from src, keeping local state
func refreshMetadata(dst, src *model.Episode) {
	dst.GUID = firstNonEmpty(src.GUID, dst.GUID)
	dst.Title = firstNonEmpty(src.Title, dst.Title)
	dst.Description = firstNonEmpty(src.Description, dst.Description)
	dst.Link = firstNonEmpty(src.Link, dst.Link)
	if !src.Published.IsZero() {
		dst.Published = src.Published
	}
	if src.FileSize > 0 {
		dst.FileSize = src.FileSize
	}
	dst.MimeType = firstNonEmpty(src.MimeType, dst.MimeType)
	if src.TotalTime > 0 {
		dst.TotalTime = src.TotalTime
	}
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(timeLayout)
}

func parseTime(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	t, err := time.Parse(timeLayout, s)
	if err != nil {
		return time.Time{}
	}
	return t
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func nullBlob(b []byte) any {
	if len(b) == 0 {
		return nil
	}
	return b
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func isUniqueViolation(err error) bool {
	var sqliteErr *sqlite.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.Code() == sqlite3.SQLITE_CONSTRAINT_UNIQUE
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}
