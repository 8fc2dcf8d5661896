package library

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gofrs/flock"
	"github.com/rs/zerolog/log"
	_ "modernc.org/sqlite"

	"github.com/ytget/podshelf/internal/model"
	"github.com/ytget/podshelf/internal/platform"
)

var (
	// ErrLocked is returned by Open when another process holds the library
	ErrLocked = errors.New("library is locked by another process")

	// ErrNotFound is returned when a podcast URL is not subscribed
	ErrNotFound = errors.New("podcast not found")

	// ErrExists is returned by AddPodcast for an already subscribed URL
	ErrExists = errors.New("podcast already subscribed")
)

// timeLayout is fixed width so stored timestamps sort lexically
const timeLayout = "2006-01-02T15:04:05.000Z"

// Library is the SQLite-backed podcast store
type Library struct {
	db          *sql.DB
	path        string
	lock        *flock.Flock
	downloadDir string
}

// Open connects to the library database at path, creating it when missing,
// and applies pending migrations. Episode files of new podcasts are placed
// in per-podcast folders below downloadDir.
func Open(path, downloadDir string) (*Library, error) {
	if err := platform.CreateDirectoryIfNotExists(filepath.Dir(path)); err != nil {
		return nil, fmt.Errorf("ensure library dir: %w", err)
	}

	lock := flock.New(path + ".lock")
	locked, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("lock library: %w", err)
	}
	if !locked {
		return nil, ErrLocked
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		_ = lock.Unlock()
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	// foreign_keys is per connection
	db.SetMaxOpenConns(1)

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			_ = lock.Unlock()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	lib := &Library{db: db, path: path, lock: lock, downloadDir: downloadDir}
	if err := lib.applyMigrations(context.Background()); err != nil {
		_ = db.Close()
		_ = lock.Unlock()
		return nil, err
	}

	log.Debug().Str("path", path).Msg("library opened")
	return lib, nil
}

// Close closes the database and releases the lock
func (l *Library) Close() error {
	if l == nil || l.db == nil {
		return nil
	}
	err := l.db.Close()
	if l.lock != nil {
		if unlockErr := l.lock.Unlock(); unlockErr != nil && err == nil {
			err = fmt.Errorf("unlock library: %w", unlockErr)
		}
		_ = os.Remove(l.lock.Path())
	}
	return err
}

// Path returns the database file path
func (l *Library) Path() string { return l.path }

// DownloadDir returns the root directory for episode files
func (l *Library) DownloadDir() string { return l.downloadDir }

const podcastColumns = `id, url, title, description, link, section, cover_url, cover_thumb,
    pause_subscription, download_dir`

const episodeColumns = `id, podcast_id, url, guid, title, description, link, published,
    file_size, mime_type, state, is_new, archive, total_time, current_position,
    download_filename, downloaded_at`

// Podcasts loads every podcast with its episodes, ordered by sort key
func (l *Library) Podcasts(ctx context.Context) ([]*model.Podcast, error) {
	rows, err := l.db.QueryContext(ctx, "SELECT "+podcastColumns+" FROM podcasts")
	if err != nil {
		return nil, fmt.Errorf("query podcasts: %w", err)
	}
	podcasts, err := scanPodcasts(rows)
	if err != nil {
		return nil, err
	}

	byID := make(map[int64]*model.Podcast, len(podcasts))
	for _, p := range podcasts {
		byID[p.ID] = p
	}

	epRows, err := l.db.QueryContext(ctx, "SELECT "+episodeColumns+" FROM episodes ORDER BY podcast_id, published DESC")
	if err != nil {
		return nil, fmt.Errorf("query episodes: %w", err)
	}
	episodes, err := scanEpisodes(epRows)
	if err != nil {
		return nil, err
	}
	for _, e := range episodes {
		if p, ok := byID[e.PodcastID]; ok {
			e.Podcast = p
			p.Episodes = append(p.Episodes, e)
		}
	}

	sortPodcasts(podcasts)
	return podcasts, nil
}

// Podcast loads a single podcast with its episodes
func (l *Library) Podcast(ctx context.Context, url string) (*model.Podcast, error) {
	rows, err := l.db.QueryContext(ctx, "SELECT "+podcastColumns+" FROM podcasts WHERE url = ?", url)
	if err != nil {
		return nil, fmt.Errorf("query podcast: %w", err)
	}
	podcasts, err := scanPodcasts(rows)
	if err != nil {
		return nil, err
	}
	if len(podcasts) == 0 {
		return nil, ErrNotFound
	}
	p := podcasts[0]

	epRows, err := l.db.QueryContext(ctx, "SELECT "+episodeColumns+" FROM episodes WHERE podcast_id = ? ORDER BY published DESC", p.ID)
	if err != nil {
		return nil, fmt.Errorf("query episodes: %w", err)
	}
	episodes, err := scanEpisodes(epRows)
	if err != nil {
		return nil, err
	}
	for _, e := range episodes {
		e.Podcast = p
	}
	p.Episodes = episodes
	return p, nil
}

// AddPodcast inserts a new subscription and assigns p.ID. An empty
// DownloadDir is derived from the podcast title.
func (l *Library) AddPodcast(ctx context.Context, p *model.Podcast) error {
	if p.DownloadDir == "" && l.downloadDir != "" {
		p.DownloadDir = filepath.Join(l.downloadDir, platform.SanitizeFilename(firstNonEmpty(p.Title, p.URL)))
	}

	now := formatTime(time.Now())
	res, err := l.db.ExecContext(ctx,
		`INSERT INTO podcasts (
            url, title, description, link, section, cover_url, cover_thumb,
            pause_subscription, download_dir, created_at, updated_at
        ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.URL, p.Title, p.Description, p.Link, p.Section, p.CoverURL, nullBlob(p.CoverThumb),
		boolInt(p.PauseSubscription), p.DownloadDir, now, now,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrExists
		}
		return fmt.Errorf("insert podcast: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("podcast id: %w", err)
	}
	p.ID = id
	for _, e := range p.Episodes {
		e.PodcastID = id
	}
	return nil
}

// Subscribe stores a freshly fetched podcast together with the episodes
// attached to it, all of them marked new. It returns the number of stored
// episodes.
func (l *Library) Subscribe(ctx context.Context, p *model.Podcast) (int, error) {
	episodes := p.AllEpisodes()
	for _, e := range episodes {
		p.RemoveEpisode(e.URL)
	}

	if err := l.AddPodcast(ctx, p); err != nil {
		for _, e := range episodes {
			p.AddEpisode(e)
		}
		return 0, err
	}
	return l.MergeEpisodes(ctx, p, episodes)
}

// UpdatePodcast stores the feed metadata of p
func (l *Library) UpdatePodcast(ctx context.Context, p *model.Podcast) error {
	return l.expectOne(l.db.ExecContext(ctx,
		`UPDATE podcasts SET title = ?, description = ?, link = ?, cover_url = ?, updated_at = ?
        WHERE url = ?`,
		p.Title, p.Description, p.Link, p.CoverURL, formatTime(time.Now()), p.URL,
	))
}

// MergeEpisodes upserts feed episodes into p by enclosure URL. Known
// episodes get their feed metadata refreshed in place and keep their local
// state; unknown ones are stored as new and appended to p. It returns the
// number of added episodes.
func (l *Library) MergeEpisodes(ctx context.Context, p *model.Podcast, episodes []*model.Episode) (int, error) {
	if p.ID == 0 {
		return 0, fmt.Errorf("merge episodes: podcast %q has no id", p.URL)
	}

	tx, err := l.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin merge tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	type refresh struct {
		existing *model.Episode
		merged   model.Episode
	}
	var (
		added     []*model.Episode
		refreshed []refresh
	)
	for _, e := range episodes {
		if e.URL == "" {
			continue
		}
		if existing, ok := p.FindEpisode(e.URL); ok {
			merged := *existing
			refreshMetadata(&merged, e)
			if _, err := tx.ExecContext(ctx,
				`UPDATE episodes SET guid = ?, title = ?, description = ?, link = ?, published = ?,
                    file_size = ?, mime_type = ?, total_time = ?
                WHERE id = ?`,
				merged.GUID, merged.Title, merged.Description, merged.Link, formatTime(merged.Published),
				merged.FileSize, merged.MimeType, merged.TotalTime, merged.ID,
			); err != nil {
				return 0, fmt.Errorf("update episode %s: %w", e.URL, err)
			}
			refreshed = append(refreshed, refresh{existing: existing, merged: merged})
			continue
		}

		e.IsNew = true
		e.State = model.StateNormal
		res, err := tx.ExecContext(ctx,
			`INSERT INTO episodes (
                podcast_id, url, guid, title, description, link, published, file_size,
                mime_type, state, is_new, archive, total_time
            ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, 1, 0, ?)
            ON CONFLICT (podcast_id, url) DO NOTHING`,
			p.ID, e.URL, e.GUID, e.Title, e.Description, e.Link, formatTime(e.Published), e.FileSize,
			e.MimeType, int(e.State), e.TotalTime,
		)
		if err != nil {
			return 0, fmt.Errorf("insert episode %s: %w", e.URL, err)
		}
		if n, _ := res.RowsAffected(); n == 0 {
			continue
		}
		if e.ID, err = res.LastInsertId(); err != nil {
			return 0, fmt.Errorf("episode id: %w", err)
		}
		added = append(added, e)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit merge: %w", err)
	}

	for _, r := range refreshed {
		*r.existing = r.merged
	}
	for _, e := range added {
		p.AddEpisode(e)
	}
	log.Debug().Str("podcast", p.URL).Int("added", len(added)).Int("seen", len(episodes)).Msg("episodes merged")
	return len(added), nil
}

// SaveEpisode stores the local state of e
func (l *Library) SaveEpisode(ctx context.Context, e *model.Episode) error {
	res, err := l.db.ExecContext(ctx,
		`UPDATE episodes SET state = ?, is_new = ?, archive = ?, total_time = ?, current_position = ?,
            download_filename = ?, downloaded_at = ?
        WHERE id = ?`,
		int(e.State), boolInt(e.IsNew), boolInt(e.Archive), e.TotalTime, e.CurrentPosition,
		e.DownloadFilename, formatTime(e.DownloadedAt), e.ID,
	)
	if err != nil {
		return fmt.Errorf("save episode %s: %w", e.URL, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("save episode %s: %w", e.URL, ErrNotFound)
	}
	return nil
}

// SaveCoverThumb stores the encoded cover thumbnail; nil data clears it
func (l *Library) SaveCoverThumb(url string, data []byte) error {
	return l.expectOne(l.db.ExecContext(context.Background(),
		"UPDATE podcasts SET cover_thumb = ? WHERE url = ?", nullBlob(data), url))
}

// SetSection moves the podcast into a user-defined section
func (l *Library) SetSection(ctx context.Context, url, section string) error {
	return l.expectOne(l.db.ExecContext(ctx,
		"UPDATE podcasts SET section = ?, updated_at = ? WHERE url = ?",
		strings.TrimSpace(section), formatTime(time.Now()), url))
}

// SetPaused pauses or resumes feed updates for the podcast
func (l *Library) SetPaused(ctx context.Context, url string, paused bool) error {
	return l.expectOne(l.db.ExecContext(ctx,
		"UPDATE podcasts SET pause_subscription = ?, updated_at = ? WHERE url = ?",
		boolInt(paused), formatTime(time.Now()), url))
}

// RemovePodcast deletes the podcast and all of its episodes
func (l *Library) RemovePodcast(ctx context.Context, url string) error {
	return l.expectOne(l.db.ExecContext(ctx, "DELETE FROM podcasts WHERE url = ?", url))
}

// Statistics counts episodes over the whole library
func (l *Library) Statistics(ctx context.Context) (model.Statistics, error) {
	var s model.Statistics
	row := l.db.QueryRowContext(ctx,
		`SELECT COUNT(1),
            COALESCE(SUM(state = ?), 0),
            COALESCE(SUM(state = ? AND is_new = 1), 0),
            COALESCE(SUM(state = ?), 0),
            COALESCE(SUM(state = ? AND is_new = 1), 0)
        FROM episodes`,
		int(model.StateDeleted), int(model.StateNormal), int(model.StateDownloaded), int(model.StateDownloaded),
	)
	if err := row.Scan(&s.Total, &s.Deleted, &s.New, &s.Downloaded, &s.Unplayed); err != nil {
		return model.Statistics{}, fmt.Errorf("scan statistics: %w", err)
	}
	return s, nil
}

func (l *Library) expectOne(res sql.Result, err error) error {
	if err != nil {
		return fmt.Errorf("update podcast: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
