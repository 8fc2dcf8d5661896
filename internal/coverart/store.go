package coverart

import (
	"context"
	"errors"
	"fmt"
	"image"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/ytget/podshelf/internal/model"
	"github.com/ytget/podshelf/internal/platform"
	"github.com/ytget/podshelf/internal/thumbs"
)

// MaxCoverSize bounds a downloaded cover file
const MaxCoverSize = 10 * 1024 * 1024

// ErrNoCoverURL is returned by Download for podcasts without cover art
var ErrNoCoverURL = errors.New("podcast has no cover url")

// Store is a directory of cover files keyed by podcast cover id
type Store struct {
	dir  string
	http *http.Client
}

// NewStore creates a store rooted at dir; a nil httpClient uses a 30
// second timeout
func NewStore(dir string, httpClient *http.Client) *Store {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	return &Store{dir: dir, http: httpClient}
}

// Path returns the file a cover id is stored in
func (s *Store) Path(coverID string) string {
	name := uuid.NewSHA1(uuid.NameSpaceURL, []byte(coverID)).String()
	return filepath.Join(s.dir, name)
}

// Cover loads the cover of ch. Missing local files are downloaded unless
// avoidDownloading is set, in which case (nil, nil) is returned. The
// aggregate channel never has a cover.
func (s *Store) Cover(ch model.Channel, avoidDownloading bool) (image.Image, error) {
	if ch.Aggregate() {
		return nil, nil
	}

	data, err := os.ReadFile(s.Path(ch.CoverID()))
	if errors.Is(err, os.ErrNotExist) {
		if avoidDownloading {
			return nil, nil
		}
		p, ok := model.PodcastOf(ch)
		if !ok {
			return nil, nil
		}
		if data, err = s.download(context.Background(), p); err != nil {
			return nil, err
		}
	} else if err != nil {
		return nil, fmt.Errorf("read cover: %w", err)
	}

	img, err := thumbs.Decode(data)
	if err != nil {
		return nil, fmt.Errorf("decode cover of %s: %w", ch.URL(), err)
	}
	return img, nil
}

// Download fetches the cover of p into the store and returns it decoded
func (s *Store) Download(ctx context.Context, p *model.Podcast) (image.Image, error) {
	data, err := s.download(ctx, p)
	if err != nil {
		return nil, err
	}
	img, err := thumbs.Decode(data)
	if err != nil {
		return nil, fmt.Errorf("decode cover of %s: %w", p.URL, err)
	}
	return img, nil
}

// Remove deletes the stored cover of a podcast
func (s *Store) Remove(coverID string) error {
	err := os.Remove(s.Path(coverID))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove cover: %w", err)
	}
	return nil
}

func (s *Store) download(ctx context.Context, p *model.Podcast) ([]byte, error) {
	if p.CoverURL == "" {
		return nil, ErrNoCoverURL
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.CoverURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	resp, err := s.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch cover: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}
	data, err := io.ReadAll(io.LimitReader(resp.Body, MaxCoverSize+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read cover: %w", err)
	}
	if int64(len(data)) > MaxCoverSize {
		return nil, fmt.Errorf("cover too large (exceeds %d bytes)", MaxCoverSize)
	}

	if err := platform.CreateDirectoryIfNotExists(s.dir); err != nil {
		return nil, fmt.Errorf("ensure covers dir: %w", err)
	}
	path := s.Path(p.URL)
	tmp := path + ".part"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return nil, fmt.Errorf("write cover: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return nil, fmt.Errorf("store cover: %w", err)
	}

	log.Debug().Str("podcast", p.URL).Int("bytes", len(data)).Msg("cover downloaded")
	return data, nil
}
