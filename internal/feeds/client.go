package feeds

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/ytget/podshelf/internal/model"
)

// MaxFeedSize bounds the feed document read from the network
const MaxFeedSize = 20 * 1024 * 1024

// UserAgent is sent with every feed request
const UserAgent = "podshelf/1.0 (podcast client)"

// ErrPaused is returned by Refresh for podcasts with paused subscriptions
var ErrPaused = errors.New("subscription is paused")

// Store receives refreshed feed data
type Store interface {
	UpdatePodcast(ctx context.Context, p *model.Podcast) error
	MergeEpisodes(ctx context.Context, p *model.Podcast, episodes []*model.Episode) (int, error)
}

// Client fetches feeds over HTTP
type Client struct {
	http *http.Client
}

// NewClient creates a client; a nil httpClient uses a 30 second timeout
func NewClient(httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	return &Client{http: httpClient}
}

// Fetch downloads and parses the feed at url
func (c *Client) Fetch(ctx context.Context, url string) (*Feed, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", UserAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch feed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, MaxFeedSize+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read feed: %w", err)
	}
	if int64(len(body)) > MaxFeedSize {
		return nil, fmt.Errorf("feed too large (exceeds %d bytes)", MaxFeedSize)
	}

	return Parse(url, body)
}

// Subscribe fetches a new feed and returns its podcast with the episodes
// attached
func (c *Client) Subscribe(ctx context.Context, url string) (*model.Podcast, error) {
	feed, err := c.Fetch(ctx, url)
	if err != nil {
		return nil, err
	}
	for _, e := range feed.Episodes {
		feed.Podcast.AddEpisode(e)
	}
	log.Info().Str("url", url).Str("title", feed.Podcast.Title).Int("episodes", len(feed.Episodes)).Msg("subscribed")
	return feed.Podcast, nil
}

// Refresh fetches the feed of p, copies changed metadata into p, and
// returns the feed's episodes for merging
func (c *Client) Refresh(ctx context.Context, p *model.Podcast) ([]*model.Episode, error) {
	if p.PauseSubscription {
		return nil, ErrPaused
	}
	feed, err := c.Fetch(ctx, p.URL)
	if err != nil {
		return nil, fmt.Errorf("refresh %s: %w", p.URL, err)
	}

	p.Title = coalesce(feed.Podcast.Title, p.Title)
	p.Description = coalesce(feed.Podcast.Description, p.Description)
	p.Link = coalesce(feed.Podcast.Link, p.Link)
	p.CoverURL = coalesce(feed.Podcast.CoverURL, p.CoverURL)
	return feed.Episodes, nil
}

// Update refreshes p and stores the result, returning the number of new
// episodes
func (c *Client) Update(ctx context.Context, store Store, p *model.Podcast) (int, error) {
	episodes, err := c.Refresh(ctx, p)
	if err != nil {
		return 0, err
	}
	if err := store.UpdatePodcast(ctx, p); err != nil {
		return 0, fmt.Errorf("store podcast %s: %w", p.URL, err)
	}
	added, err := store.MergeEpisodes(ctx, p, episodes)
	if err != nil {
		return 0, fmt.Errorf("store episodes %s: %w", p.URL, err)
	}
	log.Debug().Str("url", p.URL).Int("new", added).Msg("podcast refreshed")
	return added, nil
}

// UpdateAll refreshes every unpaused podcast, logging per-podcast failures
// and returning the total number of new episodes with the first error
func (c *Client) UpdateAll(ctx context.Context, store Store, podcasts []*model.Podcast) (int, error) {
	var (
		total    int
		firstErr error
	)
	for _, p := range podcasts {
		if err := ctx.Err(); err != nil {
			return total, err
		}
		added, err := c.Update(ctx, store, p)
		switch {
		case errors.Is(err, ErrPaused):
			continue
		case err != nil:
			log.Warn().Err(err).Str("url", p.URL).Msg("feed update failed")
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		total += added
	}
	return total, firstErr
}
