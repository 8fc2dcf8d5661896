package model

import (
	"strings"
	"sync"
)

// Podcast represents a feed subscription and its episodes
type Podcast struct {
	ID                int64
	URL               string
	Title             string
	Description       string
	Link              string
	Section           string
	CoverURL          string
	CoverThumb        []byte // PNG thumbnail persisted by the library
	PauseSubscription bool
	DownloadDir       string
	Episodes          []*Episode
	mu                sync.RWMutex
}

// NewPodcast creates a new podcast
func NewPodcast(url, title string) *Podcast {
	return &Podcast{
		URL:      url,
		Title:    title,
		Episodes: make([]*Episode, 0),
	}
}

// AddEpisode appends an episode and links it back to the podcast.
// An episode with an already known URL replaces the existing one.
func (p *Podcast) AddEpisode(e *Episode) {
	p.mu.Lock()
	defer p.mu.Unlock()

	e.Podcast = p
	e.PodcastID = p.ID
	for i, existing := range p.Episodes {
		if existing.URL == e.URL {
			p.Episodes[i] = e
			return
		}
	}
	p.Episodes = append(p.Episodes, e)
}

// RemoveEpisode removes the episode with the given URL
func (p *Podcast) RemoveEpisode(url string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	for i, e := range p.Episodes {
		if e.URL == url {
			p.Episodes = append(p.Episodes[:i], p.Episodes[i+1:]...)
			return true
		}
	}
	return false
}

// FindEpisode returns the episode with the given URL
func (p *Podcast) FindEpisode(url string) (*Episode, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	for _, e := range p.Episodes {
		if e.URL == url {
			return e, true
		}
	}
	return nil, false
}

// UpdateEpisodeState sets the state of the episode with the given URL
func (p *Podcast) UpdateEpisodeState(url string, state EpisodeState) bool {
	e, ok := p.FindEpisode(url)
	if !ok {
		return false
	}
	p.mu.Lock()
	e.State = state
	p.mu.Unlock()
	return true
}

// Statistics computes the episode counts of this podcast
func (p *Podcast) Statistics() Statistics {
	p.mu.RLock()
	defer p.mu.RUnlock()

	var s Statistics
	for _, e := range p.Episodes {
		s.CountEpisode(e)
	}
	return s
}

// AllEpisodes returns the episodes newest first
func (p *Podcast) AllEpisodes() []*Episode {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return SortEpisodesByPubdate(p.Episodes, true)
}

// SortKey returns the key podcasts are ordered by within a section
func (p *Podcast) SortKey() string {
	key := strings.ToLower(strings.TrimSpace(p.Title))
	key = strings.TrimPrefix(key, "the ")
	return strings.TrimSpace(key)
}

// GroupBy returns the section the podcast is listed under. Podcasts without
// an explicit section are grouped by the dominant media type of their episodes.
func (p *Podcast) GroupBy() string {
	if p.Section != "" {
		return p.Section
	}

	p.mu.RLock()
	defer p.mu.RUnlock()

	video := 0
	for _, e := range p.Episodes {
		if e.FileType() == "video" {
			video++
		}
	}
	if video > 0 && video*2 >= len(p.Episodes) {
		return "video"
	}
	return "audio"
}

// Channel returns the list-facing view of this podcast
func (p *Podcast) Channel() Channel {
	return PodcastChannel{p: p}
}
