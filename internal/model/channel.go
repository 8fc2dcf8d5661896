package model

// AllEpisodesCoverID identifies the cover of the "All episodes" aggregate
const AllEpisodesCoverID = "podshelf:all-episodes"

// Channel is anything that can be shown as a row of the podcast list:
// a real podcast or the synthetic "All episodes" aggregate.
type Channel interface {
	URL() string
	Title() string
	Description() string
	Section() string
	Paused() bool
	CoverID() string
	Statistics() Statistics
	AllEpisodes() []*Episode
	// Aggregate reports whether the channel spans several podcasts
	Aggregate() bool
	CoverThumb() []byte
	SetCoverThumb(data []byte)
}

// PodcastChannel adapts a *Podcast to Channel
type PodcastChannel struct {
	p *Podcast
}

func (c PodcastChannel) URL() string { return c.p.URL }
func (c PodcastChannel) Title() string { return c.p.Title }
func (c PodcastChannel) Description() string { return c.p.Description }
func (c PodcastChannel) Section() string { return c.p.GroupBy() }
func (c PodcastChannel) Paused() bool { return c.p.PauseSubscription }
func (c PodcastChannel) CoverID() string { return c.p.URL }
func (c PodcastChannel) Statistics() Statistics { return c.p.Statistics() }
func (c PodcastChannel) AllEpisodes() []*Episode { return c.p.AllEpisodes() }
func (c PodcastChannel) Aggregate() bool { return false }
func (c PodcastChannel) CoverThumb() []byte { return c.p.CoverThumb }
func (c PodcastChannel) SetCoverThumb(b []byte) { c.p.CoverThumb = b }

// Podcast returns the adapted podcast
func (c PodcastChannel) Podcast() *Podcast { return c.p }

// PodcastOf returns the podcast behind c, if c is a real podcast
func PodcastOf(c Channel) (*Podcast, bool) {
	pc, ok := c.(PodcastChannel)
	if !ok || pc.p == nil {
		return nil, false
	}
	return pc.p, true
}

// AllEpisodes aggregates every episode of a set of podcasts
type AllEpisodes struct {
	Podcasts []*Podcast
	Name     string
	Summary  string
}

// NewAllEpisodes creates the aggregate over podcasts
func NewAllEpisodes(podcasts []*Podcast) *AllEpisodes {
	return &AllEpisodes{
		Podcasts: podcasts,
		Name:     "All episodes",
		Summary:  "from all podcasts",
	}
}

func (a *AllEpisodes) URL() string { return "" }
func (a *AllEpisodes) Title() string { return a.Name }
func (a *AllEpisodes) Description() string { return a.Summary }
func (a *AllEpisodes) Section() string { return "" }
func (a *AllEpisodes) Paused() bool { return false }
func (a *AllEpisodes) CoverID() string { return AllEpisodesCoverID }
func (a *AllEpisodes) Aggregate() bool { return true }
func (a *AllEpisodes) CoverThumb() []byte { return nil }
func (a *AllEpisodes) SetCoverThumb([]byte) {}

// Statistics sums the statistics of all podcasts
func (a *AllEpisodes) Statistics() Statistics {
	var s Statistics
	for _, p := range a.Podcasts {
		s = s.Add(p.Statistics())
	}
	return s
}

// AllEpisodes returns every episode of every podcast, newest first
func (a *AllEpisodes) AllEpisodes() []*Episode {
	var all []*Episode
	for _, p := range a.Podcasts {
		all = append(all, p.AllEpisodes()...)
	}
	return SortEpisodesByPubdate(all, true)
}
