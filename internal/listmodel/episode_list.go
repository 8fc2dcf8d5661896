package listmodel

import (
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/ytget/podshelf/internal/background"
	"github.com/ytget/podshelf/internal/model"
	"github.com/ytget/podshelf/internal/query"
	"github.com/ytget/podshelf/internal/rowstore"
)

// EpisodeSort selects the column the episode projection is ordered by
type EpisodeSort int

const (
	SortPublished EpisodeSort = iota
	SortTitle
	SortFileSize
	SortDuration
)

// String returns the string representation of EpisodeSort
func (s EpisodeSort) String() string {
	switch s {
	case SortTitle:
		return "title"
	case SortFileSize:
		return "size"
	case SortDuration:
		return "duration"
	default:
		return "published"
	}
}

// ParseEpisodeSort converts a name produced by String back to EpisodeSort
func ParseEpisodeSort(s string) EpisodeSort {
	for _, k := range []EpisodeSort{SortPublished, SortTitle, SortFileSize, SortDuration} {
		if strings.EqualFold(s, k.String()) {
			return k
		}
	}
	return SortPublished
}

// EpisodeList is the row model of the episode list
type EpisodeList struct {
	store    *rowstore.Store[EpisodeRow]
	filtered *rowstore.Projection[EpisodeRow]
	runner   *background.Runner[*model.Episode]
	fields   episodeFields

	viewMode   ViewMode
	searchTerm string
	search     query.Predicate // nil while the term failed to parse

	sortBy     EpisodeSort
	descending bool

	includeDescription bool
	onFilterChanged    func(hasEpisodes bool)
}

// NewEpisodeList creates an empty episode list. Background population runs
// on sched; onFilterChanged is called whenever the visible set may have
// changed.
func NewEpisodeList(sched background.Scheduler, onFilterChanged func(hasEpisodes bool)) *EpisodeList {
	if onFilterChanged == nil {
		onFilterChanged = func(bool) {}
	}

	l := &EpisodeList{
		store:           rowstore.New[EpisodeRow](),
		runner:          background.NewRunner[*model.Episode](sched, background.DefaultBudget),
		fields:          episodeFields{now: time.Now},
		viewMode:        ViewAll,
		sortBy:          SortPublished,
		descending:      true,
		onFilterChanged: onFilterChanged,
	}
	l.filtered = rowstore.NewProjection(l.store, l.visible)
	l.filtered.SetLess(l.less)
	return l
}

// SetIconResolver installs a lookup for file-specific status icons
func (l *EpisodeList) SetIconResolver(r IconResolver) {
	l.fields.icons = r
}

// SetClock replaces the time source used for dates and slice budgets
func (l *EpisodeList) SetClock(now func() time.Time) {
	l.fields.now = now
	l.runner.SetClock(now)
}

// Store returns the underlying row store
func (l *EpisodeList) Store() *rowstore.Store[EpisodeRow] { return l.store }

// Filtered returns the projection shown in the UI
func (l *EpisodeList) Filtered() *rowstore.Projection[EpisodeRow] { return l.filtered }

// HasEpisodes reports whether any row is visible with the current filter
func (l *EpisodeList) HasEpisodes() bool { return l.filtered.Len() > 0 }

// Busy reports whether a background population is in progress
func (l *EpisodeList) Busy() bool { return l.runner.Active() != nil }

// ViewMode returns the current view mode
func (l *EpisodeList) ViewMode() ViewMode { return l.viewMode }

// SetViewMode changes the view mode and refilters if it differs
func (l *EpisodeList) SetViewMode(m ViewMode) {
	if l.viewMode == m {
		return
	}
	l.viewMode = m
	l.filtered.Refilter()
	l.onFilterChanged(l.HasEpisodes())
}

// SearchTerm returns the current search term, "" when not searching
func (l *EpisodeList) SearchTerm() string { return l.searchTerm }

// SetSearchTerm changes the search term and refilters if it differs.
// An empty term ends the search.
func (l *EpisodeList) SetSearchTerm(term string) {
	if l.searchTerm == term {
		return
	}
	l.searchTerm = term
	l.search = nil
	if term != "" {
		pred, err := query.Parse(term)
		if err != nil {
			log.Debug().Err(err).Str("term", term).Msg("search term not understood, showing all episodes")
		} else {
			l.search = pred
		}
	}
	l.filtered.Refilter()
	l.onFilterChanged(l.HasEpisodes())
}

// SetSort orders the projection by key
func (l *EpisodeList) SetSort(key EpisodeSort, descending bool) {
	l.sortBy = key
	l.descending = descending
	l.filtered.SetLess(l.less)
}

// Sort returns the current sort key and direction
func (l *EpisodeList) Sort() (EpisodeSort, bool) { return l.sortBy, l.descending }

func (l *EpisodeList) visible(r *EpisodeRow) bool {
	if l.searchTerm != "" {
		if r.Episode == nil {
			return false
		}
		if l.search == nil {
			return true
		}
		ok, err := l.search.Match(r.Episode)
		if err != nil {
			return true
		}
		return ok
	}

	if l.viewMode == ViewAll {
		return true
	}
	return r.visibleIn(l.viewMode)
}

func (l *EpisodeList) less(a, b *EpisodeRow) bool {
	if l.descending {
		a, b = b, a
	}
	switch l.sortBy {
	case SortTitle:
		return strings.ToLower(a.Title) < strings.ToLower(b.Title)
	case SortFileSize:
		return a.FileSize < b.FileSize
	case SortDuration:
		return a.TotalTime < b.TotalTime
	default:
		return a.Published.Before(b.Published)
	}
}

// ReplaceFromChannel clears the list and populates it with the episodes of
// ch in the background. A nil channel leaves the list empty.
func (l *EpisodeList) ReplaceFromChannel(ch model.Channel, includeDescription bool) {
	l.runner.Cancel()

	l.fields.allEpisodesView = ch != nil && ch.Aggregate()

	var episodes []*model.Episode
	if ch != nil {
		episodes = ch.AllEpisodes()
	}

	rows := make([]EpisodeRow, len(episodes))
	l.store.Reset(rows)

	l.updateFromEpisodes(episodes, includeDescription)
}

func (l *EpisodeList) updateFromEpisodes(episodes []*model.Episode, includeDescription bool) {
	l.includeDescription = includeDescription
	l.runner.Start(episodes, func(index int, e *model.Episode) {
		if index >= l.store.Len() || e == nil {
			return
		}
		l.store.Update(index, func(r *EpisodeRow) {
			l.fields.baseFields(r, e)
			l.fields.update(r, e, includeDescription)
		})
	}, func() {
		l.onFilterChanged(l.HasEpisodes())
	})
}

// UpdateAll recomputes every row. Rows already written by a running
// population are merged with the entities it has not reached yet.
func (l *EpisodeList) UpdateAll(includeDescription bool) {
	var episodes []*model.Episode

	job := l.runner.Active()
	if job == nil {
		l.store.Each(func(_ int, r *EpisodeRow) bool {
			episodes = append(episodes, r.Episode)
			return true
		})
	} else {
		l.store.Each(func(i int, r *EpisodeRow) bool {
			if i >= job.Index() {
				return false
			}
			episodes = append(episodes, r.Episode)
			return true
		})
		episodes = append(episodes, job.Pending()...)
	}

	l.updateFromEpisodes(episodes, includeDescription)
}

// UpdateByURLs recomputes the rows of the given episode URLs
func (l *EpisodeList) UpdateByURLs(urls []string, includeDescription bool) {
	wanted := make(map[string]struct{}, len(urls))
	for _, u := range urls {
		wanted[u] = struct{}{}
	}

	var indexes []int
	l.store.Each(func(i int, r *EpisodeRow) bool {
		if _, ok := wanted[r.URL]; ok {
			indexes = append(indexes, i)
		}
		return true
	})
	for _, i := range indexes {
		l.UpdateRow(i, includeDescription)
	}
}

// UpdateByFilterIndex recomputes the row at a projection position
func (l *EpisodeList) UpdateByFilterIndex(pos int, includeDescription bool) {
	if pos < 0 || pos >= l.filtered.Len() {
		return
	}
	l.UpdateRow(l.filtered.ChildIndex(pos), includeDescription)
}

// UpdateRow recomputes the volatile fields of the row at store index i.
// Rows not yet bound to an episode are skipped.
func (l *EpisodeList) UpdateRow(i int, includeDescription bool) {
	if i < 0 || i >= l.store.Len() {
		return
	}
	e := l.store.At(i).Episode
	if e == nil {
		return
	}
	l.store.Update(i, func(r *EpisodeRow) {
		l.fields.update(r, e, includeDescription)
	})
}

// IndexOfURL returns the store index of the row for url
func (l *EpisodeList) IndexOfURL(url string) (int, bool) {
	return l.store.Find(func(r *EpisodeRow) bool { return r.URL == url })
}
