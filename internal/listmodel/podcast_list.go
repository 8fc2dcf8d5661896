package listmodel

import (
	"image"
	"sort"
	"strings"

	"golang.org/x/text/cases"

	"github.com/ytget/podshelf/internal/model"
	"github.com/ytget/podshelf/internal/rowstore"
)

// SectionHeaderURL is the URL column value of section header rows
const SectionHeaderURL = "-"

// PausedDescription replaces the description of paused subscriptions
const PausedDescription = "Subscription paused"

// PodcastListOptions controls the layout built by SetChannels
type PodcastListOptions struct {
	// ViewAll adds the "All episodes" aggregate as the first row
	ViewAll bool
	// Sections groups podcasts under section header rows
	Sections bool
}

// PodcastList is the row model of the podcast list
type PodcastList struct {
	store    *rowstore.Store[PodcastRow]
	filtered *rowstore.Projection[PodcastRow]
	covers   *CoverLoader

	viewMode   ViewMode
	searchTerm string
}

// NewPodcastList creates an empty podcast list; covers may be nil
func NewPodcastList(covers *CoverLoader) *PodcastList {
	l := &PodcastList{
		store:    rowstore.New[PodcastRow](),
		covers:   covers,
		viewMode: viewUnset,
	}
	l.filtered = rowstore.NewProjection(l.store, l.visible)
	return l
}

// Store returns the underlying row store
func (l *PodcastList) Store() *rowstore.Store[PodcastRow] { return l.store }

// Filtered returns the projection shown in the UI
func (l *PodcastList) Filtered() *rowstore.Projection[PodcastRow] { return l.filtered }

// ViewMode returns the current view mode
func (l *PodcastList) ViewMode() ViewMode { return l.viewMode }

// SetViewMode changes the view mode and refilters if it differs
func (l *PodcastList) SetViewMode(m ViewMode) {
	if l.viewMode == m {
		return
	}
	l.viewMode = m
	l.filtered.Refilter()
}

// SearchTerm returns the current search term, "" when not searching
func (l *PodcastList) SearchTerm() string { return l.searchTerm }

// SetSearchTerm changes the search term and refilters if it differs
func (l *PodcastList) SetSearchTerm(term string) {
	if l.searchTerm == term {
		return
	}
	l.searchTerm = term
	l.filtered.Refilter()
}

// SetMaxImageSize changes the cover size and drops all cached covers
func (l *PodcastList) SetMaxImageSize(side int) {
	if l.covers != nil {
		l.covers.SetMaxSide(side)
	}
}

func (l *PodcastList) visible(r *PodcastRow) bool {
	if l.searchTerm != "" {
		if r.Kind == KindSection {
			return true
		}
		folder := cases.Fold()
		key := folder.String(l.searchTerm)
		for _, text := range []string{r.Title, r.Description, r.Section} {
			if text != "" && strings.Contains(folder.String(text), key) {
				return true
			}
		}
		return false
	}

	if r.Separator {
		return true
	}
	switch l.viewMode {
	case ViewAll:
		return r.HasEpisodes
	case ViewUndeleted, ViewDownloaded, ViewUnplayed:
		return r.visibleIn(l.viewMode)
	}
	return true
}

func (l *PodcastList) newChannelRow(ch model.Channel, addOverlay bool) *PodcastRow {
	r := &PodcastRow{
		Kind:         KindPodcast,
		URL:          ch.URL(),
		Channel:      ch,
		HasEpisodes:  true,
		CoverVisible: true,
		PillVisible:  true,
		rowFlags:     rowFlags{ShowUndeleted: true, ShowDownloaded: true, ShowUnplayed: true},
	}
	if l.covers != nil {
		r.Cover = l.covers.Image(ch, addOverlay)
	}
	return r
}

// SetChannels rebuilds the list from podcasts
func (l *PodcastList) SetChannels(podcasts []*model.Podcast, opts PodcastListOptions) {
	var rows []PodcastRow

	if opts.ViewAll && len(podcasts) > 0 {
		all := model.NewAllEpisodes(podcasts)
		rows = append(rows, *l.newChannelRow(all, false))

		if !opts.Sections {
			rows = append(rows, PodcastRow{
				Kind:        KindSeparator,
				HasEpisodes: true,
				Separator:   true,
				rowFlags:    rowFlags{ShowUndeleted: true, ShowDownloaded: true, ShowUnplayed: true},
			})
		}
	}

	type entry struct {
		section string
		podcast *model.Podcast
		key     string
	}
	entries := make([]entry, 0, len(podcasts))
	for _, p := range podcasts {
		e := entry{podcast: p, key: p.SortKey()}
		if opts.Sections {
			e.section = p.GroupBy()
		}
		entries = append(entries, e)
	}
	sort.SliceStable(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		if a.section != b.section {
			return a.section < b.section
		}
		if a.key != b.key {
			return a.key < b.key
		}
		return a.podcast.URL < b.podcast.URL
	})

	first := true
	oldSection := ""
	for _, e := range entries {
		if opts.Sections && (first || e.section != oldSection) {
			rows = append(rows, PodcastRow{
				Kind:        KindSection,
				URL:         SectionHeaderURL,
				Title:       e.section,
				Section:     e.section,
				HasEpisodes: true,
				rowFlags:    rowFlags{ShowUndeleted: true, ShowDownloaded: true, ShowUnplayed: true},
			})
			oldSection = e.section
		}
		first = false
		rows = append(rows, *l.newChannelRow(e.podcast.Channel(), true))
	}

	l.store.Reset(rows)

	// Section headers are updated last so they see all member podcasts
	for i := 0; i < l.store.Len(); i++ {
		if l.store.At(i).Kind != KindSection {
			l.updateRow(i, false)
		}
	}
	l.UpdateSections()
}

// PathFromURL returns the store index of the row for url
func (l *PodcastList) PathFromURL(url string) (int, bool) {
	if url == "" {
		return -1, false
	}
	return l.store.Find(func(r *PodcastRow) bool {
		return r.Kind == KindPodcast && r.URL == url
	})
}

// FilterPathFromURL returns the projection position of the row for url
func (l *PodcastList) FilterPathFromURL(url string) (int, bool) {
	child, ok := l.PathFromURL(url)
	if !ok {
		return -1, false
	}
	return l.filtered.FilterIndex(child)
}

// UpdateFirstRow refreshes the first row, the "All episodes" aggregate
func (l *PodcastList) UpdateFirstRow() {
	if l.store.Len() > 0 {
		l.UpdateRow(0)
	}
}

// IsFirstRow reports whether a projection position maps to the first row
func (l *PodcastList) IsFirstRow(pos int) bool {
	if pos < 0 || pos >= l.filtered.Len() {
		return false
	}
	return l.filtered.ChildIndex(pos) == 0
}

// UpdateByURLs refreshes the rows of the given podcast URLs
func (l *PodcastList) UpdateByURLs(urls []string) {
	wanted := make(map[string]struct{}, len(urls))
	for _, u := range urls {
		wanted[u] = struct{}{}
	}
	for i := 0; i < l.store.Len(); i++ {
		r := l.store.At(i)
		if r.Kind != KindPodcast {
			continue
		}
		if _, ok := wanted[r.URL]; ok {
			l.UpdateRow(i)
		}
	}
}

// UpdateByFilterIndex refreshes the row at a projection position
func (l *PodcastList) UpdateByFilterIndex(pos int) {
	if pos < 0 || pos >= l.filtered.Len() {
		return
	}
	l.UpdateRow(l.filtered.ChildIndex(pos))
}

// UpdateAll refreshes every row
func (l *PodcastList) UpdateAll() {
	for i := 0; i < l.store.Len(); i++ {
		l.updateRow(i, false)
	}
}

// UpdateSections refreshes the statistics of every section header
func (l *PodcastList) UpdateSections() {
	for i := 0; i < l.store.Len(); i++ {
		if l.store.At(i).Kind == KindSection {
			l.updateRow(i, false)
		}
	}
}

// UpdateRow refreshes the row at store index i and, for podcasts, the
// header of the section it belongs to
func (l *PodcastList) UpdateRow(i int) {
	l.updateRow(i, true)
}

func (l *PodcastList) updateRow(i int, withSection bool) {
	if i < 0 || i >= l.store.Len() {
		return
	}

	r := l.store.At(i)
	switch r.Kind {
	case KindSection:
		l.updateSection(i, r.Title)

	case KindPodcast:
		if r.Channel == nil {
			return
		}
		l.updatePodcast(i, r.Channel)
		if withSection && !r.Channel.Aggregate() {
			section := r.Channel.Section()
			if h, ok := l.store.Find(func(r *PodcastRow) bool {
				return r.Kind == KindSection && r.Title == section
			}); ok {
				l.updateSection(h, section)
			}
		}
	}
}

func (l *PodcastList) updateSection(i int, section string) {
	var stats model.Statistics
	l.store.Each(func(_ int, r *PodcastRow) bool {
		if r.Kind == KindPodcast && r.Channel != nil && !r.Channel.Aggregate() && r.Channel.Section() == section {
			stats = stats.Add(r.Channel.Statistics())
		}
		return true
	})

	l.store.Update(i, func(r *PodcastRow) {
		r.Description = section
		r.DescriptionBold = true
		r.Section = section
		r.Stats = stats
		r.rowFlags = rowFlags{
			ShowUndeleted:  stats.ShowUndeleted(),
			ShowDownloaded: stats.ShowDownloaded(),
			ShowUnplayed:   stats.ShowUnplayed(),
		}
	})
}

func (l *PodcastList) updatePodcast(i int, ch model.Channel) {
	stats := ch.Statistics()

	description := PausedDescription
	if !ch.Paused() {
		description = firstLine(ch.Description())
	}

	l.store.Update(i, func(r *PodcastRow) {
		r.Title = ch.Title()
		r.Description = description
		r.DescriptionBold = stats.New > 0
		r.Section = ch.Section()
		r.Error = ""
		r.PillUnplayed = stats.Unplayed
		r.PillDownloaded = stats.Downloaded
		r.PillVisible = stats.Unplayed > 0 || stats.Downloaded > 0
		r.rowFlags = rowFlags{
			ShowUndeleted:  stats.ShowUndeleted(),
			ShowDownloaded: stats.ShowDownloaded(),
			ShowUnplayed:   stats.ShowUnplayed(),
		}
		r.HasEpisodes = stats.Total > 0
		r.Downloads = stats.Downloaded
		r.Stats = stats
	})
}

// ClearCoverCache drops the cached cover of a podcast
func (l *PodcastList) ClearCoverCache(podcastURL string) {
	if l.covers != nil {
		l.covers.Invalidate(podcastURL)
	}
}

// AddCoverByChannel installs a newly downloaded cover for ch
func (l *PodcastList) AddCoverByChannel(ch model.Channel, img image.Image) {
	if img == nil || l.covers == nil {
		return
	}

	cover := l.covers.AddCover(ch, img)
	if i, ok := l.store.Find(func(r *PodcastRow) bool {
		return r.Kind == KindPodcast && r.Channel != nil && r.Channel.CoverID() == ch.CoverID()
	}); ok {
		l.store.Update(i, func(r *PodcastRow) { r.Cover = cover })
	}
}
