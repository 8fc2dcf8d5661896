package listmodel

import (
	"testing"

	"github.com/ytget/podshelf/internal/model"
)

func testPodcasts() []*model.Podcast {
	a := newMixedPodcast("https://example.com/a", "The Beta Show")
	a.Section = "Tech"
	b := newMixedPodcast("https://example.com/b", "Alpha Hour")
	b.Section = "Tech"
	c := newMixedPodcast("https://example.com/c", "Gamma News")
	c.Section = "News"
	empty := model.NewPodcast("https://example.com/empty", "Empty Feed")
	empty.Section = "News"
	return []*model.Podcast{a, b, c, empty}
}

func rowURLs(rows []PodcastRow) []string {
	out := make([]string, len(rows))
	for i, r := range rows {
		switch r.Kind {
		case KindSection:
			out[i] = "section:" + r.Title
		case KindSeparator:
			out[i] = "separator"
		default:
			if r.Channel != nil && r.Channel.Aggregate() {
				out[i] = "all"
			} else {
				out[i] = r.URL
			}
		}
	}
	return out
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestPodcastList_SetChannelsFlat(t *testing.T) {
	l := NewPodcastList(nil)
	l.SetChannels(testPodcasts(), PodcastListOptions{ViewAll: true})

	expected := []string{
		"all",
		"separator",
		"https://example.com/b",
		"https://example.com/a",
		"https://example.com/empty",
		"https://example.com/c",
	}
	if got := rowURLs(l.Store().Rows()); !equalStrings(got, expected) {
		t.Errorf("rows = %v, expected %v", got, expected)
	}

	all := l.Store().At(0)
	if all.Stats.Total != 12 || all.Title != "All episodes" {
		t.Errorf("Unexpected aggregate row %+v", all)
	}
}

func TestPodcastList_SetChannelsSections(t *testing.T) {
	l := NewPodcastList(nil)
	l.SetChannels(testPodcasts(), PodcastListOptions{ViewAll: true, Sections: true})

	expected := []string{
		"all",
		"section:News",
		"https://example.com/empty",
		"https://example.com/c",
		"section:Tech",
		"https://example.com/b",
		"https://example.com/a",
	}
	if got := rowURLs(l.Store().Rows()); !equalStrings(got, expected) {
		t.Fatalf("rows = %v, expected %v", got, expected)
	}

	tech := l.Store().At(4)
	want := model.Statistics{Total: 8, Deleted: 2, New: 2, Downloaded: 2, Unplayed: 2}
	if tech.Stats != want {
		t.Errorf("Tech stats = %+v, expected %+v", tech.Stats, want)
	}
	if !tech.ShowUndeleted || !tech.ShowDownloaded || !tech.ShowUnplayed || !tech.DescriptionBold {
		t.Errorf("Unexpected Tech header flags %+v", tech)
	}
}

func TestPodcastList_EmptyPodcastsWithoutAggregate(t *testing.T) {
	l := NewPodcastList(nil)
	l.SetChannels(nil, PodcastListOptions{ViewAll: true, Sections: true})
	if l.Store().Len() != 0 {
		t.Errorf("Expected no rows, got %d", l.Store().Len())
	}
}

func TestPodcastList_RowFields(t *testing.T) {
	podcasts := testPodcasts()
	podcasts[2].PauseSubscription = true
	l := NewPodcastList(nil)
	l.SetChannels(podcasts, PodcastListOptions{})

	i, ok := l.PathFromURL("https://example.com/a")
	if !ok {
		t.Fatal("podcast a not found")
	}
	a := l.Store().At(i)
	if a.Title != "The Beta Show" || a.Description != "A show about things" || !a.DescriptionBold {
		t.Errorf("Unexpected description columns %+v", a)
	}
	if !a.PillVisible || a.PillUnplayed != 1 || a.PillDownloaded != 1 || a.Downloads != 1 || !a.HasEpisodes {
		t.Errorf("Unexpected count columns %+v", a)
	}

	c, _ := l.PathFromURL("https://example.com/c")
	if got := l.Store().At(c).Description; got != PausedDescription {
		t.Errorf("Paused description = %q", got)
	}

	e, _ := l.PathFromURL("https://example.com/empty")
	empty := l.Store().At(e)
	if empty.HasEpisodes || empty.PillVisible || empty.ShowUndeleted {
		t.Errorf("Unexpected empty podcast row %+v", empty)
	}
}

func TestPodcastList_ViewModes(t *testing.T) {
	l := NewPodcastList(nil)
	l.SetChannels(testPodcasts(), PodcastListOptions{ViewAll: true})

	if got := l.Filtered().Len(); got != 6 {
		t.Errorf("Unset mode should show every row, got %d", got)
	}

	l.SetViewMode(ViewAll)
	if got := rowURLs(l.Filtered().Rows()); len(got) != 5 {
		t.Errorf("ViewAll should hide podcasts without episodes, got %v", got)
	}

	// Mark every episode of c as deleted
	c := l.Store().At(5).Channel
	p, _ := model.PodcastOf(c)
	for _, e := range p.Episodes {
		e.State = model.StateDeleted
	}
	l.UpdateByURLs([]string{p.URL})

	l.SetViewMode(ViewUndeleted)
	expected := []string{"all", "separator", "https://example.com/b", "https://example.com/a"}
	if got := rowURLs(l.Filtered().Rows()); !equalStrings(got, expected) {
		t.Errorf("ViewUndeleted rows = %v, expected %v", got, expected)
	}
}

func TestPodcastList_Search(t *testing.T) {
	l := NewPodcastList(nil)
	l.SetChannels(testPodcasts(), PodcastListOptions{ViewAll: true, Sections: true})
	l.SetViewMode(ViewUnplayed)

	l.SetSearchTerm("ALPHA")
	expected := []string{"section:News", "section:Tech", "https://example.com/b"}
	if got := rowURLs(l.Filtered().Rows()); !equalStrings(got, expected) {
		t.Errorf("search rows = %v, expected %v", got, expected)
	}

	l.SetSearchTerm("news")
	expected = []string{"section:News", "https://example.com/empty", "https://example.com/c", "section:Tech"}
	if got := rowURLs(l.Filtered().Rows()); !equalStrings(got, expected) {
		t.Errorf("section search rows = %v, expected %v", got, expected)
	}

	l.SetSearchTerm("")
	if l.SearchTerm() != "" || l.ViewMode() != ViewUnplayed {
		t.Error("Clearing search should restore the view mode")
	}
}

func TestPodcastList_SearchHidesSeparator(t *testing.T) {
	l := NewPodcastList(nil)
	l.SetChannels(testPodcasts(), PodcastListOptions{ViewAll: true})
	l.SetSearchTerm("all episodes")

	expected := []string{"all"}
	if got := rowURLs(l.Filtered().Rows()); !equalStrings(got, expected) {
		t.Errorf("search rows = %v, expected %v", got, expected)
	}
}

func TestPodcastList_Lookups(t *testing.T) {
	l := NewPodcastList(nil)
	l.SetChannels(testPodcasts(), PodcastListOptions{ViewAll: true})
	l.SetViewMode(ViewAll)

	if _, ok := l.PathFromURL(""); ok {
		t.Error("Empty URL must not match the aggregate")
	}
	if _, ok := l.PathFromURL("https://example.com/missing"); ok {
		t.Error("Unknown URL must not match")
	}

	pos, ok := l.FilterPathFromURL("https://example.com/c")
	if !ok || pos != 4 {
		t.Errorf("FilterPathFromURL(c) = %d, %v", pos, ok)
	}
	if _, ok := l.FilterPathFromURL("https://example.com/empty"); ok {
		t.Error("Hidden podcast should have no filter path")
	}

	if !l.IsFirstRow(0) || l.IsFirstRow(1) || l.IsFirstRow(-1) {
		t.Error("IsFirstRow mismatch")
	}
}

func TestPodcastList_UpdatesKeepSectionsCurrent(t *testing.T) {
	podcasts := testPodcasts()
	l := NewPodcastList(nil)
	l.SetChannels(podcasts, PodcastListOptions{ViewAll: true, Sections: true})

	for _, e := range podcasts[2].Episodes {
		e.State = model.StateDeleted
		e.IsNew = false
	}

	l.UpdateByURLs([]string{podcasts[2].URL})
	news := l.Store().At(1)
	if news.ShowUndeleted || news.ShowUnplayed || news.Stats.Deleted != 4 {
		t.Errorf("News header not refreshed: %+v", news)
	}

	l.UpdateFirstRow()
	if got := l.Store().At(0).Stats.Deleted; got != 6 {
		t.Errorf("aggregate deleted = %d, expected 6", got)
	}

	podcasts[0].Episodes[0].IsNew = false
	l.UpdateAll()
	if got := l.Store().At(4).Stats.Unplayed; got != 1 {
		t.Errorf("Tech unplayed = %d, expected 1", got)
	}

	l.UpdateByFilterIndex(0)
	l.UpdateSections()
}
