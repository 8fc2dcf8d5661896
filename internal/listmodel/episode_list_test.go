package listmodel

import (
	"testing"

	"github.com/ytget/podshelf/internal/background"
	"github.com/ytget/podshelf/internal/model"
)

type filterRecorder struct {
	calls []bool
}

func (f *filterRecorder) record(hasEpisodes bool) { f.calls = append(f.calls, hasEpisodes) }

func newTestEpisodeList() (*EpisodeList, *background.ManualScheduler, *filterRecorder) {
	sched := background.NewManualScheduler()
	rec := &filterRecorder{}
	l := NewEpisodeList(sched, rec.record)
	l.SetClock(frozenClock)
	return l, sched, rec
}

func TestEpisodeList_Population(t *testing.T) {
	l, sched, rec := newTestEpisodeList()
	p := newMixedPodcast("https://example.com/a", "Show A")

	l.ReplaceFromChannel(p.Channel(), false)
	if l.Store().Len() != 4 {
		t.Fatalf("Expected 4 placeholder rows, got %d", l.Store().Len())
	}
	if !l.Busy() {
		t.Error("Expected background population to be pending")
	}

	sched.RunAll()

	if l.Busy() {
		t.Error("Expected population to be finished")
	}
	for i := 0; i < l.Store().Len(); i++ {
		if l.Store().At(i).Episode == nil {
			t.Errorf("row %d not populated", i)
		}
	}
	if len(rec.calls) != 1 || !rec.calls[0] {
		t.Errorf("Expected one filter notification with episodes, got %v", rec.calls)
	}
}

func TestEpisodeList_NilChannel(t *testing.T) {
	l, sched, _ := newTestEpisodeList()
	l.ReplaceFromChannel(nil, false)
	sched.RunAll()
	if l.Store().Len() != 0 || l.HasEpisodes() {
		t.Error("Expected empty list for nil channel")
	}
}

func TestEpisodeList_ViewModes(t *testing.T) {
	l, sched, rec := newTestEpisodeList()
	l.ReplaceFromChannel(newMixedPodcast("https://example.com/a", "Show A").Channel(), false)
	sched.RunAll()
	rec.calls = nil

	tests := []struct {
		mode     ViewMode
		expected int
	}{
		{ViewAll, 4},
		{ViewUndeleted, 3},
		{ViewDownloaded, 2},
		{ViewUnplayed, 2},
	}

	for _, test := range tests {
		l.SetViewMode(test.mode)
		if got := l.Filtered().Len(); got != test.expected {
			t.Errorf("mode %s shows %d rows, expected %d", test.mode, got, test.expected)
		}
	}

	// ViewAll is the initial mode, so only three changes are notified
	if len(rec.calls) != 3 {
		t.Errorf("Expected 3 filter notifications, got %d", len(rec.calls))
	}

	l.SetViewMode(ViewUnplayed)
	if len(rec.calls) != 3 {
		t.Error("Setting the same mode must not notify")
	}
}

func TestEpisodeList_UndeletedFlagsDecideVisibility(t *testing.T) {
	l, sched, _ := newTestEpisodeList()
	l.ReplaceFromChannel(newMixedPodcast("https://example.com/a", "Show A").Channel(), false)
	sched.RunAll()
	l.SetViewMode(ViewUndeleted)

	for i := 0; i < l.Store().Len(); i++ {
		r := l.Store().At(i)
		_, visible := l.Filtered().FilterIndex(i)
		if visible != r.ShowUndeleted {
			t.Errorf("row %s visible=%v, undeleted flag=%v", r.URL, visible, r.ShowUndeleted)
		}
	}
}

func TestEpisodeList_SearchOverridesViewMode(t *testing.T) {
	l, sched, rec := newTestEpisodeList()
	l.ReplaceFromChannel(newMixedPodcast("https://example.com/a", "Show A").Channel(), false)
	sched.RunAll()

	l.SetViewMode(ViewDownloaded)
	rec.calls = nil

	l.SetSearchTerm("deleted one")
	if got := l.Filtered().Len(); got != 1 {
		t.Errorf("Expected the deleted episode to match the search, got %d rows", got)
	}

	l.SetSearchTerm("no such words")
	if l.HasEpisodes() {
		t.Error("Expected no visible rows for a non-matching search")
	}

	l.SetSearchTerm("")
	if got := l.Filtered().Len(); got != 2 {
		t.Errorf("Expected view mode filtering after clearing search, got %d", got)
	}

	expected := []bool{true, false, true}
	if len(rec.calls) != len(expected) {
		t.Fatalf("filter notifications = %v, expected %v", rec.calls, expected)
	}
	for i := range expected {
		if rec.calls[i] != expected[i] {
			t.Errorf("notification %d = %v, expected %v", i, rec.calls[i], expected[i])
		}
	}
}

func TestEpisodeList_SearchFailsOpen(t *testing.T) {
	l, sched, _ := newTestEpisodeList()
	l.ReplaceFromChannel(newMixedPodcast("https://example.com/a", "Show A").Channel(), false)
	sched.RunAll()

	l.SetSearchTerm("/[broken/")
	if got := l.Filtered().Len(); got != 4 {
		t.Errorf("Expected all rows for an unparsable search, got %d", got)
	}

	l.SetSearchTerm("new and not downloaded")
	if got := l.Filtered().Len(); got != 1 {
		t.Errorf("Expected 1 row for structured search, got %d", got)
	}
}

func TestEpisodeList_SearchHidesUnpopulatedRows(t *testing.T) {
	l, _, _ := newTestEpisodeList()
	l.ReplaceFromChannel(newMixedPodcast("https://example.com/a", "Show A").Channel(), false)

	l.SetSearchTerm("/[broken/")
	if got := l.Filtered().Len(); got != 0 {
		t.Errorf("Rows without an episode must be hidden while searching, got %d", got)
	}
}

func TestEpisodeList_SlicedPopulation(t *testing.T) {
	l, sched, _ := newTestEpisodeList()
	l.SetClock(slowClock())
	l.ReplaceFromChannel(newLargePodcast(120).Channel(), false)

	sched.RunOnce()

	populated := 0
	for i := 0; i < l.Store().Len(); i++ {
		if l.Store().At(i).Episode != nil {
			populated++
		}
	}
	if populated != 50 {
		t.Errorf("Expected 50 rows after the first slice, got %d", populated)
	}

	rounds := sched.RunAll()
	if rounds != 2 {
		t.Errorf("Expected 2 more slices, got %d", rounds)
	}
	if l.Store().Len() != 120 {
		t.Errorf("Row count %d, expected 120", l.Store().Len())
	}
}

func TestEpisodeList_UpdateAllMergesPendingWork(t *testing.T) {
	l, sched, _ := newTestEpisodeList()
	l.SetClock(slowClock())
	p := newLargePodcast(120)
	l.ReplaceFromChannel(p.Channel(), false)
	sched.RunOnce()

	// Change an already populated and a not yet populated episode
	all := p.AllEpisodes()
	all[10].State = model.StateDeleted
	all[100].State = model.StateDeleted

	l.UpdateAll(false)
	if sched.Pending() != 1 {
		t.Fatalf("Expected a single scheduled job, got %d", sched.Pending())
	}
	sched.RunAll()

	for i := 0; i < l.Store().Len(); i++ {
		r := l.Store().At(i)
		if r.Episode != all[i] {
			t.Fatalf("row %d bound to %v, expected %s", i, r.Episode, all[i].URL)
		}
	}
	if l.Store().At(10).ShowUndeleted || l.Store().At(100).ShowUndeleted {
		t.Error("Deleted episodes should not be eligible for the undeleted view")
	}
}

func TestEpisodeList_Idempotent(t *testing.T) {
	l, sched, _ := newTestEpisodeList()
	l.ReplaceFromChannel(newMixedPodcast("https://example.com/a", "Show A").Channel(), true)
	sched.RunAll()
	first := l.Store().Rows()

	l.UpdateAll(true)
	sched.RunAll()
	second := l.Store().Rows()

	for i := range first {
		if first[i] != second[i] {
			t.Errorf("row %d changed:\n%+v\n%+v", i, first[i], second[i])
		}
	}
}

func TestEpisodeList_UpdateByURLs(t *testing.T) {
	l, sched, _ := newTestEpisodeList()
	p := newMixedPodcast("https://example.com/a", "Show A")
	l.ReplaceFromChannel(p.Channel(), false)
	sched.RunAll()

	p.UpdateEpisodeState("https://example.com/a/old", model.StateDeleted)
	l.UpdateByURLs([]string{"https://example.com/a/old"}, false)

	i, ok := l.IndexOfURL("https://example.com/a/old")
	if !ok {
		t.Fatal("row not found")
	}
	if r := l.Store().At(i); r.Tooltip != "Deleted" || r.ShowUndeleted {
		t.Errorf("Row not updated: %+v", r)
	}
}

func TestEpisodeList_UpdateByFilterIndex(t *testing.T) {
	l, sched, _ := newTestEpisodeList()
	p := newMixedPodcast("https://example.com/a", "Show A")
	l.ReplaceFromChannel(p.Channel(), false)
	sched.RunAll()

	first := l.Filtered().At(0)
	first.Episode.Archive = true
	l.UpdateByFilterIndex(0, false)
	l.UpdateByFilterIndex(99, false)

	if !l.Filtered().At(0).Locked {
		t.Error("Expected the first visible row to be locked after update")
	}
}

func TestEpisodeList_Sort(t *testing.T) {
	l, sched, _ := newTestEpisodeList()
	l.ReplaceFromChannel(newMixedPodcast("https://example.com/a", "Show A").Channel(), false)
	sched.RunAll()

	if got := l.Filtered().At(0).URL; got != "https://example.com/a/dl-new" {
		t.Errorf("Expected newest first by default, got %s", got)
	}

	l.SetSort(SortTitle, false)
	if got := l.Filtered().At(0).Title; got != "Deleted one" {
		t.Errorf("Expected title order, got %s first", got)
	}

	l.SetSort(SortPublished, false)
	if got := l.Filtered().At(0).URL; got != "https://example.com/a/new" {
		t.Errorf("Expected oldest first, got %s", got)
	}

	key, desc := l.Sort()
	if key != SortPublished || desc {
		t.Errorf("Sort() = %v, %v", key, desc)
	}
}

func TestParseEpisodeSort(t *testing.T) {
	tests := map[string]EpisodeSort{
		"title":    SortTitle,
		"SIZE":     SortFileSize,
		"duration": SortDuration,
		"":         SortPublished,
		"bogus":    SortPublished,
	}
	for in, expected := range tests {
		if got := ParseEpisodeSort(in); got != expected {
			t.Errorf("ParseEpisodeSort(%q) = %v, expected %v", in, got, expected)
		}
	}
}

func TestParseViewMode(t *testing.T) {
	for _, m := range ViewModes {
		got, err := ParseViewMode(m.String())
		if err != nil || got != m {
			t.Errorf("ParseViewMode(%q) = %v, %v", m.String(), got, err)
		}
	}
	if _, err := ParseViewMode("bogus"); err == nil {
		t.Error("Expected error for unknown view mode")
	}
}
