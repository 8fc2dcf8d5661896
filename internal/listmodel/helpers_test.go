package listmodel

import (
	"fmt"
	"time"

	"github.com/ytget/podshelf/internal/model"
)

var testNow = time.Date(2024, time.June, 1, 12, 0, 0, 0, time.UTC)

// slowClock advances a second per call so every slice stops right after
// its batch threshold
func slowClock() func() time.Time {
	cur := testNow
	return func() time.Time {
		t := cur
		cur = cur.Add(time.Second)
		return t
	}
}

func frozenClock() time.Time { return testNow }

// newMixedPodcast has one episode per interesting state
func newMixedPodcast(url, title string) *model.Podcast {
	p := model.NewPodcast(url, title)
	p.Description = "A show about things\nsecond line"
	p.AddEpisode(&model.Episode{URL: url + "/dl-new", Title: title + ": Downloaded new", MimeType: "audio/mpeg",
		State: model.StateDownloaded, IsNew: true, Published: testNow.Add(-1 * time.Hour)})
	p.AddEpisode(&model.Episode{URL: url + "/deleted", Title: "Deleted one", MimeType: "audio/mpeg",
		State: model.StateDeleted, Published: testNow.Add(-2 * time.Hour)})
	p.AddEpisode(&model.Episode{URL: url + "/old", Title: "Old normal", MimeType: "audio/mpeg",
		State: model.StateNormal, IsNew: false, Published: testNow.Add(-3 * time.Hour)})
	p.AddEpisode(&model.Episode{URL: url + "/new", Title: "Fresh normal", MimeType: "audio/mpeg",
		State: model.StateNormal, IsNew: true, Published: testNow.Add(-4 * time.Hour)})
	return p
}

func newLargePodcast(n int) *model.Podcast {
	p := model.NewPodcast("https://example.com/large", "Large")
	for i := 0; i < n; i++ {
		p.AddEpisode(&model.Episode{
			URL:       fmt.Sprintf("https://example.com/large/%03d", i),
			Title:     fmt.Sprintf("Episode %03d", i),
			State:     model.StateNormal,
			IsNew:     i%2 == 0,
			Published: testNow.Add(-time.Duration(i) * time.Hour),
		})
	}
	return p
}
