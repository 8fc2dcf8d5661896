package query

import (
	"testing"
	"time"

	"github.com/ytget/podshelf/internal/model"
)

var testNow = time.Date(2024, time.June, 1, 12, 0, 0, 0, time.UTC)

func fixedNow() time.Time { return testNow }

func testEpisodes() map[string]*model.Episode {
	p := model.NewPodcast("https://example.com/feed", "Gopher Weekly")
	eps := map[string]*model.Episode{
		"new-audio": {
			Title: "Generics deep dive", Description: "All about type parameters",
			MimeType: "audio/mpeg", State: model.StateNormal, IsNew: true,
			FileSize: 50 * 1024 * 1024, TotalTime: 45 * 60,
			Published: testNow.Add(-2 * 24 * time.Hour),
		},
		"downloaded-video": {
			Title: "Live coding", Description: "Building a CLI",
			MimeType: "video/mp4", State: model.StateDownloaded, IsNew: false,
			FileSize: 400 * 1024 * 1024, TotalTime: 90 * 60, Archive: true,
			Published: testNow.Add(-30 * 24 * time.Hour),
		},
		"deleted": {
			Title: "Über Straße", Description: "",
			MimeType: "audio/ogg", State: model.StateDeleted, IsNew: true,
			Published: testNow.Add(-100 * 24 * time.Hour),
		},
	}
	for _, e := range eps {
		p.AddEpisode(e)
	}
	return eps
}

func TestParse_Matches(t *testing.T) {
	eps := testEpisodes()
	tests := []struct {
		term     string
		expected map[string]bool
	}{
		{"new", map[string]bool{"new-audio": true}},
		{"downloaded", map[string]bool{"downloaded-video": true}},
		{"not deleted", map[string]bool{"new-audio": true, "downloaded-video": true}},
		{"video or deleted", map[string]bool{"downloaded-video": true, "deleted": true}},
		{"audio unplayed", map[string]bool{"new-audio": true, "deleted": true}},
		{"audio and not (deleted or archive)", map[string]bool{"new-audio": true}},
		{"size > 100", map[string]bool{"downloaded-video": true}},
		{"age < 7", map[string]bool{"new-audio": true}},
		{"duration >= 45 and duration <= 60", map[string]bool{"new-audio": true}},
		{"/LIVE/", map[string]bool{"downloaded-video": true}},
		{"/^(gen|live)/", map[string]bool{"new-audio": true, "downloaded-video": true}},
		{"type parameters", map[string]bool{"new-audio": true}},
		{"gopher cli", map[string]bool{"downloaded-video": true}},
		{"STRASSE", map[string]bool{"deleted": true}},
		{"nothing matches this", map[string]bool{}},
	}

	for _, test := range tests {
		pred, err := ParseAt(test.term, fixedNow)
		if err != nil {
			t.Errorf("ParseAt(%q) error: %v", test.term, err)
			continue
		}
		for name, e := range eps {
			got, err := pred.Match(e)
			if err != nil {
				t.Errorf("%q.Match(%s) error: %v", test.term, name, err)
			}
			if got != test.expected[name] {
				t.Errorf("%q.Match(%s) = %v, expected %v", test.term, name, got, test.expected[name])
			}
		}
	}
}

func TestParse_Errors(t *testing.T) {
	terms := []string{
		"",
		"   ",
		"/[unclosed/",
		"new and",
		"(new or old",
		"size >",
		"size new",
		"age > old",
		"new )",
	}

	for _, term := range terms {
		if _, err := ParseAt(term, fixedNow); err == nil {
			t.Errorf("ParseAt(%q) expected error", term)
		}
	}
}

func TestMatch_NilEpisode(t *testing.T) {
	for _, term := range []string{"new", "/x/", "hello"} {
		pred, err := Parse(term)
		if err != nil {
			t.Fatalf("Parse(%q): %v", term, err)
		}
		if _, err := pred.Match(nil); err == nil {
			t.Errorf("%q.Match(nil) expected error", term)
		}
	}
}

func TestIsStructured(t *testing.T) {
	tests := []struct {
		term     string
		expected bool
	}{
		{"new and video", true},
		{"size > 10", true},
		{"new episode", false},
		{"(played)", true},
	}

	for _, test := range tests {
		tokens, err := tokenize(test.term)
		if err != nil {
			t.Fatalf("tokenize(%q): %v", test.term, err)
		}
		if got := isStructured(tokens); got != test.expected {
			t.Errorf("isStructured(%q) = %v, expected %v", test.term, got, test.expected)
		}
	}
}
