package feeds

import (
	"testing"
	"time"
)

const podcastRSS = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0" xmlns:itunes="http://www.itunes.com/dtds/podcast-1.0.dtd">
  <channel>
    <title>  Test Cast </title>
    <link>https://example.com</link>
    <description>A podcast about tests</description>
    <itunes:image href="https://example.com/cover.png"/>
    <item>
      <guid>ep-2</guid>
      <title>Episode Two</title>
      <link>https://example.com/2</link>
      <pubDate>Tue, 03 Jan 2006 15:04:05 GMT</pubDate>
      <description>Second &lt;b&gt;episode&lt;/b&gt;</description>
      <enclosure url="https://example.com/2.jpg" length="10" type="image/jpeg"/>
      <enclosure url="https://example.com/2.mp3" length="2048" type="audio/mpeg"/>
      <itunes:duration>1:02:03</itunes:duration>
    </item>
    <item>
      <title>Episode One</title>
      <link>https://example.com/1</link>
      <pubDate>Mon, 02 Jan 2006 15:04:05 GMT</pubDate>
      <enclosure url="https://example.com/1.m4v" length="bogus" type="video/x-m4v"/>
      <itunes:summary>Summary only</itunes:summary>
    </item>
    <item>
      <title>Blog post without enclosure</title>
      <link>https://example.com/post</link>
    </item>
  </channel>
</rss>`

func TestParse(t *testing.T) {
	feed, err := Parse("https://example.com/feed.xml", []byte(podcastRSS))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	p := feed.Podcast
	if p.URL != "https://example.com/feed.xml" || p.Title != "Test Cast" {
		t.Errorf("podcast = {%q %q}", p.URL, p.Title)
	}
	if p.CoverURL != "https://example.com/cover.png" {
		t.Errorf("CoverURL = %q", p.CoverURL)
	}
	if p.Description != "A podcast about tests" || p.Link != "https://example.com" {
		t.Errorf("metadata = {%q %q}", p.Description, p.Link)
	}

	if len(feed.Episodes) != 2 {
		t.Fatalf("got %d episodes, want 2", len(feed.Episodes))
	}

	two := feed.Episodes[0]
	if two.URL != "https://example.com/2.mp3" || two.MimeType != "audio/mpeg" {
		t.Errorf("enclosure = {%q %q}, want the audio one", two.URL, two.MimeType)
	}
	if two.GUID != "ep-2" || two.FileSize != 2048 || two.TotalTime != 3723 {
		t.Errorf("episode two = {guid:%q size:%d time:%d}", two.GUID, two.FileSize, two.TotalTime)
	}
	if want := time.Date(2006, 1, 3, 15, 4, 5, 0, time.UTC); !two.Published.Equal(want) {
		t.Errorf("Published = %v, want %v", two.Published, want)
	}

	one := feed.Episodes[1]
	if one.GUID != "https://example.com/1" {
		t.Errorf("GUID fallback = %q, want item link", one.GUID)
	}
	if one.FileSize != 0 {
		t.Errorf("FileSize = %d for bogus length, want 0", one.FileSize)
	}
	if one.Description != "Summary only" {
		t.Errorf("Description = %q, want itunes summary", one.Description)
	}
}

func TestParse_TitleFallsBackToURL(t *testing.T) {
	feed, err := Parse("https://example.com/untitled", []byte(`<rss version="2.0"><channel></channel></rss>`))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if feed.Podcast.Title != "https://example.com/untitled" {
		t.Errorf("Title = %q", feed.Podcast.Title)
	}
}

func TestParse_Invalid(t *testing.T) {
	if _, err := Parse("u", []byte("not a feed")); err == nil {
		t.Error("Parse of garbage returned nil error")
	}
}

func TestParseDuration(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{"", 0},
		{"90", 90},
		{"12:34", 754},
		{"1:02:03", 3723},
		{" 5:00 ", 300},
		{"1:2:3:4", 0},
		{"abc", 0},
		{"-5", 0},
	}

	for _, tt := range tests {
		if got := ParseDuration(tt.in); got != tt.want {
			t.Errorf("ParseDuration(%q) = %d, want %d", tt.in, got, tt.want)
		}
	}
}
