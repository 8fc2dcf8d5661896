package feeds

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/mmcdole/gofeed"

	"github.com/ytget/podshelf/internal/model"
)

// Feed is a parsed podcast feed
type Feed struct {
	Podcast  *model.Podcast
	Episodes []*model.Episode
}

// Parse converts raw feed data fetched from url. Items without an
// enclosure are not episodes and are skipped.
func Parse(url string, data []byte) (*Feed, error) {
	feed, err := gofeed.NewParser().Parse(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("parse feed: %w", err)
	}

	p := model.NewPodcast(url, strings.TrimSpace(feed.Title))
	p.Description = strings.TrimSpace(feed.Description)
	p.Link = feed.Link
	if feed.Image != nil {
		p.CoverURL = feed.Image.URL
	}
	if p.CoverURL == "" && feed.ITunesExt != nil {
		p.CoverURL = feed.ITunesExt.Image
	}
	if p.Title == "" {
		p.Title = url
	}

	episodes := make([]*model.Episode, 0, len(feed.Items))
	for _, item := range feed.Items {
		if e, ok := episodeFromItem(item); ok {
			episodes = append(episodes, e)
		}
	}
	return &Feed{Podcast: p, Episodes: episodes}, nil
}

func episodeFromItem(item *gofeed.Item) (*model.Episode, bool) {
	enc := pickEnclosure(item.Enclosures)
	if enc == nil || enc.URL == "" {
		return nil, false
	}

	e := &model.Episode{
		URL:         enc.URL,
		GUID:        coalesce(item.GUID, item.Link, enc.URL),
		Title:       strings.TrimSpace(item.Title),
		Description: coalesce(item.Description, item.Content),
		Link:        item.Link,
		MimeType:    enc.Type,
	}
	if size, err := strconv.ParseInt(strings.TrimSpace(enc.Length), 10, 64); err == nil && size > 0 {
		e.FileSize = size
	}

	if item.PublishedParsed != nil {
		e.Published = *item.PublishedParsed
	} else if item.UpdatedParsed != nil {
		e.Published = *item.UpdatedParsed
	}

	if item.ITunesExt != nil {
		e.TotalTime = ParseDuration(item.ITunesExt.Duration)
		if e.Description == "" {
			e.Description = item.ITunesExt.Summary
		}
	}
	return e, true
}

// pickEnclosure prefers audio or video over other attachments
func pickEnclosure(enclosures []*gofeed.Enclosure) *gofeed.Enclosure {
	var first *gofeed.Enclosure
	for _, enc := range enclosures {
		if enc == nil {
			continue
		}
		if first == nil {
			first = enc
		}
		t := strings.ToLower(enc.Type)
		if strings.HasPrefix(t, "audio/") || strings.HasPrefix(t, "video/") {
			return enc
		}
	}
	return first
}

// ParseDuration reads an itunes:duration value ("SS", "MM:SS" or
// "HH:MM:SS") into seconds; unparsable values give 0
func ParseDuration(s string) int {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	parts := strings.Split(s, ":")
	if len(parts) > 3 {
		return 0
	}

	total := 0
	for _, part := range parts {
		v, err := strconv.ParseFloat(part, 64)
		if err != nil || v < 0 {
			return 0
		}
		total = total*60 + int(v)
	}
	return total
}

func coalesce(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}

