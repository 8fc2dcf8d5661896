package listmodel

import (
	"image"
	"time"

	"github.com/ytget/podshelf/internal/model"
)

// EpisodeRow is one row of the episode list
type EpisodeRow struct {
	URL             string
	Title           string
	FileSizeText    string
	Episode         *model.Episode // nil until the row is populated
	StatusIcon      string
	PublishedText   string
	Description     string
	DescriptionBold bool
	Tooltip         string
	FileSize        int64
	Published       time.Time
	Time            string
	TimeVisible     bool
	TotalTime       int
	Locked          bool

	rowFlags
}

// RowKind tells real podcast rows from grouping rows
type RowKind int

const (
	// KindPodcast rows are backed by a model.Channel
	KindPodcast RowKind = iota

	// KindSection rows head a group of podcasts sharing a section
	KindSection

	// KindSeparator rows visually separate "All episodes" from podcasts
	KindSeparator
)

// PodcastRow is one row of the podcast list
type PodcastRow struct {
	Kind            RowKind
	URL             string
	Title           string
	Description     string
	DescriptionBold bool
	PillUnplayed    int
	PillDownloaded  int
	PillVisible     bool
	Channel         model.Channel // nil for section and separator rows
	Cover           image.Image
	Error           string
	HasEpisodes     bool
	Separator       bool
	Downloads       int
	CoverVisible    bool
	Section         string
	Stats           model.Statistics

	rowFlags
}
