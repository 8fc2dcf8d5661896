package listmodel

import (
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/ytget/podshelf/internal/model"
)

// ProgressSteps is the number of distinct "downloading" progress icons
const ProgressSteps = 20

// Status icon names; the UI maps them onto its theme resources
const (
	IconAudioFile   = "audio-x-generic"
	IconVideoFile   = "video-x-generic"
	IconImageFile   = "image-x-generic"
	IconGenericFile = "text-x-generic"
	IconDeleted     = "edit-delete"
)

// IconResolver returns a more specific icon name for a downloaded file.
// It reports false when it has nothing better than the generic icon.
type IconResolver func(path string) (string, bool)

// ProgressIcon returns the icon name for a download progress in 0.0..1.0
func ProgressIcon(progress float64) string {
	return fmt.Sprintf("gpodder-progress-%d", int(ProgressSteps*progress))
}

// episodeFields computes the volatile columns of an episode row
type episodeFields struct {
	icons           IconResolver
	allEpisodesView bool
	now             func() time.Time
}

// baseFields writes the columns that only change with the entity identity
func (f *episodeFields) baseFields(r *EpisodeRow, e *model.Episode) {
	r.URL = e.URL
	r.Title = e.Title
	r.Episode = e
	r.PublishedText = e.CutePubdate(f.now())
	r.Published = e.Published
}

// update writes the volatile columns of r from e
func (f *episodeFields) update(r *EpisodeRow, e *model.Episode, includeDescription bool) {
	var (
		tooltip     []string
		statusIcon  string
		flags       = rowFlags{ShowUndeleted: true}
		showBullet  bool
		showPadlock bool
		showMissing bool
	)

	switch {
	case e.Downloading():
		progress := e.DownloadProgress()
		tooltip = append(tooltip, fmt.Sprintf("Downloading %d%%", int(progress*100)))
		statusIcon = ProgressIcon(progress)
		flags.ShowDownloaded = true
		flags.ShowUnplayed = true

	case e.State == model.StateDeleted:
		tooltip = append(tooltip, "Deleted")
		statusIcon = IconDeleted
		flags.ShowUndeleted = false

	case e.State == model.StateNormal && e.IsNew:
		tooltip = append(tooltip, "New episode")
		flags.ShowDownloaded = true
		flags.ShowUnplayed = true

	case e.State == model.StateDownloaded:
		flags.ShowDownloaded = true
		flags.ShowUnplayed = e.IsNew
		showBullet = e.IsNew
		showPadlock = e.Archive
		showMissing = !e.FileExists()

		fileType := e.FileType()
		switch fileType {
		case "audio":
			tooltip = append(tooltip, "Downloaded episode")
			statusIcon = IconAudioFile
		case "video":
			tooltip = append(tooltip, "Downloaded video episode")
			statusIcon = IconVideoFile
		case "image":
			tooltip = append(tooltip, "Downloaded image")
			statusIcon = IconImageFile
		default:
			tooltip = append(tooltip, "Downloaded file")
			statusIcon = IconGenericFile
		}

		if path := e.LocalPath(); path != "" && !showMissing && f.icons != nil {
			if icon, ok := f.icons(path); ok {
				statusIcon = icon
			} else {
				log.Debug().Str("path", path).Msg("no themed icon for file, using generic")
			}
		}

		if showMissing {
			tooltip = append(tooltip, "missing file")
		} else {
			tooltip = append(tooltip, playedText(fileType, showBullet))
			if showPadlock {
				tooltip = append(tooltip, "deletion prevented")
			}
		}

		if e.TotalTime > 0 && e.CurrentPosition > 0 {
			tooltip = append(tooltip, fmt.Sprintf("%d%%", int(100*float64(e.CurrentPosition)/float64(e.TotalTime))))
		}
	}

	if e.TotalTime > 0 {
		tooltip = append(tooltip, model.FormatTime(e.TotalTime))
	}

	r.StatusIcon = statusIcon
	r.rowFlags = flags
	r.Description, r.DescriptionBold = f.description(e, includeDescription)
	r.Tooltip = strings.Join(tooltip, ", ")
	r.Time = e.PlayInfoString()
	r.TimeVisible = e.TotalTime > 0
	r.TotalTime = e.TotalTime
	r.Locked = e.Archive
	r.FileSizeText = FormatFilesize(e.FileSize)
	r.FileSize = e.FileSize
}

func playedText(fileType string, unplayed bool) string {
	switch fileType {
	case "image":
		if unplayed {
			return "never displayed"
		}
		return "displayed"
	case "audio", "video":
		if unplayed {
			return "never played"
		}
		return "played"
	default:
		if unplayed {
			return "never opened"
		}
		return "opened"
	}
}

// description returns the title line, optionally followed by the podcast
// title (all episodes view) or a one-line description
func (f *episodeFields) description(e *model.Episode, includeDescription bool) (string, bool) {
	title := e.TrimmedTitle()
	bold := e.State != model.StateDeleted && e.IsNew

	if !includeDescription {
		return title, bold
	}

	var sub string
	if f.allEpisodesView {
		podcast := ""
		if e.Podcast != nil {
			podcast = e.Podcast.Title
		}
		sub = "from " + podcast
	} else {
		sub = e.OneLineDescription()
		if strings.HasPrefix(sub, title) {
			sub = strings.TrimSpace(sub[len(title):])
		}
	}
	return title + "\n" + sub, bold
}
